package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"isp392_backend/internals/features/menu/toppings/dto"
	"isp392_backend/internals/features/menu/toppings/model"
	helper "isp392_backend/internals/helpers"
)

type ToppingController struct {
	DB *gorm.DB
}

func NewToppingController(db *gorm.DB) *ToppingController {
	return &ToppingController{DB: db}
}

func (ctrl *ToppingController) ListToppings(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.ToppingModel{})
	if c.Query("available") == "true" {
		q = q.Where("topping_is_available = TRUE")
	}

	var toppings []model.ToppingModel
	if err := q.Order("topping_name").Find(&toppings).Error; err != nil {
		log.Println("[ERROR] list toppings:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list toppings")
	}
	return helper.JsonOK(c, "Topping list", toppings)
}

func (ctrl *ToppingController) CreateTopping(c *fiber.Ctx) error {
	var req dto.CreateToppingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	topping := model.ToppingModel{
		ToppingName:        strings.TrimSpace(req.Name),
		ToppingPrice:       req.Price,
		ToppingCalories:    req.Calories,
		ToppingIsAvailable: true,
	}
	if err := ctrl.DB.Create(&topping).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "A topping with this name already exists")
		}
		log.Println("[ERROR] create topping:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create topping")
	}
	return helper.JsonCreated(c, "Topping created", topping)
}

func (ctrl *ToppingController) UpdateTopping(c *fiber.Ctx) error {
	toppingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid topping ID")
	}

	var req dto.UpdateToppingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var topping model.ToppingModel
	if err := ctrl.DB.First(&topping, "topping_id = ?", toppingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Topping not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch topping")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["topping_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		updates["topping_price"] = *req.Price
	}
	if req.Calories != nil {
		updates["topping_calories"] = *req.Calories
	}
	if req.IsAvailable != nil {
		updates["topping_is_available"] = *req.IsAvailable
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&topping).Updates(updates).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "A topping with this name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update topping")
	}
	return helper.JsonUpdated(c, "Topping updated", topping)
}

func (ctrl *ToppingController) DeleteTopping(c *fiber.Ctx) error {
	toppingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid topping ID")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM dish_toppings WHERE dish_topping_topping_id = ?", toppingID).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.ToppingModel{}, "topping_id = ?", toppingID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Topping not found")
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Topping deleted", fiber.Map{"topping_id": toppingID})
}
