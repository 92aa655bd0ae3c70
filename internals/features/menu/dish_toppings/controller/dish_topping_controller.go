package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dishModel "isp392_backend/internals/features/menu/dishes/model"
	"isp392_backend/internals/features/menu/dish_toppings/model"
	helper "isp392_backend/internals/helpers"
)

type DishToppingController struct {
	DB *gorm.DB
}

func NewDishToppingController(db *gorm.DB) *DishToppingController {
	return &DishToppingController{DB: db}
}

// ReplaceBatch mirrors the dashboard's addDishToppingsBatch call: the given
// set becomes the dish's complete topping list.
func (ctrl *DishToppingController) ReplaceBatch(c *fiber.Ctx) error {
	dishID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dish ID")
	}

	var req struct {
		ToppingIDs []string `json:"topping_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	var dish dishModel.DishModel
	if err := ctrl.DB.First(&dish, "dish_id = ?", dishID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dish not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dish")
	}

	links := make([]model.DishToppingModel, 0, len(req.ToppingIDs))
	for _, raw := range req.ToppingIDs {
		tid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid topping ID: "+raw)
		}
		links = append(links, model.DishToppingModel{
			DishToppingDishID:    dishID,
			DishToppingToppingID: tid,
		})
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_topping_dish_id = ?", dishID).
			Delete(&model.DishToppingModel{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.CreateInBatches(&links, 100).Error
	})
	if err != nil {
		log.Println("[ERROR] replace dish toppings:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update dish toppings")
	}

	return helper.JsonUpdated(c, "Dish toppings updated", fiber.Map{
		"dish_id": dishID,
		"count":   len(links),
	})
}
