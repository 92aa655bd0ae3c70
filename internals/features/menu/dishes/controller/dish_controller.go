package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"isp392_backend/internals/features/menu/dishes/dto"
	"isp392_backend/internals/features/menu/dishes/model"
	dishToppingModel "isp392_backend/internals/features/menu/dish_toppings/model"
	toppingModel "isp392_backend/internals/features/menu/toppings/model"
	helper "isp392_backend/internals/helpers"
)

type DishController struct {
	DB *gorm.DB
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{DB: db}
}

func (ctrl *DishController) loadToppings(dishID uuid.UUID) []toppingModel.ToppingModel {
	var toppings []toppingModel.ToppingModel
	err := ctrl.DB.
		Joins("JOIN dish_toppings ON dish_toppings.dish_topping_topping_id = toppings.topping_id").
		Where("dish_toppings.dish_topping_dish_id = ?", dishID).
		Order("toppings.topping_name").
		Find(&toppings).Error
	if err != nil {
		log.Println("[WARN] load toppings:", err)
		return nil
	}
	return toppings
}

// ListMenu is the customer-facing catalog: available, not hidden.
func (ctrl *DishController) ListMenu(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.DishModel{}).
		Where("dish_is_available = TRUE AND dish_is_hidden = FALSE")
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("dish_category = ?", cat)
	}

	var dishes []model.DishModel
	if err := q.Order("dish_name").Find(&dishes).Error; err != nil {
		log.Println("[ERROR] list menu:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load menu")
	}

	out := make([]dto.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, dto.ToDishResponse(d, ctrl.loadToppings(d.DishID)))
	}
	return helper.JsonOK(c, "Menu", out)
}

// ListDishes is the manager view: everything, paged.
func (ctrl *DishController) ListDishes(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.DishModel{})
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("dish_category = ?", cat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list dishes")
	}

	var dishes []model.DishModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&dishes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list dishes")
	}

	out := make([]dto.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, dto.ToDishResponse(d, ctrl.loadToppings(d.DishID)))
	}
	return helper.JsonList(c, "Dish list", out,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *DishController) GetDish(c *fiber.Ctx) error {
	dishID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dish ID")
	}

	var dish model.DishModel
	if err := ctrl.DB.First(&dish, "dish_id = ?", dishID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dish not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dish")
	}
	return helper.JsonOK(c, "Dish detail", dto.ToDishResponse(dish, ctrl.loadToppings(dish.DishID)))
}

func (ctrl *DishController) CreateDish(c *fiber.Ctx) error {
	var req dto.CreateDishRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	dish := model.DishModel{
		DishName:        strings.TrimSpace(req.Name),
		DishDescription: req.Description,
		DishCategory:    strings.TrimSpace(req.Category),
		DishPrice:       req.Price,
		DishCalories:    req.Calories,
		DishIngredients: pq.StringArray(req.Ingredients),
		DishNutrition:   req.Nutrition,
		DishIsAvailable: true,
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dish).Error; err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return fiber.NewError(fiber.StatusConflict, "A dish with this name already exists")
			}
			return err
		}
		return replaceDishToppings(tx, dish.DishID, req.ToppingIDs)
	})
	if err != nil {
		log.Println("[ERROR] create dish:", err)
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Dish created", dto.ToDishResponse(dish, ctrl.loadToppings(dish.DishID)))
}

func (ctrl *DishController) UpdateDish(c *fiber.Ctx) error {
	dishID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dish ID")
	}

	var req dto.UpdateDishRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var dish model.DishModel
	if err := ctrl.DB.First(&dish, "dish_id = ?", dishID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dish not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dish")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["dish_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["dish_description"] = req.Description
	}
	if req.Category != nil {
		updates["dish_category"] = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		updates["dish_price"] = *req.Price
	}
	if req.Calories != nil {
		updates["dish_calories"] = *req.Calories
	}
	if req.Ingredients != nil {
		updates["dish_ingredients"] = pq.StringArray(req.Ingredients)
	}
	if req.Nutrition != nil {
		updates["dish_nutrition"] = req.Nutrition
	}
	if req.IsAvailable != nil {
		updates["dish_is_available"] = *req.IsAvailable
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&dish).Updates(updates).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "A dish with this name already exists")
		}
		log.Println("[ERROR] update dish:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update dish")
	}

	return helper.JsonUpdated(c, "Dish updated", dto.ToDishResponse(dish, ctrl.loadToppings(dish.DishID)))
}

// SetVisibility replaces the frontend's localStorage hidden_dishes list.
func (ctrl *DishController) SetVisibility(c *fiber.Ctx) error {
	dishID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dish ID")
	}

	var req struct {
		Hidden *bool `json:"hidden"`
	}
	if err := c.BodyParser(&req); err != nil || req.Hidden == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Field 'hidden' is required")
	}

	res := ctrl.DB.Model(&model.DishModel{}).
		Where("dish_id = ?", dishID).
		Update("dish_is_hidden", *req.Hidden)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update visibility")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Dish not found")
	}
	return helper.JsonUpdated(c, "Visibility updated", fiber.Map{"dish_id": dishID, "hidden": *req.Hidden})
}

// UploadImage converts the uploaded picture to webp and stores it.
func (ctrl *DishController) UploadImage(c *fiber.Ctx) error {
	dishID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dish ID")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Image file is required")
	}

	var dish model.DishModel
	if err := ctrl.DB.First(&dish, "dish_id = ?", dishID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dish not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dish")
	}

	publicURL, err := helper.UploadImageToStorage("dishes", fileHeader)
	if err != nil {
		log.Println("[ERROR] dish image upload:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Image upload failed")
	}

	// best-effort delete of the replaced image
	if dish.DishImageURL != nil {
		if bucket, path, err := helper.ExtractStoragePath(*dish.DishImageURL); err == nil {
			if err := helper.DeleteFromStorage(bucket, path); err != nil {
				log.Println("[WARN] delete old dish image:", err)
			}
		}
	}

	if err := ctrl.DB.Model(&dish).Update("dish_image_url", publicURL).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save image URL")
	}
	return helper.JsonUpdated(c, "Image uploaded", fiber.Map{"dish_id": dishID, "dish_image_url": publicURL})
}

func (ctrl *DishController) DeleteDish(c *fiber.Ctx) error {
	dishID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dish ID")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_topping_dish_id = ?", dishID).
			Delete(&dishToppingModel.DishToppingModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.DishModel{}, "dish_id = ?", dishID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Dish not found")
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Dish deleted", fiber.Map{"dish_id": dishID})
}

// replaceDishToppings swaps the dish's topping links for the given set.
func replaceDishToppings(tx *gorm.DB, dishID uuid.UUID, toppingIDs []string) error {
	if toppingIDs == nil {
		return nil
	}
	if err := tx.Where("dish_topping_dish_id = ?", dishID).
		Delete(&dishToppingModel.DishToppingModel{}).Error; err != nil {
		return err
	}
	if len(toppingIDs) == 0 {
		return nil
	}

	links := make([]dishToppingModel.DishToppingModel, 0, len(toppingIDs))
	for _, raw := range toppingIDs {
		tid, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid topping ID: "+raw)
		}
		links = append(links, dishToppingModel.DishToppingModel{
			DishToppingDishID:    dishID,
			DishToppingToppingID: tid,
		})
	}
	return tx.CreateInBatches(&links, 100).Error
}
