package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"isp392_backend/internals/features/menu/dishes/model"
	toppingModel "isp392_backend/internals/features/menu/toppings/model"
)

type CreateDishRequest struct {
	Name        string         `json:"dish_name" validate:"required,min=2,max=100"`
	Description *string        `json:"dish_description"`
	Category    string         `json:"dish_category" validate:"required,max=50"`
	Price       int64          `json:"dish_price" validate:"required,gt=0"`
	Calories    int            `json:"dish_calories" validate:"gte=0"`
	Ingredients []string       `json:"dish_ingredients"`
	Nutrition   datatypes.JSON `json:"dish_nutrition"`
	ToppingIDs  []string       `json:"topping_ids" validate:"omitempty,dive,uuid"`
}

type UpdateDishRequest struct {
	Name        *string        `json:"dish_name" validate:"omitempty,min=2,max=100"`
	Description *string        `json:"dish_description"`
	Category    *string        `json:"dish_category" validate:"omitempty,max=50"`
	Price       *int64         `json:"dish_price" validate:"omitempty,gt=0"`
	Calories    *int           `json:"dish_calories" validate:"omitempty,gte=0"`
	Ingredients []string       `json:"dish_ingredients"`
	Nutrition   datatypes.JSON `json:"dish_nutrition"`
	IsAvailable *bool          `json:"dish_is_available"`
}

type ToppingSummary struct {
	ToppingID uuid.UUID `json:"topping_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Calories  int       `json:"calories"`
}

type DishResponse struct {
	DishID           uuid.UUID        `json:"dish_id"`
	Name             string           `json:"dish_name"`
	Description      *string          `json:"dish_description,omitempty"`
	Category         string           `json:"dish_category"`
	Price            int64            `json:"dish_price"`
	Calories         int              `json:"dish_calories"`
	Ingredients      []string         `json:"dish_ingredients,omitempty"`
	Nutrition        datatypes.JSON   `json:"dish_nutrition,omitempty"`
	ImageURL         *string          `json:"dish_image_url,omitempty"`
	IsAvailable      bool             `json:"dish_is_available"`
	IsHidden         bool             `json:"dish_is_hidden"`
	OptionalToppings []ToppingSummary `json:"optional_toppings,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

func ToDishResponse(m model.DishModel, toppings []toppingModel.ToppingModel) DishResponse {
	resp := DishResponse{
		DishID:      m.DishID,
		Name:        m.DishName,
		Description: m.DishDescription,
		Category:    m.DishCategory,
		Price:       m.DishPrice,
		Calories:    m.DishCalories,
		Ingredients: m.DishIngredients,
		Nutrition:   m.DishNutrition,
		ImageURL:    m.DishImageURL,
		IsAvailable: m.DishIsAvailable,
		IsHidden:    m.DishIsHidden,
		CreatedAt:   m.CreatedAt,
	}
	for _, t := range toppings {
		resp.OptionalToppings = append(resp.OptionalToppings, ToppingSummary{
			ToppingID: t.ToppingID,
			Name:      t.ToppingName,
			Price:     t.ToppingPrice,
			Calories:  t.ToppingCalories,
		})
	}
	return resp
}
