package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DishModel struct {
	DishID          uuid.UUID      `gorm:"column:dish_id;type:uuid;default:uuid_generate_v4();primaryKey" json:"dish_id"`
	DishName        string         `gorm:"column:dish_name;type:varchar(100);not null;uniqueIndex" json:"dish_name"`
	DishDescription *string        `gorm:"column:dish_description;type:text" json:"dish_description,omitempty"`
	DishCategory    string         `gorm:"column:dish_category;type:varchar(50);not null;index" json:"dish_category"`
	DishPrice       int64          `gorm:"column:dish_price;not null" json:"dish_price"`
	DishCalories    int            `gorm:"column:dish_calories;not null;default:0" json:"dish_calories"`
	DishIngredients pq.StringArray `gorm:"column:dish_ingredients;type:text[]" json:"dish_ingredients,omitempty"`
	DishNutrition   datatypes.JSON `gorm:"column:dish_nutrition;type:jsonb" json:"dish_nutrition,omitempty"`
	DishImageURL    *string        `gorm:"column:dish_image_url;type:text" json:"dish_image_url,omitempty"`
	DishIsAvailable bool           `gorm:"column:dish_is_available;not null;default:true" json:"dish_is_available"`

	// hidden dishes stay manageable in the dashboard but never reach the menu
	DishIsHidden bool `gorm:"column:dish_is_hidden;not null;default:false" json:"dish_is_hidden"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (DishModel) TableName() string {
	return "dishes"
}
