package model

import (
	"time"

	"github.com/google/uuid"
)

// Link table between dishes and their optional toppings. One row per pair.
type DishToppingModel struct {
	DishToppingID        uuid.UUID `gorm:"column:dish_topping_id;type:uuid;default:uuid_generate_v4();primaryKey" json:"dish_topping_id"`
	DishToppingDishID    uuid.UUID `gorm:"column:dish_topping_dish_id;type:uuid;not null;uniqueIndex:uq_dish_topping" json:"dish_topping_dish_id"`
	DishToppingToppingID uuid.UUID `gorm:"column:dish_topping_topping_id;type:uuid;not null;uniqueIndex:uq_dish_topping" json:"dish_topping_topping_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (DishToppingModel) TableName() string {
	return "dish_toppings"
}
