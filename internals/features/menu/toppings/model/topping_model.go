package model

import (
	"time"

	"github.com/google/uuid"
)

type ToppingModel struct {
	ToppingID          uuid.UUID `gorm:"column:topping_id;type:uuid;default:uuid_generate_v4();primaryKey" json:"topping_id"`
	ToppingName        string    `gorm:"column:topping_name;type:varchar(100);not null;uniqueIndex" json:"topping_name"`
	ToppingPrice       int64     `gorm:"column:topping_price;not null" json:"topping_price"`
	ToppingCalories    int       `gorm:"column:topping_calories;not null;default:0" json:"topping_calories"`
	ToppingIsAvailable bool      `gorm:"column:topping_is_available;not null;default:true" json:"topping_is_available"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ToppingModel) TableName() string {
	return "toppings"
}
