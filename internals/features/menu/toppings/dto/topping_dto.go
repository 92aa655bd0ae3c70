package dto

type CreateToppingRequest struct {
	Name     string `json:"topping_name" validate:"required,min=2,max=100"`
	Price    int64  `json:"topping_price" validate:"gte=0"`
	Calories int    `json:"topping_calories" validate:"gte=0"`
}

type UpdateToppingRequest struct {
	Name        *string `json:"topping_name" validate:"omitempty,min=2,max=100"`
	Price       *int64  `json:"topping_price" validate:"omitempty,gte=0"`
	Calories    *int    `json:"topping_calories" validate:"omitempty,gte=0"`
	IsAvailable *bool   `json:"topping_is_available"`
}
