package dto

type CreateTableRequest struct {
	Number int `json:"table_number" validate:"required,min=1"`
	Seats  int `json:"table_seats" validate:"omitempty,min=1,max=50"`
}

type UpdateTableRequest struct {
	Number *int    `json:"table_number" validate:"omitempty,min=1"`
	Seats  *int    `json:"table_seats" validate:"omitempty,min=1,max=50"`
	Status *string `json:"table_status" validate:"omitempty,oneof=AVAILABLE OCCUPIED RESERVED"`
}
