package dto

type InvoiceItemRequest struct {
	DishID   string `json:"dish_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateInvoiceRequest struct {
	TableID string               `json:"table_id" validate:"required,uuid"`
	Items   []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

type SettleInvoiceRequest struct {
	Method string `json:"method" validate:"required,oneof=CASH GATEWAY"`
}
