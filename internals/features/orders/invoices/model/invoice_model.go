package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusPending   = "PENDING"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusFailed    = "FAILED"
	InvoiceStatusCancelled = "CANCELLED"
)

const (
	PaymentMethodCash    = "CASH"
	PaymentMethodGateway = "GATEWAY"
)

// InvoiceModel is one table's bill. The order id is the external reference
// sent to the payment gateway; it never changes after creation.
type InvoiceModel struct {
	InvoiceID      uuid.UUID  `gorm:"column:invoice_id;type:uuid;default:uuid_generate_v4();primaryKey" json:"invoice_id"`
	InvoiceOrderID string     `gorm:"column:invoice_order_id;type:varchar(40);not null;uniqueIndex" json:"invoice_order_id"`
	InvoiceTableID uuid.UUID  `gorm:"column:invoice_table_id;type:uuid;not null;index" json:"invoice_table_id"`
	InvoiceStaffID uuid.UUID  `gorm:"column:invoice_staff_id;type:uuid;not null" json:"invoice_staff_id"`
	InvoiceTotal   int64      `gorm:"column:invoice_total;not null" json:"invoice_total"`
	InvoiceStatus  string     `gorm:"column:invoice_status;type:varchar(20);not null;default:'PENDING';index" json:"invoice_status"`
	InvoiceMethod  string     `gorm:"column:invoice_method;type:varchar(20)" json:"invoice_method"`
	InvoicePaidAt  *time.Time `gorm:"column:invoice_paid_at" json:"invoice_paid_at,omitempty"`

	Items []InvoiceItemModel `gorm:"foreignKey:InvoiceItemInvoiceID;references:InvoiceID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel snapshots name and price at order time so menu edits
// never rewrite history.
type InvoiceItemModel struct {
	InvoiceItemID        uuid.UUID `gorm:"column:invoice_item_id;type:uuid;default:uuid_generate_v4();primaryKey" json:"invoice_item_id"`
	InvoiceItemInvoiceID uuid.UUID `gorm:"column:invoice_item_invoice_id;type:uuid;not null;index" json:"invoice_item_invoice_id"`
	InvoiceItemDishID    uuid.UUID `gorm:"column:invoice_item_dish_id;type:uuid;not null" json:"invoice_item_dish_id"`
	InvoiceItemName      string    `gorm:"column:invoice_item_name;type:varchar(100);not null" json:"invoice_item_name"`
	InvoiceItemQuantity  int       `gorm:"column:invoice_item_quantity;not null" json:"invoice_item_quantity"`
	InvoiceItemPrice     int64     `gorm:"column:invoice_item_price;not null" json:"invoice_item_price"`
	InvoiceItemSubtotal  int64     `gorm:"column:invoice_item_subtotal;not null" json:"invoice_item_subtotal"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}
