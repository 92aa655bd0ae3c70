package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TableStatusAvailable = "AVAILABLE"
	TableStatusOccupied  = "OCCUPIED"
	TableStatusReserved  = "RESERVED"
)

func IsValidTableStatus(s string) bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved:
		return true
	}
	return false
}

type TableModel struct {
	TableID     uuid.UUID `gorm:"column:table_id;type:uuid;default:uuid_generate_v4();primaryKey" json:"table_id"`
	TableNumber int       `gorm:"column:table_number;not null;uniqueIndex" json:"table_number"`
	TableSeats  int       `gorm:"column:table_seats;not null;default:4" json:"table_seats"`
	TableStatus string    `gorm:"column:table_status;type:varchar(20);not null;default:'AVAILABLE'" json:"table_status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TableModel) TableName() string {
	return "tables"
}
