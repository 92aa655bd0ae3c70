package model

import (
	"time"

	"github.com/google/uuid"
)

// Item types a plan can reference. Only dishes today; the discriminator is
// kept so other catalogs can join later without a schema change.
const (
	ItemTypeDish = "DISH"
)

func IsValidItemType(t string) bool {
	return t == ItemTypeDish
}

// DailyPlanModel is one staff member's proposal to prepare a quantity of an
// item on a calendar date. The (staff, item, date) tuple is unique: the
// composite index turns concurrent duplicate proposals into a conflict
// instead of silent duplication.
//
// The date is stored as its YYYY-MM-DD string, anchored to Indochina Time by
// every writer. String equality is the comparison contract.
type DailyPlanModel struct {
	DailyPlanID       uuid.UUID `gorm:"column:daily_plan_id;type:uuid;default:uuid_generate_v4();primaryKey" json:"daily_plan_id"`
	DailyPlanItemID   uuid.UUID `gorm:"column:daily_plan_item_id;type:uuid;not null;uniqueIndex:uq_daily_plan_tuple" json:"daily_plan_item_id"`
	DailyPlanItemType string    `gorm:"column:daily_plan_item_type;type:varchar(20);not null;default:'DISH'" json:"daily_plan_item_type"`
	DailyPlanDate     string    `gorm:"column:daily_plan_date;type:varchar(10);not null;uniqueIndex:uq_daily_plan_tuple;index" json:"daily_plan_date"`
	DailyPlanStaffID  uuid.UUID `gorm:"column:daily_plan_staff_id;type:uuid;not null;uniqueIndex:uq_daily_plan_tuple" json:"daily_plan_staff_id"`

	DailyPlanPlannedQuantity   int `gorm:"column:daily_plan_planned_quantity;not null" json:"daily_plan_planned_quantity"`
	DailyPlanRemainingQuantity int `gorm:"column:daily_plan_remaining_quantity;not null" json:"daily_plan_remaining_quantity"`

	// false = pending review, true = approved. Rejection deletes the row.
	DailyPlanStatus bool `gorm:"column:daily_plan_status;not null;default:false" json:"daily_plan_status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DailyPlanModel) TableName() string {
	return "daily_plans"
}
