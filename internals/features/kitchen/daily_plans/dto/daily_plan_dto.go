package dto

import (
	"time"

	"github.com/google/uuid"

	"isp392_backend/internals/features/kitchen/daily_plans/model"
)

type SubmitPlanRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	ItemType string `json:"item_type" validate:"omitempty,oneof=DISH"`
	Quantity int    `json:"planned_quantity"`
}

type RevisePlanRequest struct {
	Quantity int `json:"planned_quantity"`
}

type DailyPlanResponse struct {
	PlanID            uuid.UUID `json:"plan_id"`
	ItemID            uuid.UUID `json:"item_id"`
	ItemType          string    `json:"item_type"`
	ItemName          string    `json:"item_name,omitempty"`
	PlanDate          string    `json:"plan_date"`
	StaffID           uuid.UUID `json:"staff_id"`
	PlannedQuantity   int       `json:"planned_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	Status            bool      `json:"status"`
	State             string    `json:"state"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToDailyPlanResponse(m model.DailyPlanModel, itemName string) DailyPlanResponse {
	state := "PENDING"
	if m.DailyPlanStatus {
		state = "APPROVED"
	}
	return DailyPlanResponse{
		PlanID:            m.DailyPlanID,
		ItemID:            m.DailyPlanItemID,
		ItemType:          m.DailyPlanItemType,
		ItemName:          itemName,
		PlanDate:          m.DailyPlanDate,
		StaffID:           m.DailyPlanStaffID,
		PlannedQuantity:   m.DailyPlanPlannedQuantity,
		RemainingQuantity: m.DailyPlanRemainingQuantity,
		Status:            m.DailyPlanStatus,
		State:             state,
		CreatedAt:         m.CreatedAt,
	}
}
