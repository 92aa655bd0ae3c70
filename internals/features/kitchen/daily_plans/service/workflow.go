package service

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/google/uuid"

	"isp392_backend/internals/features/kitchen/daily_plans/model"
)

// PlanState is the lifecycle position of one (staff, item, date) tuple.
type PlanState string

const (
	StateNone     PlanState = "NONE"     // no record for the tuple
	StatePending  PlanState = "PENDING"  // record exists, not yet approved
	StateApproved PlanState = "APPROVED" // record exists, approved
)

var (
	ErrInvalidQuantity = errors.New("planned quantity must be greater than zero")
	ErrInvalidItemType = errors.New("unknown item type")
	ErrPlanNotFound    = errors.New("daily plan not found")
	ErrAlreadyApproved = errors.New("daily plan is already approved")
	ErrDuplicatePlan   = errors.New("a plan for this staff, item and date already exists")
)

// PlanStore is the persistence port for the workflow. The GORM implementation
// lives in the repository package; tests use an in-memory fake.
type PlanStore interface {
	ListByStaffDate(ctx context.Context, staffID uuid.UUID, date string) ([]model.DailyPlanModel, error)
	ListPendingByDate(ctx context.Context, date string) ([]model.DailyPlanModel, error)
	GetByID(ctx context.Context, planID uuid.UUID) (*model.DailyPlanModel, error)

	// Create must return ErrDuplicatePlan when the tuple already exists.
	Create(ctx context.Context, plan *model.DailyPlanModel) error
	UpdateQuantities(ctx context.Context, planID uuid.UUID, quantity int) error
	Approve(ctx context.Context, planID uuid.UUID) error
	Delete(ctx context.Context, planID uuid.UUID) error
}

// Workflow drives a plan through NONE -> PENDING -> APPROVED, or back to
// NONE on rejection. It owns the transition rules only; role checks belong to
// the route layer and "today" belongs to the caller.
type Workflow struct {
	store PlanStore
}

func NewWorkflow(store PlanStore) *Workflow {
	return &Workflow{store: store}
}

// Propose creates the PENDING record for a tuple currently in NONE.
// planned and remaining quantity both start at the proposed value.
func (w *Workflow) Propose(ctx context.Context, staffID, itemID uuid.UUID, itemType, date string, quantity int) (*model.DailyPlanModel, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if itemType == "" {
		itemType = model.ItemTypeDish
	}
	if !model.IsValidItemType(itemType) {
		return nil, ErrInvalidItemType
	}

	plan := &model.DailyPlanModel{
		DailyPlanItemID:            itemID,
		DailyPlanItemType:          itemType,
		DailyPlanDate:              date,
		DailyPlanStaffID:           staffID,
		DailyPlanPlannedQuantity:   quantity,
		DailyPlanRemainingQuantity: quantity,
		DailyPlanStatus:            false,
	}
	if err := w.store.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Revise overwrites the quantity of a PENDING plan. Planned and remaining are
// both reset; id and status are untouched.
func (w *Workflow) Revise(ctx context.Context, planID uuid.UUID, quantity int) (*model.DailyPlanModel, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	plan, err := w.store.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.DailyPlanStatus {
		return nil, ErrAlreadyApproved
	}

	if err := w.store.UpdateQuantities(ctx, planID, quantity); err != nil {
		return nil, err
	}
	plan.DailyPlanPlannedQuantity = quantity
	plan.DailyPlanRemainingQuantity = quantity
	return plan, nil
}

// Approve flips a PENDING plan to APPROVED. There is no transition out of
// APPROVED.
func (w *Workflow) Approve(ctx context.Context, planID uuid.UUID) error {
	plan, err := w.store.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.DailyPlanStatus {
		return ErrAlreadyApproved
	}
	return w.store.Approve(ctx, planID)
}

// Reject removes a PENDING plan entirely; the tuple returns to NONE and may
// be proposed again.
func (w *Workflow) Reject(ctx context.Context, planID uuid.UUID) error {
	plan, err := w.store.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.DailyPlanStatus {
		return ErrAlreadyApproved
	}
	return w.store.Delete(ctx, planID)
}

// Find fetches one plan by id.
func (w *Workflow) Find(ctx context.Context, planID uuid.UUID) (*model.DailyPlanModel, error) {
	return w.store.GetByID(ctx, planID)
}

// FindState reports the tuple's current state and, when a record exists, the
// record itself.
//
// The unique index should make multiple matches impossible; if legacy rows
// violate it anyway the oldest record (created_at, then id as tie-break)
// wins, and the fault is logged for operators.
func (w *Workflow) FindState(ctx context.Context, staffID, itemID uuid.UUID, date string) (PlanState, *model.DailyPlanModel, error) {
	plans, err := w.store.ListByStaffDate(ctx, staffID, date)
	if err != nil {
		return StateNone, nil, err
	}

	var matches []model.DailyPlanModel
	for _, p := range plans {
		if p.DailyPlanItemID == itemID {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return StateNone, nil, nil
	}
	if len(matches) > 1 {
		log.Printf("[WARN] data integrity: %d plans for staff=%s item=%s date=%s, using oldest",
			len(matches), staffID, itemID, date)
		sort.Slice(matches, func(i, j int) bool {
			if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
				return matches[i].CreatedAt.Before(matches[j].CreatedAt)
			}
			return matches[i].DailyPlanID.String() < matches[j].DailyPlanID.String()
		})
	}

	plan := matches[0]
	if plan.DailyPlanStatus {
		return StateApproved, &plan, nil
	}
	return StatePending, &plan, nil
}

// PlansFor lists a staff member's plans for one date (the chef's today view).
func (w *Workflow) PlansFor(ctx context.Context, staffID uuid.UUID, date string) ([]model.DailyPlanModel, error) {
	return w.store.ListByStaffDate(ctx, staffID, date)
}

// PendingFor lists every staff member's unapproved plans for one date (the
// manager's review queue).
func (w *Workflow) PendingFor(ctx context.Context, date string) ([]model.DailyPlanModel, error) {
	return w.store.ListPendingByDate(ctx, date)
}
