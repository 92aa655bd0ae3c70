package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"isp392_backend/internals/features/kitchen/daily_plans/model"
	"isp392_backend/internals/features/kitchen/daily_plans/service"
)

// DailyPlanRepository is the GORM-backed service.PlanStore.
type DailyPlanRepository struct {
	DB *gorm.DB
}

func NewDailyPlanRepository(db *gorm.DB) *DailyPlanRepository {
	return &DailyPlanRepository{DB: db}
}

func (r *DailyPlanRepository) ListByStaffDate(ctx context.Context, staffID uuid.UUID, date string) ([]model.DailyPlanModel, error) {
	var plans []model.DailyPlanModel
	err := r.DB.WithContext(ctx).
		Where("daily_plan_staff_id = ? AND daily_plan_date = ?", staffID, date).
		Order("created_at ASC, daily_plan_id ASC").
		Find(&plans).Error
	return plans, err
}

func (r *DailyPlanRepository) ListPendingByDate(ctx context.Context, date string) ([]model.DailyPlanModel, error) {
	var plans []model.DailyPlanModel
	err := r.DB.WithContext(ctx).
		Where("daily_plan_date = ? AND daily_plan_status = FALSE", date).
		Order("created_at ASC, daily_plan_id ASC").
		Find(&plans).Error
	return plans, err
}

func (r *DailyPlanRepository) GetByID(ctx context.Context, planID uuid.UUID) (*model.DailyPlanModel, error) {
	var plan model.DailyPlanModel
	err := r.DB.WithContext(ctx).First(&plan, "daily_plan_id = ?", planID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *DailyPlanRepository) Create(ctx context.Context, plan *model.DailyPlanModel) error {
	err := r.DB.WithContext(ctx).Create(plan).Error
	if err != nil && isUniqueViolation(err) {
		return service.ErrDuplicatePlan
	}
	return err
}

func (r *DailyPlanRepository) UpdateQuantities(ctx context.Context, planID uuid.UUID, quantity int) error {
	res := r.DB.WithContext(ctx).Model(&model.DailyPlanModel{}).
		Where("daily_plan_id = ?", planID).
		Updates(map[string]any{
			"daily_plan_planned_quantity":   quantity,
			"daily_plan_remaining_quantity": quantity,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrPlanNotFound
	}
	return nil
}

func (r *DailyPlanRepository) Approve(ctx context.Context, planID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&model.DailyPlanModel{}).
		Where("daily_plan_id = ? AND daily_plan_status = FALSE", planID).
		Update("daily_plan_status", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrPlanNotFound
	}
	return nil
}

func (r *DailyPlanRepository) Delete(ctx context.Context, planID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&model.DailyPlanModel{}, "daily_plan_id = ?", planID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrPlanNotFound
	}
	return nil
}

// isUniqueViolation matches Postgres 23505 without importing the driver's
// error type; lib/pq and pgx both include these phrases.
func isUniqueViolation(err error) bool {
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") ||
		strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "sqlstate 23505")
}
