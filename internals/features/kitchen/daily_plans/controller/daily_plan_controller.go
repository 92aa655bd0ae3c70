package controller

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"isp392_backend/internals/features/kitchen/daily_plans/dto"
	"isp392_backend/internals/features/kitchen/daily_plans/model"
	"isp392_backend/internals/features/kitchen/daily_plans/service"
	helper "isp392_backend/internals/helpers"
)

// NameResolver maps item ids to display names for plan responses. Backed by
// the dishes table in production.
type NameResolver interface {
	NamesFor(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

type DailyPlanController struct {
	Workflow *service.Workflow
	Names    NameResolver
}

func NewDailyPlanController(workflow *service.Workflow, names NameResolver) *DailyPlanController {
	return &DailyPlanController{Workflow: workflow, Names: names}
}

// SubmitPlan proposes a quantity of one item for today. Resubmitting the
// same dish before approval overwrites the pending quantity; an approved
// plan conflicts.
func (ctrl *DailyPlanController) SubmitPlan(c *fiber.Ctx) error {
	staffID, err := localStaffID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.SubmitPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid item ID")
	}
	today := helper.TodayICT()

	plan, err := ctrl.Workflow.Propose(c.Context(), staffID, itemID, req.ItemType, today, req.Quantity)
	if errors.Is(err, service.ErrDuplicatePlan) {
		// lost the create race or resubmitted: revise the existing record
		state, existing, ferr := ctrl.Workflow.FindState(c.Context(), staffID, itemID, today)
		if ferr != nil || state == service.StateNone {
			return ctrl.planError(c, err)
		}
		revised, rerr := ctrl.Workflow.Revise(c.Context(), existing.DailyPlanID, req.Quantity)
		if rerr != nil {
			return ctrl.planError(c, rerr)
		}
		return helper.JsonUpdated(c, "Daily plan updated", ctrl.toResponse(c, *revised))
	}
	if err != nil {
		return ctrl.planError(c, err)
	}
	return helper.JsonCreated(c, "Daily plan submitted", ctrl.toResponse(c, *plan))
}

// RevisePlan overwrites the quantity of one of the caller's pending plans.
func (ctrl *DailyPlanController) RevisePlan(c *fiber.Ctx) error {
	staffID, err := localStaffID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid plan ID")
	}

	var req dto.RevisePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	if err := ctrl.ownsPlan(c, planID, staffID); err != nil {
		return ctrl.planError(c, err)
	}
	plan, err := ctrl.Workflow.Revise(c.Context(), planID, req.Quantity)
	if err != nil {
		return ctrl.planError(c, err)
	}
	return helper.JsonUpdated(c, "Daily plan updated", ctrl.toResponse(c, *plan))
}

// TodayPlans returns the caller's plans for the current Indochina date, read
// back from storage so the view always matches what was persisted.
func (ctrl *DailyPlanController) TodayPlans(c *fiber.Ctx) error {
	staffID, err := localStaffID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	plans, err := ctrl.Workflow.PlansFor(c.Context(), staffID, helper.TodayICT())
	if err != nil {
		log.Println("[ERROR] list today plans:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list daily plans")
	}
	return helper.JsonOK(c, "Today's daily plans", ctrl.toResponses(c, plans))
}

// PendingPlans returns every unapproved plan for the current Indochina date.
// Manager review queue.
func (ctrl *DailyPlanController) PendingPlans(c *fiber.Ctx) error {
	date := c.Query("date", helper.TodayICT())
	if _, err := helper.ParseDateICT(date); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	plans, err := ctrl.Workflow.PendingFor(c.Context(), date)
	if err != nil {
		log.Println("[ERROR] list pending plans:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list pending plans")
	}
	return helper.JsonOK(c, "Pending daily plans", ctrl.toResponses(c, plans))
}

func (ctrl *DailyPlanController) ApprovePlan(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid plan ID")
	}
	if err := ctrl.Workflow.Approve(c.Context(), planID); err != nil {
		return ctrl.planError(c, err)
	}
	return helper.JsonUpdated(c, "Daily plan approved", fiber.Map{"plan_id": planID})
}

// RejectPlan deletes the pending plan; the chef may submit a new one for the
// same dish afterwards.
func (ctrl *DailyPlanController) RejectPlan(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid plan ID")
	}
	if err := ctrl.Workflow.Reject(c.Context(), planID); err != nil {
		return ctrl.planError(c, err)
	}
	return helper.JsonDeleted(c, "Daily plan rejected", fiber.Map{"plan_id": planID})
}

// ownsPlan hides other chefs' plans behind a 404 rather than a 403.
func (ctrl *DailyPlanController) ownsPlan(c *fiber.Ctx, planID, staffID uuid.UUID) error {
	plan, err := ctrl.Workflow.Find(c.Context(), planID)
	if err != nil {
		return err
	}
	if plan.DailyPlanStaffID != staffID {
		return service.ErrPlanNotFound
	}
	return nil
}

func (ctrl *DailyPlanController) planError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrInvalidItemType):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPlanNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Daily plan not found")
	case errors.Is(err, service.ErrAlreadyApproved), errors.Is(err, service.ErrDuplicatePlan):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		log.Println("[ERROR] daily plan:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process daily plan")
	}
}

func (ctrl *DailyPlanController) toResponses(c *fiber.Ctx, plans []model.DailyPlanModel) []dto.DailyPlanResponse {
	ids := make([]uuid.UUID, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.DailyPlanItemID)
	}
	names := ctrl.resolveNames(c.Context(), ids)

	out := make([]dto.DailyPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.ToDailyPlanResponse(p, names[p.DailyPlanItemID]))
	}
	return out
}

func (ctrl *DailyPlanController) toResponse(c *fiber.Ctx, plan model.DailyPlanModel) dto.DailyPlanResponse {
	names := ctrl.resolveNames(c.Context(), []uuid.UUID{plan.DailyPlanItemID})
	return dto.ToDailyPlanResponse(plan, names[plan.DailyPlanItemID])
}

// resolveNames is best effort: a missing name never fails the request.
func (ctrl *DailyPlanController) resolveNames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]string {
	if ctrl.Names == nil || len(ids) == 0 {
		return map[uuid.UUID]string{}
	}
	names, err := ctrl.Names.NamesFor(ctx, ids)
	if err != nil {
		log.Println("[WARN] resolve item names:", err)
		return map[uuid.UUID]string{}
	}
	return names
}

func localStaffID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("staff_id").(string)
	return uuid.Parse(raw)
}
