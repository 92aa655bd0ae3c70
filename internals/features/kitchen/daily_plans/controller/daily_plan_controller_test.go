package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"isp392_backend/internals/features/kitchen/daily_plans/model"
	"isp392_backend/internals/features/kitchen/daily_plans/service"
	helper "isp392_backend/internals/helpers"
)

type memPlanStore struct {
	plans map[uuid.UUID]model.DailyPlanModel
}

func newMemPlanStore() *memPlanStore {
	return &memPlanStore{plans: map[uuid.UUID]model.DailyPlanModel{}}
}

func (s *memPlanStore) ListByStaffDate(_ context.Context, staffID uuid.UUID, date string) ([]model.DailyPlanModel, error) {
	var out []model.DailyPlanModel
	for _, p := range s.plans {
		if p.DailyPlanStaffID == staffID && p.DailyPlanDate == date {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memPlanStore) ListPendingByDate(_ context.Context, date string) ([]model.DailyPlanModel, error) {
	var out []model.DailyPlanModel
	for _, p := range s.plans {
		if p.DailyPlanDate == date && !p.DailyPlanStatus {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memPlanStore) GetByID(_ context.Context, planID uuid.UUID) (*model.DailyPlanModel, error) {
	p, ok := s.plans[planID]
	if !ok {
		return nil, service.ErrPlanNotFound
	}
	return &p, nil
}

func (s *memPlanStore) Create(_ context.Context, plan *model.DailyPlanModel) error {
	for _, p := range s.plans {
		if p.DailyPlanStaffID == plan.DailyPlanStaffID &&
			p.DailyPlanItemID == plan.DailyPlanItemID &&
			p.DailyPlanDate == plan.DailyPlanDate {
			return service.ErrDuplicatePlan
		}
	}
	plan.DailyPlanID = uuid.New()
	plan.CreatedAt = time.Now()
	s.plans[plan.DailyPlanID] = *plan
	return nil
}

func (s *memPlanStore) UpdateQuantities(_ context.Context, planID uuid.UUID, quantity int) error {
	p, ok := s.plans[planID]
	if !ok {
		return service.ErrPlanNotFound
	}
	p.DailyPlanPlannedQuantity = quantity
	p.DailyPlanRemainingQuantity = quantity
	s.plans[planID] = p
	return nil
}

func (s *memPlanStore) Approve(_ context.Context, planID uuid.UUID) error {
	p, ok := s.plans[planID]
	if !ok {
		return service.ErrPlanNotFound
	}
	p.DailyPlanStatus = true
	s.plans[planID] = p
	return nil
}

func (s *memPlanStore) Delete(_ context.Context, planID uuid.UUID) error {
	if _, ok := s.plans[planID]; !ok {
		return service.ErrPlanNotFound
	}
	delete(s.plans, planID)
	return nil
}

type staticNames map[uuid.UUID]string

func (n staticNames) NamesFor(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]string, error) {
	return n, nil
}

// newTestApp wires the controller behind a stub auth layer that injects the
// given staff id, the way the real middleware does after token validation.
func newTestApp(store service.PlanStore, names NameResolver, staffID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("staff_id", staffID.String())
		return c.Next()
	})

	ctrl := NewDailyPlanController(service.NewWorkflow(store), names)
	app.Post("/daily-plans", ctrl.SubmitPlan)
	app.Patch("/daily-plans/:id", ctrl.RevisePlan)
	app.Get("/daily-plans/today", ctrl.TodayPlans)
	app.Get("/daily-plans/pending", ctrl.PendingPlans)
	app.Patch("/daily-plans/:id/approve", ctrl.ApprovePlan)
	app.Delete("/daily-plans/:id", ctrl.RejectPlan)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, parsed
}

func TestSubmitPlanHappyPath(t *testing.T) {
	store := newMemPlanStore()
	staffID, itemID := uuid.New(), uuid.New()
	app := newTestApp(store, staticNames{itemID: "Pho Bo"}, staffID)

	resp, body := doJSON(t, app, http.MethodPost, "/daily-plans", fiber.Map{
		"item_id":          itemID.String(),
		"planned_quantity": 40,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%v)", resp.StatusCode, body)
	}

	data, _ := body["data"].(map[string]any)
	if data["state"] != "PENDING" {
		t.Fatalf("state = %v, want PENDING", data["state"])
	}
	if data["planned_quantity"] != float64(40) || data["remaining_quantity"] != float64(40) {
		t.Fatalf("quantities = %v/%v, want 40/40", data["planned_quantity"], data["remaining_quantity"])
	}
	if data["item_name"] != "Pho Bo" {
		t.Fatalf("item_name = %v, want resolved dish name", data["item_name"])
	}
	if data["plan_date"] != helper.TodayICT() {
		t.Fatalf("plan_date = %v, want today's Indochina date", data["plan_date"])
	}
}

func TestSubmitPlanRejectsBadQuantity(t *testing.T) {
	store := newMemPlanStore()
	staffID := uuid.New()
	app := newTestApp(store, staticNames{}, staffID)

	resp, _ := doJSON(t, app, http.MethodPost, "/daily-plans", fiber.Map{
		"item_id":          uuid.NewString(),
		"planned_quantity": 0,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if len(store.plans) != 0 {
		t.Fatal("invalid submission reached the store")
	}
}

func TestResubmitOverwritesPendingPlan(t *testing.T) {
	store := newMemPlanStore()
	staffID, itemID := uuid.New(), uuid.New()
	app := newTestApp(store, staticNames{}, staffID)

	resp, first := doJSON(t, app, http.MethodPost, "/daily-plans", fiber.Map{
		"item_id": itemID.String(), "planned_quantity": 10,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first submit status = %d", resp.StatusCode)
	}
	firstID := first["data"].(map[string]any)["plan_id"].(string)

	resp, second := doJSON(t, app, http.MethodPost, "/daily-plans", fiber.Map{
		"item_id": itemID.String(), "planned_quantity": 30,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resubmit status = %d, want 200 (%v)", resp.StatusCode, second)
	}
	data := second["data"].(map[string]any)
	if data["plan_id"] != firstID {
		t.Fatal("resubmit created a second record instead of overwriting")
	}
	if data["planned_quantity"] != float64(30) {
		t.Fatalf("resubmit quantity = %v, want 30", data["planned_quantity"])
	}
	if len(store.plans) != 1 {
		t.Fatalf("store holds %d plans, want 1", len(store.plans))
	}
}

func TestSubmitApprovedPlanConflicts(t *testing.T) {
	store := newMemPlanStore()
	staffID, itemID := uuid.New(), uuid.New()
	app := newTestApp(store, staticNames{}, staffID)

	payload := fiber.Map{"item_id": itemID.String(), "planned_quantity": 10}
	_, created := doJSON(t, app, http.MethodPost, "/daily-plans", payload)
	planID := created["data"].(map[string]any)["plan_id"].(string)
	if resp, _ := doJSON(t, app, http.MethodPatch, "/daily-plans/"+planID+"/approve", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/daily-plans", payload)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("submit over approved status = %d, want 409 (%v)", resp.StatusCode, body)
	}
	if body["error_code"] != "CONFLICT" {
		t.Fatalf("error_code = %v, want CONFLICT", body["error_code"])
	}
}

func TestReviseThenApproveFlow(t *testing.T) {
	store := newMemPlanStore()
	staffID, itemID := uuid.New(), uuid.New()
	app := newTestApp(store, staticNames{}, staffID)

	_, created := doJSON(t, app, http.MethodPost, "/daily-plans", fiber.Map{
		"item_id":          itemID.String(),
		"planned_quantity": 40,
	})
	planID := created["data"].(map[string]any)["plan_id"].(string)

	resp, body := doJSON(t, app, http.MethodPatch, "/daily-plans/"+planID, fiber.Map{
		"planned_quantity": 25,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("revise status = %d (%v)", resp.StatusCode, body)
	}
	if q := body["data"].(map[string]any)["planned_quantity"]; q != float64(25) {
		t.Fatalf("revised quantity = %v, want 25", q)
	}

	resp, _ = doJSON(t, app, http.MethodPatch, "/daily-plans/"+planID+"/approve", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}

	// The plan is locked now.
	resp, _ = doJSON(t, app, http.MethodPatch, "/daily-plans/"+planID, fiber.Map{"planned_quantity": 5})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("revise after approval status = %d, want 409", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, http.MethodDelete, "/daily-plans/"+planID, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("reject after approval status = %d, want 409", resp.StatusCode)
	}
}

func TestRejectThenResubmit(t *testing.T) {
	store := newMemPlanStore()
	staffID, itemID := uuid.New(), uuid.New()
	app := newTestApp(store, staticNames{}, staffID)

	payload := fiber.Map{"item_id": itemID.String(), "planned_quantity": 40}
	_, created := doJSON(t, app, http.MethodPost, "/daily-plans", payload)
	planID := created["data"].(map[string]any)["plan_id"].(string)

	resp, _ := doJSON(t, app, http.MethodDelete, "/daily-plans/"+planID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reject status = %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, http.MethodPost, "/daily-plans", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("resubmit after rejection status = %d, want 201", resp.StatusCode)
	}
}

func TestReviseForeignPlanIsNotFound(t *testing.T) {
	store := newMemPlanStore()
	owner, intruder := uuid.New(), uuid.New()

	ownerApp := newTestApp(store, staticNames{}, owner)
	_, created := doJSON(t, ownerApp, http.MethodPost, "/daily-plans", fiber.Map{
		"item_id":          uuid.NewString(),
		"planned_quantity": 10,
	})
	planID := created["data"].(map[string]any)["plan_id"].(string)

	intruderApp := newTestApp(store, staticNames{}, intruder)
	resp, _ := doJSON(t, intruderApp, http.MethodPatch, "/daily-plans/"+planID, fiber.Map{
		"planned_quantity": 99,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign revise status = %d, want 404", resp.StatusCode)
	}
}

func TestTodayAndPendingViews(t *testing.T) {
	store := newMemPlanStore()
	chefA, chefB := uuid.New(), uuid.New()
	appA := newTestApp(store, staticNames{}, chefA)
	appB := newTestApp(store, staticNames{}, chefB)

	_, created := doJSON(t, appA, http.MethodPost, "/daily-plans", fiber.Map{
		"item_id": uuid.NewString(), "planned_quantity": 10,
	})
	planA := created["data"].(map[string]any)["plan_id"].(string)
	doJSON(t, appB, http.MethodPost, "/daily-plans", fiber.Map{
		"item_id": uuid.NewString(), "planned_quantity": 20,
	})

	_, body := doJSON(t, appA, http.MethodGet, "/daily-plans/today", nil)
	if n := len(body["data"].([]any)); n != 1 {
		t.Fatalf("chef A sees %d plans, want only their own 1", n)
	}

	_, body = doJSON(t, appA, http.MethodGet, "/daily-plans/pending", nil)
	if n := len(body["data"].([]any)); n != 2 {
		t.Fatalf("pending count = %d, want 2", n)
	}

	doJSON(t, appA, http.MethodPatch, fmt.Sprintf("/daily-plans/%s/approve", planA), nil)
	_, body = doJSON(t, appA, http.MethodGet, "/daily-plans/pending", nil)
	if n := len(body["data"].([]any)); n != 1 {
		t.Fatalf("pending after approval = %d, want 1", n)
	}
}

func TestPendingRejectsMalformedDate(t *testing.T) {
	app := newTestApp(newMemPlanStore(), staticNames{}, uuid.New())
	resp, _ := doJSON(t, app, http.MethodGet, "/daily-plans/pending?date=01-06-2025", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
