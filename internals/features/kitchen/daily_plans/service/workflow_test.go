package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"isp392_backend/internals/features/kitchen/daily_plans/model"
)

// fakePlanStore keeps plans in a map and counts writes, so tests can assert
// that invalid input never reaches persistence.
type fakePlanStore struct {
	plans   map[uuid.UUID]model.DailyPlanModel
	creates int
	now     time.Time
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{
		plans: map[uuid.UUID]model.DailyPlanModel{},
		now:   time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fakePlanStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakePlanStore) ListByStaffDate(_ context.Context, staffID uuid.UUID, date string) ([]model.DailyPlanModel, error) {
	var out []model.DailyPlanModel
	for _, p := range f.plans {
		if p.DailyPlanStaffID == staffID && p.DailyPlanDate == date {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanStore) ListPendingByDate(_ context.Context, date string) ([]model.DailyPlanModel, error) {
	var out []model.DailyPlanModel
	for _, p := range f.plans {
		if p.DailyPlanDate == date && !p.DailyPlanStatus {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanStore) GetByID(_ context.Context, planID uuid.UUID) (*model.DailyPlanModel, error) {
	p, ok := f.plans[planID]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return &p, nil
}

func (f *fakePlanStore) Create(_ context.Context, plan *model.DailyPlanModel) error {
	f.creates++
	for _, p := range f.plans {
		if p.DailyPlanStaffID == plan.DailyPlanStaffID &&
			p.DailyPlanItemID == plan.DailyPlanItemID &&
			p.DailyPlanDate == plan.DailyPlanDate {
			return ErrDuplicatePlan
		}
	}
	plan.DailyPlanID = uuid.New()
	plan.CreatedAt = f.tick()
	f.plans[plan.DailyPlanID] = *plan
	return nil
}

func (f *fakePlanStore) UpdateQuantities(_ context.Context, planID uuid.UUID, quantity int) error {
	p, ok := f.plans[planID]
	if !ok {
		return ErrPlanNotFound
	}
	p.DailyPlanPlannedQuantity = quantity
	p.DailyPlanRemainingQuantity = quantity
	f.plans[planID] = p
	return nil
}

func (f *fakePlanStore) Approve(_ context.Context, planID uuid.UUID) error {
	p, ok := f.plans[planID]
	if !ok {
		return ErrPlanNotFound
	}
	p.DailyPlanStatus = true
	f.plans[planID] = p
	return nil
}

func (f *fakePlanStore) Delete(_ context.Context, planID uuid.UUID) error {
	if _, ok := f.plans[planID]; !ok {
		return ErrPlanNotFound
	}
	delete(f.plans, planID)
	return nil
}

// inject adds a row directly, bypassing the uniqueness check, for the
// legacy-duplicate tests.
func (f *fakePlanStore) inject(p model.DailyPlanModel) {
	if p.DailyPlanID == uuid.Nil {
		p.DailyPlanID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = f.tick()
	}
	f.plans[p.DailyPlanID] = p
}

func TestProposeRejectsNonPositiveQuantity(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	for _, q := range []int{0, -1, -50} {
		if _, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", q); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: want ErrInvalidQuantity, got %v", q, err)
		}
	}
	if store.creates != 0 {
		t.Fatalf("store was written %d times for invalid input", store.creates)
	}
	state, _, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if state != StateNone {
		t.Fatalf("state after rejected proposals = %s, want NONE", state)
	}
}

func TestProposeCreatesPendingPlan(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	plan, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 40)
	if err != nil {
		t.Fatal(err)
	}
	if plan.DailyPlanPlannedQuantity != 40 || plan.DailyPlanRemainingQuantity != 40 {
		t.Fatalf("quantities = %d/%d, want 40/40",
			plan.DailyPlanPlannedQuantity, plan.DailyPlanRemainingQuantity)
	}
	if plan.DailyPlanStatus {
		t.Fatal("new plan must not be approved")
	}
	if plan.DailyPlanItemType != model.ItemTypeDish {
		t.Fatalf("item type = %q, want DISH default", plan.DailyPlanItemType)
	}

	state, found, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if state != StatePending {
		t.Fatalf("state = %s, want PENDING", state)
	}
	if found.DailyPlanID != plan.DailyPlanID {
		t.Fatal("FindState returned a different record")
	}
}

func TestProposeDuplicateTupleConflicts(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	if _, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 10); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 99); !errors.Is(err, ErrDuplicatePlan) {
		t.Fatalf("want ErrDuplicatePlan, got %v", err)
	}

	// Same item on another date, and another item on the same date, are fine.
	if _, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-02", 10); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Propose(context.Background(), staffID, uuid.New(), "", "2025-06-01", 10); err != nil {
		t.Fatal(err)
	}
}

func TestReviseKeepsIdentityAndStatus(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	plan, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 40)
	if err != nil {
		t.Fatal(err)
	}

	revised, err := w.Revise(context.Background(), plan.DailyPlanID, 25)
	if err != nil {
		t.Fatal(err)
	}
	if revised.DailyPlanID != plan.DailyPlanID {
		t.Fatal("revision changed the plan id")
	}
	if revised.DailyPlanPlannedQuantity != 25 || revised.DailyPlanRemainingQuantity != 25 {
		t.Fatalf("quantities = %d/%d, want 25/25",
			revised.DailyPlanPlannedQuantity, revised.DailyPlanRemainingQuantity)
	}

	state, found, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if state != StatePending {
		t.Fatalf("state after revision = %s, want PENDING", state)
	}
	if found.DailyPlanPlannedQuantity != 25 {
		t.Fatalf("stored quantity = %d, want 25", found.DailyPlanPlannedQuantity)
	}
}

func TestReviseRejectsInvalidQuantityWithoutWrite(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	plan, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 40)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := w.Revise(context.Background(), plan.DailyPlanID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity, got %v", err)
	}
	stored, err := store.GetByID(context.Background(), plan.DailyPlanID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.DailyPlanPlannedQuantity != 40 {
		t.Fatalf("quantity changed to %d after rejected revision", stored.DailyPlanPlannedQuantity)
	}
}

func TestApproveLocksThePlan(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	plan, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 40)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Approve(context.Background(), plan.DailyPlanID); err != nil {
		t.Fatal(err)
	}

	state, found, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if state != StateApproved {
		t.Fatalf("state = %s, want APPROVED", state)
	}
	if found.DailyPlanPlannedQuantity != 40 {
		t.Fatalf("approval changed quantity to %d", found.DailyPlanPlannedQuantity)
	}

	if err := w.Approve(context.Background(), plan.DailyPlanID); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("second approve: want ErrAlreadyApproved, got %v", err)
	}
	if _, err := w.Revise(context.Background(), plan.DailyPlanID, 10); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("revise after approval: want ErrAlreadyApproved, got %v", err)
	}
	if err := w.Reject(context.Background(), plan.DailyPlanID); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("reject after approval: want ErrAlreadyApproved, got %v", err)
	}
}

func TestRejectDeletesAndAllowsReproposal(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	plan, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 40)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Reject(context.Background(), plan.DailyPlanID); err != nil {
		t.Fatal(err)
	}

	state, _, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if state != StateNone {
		t.Fatalf("state after rejection = %s, want NONE", state)
	}

	again, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 15)
	if err != nil {
		t.Fatalf("re-proposal after rejection failed: %v", err)
	}
	if again.DailyPlanID == plan.DailyPlanID {
		t.Fatal("re-proposal reused the deleted plan id")
	}
	if again.DailyPlanPlannedQuantity != 15 {
		t.Fatalf("re-proposed quantity = %d, want 15", again.DailyPlanPlannedQuantity)
	}
}

func TestRejectUnknownPlan(t *testing.T) {
	w := NewWorkflow(newFakePlanStore())
	if err := w.Reject(context.Background(), uuid.New()); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("want ErrPlanNotFound, got %v", err)
	}
}

func TestFindStateIsReadOnly(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	if _, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 40); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		state, _, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
		if err != nil {
			t.Fatal(err)
		}
		if state != StatePending {
			t.Fatalf("read %d: state = %s, want PENDING", i, state)
		}
	}
	if store.creates != 1 {
		t.Fatalf("reads caused writes: creates = %d", store.creates)
	}
}

func TestPlansAreScopedToTheirDate(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	if _, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-01", 40); err != nil {
		t.Fatal(err)
	}

	state, _, err := w.FindState(context.Background(), staffID, itemID, "2025-06-02")
	if err != nil {
		t.Fatal(err)
	}
	if state != StateNone {
		t.Fatalf("next-day state = %s, want NONE", state)
	}

	next, err := w.Propose(context.Background(), staffID, itemID, "", "2025-06-02", 60)
	if err != nil {
		t.Fatal(err)
	}

	day1, err := w.PlansFor(context.Background(), staffID, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(day1) != 1 || day1[0].DailyPlanPlannedQuantity != 40 {
		t.Fatalf("day 1 plans = %+v", day1)
	}
	day2, err := w.PlansFor(context.Background(), staffID, "2025-06-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(day2) != 1 || day2[0].DailyPlanID != next.DailyPlanID {
		t.Fatalf("day 2 plans = %+v", day2)
	}
}

func TestPendingForExcludesApproved(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)

	a, err := w.Propose(context.Background(), uuid.New(), uuid.New(), "", "2025-06-01", 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Propose(context.Background(), uuid.New(), uuid.New(), "", "2025-06-01", 20); err != nil {
		t.Fatal(err)
	}
	if err := w.Approve(context.Background(), a.DailyPlanID); err != nil {
		t.Fatal(err)
	}

	pending, err := w.PendingFor(context.Background(), "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending count = %d, want 1", len(pending))
	}
	if pending[0].DailyPlanID == a.DailyPlanID {
		t.Fatal("approved plan still listed as pending")
	}
}

func TestFindStatePicksOldestOnLegacyDuplicates(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()

	older := model.DailyPlanModel{
		DailyPlanItemID:            itemID,
		DailyPlanItemType:          model.ItemTypeDish,
		DailyPlanDate:              "2025-06-01",
		DailyPlanStaffID:           staffID,
		DailyPlanPlannedQuantity:   40,
		DailyPlanRemainingQuantity: 40,
	}
	store.inject(older)
	newer := older
	newer.DailyPlanID = uuid.Nil
	newer.DailyPlanPlannedQuantity = 99
	store.inject(newer)

	state, found, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if state != StatePending {
		t.Fatalf("state = %s, want PENDING", state)
	}
	if found.DailyPlanPlannedQuantity != 40 {
		t.Fatalf("picked quantity %d, want the oldest row (40)", found.DailyPlanPlannedQuantity)
	}

	// Repeated reads must settle on the same row.
	for i := 0; i < 5; i++ {
		_, again, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
		if err != nil {
			t.Fatal(err)
		}
		if again.DailyPlanID != found.DailyPlanID {
			t.Fatal("duplicate resolution is not deterministic")
		}
	}
}

func TestFindStateBreaksCreatedAtTiesByID(t *testing.T) {
	store := newFakePlanStore()
	w := NewWorkflow(store)
	staffID, itemID := uuid.New(), uuid.New()
	sameTime := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

	idA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	idB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	for _, p := range []model.DailyPlanModel{
		{DailyPlanID: idB, DailyPlanItemID: itemID, DailyPlanDate: "2025-06-01",
			DailyPlanStaffID: staffID, DailyPlanPlannedQuantity: 2, CreatedAt: sameTime},
		{DailyPlanID: idA, DailyPlanItemID: itemID, DailyPlanDate: "2025-06-01",
			DailyPlanStaffID: staffID, DailyPlanPlannedQuantity: 1, CreatedAt: sameTime},
	} {
		store.inject(p)
	}

	_, found, err := w.FindState(context.Background(), staffID, itemID, "2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if found.DailyPlanID != idA {
		t.Fatalf("picked %s, want lowest id %s", found.DailyPlanID, idA)
	}
}
