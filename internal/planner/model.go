// Package planner holds the interactive state of a study planning session:
// which plan is shown, whether a generation is running and which items are
// expanded. Front ends (the CLI, a future UI) drive it through explicit user
// actions only.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/internal/service/studyplan"
)

type planService interface {
	GeneratePlan(ctx context.Context, input studyplan.GeneratePlanInput) (*domain.PlanWithItems, error)
	RegeneratePlan(ctx context.Context, input studyplan.RegeneratePlanInput) (*domain.PlanWithItems, error)
	LatestPlan(ctx context.Context) (*domain.PlanWithItems, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*domain.PlanWithItems, error)
	ListPlans(ctx context.Context) ([]domain.StudyPlan, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) error
	SetCompleted(ctx context.Context, input studyplan.SetCompletedInput) error
	ItemDetails(ctx context.Context, itemID uuid.UUID) (string, error)
}

// State is the screen level state.
type State int

const (
	// StateIdle shows the topic form; no plan is loaded.
	StateIdle State = iota
	// StateGenerating has a generation request in flight.
	StateGenerating
	// StateReady shows a plan and its items.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// DetailState is the per-item elaboration state. It is independent of the
// item's completion flag.
type DetailState int

const (
	DetailsCollapsed DetailState = iota
	DetailsFetching
	DetailsExpanded
)

func (s DetailState) String() string {
	switch s {
	case DetailsCollapsed:
		return "collapsed"
	case DetailsFetching:
		return "fetching"
	case DetailsExpanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// Model is the planner view-model. It is safe for concurrent use; service
// calls are made without holding the lock, so independent actions may
// complete in any order.
type Model struct {
	svc planService
	log *slog.Logger

	mu      sync.Mutex
	state   State
	topic   string
	plan    *domain.PlanWithItems
	details map[uuid.UUID]DetailState
}

// New creates an idle Model.
func New(log *slog.Logger, svc planService) *Model {
	return &Model{
		svc:     svc,
		log:     log.With("component", "planner"),
		details: make(map[uuid.UUID]DetailState),
	}
}

// Load shows the most recent plan of the session user, or the topic form
// when there is none.
func (m *Model) Load(ctx context.Context) error {
	if err := m.requireNotGenerating(); err != nil {
		return err
	}

	plan, err := m.svc.LatestPlan(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.show(plan)
	if plan != nil {
		m.topic = plan.Plan.Topic
	}
	return nil
}

// SetTopic stores the topic typed by the user.
func (m *Model) SetTopic(topic string) {
	m.mu.Lock()
	m.topic = topic
	m.mu.Unlock()
}

// Topic returns the topic typed by the user. It survives failed generations.
func (m *Model) Topic() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.topic
}

// Generate creates a plan for the current topic, or regenerates the shown
// plan when one is loaded. On failure the previously shown plan is reloaded
// from the store and the error is returned; the topic is kept.
func (m *Model) Generate(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateGenerating {
		m.mu.Unlock()
		return domain.ErrConflict
	}
	topic := m.topic
	if strings.TrimSpace(topic) == "" {
		m.mu.Unlock()
		return domain.NewValidationError("topic", "required")
	}
	var prevID uuid.UUID
	if m.state == StateReady && m.plan != nil {
		prevID = m.plan.Plan.ID
	}
	m.state = StateGenerating
	m.mu.Unlock()

	var (
		plan *domain.PlanWithItems
		err  error
	)
	if prevID != uuid.Nil {
		plan, err = m.svc.RegeneratePlan(ctx, studyplan.RegeneratePlanInput{PlanID: prevID, Topic: topic})
	} else {
		plan, err = m.svc.GeneratePlan(ctx, studyplan.GeneratePlanInput{Topic: topic})
	}
	if err != nil {
		m.restore(ctx, prevID)
		return err
	}

	m.mu.Lock()
	m.show(plan)
	m.topic = plan.Plan.Topic
	m.mu.Unlock()
	return nil
}

// restore reloads the plan that was shown before a failed generation.
func (m *Model) restore(ctx context.Context, prevID uuid.UUID) {
	var plan *domain.PlanWithItems
	if prevID != uuid.Nil {
		var err error
		plan, err = m.svc.GetPlan(ctx, prevID)
		if err != nil {
			m.log.WarnContext(ctx, "reload after failed generation", slog.String("plan_id", prevID.String()), slog.String("error", err.Error()))
			plan = nil
		}
	}

	m.mu.Lock()
	m.show(plan)
	m.mu.Unlock()
}

// Clear returns to the topic form without deleting anything.
func (m *Model) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateGenerating {
		return domain.ErrConflict
	}
	m.show(nil)
	return nil
}

// Select shows another plan of the session user.
func (m *Model) Select(ctx context.Context, planID uuid.UUID) error {
	if err := m.requireNotGenerating(); err != nil {
		return err
	}

	plan, err := m.svc.GetPlan(ctx, planID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.show(plan)
	m.topic = plan.Plan.Topic
	return nil
}

// Plans lists the plans of the session user, newest first.
func (m *Model) Plans(ctx context.Context) ([]domain.StudyPlan, error) {
	return m.svc.ListPlans(ctx)
}

// DeletePlan deletes a plan. Deleting the shown plan returns to the form.
func (m *Model) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	if err := m.requireNotGenerating(); err != nil {
		return err
	}

	if err := m.svc.DeletePlan(ctx, planID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plan != nil && m.plan.Plan.ID == planID {
		m.show(nil)
	}
	return nil
}

// SetCompleted marks an item of the shown plan. The change is visible
// immediately and undone if the store rejects it.
func (m *Model) SetCompleted(ctx context.Context, itemID uuid.UUID, completed bool) error {
	var prev bool
	return m.withOptimisticUpdate(ctx,
		func() error {
			it, err := m.item(itemID)
			if err != nil {
				return err
			}
			prev = it.Completed
			it.Completed = completed
			return nil
		},
		func() {
			// The shown plan may have changed meanwhile.
			if it, err := m.item(itemID); err == nil {
				it.Completed = prev
			}
		},
		func(ctx context.Context) error {
			return m.svc.SetCompleted(ctx, studyplan.SetCompletedInput{ItemID: itemID, Completed: completed})
		},
	)
}

// ToggleCompleted flips the completion flag of an item.
func (m *Model) ToggleCompleted(ctx context.Context, itemID uuid.UUID) error {
	m.mu.Lock()
	it, err := m.item(itemID)
	var next bool
	if err == nil {
		next = !it.Completed
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.SetCompleted(ctx, itemID, next)
}

// withOptimisticUpdate runs apply under the lock, then persist without it.
// When persist fails, revert runs under the lock and the error is returned.
func (m *Model) withOptimisticUpdate(ctx context.Context, apply func() error, revert func(), persist func(context.Context) error) error {
	m.mu.Lock()
	err := apply()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	if err := persist(ctx); err != nil {
		m.mu.Lock()
		revert()
		m.mu.Unlock()
		return err
	}
	return nil
}

// ToggleDetails expands or collapses an item. Expanding an item without
// stored details fetches them first; a fetch already in flight is left alone.
func (m *Model) ToggleDetails(ctx context.Context, itemID uuid.UUID) error {
	m.mu.Lock()
	it, err := m.item(itemID)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	switch m.details[itemID] {
	case DetailsExpanded:
		m.details[itemID] = DetailsCollapsed
		m.mu.Unlock()
		return nil
	case DetailsFetching:
		m.mu.Unlock()
		return nil
	}
	if it.HasDetails() {
		m.details[itemID] = DetailsExpanded
		m.mu.Unlock()
		return nil
	}
	m.details[itemID] = DetailsFetching
	m.mu.Unlock()

	text, err := m.svc.ItemDetails(ctx, itemID)

	m.mu.Lock()
	defer m.mu.Unlock()
	it, itemErr := m.item(itemID)
	if itemErr != nil {
		// Plan changed while fetching; the result is stored server side.
		return err
	}
	if err != nil {
		m.details[itemID] = DetailsCollapsed
		return err
	}
	it.Details = &text
	m.details[itemID] = DetailsExpanded
	return nil
}

// ItemView is an item together with its elaboration state.
type ItemView struct {
	domain.StudyPlanItem
	DetailState DetailState
}

// Snapshot is a copy of the model state for rendering.
type Snapshot struct {
	State    State
	Topic    string
	Plan     *domain.StudyPlan
	Items    []ItemView
	Progress int
	NextTask *domain.StudyPlanItem
}

// Snapshot returns a copy of the current state.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{State: m.state, Topic: m.topic}
	if m.plan == nil {
		return s
	}

	plan := m.plan.Plan
	s.Plan = &plan
	s.Items = make([]ItemView, len(m.plan.Items))
	for i, it := range m.plan.Items {
		if it.Details != nil {
			d := *it.Details
			it.Details = &d
		}
		s.Items[i] = ItemView{StudyPlanItem: it, DetailState: m.details[it.ID]}
	}
	s.Progress = m.plan.Progress()
	s.NextTask = m.plan.NextTask()
	return s
}

// show replaces the displayed plan. nil returns to the form. Callers hold mu.
func (m *Model) show(plan *domain.PlanWithItems) {
	m.details = make(map[uuid.UUID]DetailState)
	if plan == nil {
		m.plan = nil
		m.state = StateIdle
		return
	}
	cp := domain.PlanWithItems{Plan: plan.Plan, Items: append([]domain.StudyPlanItem(nil), plan.Items...)}
	m.plan = &cp
	m.state = StateReady
}

// item finds an item of the shown plan. Callers hold mu.
func (m *Model) item(itemID uuid.UUID) (*domain.StudyPlanItem, error) {
	if m.state == StateGenerating {
		return nil, domain.ErrConflict
	}
	if m.plan == nil {
		return nil, errNoPlan
	}
	for i := range m.plan.Items {
		if m.plan.Items[i].ID == itemID {
			return &m.plan.Items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *Model) requireNotGenerating() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateGenerating {
		return domain.ErrConflict
	}
	return nil
}

var errNoPlan = fmt.Errorf("no plan is shown: %w", domain.ErrNotFound)
