// Package studyplan generates study plans with a text model and keeps them
// in the plan store.
package studyplan

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type planRepo interface {
	CreatePlan(ctx context.Context, userID uuid.UUID, topic string) (*domain.StudyPlan, error)
	UpdateTopic(ctx context.Context, userID, planID uuid.UUID, topic string) error
	GetPlan(ctx context.Context, userID, planID uuid.UUID) (*domain.StudyPlan, error)
	LatestPlan(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, error)
	ListPlans(ctx context.Context, userID uuid.UUID) ([]domain.StudyPlan, error)
	DeletePlan(ctx context.Context, userID, planID uuid.UUID) error

	ReplaceItems(ctx context.Context, planID uuid.UUID, tasks []string) ([]domain.StudyPlanItem, error)
	ListItems(ctx context.Context, planID uuid.UUID) ([]domain.StudyPlanItem, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.StudyPlanItem, error)
	SetCompleted(ctx context.Context, userID, itemID uuid.UUID, completed bool) error
	SetDetails(ctx context.Context, userID, itemID uuid.UUID, details string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Limits bounds user input and model output.
type Limits struct {
	MaxTopicLength  int
	MaxTasksPerPlan int
}

// DefaultLimits matches the configuration defaults.
var DefaultLimits = Limits{MaxTopicLength: 200, MaxTasksPerPlan: 30}

// Service provides study plan operations for the session user.
type Service struct {
	gen    textGenerator
	plans  planRepo
	tx     txManager
	limits Limits
	log    *slog.Logger
}

// NewService creates a new study plan service.
func NewService(
	log *slog.Logger,
	gen textGenerator,
	plans planRepo,
	tx txManager,
	limits Limits,
) *Service {
	if limits.MaxTopicLength <= 0 {
		limits.MaxTopicLength = DefaultLimits.MaxTopicLength
	}
	if limits.MaxTasksPerPlan <= 0 {
		limits.MaxTasksPerPlan = DefaultLimits.MaxTasksPerPlan
	}
	return &Service{
		gen:    gen,
		plans:  plans,
		tx:     tx,
		limits: limits,
		log:    log.With("service", "studyplan"),
	}
}
