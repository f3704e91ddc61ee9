package studyplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

// LatestPlan returns the most recently created plan of the session user
// with its items, or nil when the user has none.
func (s *Service) LatestPlan(ctx context.Context) (*domain.PlanWithItems, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.LatestPlan(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest plan: %w", err)
	}
	return s.planWithItems(ctx, plan)
}

// GetPlan returns one plan of the session user with its items.
func (s *Service) GetPlan(ctx context.Context, planID uuid.UUID) (*domain.PlanWithItems, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if planID == uuid.Nil {
		return nil, domain.NewValidationError("plan_id", "required")
	}

	plan, err := s.plans.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return s.planWithItems(ctx, plan)
}

// ListPlans returns all plans of the session user, newest first.
func (s *Service) ListPlans(ctx context.Context) ([]domain.StudyPlan, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	plans, err := s.plans.ListPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// DeletePlan removes a plan; its items go with it.
func (s *Service) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if planID == uuid.Nil {
		return domain.NewValidationError("plan_id", "required")
	}

	if err := s.plans.DeletePlan(ctx, userID, planID); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	s.log.InfoContext(ctx, "study plan deleted",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", planID.String()),
	)
	return nil
}
