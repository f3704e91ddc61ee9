package studyplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/pkg/ctxutil"
)

// GeneratePlan asks the model for a roadmap on input.Topic and stores it as
// a new plan. The plan and its items are written in one transaction, so a
// failure leaves no plan behind.
func (s *Service) GeneratePlan(ctx context.Context, input GeneratePlanInput) (*domain.PlanWithItems, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits.MaxTopicLength); err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(input.Topic)

	tasks, err := s.generateTasks(ctx, topic)
	if err != nil {
		return nil, err
	}

	var result domain.PlanWithItems
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		plan, err := s.plans.CreatePlan(txCtx, userID, topic)
		if err != nil {
			return fmt.Errorf("create plan: %w", err)
		}
		items, err := s.plans.ReplaceItems(txCtx, plan.ID, tasks)
		if err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		result = domain.PlanWithItems{Plan: *plan, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "study plan generated",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", result.Plan.ID.String()),
		slog.Int("items", len(result.Items)),
	)

	return &result, nil
}

// RegeneratePlan replaces the items of an existing plan with a fresh
// roadmap. The plan keeps its id; on any failure the stored plan is left
// exactly as it was.
func (s *Service) RegeneratePlan(ctx context.Context, input RegeneratePlanInput) (*domain.PlanWithItems, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits.MaxTopicLength); err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(input.Topic)

	plan, err := s.plans.GetPlan(ctx, userID, input.PlanID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	tasks, err := s.generateTasks(ctx, topic)
	if err != nil {
		return nil, err
	}

	var items []domain.StudyPlanItem
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.plans.UpdateTopic(txCtx, userID, plan.ID, topic); err != nil {
			return fmt.Errorf("update topic: %w", err)
		}
		var err error
		items, err = s.plans.ReplaceItems(txCtx, plan.ID, tasks)
		if err != nil {
			return fmt.Errorf("replace items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	plan.Topic = topic

	s.log.InfoContext(ctx, "study plan regenerated",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", plan.ID.String()),
		slog.Int("items", len(items)),
	)

	return &domain.PlanWithItems{Plan: *plan, Items: items}, nil
}

// generateTasks runs prompt, model call and parsing, and returns display
// ready labels.
func (s *Service) generateTasks(ctx context.Context, topic string) ([]string, error) {
	raw, err := s.gen.Generate(ctx, BuildPlanPrompt(topic))
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	tasks, err := ParsePlanTasks(raw)
	if err != nil {
		var ferr *PlanFormatError
		if errors.As(err, &ferr) {
			s.log.WarnContext(ctx, "unparseable plan output",
				slog.String("topic", topic),
				slog.String("cleaned", ferr.Cleaned),
				slog.String("error", ferr.Err.Error()),
			)
		}
		return nil, err
	}

	labels := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if label := cleanTaskLabel(t); label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		s.log.WarnContext(ctx, "plan output has only blank tasks", slog.String("topic", topic))
		return nil, &PlanFormatError{Cleaned: raw, Err: errors.New("all tasks are blank")}
	}
	if len(labels) > s.limits.MaxTasksPerPlan {
		s.log.InfoContext(ctx, "plan truncated",
			slog.Int("generated", len(labels)),
			slog.Int("kept", s.limits.MaxTasksPerPlan),
		)
		labels = labels[:s.limits.MaxTasksPerPlan]
	}
	return labels, nil
}

// planWithItems loads items for an already authorised plan.
func (s *Service) planWithItems(ctx context.Context, plan *domain.StudyPlan) (*domain.PlanWithItems, error) {
	items, err := s.plans.ListItems(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &domain.PlanWithItems{Plan: *plan, Items: items}, nil
}

func requireUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}
