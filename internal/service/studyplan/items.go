package studyplan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

// SetCompleted stores the completion flag of one item. Setting the value it
// already has is not an error.
func (s *Service) SetCompleted(ctx context.Context, input SetCompletedInput) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.plans.SetCompleted(ctx, userID, input.ItemID, input.Completed); err != nil {
		return fmt.Errorf("set completed: %w", err)
	}
	return nil
}

// ItemDetails returns the elaboration text of an item. Stored text is
// returned as is; otherwise it is generated, cleaned and stored first.
func (s *Service) ItemDetails(ctx context.Context, itemID uuid.UUID) (string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return "", err
	}
	if itemID == uuid.Nil {
		return "", domain.NewValidationError("item_id", "required")
	}

	item, err := s.plans.GetItem(ctx, userID, itemID)
	if err != nil {
		return "", fmt.Errorf("get item: %w", err)
	}
	if item.HasDetails() {
		return *item.Details, nil
	}

	plan, err := s.plans.GetPlan(ctx, userID, item.PlanID)
	if err != nil {
		return "", fmt.Errorf("get plan: %w", err)
	}

	raw, err := s.gen.Generate(ctx, BuildDetailPrompt(item.Task, plan.Topic))
	if err != nil {
		return "", fmt.Errorf("generate details: %w", err)
	}
	details := CleanDetailText(raw)

	if err := s.plans.SetDetails(ctx, userID, item.ID, details); err != nil {
		return "", fmt.Errorf("store details: %w", err)
	}

	s.log.DebugContext(ctx, "item details generated",
		slog.String("item_id", item.ID.String()),
		slog.Int("length", len(details)),
	)
	return details, nil
}
