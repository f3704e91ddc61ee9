// Package assistant answers free-form study questions in a multi-turn
// conversation. The conversation lives with the caller; every request
// carries the full history.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/pkg/ctxutil"
)

const (
	MaxTurns       = 50
	MaxMessageSize = 4000
)

type chatClient interface {
	Chat(ctx context.Context, history []domain.ChatMessage) (string, error)
}

// Service provides assistant chat for the session user.
type Service struct {
	client chatClient
	log    *slog.Logger
}

// NewService creates a new assistant service.
func NewService(log *slog.Logger, client chatClient) *Service {
	return &Service{
		client: client,
		log:    log.With("service", "assistant"),
	}
}

// ChatInput holds the conversation so far, oldest turn first.
type ChatInput struct {
	History []domain.ChatMessage
}

// Validate checks all turns and collects all errors.
func (i ChatInput) Validate() error {
	if len(i.History) == 0 {
		return domain.NewValidationError("history", "required")
	}
	if len(i.History) > MaxTurns {
		return domain.NewValidationError("history", fmt.Sprintf("max %d turns", MaxTurns))
	}

	var errs []domain.FieldError
	for n, msg := range i.History {
		field := fmt.Sprintf("history[%d]", n)
		if !msg.Role.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".role", Message: "must be user or model"})
		}
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			errs = append(errs, domain.FieldError{Field: field + ".text", Message: "required"})
		} else if len([]rune(text)) > MaxMessageSize {
			errs = append(errs, domain.FieldError{Field: field + ".text", Message: fmt.Sprintf("max %d characters", MaxMessageSize)})
		}
	}
	if last := i.History[len(i.History)-1]; last.Role != domain.ChatRoleUser {
		errs = append(errs, domain.FieldError{Field: "history", Message: "last turn must be from the user"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Chat returns the model's reply to the last user turn.
func (s *Service) Chat(ctx context.Context, input ChatInput) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return "", err
	}

	history := make([]domain.ChatMessage, len(input.History))
	for n, msg := range input.History {
		history[n] = domain.ChatMessage{Role: msg.Role, Text: strings.TrimSpace(msg.Text)}
	}

	reply, err := s.client.Chat(ctx, history)
	if err != nil {
		return "", fmt.Errorf("assistant chat: %w", err)
	}

	s.log.DebugContext(ctx, "assistant replied",
		slog.String("user_id", userID.String()),
		slog.Int("turns", len(history)),
	)
	return strings.TrimSpace(reply), nil
}
