package studyplan

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

// GeneratePlanInput holds the parameters for generating a new plan.
type GeneratePlanInput struct {
	Topic string
}

// Validate checks all fields and collects all errors.
func (i GeneratePlanInput) Validate(maxTopic int) error {
	if errs := validateTopic(i.Topic, maxTopic); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RegeneratePlanInput holds the parameters for regenerating an existing plan.
type RegeneratePlanInput struct {
	PlanID uuid.UUID
	Topic  string
}

// Validate checks all fields and collects all errors.
func (i RegeneratePlanInput) Validate(maxTopic int) error {
	var errs []domain.FieldError
	if i.PlanID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "plan_id", Message: "required"})
	}
	errs = append(errs, validateTopic(i.Topic, maxTopic)...)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetCompletedInput holds the parameters for marking an item.
type SetCompletedInput struct {
	ItemID    uuid.UUID
	Completed bool
}

// Validate checks all fields and collects all errors.
func (i SetCompletedInput) Validate() error {
	if i.ItemID == uuid.Nil {
		return domain.NewValidationError("item_id", "required")
	}
	return nil
}

func validateTopic(topic string, maxTopic int) []domain.FieldError {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return []domain.FieldError{{Field: "topic", Message: "required"}}
	}
	if utf8.RuneCountInString(topic) > maxTopic {
		return []domain.FieldError{{Field: "topic", Message: fmt.Sprintf("max %d characters", maxTopic)}}
	}
	return nil
}
