// Package provider holds the boundary types shared by outbound adapters.
package provider

import (
	"fmt"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

// FailureKind classifies why a generation call did not yield text.
type FailureKind int

const (
	KindConfig FailureKind = iota + 1
	KindOverload
	KindTransport
	KindBadStatus
	KindEmptyResponse
)

func (k FailureKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindOverload:
		return "overload"
	case KindTransport:
		return "transport"
	case KindBadStatus:
		return "bad_status"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// Retryable reports whether the retry budget applies to this kind.
func (k FailureKind) Retryable() bool {
	return k == KindOverload || k == KindTransport
}

// sentinel maps a kind to the domain error callers match on.
func (k FailureKind) sentinel() error {
	switch k {
	case KindConfig:
		return domain.ErrAIMisconfigured
	case KindOverload, KindTransport:
		return domain.ErrAIUnavailable
	case KindBadStatus:
		return domain.ErrAIRequestFailed
	default:
		return domain.ErrAIInvalidResponse
	}
}

// GenerationError is the failed side of a generation call. The successful
// side is the plain text return value.
type GenerationError struct {
	Kind       FailureKind
	Attempts   int
	StatusCode int    // set for KindOverload and KindBadStatus
	Body       string // upstream response body, diagnostics only
	Err        error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindBadStatus:
		return fmt.Sprintf("generation failed: status %d: %s", e.StatusCode, e.Body)
	case KindOverload, KindTransport:
		if e.Err != nil {
			return fmt.Sprintf("generation %s after %d attempts: %v", e.Kind, e.Attempts, e.Err)
		}
		return fmt.Sprintf("generation %s after %d attempts", e.Kind, e.Attempts)
	default:
		if e.Err != nil {
			return fmt.Sprintf("generation %s: %v", e.Kind, e.Err)
		}
		return "generation " + e.Kind.String()
	}
}

// Unwrap exposes both the domain sentinel and the underlying cause.
func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}
