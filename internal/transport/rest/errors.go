package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

// retryAfterSeconds is advertised when the model is overloaded.
const retryAfterSeconds = 30

type errorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  []fieldErrorPayload `json:"fields,omitempty"`
}

type fieldErrorPayload struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// handleError maps a domain error to a status and a user-facing body.
// Upstream diagnostics go to the log only.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorResponse{
		Error:   statusCode(status),
		Message: domain.UserMessage(err),
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			body.Fields = append(body.Fields, fieldErrorPayload{Field: fe.Field, Message: fe.Message})
		}
	}

	switch {
	case status == http.StatusInternalServerError:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	case status >= 500:
		log.WarnContext(r.Context(), "ai request failed",
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}

	if errors.Is(err, domain.ErrAIUnavailable) {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	writeJSON(w, status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAIUnavailable), errors.Is(err, domain.ErrAIMisconfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrAIRequestFailed),
		errors.Is(err, domain.ErrAIInvalidResponse),
		errors.Is(err, domain.ErrAIFormat):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// statusCode is the machine-readable error code, e.g. "not_found".
func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_failed"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusServiceUnavailable:
		return "ai_unavailable"
	case http.StatusBadGateway:
		return "ai_failed"
	default:
		return "internal_error"
	}
}
