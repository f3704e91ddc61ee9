package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/internal/service/studyplan"
)

// planService defines the study plan operations the REST surface needs.
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

// StudyPlanHandler serves the plan and item endpoints.
type StudyPlanHandler struct {
	svc planService
	log *slog.Logger
}

// NewStudyPlanHandler creates a StudyPlanHandler.
func NewStudyPlanHandler(svc planService, logger *slog.Logger) *StudyPlanHandler {
	return &StudyPlanHandler{svc: svc, log: logger.With("handler", "studyplan")}
}

type topicRequest struct {
	Topic string `json:"topic" validate:"required,notblank"`
}

type setCompletedRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type planSummary struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"createdAt"`
}

type planResponse struct {
	planSummary
	Progress int            `json:"progress"`
	NextTask *itemResponse  `json:"nextTask"`
	Items    []itemResponse `json:"items"`
}

type itemResponse struct {
	ID        string  `json:"id"`
	PlanID    string  `json:"planId"`
	Task      string  `json:"task"`
	Order     int     `json:"order"`
	Completed bool    `json:"completed"`
	Details   *string `json:"details"`
}

type detailsResponse struct {
	ItemID  string `json:"itemId"`
	Details string `json:"details"`
}

// List handles GET /api/plans.
func (h *StudyPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.ListPlans(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]planSummary, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanSummary(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": out})
}

// Create handles POST /api/plans.
func (h *StudyPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	plan, err := h.svc.GeneratePlan(r.Context(), studyplan.GeneratePlanInput{Topic: req.Topic})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Location", "/api/plans/"+plan.Plan.ID.String())
	writeJSON(w, http.StatusCreated, toPlanResponse(plan))
}

// Latest handles GET /api/plans/latest. A user without plans gets 204.
func (h *StudyPlanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.LatestPlan(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if plan == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toPlanResponse(plan))
}

// Get handles GET /api/plans/{id}.
func (h *StudyPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	plan, err := h.svc.GetPlan(r.Context(), planID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanResponse(plan))
}

// Regenerate handles PUT /api/plans/{id}. The plan keeps its id; its
// items are replaced.
func (h *StudyPlanHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req topicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	plan, err := h.svc.RegeneratePlan(r.Context(), studyplan.RegeneratePlanInput{
		PlanID: planID,
		Topic:  req.Topic,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanResponse(plan))
}

// Delete handles DELETE /api/plans/{id}.
func (h *StudyPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.DeletePlan(r.Context(), planID); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetCompleted handles PATCH /api/items/{id}.
func (h *StudyPlanHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req setCompletedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	err = h.svc.SetCompleted(r.Context(), studyplan.SetCompletedInput{
		ItemID:    itemID,
		Completed: *req.Completed,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Details handles POST /api/items/{id}/details. Stored details are returned
// without calling the model.
func (h *StudyPlanHandler) Details(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	details, err := h.svc.ItemDetails(r.Context(), itemID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detailsResponse{ItemID: itemID.String(), Details: details})
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

func toPlanSummary(p domain.StudyPlan) planSummary {
	return planSummary{
		ID:        p.ID.String(),
		Topic:     p.Topic,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

func toPlanResponse(p *domain.PlanWithItems) planResponse {
	resp := planResponse{
		planSummary: toPlanSummary(p.Plan),
		Progress:    p.Progress(),
		Items:       make([]itemResponse, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, toItemResponse(it))
	}
	if next := p.NextTask(); next != nil {
		item := toItemResponse(*next)
		resp.NextTask = &item
	}
	return resp
}

func toItemResponse(it domain.StudyPlanItem) itemResponse {
	return itemResponse{
		ID:        it.ID.String(),
		PlanID:    it.PlanID.String(),
		Task:      it.Task,
		Order:     it.Order,
		Completed: it.Completed,
		Details:   it.Details,
	}
}
