package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/studyplanner-backend/internal/config"
	"github.com/heartmarshall/studyplanner-backend/internal/transport/middleware"
)

// RouterDeps are the handlers and cross-cutting pieces the router mounts.
type RouterDeps struct {
	Log        *slog.Logger
	CORS       config.CORSConfig
	Auth       middleware.Middleware
	Plans      *StudyPlanHandler
	Assistant  *AssistantHandler
	Health     *HealthHandler
	Limiter    *middleware.RateLimiter
	AIPerMin   int
	AITimeout  time.Duration // zero leaves AI routes without a deadline
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the HTTP handler. Routes that call the model are rate
// limited per session user and run under AITimeout.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	metrics := middleware.NewHTTPMetrics(d.Registerer)
	aiLimit := d.Limiter.Limit(d.AIPerMin)
	aiDeadline := middleware.Timeout(d.AITimeout)

	handle := func(pattern string, h http.HandlerFunc, mws ...middleware.Middleware) {
		mux.Handle(pattern, metrics.Instrument(pattern, middleware.Chain(mws...)(h)))
	}

	handle("GET /live", d.Health.Live)
	handle("GET /ready", d.Health.Ready)
	handle("GET /health", d.Health.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	handle("GET /api/plans", d.Plans.List)
	handle("POST /api/plans", d.Plans.Create, aiLimit, aiDeadline)
	handle("GET /api/plans/latest", d.Plans.Latest)
	handle("GET /api/plans/{id}", d.Plans.Get)
	handle("PUT /api/plans/{id}", d.Plans.Regenerate, aiLimit, aiDeadline)
	handle("DELETE /api/plans/{id}", d.Plans.Delete)
	handle("PATCH /api/items/{id}", d.Plans.SetCompleted)
	handle("POST /api/items/{id}/details", d.Plans.Details, aiLimit, aiDeadline)
	handle("POST /api/assistant/chat", d.Assistant.Chat, aiLimit, aiDeadline)

	return middleware.Chain(
		middleware.Recovery(d.Log),
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.CORS(d.CORS),
		d.Auth,
	)(mux)
}
