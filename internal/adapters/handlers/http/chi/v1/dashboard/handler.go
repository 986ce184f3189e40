package dashboard

import (
	"doc-intake/internal/core/port"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 dashboard routes
type HandlerV1 struct {
	activityService port.ActivityService
	recentLimit     int
	now             func() time.Time
	logger          *slog.Logger
}

// NewDashboardHandlerV1 creates HandlerV1, recentLimit is the feed size when none is asked
func NewDashboardHandlerV1(service port.ActivityService, recentLimit int, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		activityService: service,
		recentLimit:     recentLimit,
		now:             time.Now,
		logger:          logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/activity", h.ListActivityV1)
	router.Get("/stats", h.GetStatsV1)

	return router
}
