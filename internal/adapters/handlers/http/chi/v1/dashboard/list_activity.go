package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// V1ActivityResponse is an entry of the activity feed
type V1ActivityResponse struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	Document   string    `json:"document"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// V1ListActivityResponse is the response to list activity
type V1ListActivityResponse struct {
	Activity []V1ActivityResponse `json:"activity"`
}

// ListActivityV1 lists the recent activity, newest first
func (h *HandlerV1) ListActivityV1(w http.ResponseWriter, r *http.Request) {
	limit := h.recentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	activities, err := h.activityService.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("error listing activity", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := V1ListActivityResponse{Activity: make([]V1ActivityResponse, 0, len(activities))}
	for _, a := range activities {
		resp.Activity = append(resp.Activity, V1ActivityResponse{
			ID:         a.ID,
			Action:     string(a.Action),
			Document:   a.Document,
			Status:     string(a.Status),
			Detail:     a.Detail,
			OccurredAt: a.OccurredAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
