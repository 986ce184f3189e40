package dashboard

import (
	"encoding/json"
	"net/http"
)

// V1StatsResponse holds the dashboard cards
type V1StatsResponse struct {
	TotalDocuments    int64 `json:"total_documents"`
	StoredToday       int64 `json:"stored_today"`
	StorageBytes      int64 `json:"storage_bytes"`
	FailedUploadToday int64 `json:"failed_uploads_today"`
}

// GetStatsV1 returns the dashboard statistics
func (h *HandlerV1) GetStatsV1(w http.ResponseWriter, r *http.Request) {
	stats, err := h.activityService.Stats(r.Context(), h.now())
	if err != nil {
		h.logger.Error("error computing stats", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := V1StatsResponse{
		TotalDocuments:    stats.TotalDocuments,
		StoredToday:       stats.StoredToday,
		StorageBytes:      stats.StorageBytes,
		FailedUploadToday: stats.FailedUploadToday,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
