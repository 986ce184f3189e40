package chi

import (
	"doc-intake/internal/adapters/handlers/http/chi/v1/dashboard"
	"doc-intake/internal/adapters/handlers/http/chi/v1/document"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// multipartOverhead leaves room for the multipart envelope around a maximal document
const multipartOverhead = 1 << 20

// NewRouter builds http.Handler with chi
func NewRouter(logger *slog.Logger, documentHandler *document.HandlerV1, dashboardHandler *dashboard.HandlerV1, env string, maxUploadSize int64) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestSize(maxUploadSize + multipartOverhead))

	if env != "prod" {
		// the upload widget runs on a dev server
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if documentHandler != nil {
		r.Post("/upload/", documentHandler.UploadDocumentV1)
		r.Get("/download/{objectName}", documentHandler.DownloadDocumentV1)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if documentHandler != nil {
			r.Mount("/document", documentHandler.Routes())
		}
		if dashboardHandler != nil {
			r.Mount("/dashboard", dashboardHandler.Routes())
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})

	return r
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
