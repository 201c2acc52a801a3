package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HealthResponse is the body of the health check endpoint
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version,omitempty"`
	Environment string `json:"environment,omitempty"`
}

// HealthHandler returns a simple health check handler function
// that responds with a 200 OK status and JSON {"status":"ok",...}
func HealthHandler(logger *zap.SugaredLogger, version, env string) http.HandlerFunc {
	resp := HealthResponse{
		Status:      "ok",
		Version:     version,
		Environment: env,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp, logger)
	}
}

// RegisterHealthRoutes registers the health check endpoint
func RegisterHealthRoutes(r chi.Router, logger *zap.SugaredLogger, version, env string) {
	r.Get("/health", HealthHandler(logger, version, env))
}
