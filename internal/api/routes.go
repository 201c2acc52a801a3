package api

import (
	"net/http"
	"time"

	"github.com/antonrybalko/mergington-activities/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RegisterRoutes configures all routes for the application
func RegisterRoutes(
	r chi.Router,
	handler Handler,
	metricsHandler http.Handler,
	logger *zap.SugaredLogger,
	version string,
	env string,
) {
	// Set up middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Add CORS headers for development
	if env != "production" {
		r.Use(middleware.SetHeader("Access-Control-Allow-Origin", "*"))
		r.Use(middleware.SetHeader("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS"))
		r.Use(middleware.SetHeader("Access-Control-Allow-Headers", "Content-Type"))
	}

	// Register health check routes
	RegisterHealthRoutes(r, logger, version, env)

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// Frontend
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, web.IndexPath, http.StatusTemporaryRedirect)
	})
	r.Handle("/static/*", http.StripPrefix("/static/", web.Handler()))

	// Activity routes
	r.Route("/activities", func(r chi.Router) {
		r.Get("/", handler.ListActivities)
		r.Post("/{activityName}/signup", handler.Signup)
		r.Delete("/{activityName}/unregister", handler.Unregister)
	})

	// Not found handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: "Not Found"}, logger)
	})

	// Method not allowed handler
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Detail: "Method Not Allowed"}, logger)
	})
}
