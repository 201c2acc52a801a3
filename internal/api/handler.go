package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/antonrybalko/mergington-activities/internal/domain"
	"github.com/antonrybalko/mergington-activities/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Error details returned to clients
const (
	DetailActivityNotFound = "Activity not found"
	DetailAlreadySignedUp  = "Student is already signed up for this activity"
	DetailNotRegistered    = "Student is not registered for this activity"
	DetailEmailRequired    = "email query parameter is required"
	DetailInternal         = "Internal server error"
)

// Handler defines the interface for the API handler
type Handler interface {
	ListActivities(w http.ResponseWriter, r *http.Request)
	Signup(w http.ResponseWriter, r *http.Request)
	Unregister(w http.ResponseWriter, r *http.Request)
}

// ActivityService defines the activity operations the handler depends on
type ActivityService interface {
	ListActivities(ctx context.Context) (map[string]domain.Activity, error)
	Signup(ctx context.Context, activityName, email string) (string, error)
	Unregister(ctx context.Context, activityName, email string) (string, error)
}

// MessageResponse is the body of a successful roster change
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// handlerImpl implements the Handler interface
type handlerImpl struct {
	activities ActivityService
	logger     *zap.SugaredLogger
}

// NewHandler creates a new API handler
func NewHandler(activities ActivityService, logger *zap.SugaredLogger) Handler {
	return &handlerImpl{
		activities: activities,
		logger:     logger,
	}
}

// ListActivities handles GET /activities
func (h *handlerImpl) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.ListActivities(r.Context())
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, activities)
}

// Signup handles POST /activities/{activityName}/signup?email=...
func (h *handlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	name, email, ok := h.rosterParams(w, r)
	if !ok {
		return
	}

	message, err := h.activities.Signup(r.Context(), name, email)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// Unregister handles DELETE /activities/{activityName}/unregister?email=...
func (h *handlerImpl) Unregister(w http.ResponseWriter, r *http.Request) {
	name, email, ok := h.rosterParams(w, r)
	if !ok {
		return
	}

	message, err := h.activities.Unregister(r.Context(), name, email)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// Helper methods

// rosterParams extracts the activity name and email, writing an error response when invalid
func (h *handlerImpl) rosterParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	name, err := activityNameParam(r)
	if err != nil {
		h.respondWithError(w, http.StatusNotFound, DetailActivityNotFound)
		return "", "", false
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		h.respondWithError(w, http.StatusUnprocessableEntity, DetailEmailRequired)
		return "", "", false
	}

	return name, email, true
}

// activityNameParam returns the decoded activity name from the path.
// chi matches on RawPath when the path held escapes net/url could not
// round-trip (such as %2F), and the parameter is still encoded then.
func activityNameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "activityName")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

// respondWithServiceError maps service errors to HTTP responses
func (h *handlerImpl) respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrActivityRequired):
		h.respondWithError(w, http.StatusNotFound, DetailActivityNotFound)
	case errors.Is(err, service.ErrAlreadySignedUp):
		h.respondWithError(w, http.StatusBadRequest, DetailAlreadySignedUp)
	case errors.Is(err, service.ErrNotRegistered):
		h.respondWithError(w, http.StatusBadRequest, DetailNotRegistered)
	case errors.Is(err, service.ErrEmailRequired):
		h.respondWithError(w, http.StatusUnprocessableEntity, DetailEmailRequired)
	default:
		h.logger.Errorw("Unhandled service error", "error", err)
		h.respondWithError(w, http.StatusInternalServerError, DetailInternal)
	}
}

// respondWithError sends an error response
func (h *handlerImpl) respondWithError(w http.ResponseWriter, code int, detail string) {
	h.respondWithJSON(w, code, ErrorResponse{Detail: detail})
}

// respondWithJSON sends a JSON response
func (h *handlerImpl) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	writeJSON(w, code, payload, h.logger)
}

// writeJSON encodes payload with the given status code
func writeJSON(w http.ResponseWriter, code int, payload interface{}, logger *zap.SugaredLogger) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Errorw("Failed to encode JSON response", "error", err)
		http.Error(w, DetailInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		logger.Debugw("Failed to write response", "error", err)
	}
}
