package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/antonrybalko/mergington-activities/internal/config"
	"github.com/antonrybalko/mergington-activities/internal/domain"
	"github.com/antonrybalko/mergington-activities/internal/metrics"
	"github.com/antonrybalko/mergington-activities/internal/repository"
	"github.com/antonrybalko/mergington-activities/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// newTestRouter wires the full router over a fresh copy of the default seed
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	sugar := zaptest.NewLogger(t).Sugar()
	seed, err := config.DefaultActivityConfig()
	require.NoError(t, err)

	m := metrics.New()
	repo := repository.NewMemoryActivityRepository(seed.Activities)
	svc := service.NewActivityService(repo, m, sugar)

	router := chi.NewRouter()
	RegisterRoutes(router, NewHandler(svc, sugar), m.Handler(), sugar, "test", "test")
	return router
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func getActivities(t *testing.T, h http.Handler) map[string]domain.Activity {
	t.Helper()
	rr := do(t, h, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rr.Code)

	var data map[string]domain.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &data))
	return data
}

func decodeDetail(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Detail
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Message
}

func TestListActivities(t *testing.T) {
	router := newTestRouter(t)

	t.Run("ReturnsAllActivities", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/activities")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		data := getActivities(t, router)
		assert.NotEmpty(t, data)
		assert.Contains(t, data, "Chess Club")
		assert.Contains(t, data, "Programming Class")
	})

	t.Run("ReturnsActivityDetails", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/activities")

		var raw map[string]map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))

		chess := raw["Chess Club"]
		for _, field := range []string{"description", "schedule", "max_participants", "participants"} {
			assert.Contains(t, chess, field)
		}

		var participants []string
		require.NoError(t, json.Unmarshal(chess["participants"], &participants))
		assert.Contains(t, participants, "michael@mergington.edu")
	})

	t.Run("ScheduleAndDescription", func(t *testing.T) {
		data := getActivities(t, router)

		schedule := data["Gym Class"].Schedule
		assert.True(t,
			strings.Contains(schedule, "Mondays") ||
				strings.Contains(schedule, "Wednesdays") ||
				strings.Contains(schedule, "Fridays"),
			"unexpected schedule %q", schedule)

		for name, activity := range data {
			assert.NotEmpty(t, activity.Description, "activity %s has empty description", name)
		}
	})
}

func TestSignup(t *testing.T) {
	t.Run("Successful", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodPost, "/activities/Tennis%20Club/signup?email=newstudent@mergington.edu")
		require.Equal(t, http.StatusOK, rr.Code)

		msg := decodeMessage(t, rr)
		assert.Contains(t, msg, "newstudent@mergington.edu")
		assert.Contains(t, msg, "Tennis Club")
	})

	t.Run("AddsParticipant", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodPost, "/activities/Art%20Studio/signup?email=newartist@mergington.edu")
		require.Equal(t, http.StatusOK, rr.Code)

		data := getActivities(t, router)
		assert.Contains(t, data["Art Studio"].Participants, "newartist@mergington.edu")
	})

	t.Run("NonexistentActivity", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodPost, "/activities/Nonexistent%20Activity/signup?email=student@mergington.edu")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, decodeDetail(t, rr), "Activity not found")
	})

	t.Run("AlreadyRegistered", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodPost, "/activities/Chess%20Club/signup?email=michael@mergington.edu")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeDetail(t, rr), "already signed up")

		participants := getActivities(t, router)["Chess Club"].Participants
		count := 0
		for _, p := range participants {
			if p == "michael@mergington.edu" {
				count++
			}
		}
		assert.Equal(t, 1, count, "duplicate signup must not add a second entry")
	})

	t.Run("MultipleStudents", func(t *testing.T) {
		router := newTestRouter(t)

		do(t, router, http.MethodPost, "/activities/Music%20Band/signup?email=student1@mergington.edu")
		do(t, router, http.MethodPost, "/activities/Music%20Band/signup?email=student2@mergington.edu")

		participants := getActivities(t, router)["Music Band"].Participants
		assert.Contains(t, participants, "student1@mergington.edu")
		assert.Contains(t, participants, "student2@mergington.edu")
	})

	t.Run("EncodedEmail", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodPost, "/activities/Chess%20Club/signup?email=first%2Blast%40mergington.edu")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, getActivities(t, router)["Chess Club"].Participants, "first+last@mergington.edu")
	})

	t.Run("MissingEmail", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodPost, "/activities/Chess%20Club/signup")
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, DetailEmailRequired, decodeDetail(t, rr))
	})

	t.Run("WrongMethod", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodGet, "/activities/Chess%20Club/signup?email=a@mergington.edu")
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestUnregister(t *testing.T) {
	t.Run("Successful", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodDelete, "/activities/Chess%20Club/unregister?email=michael@mergington.edu")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, decodeMessage(t, rr), "michael@mergington.edu")
	})

	t.Run("RemovesParticipant", func(t *testing.T) {
		router := newTestRouter(t)

		do(t, router, http.MethodDelete, "/activities/Programming%20Class/unregister?email=emma@mergington.edu")

		assert.NotContains(t, getActivities(t, router)["Programming Class"].Participants, "emma@mergington.edu")
	})

	t.Run("NonexistentActivity", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodDelete, "/activities/Nonexistent%20Activity/unregister?email=student@mergington.edu")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, decodeDetail(t, rr), "Activity not found")
	})

	t.Run("NotRegistered", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodDelete, "/activities/Basketball/unregister?email=notregistered@mergington.edu")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeDetail(t, rr), "not registered")
	})

	t.Run("ThenSignupAgain", func(t *testing.T) {
		router := newTestRouter(t)

		rr := do(t, router, http.MethodDelete, "/activities/Basketball/unregister?email=james@mergington.edu")
		require.Equal(t, http.StatusOK, rr.Code)

		rr = do(t, router, http.MethodPost, "/activities/Basketball/signup?email=james@mergington.edu")
		assert.Equal(t, http.StatusOK, rr.Code)

		assert.Contains(t, getActivities(t, router)["Basketball"].Participants, "james@mergington.edu")
	})
}

func TestRoutes_Ambient(t *testing.T) {
	router := newTestRouter(t)

	t.Run("RootRedirectsToFrontend", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/")
		assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
		assert.Equal(t, "/static/", rr.Header().Get("Location"))
	})

	t.Run("StaticFiles", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/static/")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Mergington High School")
	})

	t.Run("Health", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Metrics", func(t *testing.T) {
		do(t, router, http.MethodPost, "/activities/Chess%20Club/signup?email=metrics@mergington.edu")

		rr := do(t, router, http.MethodGet, "/metrics")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `activities_signups_total{activity="Chess Club",outcome="success"} 1`)
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/nope")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Not Found", decodeDetail(t, rr))
	})
}

// stubService lets handler tests force arbitrary service results
type stubService struct {
	err error
}

func (s stubService) ListActivities(ctx context.Context) (map[string]domain.Activity, error) {
	return nil, s.err
}

func (s stubService) Signup(ctx context.Context, activityName, email string) (string, error) {
	return "", s.err
}

func (s stubService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	return "", s.err
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound, DetailActivityNotFound},
		{"already signed up", service.ErrAlreadySignedUp, http.StatusBadRequest, DetailAlreadySignedUp},
		{"not registered", service.ErrNotRegistered, http.StatusBadRequest, DetailNotRegistered},
		{"email required", service.ErrEmailRequired, http.StatusUnprocessableEntity, DetailEmailRequired},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, DetailInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sugar := zaptest.NewLogger(t).Sugar()
			router := chi.NewRouter()
			RegisterRoutes(router, NewHandler(stubService{err: tt.err}, sugar), nil, sugar, "test", "test")

			rr := do(t, router, http.MethodPost, "/activities/Chess%20Club/signup?email=a@mergington.edu")
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rr))
		})
	}

	t.Run("list failure", func(t *testing.T) {
		sugar := zaptest.NewLogger(t).Sugar()
		router := chi.NewRouter()
		RegisterRoutes(router, NewHandler(stubService{err: errors.New("boom")}, sugar), nil, sugar, "test", "test")

		rr := do(t, router, http.MethodGet, "/activities")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
