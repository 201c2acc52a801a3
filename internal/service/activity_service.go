package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/antonrybalko/mergington-activities/internal/domain"
	"github.com/antonrybalko/mergington-activities/internal/metrics"
	"github.com/antonrybalko/mergington-activities/internal/repository"
	"go.uber.org/zap"
)

// Common service errors
var (
	ErrNotFound         = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student is already signed up for this activity")
	ErrNotRegistered    = errors.New("student is not registered for this activity")
	ErrEmailRequired    = errors.New("email is required")
	ErrActivityRequired = errors.New("activity name is required")
)

// ActivityService handles listing activities and managing their rosters
type ActivityService struct {
	repo    repository.ActivityRepository
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

// NewActivityService creates a new activity service
func NewActivityService(
	repo repository.ActivityRepository,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *ActivityService {
	return &ActivityService{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// ListActivities returns every activity keyed by name
func (s *ActivityService) ListActivities(ctx context.Context) (map[string]domain.Activity, error) {
	activities, err := s.repo.ListActivities(ctx)
	if err != nil {
		s.logger.Errorw("Failed to list activities", "error", err)
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// Signup adds email to the named activity and returns a confirmation message
func (s *ActivityService) Signup(ctx context.Context, activityName, email string) (string, error) {
	if err := validateInput(activityName, email); err != nil {
		return "", err
	}

	activity, err := s.repo.AddParticipant(ctx, activityName, email)
	if err != nil {
		err = s.mapRepositoryError(err)
		s.metrics.ObserveSignup(activityLabel(activityName, err), outcome(err))
		s.logger.Warnw("Signup rejected",
			"activity", activityName,
			"email", email,
			"error", err)
		return "", err
	}

	s.metrics.ObserveSignup(activityName, metrics.OutcomeSuccess)
	s.metrics.SetParticipants(activityName, len(activity.Participants))
	s.logger.Infow("Student signed up",
		"activity", activityName,
		"email", email,
		"participants", len(activity.Participants))

	return fmt.Sprintf("%s signed up for %s", email, activityName), nil
}

// Unregister removes email from the named activity and returns a confirmation message
func (s *ActivityService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	if err := validateInput(activityName, email); err != nil {
		return "", err
	}

	activity, err := s.repo.RemoveParticipant(ctx, activityName, email)
	if err != nil {
		err = s.mapRepositoryError(err)
		s.metrics.ObserveUnregistration(activityLabel(activityName, err), outcome(err))
		s.logger.Warnw("Unregister rejected",
			"activity", activityName,
			"email", email,
			"error", err)
		return "", err
	}

	s.metrics.ObserveUnregistration(activityName, metrics.OutcomeSuccess)
	s.metrics.SetParticipants(activityName, len(activity.Participants))
	s.logger.Infow("Student unregistered",
		"activity", activityName,
		"email", email,
		"participants", len(activity.Participants))

	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

// RecordRosterSizes publishes the current participant count of every activity
func (s *ActivityService) RecordRosterSizes(ctx context.Context) error {
	activities, err := s.repo.ListActivities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	for name, a := range activities {
		s.metrics.SetParticipants(name, len(a.Participants))
	}
	return nil
}

func validateInput(activityName, email string) error {
	if activityName == "" {
		return ErrActivityRequired
	}
	if email == "" {
		return ErrEmailRequired
	}
	return nil
}

// mapRepositoryError translates repository errors into service errors
func (s *ActivityService) mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return ErrAlreadySignedUp
	case errors.Is(err, repository.ErrNotRegistered):
		return ErrNotRegistered
	default:
		s.logger.Errorw("Activity repository failure", "error", err)
		return fmt.Errorf("activity repository failure: %w", err)
	}
}

// activityLabel keeps unknown names out of the metric label space
func activityLabel(activityName string, err error) string {
	if errors.Is(err, ErrNotFound) {
		return "unknown"
	}
	return activityName
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrAlreadySignedUp), errors.Is(err, ErrNotRegistered):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
