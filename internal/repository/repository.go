package repository

import (
	"context"
	"errors"

	"github.com/antonrybalko/mergington-activities/internal/domain"
)

// Common repository errors
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("participant already signed up")
	ErrNotRegistered    = errors.New("participant not registered")
)

// ActivityRepository defines the operations on the activity registry.
// Returned activities are snapshots; modifying them does not change the registry.
type ActivityRepository interface {
	// ListActivities returns every activity keyed by name
	ListActivities(ctx context.Context) (map[string]domain.Activity, error)

	// GetActivity returns a single activity by name
	GetActivity(ctx context.Context, name string) (domain.Activity, error)

	// AddParticipant appends email to the roster of the named activity
	AddParticipant(ctx context.Context, name, email string) (domain.Activity, error)

	// RemoveParticipant removes email from the roster of the named activity
	RemoveParticipant(ctx context.Context, name, email string) (domain.Activity, error)
}
