package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/antonrybalko/mergington-activities/internal/domain"
)

// MemoryActivityRepository is an in-memory implementation of ActivityRepository.
// The set of activities is fixed at construction; only rosters change.
type MemoryActivityRepository struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
}

// NewMemoryActivityRepository creates a registry seeded with a copy of activities.
// A later activity with the same name replaces an earlier one.
func NewMemoryActivityRepository(activities []domain.Activity) *MemoryActivityRepository {
	r := &MemoryActivityRepository{
		activities: make(map[string]*domain.Activity, len(activities)),
	}
	for _, a := range activities {
		c := a.Clone()
		r.activities[c.Name] = &c
	}
	return r
}

// ListActivities returns a snapshot of every activity keyed by name
func (r *MemoryActivityRepository) ListActivities(ctx context.Context) (map[string]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]domain.Activity, len(r.activities))
	for name, a := range r.activities {
		result[name] = a.Clone()
	}
	return result, nil
}

// GetActivity returns a snapshot of the named activity
func (r *MemoryActivityRepository) GetActivity(ctx context.Context, name string) (domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.activities[name]
	if !exists {
		return domain.Activity{}, fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	return a.Clone(), nil
}

// AddParticipant appends email to the named activity's roster
func (r *MemoryActivityRepository) AddParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.activities[name]
	if !exists {
		return domain.Activity{}, fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	if !a.AddParticipant(email) {
		return domain.Activity{}, fmt.Errorf("%w: %s in %s", ErrAlreadySignedUp, email, name)
	}
	return a.Clone(), nil
}

// RemoveParticipant removes email from the named activity's roster
func (r *MemoryActivityRepository) RemoveParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.activities[name]
	if !exists {
		return domain.Activity{}, fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	if !a.RemoveParticipant(email) {
		return domain.Activity{}, fmt.Errorf("%w: %s in %s", ErrNotRegistered, email, name)
	}
	return a.Clone(), nil
}
