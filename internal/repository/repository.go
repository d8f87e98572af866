package repository

import (
	"Campus/internal/models"
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned by Update when no persisted record has the
	// entity's ID. Lookups report absence as (nil, nil) instead.
	ErrNotFound = errors.New("record not found")
	// ErrMissingID is returned when an operation needs the entity's ID and it
	// is the zero value.
	ErrMissingID = errors.New("entity has no id")
	// ErrDuplicateID is returned by Create when the ID is already taken.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrDuplicateKey is returned by Create and Update when a unique natural
	// key such as a course code is held by another live record.
	ErrDuplicateKey = errors.New("duplicate key")
)

// UniqueKey names a field whose value must be unique among stored entities.
// Empty values are not checked.
type UniqueKey[T any] struct {
	Field string
	Value func(*T) string
}

func duplicateKey(field string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateKey, field)
}

// conflicting reports the first key of candidate already used by stored.
func conflicting[T any](keys []UniqueKey[T], candidate, stored *T) (string, bool) {
	for _, key := range keys {
		if v := key.Value(candidate); v != "" && v == key.Value(stored) {
			return key.Field, true
		}
	}
	return "", false
}

// GenericRepository is the storage contract shared by every backend.
// FindByID returns (nil, nil) when nothing is stored under id, FindAll returns
// an empty, non-nil slice when the store is empty and DeleteByID is a no-op
// for unknown ids.
type GenericRepository[T any, ID comparable] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id ID) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	DeleteByID(ctx context.Context, id ID) error
}

// Purger is implemented by backends that soft delete records.
type Purger interface {
	// Purgeable counts the records Purge would remove for the same cutoff.
	Purgeable(ctx context.Context, before time.Time) (int64, error)
	Purge(ctx context.Context, before time.Time) (int64, error)
}

func isZero[ID comparable](id ID) bool {
	var zero ID
	return id == zero
}

func stampCreate[T any](entity *T) {
	if s, ok := any(entity).(models.Stamper); ok {
		s.Touch(s.Created(), time.Now())
	}
}

// stampUpdate carries the stored creation time over to the replacement.
func stampUpdate[T any](entity, stored *T) {
	s, ok := any(entity).(models.Stamper)
	if !ok {
		return
	}
	var created time.Time
	if prev, ok := any(stored).(models.Stamper); ok {
		created = prev.Created()
	}
	s.Touch(created, time.Now())
}

// cloneOf copies entity, deeply when the model knows how to.
func cloneOf[T any](entity *T) T {
	if c, ok := any(entity).(interface{ Clone() T }); ok {
		return c.Clone()
	}
	return *entity
}
