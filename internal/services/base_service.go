package services

import (
	"Campus/internal/models"
	"Campus/internal/repository"
	"context"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyExists is returned by Save when the caller supplied an ID that is
// already persisted.
var ErrAlreadyExists = errors.New("entity already exists")

// BaseService is the minimal surface every entity-backed service exposes.
//
// FindAll returns an empty slice when nothing is stored. FindByID returns
// (nil, nil) when no entity has the given id; absence is not an error. Save
// persists a new entity and returns it with its assigned id. Edit replaces an
// existing entity and fails with repository.ErrNotFound when the id is
// unknown. Delete and DeleteByID remove the matching record; DeleteByID
// ignores unknown ids.
type BaseService[T any, ID comparable] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id ID) (*T, error)
	Save(ctx context.Context, entity *T) (*T, error)
	Edit(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, entity *T) error
	DeleteByID(ctx context.Context, id ID) error
}

type entityService[T any, ID comparable, PT models.Model[T, ID]] struct {
	name       string
	repo       repository.GenericRepository[T, ID]
	logService LogService
}

func newEntityService[T any, ID comparable, PT models.Model[T, ID]](
	name string,
	repo repository.GenericRepository[T, ID],
	logService LogService,
) *entityService[T, ID, PT] {
	return &entityService[T, ID, PT]{name: name, repo: repo, logService: logService}
}

func (s *entityService[T, ID, PT]) FindAll(ctx context.Context) ([]T, error) {
	entities, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	if entities == nil {
		entities = make([]T, 0)
	}
	return entities, nil
}

func (s *entityService[T, ID, PT]) FindByID(ctx context.Context, id ID) (*T, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find %s %v: %w", s.name, id, err)
	}
	return entity, nil
}

func (s *entityService[T, ID, PT]) Save(ctx context.Context, entity *T) (*T, error) {
	if id := PT(entity).GetID(); !isZeroID(id) {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find %s %v: %w", s.name, id, err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%s %v: %w", s.name, id, ErrAlreadyExists)
		}
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, fmt.Errorf("%s %v: %w", s.name, PT(entity).GetID(), ErrAlreadyExists)
		}
		return nil, fmt.Errorf("save %s: %w", s.name, err)
	}
	s.logEntry("save", PT(entity).GetID()).Info("entity saved")
	return entity, nil
}

// Edit persists the entity and returns the stored state read back from the
// repository.
func (s *entityService[T, ID, PT]) Edit(ctx context.Context, entity *T) (*T, error) {
	id := PT(entity).GetID()
	if isZeroID(id) {
		return nil, repository.ErrMissingID
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("edit %s %v: %w", s.name, id, err)
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find %s %v: %w", s.name, id, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("edit %s %v: %w", s.name, id, repository.ErrNotFound)
	}
	s.logEntry("edit", id).Info("entity updated")
	return updated, nil
}

func (s *entityService[T, ID, PT]) Delete(ctx context.Context, entity *T) error {
	id := PT(entity).GetID()
	if err := s.repo.Delete(ctx, entity); err != nil {
		return fmt.Errorf("delete %s %v: %w", s.name, id, err)
	}
	s.logEntry("delete", id).Info("entity deleted")
	return nil
}

func (s *entityService[T, ID, PT]) DeleteByID(ctx context.Context, id ID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete %s %v: %w", s.name, id, err)
	}
	s.logEntry("delete", id).Info("entity deleted")
	return nil
}

func (s *entityService[T, ID, PT]) logEntry(op string, id ID) *logrus.Entry {
	return s.logService.Log.WithFields(logrus.Fields{
		"entity": s.name,
		"op":     op,
		"id":     id,
	})
}

func isZeroID[ID comparable](id ID) bool {
	var zero ID
	return id == zero
}
