package repository

import (
	"Campus/internal/models"
	"context"
	"slices"
	"sync"
)

// MemoryRepository keeps entities in a map guarded by a RWMutex. Values are
// cloned in and out, deeply for models with a Clone method, so callers never
// share state with the store. FindAll returns entities in insertion order.
type MemoryRepository[T any, ID comparable, PT models.Model[T, ID]] struct {
	mu       sync.RWMutex
	entities map[ID]T
	order    []ID
	nextID   IDGenerator[ID]
	keys     []UniqueKey[T]
}

func NewMemoryRepository[T any, ID comparable, PT models.Model[T, ID]](nextID IDGenerator[ID], keys ...UniqueKey[T]) *MemoryRepository[T, ID, PT] {
	return &MemoryRepository[T, ID, PT]{
		entities: make(map[ID]T),
		nextID:   nextID,
		keys:     keys,
	}
}

func (r *MemoryRepository[T, ID, PT]) Create(ctx context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := PT(entity).GetID()
	if !isZero(id) {
		if _, taken := r.entities[id]; taken {
			return ErrDuplicateID
		}
	}
	if err := r.checkKeys(id, entity); err != nil {
		return err
	}
	if isZero(id) {
		for {
			next, err := r.nextID(ctx)
			if err != nil {
				return err
			}
			if _, taken := r.entities[next]; !taken {
				id = next
				break
			}
		}
		PT(entity).SetID(id)
	}
	stampCreate(entity)
	r.entities[id] = cloneOf(entity)
	r.order = append(r.order, id)
	return nil
}

func (r *MemoryRepository[T, ID, PT]) FindByID(_ context.Context, id ID) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.entities[id]
	if !ok {
		return nil, nil
	}
	clone := cloneOf(&entity)
	return &clone, nil
}

func (r *MemoryRepository[T, ID, PT]) FindAll(ctx context.Context) ([]T, error) {
	return r.Where(ctx, func(*T) bool { return true })
}

// Where returns the stored entities accepted by match, in insertion order.
func (r *MemoryRepository[T, ID, PT]) Where(_ context.Context, match func(*T) bool) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entities := make([]T, 0)
	for _, id := range r.order {
		stored := r.entities[id]
		entity := cloneOf(&stored)
		if match(&entity) {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}

func (r *MemoryRepository[T, ID, PT]) Update(_ context.Context, entity *T) error {
	id := PT(entity).GetID()
	if isZero(id) {
		return ErrMissingID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.entities[id]
	if !ok {
		return ErrNotFound
	}
	if err := r.checkKeys(id, entity); err != nil {
		return err
	}
	stampUpdate(entity, &stored)
	r.entities[id] = cloneOf(entity)
	return nil
}

func (r *MemoryRepository[T, ID, PT]) Delete(ctx context.Context, entity *T) error {
	id := PT(entity).GetID()
	if isZero(id) {
		return ErrMissingID
	}
	return r.DeleteByID(ctx, id)
}

func (r *MemoryRepository[T, ID, PT]) DeleteByID(_ context.Context, id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[id]; !ok {
		return nil
	}
	delete(r.entities, id)
	r.order = slices.DeleteFunc(r.order, func(stored ID) bool { return stored == id })
	return nil
}

// checkKeys must run under the write lock.
func (r *MemoryRepository[T, ID, PT]) checkKeys(id ID, entity *T) error {
	if len(r.keys) == 0 {
		return nil
	}
	for storedID, stored := range r.entities {
		if storedID == id {
			continue
		}
		if field, taken := conflicting(r.keys, entity, &stored); taken {
			return duplicateKey(field)
		}
	}
	return nil
}
