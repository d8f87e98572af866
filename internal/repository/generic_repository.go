package repository

import (
	"Campus/internal/models"
	"context"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type GenericRepositoryImpl[T any, ID comparable, PT models.Model[T, ID]] struct {
	db *gorm.DB
}

func NewGenericRepository[T any, ID comparable, PT models.Model[T, ID]](db *gorm.DB) *GenericRepositoryImpl[T, ID, PT] {
	return &GenericRepositoryImpl[T, ID, PT]{db: db}
}

// Create inserts the entity. A caller-supplied ID that only a soft-deleted
// row holds revives that row with the new values.
func (r *GenericRepositoryImpl[T, ID, PT]) Create(ctx context.Context, entity *T) error {
	db := r.db.WithContext(ctx)
	id := PT(entity).GetID()
	if isZero(id) {
		return translateDuplicate(db.Create(entity).Error)
	}

	var live, deleted int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&live).Error; err != nil {
		return err
	}
	if live > 0 {
		return ErrDuplicateID
	}
	if err := db.Unscoped().Model(new(T)).Where("id = ? AND deleted_at IS NOT NULL", id).Count(&deleted).Error; err != nil {
		return err
	}
	if deleted > 0 {
		stampCreate(entity)
		err := db.Unscoped().Model(entity).Select("*").Updates(entity).Error
		return translateDuplicate(err)
	}

	if err := translateDuplicate(db.Create(entity).Error); err != nil {
		return err
	}
	return r.syncSequence(ctx, entity)
}

// syncSequence moves a postgres serial past a caller-supplied uint ID so
// later inserts do not collide with it.
func (r *GenericRepositoryImpl[T, ID, PT]) syncSequence(ctx context.Context, entity *T) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	if _, ok := any(PT(entity).GetID()).(uint); !ok {
		return nil
	}
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(entity); err != nil {
		return err
	}
	table := stmt.Schema.Table
	return r.db.WithContext(ctx).Exec(
		"SELECT setval(pg_get_serial_sequence(?, 'id'), (SELECT COALESCE(MAX(id), 1) FROM ?))",
		table, clause.Table{Name: table},
	).Error
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func (r *GenericRepositoryImpl[T, ID, PT]) FindByID(ctx context.Context, id ID) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *GenericRepositoryImpl[T, ID, PT]) FindAll(ctx context.Context) ([]T, error) {
	entities := make([]T, 0)
	err := r.db.WithContext(ctx).Find(&entities).Error
	return entities, err
}

// Update writes every column except created_at and deleted_at and fails with
// ErrNotFound when no live row matches the entity's ID.
func (r *GenericRepositoryImpl[T, ID, PT]) Update(ctx context.Context, entity *T) error {
	if isZero(PT(entity).GetID()) {
		return ErrMissingID
	}
	result := r.db.WithContext(ctx).Model(entity).Select("*").Omit("created_at", "deleted_at").Updates(entity)
	if result.Error != nil {
		return translateDuplicate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GenericRepositoryImpl[T, ID, PT]) Delete(ctx context.Context, entity *T) error {
	if isZero(PT(entity).GetID()) {
		return ErrMissingID
	}
	return r.db.WithContext(ctx).Delete(entity).Error
}

func (r *GenericRepositoryImpl[T, ID, PT]) DeleteByID(ctx context.Context, id ID) error {
	var entity T
	return r.db.WithContext(ctx).Delete(&entity, "id = ?", id).Error
}

func (r *GenericRepositoryImpl[T, ID, PT]) Purgeable(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Count(&count).Error
	return count, err
}

// Purge hard deletes rows that were soft deleted before the cutoff.
func (r *GenericRepositoryImpl[T, ID, PT]) Purge(ctx context.Context, before time.Time) (int64, error) {
	var entity T
	result := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Delete(&entity)
	return result.RowsAffected, result.Error
}
