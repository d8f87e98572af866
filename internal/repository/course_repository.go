package repository

import (
	"Campus/internal/models"
	"context"
	"errors"
	"github.com/boltdb/bolt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type CourseRepository interface {
	GenericRepository[models.Course, uint]
	FindByCode(ctx context.Context, code string) (*models.Course, error)
}

type CourseRepositoryImpl struct {
	*GenericRepositoryImpl[models.Course, uint, *models.Course]
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &CourseRepositoryImpl{
		GenericRepositoryImpl: NewGenericRepository[models.Course, uint, *models.Course](db),
		db:                    db,
	}
}

func (r *CourseRepositoryImpl) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// scanner is implemented by the backends that filter in process.
type scanner[T any, ID comparable] interface {
	GenericRepository[T, ID]
	Where(ctx context.Context, match func(*T) bool) ([]T, error)
}

type scanCourseRepository struct {
	scanner[models.Course, uint]
}

var courseKeys = []UniqueKey[models.Course]{
	{Field: "code", Value: func(c *models.Course) string { return c.Code }},
}

func NewMemoryCourseRepository() CourseRepository {
	return scanCourseRepository{NewMemoryRepository[models.Course, uint, *models.Course](SequenceIDs(), courseKeys...)}
}

func NewBoltCourseRepository(db *bolt.DB) (CourseRepository, error) {
	repo, err := NewBoltRepository[models.Course, uint, *models.Course](db, "courses", UintCodec{}, courseKeys...)
	if err != nil {
		return nil, err
	}
	return scanCourseRepository{repo}, nil
}

func (r scanCourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	courses, err := r.Where(ctx, func(c *models.Course) bool { return c.Code == code })
	if err != nil || len(courses) == 0 {
		return nil, err
	}
	return &courses[0], nil
}

type mongoCourseRepository struct {
	*MongoRepository[models.Course, uint, *models.Course]
}

func NewMongoCourseRepository(ctx context.Context, db *mongo.Database) (CourseRepository, error) {
	repo := NewMongoRepository[models.Course, uint, *models.Course](db, "courses", MongoSequence(db, "courses"), courseKeys...)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return mongoCourseRepository{repo}, nil
}

func (r mongoCourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.FindOne(ctx, bson.M{"code": code})
}
