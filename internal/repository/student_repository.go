package repository

import (
	"Campus/internal/models"
	"context"
	"github.com/boltdb/bolt"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type StudentRepository interface {
	GenericRepository[models.Student, uuid.UUID]
	FindByCourse(ctx context.Context, courseID uint) ([]models.Student, error)
}

type StudentRepositoryImpl struct {
	*GenericRepositoryImpl[models.Student, uuid.UUID, *models.Student]
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &StudentRepositoryImpl{
		GenericRepositoryImpl: NewGenericRepository[models.Student, uuid.UUID, *models.Student](db),
		db:                    db,
	}
}

func (r *StudentRepositoryImpl) FindByCourse(ctx context.Context, courseID uint) ([]models.Student, error) {
	students := make([]models.Student, 0)
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

type scanStudentRepository struct {
	scanner[models.Student, uuid.UUID]
}

var studentKeys = []UniqueKey[models.Student]{
	{Field: "email", Value: func(s *models.Student) string { return s.Email }},
}

func NewMemoryStudentRepository() StudentRepository {
	return scanStudentRepository{NewMemoryRepository[models.Student, uuid.UUID, *models.Student](UUIDs(), studentKeys...)}
}

func NewBoltStudentRepository(db *bolt.DB) (StudentRepository, error) {
	repo, err := NewBoltRepository[models.Student, uuid.UUID, *models.Student](db, "students", UUIDCodec{}, studentKeys...)
	if err != nil {
		return nil, err
	}
	return scanStudentRepository{repo}, nil
}

func (r scanStudentRepository) FindByCourse(ctx context.Context, courseID uint) ([]models.Student, error) {
	return r.Where(ctx, func(s *models.Student) bool {
		return s.CourseID != nil && *s.CourseID == courseID
	})
}

type mongoStudentRepository struct {
	*MongoRepository[models.Student, uuid.UUID, *models.Student]
}

func NewMongoStudentRepository(ctx context.Context, db *mongo.Database) (StudentRepository, error) {
	repo := NewMongoRepository[models.Student, uuid.UUID, *models.Student](db, "students", UUIDs(), studentKeys...)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return mongoStudentRepository{repo}, nil
}

func (r mongoStudentRepository) FindByCourse(ctx context.Context, courseID uint) ([]models.Student, error) {
	return r.FindMany(ctx, bson.M{"course_id": courseID})
}
