package services

import (
	"Campus/internal/models"
	"Campus/internal/repository"
	"context"
	"github.com/google/uuid"
)

type StudentService interface {
	BaseService[models.Student, uuid.UUID]
	FindByCourse(ctx context.Context, courseID uint) ([]models.Student, error)
}

type studentServiceImpl struct {
	*entityService[models.Student, uuid.UUID, *models.Student]
	studentRepo repository.StudentRepository
}

func NewStudentService(studentRepo repository.StudentRepository, logService LogService) StudentService {
	return &studentServiceImpl{
		entityService: newEntityService[models.Student, uuid.UUID, *models.Student]("student", studentRepo, logService),
		studentRepo:   studentRepo,
	}
}

func (s *studentServiceImpl) FindByCourse(ctx context.Context, courseID uint) ([]models.Student, error) {
	return s.studentRepo.FindByCourse(ctx, courseID)
}
