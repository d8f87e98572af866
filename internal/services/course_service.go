package services

import (
	"Campus/internal/models"
	"Campus/internal/repository"
	"context"
)

type CourseService interface {
	BaseService[models.Course, uint]
	FindByCode(ctx context.Context, code string) (*models.Course, error)
}

type courseServiceImpl struct {
	*entityService[models.Course, uint, *models.Course]
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository, logService LogService) CourseService {
	return &courseServiceImpl{
		entityService: newEntityService[models.Course, uint, *models.Course]("course", courseRepo, logService),
		courseRepo:    courseRepo,
	}
}

func (s *courseServiceImpl) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	return s.courseRepo.FindByCode(ctx, code)
}
