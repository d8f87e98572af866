package services

import (
	"Campus/internal/models"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uint) (*models.Course, error) {
	args := m.Called(ctx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseRepository) FindAll(ctx context.Context) ([]models.Course, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]models.Course)
	return courses, args.Error(1)
}

func (m *MockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	args := m.Called(ctx, code)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, id)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context) ([]models.Student, error) {
	args := m.Called(ctx)
	students, _ := args.Get(0).([]models.Student)
	return students, args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByCourse(ctx context.Context, courseID uint) ([]models.Student, error) {
	args := m.Called(ctx, courseID)
	students, _ := args.Get(0).([]models.Student)
	return students, args.Error(1)
}

// purgingStudentRepository adds the Purger methods to the student mock.
type purgingStudentRepository struct {
	MockStudentRepository
}

func (m *purgingStudentRepository) Purgeable(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *purgingStudentRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func newTestLogService() (LogService, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewLogServiceWithLogger(log), hook
}
