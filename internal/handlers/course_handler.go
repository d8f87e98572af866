package handlers

import (
	"Campus/internal/models"
	"Campus/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type CourseHandler struct {
	*EntityHandler[models.Course, uint, *models.Course]
	service        services.CourseService
	studentService services.StudentService
}

func NewCourseHandler(service services.CourseService, studentService services.StudentService) *CourseHandler {
	return &CourseHandler{
		EntityHandler:  NewEntityHandler[models.Course, uint, *models.Course]("course", service, ParseUintID),
		service:        service,
		studentService: studentService,
	}
}

func (h *CourseHandler) GetByCode(c *fiber.Ctx) error {
	course, err := h.service.FindByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "could not get course")
	}
	if course == nil {
		return errorResponse(c, http.StatusNotFound, "course not found")
	}
	return c.JSON(course)
}

func (h *CourseHandler) ListStudents(c *fiber.Ctx) error {
	id, err := ParseUintID(c.Params("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid course ID")
	}

	course, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "could not get course")
	}
	if course == nil {
		return errorResponse(c, http.StatusNotFound, "course not found")
	}

	students, err := h.studentService.FindByCourse(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "could not list students")
	}
	return c.JSON(students)
}
