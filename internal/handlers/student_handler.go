package handlers

import (
	"Campus/internal/models"
	"Campus/internal/services"

	"github.com/google/uuid"
)

type StudentHandler struct {
	*EntityHandler[models.Student, uuid.UUID, *models.Student]
}

func NewStudentHandler(service services.StudentService) *StudentHandler {
	return &StudentHandler{
		EntityHandler: NewEntityHandler[models.Student, uuid.UUID, *models.Student]("student", service, ParseUUID),
	}
}
