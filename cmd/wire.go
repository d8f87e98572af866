package cmd

import (
	"Campus/internal/config"
	"Campus/internal/handlers"
	"Campus/internal/services"
)

type Server struct {
	Configuration  *config.Configuration
	CourseService  services.CourseService
	CourseHandler  *handlers.CourseHandler
	StudentService services.StudentService
	StudentHandler *handlers.StudentHandler
	LogService     services.LogService
	JanitorService *services.Janitor
}

func NewServer(
	configuration *config.Configuration,
	courseService services.CourseService,
	courseHandler *handlers.CourseHandler,
	studentService services.StudentService,
	studentHandler *handlers.StudentHandler,
	logService services.LogService,
	janitorService *services.Janitor,
) *Server {
	return &Server{
		Configuration:  configuration,
		CourseService:  courseService,
		CourseHandler:  courseHandler,
		StudentService: studentService,
		StudentHandler: studentHandler,
		LogService:     logService,
		JanitorService: janitorService,
	}
}
