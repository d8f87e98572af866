package routers

import (
	"Campus/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupCourseRouter(app *fiber.App, server *cmd.Server) {
	courseHandler := server.CourseHandler
	app.Get("/courses", courseHandler.List)
	app.Post("/courses", courseHandler.Create)
	app.Get("/courses/code/:code", courseHandler.GetByCode)
	app.Get("/courses/:id", courseHandler.Get)
	app.Get("/courses/:id/students", courseHandler.ListStudents)
	app.Put("/courses/:id", courseHandler.Update)
	app.Delete("/courses/:id", courseHandler.Delete)
}
