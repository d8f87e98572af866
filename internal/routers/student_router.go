package routers

import (
	"Campus/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupStudentRouter(app *fiber.App, server *cmd.Server) {
	studentHandler := server.StudentHandler
	app.Get("/students", studentHandler.List)
	app.Post("/students", studentHandler.Create)
	app.Get("/students/:id", studentHandler.Get)
	app.Put("/students/:id", studentHandler.Update)
	app.Delete("/students/:id", studentHandler.Delete)
}
