package routers

import (
	"Campus/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, server *cmd.Server) {
	SetupCourseRouter(app, server)
	SetupStudentRouter(app, server)
	SetupJanitorRouter(app, server)
}
