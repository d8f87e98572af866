package routers

import (
	"Campus/cmd"
	"Campus/internal/services"
	"errors"
	"github.com/gofiber/fiber/v2"
)

func SetupJanitorRouter(app *fiber.App, server *cmd.Server) {
	janitor := server.JanitorService
	app.Post("/janitor/clean", func(ctx *fiber.Ctx) error {
		err := janitor.ForceStartCleanCycle()
		if errors.Is(err, services.ErrCleaningInProgress) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{})
	})
	app.Get("/janitor/status", func(ctx *fiber.Ctx) error {
		pending, err := janitor.Pending(ctx.UserContext())
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return ctx.JSON(fiber.Map{
			"cleaning": janitor.IsCleaning(),
			"pending":  pending,
		})
	})
}
