package handlers

import (
	"Campus/internal/models"
	"Campus/internal/repository"
	"Campus/internal/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IDParser turns the :id route parameter into an entity ID.
type IDParser[ID comparable] func(raw string) (ID, error)

func ParseUintID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func ParseUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// EntityHandler exposes a BaseService over HTTP.
type EntityHandler[T any, ID comparable, PT models.Model[T, ID]] struct {
	name    string
	service services.BaseService[T, ID]
	parseID IDParser[ID]
}

func NewEntityHandler[T any, ID comparable, PT models.Model[T, ID]](
	name string,
	service services.BaseService[T, ID],
	parseID IDParser[ID],
) *EntityHandler[T, ID, PT] {
	return &EntityHandler[T, ID, PT]{name: name, service: service, parseID: parseID}
}

func (h *EntityHandler[T, ID, PT]) List(c *fiber.Ctx) error {
	entities, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "could not list "+h.name+"s")
	}
	return c.JSON(entities)
}

func (h *EntityHandler[T, ID, PT]) Get(c *fiber.Ctx) error {
	id, err := h.parseID(c.Params("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid "+h.name+" ID")
	}

	entity, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "could not get "+h.name)
	}
	if entity == nil {
		return errorResponse(c, http.StatusNotFound, h.name+" not found")
	}
	return c.JSON(entity)
}

func (h *EntityHandler[T, ID, PT]) Create(c *fiber.Ctx) error {
	entity, err := h.parseBody(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid input")
	}

	saved, err := h.service.Save(c.UserContext(), entity)
	if err != nil {
		return h.writeError(c, err, "could not create "+h.name)
	}
	return c.Status(http.StatusCreated).JSON(saved)
}

// Update replaces the stored entity; the path ID wins over any ID in the body.
func (h *EntityHandler[T, ID, PT]) Update(c *fiber.Ctx) error {
	id, err := h.parseID(c.Params("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid "+h.name+" ID")
	}

	entity, err := h.parseBody(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid input")
	}
	PT(entity).SetID(id)

	updated, err := h.service.Edit(c.UserContext(), entity)
	if err != nil {
		return h.writeError(c, err, "could not update "+h.name)
	}
	return c.JSON(updated)
}

func (h *EntityHandler[T, ID, PT]) Delete(c *fiber.Ctx) error {
	id, err := h.parseID(c.Params("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid "+h.name+" ID")
	}

	if err := h.service.DeleteByID(c.UserContext(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "could not delete "+h.name)
	}
	return c.SendStatus(http.StatusNoContent)
}

// parseBody decodes the request into a new entity. Timestamps are owned by
// the store and are dropped from client input.
func (h *EntityHandler[T, ID, PT]) parseBody(c *fiber.Ctx) (*T, error) {
	entity := new(T)
	if err := c.BodyParser(entity); err != nil {
		return nil, err
	}
	if s, ok := any(entity).(models.Stamper); ok {
		s.ResetTimestamps()
	}
	return entity, nil
}

func (h *EntityHandler[T, ID, PT]) writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, h.name+" not found")
	case errors.Is(err, services.ErrAlreadyExists):
		return errorResponse(c, http.StatusConflict, h.name+" already exists")
	case errors.Is(err, repository.ErrDuplicateKey):
		return errorResponse(c, http.StatusConflict, h.name+" conflicts with an existing "+h.name)
	case errors.Is(err, repository.ErrMissingID):
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}
	return errorResponse(c, http.StatusInternalServerError, fallback)
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
