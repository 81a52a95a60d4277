package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lippel/helpdesk-gateway/internal/service"
)

// ReferenceHandler serves the sector and status lookup tables used by the
// intake form.
type ReferenceHandler struct {
	service *service.ReferenceService
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(referenceService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: referenceService}
}

// Setores GET /api/setores.
func (h *ReferenceHandler) Setores(c *fiber.Ctx) error {
	sectors, err := h.service.Sectors(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(sectors)
}

// Status GET /api/status.
func (h *ReferenceHandler) Status(c *fiber.Ctx) error {
	statuses, err := h.service.Statuses(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(statuses)
}
