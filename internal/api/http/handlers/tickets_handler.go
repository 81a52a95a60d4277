package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lippel/helpdesk-gateway/internal/api/dto"
	"github.com/lippel/helpdesk-gateway/internal/authz"
	"github.com/lippel/helpdesk-gateway/internal/service"
	apperrors "github.com/lippel/helpdesk-gateway/pkg/util"
)

// TicketsHandler manages the chamado intake endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /api/chamados.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	cred, ok := authz.CredentialFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("missing credential")
	}
	tickets, err := h.service.List(c.UserContext(), cred)
	if err != nil {
		return err
	}
	return c.JSON(tickets)
}

// Create POST /api/chamados.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	cred, ok := authz.CredentialFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("missing credential")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("payload inválido", nil)
	}

	ticket, err := h.service.Create(c.UserContext(), cred, service.CreateTicketInput{
		Nome:          req.Nome,
		Setor:         req.Setor,
		Problema:      req.Problema,
		Prioridade:    req.Prioridade,
		Interferencia: req.Interferencia,
		SetorID:       intInput(req.SetorID),
		StatusID:      intInput(req.StatusID),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Chamado salvo com sucesso!",
		"data":      ticket,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// UpdateStatus PATCH /api/chamados/:id and POST /api/chamados/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	cred, ok := authz.CredentialFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("missing credential")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("payload inválido", nil)
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), cred, c.Params("id"), intInput(req.StatusID))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Status atualizado com sucesso!",
		"data":    ticket,
	})
}

func intInput(f dto.IntField) service.IntInput {
	return service.IntInput{
		Value:   f.Value,
		Raw:     f.Raw,
		Present: f.Set,
		Valid:   f.Valid,
	}
}
