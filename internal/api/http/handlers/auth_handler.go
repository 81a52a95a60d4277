package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lippel/helpdesk-gateway/internal/api/dto"
	"github.com/lippel/helpdesk-gateway/internal/service"
	apperrors "github.com/lippel/helpdesk-gateway/pkg/util"
)

// AuthHandler relays signup and login to the identity provider.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Cadastro POST /api/auth/cadastro.
func (h *AuthHandler) Cadastro(c *fiber.Ctx) error {
	var req dto.CadastroRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("payload inválido", nil)
	}
	payload, err := h.service.SignUp(c.UserContext(), service.SignUpInput{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: req.Senha,
		SetorID: service.IntInput{
			Value:   req.SetorID.Value,
			Raw:     req.SetorID.Raw,
			Present: req.SetorID.Set,
			Valid:   req.SetorID.Valid,
		},
	})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusCreated).Send(payload)
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("payload inválido", nil)
	}
	payload, err := h.service.SignIn(c.UserContext(), req.Email, req.Senha)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}
