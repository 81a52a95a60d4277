package service

import (
	"context"
	"encoding/json"

	"github.com/lippel/helpdesk-gateway/internal/supabase"
	"github.com/lippel/helpdesk-gateway/pkg/util"
)

// IdentityProvider is the slice of the identity provider the relay needs.
type IdentityProvider interface {
	SignUp(ctx context.Context, input supabase.SignUpInput) (json.RawMessage, error)
	SignInWithPassword(ctx context.Context, email, password string) (json.RawMessage, error)
}

// AuthService relays signup and login to the identity provider. Passwords
// pass through; they are never stored or hashed here.
type AuthService struct {
	idp IdentityProvider
}

// NewAuthService constructs the relay.
func NewAuthService(idp IdentityProvider) *AuthService {
	return &AuthService{idp: idp}
}

// SignUpInput carries the validated signup fields.
type SignUpInput struct {
	Nome    string
	Email   string
	Senha   string
	SetorID IntInput
}

// SignUp validates and relays an account creation.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (json.RawMessage, error) {
	missing := []string{}
	if input.Nome == "" {
		missing = append(missing, "nome")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Senha == "" {
		missing = append(missing, "senha")
	}
	if !input.SetorID.Present || input.SetorID.Raw == "" {
		missing = append(missing, "setor_id")
	} else if !input.SetorID.Valid {
		missing = append(missing, "setor_id")
	}
	if len(missing) > 0 {
		return nil, util.NewInvalidInput("campos obrigatórios não preenchidos", map[string]any{
			"required": missing,
		})
	}

	return s.idp.SignUp(ctx, supabase.SignUpInput{
		Email:    input.Email,
		Password: input.Senha,
		Nome:     input.Nome,
		SetorID:  input.SetorID.Value,
	})
}

// SignIn validates and relays a password login. The upstream session body
// is returned verbatim.
func (s *AuthService) SignIn(ctx context.Context, email, senha string) (json.RawMessage, error) {
	missing := []string{}
	if email == "" {
		missing = append(missing, "email")
	}
	if senha == "" {
		missing = append(missing, "senha")
	}
	if len(missing) > 0 {
		return nil, util.NewInvalidInput("campos obrigatórios não preenchidos", map[string]any{
			"required": missing,
		})
	}
	return s.idp.SignInWithPassword(ctx, email, senha)
}
