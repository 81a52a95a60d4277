package supabase

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lippel/helpdesk-gateway/pkg/util"
)

// AuthUser is the subset of the identity-provider account the gateway
// needs: the opaque token subject.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignUpInput carries the signup relay payload. Sector and display name
// travel as account metadata so the profile row can be provisioned.
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nome     string `json:"nome"`
	SetorID  int    `json:"setor_id"`
}

// SignUp creates an identity-provider account. The upstream response is
// returned verbatim so the client sees exactly what the provider said.
func (a Anon) SignUp(ctx context.Context, input SignUpInput) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"email":    input.Email,
		"password": input.Password,
		"data": map[string]any{
			"nome":     input.Nome,
			"setor_id": input.SetorID,
		},
	})
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	payload, err := a.c.do(ctx, http.MethodPost, a.c.cfg.URL+"/auth/v1/signup", a.anonHeaders(), body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// SignInWithPassword exchanges email/password for a session. The session
// body (access token, expiry, user) is relayed verbatim.
func (a Anon) SignInWithPassword(ctx context.Context, email, password string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	payload, err := a.c.do(ctx, http.MethodPost, a.c.cfg.URL+"/auth/v1/token?grant_type=password", a.anonHeaders(), body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// SignUp at the client level uses the anonymous tier.
func (c *Client) SignUp(ctx context.Context, input SignUpInput) (json.RawMessage, error) {
	return c.Anon().SignUp(ctx, input)
}

// SignInWithPassword at the client level uses the anonymous tier.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (json.RawMessage, error) {
	return c.Anon().SignInWithPassword(ctx, email, password)
}

// User resolves the bearer token to its account via the identity provider.
// Used when no JWT secret is configured for local validation.
func (u AsUser) User(ctx context.Context) (*AuthUser, error) {
	payload, err := u.c.do(ctx, http.MethodGet, u.c.cfg.URL+"/auth/v1/user", u.userHeaders(), nil)
	if err != nil {
		return nil, err
	}
	var user AuthUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, util.NewUpstreamFailure("malformed identity response", nil, err)
	}
	if user.ID == "" {
		return nil, util.NewUnauthenticated("invalid token")
	}
	return &user, nil
}
