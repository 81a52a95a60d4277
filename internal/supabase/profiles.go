package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/lippel/helpdesk-gateway/internal/domain"
	"github.com/lippel/helpdesk-gateway/pkg/util"
)

// Profile looks up the caller's application profile row under the caller's
// own credential tier. A valid token with no profile row is a distinct
// failure from an invalid token.
func (u AsUser) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	query := url.Values{}
	query.Set("select", "id,nome,setor_id,is_admin")
	query.Set("id", "eq."+userID)

	payload, err := u.c.do(ctx, http.MethodGet, u.c.restURL(u.c.cfg.ProfilesTable, query.Encode()), u.userHeaders(), nil)
	if err != nil {
		return nil, err
	}

	var profiles []domain.Profile
	if err := json.Unmarshal(payload, &profiles); err != nil {
		return nil, util.NewUpstreamFailure("malformed profile response", nil, err)
	}
	if len(profiles) == 0 {
		return nil, util.NewNotFound("perfil de usuário", map[string]any{"user_id": userID})
	}
	return &profiles[0], nil
}

// Profile at the client level binds the caller token per call. Satisfies
// the authorization policy's profile lookup contract.
func (c *Client) Profile(ctx context.Context, token, userID string) (*domain.Profile, error) {
	return c.AsUser(token).Profile(ctx, userID)
}

// ListSectors reads the sector lookup table.
func (a Anon) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	query := url.Values{}
	query.Set("select", "id,nome")
	query.Set("order", "id.asc")

	payload, err := a.c.do(ctx, http.MethodGet, a.c.restURL(a.c.cfg.SectorsTable, query.Encode()), a.anonHeaders(), nil)
	if err != nil {
		return nil, err
	}

	var sectors []domain.Sector
	if err := json.Unmarshal(payload, &sectors); err != nil {
		return nil, util.NewUpstreamFailure("malformed sector response", nil, err)
	}
	return sectors, nil
}

// ListSectors at the client level uses the anonymous tier; reference data
// is world-readable.
func (c *Client) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	return c.Anon().ListSectors(ctx)
}

// ListStatuses at the client level uses the anonymous tier.
func (c *Client) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	return c.Anon().ListStatuses(ctx)
}

// ListStatuses reads the status lookup table.
func (a Anon) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	query := url.Values{}
	query.Set("select", "id,nome")
	query.Set("order", "id.asc")

	payload, err := a.c.do(ctx, http.MethodGet, a.c.restURL(a.c.cfg.StatusesTable, query.Encode()), a.anonHeaders(), nil)
	if err != nil {
		return nil, err
	}

	var statuses []domain.Status
	if err := json.Unmarshal(payload, &statuses); err != nil {
		return nil, util.NewUpstreamFailure("malformed status response", nil, err)
	}
	return statuses, nil
}
