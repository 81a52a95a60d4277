// Package authz decides, per request, whether the caller is authenticated,
// which credential tier reaches the ticket store, and what row scope
// applies. Privilege elevation is never derived from the caller's token:
// the service-tier handle lives inside the Policy and becomes reachable
// only after the explicit admin check.
package authz

import (
	"context"

	"github.com/lippel/helpdesk-gateway/internal/domain"
	"github.com/lippel/helpdesk-gateway/pkg/util"
)

// ProfileStore looks up the application profile for a token subject using
// the caller's own credential tier.
type ProfileStore interface {
	Profile(ctx context.Context, token, userID string) (*domain.Profile, error)
}

// StatusUpdater is the single privileged store operation. Only the Policy
// holds an implementation bound to the service-role credential.
type StatusUpdater interface {
	UpdateTicketStatus(ctx context.Context, id int64, statusID int) (*domain.Ticket, error)
}

// Policy implements the credential-tier selection rules.
type Policy struct {
	verifier TokenVerifier
	profiles ProfileStore
	elevated StatusUpdater
}

// NewPolicy wires the policy. The elevated handle is passed exactly once
// here and never stored anywhere else.
func NewPolicy(verifier TokenVerifier, profiles ProfileStore, elevated StatusUpdater) *Policy {
	return &Policy{verifier: verifier, profiles: profiles, elevated: elevated}
}

// Authenticate parses the Authorization header and resolves the token to
// its subject. No store call is made for callers without a valid token.
func (p *Policy) Authenticate(ctx context.Context, authHeader string) (Credential, error) {
	token, err := ParseBearer(authHeader)
	if err != nil {
		return Credential{}, err
	}
	userID, err := p.verifier.Verify(ctx, token)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Token: token, UserID: userID}, nil
}

// ResolveReadScope loads the caller's profile and derives row visibility:
// administrators see everything, everyone else sees their own sector.
func (p *Policy) ResolveReadScope(ctx context.Context, cred Credential) (domain.Scope, *domain.Profile, error) {
	profile, err := p.profiles.Profile(ctx, cred.Token, cred.UserID)
	if err != nil {
		return domain.Scope{}, nil, err
	}
	if profile.IsAdmin {
		return domain.ScopeAll(), profile, nil
	}
	return domain.ScopeSector(profile.SetorID), profile, nil
}

// ElevateForStatusUpdate performs the two-phase authorization for status
// mutations: the caller's profile is resolved under the caller's own tier,
// and only a confirmed administrator receives the service-tier handle.
func (p *Policy) ElevateForStatusUpdate(ctx context.Context, cred Credential) (StatusUpdater, error) {
	profile, err := p.profiles.Profile(ctx, cred.Token, cred.UserID)
	if err != nil {
		return nil, err
	}
	if !profile.IsAdmin {
		return nil, util.NewForbidden("somente administradores podem alterar o status")
	}
	return p.elevated, nil
}
