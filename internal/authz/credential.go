package authz

import (
	"context"
	"errors"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/lippel/helpdesk-gateway/internal/supabase"
	"github.com/lippel/helpdesk-gateway/pkg/util"
)

// Credential is a validated caller credential: the opaque bearer token as
// presented, plus the user id it resolves to. The token is forwarded
// downstream verbatim and must never appear in logs or error payloads.
type Credential struct {
	Token  string
	UserID string
}

// ParseBearer extracts the opaque token from an Authorization header.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", util.NewUnauthenticated("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", util.NewUnauthenticated("invalid authorization header")
	}
	return parts[1], nil
}

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// JWTVerifier validates access tokens locally against the identity
// provider's HS256 signing secret. Signature and expiry failures both
// surface as unauthenticated.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier builds a verifier for the given signing secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify checks the token and returns its subject.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", util.NewUnauthenticated("invalid token")
	}
	if claims.Subject == "" {
		return "", util.NewUnauthenticated("token has no subject")
	}
	return claims.Subject, nil
}

// RemoteVerifier resolves tokens with a round trip to the identity
// provider. Used when no local signing secret is configured.
type RemoteVerifier struct {
	client *supabase.Client
}

// NewRemoteVerifier builds a verifier backed by the identity provider.
func NewRemoteVerifier(client *supabase.Client) *RemoteVerifier {
	return &RemoteVerifier{client: client}
}

// Verify asks the identity provider who the token belongs to.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (string, error) {
	user, err := v.client.AsUser(token).User(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
