package authz

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/lippel/helpdesk-gateway/pkg/util"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, subject string, expiresIn time.Duration, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseBearer(t *testing.T) {
	token, err := ParseBearer("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("wrong token: %q", token)
	}
}

func TestParseBearerRejects(t *testing.T) {
	for _, header := range []string{"", "abc", "Token abc", "Bearer "} {
		if _, err := ParseBearer(header); err == nil {
			t.Errorf("header %q: expected error", header)
		} else if util.ToDomainError(err).Code != "UNAUTHENTICATED" {
			t.Errorf("header %q: expected UNAUTHENTICATED", header)
		}
	}
}

func TestJWTVerifierValid(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	userID, err := v.Verify(context.Background(), signToken(t, "user-42", time.Hour, testSecret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-42" {
		t.Fatalf("wrong subject: %q", userID)
	}
}

func TestJWTVerifierExpired(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	_, err := v.Verify(context.Background(), signToken(t, "user-42", -time.Minute, testSecret))
	if err == nil {
		t.Fatalf("expected error for expired token")
	}
	if util.ToDomainError(err).Code != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %s", util.ToDomainError(err).Code)
	}
}

func TestJWTVerifierWrongSecret(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	if _, err := v.Verify(context.Background(), signToken(t, "user-42", time.Hour, "other-secret")); err == nil {
		t.Fatalf("expected error for wrong signature")
	}
}

func TestJWTVerifierGarbage(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	if _, err := v.Verify(context.Background(), "not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
