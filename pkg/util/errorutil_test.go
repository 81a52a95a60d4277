package util

import (
	"errors"
	"net/http"
	"testing"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	orig := NewForbidden("nope")
	mapped := ToDomainError(orig)
	if mapped.Code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", mapped.HTTPStatus)
	}
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	if mapped.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR, got %s", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", mapped.HTTPStatus)
	}
	if mapped.Unwrap() == nil {
		t.Fatalf("expected wrapped cause")
	}
}

func TestConstructorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewInvalidInput("bad", nil), "INVALID_INPUT", http.StatusBadRequest},
		{NewUnauthenticated("no token"), "UNAUTHENTICATED", http.StatusUnauthorized},
		{NewForbidden("no"), "FORBIDDEN", http.StatusForbidden},
		{NewNotFound("chamado", nil), "NOT_FOUND", http.StatusNotFound},
		{NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
		{NewUpstreamFailure("down", nil, nil), "UPSTREAM_FAILURE", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		de := ToDomainError(tc.err)
		if de.Code != tc.code {
			t.Errorf("expected code %s, got %s", tc.code, de.Code)
		}
		if de.HTTPStatus != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.code, tc.status, de.HTTPStatus)
		}
	}
}

func TestUpstreamPayloadAttached(t *testing.T) {
	raw := map[string]any{"code": "XX000"}
	de := ToDomainError(NewUpstreamFailure("upstream returned status 500", raw, nil))
	if de.Upstream == nil {
		t.Fatalf("expected upstream payload to be preserved")
	}
}
