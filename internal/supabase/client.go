// Package supabase talks to the hosted identity provider (GoTrue) and the
// ticket store (PostgREST) over their REST interfaces. Access is split into
// three typed credential tiers so that a caller-bound handle can never be
// confused with the service-elevated one:
//
//	Anon    — project anon key only; signup/login relay and reference data.
//	AsUser  — anon key plus the caller's bearer token; the store applies
//	          its row-level policy under the caller's identity.
//	Service — server-held service-role key; privileged mutations only.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lippel/helpdesk-gateway/internal/config"
	"github.com/lippel/helpdesk-gateway/pkg/util"
)

// Client is the shared transport for all tiers. It is read-only after
// construction and safe for concurrent use.
type Client struct {
	cfg    config.SupabaseConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds the REST client. The http.Client carries no timeout of
// its own; per-request deadlines come from the request context.
func NewClient(cfg config.SupabaseConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

// Anon returns the anonymous-key tier.
func (c *Client) Anon() Anon { return Anon{c: c} }

// AsUser returns a tier bound to the caller's bearer token. The token is
// forwarded verbatim so store row-level policy runs as the caller.
func (c *Client) AsUser(token string) AsUser { return AsUser{c: c, token: token} }

// Service returns the elevated tier. Hand this only to the authorization
// policy; it bypasses row-level restrictions.
func (c *Client) Service() Service { return Service{c: c} }

// Anon is the anonymous-key credential tier.
type Anon struct{ c *Client }

// AsUser is the caller-bound credential tier.
type AsUser struct {
	c     *Client
	token string
}

// Service is the service-elevated credential tier.
type Service struct{ c *Client }

// Ping checks identity-provider reachability for readiness probes.
func (a Anon) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := a.c.do(ctx, http.MethodGet, a.c.cfg.URL+"/auth/v1/health", a.anonHeaders(), nil)
	return err
}

func (a Anon) anonHeaders() http.Header {
	h := http.Header{}
	h.Set("apikey", a.c.cfg.AnonKey)
	h.Set("Content-Type", "application/json")
	return h
}

func (u AsUser) userHeaders() http.Header {
	h := http.Header{}
	h.Set("apikey", u.c.cfg.AnonKey)
	h.Set("Authorization", "Bearer "+u.token)
	h.Set("Content-Type", "application/json")
	return h
}

func (s Service) serviceHeaders() http.Header {
	h := http.Header{}
	h.Set("apikey", s.c.cfg.ServiceKey)
	h.Set("Authorization", "Bearer "+s.c.cfg.ServiceKey)
	h.Set("Content-Type", "application/json")
	return h
}

// upstreamError is the PostgREST/GoTrue error body shape.
type upstreamError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	// GoTrue variants.
	Msg              string `json:"msg"`
	ErrorText        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e upstreamError) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.ErrorText != "":
		return e.ErrorText
	}
	return "upstream request failed"
}

// do performs one HTTP round trip. Exactly one attempt: transient upstream
// failures surface to the caller instead of being retried.
func (c *Client) do(ctx context.Context, method, url string, headers http.Header, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, util.NewUpstreamFailure("failed to build upstream request", nil, err)
	}
	for key, vals := range headers {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, util.NewUpstreamFailure("upstream unreachable", nil, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, util.NewUpstreamFailure("failed to read upstream response", nil, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return payload, nil
	}
	return nil, c.classify(resp.StatusCode, payload, method, url)
}

// classify maps an upstream error response to the gateway taxonomy. The
// raw payload rides along for diagnostics; credentials never appear in it.
func (c *Client) classify(status int, payload []byte, method, url string) error {
	var ue upstreamError
	_ = json.Unmarshal(payload, &ue)

	var raw any
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &raw); err != nil {
			raw = string(payload)
		}
	}

	c.logger.Warn("upstream error",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", status),
		zap.String("code", ue.Code),
	)

	switch ue.Code {
	case "42501":
		return &util.DomainError{
			Code:       "FORBIDDEN",
			Message:    "permission denied by store policy",
			HTTPStatus: http.StatusForbidden,
			Upstream:   raw,
		}
	case "23505":
		return util.NewConflict("duplicate record", raw)
	case "23503":
		return &util.DomainError{
			Code:       "INVALID_INPUT",
			Message:    "referenced record does not exist",
			HTTPStatus: http.StatusBadRequest,
			Upstream:   raw,
		}
	}

	switch status {
	case http.StatusUnauthorized:
		return util.NewUnauthenticated(ue.text())
	case http.StatusForbidden:
		return &util.DomainError{
			Code:       "FORBIDDEN",
			Message:    ue.text(),
			HTTPStatus: http.StatusForbidden,
			Upstream:   raw,
		}
	case http.StatusNotFound:
		return util.NewNotFound("resource", nil)
	}

	return util.NewUpstreamFailure(
		fmt.Sprintf("upstream returned status %d", status),
		raw,
		nil,
	)
}

func (c *Client) restURL(table, query string) string {
	u := c.cfg.URL + "/rest/v1/" + table
	if query != "" {
		u += "?" + query
	}
	return u
}
