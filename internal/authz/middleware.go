package authz

import (
	"github.com/gofiber/fiber/v2"
)

const credentialKey = "auth_credential"

// Middleware authenticates bearer tokens and attaches the resolved
// credential to the request.
type Middleware struct {
	policy *Policy
}

// NewMiddleware constructs middleware.
func NewMiddleware(policy *Policy) *Middleware {
	return &Middleware{policy: policy}
}

// Handle enforces authentication for protected routes. Requests without a
// valid credential are rejected before any store lookup happens.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	cred, err := m.policy.Authenticate(c.UserContext(), c.Get("Authorization"))
	if err != nil {
		return err
	}
	c.Locals(credentialKey, cred)
	return c.Next()
}

// CredentialFromContext retrieves the authenticated credential.
func CredentialFromContext(c *fiber.Ctx) (Credential, bool) {
	val := c.Locals(credentialKey)
	if val == nil {
		return Credential{}, false
	}
	cred, ok := val.(Credential)
	return cred, ok
}
