package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/model"
	"rentapp_backend/internal/service"
)

const authLocalsKey = "auth"

type AuthState int

const (
	// Anonymous: no Authorization header at all
	Anonymous AuthState = iota
	// Authenticated: a verified Identity is attached
	Authenticated
	// Invalid: a header was sent but could not be verified
	Invalid
)

// AuthResult is stored on every request by Authenticate.
type AuthResult struct {
	State    AuthState
	Identity *service.Identity
	Err      error
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*service.Identity, error)
}

// Authenticate resolves the bearer token, if any, and never rejects the request
// itself. Route postures (Public, RequireAuth) decide what to do with the result.
func Authenticate(verifier Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			c.Locals(authLocalsKey, &AuthResult{State: Anonymous})
			return c.Next()
		}

		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.Locals(authLocalsKey, &AuthResult{
				State: Invalid,
				Err:   model.NewUnauthenticatedError("Authorization header must be 'Bearer <token>'"),
			})
			return c.Next()
		}

		identity, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			var appErr *model.AppError
			if !errors.As(err, &appErr) || appErr.Code != model.CodeUnauthenticated {
				return err
			}
			c.Locals(authLocalsKey, &AuthResult{State: Invalid, Err: err})
			return c.Next()
		}

		c.Locals(authLocalsKey, &AuthResult{State: Authenticated, Identity: identity})
		return c.Next()
	}
}

func result(c *fiber.Ctx) *AuthResult {
	if res, ok := c.Locals(authLocalsKey).(*AuthResult); ok {
		return res
	}
	return &AuthResult{State: Anonymous}
}

// CurrentIdentity returns the verified caller, or nil.
func CurrentIdentity(c *fiber.Ctx) *service.Identity {
	return result(c).Identity
}

// Public lets anonymous callers through but still refuses a bad token.
func Public() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if res := result(c); res.State == Invalid {
			return res.Err
		}
		return c.Next()
	}
}

// RequireAuth only admits verified callers.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := result(c)
		switch res.State {
		case Authenticated:
			return c.Next()
		case Invalid:
			return res.Err
		default:
			return model.NewUnauthenticatedError("Authentication required")
		}
	}
}
