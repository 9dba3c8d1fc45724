package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storerating/internal/apperrors"
	"storerating/internal/auth"
	"storerating/internal/policy"
)

const identityKey = "identity"

// Guard resolves the caller from a bearer token and enforces the access rule
// of each operation.
type Guard struct {
	tokens *auth.TokenManager
}

func NewGuard(tokens *auth.TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// For returns a handler that authorizes op before passing to the next handler.
// On Optional operations a missing or bad token leaves the caller anonymous.
func (g *Guard) For(op policy.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule, ok := policy.RuleFor(op)
		if !ok {
			return apperrors.Forbidden("Operation is not permitted")
		}

		var id *policy.Identity
		if rule.Access != policy.Public {
			resolved, err := g.identify(c)
			if err != nil && rule.Access == policy.Required {
				return err
			}
			id = resolved
		}
		if err := rule.Check(id); err != nil {
			return err
		}
		if id != nil {
			c.Locals(identityKey, id)
		}
		return c.Next()
	}
}

func (g *Guard) identify(c *fiber.Ctx) (*policy.Identity, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, apperrors.Unauthorized("Authorization header is required")
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, apperrors.Unauthorized("Authorization header format must be 'Bearer <token>'")
	}

	claims, err := g.tokens.ParseAccess(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token").Wrap(err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token").Wrap(err)
	}
	return &policy.Identity{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}

// CurrentIdentity returns the caller stored by Guard, or nil for anonymous requests.
func CurrentIdentity(c *fiber.Ctx) *policy.Identity {
	id, _ := c.Locals(identityKey).(*policy.Identity)
	return id
}
