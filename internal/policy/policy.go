// Package policy holds the role-based access rules for every API operation.
//
// Each operation is declared once in a table together with the rule guarding it.
// A rule says whether a caller identity is resolved at all (Access) and which
// predicates must hold for that identity. Predicates run in order and the first
// failure wins.
package policy

import (
	"storerating/internal/apperrors"
	"storerating/internal/models"
)

// Identity is the authenticated caller, taken from a verified access token.
type Identity struct {
	UserID uint
	Email  string
	Role   models.Role
}

// Predicate checks a caller identity; id is nil for anonymous callers.
type Predicate func(id *Identity) error

// IsAuthenticated requires a caller identity.
func IsAuthenticated(id *Identity) error {
	if id == nil {
		return apperrors.Unauthorized("Authentication required")
	}
	return nil
}

// HasRole requires the caller's role to be one of roles. An empty set admits any
// authenticated caller.
func HasRole(roles ...models.Role) Predicate {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(id *Identity) error {
		if err := IsAuthenticated(id); err != nil {
			return err
		}
		if len(allowed) == 0 {
			return nil
		}
		if _, ok := allowed[id.Role]; !ok {
			return apperrors.Forbidden("Insufficient permissions for this operation")
		}
		return nil
	}
}

// Access tells the transport how to resolve the caller identity.
type Access int

const (
	// Public operations never look at credentials.
	Public Access = iota
	// Optional operations use a valid token when present and run anonymously otherwise.
	Optional
	// Required operations fail with Unauthorized without a valid token.
	Required
)

// Rule guards a single operation.
type Rule struct {
	Access Access
	Checks []Predicate
}

func PublicRule() Rule { return Rule{Access: Public} }

func OptionalAuth() Rule { return Rule{Access: Optional} }

func Authenticated() Rule {
	return Rule{Access: Required, Checks: []Predicate{IsAuthenticated}}
}

// RolesOnly admits authenticated callers whose role is in roles.
func RolesOnly(roles ...models.Role) Rule {
	return Rule{Access: Required, Checks: []Predicate{IsAuthenticated, HasRole(roles...)}}
}

// Check runs the rule's predicates against id.
func (r Rule) Check(id *Identity) error {
	for _, check := range r.Checks {
		if err := check(id); err != nil {
			return err
		}
	}
	return nil
}
