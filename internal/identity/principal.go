package identity

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser          Role = "USER"
	RolePropertyOwner Role = "PROPERTY_OWNER"
	RoleAdmin         Role = "ADMIN"
)

// Principal is the authenticated identity derived from a validated token.
// It is the only shape the rest of the service ever sees; the raw claims map
// is parsed exactly once, here.
type Principal struct {
	ID   string
	Role Role
}

func (p Principal) IsPropertyOwner() bool { return p.Role == RolePropertyOwner }
func (p Principal) IsAdmin() bool         { return p.Role == RoleAdmin }

// principalFromClaims validates the claims map returned by introspection.
// A token without a subject is rejected, not treated as an outage.
func principalFromClaims(claims map[string]any) (Principal, error) {
	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return Principal{}, fmt.Errorf("%w: token claims missing subject", ErrUnauthenticated)
	}

	role := RoleUser
	if raw, ok := claims["role"].(string); ok {
		switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
		case RolePropertyOwner:
			role = RolePropertyOwner
		case RoleAdmin:
			role = RoleAdmin
		}
	}

	return Principal{ID: sub, Role: role}, nil
}
