package domain

import "strings"

// Role names a grant a user holds. Route requirements are checked against the
// set of roles on the authenticated principal.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type Roles []Role

// Has reports whether the set contains the given role.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Strings returns the role names as plain strings.
func (rs Roles) Strings() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, string(r))
	}
	return out
}

// ParseRoles builds a role set from raw names, dropping empty entries.
// Unknown names are kept as-is so new roles don't require a schema change.
func ParseRoles(names []string) Roles {
	roles := make(Roles, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		roles = append(roles, Role(strings.ToUpper(n)))
	}
	return roles
}

// ParseRoleList parses a space-delimited role string as stored in the DB.
func ParseRoleList(s string) Roles {
	return ParseRoles(strings.Fields(s))
}
