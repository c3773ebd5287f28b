package domain

// Principal is the identity attached to a request after the security gate has
// run. It is a value type built fresh per request; nothing caches it across
// requests since account state may change between tokens.
type Principal struct {
	UserID        string
	Username      string
	Roles         Roles
	Authenticated bool
}

// Anonymous returns the principal attached to requests that present no token.
func Anonymous() Principal {
	return Principal{}
}

// HasRole reports whether the principal holds the given role. Anonymous
// principals hold no roles.
func (p Principal) HasRole(role Role) bool {
	return p.Authenticated && p.Roles.Has(role)
}
