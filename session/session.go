package session

// RoleType represents the dashboard role assigned to the logged-in user.
type RoleType string

const (
	RoleAdmin   RoleType = "admin"   // Sees every country and all records
	RoleManager RoleType = "manager" // Scoped to the home country's records
	RoleSales   RoleType = "sales"   // Scoped to the home country's records
)

// Known reports whether the role is one the dashboard recognizes.
// Anything else is treated as the most restrictive case, never an error.
func (r RoleType) Known() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSales:
		return true
	}
	return false
}

// HomePath returns the role's landing route ("/admin", "/manager", "/sales").
// Unknown roles land on the login page.
func (r RoleType) HomePath() string {
	if !r.Known() {
		return "/"
	}
	return "/" + string(r)
}

// Session holds the authenticated user's client-side state: the opaque bearer
// token, the role, and the home country stored by display name (not id) —
// the upstream system's choice, which this layer accommodates rather than
// changes. Zero values mean the field is absent.
type Session struct {
	Token       string
	Role        RoleType
	HomeCountry string
}

// Authenticated reports whether a token is present at all.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Valid reports whether the session is usable for role-gated navigation.
// A token without a recognized role counts as unauthenticated: the store
// cannot promise the three keys were written together, so a half-written
// session must fail closed.
func (s Session) Valid() bool {
	return s.Token != "" && s.Role.Known()
}
