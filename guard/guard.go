// Package guard decides, for a requested path and a session snapshot, whether
// to render the page, send the user to login, or bounce them to their own
// role's dashboard. The decision is pure and synchronous: it must run before
// any fetch or render of protected content.
package guard

import (
	"strings"

	"github.com/dealerdash/dashboard-gateway/session"
)

// Action is what the caller should do with the navigation.
type Action int

const (
	Allow Action = iota
	RedirectLogin
	RedirectHome
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Decision carries the action and, for redirects, the target path.
type Decision struct {
	Action Action
	Target string
}

// RouteLogin is where unauthenticated navigation lands. The root path serves
// the same login form.
const RouteLogin = "/login"

// Prefixes of the role-gated route space. Each prefix doubles as the role
// name that may enter it.
var protectedPrefixes = []string{"/admin", "/manager", "/sales"}

// Evaluate resolves (path, session) to a Decision.
//
// A session holding a token without a recognized role counts as
// unauthenticated here: the persistent store cannot guarantee the session
// keys were written together, and a half-session must not open any gate.
func Evaluate(path string, sess session.Session) Decision {
	if prefix := protectedPrefix(path); prefix != "" {
		if !sess.Valid() {
			return Decision{Action: RedirectLogin, Target: RouteLogin}
		}
		if "/"+string(sess.Role) != prefix {
			return Decision{Action: RedirectHome, Target: sess.Role.HomePath()}
		}
		return Decision{Action: Allow}
	}

	// An authenticated user never re-sees the login form.
	if (path == "/" || path == RouteLogin) && sess.Valid() {
		return Decision{Action: RedirectHome, Target: sess.Role.HomePath()}
	}

	return Decision{Action: Allow}
}

func protectedPrefix(path string) string {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return prefix
		}
	}
	return ""
}
