package server

import (
	"net/http"

	"github.com/dealerdash/dashboard-gateway/guard"
)

// GuardMiddleware runs the route guard against a session snapshot before the
// handler executes. It must sit in front of every page handler: the decision
// is synchronous and happens before any upstream fetch, so a rejected
// navigation never computes (or flashes) protected content.
func (s *Server) GuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := s.access.Guard(r.URL.Path)

		switch decision.Action {
		case guard.RedirectLogin, guard.RedirectHome:
			http.Redirect(w, r, decision.Target, http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}
