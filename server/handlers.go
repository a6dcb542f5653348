package server

import (
	"encoding/json"
	"net/http"

	"github.com/dealerdash/dashboard-gateway/api"
	errs "github.com/dealerdash/dashboard-gateway/internal/errors"
	"github.com/dealerdash/dashboard-gateway/scope"
)

const contentTypeJSON = "application/json; charset=utf-8"

// writeJSON commits the status and encodes the body. An encode failure at
// this point cannot be turned into an error response anymore, but it must
// not vanish either: a truncated body with a logged cause beats a silent one.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Int("status", status).Msg("response encode failed")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeUpstreamError maps a classified fetch error onto a gateway response.
// Unauthorized has already cleared the session by the time it reaches here;
// the client is told to go back to login.
func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errs.Is(err, errs.ErrUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":    "session rejected by upstream",
			"redirect": RouteLogin,
		})
	case errs.Is(err, errs.ErrUnreachable):
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream unreachable"})
	case errs.Is(err, errs.ErrRejected):
		var rejected *api.RejectedError
		status := http.StatusBadGateway
		if errs.As(err, &rejected) && rejected.Status >= 400 && rejected.Status < 500 {
			status = rejected.Status
		}
		s.writeJSON(w, status, errorResponse{Error: err.Error()})
	default:
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// LoginPageHandler describes the login surface. Rendering is out of scope
// here; the gateway serves the data the excluded presentation layer needs.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"app":   s.config.GetAppName(),
			"login": RouteLogin,
		})
	}
}

// LoginSubmissionHandler authenticates against the upstream API and persists
// the session. Responds with the role's landing path.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		home, err := s.access.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			// Only 4xx-class rejections mean the credentials were wrong;
			// an upstream 5xx or outage is not the user's fault.
			var rejected *api.RejectedError
			switch {
			case errs.Is(err, errs.ErrUnauthorized),
				errs.As(err, &rejected) && rejected.Status >= 400 && rejected.Status < 500:
				s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
			default:
				s.writeUpstreamError(w, err)
			}
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{"redirect": home})
	}
}

// LogoutHandler clears the session and tells the client where to go next.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.access.Logout(r.Context()); err != nil {
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"redirect": RouteLogin})
	}
}

type homePage struct {
	Role        string        `json:"role"`
	HomeCountry string        `json:"home_country,omitempty"`
	Countries   []countryView `json:"countries"`
	ScopeEmpty  bool          `json:"scope_empty"`
}

type countryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HomeHandler serves the role dashboard's data: the session identity and the
// resolved country scope. An unresolved scope renders as an empty state, not
// an error.
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.access.Session()

		resolved, err := s.access.LoadScope(r.Context())
		if err != nil {
			if errs.Is(err, errs.ErrUnauthorized) {
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}
			s.writeUpstreamError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, homePage{
			Role:        string(sess.Role),
			HomeCountry: sess.HomeCountry,
			Countries:   countryViews(resolved.Countries()),
			ScopeEmpty:  resolved.Unresolved(),
		})
	}
}

// CountriesHandler serves the visible countries for selector population.
func (s *Server) CountriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolved, err := s.access.LoadScope(r.Context())
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, countryViews(resolved.Countries()))
	}
}

func (s *Server) CarsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cars, err := s.access.ScopedCars(r.Context())
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, cars)
	}
}

func (s *Server) ExpensesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := s.access.ScopedExpenses(r.Context())
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, expenses)
	}
}

func (s *Server) InventoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inventory, err := s.access.ScopedInventory(r.Context())
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, inventory)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func countryViews(countries []scope.Country) []countryView {
	views := make([]countryView, 0, len(countries))
	for _, c := range countries {
		views = append(views, countryView{ID: c.ID, Name: c.Name})
	}
	return views
}
