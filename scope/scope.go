// Package scope computes the subset of countries and records a role may see.
//
// Admins see everything. Managers and sales see exactly one country: the one
// whose name matches the session's home country. The upstream system stores
// the home country by display name, not id, so resolution re-runs the
// name-to-id match against a freshly fetched country list every time. When
// the match fails, the scope is empty — deny, never allow.
package scope

import (
	"strings"

	"github.com/dealerdash/dashboard-gateway/session"
)

// Country as served by the upstream API. IDs travel inconsistently as numbers
// and strings upstream; by the time a Country reaches the resolver its ID has
// been normalized to a string.
type Country struct {
	ID   string
	Name string
}

// Record is any domain record carrying a country reference (cars, expenses,
// inventory). CountryRef returns the reference normalized to a string.
type Record interface {
	CountryRef() string
}

// Scope is the resolved visibility set. The zero value denies everything.
type Scope struct {
	countries []Country
	admin     bool
	matchID   string
	matched   bool
}

// Resolve computes the scope for a role and home-country name against the
// fetched country list. Pure: identical inputs always yield a scope with
// identical behavior, so it is safe (and required) to recompute whenever the
// session or the country list changes.
func Resolve(role session.RoleType, homeCountry string, countries []Country) Scope {
	if role == session.RoleAdmin {
		return Scope{countries: countries, admin: true}
	}

	if role != session.RoleManager && role != session.RoleSales {
		// Unrecognized role: not an error, just the most restrictive case.
		return Scope{}
	}

	// Trim-only match. Case differences are a documented miss: the upstream
	// stores the name verbatim, and silently folding case would change which
	// records a user sees.
	want := strings.TrimSpace(homeCountry)
	for _, c := range countries {
		if strings.TrimSpace(c.Name) == want {
			return Scope{
				countries: []Country{c},
				matchID:   c.ID,
				matched:   true,
			}
		}
	}
	return Scope{}
}

// Countries returns the visible countries: all of them for an admin, exactly
// one for a matched manager/sales, none otherwise.
func (s Scope) Countries() []Country {
	return s.countries
}

// Allows reports whether a record with the given country reference is
// visible. The reference is compared as a string against the matched
// country's id.
func (s Scope) Allows(countryRef string) bool {
	if s.admin {
		return true
	}
	if !s.matched {
		return false
	}
	return countryRef == s.matchID
}

// Unresolved reports whether a non-admin scope failed to find its home
// country in the list. Callers render an empty state, not an error page.
func (s Scope) Unresolved() bool {
	return !s.admin && !s.matched
}

// Filter returns the records the scope allows, preserving order.
func Filter[T Record](s Scope, records []T) []T {
	if s.admin {
		return records
	}
	filtered := make([]T, 0, len(records))
	for _, r := range records {
		if s.Allows(r.CountryRef()) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
