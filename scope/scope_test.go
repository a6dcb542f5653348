package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealerdash/dashboard-gateway/scope"
	"github.com/dealerdash/dashboard-gateway/session"
)

type testRecord struct {
	id  string
	ref string
}

func (r testRecord) CountryRef() string { return r.ref }

func testCountries() []scope.Country {
	return []scope.Country{
		{ID: "3", Name: "Japan"},
		{ID: "7", Name: "Kenya"},
		{ID: "9", Name: "Chile"},
	}
}

func TestResolveAdminSeesAllCountries(t *testing.T) {
	countries := testCountries()

	// The home-country reference is irrelevant for admins, even when bogus.
	resolved := scope.Resolve(session.RoleAdmin, "Atlantis", countries)

	require.Equal(t, countries, resolved.Countries())
	require.False(t, resolved.Unresolved())
	require.True(t, resolved.Allows("3"))
	require.True(t, resolved.Allows("does-not-exist"))
}

func TestResolveManagerMatchesTrimmedName(t *testing.T) {
	// Trailing whitespace in the stored name must not break the match.
	resolved := scope.Resolve(session.RoleManager, "Japan ", testCountries())

	require.Equal(t, []scope.Country{{ID: "3", Name: "Japan"}}, resolved.Countries())
	require.False(t, resolved.Unresolved())
	require.True(t, resolved.Allows("3"))
	require.False(t, resolved.Allows("7"))
}

func TestResolveMatchesWhitespaceInCountryList(t *testing.T) {
	countries := []scope.Country{{ID: "3", Name: " Japan"}}

	resolved := scope.Resolve(session.RoleSales, "Japan", countries)

	require.Equal(t, countries, resolved.Countries())
	require.True(t, resolved.Allows("3"))
}

func TestResolveFailClosedWhenNoMatch(t *testing.T) {
	for _, role := range []session.RoleType{session.RoleManager, session.RoleSales} {
		resolved := scope.Resolve(role, "Atlantis", testCountries())

		require.Empty(t, resolved.Countries())
		require.True(t, resolved.Unresolved())
		for _, c := range testCountries() {
			require.False(t, resolved.Allows(c.ID))
		}
	}
}

func TestResolveCaseMismatchIsEmpty(t *testing.T) {
	// Matching is trim-only: a case difference misses. The upstream stores
	// the name verbatim, so this stays a miss rather than a silent fix.
	resolved := scope.Resolve(session.RoleManager, "Japan", []scope.Country{{ID: "3", Name: "japan"}})

	require.Empty(t, resolved.Countries())
	require.True(t, resolved.Unresolved())
	require.False(t, resolved.Allows("3"))
}

func TestResolveUnknownRoleIsEmpty(t *testing.T) {
	for _, role := range []session.RoleType{"", "superuser", "ADMIN"} {
		resolved := scope.Resolve(role, "Japan", testCountries())

		require.Empty(t, resolved.Countries())
		require.False(t, resolved.Allows("3"))
	}
}

func TestResolveEmptyCountryList(t *testing.T) {
	resolved := scope.Resolve(session.RoleManager, "Japan", nil)

	require.Empty(t, resolved.Countries())
	require.True(t, resolved.Unresolved())
}

func TestResolveIdempotent(t *testing.T) {
	records := []testRecord{
		{id: "a", ref: "3"},
		{id: "b", ref: "7"},
		{id: "c", ref: "3"},
	}

	first := scope.Resolve(session.RoleManager, "Japan", testCountries())
	second := scope.Resolve(session.RoleManager, "Japan", testCountries())

	require.Equal(t, scope.Filter(first, records), scope.Filter(second, records))
	for _, r := range records {
		require.Equal(t, first.Allows(r.ref), second.Allows(r.ref))
	}
}

func TestFilterKeepsOnlyScopedRecords(t *testing.T) {
	records := []testRecord{
		{id: "a", ref: "3"},
		{id: "b", ref: "7"},
		{id: "c", ref: "3"},
		{id: "d", ref: ""},
	}

	resolved := scope.Resolve(session.RoleSales, "Japan", testCountries())
	filtered := scope.Filter(resolved, records)

	require.Equal(t, []testRecord{{id: "a", ref: "3"}, {id: "c", ref: "3"}}, filtered)
}

func TestFilterAdminPassesEverything(t *testing.T) {
	records := []testRecord{{id: "a", ref: "3"}, {id: "b", ref: "nonsense"}}

	resolved := scope.Resolve(session.RoleAdmin, "", testCountries())

	require.Equal(t, records, scope.Filter(resolved, records))
}

func TestZeroScopeDeniesEverything(t *testing.T) {
	var zero scope.Scope

	require.Empty(t, zero.Countries())
	require.False(t, zero.Allows("3"))
	require.Empty(t, scope.Filter(zero, []testRecord{{id: "a", ref: "3"}}))
}
