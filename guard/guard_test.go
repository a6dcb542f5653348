package guard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealerdash/dashboard-gateway/guard"
	"github.com/dealerdash/dashboard-gateway/session"
)

func TestEvaluate(t *testing.T) {
	manager := session.Session{Token: "t", Role: session.RoleManager, HomeCountry: "Japan"}
	admin := session.Session{Token: "t", Role: session.RoleAdmin}

	tests := []struct {
		name string
		path string
		sess session.Session
		want guard.Decision
	}{
		{
			name: "unauthenticated on protected path redirects to login",
			path: "/admin/indexcarprofile",
			sess: session.Session{},
			want: guard.Decision{Action: guard.RedirectLogin, Target: "/login"},
		},
		{
			name: "wrong role redirects to own home",
			path: "/admin/indexcarprofile",
			sess: manager,
			want: guard.Decision{Action: guard.RedirectHome, Target: "/manager"},
		},
		{
			name: "matching role allowed",
			path: "/manager/indexexpense",
			sess: manager,
			want: guard.Decision{Action: guard.Allow},
		},
		{
			name: "protected prefix root allowed for matching role",
			path: "/sales",
			sess: session.Session{Token: "t", Role: session.RoleSales},
			want: guard.Decision{Action: guard.Allow},
		},
		{
			name: "authenticated user on root goes home",
			path: "/",
			sess: admin,
			want: guard.Decision{Action: guard.RedirectHome, Target: "/admin"},
		},
		{
			name: "authenticated user on login page goes home",
			path: "/login",
			sess: manager,
			want: guard.Decision{Action: guard.RedirectHome, Target: "/manager"},
		},
		{
			name: "unauthenticated user may see login page",
			path: "/login",
			sess: session.Session{},
			want: guard.Decision{Action: guard.Allow},
		},
		{
			name: "token without role is unauthenticated",
			path: "/manager",
			sess: session.Session{Token: "t"},
			want: guard.Decision{Action: guard.RedirectLogin, Target: "/login"},
		},
		{
			name: "token with unknown role is unauthenticated",
			path: "/sales/report",
			sess: session.Session{Token: "t", Role: "superuser"},
			want: guard.Decision{Action: guard.RedirectLogin, Target: "/login"},
		},
		{
			name: "unknown role on login page may stay",
			path: "/login",
			sess: session.Session{Token: "t", Role: "superuser"},
			want: guard.Decision{Action: guard.Allow},
		},
		{
			name: "prefix match respects path boundaries",
			path: "/administrator",
			sess: session.Session{},
			want: guard.Decision{Action: guard.Allow},
		},
		{
			name: "unprotected path allowed without session",
			path: "/health",
			sess: session.Session{},
			want: guard.Decision{Action: guard.Allow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, guard.Evaluate(tt.path, tt.sess))
		})
	}
}

func TestActionString(t *testing.T) {
	require.Equal(t, "allow", guard.Allow.String())
	require.Equal(t, "redirect_login", guard.RedirectLogin.String())
	require.Equal(t, "redirect_home", guard.RedirectHome.String())
}
