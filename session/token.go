package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether the bearer token carries a JWT exp claim in
// the past. The token is otherwise opaque to this layer: signature
// verification belongs to the upstream API, and tokens that don't parse as
// JWTs (or carry no exp claim) never expire locally — the upstream's 401 is
// the authority for those.
func TokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// Expired reports whether the stored session's token has a lapsed exp claim.
func (s *Store) Expired(now time.Time) bool {
	return TokenExpired(s.Get().Token, now)
}
