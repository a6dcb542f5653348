package errors

import (
	"errors"
	"fmt"
)

// Common error types for the dashboard gateway
var (
	// Session errors
	ErrSessionMissing = errors.New("no session token")
	ErrSessionPartial = errors.New("partial session")
	ErrTokenExpired   = errors.New("token expired")

	// Access errors
	ErrRoleMismatch    = errors.New("role does not match route")
	ErrRoleUnknown     = errors.New("unrecognized role")
	ErrScopeUnresolved = errors.New("home country not found in country list")

	// Upstream errors
	ErrUnauthorized = errors.New("upstream rejected token")
	ErrUnreachable  = errors.New("upstream unreachable")
	ErrRejected     = errors.New("upstream rejected request")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
