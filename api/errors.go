package api

import (
	"fmt"

	errs "github.com/dealerdash/dashboard-gateway/internal/errors"
)

// RejectedError is any non-2xx upstream response other than 401/403. The
// caller surfaces it to the user; nothing in this layer retries.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upstream rejected request: status %d", e.Status)
}

func (e *RejectedError) Unwrap() error {
	return errs.ErrRejected
}

// UnreachableError is a transport-level failure: the request never produced
// an HTTP response.
type UnreachableError struct {
	cause error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.cause)
}

func (e *UnreachableError) Unwrap() []error {
	return []error{errs.ErrUnreachable, e.cause}
}
