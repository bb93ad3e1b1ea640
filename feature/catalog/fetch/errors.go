package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrNotFound            = errors.New("provider: not found")
	ErrRateLimited         = errors.New("provider: rate limited by server")
	ErrUpstream            = errors.New("provider: upstream error")
	ErrInvalidAppID        = errors.New("provider: invalid app id")
	ErrImageTooLarge       = errors.New("provider: image exceeds size limit")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op    string // Operation: "primary", "tags", "detail", "image"
	AppID uint64 // If applicable
	Err   error
}

func (e *Error) Error() string {
	if e.AppID != 0 {
		return fmt.Sprintf("fetch %s [%d]: %v", e.Op, e.AppID, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, appID uint64, err error) error {
	return &Error{Op: op, AppID: appID, Err: err}
}
