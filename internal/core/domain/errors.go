package domain

import "errors"

// Authentication failures. All map to 401.
var (
	ErrAuthHeaderMissing  = errors.New("missing authorization header")
	ErrAuthSchemeInvalid  = errors.New("invalid auth header")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authorization and account-state failures.
var (
	ErrForbidden           = errors.New("access forbidden")
	ErrDeactivated         = errors.New("user deactivated")
	ErrAdminSignupDisabled = errors.New("admin accounts cannot be self-registered")
	ErrTooManyAttempts     = errors.New("too many login attempts")
)

// Input failures.
var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrRequestInFlight = errors.New("request with this idempotency key is in progress")
)

// ErrStoreUnavailable marks backing-store failures. It is kept apart from
// the auth taxonomy so a connectivity problem never reads as a 401.
var ErrStoreUnavailable = errors.New("store unavailable")

// AccessDeniedError is a forbidden decision carrying the message shown to
// the caller. errors.Is(err, ErrForbidden) holds for every instance.
type AccessDeniedError struct {
	Detail string
}

func (e *AccessDeniedError) Error() string { return e.Detail }

func (e *AccessDeniedError) Unwrap() error { return ErrForbidden }
