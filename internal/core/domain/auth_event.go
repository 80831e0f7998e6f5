package domain

import "time"

// AuthEventKind classifies an entry of the authentication audit trail.
type AuthEventKind string

const (
	AuthEventSignup       AuthEventKind = "signup"
	AuthEventLogin        AuthEventKind = "login"
	AuthEventLoginFailed  AuthEventKind = "login_failed"
	AuthEventDeactivated  AuthEventKind = "login_deactivated"
	AuthEventStatusChange AuthEventKind = "status_change"
)

// AuthEvent records a single authentication outcome.
type AuthEvent struct {
	ID         string
	Email      string
	Kind       AuthEventKind
	Role       Role
	OccurredAt time.Time
	Actor      string // admin email for status changes, empty otherwise
}
