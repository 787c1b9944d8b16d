package domain

import "errors"

var (
	// ErrNoCredential is returned by a credential store when no token is held.
	ErrNoCredential = errors.New("no credential stored")

	// ErrUnauthorized marks a request the server rejected for lack of a
	// valid credential (401 with a token that has not visibly expired).
	ErrUnauthorized = errors.New("not authorized")

	// ErrSessionExpired marks a 401 caused by an expired credential. It is
	// distinguished from ErrUnauthorized so the session can be cleared with
	// an accurate message rather than a generic failure.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotFound marks an absent entity; a valid terminal state for detail
	// views, never an error banner.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks locally-detected bad input. It blocks the
	// operation before any network call is attempted.
	ErrValidation = errors.New("invalid input")

	// ErrBusy marks a mutating action refused because another one is
	// already in flight for the same entity.
	ErrBusy = errors.New("operation already in progress")

	// ErrInvalidTransition marks a session phase change outside the state machine.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrInvalidCredentials marks a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
