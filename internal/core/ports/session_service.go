package ports

import (
	"context"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// SessionService owns the session state machine. It is the only writer of
// the credential store; everything else reads session state via Snapshot.
type SessionService interface {
	// CheckAuth resolves a durable credential found at startup. Idempotent;
	// always terminates in an authenticated or anonymous phase.
	CheckAuth(ctx context.Context) domain.Session
	// Login authenticates and, on success, atomically stores the token and
	// the resolved identity. On failure the session stays anonymous.
	Login(ctx context.Context, email, password string) error
	// Register creates an account and establishes a session for it. The
	// returned identity carries the server-assigned role and verified flag.
	Register(ctx context.Context, input RegisterInput) (*domain.Identity, error)
	// Logout clears the credential and returns to anonymous. Never fails.
	Logout(ctx context.Context)
	// CredentialRejected is invoked when a downstream request fails because
	// the server no longer accepts the credential: the token is cleared and
	// identity reset instead of surfacing a raw error.
	CredentialRejected(ctx context.Context)
	// Snapshot returns the current session state.
	Snapshot() domain.Session
}
