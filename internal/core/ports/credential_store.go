package ports

import "context"

// CredentialStore holds the single opaque session token, durable across
// process restarts. Only the session service writes to it.
type CredentialStore interface {
	// Set replaces the stored token.
	Set(ctx context.Context, token string) error
	// Get returns the stored token, or domain.ErrNoCredential when absent.
	Get(ctx context.Context) (string, error)
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
