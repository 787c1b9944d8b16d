package ports

import (
	"context"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// RegisterInput carries the consultant registration fields sent to the
// consultation service.
type RegisterInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Speciality string
}

// AuthGateway is the client side of the external auth endpoints.
type AuthGateway interface {
	// Login exchanges credentials for an opaque session token.
	Login(ctx context.Context, email, password string) (string, error)
	// Register creates a consultant account and returns the issued token.
	Register(ctx context.Context, input RegisterInput) (string, error)
	// Profile resolves the identity behind a token. The token is passed
	// explicitly so a login can resolve identity before persisting anything.
	Profile(ctx context.Context, token string) (*domain.Identity, error)
}
