package ports

import (
	"context"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// AdminGateway is the client side of the admin pending-consultant endpoints.
type AdminGateway interface {
	PendingConsultants(ctx context.Context) ([]domain.PendingConsultant, error)
	ApproveConsultant(ctx context.Context, id string) error
	RejectConsultant(ctx context.Context, id string) error
}
