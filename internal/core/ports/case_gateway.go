package ports

import (
	"context"
	"io"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// SubmitCaseInput carries the patient-side case submission fields.
type SubmitCaseInput struct {
	Email       string
	Title       string
	Description string
	Speciality  string
}

// CaseGateway is the client side of the external case endpoints. Calls that
// require authentication pick up the current credential from the store; an
// absent credential produces an unauthenticated request the server may reject.
type CaseGateway interface {
	AssignedCases(ctx context.Context) ([]domain.Case, error)
	CaseDetail(ctx context.Context, id string) (*domain.CaseDetail, error)
	SubmitCase(ctx context.Context, input SubmitCaseInput) error
	AddSolution(ctx context.Context, caseID, solution string) error
	UploadReference(ctx context.Context, filename string, content io.Reader) error
}
