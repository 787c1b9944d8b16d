package ports

import (
	"context"
	"io"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// CaseService mediates all case reads and writes for the views, normalizing
// every failure into a notification plus a safe default return. No call ever
// propagates an error to the view layer.
type CaseService interface {
	// ListAssignedCases returns the consultant's open cases, newest first.
	// On failure it returns an empty slice after reporting exactly once.
	ListAssignedCases(ctx context.Context) []domain.Case
	// GetCaseDetail returns nil when the case does not exist or the id is
	// not accessible; views render nil as "not found", not as loading.
	GetCaseDetail(ctx context.Context, id string) *domain.CaseDetail
	SubmitCase(ctx context.Context, input SubmitCaseInput) bool
	SubmitReview(ctx context.Context, sub domain.ReviewSubmission) bool
	UploadReference(ctx context.Context, filename string, content io.Reader) bool
}
