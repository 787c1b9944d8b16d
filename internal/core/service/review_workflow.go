package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/core/domain"
	"github.com/consultation-platform/intake-client/internal/core/ports"
)

// ReviewChoice is the consultant's decision on a case: either a selected
// suggestion id or free-authored text, never both.
type ReviewChoice struct {
	SuggestionID string
	CustomText   string
}

// ReviewWorkflow drives a case from loaded detail to a submitted review. It
// owns the per-case in-flight set: a second submit for the same case while
// one is in flight is refused before anything else happens.
type ReviewWorkflow struct {
	cases ports.CaseService
	log   zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewReviewWorkflow(cases ports.CaseService, log zerolog.Logger) *ReviewWorkflow {
	return &ReviewWorkflow{
		cases:    cases,
		log:      log,
		inFlight: make(map[string]struct{}),
	}
}

// Load fetches the reviewable detail for a case. A nil result means the case
// does not exist or is not accessible; the view renders it as "not found".
func (w *ReviewWorkflow) Load(ctx context.Context, caseID string) *domain.CaseDetail {
	return w.cases.GetCaseDetail(ctx, caseID)
}

// ResolveSolution maps a choice to the single solution text that will be
// submitted. It fails with domain.ErrValidation before any network call when
// the choice names both sources, a suggestion id the detail does not carry,
// or custom text that is empty after trimming.
func ResolveSolution(detail *domain.CaseDetail, choice ReviewChoice) (string, error) {
	custom := strings.TrimSpace(choice.CustomText)

	if choice.SuggestionID != "" && custom != "" {
		return "", fmt.Errorf("%w: choose a suggestion or write your own, not both", domain.ErrValidation)
	}

	if choice.SuggestionID != "" {
		s := detail.SuggestionByID(choice.SuggestionID)
		if s == nil {
			return "", fmt.Errorf("%w: unknown suggestion %q", domain.ErrValidation, choice.SuggestionID)
		}
		return s.Text, nil
	}

	if custom == "" {
		return "", fmt.Errorf("%w: solution text is required", domain.ErrValidation)
	}
	return custom, nil
}

// Submit resolves the choice and sends the review. The returned bool reports
// whether the review was accepted; on a transport failure it is false with a
// nil error, leaving the loaded detail intact so the consultant can retry
// without re-fetching. domain.ErrBusy and domain.ErrValidation are returned
// without any network call.
func (w *ReviewWorkflow) Submit(ctx context.Context, detail *domain.CaseDetail, choice ReviewChoice) (bool, error) {
	if !w.begin(detail.ID) {
		w.log.Debug().Str("case_id", detail.ID).Msg("review submit ignored, already in flight")
		return false, domain.ErrBusy
	}
	defer w.finish(detail.ID)

	solution, err := ResolveSolution(detail, choice)
	if err != nil {
		return false, err
	}

	ok := w.cases.SubmitReview(ctx, domain.ReviewSubmission{CaseID: detail.ID, Solution: solution})
	if ok {
		// The case disappears from later list fetches server-side; the
		// workflow does not remove it optimistically.
		w.log.Info().Str("case_id", detail.ID).Msg("review submitted")
	}
	return ok, nil
}

// InFlight reports whether a submit is currently running for the case.
func (w *ReviewWorkflow) InFlight(caseID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.inFlight[caseID]
	return ok
}

func (w *ReviewWorkflow) begin(caseID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.inFlight[caseID]; ok {
		return false
	}
	w.inFlight[caseID] = struct{}{}
	return true
}

func (w *ReviewWorkflow) finish(caseID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, caseID)
}
