package service

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/core/domain"
	"github.com/consultation-platform/intake-client/internal/core/ports"
)

// CredentialSink is the slice of the session service the facade needs: a way
// to propagate a server-side credential rejection.
type CredentialSink interface {
	CredentialRejected(ctx context.Context)
}

// CaseFacade implements ports.CaseService. Every gateway failure is caught
// here, reported exactly once through the notifier, and converted into a
// safe default return; nothing error-shaped reaches the view layer.
type CaseFacade struct {
	gateway  ports.CaseGateway
	notifier ports.Notifier
	sessions CredentialSink
	log      zerolog.Logger
}

func NewCaseFacade(gateway ports.CaseGateway, notifier ports.Notifier, sessions CredentialSink, log zerolog.Logger) *CaseFacade {
	return &CaseFacade{gateway: gateway, notifier: notifier, sessions: sessions, log: log}
}

// ListAssignedCases returns the consultant's assigned cases, newest first.
func (s *CaseFacade) ListAssignedCases(ctx context.Context) []domain.Case {
	cases, err := s.gateway.AssignedCases(ctx)
	if err != nil {
		s.report(ctx, "list_cases", "Could not load cases", err)
		return []domain.Case{}
	}

	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].CreatedAt.After(cases[j].CreatedAt)
	})
	return cases
}

// GetCaseDetail returns nil for an unknown or inaccessible id. Absence is a
// valid terminal state for the detail view and is not reported as a failure.
func (s *CaseFacade) GetCaseDetail(ctx context.Context, id string) *domain.CaseDetail {
	detail, err := s.gateway.CaseDetail(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Debug().Str("case_id", id).Msg("case not found")
			return nil
		}
		s.report(ctx, "case_detail", "Could not load case", err)
		return nil
	}
	return detail
}

// SubmitCase sends a patient case submission. The endpoint is public, so no
// credential handling applies beyond the usual transport reporting.
func (s *CaseFacade) SubmitCase(ctx context.Context, input ports.SubmitCaseInput) bool {
	if err := s.gateway.SubmitCase(ctx, input); err != nil {
		s.report(ctx, "submit_case", "Could not submit case", err)
		return false
	}
	s.notifier.Success("Case submitted", "Your case will be reviewed by a consultant shortly.")
	return true
}

// SubmitReview sends a resolved solution for a case. The review workflow has
// already validated the submission; only transport outcomes are handled here.
func (s *CaseFacade) SubmitReview(ctx context.Context, sub domain.ReviewSubmission) bool {
	if err := s.gateway.AddSolution(ctx, sub.CaseID, sub.Solution); err != nil {
		s.report(ctx, "submit_review", "Could not submit review", err)
		return false
	}
	s.notifier.Success("Review submitted", "Thank you for reviewing this case.")
	return true
}

// UploadReference uploads a reference document for embedding.
func (s *CaseFacade) UploadReference(ctx context.Context, filename string, content io.Reader) bool {
	if err := s.gateway.UploadReference(ctx, filename, content); err != nil {
		s.report(ctx, "upload_reference", "Could not upload file", err)
		return false
	}
	s.notifier.Success("File uploaded", filename+" was uploaded.")
	return true
}

// report converts a gateway error into exactly one user-facing notification.
// Credential rejections additionally reset the session through the sink so an
// expired or revoked token is discarded instead of failing every later call.
func (s *CaseFacade) report(ctx context.Context, op, title string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		s.notifier.Failure("Session expired", "Your session has expired, please sign in again.")
		s.sessions.CredentialRejected(ctx)
	case errors.Is(err, domain.ErrUnauthorized):
		s.notifier.Failure("Not authorized", "Please sign in again.")
		s.sessions.CredentialRejected(ctx)
	default:
		s.notifier.Failure(title, "Please try again.")
	}
	s.log.Error().Err(err).Str("op", op).Msg("case operation failed")
}
