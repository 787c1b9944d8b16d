package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/core/domain"
	"github.com/consultation-platform/intake-client/internal/core/ports"
)

// ApprovalService owns the admin's working set of pending consultants and
// the per-id processing markers. Decisions on different consultants may run
// concurrently; a second decision on the same consultant while one is in
// flight is a no-op.
//
// Removal is optimistic: the entity leaves the working set when the decision
// is dispatched and is restored at its original position if the call fails.
// Reconciliation with the server otherwise happens on the next Refresh.
type ApprovalService struct {
	gateway  ports.AdminGateway
	notifier ports.Notifier
	sessions CredentialSink
	log      zerolog.Logger

	mu          sync.Mutex
	consultants []domain.PendingConsultant
	processing  map[string]struct{}
}

func NewApprovalService(gateway ports.AdminGateway, notifier ports.Notifier, sessions CredentialSink, log zerolog.Logger) *ApprovalService {
	return &ApprovalService{
		gateway:    gateway,
		notifier:   notifier,
		sessions:   sessions,
		log:        log,
		processing: make(map[string]struct{}),
	}
}

// Refresh replaces the working set with the server's current pending list.
// On failure the previous set is kept and the failure reported once; manual
// refresh is the only recovery path.
func (s *ApprovalService) Refresh(ctx context.Context) []domain.PendingConsultant {
	pending, err := s.gateway.PendingConsultants(ctx)
	if err != nil {
		s.reportFailure(ctx, "Could not load pending consultants", err)
		return s.Consultants()
	}

	s.mu.Lock()
	s.consultants = pending
	s.mu.Unlock()
	return s.Consultants()
}

// Consultants returns a copy of the current working set.
func (s *ApprovalService) Consultants() []domain.PendingConsultant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PendingConsultant, len(s.consultants))
	copy(out, s.consultants)
	return out
}

// Processing reports whether a decision for the consultant is in flight.
func (s *ApprovalService) Processing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.processing[id]
	return ok
}

// Approve accepts a pending consultant registration.
func (s *ApprovalService) Approve(ctx context.Context, id string) error {
	return s.decide(ctx, id, s.gateway.ApproveConsultant, "Consultant approved", "Could not approve consultant")
}

// Reject declines a pending consultant registration.
func (s *ApprovalService) Reject(ctx context.Context, id string) error {
	return s.decide(ctx, id, s.gateway.RejectConsultant, "Consultant rejected", "Could not reject consultant")
}

func (s *ApprovalService) decide(
	ctx context.Context,
	id string,
	call func(context.Context, string) error,
	successTitle, failureTitle string,
) error {
	s.mu.Lock()
	if _, busy := s.processing[id]; busy {
		s.mu.Unlock()
		s.log.Debug().Str("consultant_id", id).Msg("decision ignored, already processing")
		return domain.ErrBusy
	}
	idx, found := s.indexLocked(id)
	if !found {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	s.processing[id] = struct{}{}
	removed := s.consultants[idx]
	s.consultants = append(s.consultants[:idx], s.consultants[idx+1:]...)
	s.mu.Unlock()

	err := call(ctx, id)

	s.mu.Lock()
	delete(s.processing, id)
	if err != nil {
		// Restore the optimistic removal so the entity stays visible and
		// actionable. A refresh may have replaced the set in the meantime,
		// so the original index is clamped.
		if _, already := s.indexLocked(id); !already {
			if idx > len(s.consultants) {
				idx = len(s.consultants)
			}
			s.consultants = append(s.consultants[:idx], append([]domain.PendingConsultant{removed}, s.consultants[idx:]...)...)
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.reportFailure(ctx, failureTitle, err)
		return err
	}

	s.notifier.Success(successTitle, removed.FirstName+" "+removed.LastName)
	s.log.Info().Str("consultant_id", id).Msg("consultant decision applied")
	return nil
}

func (s *ApprovalService) indexLocked(id string) (int, bool) {
	for i := range s.consultants {
		if s.consultants[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *ApprovalService) reportFailure(ctx context.Context, title string, err error) {
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
	s.log.Error().Err(err).Msg("admin operation failed")
}
