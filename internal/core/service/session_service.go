package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/core/domain"
	"github.com/consultation-platform/intake-client/internal/core/ports"
)

// SessionManager implements ports.SessionService. It is the single writer of
// the credential store and of the session snapshot; every phase change goes
// through become, so at any observable instant exactly one phase holds.
type SessionManager struct {
	store ports.CredentialStore
	auth  ports.AuthGateway
	log   zerolog.Logger

	mu       sync.Mutex
	phase    domain.SessionPhase
	identity *domain.Identity
}

func NewSessionManager(store ports.CredentialStore, auth ports.AuthGateway, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store: store,
		auth:  auth,
		log:   log,
		phase: domain.PhaseUnresolved,
	}
}

// CheckAuth resolves a durable credential left by a previous run. Once the
// session reaches a resolved phase, further calls return the current snapshot
// without re-resolving.
func (s *SessionManager) CheckAuth(ctx context.Context) domain.Session {
	s.mu.Lock()
	if s.phase.Resolved() {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.mu.Unlock()

	token, err := s.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredential) {
			s.log.Warn().Err(err).Msg("credential store read failed, treating as anonymous")
		}
		return s.become(domain.PhaseAnonymous, nil)
	}

	s.become(domain.PhaseResolving, nil)

	identity, err := s.auth.Profile(ctx, token)
	if err != nil {
		// A credential that no longer resolves is invalid, never fatal.
		s.log.Info().Err(err).Msg("stored credential rejected, clearing")
		s.clearStore(ctx)
		return s.become(domain.PhaseAnonymous, nil)
	}

	s.log.Info().Str("user_id", identity.ID).Str("role", identity.Role).Msg("session restored")
	return s.become(domain.PhaseAuthenticated, identity)
}

// Login authenticates against the consultation service. The token is stored
// only after the identity behind it has been resolved, so a failure at any
// step leaves neither token nor identity applied.
func (s *SessionManager) Login(ctx context.Context, email, password string) error {
	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.become(domain.PhaseAnonymous, nil)
		return fmt.Errorf("login: %w", err)
	}

	identity, err := s.auth.Profile(ctx, token)
	if err != nil {
		s.become(domain.PhaseAnonymous, nil)
		return fmt.Errorf("login: resolve profile: %w", err)
	}

	if err := s.store.Set(ctx, token); err != nil {
		s.become(domain.PhaseAnonymous, nil)
		return fmt.Errorf("login: store credential: %w", err)
	}

	s.log.Info().Str("user_id", identity.ID).Str("role", identity.Role).Msg("login succeeded")
	s.become(domain.PhaseAuthenticated, identity)
	return nil
}

// Register creates a consultant account and establishes a session for it.
// Role and verified flags come from the server-resolved profile, not from
// client assumptions; an unverified identity signals the pending-approval
// state to the caller.
func (s *SessionManager) Register(ctx context.Context, input ports.RegisterInput) (*domain.Identity, error) {
	token, err := s.auth.Register(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	identity, err := s.auth.Profile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("register: resolve profile: %w", err)
	}

	if err := s.store.Set(ctx, token); err != nil {
		return nil, fmt.Errorf("register: store credential: %w", err)
	}

	s.log.Info().Str("user_id", identity.ID).Bool("verified", identity.Verified).Msg("registration succeeded")
	s.become(domain.PhaseAuthenticated, identity)
	return identity, nil
}

// Logout clears the credential and returns to anonymous unconditionally.
func (s *SessionManager) Logout(ctx context.Context) {
	s.clearStore(ctx)
	s.become(domain.PhaseAnonymous, nil)
	s.log.Info().Msg("logged out")
}

// CredentialRejected handles a downstream 401: the server no longer accepts
// the token, so it is dropped and the session reset rather than surfacing a
// raw transport error.
func (s *SessionManager) CredentialRejected(ctx context.Context) {
	s.clearStore(ctx)
	s.become(domain.PhaseAnonymous, nil)
	s.log.Info().Msg("credential rejected by server, session reset")
}

// Snapshot returns the current session state.
func (s *SessionManager) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionManager) snapshotLocked() domain.Session {
	return domain.Session{Phase: s.phase, Identity: s.identity}
}

func (s *SessionManager) become(phase domain.SessionPhase, identity *domain.Identity) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != phase && !s.phase.CanTransitionTo(phase) {
		s.log.Warn().
			Err(domain.ErrInvalidTransition).
			Str("from", string(s.phase)).
			Str("to", string(phase)).
			Msg("session transition outside state machine")
	}
	s.phase = phase
	s.identity = identity
	return s.snapshotLocked()
}

func (s *SessionManager) clearStore(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("credential store clear failed")
	}
}
