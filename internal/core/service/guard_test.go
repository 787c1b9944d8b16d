package service

import (
	"testing"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

func TestDecide_Table(t *testing.T) {
	consultant := &domain.Identity{ID: "u1", Role: domain.RoleConsultant}
	admin := &domain.Identity{ID: "u2", Role: domain.RoleAdmin}

	casesRule := domain.AuthorizationRule{
		RequireAuth:    true,
		RequiredRole:   domain.RoleConsultant,
		RedirectTarget: "/login",
	}
	loginRule := domain.AuthorizationRule{RequireAuth: false}

	tests := []struct {
		name       string
		session    domain.Session
		rule       domain.AuthorizationRule
		wantKind   domain.DecisionKind
		wantTarget string
	}{
		{
			name:     "resolving always defers",
			session:  domain.Session{Phase: domain.PhaseResolving},
			rule:     casesRule,
			wantKind: domain.DecisionDefer,
		},
		{
			name:     "resolving defers even on public routes",
			session:  domain.Session{Phase: domain.PhaseResolving},
			rule:     loginRule,
			wantKind: domain.DecisionDefer,
		},
		{
			name:     "unresolved treated like resolving",
			session:  domain.Session{Phase: domain.PhaseUnresolved},
			rule:     casesRule,
			wantKind: domain.DecisionDefer,
		},
		{
			name:       "anonymous on protected route redirects to login",
			session:    domain.Session{Phase: domain.PhaseAnonymous},
			rule:       casesRule,
			wantKind:   domain.DecisionRedirect,
			wantTarget: "/login",
		},
		{
			name:     "anonymous on public route allowed",
			session:  domain.Session{Phase: domain.PhaseAnonymous},
			rule:     loginRule,
			wantKind: domain.DecisionAllow,
		},
		{
			name:       "authenticated on public route redirects to landing",
			session:    domain.Session{Phase: domain.PhaseAuthenticated, Identity: consultant},
			rule:       loginRule,
			wantKind:   domain.DecisionRedirect,
			wantTarget: DefaultLanding,
		},
		{
			name:     "matching role allowed",
			session:  domain.Session{Phase: domain.PhaseAuthenticated, Identity: consultant},
			rule:     casesRule,
			wantKind: domain.DecisionAllow,
		},
		{
			name:       "role mismatch redirects to landing, not an error",
			session:    domain.Session{Phase: domain.PhaseAuthenticated, Identity: admin},
			rule:       casesRule,
			wantKind:   domain.DecisionRedirect,
			wantTarget: DefaultLanding,
		},
		{
			name:    "no role required accepts any authenticated identity",
			session: domain.Session{Phase: domain.PhaseAuthenticated, Identity: admin},
			rule: domain.AuthorizationRule{
				RequireAuth:    true,
				RedirectTarget: "/login",
			},
			wantKind: domain.DecisionAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.session, tt.rule)
			if got.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.Target != tt.wantTarget {
				t.Fatalf("target = %q, want %q", got.Target, tt.wantTarget)
			}
		})
	}
}

func TestDecide_Pure(t *testing.T) {
	session := domain.Session{Phase: domain.PhaseAuthenticated, Identity: &domain.Identity{Role: domain.RoleConsultant}}
	rule := domain.AuthorizationRule{RequireAuth: true, RequiredRole: domain.RoleConsultant, RedirectTarget: "/login"}

	first := Decide(session, rule)
	for i := 0; i < 100; i++ {
		if got := Decide(session, rule); got != first {
			t.Fatalf("decision changed between identical evaluations: %+v vs %+v", got, first)
		}
	}
}
