package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/core/domain"
	"github.com/consultation-platform/intake-client/internal/core/ports"
	"github.com/consultation-platform/intake-client/internal/core/service"
)

// maxHops bounds redirect chains; the longest legitimate chain is
// defer → redirect → allow.
const maxHops = 4

// Navigator gates every navigation through the route guard. It also issues
// the view generation counter: a view captures the generation it was created
// under, and a completion handler that observes a newer generation treats
// itself as stale and applies nothing.
type Navigator struct {
	sessions ports.SessionService
	rules    map[string]domain.AuthorizationRule
	log      zerolog.Logger

	mu         sync.Mutex
	current    string
	generation uint64
}

func NewNavigator(sessions ports.SessionService, log zerolog.Logger) *Navigator {
	return &Navigator{
		sessions: sessions,
		rules:    Rules(),
		log:      log,
	}
}

// Navigate evaluates the guard for the target route, following redirects,
// and returns the route finally shown. A deferred decision triggers
// CheckAuth — resolution always terminates — and is then re-evaluated.
func (n *Navigator) Navigate(ctx context.Context, route string) string {
	for hops := 0; hops < maxHops; hops++ {
		rule, known := n.rules[route]
		if !known {
			// Unknown paths render the not-found page; nothing to guard.
			return n.arrive(route)
		}

		decision := service.Decide(n.sessions.Snapshot(), rule)
		switch decision.Kind {
		case domain.DecisionDefer:
			n.sessions.CheckAuth(ctx)
		case domain.DecisionRedirect:
			if decision.Target == route {
				// The default landing redirecting to itself means the
				// identity has nowhere better to go; show it rather than
				// looping (an admin visiting the consultant landing).
				return n.arrive(route)
			}
			n.log.Debug().Str("from", route).Str("to", decision.Target).Msg("navigation redirected")
			route = decision.Target
		case domain.DecisionAllow:
			return n.arrive(route)
		}
	}
	return n.Current()
}

// Current returns the route currently shown.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Generation returns the counter identifying the current view instance.
func (n *Navigator) Generation() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.generation
}

// Stale reports whether a view created at gen has been navigated away from.
func (n *Navigator) Stale(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return gen != n.generation
}

func (n *Navigator) arrive(route string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = route
	n.generation++
	return route
}
