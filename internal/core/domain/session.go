package domain

// SessionPhase represents the authentication state of the client process.
type SessionPhase string

const (
	// PhaseUnresolved is the state before CheckAuth has run; consumers must
	// treat it exactly like PhaseResolving (identity unknown, defer).
	PhaseUnresolved    SessionPhase = "unresolved"
	PhaseResolving     SessionPhase = "resolving"
	PhaseAuthenticated SessionPhase = "authenticated"
	PhaseAnonymous     SessionPhase = "anonymous"
)

// sessionTransitions defines the allowed session state machine transitions.
var sessionTransitions = map[SessionPhase][]SessionPhase{
	PhaseUnresolved:    {PhaseResolving, PhaseAnonymous},
	PhaseResolving:     {PhaseAuthenticated, PhaseAnonymous},
	PhaseAuthenticated: {PhaseResolving, PhaseAnonymous},
	PhaseAnonymous:     {PhaseResolving, PhaseAnonymous, PhaseAuthenticated},
}

// CanTransitionTo reports whether moving from the current phase to next is valid.
func (p SessionPhase) CanTransitionTo(next SessionPhase) bool {
	for _, allowed := range sessionTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Resolved reports whether the phase carries a final answer about identity.
func (p SessionPhase) Resolved() bool {
	return p == PhaseAuthenticated || p == PhaseAnonymous
}

// Session is an immutable snapshot of the session state. Identity is non-nil
// iff Phase is PhaseAuthenticated.
type Session struct {
	Phase    SessionPhase
	Identity *Identity
}

// Authenticated reports whether the snapshot carries a resolved identity.
func (s Session) Authenticated() bool {
	return s.Phase == PhaseAuthenticated && s.Identity != nil
}

// AuthorizationRule is the per-route access constraint evaluated by the
// route guard. Rules are static data, evaluated fresh on every navigation.
type AuthorizationRule struct {
	RequireAuth    bool
	RequiredRole   string // empty means any authenticated role
	RedirectTarget string // where anonymous users are sent when auth is required
}

// DecisionKind enumerates the possible route guard outcomes.
type DecisionKind string

const (
	// DecisionDefer means the session is still resolving; render a loading
	// state and decide again once resolution completes.
	DecisionDefer    DecisionKind = "defer"
	DecisionAllow    DecisionKind = "allow"
	DecisionRedirect DecisionKind = "redirect"
)

// RouteDecision is the route guard's verdict for one navigation.
type RouteDecision struct {
	Kind   DecisionKind
	Target string // set only when Kind is DecisionRedirect
}
