package service

import "github.com/consultation-platform/intake-client/internal/core/domain"

// DefaultLanding is where authenticated users end up when a route refuses
// them: visiting an anonymous-only route, or lacking the required role.
const DefaultLanding = "/cases"

// Decide is the route guard: a pure function from the current session and a
// route's authorization rule to a navigation decision. It is evaluated fresh
// on every navigation; decisions are never cached across identity changes.
//
// An unresolved session dominates everything else: until CheckAuth has
// produced an answer the guard defers, it never allows or redirects.
func Decide(session domain.Session, rule domain.AuthorizationRule) domain.RouteDecision {
	if !session.Phase.Resolved() {
		return domain.RouteDecision{Kind: domain.DecisionDefer}
	}

	if rule.RequireAuth && !session.Authenticated() {
		return domain.RouteDecision{Kind: domain.DecisionRedirect, Target: rule.RedirectTarget}
	}

	if !rule.RequireAuth && session.Authenticated() {
		return domain.RouteDecision{Kind: domain.DecisionRedirect, Target: DefaultLanding}
	}

	// Role check applies only to authenticated routes that name a role.
	if rule.RequireAuth && rule.RequiredRole != "" && session.Identity.Role != rule.RequiredRole {
		return domain.RouteDecision{Kind: domain.DecisionRedirect, Target: DefaultLanding}
	}

	return domain.RouteDecision{Kind: domain.DecisionAllow}
}
