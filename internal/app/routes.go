// Package app is the navigable shell of the intake client: the route table,
// the navigator that gates every navigation through the route guard, and the
// views that own their fetched collections.
package app

import (
	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// Route paths. RouteSubmitCase is the public landing page where patients
// file a case without an account.
const (
	RouteSubmitCase       = "/"
	RouteLogin            = "/login"
	RouteRegister         = "/register"
	RouteCases            = "/cases"
	RouteCaseDetail       = "/cases/:id"
	RouteReferences       = "/references"
	RouteAdminConsultants = "/admin/consultants"
)

// Rules returns the per-route authorization constraints. The table is
// static; the guard evaluates it against a fresh session snapshot on every
// navigation.
func Rules() map[string]domain.AuthorizationRule {
	anonymous := domain.AuthorizationRule{RequireAuth: false}
	consultant := domain.AuthorizationRule{
		RequireAuth:    true,
		RequiredRole:   domain.RoleConsultant,
		RedirectTarget: RouteLogin,
	}
	admin := domain.AuthorizationRule{
		RequireAuth:    true,
		RequiredRole:   domain.RoleAdmin,
		RedirectTarget: RouteLogin,
	}

	return map[string]domain.AuthorizationRule{
		RouteSubmitCase:       anonymous,
		RouteLogin:            anonymous,
		RouteRegister:         anonymous,
		RouteCases:            consultant,
		RouteCaseDetail:       consultant,
		RouteReferences:       consultant,
		RouteAdminConsultants: admin,
	}
}
