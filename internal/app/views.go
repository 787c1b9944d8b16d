package app

import (
	"context"
	"errors"

	"github.com/consultation-platform/intake-client/internal/core/domain"
	"github.com/consultation-platform/intake-client/internal/core/ports"
	"github.com/consultation-platform/intake-client/internal/core/service"
)

// Views own the collections they fetch; nothing else mutates them. Every
// fetch captures the navigator generation at view creation, so a completion
// that lands after the user navigated away applies nothing.

// CaseListView backs the consultant's assigned-cases page.
type CaseListView struct {
	nav   *Navigator
	cases ports.CaseService
	gen   uint64

	items  []domain.Case
	loaded bool
}

func NewCaseListView(nav *Navigator, cases ports.CaseService) *CaseListView {
	return &CaseListView{nav: nav, cases: cases, gen: nav.Generation()}
}

// Refresh re-fetches the list. It is also the only recovery path after a
// failed fetch; there is no automatic retry.
func (v *CaseListView) Refresh(ctx context.Context) {
	items := v.cases.ListAssignedCases(ctx)
	if v.nav.Stale(v.gen) {
		return
	}
	v.items = items
	v.loaded = true
}

// Cases returns the current snapshot of the list.
func (v *CaseListView) Cases() []domain.Case {
	return append([]domain.Case(nil), v.items...)
}

// Loaded reports whether a fetch has completed; false renders as loading.
func (v *CaseListView) Loaded() bool { return v.loaded }

// Empty reports whether the loaded list has no cases.
func (v *CaseListView) Empty() bool { return v.loaded && len(v.items) == 0 }

// CaseDetailView backs the review page for a single case.
type CaseDetailView struct {
	nav      *Navigator
	review   *service.ReviewWorkflow
	notifier ports.Notifier
	caseID   string
	gen      uint64

	detail *domain.CaseDetail
	loaded bool
}

func NewCaseDetailView(nav *Navigator, review *service.ReviewWorkflow, notifier ports.Notifier, caseID string) *CaseDetailView {
	return &CaseDetailView{nav: nav, review: review, notifier: notifier, caseID: caseID, gen: nav.Generation()}
}

func (v *CaseDetailView) Load(ctx context.Context) {
	detail := v.review.Load(ctx, v.caseID)
	if v.nav.Stale(v.gen) {
		return
	}
	v.detail = detail
	v.loaded = true
}

func (v *CaseDetailView) Detail() *domain.CaseDetail { return v.detail }

// NotFound reports whether the fetch completed without a case. It is a
// terminal state of the view, rendered as "not found" rather than an error.
func (v *CaseDetailView) NotFound() bool { return v.loaded && v.detail == nil }

// Submitting reports whether a review submit is in flight for this case.
func (v *CaseDetailView) Submitting() bool { return v.review.InFlight(v.caseID) }

// SubmitReview resolves the choice and submits. On success the consultant is
// returned to the case list; the case drops out of later list fetches
// server-side. On failure the loaded detail stays so the consultant can
// retry. Returns whether the review was accepted.
func (v *CaseDetailView) SubmitReview(ctx context.Context, choice service.ReviewChoice) bool {
	if v.detail == nil {
		return false
	}

	ok, err := v.review.Submit(ctx, v.detail, choice)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			v.notifier.Failure("Review not submitted", err.Error())
		}
		// ErrBusy: a submit is already in flight, nothing to do.
		return false
	}

	if v.nav.Stale(v.gen) {
		return ok
	}
	if ok {
		v.nav.Navigate(ctx, RouteCases)
	}
	return ok
}

// AdminConsultantsView backs the admin's pending-registrations page.
type AdminConsultantsView struct {
	nav       *Navigator
	approvals *service.ApprovalService
	gen       uint64

	items  []domain.PendingConsultant
	loaded bool
}

func NewAdminConsultantsView(nav *Navigator, approvals *service.ApprovalService) *AdminConsultantsView {
	return &AdminConsultantsView{nav: nav, approvals: approvals, gen: nav.Generation()}
}

func (v *AdminConsultantsView) Refresh(ctx context.Context) {
	items := v.approvals.Refresh(ctx)
	if v.nav.Stale(v.gen) {
		return
	}
	v.items = items
	v.loaded = true
}

func (v *AdminConsultantsView) Consultants() []domain.PendingConsultant {
	return append([]domain.PendingConsultant(nil), v.items...)
}

func (v *AdminConsultantsView) Loaded() bool { return v.loaded }

func (v *AdminConsultantsView) Empty() bool { return v.loaded && len(v.items) == 0 }

// Processing reports whether a decision is in flight for the consultant;
// the page disables that entry's actions while true, siblings stay active.
func (v *AdminConsultantsView) Processing(id string) bool {
	return v.approvals.Processing(id)
}

// Approve accepts a pending registration and resyncs the view's copy of the
// working set, which reflects the optimistic removal or its restoration.
func (v *AdminConsultantsView) Approve(ctx context.Context, id string) {
	err := v.approvals.Approve(ctx, id)
	v.settle(err)
}

// Reject declines a pending registration.
func (v *AdminConsultantsView) Reject(ctx context.Context, id string) {
	err := v.approvals.Reject(ctx, id)
	v.settle(err)
}

func (v *AdminConsultantsView) settle(err error) {
	if errors.Is(err, domain.ErrBusy) {
		return
	}
	if v.nav.Stale(v.gen) {
		return
	}
	v.items = v.approvals.Consultants()
}
