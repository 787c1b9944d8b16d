package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/core/domain"
	"github.com/consultation-platform/intake-client/internal/core/ports"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title)
}

func (n *recordingNotifier) Failure(title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, title)
}

func (n *recordingNotifier) failureCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.failures)
}

type recordingSink struct {
	mu    sync.Mutex
	calls int
}

func (s *recordingSink) CredentialRejected(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubCaseGateway struct {
	cases       []domain.Case
	details     map[string]*domain.CaseDetail
	listErr     error
	detailErr   error
	solutionErr error
	submitErr   error
	uploadErr   error
	solutions   map[string]string
}

func newStubCaseGateway() *stubCaseGateway {
	return &stubCaseGateway{
		details:   make(map[string]*domain.CaseDetail),
		solutions: make(map[string]string),
	}
}

func (g *stubCaseGateway) AssignedCases(context.Context) ([]domain.Case, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]domain.Case(nil), g.cases...), nil
}

func (g *stubCaseGateway) CaseDetail(_ context.Context, id string) (*domain.CaseDetail, error) {
	if g.detailErr != nil {
		return nil, g.detailErr
	}
	d, ok := g.details[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (g *stubCaseGateway) SubmitCase(context.Context, ports.SubmitCaseInput) error {
	return g.submitErr
}

func (g *stubCaseGateway) AddSolution(_ context.Context, caseID, solution string) error {
	if g.solutionErr != nil {
		return g.solutionErr
	}
	g.solutions[caseID] = solution
	return nil
}

func (g *stubCaseGateway) UploadReference(context.Context, string, io.Reader) error {
	return g.uploadErr
}

func newCaseFacade(g *stubCaseGateway) (*CaseFacade, *recordingNotifier, *recordingSink) {
	notifier := &recordingNotifier{}
	sink := &recordingSink{}
	return NewCaseFacade(g, notifier, sink, zerolog.Nop()), notifier, sink
}

func TestCaseFacade_ListAssignedCases_NewestFirst(t *testing.T) {
	g := newStubCaseGateway()
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	g.cases = []domain.Case{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.AddDate(0, 0, 7)},
		{ID: "mid", CreatedAt: base.AddDate(0, 0, 3)},
	}
	svc, notifier, _ := newCaseFacade(g)

	got := svc.ListAssignedCases(context.Background())
	if len(got) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "mid" || got[2].ID != "old" {
		t.Fatalf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if notifier.failureCount() != 0 {
		t.Fatalf("unexpected notifications")
	}
}

func TestCaseFacade_ListAssignedCases_TransportFailure(t *testing.T) {
	g := newStubCaseGateway()
	g.listErr = errors.New("connection refused")
	svc, notifier, sink := newCaseFacade(g)

	got := svc.ListAssignedCases(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
	if notifier.failureCount() != 1 {
		t.Fatalf("expected exactly one failure notification, got %d", notifier.failureCount())
	}
	if sink.count() != 0 {
		t.Fatalf("plain transport failure must not reset the session")
	}
}

func TestCaseFacade_ListAssignedCases_ExpiredCredential(t *testing.T) {
	g := newStubCaseGateway()
	g.listErr = domain.ErrSessionExpired
	svc, notifier, sink := newCaseFacade(g)

	got := svc.ListAssignedCases(context.Background())
	if len(got) != 0 {
		t.Fatalf("expected empty slice")
	}
	if notifier.failureCount() != 1 {
		t.Fatalf("expected exactly one notification, got %d", notifier.failureCount())
	}
	if sink.count() != 1 {
		t.Fatalf("expired credential must reset the session")
	}
}

func TestCaseFacade_GetCaseDetail_NotFound(t *testing.T) {
	g := newStubCaseGateway()
	svc, notifier, _ := newCaseFacade(g)

	if d := svc.GetCaseDetail(context.Background(), "unknown-id"); d != nil {
		t.Fatalf("expected nil detail, got %+v", d)
	}
	// Absence is a terminal view state, not a failure.
	if notifier.failureCount() != 0 {
		t.Fatalf("not-found must not notify, got %d notifications", notifier.failureCount())
	}
}

func TestCaseFacade_GetCaseDetail_TransportFailure(t *testing.T) {
	g := newStubCaseGateway()
	g.detailErr = errors.New("boom")
	svc, notifier, _ := newCaseFacade(g)

	if d := svc.GetCaseDetail(context.Background(), "c1"); d != nil {
		t.Fatalf("expected nil detail")
	}
	if notifier.failureCount() != 1 {
		t.Fatalf("expected exactly one failure notification")
	}
}

func TestCaseFacade_SubmitReview(t *testing.T) {
	g := newStubCaseGateway()
	svc, notifier, _ := newCaseFacade(g)

	ok := svc.SubmitReview(context.Background(), domain.ReviewSubmission{CaseID: "c1", Solution: "rest and ice"})
	if !ok {
		t.Fatalf("expected success")
	}
	if g.solutions["c1"] != "rest and ice" {
		t.Fatalf("solution not forwarded: %q", g.solutions["c1"])
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected one success notification")
	}

	g.solutionErr = errors.New("boom")
	if svc.SubmitReview(context.Background(), domain.ReviewSubmission{CaseID: "c2", Solution: "x"}) {
		t.Fatalf("expected failure")
	}
	if notifier.failureCount() != 1 {
		t.Fatalf("expected exactly one failure notification")
	}
}

func TestCaseFacade_UploadReference(t *testing.T) {
	g := newStubCaseGateway()
	svc, _, _ := newCaseFacade(g)

	if !svc.UploadReference(context.Background(), "guide.pdf", strings.NewReader("%PDF")) {
		t.Fatalf("expected upload success")
	}

	g.uploadErr = errors.New("boom")
	if svc.UploadReference(context.Background(), "guide.pdf", strings.NewReader("%PDF")) {
		t.Fatalf("expected upload failure")
	}
}
