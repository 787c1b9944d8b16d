package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

type stubAdminGateway struct {
	mu       sync.Mutex
	pending  []domain.PendingConsultant
	listErr  error
	decErr   error
	approved []string
	rejected []string
	block    chan struct{}
}

func (g *stubAdminGateway) PendingConsultants(context.Context) ([]domain.PendingConsultant, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]domain.PendingConsultant(nil), g.pending...), nil
}

func (g *stubAdminGateway) ApproveConsultant(_ context.Context, id string) error {
	if g.block != nil {
		<-g.block
	}
	if g.decErr != nil {
		return g.decErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.approved = append(g.approved, id)
	return nil
}

func (g *stubAdminGateway) RejectConsultant(_ context.Context, id string) error {
	if g.decErr != nil {
		return g.decErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rejected = append(g.rejected, id)
	return nil
}

func pendingSet() []domain.PendingConsultant {
	return []domain.PendingConsultant{
		{ID: "p1", FirstName: "Ana", LastName: "Silva"},
		{ID: "p2", FirstName: "Ben", LastName: "Okoye"},
		{ID: "p3", FirstName: "Cleo", LastName: "Marsh"},
	}
}

func newApprovalService(g *stubAdminGateway) (*ApprovalService, *recordingNotifier, *recordingSink) {
	notifier := &recordingNotifier{}
	sink := &recordingSink{}
	return NewApprovalService(g, notifier, sink, zerolog.Nop()), notifier, sink
}

func ids(set []domain.PendingConsultant) []string {
	out := make([]string, len(set))
	for i, c := range set {
		out[i] = c.ID
	}
	return out
}

func TestApprovalService_Refresh(t *testing.T) {
	g := &stubAdminGateway{pending: pendingSet()}
	svc, notifier, _ := newApprovalService(g)

	got := svc.Refresh(context.Background())
	if len(got) != 3 {
		t.Fatalf("expected 3 pending, got %d", len(got))
	}

	g.listErr = errors.New("boom")
	got = svc.Refresh(context.Background())
	if len(got) != 3 {
		t.Fatalf("failed refresh must keep the previous set, got %d", len(got))
	}
	if notifier.failureCount() != 1 {
		t.Fatalf("expected exactly one failure notification, got %d", notifier.failureCount())
	}
}

func TestApprovalService_Approve_OptimisticRemoval(t *testing.T) {
	g := &stubAdminGateway{pending: pendingSet()}
	svc, notifier, _ := newApprovalService(g)
	svc.Refresh(context.Background())

	if err := svc.Approve(context.Background(), "p2"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := ids(svc.Consultants()); len(got) != 2 || got[0] != "p1" || got[1] != "p3" {
		t.Fatalf("unexpected set after approve: %v", got)
	}
	if len(g.approved) != 1 || g.approved[0] != "p2" {
		t.Fatalf("decision not forwarded: %v", g.approved)
	}
	if svc.Processing("p2") {
		t.Fatalf("processing mark must be cleared")
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected one success notification")
	}
}

func TestApprovalService_Reject_RestoresOnFailure(t *testing.T) {
	g := &stubAdminGateway{pending: pendingSet()}
	svc, notifier, _ := newApprovalService(g)
	svc.Refresh(context.Background())

	g.decErr = errors.New("boom")
	if err := svc.Reject(context.Background(), "p2"); err == nil {
		t.Fatalf("expected error")
	}

	got := ids(svc.Consultants())
	if len(got) != 3 || got[1] != "p2" {
		t.Fatalf("failed decision must restore the entity at its position: %v", got)
	}
	if svc.Processing("p2") {
		t.Fatalf("processing mark must be cleared on failure")
	}
	if notifier.failureCount() != 1 {
		t.Fatalf("expected exactly one failure notification")
	}
}

func TestApprovalService_Decide_UnknownID(t *testing.T) {
	g := &stubAdminGateway{pending: pendingSet()}
	svc, _, _ := newApprovalService(g)
	svc.Refresh(context.Background())

	if err := svc.Approve(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestApprovalService_ConcurrentSameConsultant(t *testing.T) {
	g := &stubAdminGateway{pending: pendingSet(), block: make(chan struct{})}
	svc, _, _ := newApprovalService(g)
	svc.Refresh(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := svc.Approve(context.Background(), "p1"); err != nil {
			t.Errorf("first decision failed: %v", err)
		}
	}()

	for !svc.Processing("p1") {
		runtime.Gosched()
	}

	if err := svc.Approve(context.Background(), "p1"); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("expected busy refusal, got %v", err)
	}

	close(g.block)
	<-done

	if len(g.approved) != 1 {
		t.Fatalf("expected exactly one approve call, got %d", len(g.approved))
	}
}

func TestApprovalService_ConcurrentDifferentConsultants(t *testing.T) {
	g := &stubAdminGateway{pending: pendingSet(), block: make(chan struct{})}
	svc, _, _ := newApprovalService(g)
	svc.Refresh(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Approve(context.Background(), "p1")
	}()

	for !svc.Processing("p1") {
		runtime.Gosched()
	}

	// Reject does not share the block; a different consultant proceeds while
	// p1 is still in flight.
	if err := svc.Reject(context.Background(), "p3"); err != nil {
		t.Fatalf("independent decision blocked: %v", err)
	}

	close(g.block)
	<-done

	got := ids(svc.Consultants())
	if len(got) != 1 || got[0] != "p2" {
		t.Fatalf("unexpected remaining set: %v", got)
	}
}

func TestApprovalService_ExpiredCredentialResetsSession(t *testing.T) {
	g := &stubAdminGateway{pending: pendingSet()}
	svc, notifier, sink := newApprovalService(g)
	svc.Refresh(context.Background())

	g.decErr = domain.ErrSessionExpired
	if err := svc.Approve(context.Background(), "p1"); err == nil {
		t.Fatalf("expected error")
	}
	if sink.count() != 1 {
		t.Fatalf("expired credential must reset the session")
	}
	if notifier.failureCount() != 1 {
		t.Fatalf("expected exactly one notification")
	}
}
