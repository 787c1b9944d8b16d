package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/core/ports"
	"github.com/consultation-platform/intake-client/internal/core/service"
	"github.com/consultation-platform/intake-client/internal/infrastructure/api"
)

// Options carries the settings the shell needs from configuration.
type Options struct {
	ServiceBaseURL string
	ServiceTimeout time.Duration
}

// App wires the client: one gateway client, one session manager, the case
// facade, both workflows, and the navigator that gates every view.
type App struct {
	Sessions  ports.SessionService
	Cases     ports.CaseService
	Review    *service.ReviewWorkflow
	Approvals *service.ApprovalService
	Nav       *Navigator
	Notifier  ports.Notifier
}

// New builds the app around a credential store. The store is the only
// durable state; everything else is fetched per view.
func New(opts Options, store ports.CredentialStore, log zerolog.Logger) *App {
	notifier := NewLogNotifier(log)

	tokens := func(ctx context.Context) (string, error) { return store.Get(ctx) }
	client := api.NewClient(opts.ServiceBaseURL, opts.ServiceTimeout, tokens, log)

	sessions := service.NewSessionManager(store, client, log)
	cases := service.NewCaseFacade(client, notifier, sessions, log)
	review := service.NewReviewWorkflow(cases, log)
	approvals := service.NewApprovalService(client, notifier, sessions, log)
	nav := NewNavigator(sessions, log)

	return &App{
		Sessions:  sessions,
		Cases:     cases,
		Review:    review,
		Approvals: approvals,
		Nav:       nav,
		Notifier:  notifier,
	}
}
