// consultctl is a terminal client for the consultation intake service:
// patients submit cases, consultants review them, admins approve consultant
// registrations. Session state survives restarts through the configured
// credential store.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/consultation-platform/intake-client/internal/app"
	"github.com/consultation-platform/intake-client/internal/core/ports"
	"github.com/consultation-platform/intake-client/internal/core/service"
	"github.com/consultation-platform/intake-client/internal/pkg/config"
	"github.com/consultation-platform/intake-client/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	b, err := app.FromConfig(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "consultctl:", err)
		os.Exit(1)
	}
	log := logger.Get()

	if b.Debug != nil {
		go func() {
			if err := b.Debug.Start(cfg.DebugAddr); err != nil {
				log.Warn().Err(err).Msg("debug listener stopped")
			}
		}()
	}

	b.App.Sessions.CheckAuth(ctx)
	r := &repl{app: b.App, out: os.Stdout}
	r.show(ctx, r.app.Nav.Navigate(ctx, app.RouteSubmitCase))

	sc := bufio.NewScanner(os.Stdin)
	fmt.Fprint(r.out, "> ")
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		if !r.exec(ctx, strings.Fields(sc.Text())) {
			break
		}
		fmt.Fprint(r.out, "> ")
	}
}

type repl struct {
	app *app.App
	out *os.File
}

// exec runs one command line. Returns false to quit.
func (r *repl) exec(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "quit", "exit":
		return false
	case "help":
		r.help()
	case "whoami":
		r.whoami()
	case "go":
		if len(args) != 2 {
			fmt.Fprintln(r.out, "usage: go <route>")
			break
		}
		r.show(ctx, r.app.Nav.Navigate(ctx, args[1]))
	case "login":
		if len(args) != 3 {
			fmt.Fprintln(r.out, "usage: login <email> <password>")
			break
		}
		if err := r.app.Sessions.Login(ctx, args[1], args[2]); err != nil {
			fmt.Fprintln(r.out, "login failed:", err)
			break
		}
		r.show(ctx, r.app.Nav.Navigate(ctx, app.RouteCases))
	case "register":
		r.register(ctx, args[1:])
	case "logout":
		r.app.Sessions.Logout(ctx)
		r.show(ctx, r.app.Nav.Navigate(ctx, app.RouteLogin))
	case "open":
		if len(args) != 2 {
			fmt.Fprintln(r.out, "usage: open <case-id>")
			break
		}
		r.openCase(ctx, args[1])
	case "review":
		r.review(ctx, args[1:])
	case "approve":
		if len(args) != 2 {
			fmt.Fprintln(r.out, "usage: approve <consultant-id>")
			break
		}
		r.app.Approvals.Approve(ctx, args[1])
		r.show(ctx, r.app.Nav.Navigate(ctx, app.RouteAdminConsultants))
	case "reject":
		if len(args) != 2 {
			fmt.Fprintln(r.out, "usage: reject <consultant-id>")
			break
		}
		r.app.Approvals.Reject(ctx, args[1])
		r.show(ctx, r.app.Nav.Navigate(ctx, app.RouteAdminConsultants))
	case "submit":
		r.submitCase(ctx, args[1:])
	case "upload":
		if len(args) != 2 {
			fmt.Fprintln(r.out, "usage: upload <pdf-path>")
			break
		}
		r.upload(ctx, args[1])
	default:
		fmt.Fprintln(r.out, "unknown command, try: help")
	}
	return true
}

func (r *repl) help() {
	fmt.Fprint(r.out, `commands:
  go <route>                              navigate (/, /login, /cases, /references, /admin/consultants)
  login <email> <password>
  register <first> <last> <email> <password> <speciality>
  logout
  open <case-id>                          show a case and its suggestions
  review <case-id> <suggestion-id>        submit a suggested solution
  review <case-id> -t <text...>           submit your own solution
  submit <email> <speciality> <title...> -- <description...>
  upload <pdf-path>                       upload a reference document
  approve | reject <consultant-id>
  whoami  help  quit
`)
}

func (r *repl) whoami() {
	snap := r.app.Sessions.Snapshot()
	if !snap.Authenticated() {
		fmt.Fprintln(r.out, "not signed in")
		return
	}
	fmt.Fprintf(r.out, "%s <%s> role=%s verified=%t\n",
		snap.Identity.FullName(), snap.Identity.Email, snap.Identity.Role, snap.Identity.Verified)
}

// show renders the page behind the route the navigator settled on.
func (r *repl) show(ctx context.Context, route string) {
	fmt.Fprintln(r.out, "--", route)
	switch route {
	case app.RouteCases:
		view := app.NewCaseListView(r.app.Nav, r.app.Cases)
		view.Refresh(ctx)
		if view.Empty() {
			fmt.Fprintln(r.out, "no assigned cases")
			return
		}
		for _, c := range view.Cases() {
			fmt.Fprintf(r.out, "%-12s %-14s %s\n", c.ID, c.Status, c.Title)
		}
	case app.RouteAdminConsultants:
		view := app.NewAdminConsultantsView(r.app.Nav, r.app.Approvals)
		view.Refresh(ctx)
		if view.Empty() {
			fmt.Fprintln(r.out, "no pending consultants")
			return
		}
		for _, p := range view.Consultants() {
			fmt.Fprintf(r.out, "%-12s %s %s (%s) doctor-id=%s\n", p.ID, p.FirstName, p.LastName, p.Speciality, p.DoctorID)
		}
	case app.RouteSubmitCase:
		fmt.Fprintln(r.out, "submit a case with: submit <email> <speciality> <title...> -- <description...>")
	case app.RouteLogin:
		fmt.Fprintln(r.out, "sign in with: login <email> <password>")
	case app.RouteRegister:
		fmt.Fprintln(r.out, "register with: register <first> <last> <email> <password> <speciality>")
	case app.RouteReferences:
		fmt.Fprintln(r.out, "upload a reference with: upload <pdf-path>")
	default:
		fmt.Fprintln(r.out, "page not found")
	}
}

func (r *repl) register(ctx context.Context, args []string) {
	if len(args) != 5 {
		fmt.Fprintln(r.out, "usage: register <first> <last> <email> <password> <speciality>")
		return
	}
	identity, err := r.app.Sessions.Register(ctx, ports.RegisterInput{
		FirstName:  args[0],
		LastName:   args[1],
		Email:      args[2],
		Password:   args[3],
		Speciality: args[4],
	})
	if err != nil {
		fmt.Fprintln(r.out, "registration failed:", err)
		return
	}
	if !identity.Verified {
		fmt.Fprintln(r.out, "registration received; an admin will review your account")
	}
	r.show(ctx, r.app.Nav.Navigate(ctx, app.RouteCases))
}

func (r *repl) openCase(ctx context.Context, caseID string) {
	if got := r.app.Nav.Navigate(ctx, app.RouteCaseDetail); got != app.RouteCaseDetail {
		r.show(ctx, got)
		return
	}
	view := app.NewCaseDetailView(r.app.Nav, r.app.Review, r.app.Notifier, caseID)
	view.Load(ctx)
	if view.NotFound() {
		fmt.Fprintln(r.out, "case not found")
		return
	}
	d := view.Detail()
	fmt.Fprintf(r.out, "%s  [%s]\n%s\n\n%s\n", d.Title, d.Status, d.Email, d.Description)
	if !d.Status.Reviewable() {
		fmt.Fprintln(r.out, "(not ready for review)")
		return
	}
	fmt.Fprintln(r.out, "suggestions:")
	for _, s := range d.Suggestions {
		fmt.Fprintf(r.out, "  %-12s %s\n", s.ID, s.Text)
	}
}

func (r *repl) review(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "usage: review <case-id> <suggestion-id>  |  review <case-id> -t <text...>")
		return
	}
	caseID := args[0]
	choice := service.ReviewChoice{}
	if args[1] == "-t" {
		choice.CustomText = strings.Join(args[2:], " ")
	} else {
		choice.SuggestionID = args[1]
	}

	if got := r.app.Nav.Navigate(ctx, app.RouteCaseDetail); got != app.RouteCaseDetail {
		r.show(ctx, got)
		return
	}
	view := app.NewCaseDetailView(r.app.Nav, r.app.Review, r.app.Notifier, caseID)
	view.Load(ctx)
	if view.NotFound() {
		fmt.Fprintln(r.out, "case not found")
		return
	}
	if view.SubmitReview(ctx, choice) {
		r.show(ctx, r.app.Nav.Current())
	}
}

func (r *repl) submitCase(ctx context.Context, args []string) {
	sep := -1
	for i, a := range args {
		if a == "--" {
			sep = i
			break
		}
	}
	if sep < 3 || sep == len(args)-1 {
		fmt.Fprintln(r.out, "usage: submit <email> <speciality> <title...> -- <description...>")
		return
	}
	r.app.Cases.SubmitCase(ctx, ports.SubmitCaseInput{
		Email:       args[0],
		Speciality:  args[1],
		Title:       strings.Join(args[2:sep], " "),
		Description: strings.Join(args[sep+1:], " "),
	})
}

func (r *repl) upload(ctx context.Context, path string) {
	if got := r.app.Nav.Navigate(ctx, app.RouteReferences); got != app.RouteReferences {
		r.show(ctx, got)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(r.out, "upload failed:", err)
		return
	}
	defer f.Close()
	r.app.Cases.UploadReference(ctx, filepath.Base(path), f)
}
