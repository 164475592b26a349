// Package app holds the explicit application state driving the client
// workflow: the live session, the pending-request flag, and the current
// route. The UI layer renders from this state; the session and history
// stores remain the single source of truth for persisted data.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/neurosafe/neurosafe/internal/analysis"
	"github.com/neurosafe/neurosafe/internal/domain"
	"github.com/neurosafe/neurosafe/internal/history"
	"github.com/neurosafe/neurosafe/internal/session"
)

// Routes the navigation side effects of login/logout resolve to.
const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
)

// ErrNotLoggedIn gates the workflow area: analysis and history require a
// live session.
var ErrNotLoggedIn = errors.New("app: not logged in")

// ErrAnalysisPending rejects a duplicate submission while a request is
// in flight. The guard lives here at the UI-state layer; the analysis
// client itself treats every call as independent.
var ErrAnalysisPending = errors.New("app: an analysis is already in progress")

// App wires the stores and the analysis client behind the workflow
// operations the UI exposes.
type App struct {
	sessions *session.Store
	history  *history.Store
	analyzer *analysis.Client

	mu      sync.Mutex
	route   string
	pending bool
}

// New constructs the application state. The initial route depends on
// whether a persisted session exists; callers resolve that via Resume.
func New(sessions *session.Store, hist *history.Store, analyzer *analysis.Client) *App {
	return &App{
		sessions: sessions,
		history:  hist,
		analyzer: analyzer,
		route:    RouteLogin,
	}
}

// Resume restores the route from persisted state, as a page load would:
// a surviving session lands on the dashboard, otherwise on login.
func (a *App) Resume(ctx context.Context) (*domain.Session, error) {
	sess, err := a.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if sess != nil {
		a.route = RouteDashboard
	} else {
		a.route = RouteLogin
	}
	return sess, nil
}

// Route returns the current route.
func (a *App) Route() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Pending reports whether an analysis request is in flight.
func (a *App) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Login creates and persists a session, then navigates to the dashboard.
func (a *App) Login(ctx context.Context, name string, role domain.Role) (*domain.Session, error) {
	sess, err := a.sessions.Login(ctx, name, role)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.route = RouteDashboard
	a.mu.Unlock()
	return sess, nil
}

// Logout removes the persisted session and navigates back to login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	a.route = RouteLogin
	a.mu.Unlock()
	return nil
}

// Session returns the persisted session, or nil when logged out.
func (a *App) Session(ctx context.Context) (*domain.Session, error) {
	return a.sessions.Get(ctx)
}

// Analyze runs one analysis through the client. It requires a live
// session, marks the request pending for its duration, and rejects a
// second submission while one is outstanding.
func (a *App) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	sess, err := a.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}

	a.mu.Lock()
	if a.pending {
		a.mu.Unlock()
		return nil, ErrAnalysisPending
	}
	a.pending = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.pending = false
		a.mu.Unlock()
	}()

	return a.analyzer.Analyze(ctx, req)
}

// History returns the persisted analysis log, most-recent-first. Like the
// analysis workflow it is gated behind a live session.
func (a *App) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	sess, err := a.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	return a.history.Entries(ctx)
}
