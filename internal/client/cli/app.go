// Package cli implements the interactive StudyPilot terminal client: a REPL
// whose command set is gated by authentication state, with one view per
// backend feature.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"studypilot/internal/client/api"
	"studypilot/internal/client/config"
	"studypilot/internal/client/guard"
	"studypilot/internal/client/repositories/localstate"
	"studypilot/internal/client/session"
	"studypilot/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	session *session.Store
	guard   *guard.Guard
	api     api.Client

	reader *bufio.Reader
	out    io.Writer

	// transcript is the chat view's local state; no other view touches it.
	transcript []chatTurn
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := localstate.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing local database", "err", err)
		return nil, err
	}

	store := session.NewStore(db, logger)

	apiClient, err := api.NewHTTPClient(api.HTTPConfig{
		BaseURL: cfg.ServerBaseURL,
		Tokens:  store,
		Logger:  logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		session: store,
		guard:   guard.New(store),
		api:     apiClient,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the persisted session and hands control to the REPL.
// It returns when the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Initialize(ctx)
	if a.session.IsAuthenticated() {
		a.logger.Info(ctx, "session restored", "email", a.session.Identity().Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.statusLine, scanner, a.out)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) guardState() guard.State {
	return a.guard.Evaluate()
}

// statusLine renders the prompt suffix: the signed-in email, or nothing.
func (a *App) statusLine() string {
	if user := a.session.Identity(); user != nil {
		return "(" + user.Email + ")"
	}
	return ""
}
