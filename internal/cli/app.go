// Package cli implements the interactive terminal front-end. It wires the
// persistence, session, capture and deployment services together and
// drives them from a read-eval-print loop.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/ideaflow/internal/assist"
	"github.com/dmitrijs2005/ideaflow/internal/audio"
	"github.com/dmitrijs2005/ideaflow/internal/cms"
	"github.com/dmitrijs2005/ideaflow/internal/config"
	"github.com/dmitrijs2005/ideaflow/internal/deepsearch"
	"github.com/dmitrijs2005/ideaflow/internal/ideas"
	"github.com/dmitrijs2005/ideaflow/internal/launchhub"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/notify"
	"github.com/dmitrijs2005/ideaflow/internal/session"
	"github.com/dmitrijs2005/ideaflow/internal/storage"

	_ "modernc.org/sqlite"
)

// simTranscript is replayed by the software microphone when no real
// capture device is available.
const simTranscript = "This is a simulated voice note captured from the microphone."

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	session  *session.Manager
	ideas    *ideas.Store
	search   *deepsearch.Workflow
	hub      *launchhub.Hub
	cms      *cms.Store
	audio    *audio.Adapter
	notifier *notify.Notifier

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	client := assist.NewClient(c.AssistEndpoint, c.AssistAPIKey, log)
	sess := session.NewManager(store, log)
	ideaStore := ideas.NewStore(store, sess, client, log)
	notifier := notify.New(c.NotifyDuration)

	app := &App{
		config:   c,
		log:      log,
		db:       db,
		session:  sess,
		ideas:    ideaStore,
		search:   deepsearch.New(client, sess, log),
		hub:      launchhub.New(store, sess, notifier, log, c.DeployDelay),
		cms:      cms.NewStore(store, log),
		audio:    audio.NewAdapter(&audio.SimDevice{Script: []string{simTranscript}}),
		notifier: notifier,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	if err := app.restore(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// restore hydrates every service from the local store so a returning user
// finds their session, captures and assets intact.
func (a *App) restore(ctx context.Context) error {
	if err := a.session.Restore(ctx); err != nil {
		return err
	}
	if err := a.ideas.Load(ctx); err != nil {
		return err
	}
	if err := a.cms.Load(ctx); err != nil {
		return err
	}
	return a.hub.Load(ctx)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}
