package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/ideaflow/internal/assist"
	"github.com/dmitrijs2005/ideaflow/internal/audio"
	"github.com/dmitrijs2005/ideaflow/internal/buildinfo"
	"github.com/dmitrijs2005/ideaflow/internal/cms"
	"github.com/dmitrijs2005/ideaflow/internal/config"
	"github.com/dmitrijs2005/ideaflow/internal/deepsearch"
	"github.com/dmitrijs2005/ideaflow/internal/ideas"
	"github.com/dmitrijs2005/ideaflow/internal/launchhub"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/notify"
	"github.com/dmitrijs2005/ideaflow/internal/session"
	"github.com/dmitrijs2005/ideaflow/internal/storage"
	"github.com/dmitrijs2005/ideaflow/internal/web"

	_ "modernc.org/sqlite"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	client := assist.NewClient(cfg.AssistEndpoint, cfg.AssistAPIKey, logger)
	sess := session.NewManager(store, logger)
	ideaStore := ideas.NewStore(store, sess, client, logger)
	notifier := notify.New(cfg.NotifyDuration)
	hub := launchhub.New(store, sess, notifier, logger, cfg.DeployDelay)
	cmsStore := cms.NewStore(store, logger)

	if err := sess.Restore(ctx); err != nil {
		log.Fatalf("failed to restore session: %v", err)
	}
	if err := ideaStore.Load(ctx); err != nil {
		log.Fatalf("failed to load ideas: %v", err)
	}
	if err := cmsStore.Load(ctx); err != nil {
		log.Fatalf("failed to load announcements: %v", err)
	}
	if err := hub.Load(ctx); err != nil {
		log.Fatalf("failed to load launch assets: %v", err)
	}

	server := web.NewServer(web.Services{
		Session:  sess,
		Ideas:    ideaStore,
		Search:   deepsearch.New(client, sess, logger),
		Hub:      hub,
		CMS:      cmsStore,
		Audio:    audio.NewAdapter(&audio.SimDevice{}),
		Notifier: notifier,
		Log:      logger,
	})

	log.Printf("Starting web server on %s", cfg.ListenAddr)
	if err := server.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("web server error: %v", err)
	}
}
