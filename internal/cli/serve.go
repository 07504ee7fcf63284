package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lazypower/petd/internal/config"
	"github.com/lazypower/petd/internal/game"
	"github.com/lazypower/petd/internal/llm"
	"github.com/lazypower/petd/internal/pet"
	"github.com/lazypower/petd/internal/server"
	"github.com/lazypower/petd/internal/store"
	"github.com/lazypower/petd/internal/voice"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})))

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	catalog := pet.DefaultCatalog()
	srv := server.New(db, game.New(db, catalog, cfg.Pet.Name), VersionString())

	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		slog.Warn("llm not configured, chat disabled", "error", err)
	} else {
		srv.SetCompanion(llm.NewCompanion(llmClient, catalog, cfg.LLM.Animations))
		slog.Info("llm", "provider", cfg.LLM.Provider)
	}

	el, err := voice.New(cfg.Voice)
	if err != nil {
		slog.Warn("voice not configured, audio disabled", "error", err)
	} else {
		srv.SetVoice(el)
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("petd serving", "addr", httpServer.Addr, "db", dbPath, "version", VersionString())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
