package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gemma-chat/cmd/api/clients/ollamaclient"
	"gemma-chat/cmd/api/router"
	"gemma-chat/cmd/api/services"
	"gemma-chat/cmd/internal/logger"
	"gemma-chat/config"
	"gemma-chat/repositories"
)

const shutdownTimeout = 10 * time.Second

var version = "dev"

type options struct {
	port     int
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gemma-chat",
		Short: "Serve a browser chat UI backed by a local Ollama gemma model",
		Long: `gemma-chat serves a single-page chat UI and a JSON API that keeps
conversation sessions in memory and relays each turn to Ollama.

Make sure Ollama is running and the model is pulled first:
  ollama pull gemma`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "HTTP listen port (overrides server.port)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL and logging.level)")
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	return cmd
}

func run(parent context.Context, opts *options) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load(config.GetBasePath())
	if err != nil {
		return err
	}
	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	level := cfg.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger.Init(level)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, err := services.NewSessionService(ctx, repositories.NewMemorySessionRepository())
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}
	gen := ollamaclient.New(ollamaclient.Config{
		URL:         cfg.Ollama.APIURL,
		Model:       cfg.Ollama.Model,
		Temperature: cfg.Ollama.Temperature,
		Timeout:     cfg.Ollama.Timeout,
	})
	chat := services.NewChatService(sessions, gen)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router.Handler(router.Dependencies{Sessions: sessions, Chat: chat}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.InfoWithFields("server started", logger.Fields{
		"url":          fmt.Sprintf("http://localhost:%d", cfg.Server.Port),
		"ollama_url":   cfg.Ollama.APIURL,
		"ollama_model": cfg.Ollama.Model,
	})
	logger.Log.Infof("Ollama must be running with the model pulled: ollama pull %s", cfg.Ollama.Model)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
