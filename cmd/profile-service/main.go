package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"profile-service/internal/app"
	"profile-service/pkg/logger"
)

// Usage:
//
//	profile-service           serve the HTTP API
//	profile-service migrate   apply database migrations and exit
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 {
		switch args[0] {
		case "migrate":
			return migrate(ctx, log)
		default:
			log.Error("app: unknown command", "command", args[0])
			return 2
		}
	}

	return serve(ctx, log)
}

func migrate(ctx context.Context, log logger.Logger) int {
	log.Info("app: running migrations")
	if err := app.Migrate(ctx, log); err != nil {
		log.Critical("app: migrate failed", "err", err)
		return 1
	}
	log.Info("app: migrations applied")
	return 0
}

func serve(ctx context.Context, log logger.Logger) int {
	log.Info("app: starting")

	application, err := app.New(ctx, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return 1
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		exitCode = 1
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		exitCode = 1
	}

	if exitCode == 0 {
		log.Info("app: stopped")
	}
	return exitCode
}
