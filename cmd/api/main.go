package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"med-reminder/internal/adapters/auth/gotrue"
	"med-reminder/internal/adapters/storage/postgres"
	"med-reminder/internal/adapters/storage/sqlite"
	"med-reminder/internal/platform/config"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"
	"med-reminder/internal/router"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	opts := router.Options{Logger: log}

	if cfg.RemoteMode() {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db

		// En modo remoto el verifier es obligatorio: datos multiusuario
		// sin auth serían un agujero.
		if cfg.AuthBaseURL == "" {
			log.Error("remote mode requires AUTH_BASE_URL", nil)
			os.Exit(1)
		}
		opts.AuthVerifier = mustVerifier(cfg, log)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		cancel()
		if err != nil {
			log.Error("sqlite open failed", map[string]any{
				"path":  cfg.SQLitePath,
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer db.Close()
		opts.LocalDB = db
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func mustVerifier(cfg config.Config, log logger.Logger) auth.AuthVerifier {
	client, err := gotrue.NewClient(gotrue.Config{
		BaseURL: cfg.AuthBaseURL,
		APIKey:  cfg.AuthAPIKey,
	})
	if err != nil {
		log.Error("auth client config invalid", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	return gotrue.NewVerifier(client)
}
