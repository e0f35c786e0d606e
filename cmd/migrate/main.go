// migrate copia los datos locales (SQLite) al store remoto (Postgres).
// Corrida única al crear la cuenta:
//
//	migrate -user <remote-user-id> [-clear]
//
// -clear borra los datos locales solo si la corrida terminó sin errores.
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"med-reminder/internal/adapters/storage/postgres"
	"med-reminder/internal/adapters/storage/sqlite"
	"med-reminder/internal/migration"
	"med-reminder/internal/platform/config"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/router"
)

func main() {
	var (
		remoteUser = flag.String("user", "", "id del usuario remoto destino (obligatorio)")
		clear      = flag.Bool("clear", false, "borrar datos locales tras una migración limpia")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName + "-migrate",
	})

	if strings.TrimSpace(*remoteUser) == "" {
		log.Error("-user is required", nil)
		os.Exit(2)
	}
	if !cfg.RemoteMode() {
		log.Error("DB_DSN is required to migrate", nil)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	localDB, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		log.Error("sqlite open failed", map[string]any{"path": cfg.SQLitePath, "error": err.Error()})
		os.Exit(1)
	}
	defer localDB.Close()

	remoteDB, err := postgres.Open(cfg.DBDSN)
	if err != nil {
		log.Error("postgres open failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer remoteDB.Close()

	src := migration.Source{
		Meds: sqlite.NewMedicationsRepo(localDB),
		Logs: sqlite.NewDoseLogsRepo(localDB),
	}
	dst := migration.Target{
		Meds: postgres.NewMedicationsRepo(remoteDB),
		Logs: postgres.NewDoseLogsRepo(remoteDB),
	}

	hasData, err := migration.HasLocalData(ctx, src, router.LocalUserID)
	if err != nil {
		log.Error("read local data failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if !hasData {
		log.Info("nothing to migrate", nil)
		return
	}

	res := migration.NewService().Migrate(ctx, src, dst, router.LocalUserID, *remoteUser)

	log.Info("migration finished", map[string]any{
		"medications": res.MedicationsMigrated,
		"dose_logs":   res.DoseLogsMigrated,
		"errors":      len(res.Errors),
		"success":     res.Success,
	})
	for _, e := range res.Errors {
		log.Warn("migration item failed", map[string]any{"detail": e})
	}

	if !res.Success {
		os.Exit(1)
	}

	if *clear {
		if len(res.Errors) > 0 {
			log.Warn("skipping -clear: migration had errors", nil)
			return
		}
		if err := migration.ClearLocal(ctx, src, router.LocalUserID); err != nil {
			log.Error("clear local data failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		log.Info("local data cleared", nil)
	}
}
