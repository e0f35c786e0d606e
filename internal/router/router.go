package router

import (
	"database/sql"
	"net/http"

	mem "med-reminder/internal/adapters/storage/memory"
	pg "med-reminder/internal/adapters/storage/postgres"
	sqlitestore "med-reminder/internal/adapters/storage/sqlite"
	"med-reminder/internal/domain/doselogs"
	"med-reminder/internal/domain/medications"
	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/middleware"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// LocalUserID es la identidad implícita del modo local sin cuenta
// (storage SQLite de un solo usuario).
const LocalUserID = "local"

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => modo dev / local

	// Storage, en orden de preferencia:
	// - DB (Postgres) => modo remoto autenticado
	// - LocalDB (SQLite) => modo dispositivo local
	// - ninguno => repos in-memory (dev/tests)
	DB      *sql.DB
	LocalDB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	defaultUser := ""
	if opts.AuthVerifier == nil {
		defaultUser = LocalUserID
	}
	r.Use(middleware.AuthContext(middleware.Options{
		Verifier:      opts.AuthVerifier,
		DefaultUserID: defaultUser,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		medsRepo medications.Repository
		logsRepo doselogs.Repository
	)

	switch {
	case opts.DB != nil:
		medsRepo = pg.NewMedicationsRepo(opts.DB)
		logsRepo = pg.NewDoseLogsRepo(opts.DB)
	case opts.LocalDB != nil:
		medsRepo = sqlitestore.NewMedicationsRepo(opts.LocalDB)
		logsRepo = sqlitestore.NewDoseLogsRepo(opts.LocalDB)
	default:
		logs := mem.NewDoseLogsRepo()
		medsRepo = mem.NewMedicationsRepo(logs)
		logsRepo = logs
	}

	if opts.Logger != nil {
		opts.Logger.Info("storage selected", map[string]any{
			"backend": backendName(opts),
		})
	}

	// Services por módulo
	medsSvc := medications.NewService(medsRepo)
	logsSvc := doselogs.NewService(logsRepo, medsRepo)
	scheduleSvc := schedule.NewService(medsRepo, logsRepo)

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc)
	doselogs.RegisterRoutes(r, logsSvc)
	schedule.RegisterRoutes(r, scheduleSvc)

	return r
}

func backendName(opts Options) string {
	switch {
	case opts.DB != nil:
		return "postgres"
	case opts.LocalDB != nil:
		return "sqlite"
	default:
		return "memory"
	}
}
