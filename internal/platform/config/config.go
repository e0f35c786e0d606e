package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa toda la configuración del servicio, leída de env vars
// (con .env opcional para dev).
type Config struct {
	// HTTP
	Port string

	// Storage remoto (Postgres). Si está seteado, el servicio corre en
	// modo remoto/autenticado.
	DBDSN string

	// Storage local (SQLite). Se usa cuando no hay DB_DSN.
	SQLitePath string

	// Auth (GoTrue). Vacíos => modo dev sin verifier.
	AuthBaseURL string
	AuthAPIKey  string

	// Logging
	LogLevel  string
	LogFormat string
	AppName   string
}

// Load lee la configuración desde env. Carga .env si existe
// (se ignora el error si no está).
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DBDSN:       getEnv("DB_DSN", ""),
		SQLitePath:  getEnv("SQLITE_PATH", defaultSQLitePath()),
		AuthBaseURL: getEnv("AUTH_BASE_URL", ""),
		AuthAPIKey:  getEnv("AUTH_API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		AppName:     getEnv("APP_NAME", "med-reminder"),
	}
}

// RemoteMode indica si el servicio persiste en el store remoto.
func (c Config) RemoteMode() bool {
	return strings.TrimSpace(c.DBDSN) != ""
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "med-reminder.db"
	}
	return dir + string(os.PathSeparator) + "med-reminder" + string(os.PathSeparator) + "med-reminder.db"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
