package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// El esquema se crea al abrir; IF NOT EXISTS lo hace idempotente.
// times se guarda como JSON (lista de HH:MM); scheduled_date y
// scheduled_time quedan como TEXT, que compara bien en ambos formatos.
const schema = `
CREATE TABLE IF NOT EXISTS medications (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	name         TEXT NOT NULL,
	dosage       TEXT NOT NULL,
	times        TEXT NOT NULL,
	instructions TEXT NOT NULL DEFAULT '',
	photo_url    TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_medications_user ON medications(user_id);

CREATE TABLE IF NOT EXISTS dose_logs (
	id             TEXT PRIMARY KEY,
	med_id         TEXT NOT NULL REFERENCES medications(id) ON DELETE CASCADE,
	user_id        TEXT NOT NULL,
	scheduled_date TEXT NOT NULL,
	scheduled_time TEXT NOT NULL,
	taken_at       TEXT,
	status         TEXT NOT NULL CHECK (status IN ('taken','missed','skipped'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_dose_logs_unique_dose
	ON dose_logs(med_id, scheduled_date, scheduled_time);

CREATE INDEX IF NOT EXISTS idx_dose_logs_user_date
	ON dose_logs(user_id, scheduled_date);
`

func ensureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure sqlite schema: %w", err)
	}
	return nil
}
