package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"med-reminder/internal/domain/doselogs"
)

type DoseLogsRepo struct {
	db *sql.DB
}

func NewDoseLogsRepo(db *sql.DB) *DoseLogsRepo {
	return &DoseLogsRepo{db: db}
}

func (r *DoseLogsRepo) Create(ctx context.Context, l doselogs.DoseLog) error {
	var takenAt any
	if l.TakenAt != nil {
		takenAt = l.TakenAt.Format(time.RFC3339Nano)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_logs (
			id, med_id, user_id,
			scheduled_date, scheduled_time, taken_at, status
		) VALUES (?,?,?,?,?,?,?)
	`,
		l.ID,
		l.MedID,
		l.UserID,
		l.ScheduledDate,
		l.ScheduledTime,
		takenAt,
		string(l.Status),
	)
	if err != nil {
		// el unique index (med_id, scheduled_date, scheduled_time) es
		// la garantía contra tomas duplicadas
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return doselogs.ErrAlreadyLogged
		}
		return err
	}
	return nil
}

func (r *DoseLogsRepo) GetByID(ctx context.Context, id string) (doselogs.DoseLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, med_id, user_id, scheduled_date, scheduled_time, taken_at, status
		FROM dose_logs
		WHERE id = ?
	`, id)

	l, err := scanDoseLog(row)
	if err == sql.ErrNoRows {
		return doselogs.DoseLog{}, doselogs.ErrNotFound
	}
	return l, err
}

func (r *DoseLogsRepo) ListByDate(ctx context.Context, userID, date string) ([]doselogs.DoseLog, error) {
	return r.list(ctx, `
		SELECT id, med_id, user_id, scheduled_date, scheduled_time, taken_at, status
		FROM dose_logs
		WHERE user_id = ? AND scheduled_date = ?
		ORDER BY scheduled_date DESC, scheduled_time DESC
	`, userID, date)
}

func (r *DoseLogsRepo) ListByMed(ctx context.Context, medID string) ([]doselogs.DoseLog, error) {
	return r.list(ctx, `
		SELECT id, med_id, user_id, scheduled_date, scheduled_time, taken_at, status
		FROM dose_logs
		WHERE med_id = ?
		ORDER BY scheduled_date DESC, scheduled_time DESC
	`, medID)
}

func (r *DoseLogsRepo) ListBetween(ctx context.Context, userID, from, to string) ([]doselogs.DoseLog, error) {
	return r.list(ctx, `
		SELECT id, med_id, user_id, scheduled_date, scheduled_time, taken_at, status
		FROM dose_logs
		WHERE user_id = ? AND scheduled_date >= ? AND scheduled_date <= ?
		ORDER BY scheduled_date DESC, scheduled_time DESC
	`, userID, from, to)
}

func (r *DoseLogsRepo) UpdateStatus(ctx context.Context, id string, status doselogs.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dose_logs SET status = ? WHERE id = ?
	`, string(status), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return doselogs.ErrNotFound
	}
	return nil
}

func (r *DoseLogsRepo) list(ctx context.Context, query string, args ...any) ([]doselogs.DoseLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doselogs.DoseLog, 0)
	for rows.Next() {
		l, err := scanDoseLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanDoseLog(row rowScanner) (doselogs.DoseLog, error) {
	var l doselogs.DoseLog
	var takenAt sql.NullString
	var status string

	if err := row.Scan(
		&l.ID,
		&l.MedID,
		&l.UserID,
		&l.ScheduledDate,
		&l.ScheduledTime,
		&takenAt,
		&status,
	); err != nil {
		return doselogs.DoseLog{}, err
	}

	if takenAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, takenAt.String)
		if err != nil {
			return doselogs.DoseLog{}, fmt.Errorf("parse taken_at: %w", err)
		}
		l.TakenAt = &t
	}
	l.Status = doselogs.Status(status)
	return l, nil
}
