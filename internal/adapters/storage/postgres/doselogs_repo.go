package postgres

import (
	"context"
	"database/sql"

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
		takenAt = *l.TakenAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_logs (
			id, med_id, user_id,
			scheduled_date, scheduled_time, taken_at, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
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
		// unique (med_id, scheduled_date, scheduled_time):
		// dos inserts simultáneos de la misma toma no duplican
		if isUniqueViolation(err) {
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
		WHERE id = $1
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
		WHERE user_id = $1 AND scheduled_date = $2
		ORDER BY scheduled_date DESC, scheduled_time DESC
	`, userID, date)
}

func (r *DoseLogsRepo) ListByMed(ctx context.Context, medID string) ([]doselogs.DoseLog, error) {
	return r.list(ctx, `
		SELECT id, med_id, user_id, scheduled_date, scheduled_time, taken_at, status
		FROM dose_logs
		WHERE med_id = $1
		ORDER BY scheduled_date DESC, scheduled_time DESC
	`, medID)
}

func (r *DoseLogsRepo) ListBetween(ctx context.Context, userID, from, to string) ([]doselogs.DoseLog, error) {
	return r.list(ctx, `
		SELECT id, med_id, user_id, scheduled_date, scheduled_time, taken_at, status
		FROM dose_logs
		WHERE user_id = $1 AND scheduled_date >= $2 AND scheduled_date <= $3
		ORDER BY scheduled_date DESC, scheduled_time DESC
	`, userID, from, to)
}

func (r *DoseLogsRepo) UpdateStatus(ctx context.Context, id string, status doselogs.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dose_logs SET status = $2 WHERE id = $1
	`, id, string(status))
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
	var takenAt sql.NullTime
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
		t := takenAt.Time
		l.TakenAt = &t
	}
	l.Status = doselogs.Status(status)
	return l, nil
}
