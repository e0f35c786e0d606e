package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"med-reminder/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	times, err := json.Marshal(m.Times)
	if err != nil {
		return fmt.Errorf("marshal times: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, user_id, name, dosage, times,
			instructions, photo_url, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		string(times),
		m.Instructions,
		m.PhotoURL,
		m.CreatedAt.Format(time.RFC3339Nano),
		m.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, medications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, dosage, times,
		       instructions, photo_url, created_at, updated_at
		FROM medications
		WHERE id = ?
	`, id)

	m, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, err
}

func (r *MedicationsRepo) ListByUser(ctx context.Context, userID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, dosage, times,
		       instructions, photo_url, created_at, updated_at
		FROM medications
		WHERE user_id = ?
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	times, err := json.Marshal(m.Times)
	if err != nil {
		return fmt.Errorf("marshal times: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET name = ?, dosage = ?, times = ?,
		    instructions = ?, photo_url = ?, updated_at = ?
		WHERE id = ?
	`,
		m.Name,
		m.Dosage,
		string(times),
		m.Instructions,
		m.PhotoURL,
		m.UpdatedAt.Format(time.RFC3339Nano),
		m.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

// Delete borra el medicamento; los dose_logs caen por el
// ON DELETE CASCADE (requiere foreign_keys=ON, ver Open).
func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE user_id = ?`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedication(row rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var times, createdAt, updatedAt string

	if err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Dosage,
		&times,
		&m.Instructions,
		&m.PhotoURL,
		&createdAt,
		&updatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	if err := json.Unmarshal([]byte(times), &m.Times); err != nil {
		return medications.Medication{}, fmt.Errorf("unmarshal times: %w", err)
	}

	var err error
	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return medications.Medication{}, fmt.Errorf("parse created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return medications.Medication{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return m, nil
}
