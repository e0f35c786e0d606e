package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"med-reminder/internal/domain/doselogs"
	"med-reminder/internal/domain/medications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testMedication(id string) medications.Medication {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)
	return medications.Medication{
		ID:           id,
		UserID:       "user-1",
		Name:         "Aspirina",
		Dosage:       "100mg",
		Times:        []string{"08:00", "20:00"},
		Instructions: "con comida",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testDoseLog(id, medID, date, clock string) doselogs.DoseLog {
	at := time.Date(2024, 1, 15, 8, 5, 0, 0, time.Local)
	return doselogs.DoseLog{
		ID:            id,
		MedID:         medID,
		UserID:        "user-1",
		ScheduledDate: date,
		ScheduledTime: clock,
		TakenAt:       &at,
		Status:        doselogs.StatusTaken,
	}
}

func TestMedicationsRepo_CreateGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationsRepo(db)
	ctx := context.Background()

	m := testMedication("m1")
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)

	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.Times, got.Times, "times sobrevive el viaje por JSON")
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
}

func TestMedicationsRepo_GetUnknown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationsRepo(db)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, medications.ErrNotFound)
}

func TestMedicationsRepo_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationsRepo(db)
	ctx := context.Background()

	m1 := testMedication("m1")
	m2 := testMedication("m2")
	m2.UserID = "user-2"
	require.NoError(t, repo.Create(ctx, m1))
	require.NoError(t, repo.Create(ctx, m2))

	items, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
}

func TestMedicationsRepo_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationsRepo(db)
	ctx := context.Background()

	m := testMedication("m1")
	require.NoError(t, repo.Create(ctx, m))

	m.Name = "Aspirineta"
	m.Times = []string{"09:00"}
	require.NoError(t, repo.Update(ctx, m))

	got, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Aspirineta", got.Name)
	assert.Equal(t, []string{"09:00"}, got.Times)

	assert.ErrorIs(t, repo.Update(ctx, testMedication("nope")), medications.ErrNotFound)
}

func TestDoseLogsRepo_UniqueDose(t *testing.T) {
	db := setupTestDB(t)
	meds := NewMedicationsRepo(db)
	logs := NewDoseLogsRepo(db)
	ctx := context.Background()

	require.NoError(t, meds.Create(ctx, testMedication("m1")))
	require.NoError(t, logs.Create(ctx, testDoseLog("l1", "m1", "2024-01-15", "08:00")))

	// misma toma con otro id: el unique index la rechaza
	err := logs.Create(ctx, testDoseLog("l2", "m1", "2024-01-15", "08:00"))
	assert.ErrorIs(t, err, doselogs.ErrAlreadyLogged)

	// otra fecha u horario sí entran
	require.NoError(t, logs.Create(ctx, testDoseLog("l3", "m1", "2024-01-16", "08:00")))
	require.NoError(t, logs.Create(ctx, testDoseLog("l4", "m1", "2024-01-15", "20:00")))
}

func TestDoseLogsRepo_DeleteMedicationCascades(t *testing.T) {
	db := setupTestDB(t)
	meds := NewMedicationsRepo(db)
	logs := NewDoseLogsRepo(db)
	ctx := context.Background()

	require.NoError(t, meds.Create(ctx, testMedication("m1")))
	require.NoError(t, meds.Create(ctx, testMedication("m2")))
	require.NoError(t, logs.Create(ctx, testDoseLog("l1", "m1", "2024-01-15", "08:00")))
	require.NoError(t, logs.Create(ctx, testDoseLog("l2", "m1", "2024-01-15", "20:00")))
	require.NoError(t, logs.Create(ctx, testDoseLog("l3", "m2", "2024-01-15", "08:00")))

	require.NoError(t, meds.Delete(ctx, "m1"))

	// los logs de m1 cayeron con el medicamento
	got, err := logs.ListByDate(ctx, "user-1", "2024-01-15")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].MedID)
}

func TestDoseLogsRepo_ListBetween(t *testing.T) {
	db := setupTestDB(t)
	meds := NewMedicationsRepo(db)
	logs := NewDoseLogsRepo(db)
	ctx := context.Background()

	require.NoError(t, meds.Create(ctx, testMedication("m1")))
	for _, date := range []string{"2024-01-10", "2024-01-12", "2024-01-15"} {
		require.NoError(t, logs.Create(ctx, testDoseLog("l-"+date, "m1", date, "08:00")))
	}

	got, err := logs.ListBetween(ctx, "user-1", "2024-01-11", "2024-01-15")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// orden descendente por fecha
	assert.Equal(t, "2024-01-15", got[0].ScheduledDate)
	assert.Equal(t, "2024-01-12", got[1].ScheduledDate)
}

func TestDoseLogsRepo_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	meds := NewMedicationsRepo(db)
	logs := NewDoseLogsRepo(db)
	ctx := context.Background()

	require.NoError(t, meds.Create(ctx, testMedication("m1")))
	require.NoError(t, logs.Create(ctx, testDoseLog("l1", "m1", "2024-01-15", "08:00")))

	require.NoError(t, logs.UpdateStatus(ctx, "l1", doselogs.StatusSkipped))

	got, err := logs.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, doselogs.StatusSkipped, got.Status)

	assert.ErrorIs(t, logs.UpdateStatus(ctx, "nope", doselogs.StatusTaken), doselogs.ErrNotFound)
}

func TestDoseLogsRepo_TakenAtNullable(t *testing.T) {
	db := setupTestDB(t)
	meds := NewMedicationsRepo(db)
	logs := NewDoseLogsRepo(db)
	ctx := context.Background()

	require.NoError(t, meds.Create(ctx, testMedication("m1")))

	l := testDoseLog("l1", "m1", "2024-01-15", "08:00")
	l.TakenAt = nil
	l.Status = doselogs.StatusSkipped
	require.NoError(t, logs.Create(ctx, l))

	got, err := logs.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Nil(t, got.TakenAt)
}
