package migration_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	mem "med-reminder/internal/adapters/storage/memory"
	"med-reminder/internal/domain/doselogs"
	"med-reminder/internal/domain/medications"
	"med-reminder/internal/migration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores() (migration.Source, migration.Target) {
	srcLogs := mem.NewDoseLogsRepo()
	dstLogs := mem.NewDoseLogsRepo()
	return migration.Source{Meds: mem.NewMedicationsRepo(srcLogs), Logs: srcLogs},
		migration.Target{Meds: mem.NewMedicationsRepo(dstLogs), Logs: dstLogs}
}

func seedLocal(t *testing.T, src migration.Source) medications.Medication {
	t.Helper()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	med := medications.Medication{
		ID:        "local-m1",
		UserID:    "local",
		Name:      "Aspirina",
		Dosage:    "100mg",
		Times:     []string{"08:00", "20:00"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, src.Meds.Create(ctx, med))

	for i, date := range []string{"2024-01-13", "2024-01-14", "2024-01-15"} {
		require.NoError(t, src.Logs.Create(ctx, doselogs.DoseLog{
			ID:            fmt.Sprintf("local-l%d", i+1),
			MedID:         med.ID,
			UserID:        "local",
			ScheduledDate: date,
			ScheduledTime: "08:00",
			Status:        doselogs.StatusTaken,
		}))
	}
	return med
}

func TestMigrate_CopiesAllWithRemappedIDs(t *testing.T) {
	src, dst := newStores()
	med := seedLocal(t, src)
	ctx := context.Background()

	res := migration.NewService().Migrate(ctx, src, dst, "local", "remote-user")

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 1, res.MedicationsMigrated)
	assert.Equal(t, 3, res.DoseLogsMigrated)

	meds, err := dst.Meds.ListByUser(ctx, "remote-user")
	require.NoError(t, err)
	require.Len(t, meds, 1)

	// id nuevo, contenido conservado
	assert.NotEqual(t, med.ID, meds[0].ID)
	assert.Equal(t, med.Name, meds[0].Name)
	assert.Equal(t, med.Times, meds[0].Times)
	assert.True(t, med.CreatedAt.Equal(meds[0].CreatedAt), "created_at se conserva")

	// los logs apuntan al id nuevo
	logs, err := dst.Logs.ListBetween(ctx, "remote-user", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, logs, 3)
	for _, l := range logs {
		assert.Equal(t, meds[0].ID, l.MedID)
	}

	// la fuente queda intacta: migrar no borra
	localMeds, err := src.Meds.ListByUser(ctx, "local")
	require.NoError(t, err)
	assert.Len(t, localMeds, 1)
}

func TestMigrate_EmptySource(t *testing.T) {
	src, dst := newStores()

	res := migration.NewService().Migrate(context.Background(), src, dst, "local", "remote-user")

	assert.True(t, res.Success, "migrar nada no es un error")
	assert.Zero(t, res.MedicationsMigrated)
	assert.Zero(t, res.DoseLogsMigrated)
}

func TestMigrate_NotIdempotent(t *testing.T) {
	// documenta que la migración es de corrida única por diseño:
	// correrla dos veces duplica los medicamentos (con ids nuevos),
	// por eso cmd/migrate chequea HasLocalData y ofrece -clear
	src, dst := newStores()
	seedLocal(t, src)
	ctx := context.Background()

	res1 := migration.NewService().Migrate(ctx, src, dst, "local", "remote-user")
	require.True(t, res1.Success)

	res2 := migration.NewService().Migrate(ctx, src, dst, "local", "remote-user")
	assert.True(t, res2.Success)

	meds, err := dst.Meds.ListByUser(ctx, "remote-user")
	require.NoError(t, err)
	assert.Len(t, meds, 2)
}

func TestHasLocalDataAndClear(t *testing.T) {
	src, _ := newStores()
	ctx := context.Background()

	has, err := migration.HasLocalData(ctx, src, "local")
	require.NoError(t, err)
	assert.False(t, has)

	seedLocal(t, src)

	has, err = migration.HasLocalData(ctx, src, "local")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, migration.ClearLocal(ctx, src, "local"))

	has, err = migration.HasLocalData(ctx, src, "local")
	require.NoError(t, err)
	assert.False(t, has)

	// la cascada se llevó también los logs
	logs, err := src.Logs.ListBetween(ctx, "local", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Empty(t, logs)
}
