package doselogs_test

import (
	"context"
	"testing"
	"time"

	mem "med-reminder/internal/adapters/storage/memory"
	"med-reminder/internal/domain/doselogs"
	"med-reminder/internal/domain/medications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 15, 14, 30, 0, 0, time.Local)

func setup(t *testing.T) (*doselogs.Service, *medications.Service) {
	t.Helper()

	logsRepo := mem.NewDoseLogsRepo()
	medsRepo := mem.NewMedicationsRepo(logsRepo)

	logsSvc := doselogs.NewService(logsRepo, medsRepo).WithNow(func() time.Time { return testNow })
	medsSvc := medications.NewService(medsRepo)
	return logsSvc, medsSvc
}

func createMed(t *testing.T, medsSvc *medications.Service, userID string) medications.Medication {
	t.Helper()

	m, err := medsSvc.Create(context.Background(), userID, medications.CreateInput{
		Name:   "Aspirina",
		Dosage: "100mg",
		Times:  []string{"08:00", "14:00", "20:00"},
	})
	require.NoError(t, err)
	return m
}

func TestLog_Defaults(t *testing.T) {
	logsSvc, medsSvc := setup(t)
	med := createMed(t, medsSvc, "user-1")

	l, err := logsSvc.Log(context.Background(), "user-1", med.ID, doselogs.LogInput{
		ScheduledTime: "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15", l.ScheduledDate, "fecha default = hoy")
	assert.Equal(t, doselogs.StatusTaken, l.Status, "status default = taken")
	require.NotNil(t, l.TakenAt)
	assert.Equal(t, testNow, *l.TakenAt, "taken_at default = ahora")
}

func TestLog_UnknownMedication(t *testing.T) {
	logsSvc, _ := setup(t)

	_, err := logsSvc.Log(context.Background(), "user-1", "nope", doselogs.LogInput{
		ScheduledTime: "08:00",
	})
	assert.ErrorIs(t, err, medications.ErrNotFound)
}

func TestLog_OtherUsersMedication(t *testing.T) {
	logsSvc, medsSvc := setup(t)
	med := createMed(t, medsSvc, "user-2")

	_, err := logsSvc.Log(context.Background(), "user-1", med.ID, doselogs.LogInput{
		ScheduledTime: "08:00",
	})
	assert.ErrorIs(t, err, medications.ErrNotFound)
}

func TestLog_DuplicateDose(t *testing.T) {
	logsSvc, medsSvc := setup(t)
	med := createMed(t, medsSvc, "user-1")
	ctx := context.Background()

	_, err := logsSvc.Log(ctx, "user-1", med.ID, doselogs.LogInput{ScheduledTime: "08:00"})
	require.NoError(t, err)

	// misma toma de nuevo: el unique del storage la rechaza
	_, err = logsSvc.Log(ctx, "user-1", med.ID, doselogs.LogInput{ScheduledTime: "08:00"})
	assert.ErrorIs(t, err, doselogs.ErrAlreadyLogged)

	// otro horario del mismo día sí entra
	_, err = logsSvc.Log(ctx, "user-1", med.ID, doselogs.LogInput{ScheduledTime: "20:00"})
	assert.NoError(t, err)
}

func TestLog_InvalidInput(t *testing.T) {
	logsSvc, medsSvc := setup(t)
	med := createMed(t, medsSvc, "user-1")
	ctx := context.Background()

	_, err := logsSvc.Log(ctx, "user-1", med.ID, doselogs.LogInput{ScheduledTime: "8am"})
	assert.ErrorIs(t, err, doselogs.ErrInvalidInput)

	_, err = logsSvc.Log(ctx, "user-1", med.ID, doselogs.LogInput{
		ScheduledTime: "08:00",
		ScheduledDate: "15/01/2024",
	})
	assert.ErrorIs(t, err, doselogs.ErrInvalidInput)

	_, err = logsSvc.Log(ctx, "user-1", med.ID, doselogs.LogInput{
		ScheduledTime: "08:00",
		Status:        "forgot",
	})
	assert.ErrorIs(t, err, doselogs.ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	logsSvc, medsSvc := setup(t)
	med := createMed(t, medsSvc, "user-1")
	ctx := context.Background()

	l, err := logsSvc.Log(ctx, "user-1", med.ID, doselogs.LogInput{ScheduledTime: "08:00"})
	require.NoError(t, err)

	updated, err := logsSvc.UpdateStatus(ctx, "user-1", l.ID, doselogs.StatusSkipped)
	require.NoError(t, err)
	assert.Equal(t, doselogs.StatusSkipped, updated.Status)

	// otro usuario no puede tocar el log
	_, err = logsSvc.UpdateStatus(ctx, "user-2", l.ID, doselogs.StatusTaken)
	assert.ErrorIs(t, err, doselogs.ErrNotFound)
}

func TestHistory_RollingDays(t *testing.T) {
	logsSvc, medsSvc := setup(t)
	med := createMed(t, medsSvc, "user-1")
	ctx := context.Background()

	// hoy, ayer y hace 8 días (fuera de la ventana de 7)
	for _, date := range []string{"2024-01-15", "2024-01-14", "2024-01-07"} {
		_, err := logsSvc.Log(ctx, "user-1", med.ID, doselogs.LogInput{
			ScheduledDate: date,
			ScheduledTime: "08:00",
		})
		require.NoError(t, err)
	}

	history, err := logsSvc.History(ctx, "user-1", 0) // default 7
	require.NoError(t, err)
	require.Len(t, history, 7)

	// más reciente primero, y cada día presente aunque esté vacío
	assert.Equal(t, "2024-01-15", history[0].Date)
	assert.Equal(t, "2024-01-09", history[6].Date)
	assert.Len(t, history[0].Logs, 1)
	assert.Len(t, history[1].Logs, 1)
	assert.Empty(t, history[2].Logs)

	// el log de hace 8 días queda afuera
	for _, day := range history {
		assert.NotEqual(t, "2024-01-07", day.Date)
	}
}
