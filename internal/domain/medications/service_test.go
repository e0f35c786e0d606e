package medications_test

import (
	"context"
	"testing"

	mem "med-reminder/internal/adapters/storage/memory"
	"med-reminder/internal/domain/medications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *medications.Service {
	return medications.NewService(mem.NewMedicationsRepo(nil))
}

func TestCreate_Valid(t *testing.T) {
	svc := newService()

	m, err := svc.Create(context.Background(), "user-1", medications.CreateInput{
		Name:   "  Aspirina ",
		Dosage: "100mg",
		Times:  []string{"08:00", "20:00"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Aspirina", m.Name, "se trimea el nombre")
	assert.Equal(t, []string{"08:00", "20:00"}, m.Times)
	assert.False(t, m.CreatedAt.IsZero())

	got, err := svc.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
}

func TestCreate_Invalid(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   medications.CreateInput
	}{
		{"sin nombre", medications.CreateInput{Dosage: "100mg", Times: []string{"08:00"}}},
		{"sin dosis", medications.CreateInput{Name: "Aspirina", Times: []string{"08:00"}}},
		{"sin horarios", medications.CreateInput{Name: "Aspirina", Dosage: "100mg"}},
		{"horario malformado", medications.CreateInput{Name: "Aspirina", Dosage: "100mg", Times: []string{"8am"}}},
		{"horario fuera de rango", medications.CreateInput{Name: "Aspirina", Dosage: "100mg", Times: []string{"24:00"}}},
	}

	for _, c := range cases {
		_, err := svc.Create(ctx, "user-1", c.in)
		assert.ErrorIs(t, err, medications.ErrInvalidInput, c.name)
	}

	_, err := svc.Create(ctx, "", medications.CreateInput{
		Name: "Aspirina", Dosage: "100mg", Times: []string{"08:00"},
	})
	assert.ErrorIs(t, err, medications.ErrInvalidInput, "sin user")
}

func TestCreate_DuplicateTimesTolerated(t *testing.T) {
	svc := newService()

	m, err := svc.Create(context.Background(), "user-1", medications.CreateInput{
		Name:   "Aspirina",
		Dosage: "100mg",
		Times:  []string{"08:00", "08:00"},
	})
	require.NoError(t, err)
	assert.Len(t, m.Times, 2)
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", medications.CreateInput{
		Name:         "Aspirina",
		Dosage:       "100mg",
		Times:        []string{"08:00"},
		Instructions: "con comida",
	})
	require.NoError(t, err)

	newName := "Aspirineta"
	updated, err := svc.Update(ctx, m.ID, medications.UpdateInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Aspirineta", updated.Name)
	assert.Equal(t, "100mg", updated.Dosage, "los campos no enviados no se tocan")
	assert.Equal(t, "con comida", updated.Instructions)
	assert.Equal(t, m.CreatedAt, updated.CreatedAt, "created_at es inmutable")
}

func TestUpdate_InvalidTimes(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", medications.CreateInput{
		Name: "Aspirina", Dosage: "100mg", Times: []string{"08:00"},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, m.ID, medications.UpdateInput{Times: []string{"25:00"}})
	assert.ErrorIs(t, err, medications.ErrInvalidInput)

	_, err = svc.Update(ctx, m.ID, medications.UpdateInput{Times: []string{}})
	assert.ErrorIs(t, err, medications.ErrInvalidInput, "lista vacía inválida en edit")
}

func TestListByUser_OnlyOwn(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", medications.CreateInput{
		Name: "Aspirina", Dosage: "100mg", Times: []string{"08:00"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", medications.CreateInput{
		Name: "Metformina", Dosage: "500mg", Times: []string{"12:00"},
	})
	require.NoError(t, err)

	items, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Aspirina", items[0].Name)
}

func TestDelete_Unknown(t *testing.T) {
	svc := newService()
	err := svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, medications.ErrNotFound)
}
