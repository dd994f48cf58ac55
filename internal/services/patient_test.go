package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/models"
)

func TestPatientService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.patients.Create(ctx, PatientInput{
		Name: "Maria", CPF: "123.456.789-00", DateBirth: mustDate(t, "1985-07-15"),
		Address: "Rua B, 20", Phone: "11977770000",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "1985-07-15", p.DateBirth.String())
	assert.Empty(t, p.Consultations)
}

func TestPatientService_Create_MissingField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	valid := PatientInput{Name: "Maria", CPF: "111", DateBirth: mustDate(t, "1985-07-15"), Address: "Rua B", Phone: "1"}

	cases := map[string]func(in *PatientInput){
		"name":       func(in *PatientInput) { in.Name = "" },
		"cpf":        func(in *PatientInput) { in.CPF = " " },
		"date_birth": func(in *PatientInput) { in.DateBirth = models.Date{} },
		"address":    func(in *PatientInput) { in.Address = "" },
		"phone":      func(in *PatientInput) { in.Phone = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := f.patients.Create(ctx, in)
			require.ErrorIs(t, err, ErrValidation)
			se, _ := AsError(err)
			assert.Equal(t, field, se.Field)
		})
	}
	assert.Zero(t, count(t, f.db, &models.Patient{}))
}

func TestPatientService_Create_DuplicateCPF(t *testing.T) {
	f := newFixture(t)
	f.patient(t, "Maria", "111")

	_, err := f.patients.Create(context.Background(), PatientInput{
		Name: "Outra", CPF: "111", DateBirth: mustDate(t, "2000-01-01"), Address: "x", Phone: "x",
	})
	require.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, msgPatientCPFTaken)
	assert.EqualValues(t, 1, count(t, f.db, &models.Patient{}))
}

func TestPatientService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.patient(t, "Carla Lima", "333")
	created := f.patient(t, "Ana", "111")
	f.patient(t, "Bruno Lima", "222")

	all, err := f.patients.List(ctx, PatientFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ana", all[0].Name)
	assert.Equal(t, created.ID, all[0].ID)

	byName, err := f.patients.List(ctx, PatientFilter{Name: "lima"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byCPF, err := f.patients.List(ctx, PatientFilter{CPF: "22"})
	require.NoError(t, err)
	require.Len(t, byCPF, 1)
	assert.Equal(t, "Bruno Lima", byCPF[0].Name)
}

func TestPatientService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.patient(t, "Maria", "111")
	f.patient(t, "João", "222")

	updated, err := f.patients.Update(ctx, p.ID, PatientUpdate{
		Address:   ptr("Rua Nova, 1"),
		DateBirth: ptr(mustDate(t, "1991-01-02")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rua Nova, 1", updated.Address)
	assert.Equal(t, "1991-01-02", updated.DateBirth.String())
	assert.Equal(t, "Maria", updated.Name)
	assert.Equal(t, "111", updated.CPF)

	_, err = f.patients.Update(ctx, p.ID, PatientUpdate{CPF: ptr("222")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.patients.Update(ctx, p.ID, PatientUpdate{Phone: ptr("")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.patients.Update(ctx, uuid.New(), PatientUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, msgPatientNotFound)
}

func TestPatientService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.doctor(t, "Dr. A", "1")
	busy := f.patient(t, "Maria", "111")
	free := f.patient(t, "João", "222")
	f.consultation(t, d, busy, "2030-01-10", "09:00")

	_, err := f.patients.Delete(ctx, busy.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, msgPatientHasSchedules)

	deleted, err := f.patients.Delete(ctx, free.ID)
	require.NoError(t, err)
	assert.Equal(t, "João", deleted.Name)

	_, err = f.patients.Delete(ctx, free.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatientService_ConsultationsPreloaded(t *testing.T) {
	f := newFixture(t)
	d := f.doctor(t, "Dr. A", "1")
	p := f.patient(t, "Maria", "111")
	f.consultation(t, d, p, "2030-01-10", "09:00")
	f.consultation(t, d, p, "2030-01-11", "09:00")

	all, err := f.patients.List(context.Background(), PatientFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Consultations, 2)
}

func TestPatientService_List_WildcardsMatchLiterally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.patient(t, "Ana_Silva", "111")
	f.patient(t, "Ana Silva", "222")
	f.patient(t, `Bia\Lima`, "333")

	underscore, err := f.patients.List(ctx, PatientFilter{Name: "_"})
	require.NoError(t, err)
	require.Len(t, underscore, 1)
	assert.Equal(t, "111", underscore[0].CPF)

	percent, err := f.patients.List(ctx, PatientFilter{Name: "%"})
	require.NoError(t, err)
	assert.Empty(t, percent)

	backslash, err := f.patients.List(ctx, PatientFilter{Name: `\`})
	require.NoError(t, err)
	require.Len(t, backslash, 1)
	assert.Equal(t, "333", backslash[0].CPF)
}
