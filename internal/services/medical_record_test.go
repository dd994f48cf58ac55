package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/models"
)

func TestMedicalRecordService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.doctor(t, "Dr. A", "1")
	p := f.patient(t, "Maria", "111")
	c := f.consultation(t, d, p, "2030-01-10", "09:00")

	r, err := f.records.Create(ctx, MedicalRecordInput{ConsultationID: c.ID, Notes: "Dor de cabeça", Diagnosis: "Enxaqueca"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, r.ConsultationID)
	require.NotNil(t, r.Consultation)
	require.NotNil(t, r.Consultation.Doctor)
	require.NotNil(t, r.Consultation.Patient)
	assert.Equal(t, "Dr. A", r.Consultation.Doctor.Name)
	assert.Equal(t, "Maria", r.Consultation.Patient.Name)

	_, err = f.records.Create(ctx, MedicalRecordInput{ConsultationID: c.ID, Notes: "outra", Diagnosis: "outro"})
	require.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, msgMedicalRecordExists)
	assert.EqualValues(t, 1, count(t, f.db, &models.MedicalRecord{}))
}

func TestMedicalRecordService_Create_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.doctor(t, "Dr. A", "1")
	p := f.patient(t, "Maria", "111")
	c := f.consultation(t, d, p, "2030-01-10", "09:00")

	_, err := f.records.Create(ctx, MedicalRecordInput{Notes: "n", Diagnosis: "d"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.records.Create(ctx, MedicalRecordInput{ConsultationID: c.ID, Diagnosis: "d"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.records.Create(ctx, MedicalRecordInput{ConsultationID: c.ID, Notes: "n"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.records.Create(ctx, MedicalRecordInput{ConsultationID: uuid.New(), Notes: "n", Diagnosis: "d"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, msgConsultationNotFound)
}

func TestMedicalRecordService_ListUpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.doctor(t, "Dr. A", "1")
	p := f.patient(t, "Maria", "111")
	c1 := f.consultation(t, d, p, "2030-01-10", "09:00")
	c2 := f.consultation(t, d, p, "2030-01-11", "09:00")

	r1, err := f.records.Create(ctx, MedicalRecordInput{ConsultationID: c1.ID, Notes: "n1", Diagnosis: "Gripe"})
	require.NoError(t, err)
	_, err = f.records.Create(ctx, MedicalRecordInput{ConsultationID: c2.ID, Notes: "n2", Diagnosis: "Virose"})
	require.NoError(t, err)

	all, err := f.records.List(ctx, MedicalRecordFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byConsultation, err := f.records.List(ctx, MedicalRecordFilter{ConsultationID: c1.ID})
	require.NoError(t, err)
	require.Len(t, byConsultation, 1)
	assert.Equal(t, r1.ID, byConsultation[0].ID)

	byDiagnosis, err := f.records.List(ctx, MedicalRecordFilter{Diagnosis: "vir"})
	require.NoError(t, err)
	require.Len(t, byDiagnosis, 1)
	assert.Equal(t, c2.ID, byDiagnosis[0].ConsultationID)

	updated, err := f.records.Update(ctx, r1.ID, MedicalRecordUpdate{Diagnosis: ptr("Sinusite")})
	require.NoError(t, err)
	assert.Equal(t, "Sinusite", updated.Diagnosis)
	assert.Equal(t, "n1", updated.Notes)
	assert.Equal(t, c1.ID, updated.ConsultationID)

	_, err = f.records.Update(ctx, r1.ID, MedicalRecordUpdate{Notes: ptr(" ")})
	assert.ErrorIs(t, err, ErrValidation)

	deleted, err := f.records.Delete(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, r1.ID, deleted.ID)
	assert.EqualValues(t, 1, count(t, f.db, &models.MedicalRecord{}))

	_, err = f.records.Delete(ctx, r1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, msgMedicalRecordNotFound)
}
