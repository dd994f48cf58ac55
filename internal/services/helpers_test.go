package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/database/dbtest"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/models"
)

type fixture struct {
	db            *gorm.DB
	doctors       *DoctorService
	patients      *PatientService
	consultations *ConsultationService
	records       *MedicalRecordService
	prescriptions *PrescriptionService
	users         *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	return &fixture{
		db:            db,
		doctors:       NewDoctorService(db),
		patients:      NewPatientService(db),
		consultations: NewConsultationService(db),
		records:       NewMedicalRecordService(db),
		prescriptions: NewPrescriptionService(db),
		users:         NewUserService(db),
	}
}

func (f *fixture) doctor(t *testing.T, name, crm string) *models.Doctor {
	t.Helper()
	d, err := f.doctors.Create(context.Background(), DoctorInput{
		Name: name, CRM: crm, Specialty: "Cardiologia", Phone: "11999990000", Email: crm + "@clinica.test",
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) patient(t *testing.T, name, cpf string) *models.Patient {
	t.Helper()
	birth, _ := models.ParseDate("1990-05-20")
	p, err := f.patients.Create(context.Background(), PatientInput{
		Name: name, CPF: cpf, DateBirth: birth, Address: "Rua A, 10", Phone: "11988880000",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) consultation(t *testing.T, d *models.Doctor, p *models.Patient, date, hhmm string) *models.Consultation {
	t.Helper()
	day, err := models.ParseDate(date)
	require.NoError(t, err)
	c, err := f.consultations.Create(context.Background(), ConsultationInput{
		DoctorID: d.ID, PatientID: p.ID, Date: day, Time: hhmm,
	})
	require.NoError(t, err)
	return c
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T {
	return &v
}
