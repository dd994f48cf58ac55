package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/models"
)

const (
	entityPatient = "patient"

	msgPatientNotFound     = "Paciente não encontrado"
	msgPatientCPFTaken     = "Já existe um paciente cadastrado com este CPF"
	msgPatientHasSchedules = "Não é possível excluir um paciente com consultas cadastradas"
	msgPatientBirthMissing = "O campo date_birth é obrigatório"
)

type PatientInput struct {
	Name      string
	CPF       string
	DateBirth models.Date
	Address   string
	Phone     string
}

// PatientUpdate holds the fields to change. Nil fields keep their value.
type PatientUpdate struct {
	Name      *string
	CPF       *string
	DateBirth *models.Date
	Address   *string
	Phone     *string
}

type PatientFilter struct {
	Name  string
	CPF   string
	Phone string
}

type PatientService struct {
	db *gorm.DB
}

func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

func (s *PatientService) Create(ctx context.Context, in PatientInput) (*models.Patient, error) {
	patient := models.Patient{
		Name:      strings.TrimSpace(in.Name),
		CPF:       strings.TrimSpace(in.CPF),
		DateBirth: in.DateBirth,
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
	}
	if err := requireFields(entityPatient,
		"name", patient.Name,
		"cpf", patient.CPF,
	); err != nil {
		return nil, err
	}
	if patient.DateBirth.IsZero() {
		return nil, validationError(entityPatient, "date_birth", msgPatientBirthMissing)
	}
	if err := requireFields(entityPatient,
		"address", patient.Address,
		"phone", patient.Phone,
	); err != nil {
		return nil, err
	}

	taken, err := exists(ctx, s.db, &models.Patient{}, "cpf = ?", patient.CPF)
	if err != nil {
		return nil, fmt.Errorf("check patient cpf: %w", err)
	}
	if taken {
		return nil, conflictError(entityPatient, "cpf", msgPatientCPFTaken)
	}

	if err := s.db.WithContext(ctx).Create(&patient).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityPatient, "cpf", msgPatientCPFTaken)
		}
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return s.get(ctx, patient.ID)
}

func (s *PatientService) List(ctx context.Context, f PatientFilter) ([]models.Patient, error) {
	q := s.db.WithContext(ctx).Model(&models.Patient{})
	q = whereContains(q, "name", f.Name)
	q = whereContains(q, "cpf", f.CPF)
	q = whereContains(q, "phone", f.Phone)

	patients := []models.Patient{}
	if err := q.Preload("Consultations").Order("name ASC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (s *PatientService) Update(ctx context.Context, id uuid.UUID, in PatientUpdate) (*models.Patient, error) {
	patient, err := findByID[models.Patient](ctx, s.db, id, entityPatient, msgPatientNotFound)
	if err != nil {
		return nil, err
	}

	if in.CPF != nil {
		cpf := strings.TrimSpace(*in.CPF)
		if cpf != patient.CPF && cpf != "" {
			taken, err := exists(ctx, s.db, &models.Patient{}, "cpf = ? AND id <> ?", cpf, id)
			if err != nil {
				return nil, fmt.Errorf("check patient cpf: %w", err)
			}
			if taken {
				return nil, conflictError(entityPatient, "cpf", msgPatientCPFTaken)
			}
		}
	}

	if err := applyString(entityPatient, "name", &patient.Name, in.Name); err != nil {
		return nil, err
	}
	if err := applyString(entityPatient, "cpf", &patient.CPF, in.CPF); err != nil {
		return nil, err
	}
	if in.DateBirth != nil {
		if in.DateBirth.IsZero() {
			return nil, validationError(entityPatient, "date_birth", msgPatientBirthMissing)
		}
		patient.DateBirth = *in.DateBirth
	}
	if err := applyString(entityPatient, "address", &patient.Address, in.Address); err != nil {
		return nil, err
	}
	if err := applyString(entityPatient, "phone", &patient.Phone, in.Phone); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(patient).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityPatient, "cpf", msgPatientCPFTaken)
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return s.get(ctx, patient.ID)
}

func (s *PatientService) Delete(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	patient, err := findByID[models.Patient](ctx, s.db, id, entityPatient, msgPatientNotFound)
	if err != nil {
		return nil, err
	}

	busy, err := exists(ctx, s.db, &models.Consultation{}, "patient_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("check patient consultations: %w", err)
	}
	if busy {
		return nil, conflictError(entityPatient, "consultations", msgPatientHasSchedules)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete patient: %w", err)
	}
	return patient, nil
}

func (s *PatientService) get(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	return findByID[models.Patient](ctx, s.db, id, entityPatient, msgPatientNotFound, "Consultations")
}
