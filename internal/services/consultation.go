package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/models"
)

// TimeLayout is the HH:MM format of Consultation.Time.
const TimeLayout = "15:04"

const (
	entityConsultation = "consultation"

	msgConsultationNotFound      = "Consulta não encontrada"
	msgConsultationSlotTaken     = "Já existe uma consulta agendada para este médico nesta data e horário"
	msgConsultationHasRecord     = "Não é possível excluir uma consulta com prontuário cadastrado"
	msgConsultationHasPrescripts = "Não é possível excluir uma consulta com prescrições cadastradas"
	msgConsultationBadTime       = "O campo time deve estar no formato HH:MM"
)

type ConsultationInput struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      models.Date
	Time      string
	Status    string
}

// ConsultationUpdate holds the fields to change. Nil fields keep their value.
type ConsultationUpdate struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Date      *models.Date
	Time      *string
	Status    *string
}

// ConsultationFilter narrows List. Zero fields are ignored.
type ConsultationFilter struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      models.Date
	Status    string
}

type ConsultationService struct {
	db *gorm.DB
}

func NewConsultationService(db *gorm.DB) *ConsultationService {
	return &ConsultationService{db: db}
}

// NormalizeTime validates an HH:MM time of day and returns it zero padded.
func NormalizeTime(s string) (string, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", validationError(entityConsultation, "time", msgConsultationBadTime)
	}
	return t.Format(TimeLayout), nil
}

func (s *ConsultationService) Create(ctx context.Context, in ConsultationInput) (*models.Consultation, error) {
	if in.DoctorID == uuid.Nil {
		return nil, validationError(entityConsultation, "doctor_id", "O campo doctor_id é obrigatório")
	}
	if in.PatientID == uuid.Nil {
		return nil, validationError(entityConsultation, "patient_id", "O campo patient_id é obrigatório")
	}
	if in.Date.IsZero() {
		return nil, validationError(entityConsultation, "date", "O campo date é obrigatório")
	}
	if err := requireFields(entityConsultation, "time", in.Time); err != nil {
		return nil, err
	}
	hhmm, err := NormalizeTime(in.Time)
	if err != nil {
		return nil, err
	}

	consultation := models.Consultation{
		DoctorID:  in.DoctorID,
		PatientID: in.PatientID,
		Date:      in.Date,
		Time:      hhmm,
		Status:    strings.TrimSpace(in.Status),
	}
	if consultation.Status == "" {
		consultation.Status = models.DefaultConsultationStatus
	}

	if err := s.checkParents(ctx, consultation.DoctorID, consultation.PatientID); err != nil {
		return nil, err
	}
	if err := s.checkSlot(ctx, uuid.Nil, consultation.DoctorID, consultation.Date, consultation.Time); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&consultation).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityConsultation, "time", msgConsultationSlotTaken)
		}
		return nil, fmt.Errorf("create consultation: %w", err)
	}
	return s.get(ctx, consultation.ID)
}

func (s *ConsultationService) List(ctx context.Context, f ConsultationFilter) ([]models.Consultation, error) {
	q := s.db.WithContext(ctx).Model(&models.Consultation{})
	if f.DoctorID != uuid.Nil {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != uuid.Nil {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if !f.Date.IsZero() {
		q = q.Where(map[string]any{"date": f.Date})
	}
	q = whereContains(q, "status", f.Status)

	consultations := []models.Consultation{}
	err := q.Preload("Doctor").Preload("Patient").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}}).
		Find(&consultations).Error
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	return consultations, nil
}

func (s *ConsultationService) Update(ctx context.Context, id uuid.UUID, in ConsultationUpdate) (*models.Consultation, error) {
	consultation, err := findByID[models.Consultation](ctx, s.db, id, entityConsultation, msgConsultationNotFound)
	if err != nil {
		return nil, err
	}

	if in.DoctorID != nil {
		if *in.DoctorID == uuid.Nil {
			return nil, validationError(entityConsultation, "doctor_id", "O campo doctor_id não pode ser vazio")
		}
		consultation.DoctorID = *in.DoctorID
	}
	if in.PatientID != nil {
		if *in.PatientID == uuid.Nil {
			return nil, validationError(entityConsultation, "patient_id", "O campo patient_id não pode ser vazio")
		}
		consultation.PatientID = *in.PatientID
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return nil, validationError(entityConsultation, "date", "O campo date não pode ser vazio")
		}
		consultation.Date = *in.Date
	}
	if in.Time != nil {
		hhmm, err := NormalizeTime(*in.Time)
		if err != nil {
			return nil, err
		}
		consultation.Time = hhmm
	}
	if err := applyString(entityConsultation, "status", &consultation.Status, in.Status); err != nil {
		return nil, err
	}

	if in.DoctorID != nil || in.PatientID != nil {
		if err := s.checkParents(ctx, consultation.DoctorID, consultation.PatientID); err != nil {
			return nil, err
		}
	}
	if in.DoctorID != nil || in.Date != nil || in.Time != nil {
		if err := s.checkSlot(ctx, id, consultation.DoctorID, consultation.Date, consultation.Time); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(consultation).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityConsultation, "time", msgConsultationSlotTaken)
		}
		return nil, fmt.Errorf("update consultation: %w", err)
	}
	return s.get(ctx, consultation.ID)
}

func (s *ConsultationService) Delete(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	consultation, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	hasRecord, err := exists(ctx, s.db, &models.MedicalRecord{}, "consultation_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("check consultation medical record: %w", err)
	}
	if hasRecord {
		return nil, conflictError(entityConsultation, "medical_record", msgConsultationHasRecord)
	}
	hasPrescriptions, err := exists(ctx, s.db, &models.Prescription{}, "consultation_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("check consultation prescriptions: %w", err)
	}
	if hasPrescriptions {
		return nil, conflictError(entityConsultation, "prescriptions", msgConsultationHasPrescripts)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Consultation{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete consultation: %w", err)
	}
	return consultation, nil
}

// checkParents verifies that the referenced doctor and patient exist.
func (s *ConsultationService) checkParents(ctx context.Context, doctorID, patientID uuid.UUID) error {
	ok, err := exists(ctx, s.db, &models.Doctor{}, "id = ?", doctorID)
	if err != nil {
		return fmt.Errorf("check doctor: %w", err)
	}
	if !ok {
		return notFoundError(entityDoctor, msgDoctorNotFound)
	}
	ok, err = exists(ctx, s.db, &models.Patient{}, "id = ?", patientID)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return notFoundError(entityPatient, msgPatientNotFound)
	}
	return nil
}

// checkSlot fails when another consultation, other than exclude, already
// holds the doctor's date and time.
func (s *ConsultationService) checkSlot(ctx context.Context, exclude, doctorID uuid.UUID, date models.Date, hhmm string) error {
	q := s.db.WithContext(ctx).Model(&models.Consultation{}).
		Where(map[string]any{"doctor_id": doctorID, "date": date, "time": hhmm})
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("check consultation slot: %w", err)
	}
	if n > 0 {
		return conflictError(entityConsultation, "time", msgConsultationSlotTaken)
	}
	return nil
}

func (s *ConsultationService) get(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	return findByID[models.Consultation](ctx, s.db, id, entityConsultation, msgConsultationNotFound, "Doctor", "Patient")
}
