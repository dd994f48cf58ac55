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
	entityMedicalRecord = "medical_record"

	msgMedicalRecordNotFound = "Prontuário não encontrado"
	msgMedicalRecordExists   = "Já existe um prontuário para esta consulta"
)

type MedicalRecordInput struct {
	ConsultationID uuid.UUID
	Notes          string
	Diagnosis      string
}

// MedicalRecordUpdate holds the fields to change. Nil fields keep their value.
// The owning consultation cannot be changed.
type MedicalRecordUpdate struct {
	Notes     *string
	Diagnosis *string
}

type MedicalRecordFilter struct {
	ConsultationID uuid.UUID
	Diagnosis      string
}

type MedicalRecordService struct {
	db *gorm.DB
}

func NewMedicalRecordService(db *gorm.DB) *MedicalRecordService {
	return &MedicalRecordService{db: db}
}

var medicalRecordPreloads = []string{"Consultation", "Consultation.Doctor", "Consultation.Patient"}

func (s *MedicalRecordService) Create(ctx context.Context, in MedicalRecordInput) (*models.MedicalRecord, error) {
	if in.ConsultationID == uuid.Nil {
		return nil, validationError(entityMedicalRecord, "consultation_id", "O campo consultation_id é obrigatório")
	}
	record := models.MedicalRecord{
		ConsultationID: in.ConsultationID,
		Notes:          strings.TrimSpace(in.Notes),
		Diagnosis:      strings.TrimSpace(in.Diagnosis),
	}
	if err := requireFields(entityMedicalRecord,
		"notes", record.Notes,
		"diagnosis", record.Diagnosis,
	); err != nil {
		return nil, err
	}

	ok, err := exists(ctx, s.db, &models.Consultation{}, "id = ?", record.ConsultationID)
	if err != nil {
		return nil, fmt.Errorf("check consultation: %w", err)
	}
	if !ok {
		return nil, notFoundError(entityConsultation, msgConsultationNotFound)
	}
	taken, err := exists(ctx, s.db, &models.MedicalRecord{}, "consultation_id = ?", record.ConsultationID)
	if err != nil {
		return nil, fmt.Errorf("check medical record: %w", err)
	}
	if taken {
		return nil, conflictError(entityMedicalRecord, "consultation_id", msgMedicalRecordExists)
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityMedicalRecord, "consultation_id", msgMedicalRecordExists)
		}
		return nil, fmt.Errorf("create medical record: %w", err)
	}
	return s.get(ctx, record.ID)
}

func (s *MedicalRecordService) List(ctx context.Context, f MedicalRecordFilter) ([]models.MedicalRecord, error) {
	q := s.db.WithContext(ctx).Model(&models.MedicalRecord{})
	if f.ConsultationID != uuid.Nil {
		q = q.Where("consultation_id = ?", f.ConsultationID)
	}
	q = whereContains(q, "diagnosis", f.Diagnosis)
	for _, p := range medicalRecordPreloads {
		q = q.Preload(p)
	}

	records := []models.MedicalRecord{}
	if err := q.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list medical records: %w", err)
	}
	return records, nil
}

func (s *MedicalRecordService) Update(ctx context.Context, id uuid.UUID, in MedicalRecordUpdate) (*models.MedicalRecord, error) {
	record, err := findByID[models.MedicalRecord](ctx, s.db, id, entityMedicalRecord, msgMedicalRecordNotFound)
	if err != nil {
		return nil, err
	}
	if err := applyString(entityMedicalRecord, "notes", &record.Notes, in.Notes); err != nil {
		return nil, err
	}
	if err := applyString(entityMedicalRecord, "diagnosis", &record.Diagnosis, in.Diagnosis); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error; err != nil {
		return nil, fmt.Errorf("update medical record: %w", err)
	}
	return s.get(ctx, record.ID)
}

func (s *MedicalRecordService) Delete(ctx context.Context, id uuid.UUID) (*models.MedicalRecord, error) {
	record, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.MedicalRecord{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete medical record: %w", err)
	}
	return record, nil
}

func (s *MedicalRecordService) get(ctx context.Context, id uuid.UUID) (*models.MedicalRecord, error) {
	return findByID[models.MedicalRecord](ctx, s.db, id, entityMedicalRecord, msgMedicalRecordNotFound, medicalRecordPreloads...)
}
