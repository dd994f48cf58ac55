package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/models"
)

const (
	entityPrescription = "prescription"
	entityMedication   = "medication"

	msgPrescriptionNotFound = "Prescrição não encontrada"
	msgMedicationNotFound   = "Medicamento não encontrado"
	msgMedicationsRequired  = "A prescrição deve conter ao menos um medicamento"
)

// MedicationInput is one prescribed medication.
type MedicationInput struct {
	Name         string
	Dosage       string
	Instructions string
}

type PrescriptionInput struct {
	ConsultationID uuid.UUID
	Medications    []MedicationInput
}

// PrescriptionUpdate replaces the whole medication list when Medications is
// not nil.
type PrescriptionUpdate struct {
	Medications []MedicationInput
}

type PrescriptionFilter struct {
	ConsultationID uuid.UUID
}

type PrescriptionService struct {
	db *gorm.DB
}

func NewPrescriptionService(db *gorm.DB) *PrescriptionService {
	return &PrescriptionService{db: db}
}

var prescriptionPreloads = []string{"Medications", "Consultation", "Consultation.Doctor", "Consultation.Patient"}

func (s *PrescriptionService) Create(ctx context.Context, in PrescriptionInput) (*models.Prescription, error) {
	if in.ConsultationID == uuid.Nil {
		return nil, validationError(entityPrescription, "consultation_id", "O campo consultation_id é obrigatório")
	}
	meds, err := buildMedications(in.Medications)
	if err != nil {
		return nil, err
	}

	ok, err := exists(ctx, s.db, &models.Consultation{}, "id = ?", in.ConsultationID)
	if err != nil {
		return nil, fmt.Errorf("check consultation: %w", err)
	}
	if !ok {
		return nil, notFoundError(entityConsultation, msgConsultationNotFound)
	}

	prescription := models.Prescription{ConsultationID: in.ConsultationID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&prescription).Error; err != nil {
			return fmt.Errorf("create prescription: %w", err)
		}
		for i := range meds {
			meds[i].PrescriptionID = prescription.ID
		}
		if err := tx.Create(&meds).Error; err != nil {
			return fmt.Errorf("create medications: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, prescription.ID)
}

func (s *PrescriptionService) List(ctx context.Context, f PrescriptionFilter) ([]models.Prescription, error) {
	q := s.db.WithContext(ctx).Model(&models.Prescription{})
	if f.ConsultationID != uuid.Nil {
		q = q.Where("consultation_id = ?", f.ConsultationID)
	}
	for _, p := range prescriptionPreloads {
		q = q.Preload(p)
	}

	prescriptions := []models.Prescription{}
	if err := q.Order("created_at DESC").Find(&prescriptions).Error; err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (s *PrescriptionService) FindByID(ctx context.Context, id uuid.UUID) (*models.Prescription, error) {
	return findByID[models.Prescription](ctx, s.db, id, entityPrescription, msgPrescriptionNotFound, prescriptionPreloads...)
}

func (s *PrescriptionService) Update(ctx context.Context, id uuid.UUID, in PrescriptionUpdate) (*models.Prescription, error) {
	prescription, err := findByID[models.Prescription](ctx, s.db, id, entityPrescription, msgPrescriptionNotFound)
	if err != nil {
		return nil, err
	}

	var meds []models.Medication
	if in.Medications != nil {
		if meds, err = buildMedications(in.Medications); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if meds != nil {
			if err := tx.Where("prescription_id = ?", id).Delete(&models.Medication{}).Error; err != nil {
				return fmt.Errorf("delete medications: %w", err)
			}
			for i := range meds {
				meds[i].PrescriptionID = id
			}
			if err := tx.Create(&meds).Error; err != nil {
				return fmt.Errorf("create medications: %w", err)
			}
		}
		if err := tx.Omit(clause.Associations).Save(prescription).Error; err != nil {
			return fmt.Errorf("update prescription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete removes the prescription and its medications in one transaction.
func (s *PrescriptionService) Delete(ctx context.Context, id uuid.UUID) (*models.Prescription, error) {
	prescription, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prescription_id = ?", id).Delete(&models.Medication{}).Error; err != nil {
			return fmt.Errorf("delete medications: %w", err)
		}
		if err := tx.Delete(&models.Prescription{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete prescription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prescription, nil
}

// AddMedication appends one medication to an existing prescription.
func (s *PrescriptionService) AddMedication(ctx context.Context, prescriptionID uuid.UUID, in MedicationInput) (*models.Medication, error) {
	med, err := buildMedication(in)
	if err != nil {
		return nil, err
	}
	ok, err := exists(ctx, s.db, &models.Prescription{}, "id = ?", prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("check prescription: %w", err)
	}
	if !ok {
		return nil, notFoundError(entityPrescription, msgPrescriptionNotFound)
	}

	med.PrescriptionID = prescriptionID
	if err := s.db.WithContext(ctx).Create(&med).Error; err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}
	return &med, nil
}

// RemoveMedication deletes a single medication row. The last medication of
// a prescription cannot be removed.
func (s *PrescriptionService) RemoveMedication(ctx context.Context, id uuid.UUID) (*models.Medication, error) {
	var med models.Medication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&med, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError(entityMedication, msgMedicationNotFound)
			}
			return fmt.Errorf("find medication %s: %w", id, err)
		}

		var others int64
		if err := tx.Model(&models.Medication{}).
			Where("prescription_id = ? AND id <> ?", med.PrescriptionID, id).
			Count(&others).Error; err != nil {
			return fmt.Errorf("count medications: %w", err)
		}
		if others == 0 {
			return conflictError(entityMedication, "prescription_id", msgMedicationsRequired)
		}

		if err := tx.Delete(&models.Medication{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete medication: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func buildMedications(in []MedicationInput) ([]models.Medication, error) {
	if len(in) == 0 {
		return nil, validationError(entityPrescription, "medications", msgMedicationsRequired)
	}
	meds := make([]models.Medication, 0, len(in))
	for _, m := range in {
		med, err := buildMedication(m)
		if err != nil {
			return nil, err
		}
		meds = append(meds, med)
	}
	return meds, nil
}

func buildMedication(in MedicationInput) (models.Medication, error) {
	med := models.Medication{
		Name:         strings.TrimSpace(in.Name),
		Dosage:       strings.TrimSpace(in.Dosage),
		Instructions: strings.TrimSpace(in.Instructions),
	}
	err := requireFields(entityMedication,
		"name", med.Name,
		"dosage", med.Dosage,
		"instructions", med.Instructions,
	)
	return med, err
}
