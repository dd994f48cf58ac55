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
	entityDoctor = "doctor"

	msgDoctorNotFound     = "Médico não encontrado"
	msgDoctorCRMTaken     = "Já existe um médico cadastrado com este CRM"
	msgDoctorHasSchedules = "Não é possível excluir um médico com consultas cadastradas"
)

// DoctorInput holds the fields required to register a doctor.
type DoctorInput struct {
	Name      string
	CRM       string
	Specialty string
	Phone     string
	Email     string
}

// DoctorUpdate holds the fields to change. Nil fields keep their value.
type DoctorUpdate struct {
	Name      *string
	CRM       *string
	Specialty *string
	Phone     *string
	Email     *string
}

// DoctorFilter narrows List. Empty fields are ignored.
type DoctorFilter struct {
	Name      string
	CRM       string
	Specialty string
	Email     string
}

// DoctorStats summarises the doctor roster for the dashboard.
type DoctorStats struct {
	TotalDoctors       int64 `json:"total_doctors"`
	TotalSpecialties   int64 `json:"total_specialties"`
	ConsultationsToday int64 `json:"consultations_today"`
}

type DoctorService struct {
	db *gorm.DB
}

func NewDoctorService(db *gorm.DB) *DoctorService {
	return &DoctorService{db: db}
}

func (s *DoctorService) Create(ctx context.Context, in DoctorInput) (*models.Doctor, error) {
	doctor := models.Doctor{
		Name:      strings.TrimSpace(in.Name),
		CRM:       strings.TrimSpace(in.CRM),
		Specialty: strings.TrimSpace(in.Specialty),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
	}
	if err := requireFields(entityDoctor,
		"name", doctor.Name,
		"crm", doctor.CRM,
		"specialty", doctor.Specialty,
		"phone", doctor.Phone,
		"email", doctor.Email,
	); err != nil {
		return nil, err
	}

	taken, err := exists(ctx, s.db, &models.Doctor{}, "crm = ?", doctor.CRM)
	if err != nil {
		return nil, fmt.Errorf("check doctor crm: %w", err)
	}
	if taken {
		return nil, conflictError(entityDoctor, "crm", msgDoctorCRMTaken)
	}

	if err := s.db.WithContext(ctx).Create(&doctor).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityDoctor, "crm", msgDoctorCRMTaken)
		}
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return s.get(ctx, doctor.ID)
}

func (s *DoctorService) List(ctx context.Context, f DoctorFilter) ([]models.Doctor, error) {
	q := s.db.WithContext(ctx).Model(&models.Doctor{})
	q = whereContains(q, "name", f.Name)
	q = whereContains(q, "crm", f.CRM)
	q = whereContains(q, "specialty", f.Specialty)
	q = whereContains(q, "email", f.Email)

	doctors := []models.Doctor{}
	if err := q.Preload("Consultations").Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (s *DoctorService) Update(ctx context.Context, id uuid.UUID, in DoctorUpdate) (*models.Doctor, error) {
	doctor, err := findByID[models.Doctor](ctx, s.db, id, entityDoctor, msgDoctorNotFound)
	if err != nil {
		return nil, err
	}

	if in.CRM != nil {
		crm := strings.TrimSpace(*in.CRM)
		if crm != doctor.CRM && crm != "" {
			taken, err := exists(ctx, s.db, &models.Doctor{}, "crm = ? AND id <> ?", crm, id)
			if err != nil {
				return nil, fmt.Errorf("check doctor crm: %w", err)
			}
			if taken {
				return nil, conflictError(entityDoctor, "crm", msgDoctorCRMTaken)
			}
		}
	}

	for _, f := range []struct {
		name string
		dst  *string
		src  *string
	}{
		{"name", &doctor.Name, in.Name},
		{"crm", &doctor.CRM, in.CRM},
		{"specialty", &doctor.Specialty, in.Specialty},
		{"phone", &doctor.Phone, in.Phone},
		{"email", &doctor.Email, in.Email},
	} {
		if err := applyString(entityDoctor, f.name, f.dst, f.src); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(doctor).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityDoctor, "crm", msgDoctorCRMTaken)
		}
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return s.get(ctx, doctor.ID)
}

func (s *DoctorService) Delete(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	doctor, err := findByID[models.Doctor](ctx, s.db, id, entityDoctor, msgDoctorNotFound)
	if err != nil {
		return nil, err
	}

	busy, err := exists(ctx, s.db, &models.Consultation{}, "doctor_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("check doctor consultations: %w", err)
	}
	if busy {
		return nil, conflictError(entityDoctor, "consultations", msgDoctorHasSchedules)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Doctor{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete doctor: %w", err)
	}
	return doctor, nil
}

// Stats counts doctors, distinct specialties and consultations booked for today.
func (s *DoctorService) Stats(ctx context.Context) (*DoctorStats, error) {
	var stats DoctorStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Doctor{}).Count(&stats.TotalDoctors).Error; err != nil {
		return nil, fmt.Errorf("count doctors: %w", err)
	}
	if err := db.Model(&models.Doctor{}).
		Where("specialty <> ''").
		Distinct("specialty").
		Count(&stats.TotalSpecialties).Error; err != nil {
		return nil, fmt.Errorf("count specialties: %w", err)
	}
	if err := db.Model(&models.Consultation{}).
		Where(map[string]any{"date": models.Today()}).
		Count(&stats.ConsultationsToday).Error; err != nil {
		return nil, fmt.Errorf("count consultations today: %w", err)
	}
	return &stats, nil
}

func (s *DoctorService) get(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	return findByID[models.Doctor](ctx, s.db, id, entityDoctor, msgDoctorNotFound, "Consultations")
}
