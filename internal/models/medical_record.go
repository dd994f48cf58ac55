package models

import "github.com/google/uuid"

// MedicalRecord holds the clinical notes of a consultation. There is at most
// one record per consultation.
type MedicalRecord struct {
	Base
	ConsultationID uuid.UUID     `json:"consultation_id" gorm:"type:uuid;not null;uniqueIndex"`
	Notes          string        `json:"notes" gorm:"type:text;not null"`
	Diagnosis      string        `json:"diagnosis" gorm:"type:text;not null"`
	Consultation   *Consultation `json:"consultation,omitempty"`
}
