package models

import "github.com/google/uuid"

// Prescription groups the medications prescribed in a consultation.
type Prescription struct {
	Base
	ConsultationID uuid.UUID     `json:"consultation_id" gorm:"type:uuid;not null;index"`
	Consultation   *Consultation `json:"consultation,omitempty"`
	Medications    []Medication  `json:"medications" gorm:"constraint:OnDelete:CASCADE"`
}

// Medication is a single line of a prescription.
type Medication struct {
	Base
	PrescriptionID uuid.UUID `json:"prescription_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"not null"`
	Dosage         string    `json:"dosage" gorm:"not null"`
	Instructions   string    `json:"instructions" gorm:"type:text;not null"`
}
