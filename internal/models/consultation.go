package models

import "github.com/google/uuid"

// DefaultConsultationStatus is used when a consultation is created without a status.
const DefaultConsultationStatus = "agendada"

// Consultation defines an appointment between a doctor and a patient.
// A doctor holds at most one consultation per date and time.
type Consultation struct {
	Base
	Date          Date           `json:"date" gorm:"column:date;not null;uniqueIndex:idx_consultation_slot,priority:2"`
	Time          string         `json:"time" gorm:"column:time;size:5;not null;uniqueIndex:idx_consultation_slot,priority:3"`
	Status        string         `json:"status" gorm:"not null"`
	DoctorID      uuid.UUID      `json:"doctor_id" gorm:"type:uuid;not null;uniqueIndex:idx_consultation_slot,priority:1"`
	PatientID     uuid.UUID      `json:"patient_id" gorm:"type:uuid;not null;index"`
	Doctor        *Doctor        `json:"doctor,omitempty"`
	Patient       *Patient       `json:"patient,omitempty"`
	MedicalRecord *MedicalRecord `json:"medical_record,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Prescriptions []Prescription `json:"prescriptions,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}
