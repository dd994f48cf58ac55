package models

// Patient defines the structure for patient records.
type Patient struct {
	Base
	Name          string         `json:"name" gorm:"not null;index"`
	CPF           string         `json:"cpf" gorm:"not null;uniqueIndex"`
	DateBirth     Date           `json:"date_birth" gorm:"not null"`
	Address       string         `json:"address" gorm:"not null"`
	Phone         string         `json:"phone" gorm:"not null"`
	Consultations []Consultation `json:"consultations,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}
