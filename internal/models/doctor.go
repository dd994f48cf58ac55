package models

// Doctor defines the structure for doctor records.
type Doctor struct {
	Base
	Name          string         `json:"name" gorm:"not null;index"`
	CRM           string         `json:"crm" gorm:"not null;uniqueIndex"`
	Specialty     string         `json:"specialty" gorm:"not null"`
	Phone         string         `json:"phone" gorm:"not null"`
	Email         string         `json:"email" gorm:"not null"`
	Consultations []Consultation `json:"consultations,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}
