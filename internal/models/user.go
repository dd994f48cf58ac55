package models

// DefaultUserRole is assigned when a user is created without a role.
const DefaultUserRole = "user"

// User is an operator of the clinic dashboard.
type User struct {
	Base
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"not null;uniqueIndex"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"not null"`
}
