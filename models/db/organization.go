package dbmodels

import (
	"fin-tools-backend/models"
)

// Organization is the issuer-side tenant; every application, contract and
// invoice is scoped to one.
type Organization struct {
	BaseModel
	Name            string
	RegistrationNo  string
	ContactEmail    string
	Active          bool `gorm:"default:true"`
}

type User struct {
	BaseOrgModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	FirstName    string
	LastName     string
	Role         models.UserRole `gorm:"type:varchar(32)"`
	Active       bool            `gorm:"default:true"`
}

func (u User) GetFullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}
