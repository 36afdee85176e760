package agent

import "gorm.io/gorm"

// Agent represents a salesperson entitled to commissions.
type Agent struct {
	gorm.Model
	Username     string `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string `json:"email" gorm:"size:254;uniqueIndex"`
	FirstName    string `json:"firstName" gorm:"size:100"`
	LastName     string `json:"lastName" gorm:"size:100"`
	PasswordHash string `json:"-" gorm:"not null"`
	IsAdmin      bool   `json:"isAdmin" gorm:"not null;default:false"`
}
