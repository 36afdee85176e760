package company

import "gorm.io/gorm"

// InsuranceCompany is the counterparty of an agreement.
type InsuranceCompany struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	ContactInfo string `json:"contactInfo"`
}
