package client

import "gorm.io/gorm"

// Client is the end customer of a sale. Identity for ingestion upserts is the
// display name; distinct real-world people sharing a display name merge into
// one record (known data-quality tradeoff of name-keyed upserts).
type Client struct {
	gorm.Model
	FirstName   string `json:"firstName" gorm:"size:100"`
	LastName    string `json:"lastName" gorm:"size:100"`
	DisplayName string `json:"displayName" gorm:"size:200;uniqueIndex;not null"`
	PhoneNumber string `json:"phoneNumber" gorm:"size:20"`
	Email       string `json:"email" gorm:"size:254"`
}
