package product

import "gorm.io/gorm"

// Product categories.
const (
	CategoryInsurance = "INSURANCE"
	CategoryPension   = "PENSION"
	CategoryFinancial = "FINANCIAL"
)

// Product is an insurance/financial product sold by agents. Identity is the
// name; ingestion upserts by it.
type Product struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Category    string `json:"category" gorm:"size:20;not null"`
	Type        string `json:"type" gorm:"size:100"`
	Description string `json:"description"`
}

// ValidCategory reports whether c is one of the known product categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryInsurance, CategoryPension, CategoryFinancial:
		return true
	}
	return false
}
