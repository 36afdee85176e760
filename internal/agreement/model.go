package agreement

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/company"
	"github.com/polisure/commission-api/internal/product"
)

// Agreement statuses.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusExpired  = "EXPIRED"
)

// Commission types. SCOPE and RECURRING carry calculation rules; the rest are
// reserved contract clauses awaiting a rule (see the commission evaluator).
const (
	CommissionTypeScope     = "SCOPE"
	CommissionTypeRecurring = "RECURRING"
	CommissionTypeRetention = "RETENTION"
	CommissionTypeOverride  = "OVERRIDE"
	CommissionTypeTrail     = "TRAIL"
	CommissionTypeRenewal   = "RENEWAL"
)

// Payment term types.
const (
	PaymentTypeDayOfMonth   = "DAY_OF_MONTH"
	PaymentTypeSpecificDate = "SPECIFIC_DATE"
)

// Agreement is a contract between an agent and an insurance company bundling
// one or more commission structures. Structures are owned exclusively and
// replaced as a set on update.
type Agreement struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	AgentID   uint                     `gorm:"not null;index" json:"agentId"`
	CompanyID uint                     `gorm:"not null;index" json:"companyId"`
	Company   company.InsuranceCompany `json:"company"`

	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	// Free-form contractual terms in JSONB
	Terms map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"terms"`

	Status string `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`

	CommissionStructures []CommissionStructure `gorm:"foreignKey:AgreementID;constraint:OnDelete:CASCADE" json:"commissionStructures"`
}

// CommissionStructure is one rule for converting a sale of a product into a
// commission: a type, a rate (percentage or flat amount depending on the
// type) and the payment terms stamping the due date.
type CommissionStructure struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	AgreementID uint            `gorm:"not null;index" json:"agreementId"`
	ProductID   uint            `gorm:"not null;index" json:"productId"`
	Product     product.Product `json:"product"`

	CommissionType string          `gorm:"size:20;not null" json:"commissionType"`
	Rate           decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"rate"`

	PaymentTerms PaymentTerms `gorm:"foreignKey:CommissionStructureID;constraint:OnDelete:CASCADE" json:"paymentTerms"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentTerms describes when a commission becomes payable: either a fixed
// day of every month or one specific date recurring annually. Exactly one of
// DayOfMonth/SpecificDate is meaningful per PaymentType.
type PaymentTerms struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	CommissionStructureID uint       `gorm:"not null;index" json:"commissionStructureId"`
	PaymentType           string     `gorm:"size:20;not null" json:"paymentType"`
	DayOfMonth            int        `json:"dayOfMonth,omitempty"`
	SpecificDate          *time.Time `json:"specificDate,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// Validate checks the XOR invariant between the two term fields.
func (t *PaymentTerms) Validate() error {
	switch t.PaymentType {
	case PaymentTypeDayOfMonth:
		if t.DayOfMonth < 1 || t.DayOfMonth > 31 {
			return fmt.Errorf("dayOfMonth must be between 1 and 31, got %d", t.DayOfMonth)
		}
		if t.SpecificDate != nil {
			return errors.New("specificDate must be empty for DAY_OF_MONTH terms")
		}
	case PaymentTypeSpecificDate:
		if t.SpecificDate == nil {
			return errors.New("specificDate is required for SPECIFIC_DATE terms")
		}
		if t.DayOfMonth != 0 {
			return errors.New("dayOfMonth must be empty for SPECIFIC_DATE terms")
		}
	default:
		return fmt.Errorf("unknown payment type %q", t.PaymentType)
	}
	return nil
}

// ValidCommissionType reports whether t is a known commission type.
func ValidCommissionType(t string) bool {
	switch t {
	case CommissionTypeScope, CommissionTypeRecurring, CommissionTypeRetention,
		CommissionTypeOverride, CommissionTypeTrail, CommissionTypeRenewal:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known agreement status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusExpired:
		return true
	}
	return false
}
