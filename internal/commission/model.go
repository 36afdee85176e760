package commission

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polisure/commission-api/internal/agreement"
	"github.com/polisure/commission-api/internal/transaction"
)

// Commission statuses.
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
)

// Commission is a derived record: one payable line produced by evaluating a
// transaction against a matching commission structure. It is never authored
// directly.
type Commission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TransactionID uint                    `gorm:"not null;index" json:"transactionId"`
	Transaction   transaction.Transaction `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CommissionStructureID uint                          `gorm:"not null;index" json:"commissionStructureId"`
	CommissionStructure   agreement.CommissionStructure `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Amount              decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	ExpectedPaymentDate time.Time       `gorm:"not null" json:"expectedPaymentDate"`
	Status              string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
}
