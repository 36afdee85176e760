package transaction

import (
	"time"

	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/client"
	"github.com/polisure/commission-api/internal/product"
)

// Transaction statuses.
const (
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Transaction records one completed sale event. It is immutable after
// creation except for status transitions.
type Transaction struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	AgentID   uint            `gorm:"not null;index" json:"agentId"`
	ClientID  uint            `gorm:"not null;index" json:"clientId"`
	Client    client.Client   `json:"client"`
	ProductID uint            `gorm:"not null;index" json:"productId"`
	Product   product.Product `json:"product"`

	OccurredAt time.Time `gorm:"not null" json:"occurredAt"`
	Status     string    `gorm:"size:20;not null;default:'COMPLETED';index" json:"status"`

	// Sale metadata in JSONB, at minimum the numeric amount
	Details Details `gorm:"type:jsonb;serializer:json" json:"details"`
}

// ValidStatus reports whether s is a known transaction status.
func ValidStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}
