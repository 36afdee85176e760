package meetingsummary

import "time"

// Processing outcomes.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// MeetingSummary records one ingested block of meeting notes and whether it
// yielded a transaction. Rows are never mutated after creation.
type MeetingSummary struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	AgentID         uint   `gorm:"not null;index" json:"agentId"`
	Content         string `gorm:"not null" json:"content"`
	ProcessedStatus string `gorm:"size:50;not null" json:"processedStatus"`
}
