package meetingsummary

import "gorm.io/gorm"

// Repository wraps database access for meeting summaries.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(db *gorm.DB, s *MeetingSummary) error {
	return db.Create(s).Error
}

func (r *Repository) FindByID(id uint) (*MeetingSummary, error) {
	var s MeetingSummary
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByAgent returns the agent's summaries, newest first.
func (r *Repository) ListByAgent(agentID uint) ([]MeetingSummary, error) {
	var list []MeetingSummary
	err := r.DB.Where("agent_id = ?", agentID).Order("created_at DESC").Find(&list).Error
	return list, err
}
