package commission

import "gorm.io/gorm"

// Repository wraps read access to persisted commissions.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// FindByTransaction returns every commission derived from a transaction.
func (r *Repository) FindByTransaction(transactionID uint) ([]Commission, error) {
	var list []Commission
	err := r.DB.Where("transaction_id = ?", transactionID).Order("id").Find(&list).Error
	return list, err
}

// FindByStatus returns all commissions with a given status.
func (r *Repository) FindByStatus(status string) ([]Commission, error) {
	var list []Commission
	err := r.DB.Where("status = ?", status).Order("id").Find(&list).Error
	return list, err
}

// ListByAgent returns every commission whose originating transaction belongs
// to the agent.
func (r *Repository) ListByAgent(agentID uint) ([]Commission, error) {
	var list []Commission
	err := r.DB.
		Joins("JOIN transactions ON transactions.id = commissions.transaction_id").
		Where("transactions.agent_id = ? AND transactions.deleted_at IS NULL", agentID).
		Order("commissions.id").
		Find(&list).Error
	return list, err
}

// UpdateStatus marks a commission, e.g. PENDING -> PAID.
func (r *Repository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&Commission{}).Where("id = ?", id).Update("status", status).Error
}
