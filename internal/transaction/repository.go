package transaction

import "gorm.io/gorm"

// Repository wraps database access for transactions.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(t *Transaction) error {
	return r.DB.Create(t).Error
}

func (r *Repository) FindByID(id uint) (*Transaction, error) {
	var t Transaction
	err := r.DB.Preload("Client").Preload("Product").First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByAgent returns the agent's transactions, newest first, optionally
// filtered by product.
func (r *Repository) ListByAgent(agentID, productID uint) ([]Transaction, error) {
	q := r.DB.Preload("Client").Preload("Product").Where("agent_id = ?", agentID)
	if productID != 0 {
		q = q.Where("product_id = ?", productID)
	}
	var list []Transaction
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListAll is the admin view across agents.
func (r *Repository) ListAll(productID uint) ([]Transaction, error) {
	q := r.DB.Preload("Client").Preload("Product")
	if productID != 0 {
		q = q.Where("product_id = ?", productID)
	}
	var list []Transaction
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// UpdateStatus is the only mutation allowed after creation.
func (r *Repository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&Transaction{}).Where("id = ?", id).Update("status", status).Error
}

func (r *Repository) Delete(t *Transaction) error {
	return r.DB.Delete(t).Error
}
