package agent

import "gorm.io/gorm"

// Repository wraps database access for agents.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(a *Agent) error {
	return r.DB.Create(a).Error
}

func (r *Repository) FindByID(id uint) (*Agent, error) {
	var a Agent
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByLogin looks an agent up by username or email.
func (r *Repository) FindByLogin(login string) (*Agent, error) {
	var a Agent
	if err := r.DB.Where("username = ? OR email = ?", login, login).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListAll() ([]Agent, error) {
	var list []Agent
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) Update(a *Agent) error {
	return r.DB.Save(a).Error
}

func (r *Repository) Delete(a *Agent) error {
	return r.DB.Delete(a).Error
}
