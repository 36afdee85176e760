package company

import "gorm.io/gorm"

// Repository wraps database access for insurance companies.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *InsuranceCompany) error {
	return r.DB.Create(c).Error
}

// GetOrCreateByName reuses an existing company with the given name or creates
// one in a single conflict-handled statement. Contact info is only written on
// first creation; an existing company keeps its record untouched.
func (r *Repository) GetOrCreateByName(db *gorm.DB, name, contactInfo string) (*InsuranceCompany, error) {
	c := InsuranceCompany{Name: name}
	err := db.Where(InsuranceCompany{Name: name}).
		Attrs(InsuranceCompany{ContactInfo: contactInfo}).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByID(id uint) (*InsuranceCompany, error) {
	var c InsuranceCompany
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]InsuranceCompany, error) {
	var list []InsuranceCompany
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) Update(c *InsuranceCompany) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(c *InsuranceCompany) error {
	return r.DB.Delete(c).Error
}
