package product

import "gorm.io/gorm"

// Repository wraps database access for products.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Product) error {
	return r.DB.Create(p).Error
}

// GetOrCreateByName upserts a product by its name in a single
// conflict-handled statement. Category and type are only applied when the
// product is created; an existing product keeps its stored category. When the
// extracted type differs from the stored one it is refreshed in place.
func (r *Repository) GetOrCreateByName(db *gorm.DB, name, category, productType string) (*Product, error) {
	p := Product{Name: name}
	err := db.Where(Product{Name: name}).
		Attrs(Product{Category: category, Type: productType}).
		FirstOrCreate(&p).Error
	if err != nil {
		return nil, err
	}
	if productType != "" && p.Type != productType {
		p.Type = productType
		if err := db.Model(&p).Update("type", productType).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *Repository) FindByID(id uint) (*Product, error) {
	var p Product
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListAll() ([]Product, error) {
	var list []Product
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) Update(p *Product) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(p *Product) error {
	return r.DB.Delete(p).Error
}
