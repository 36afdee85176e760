package client

import (
	"strings"

	"gorm.io/gorm"
)

// Repository wraps database access for clients.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Client) error {
	return r.DB.Create(c).Error
}

// GetOrCreateByDisplayName upserts a client by display name in a single
// conflict-handled statement. On creation the first and last name are split
// off the display name.
func (r *Repository) GetOrCreateByDisplayName(db *gorm.DB, displayName string) (*Client, error) {
	first, last := splitName(displayName)
	c := Client{DisplayName: displayName}
	err := db.Where(Client{DisplayName: displayName}).
		Attrs(Client{FirstName: first, LastName: last}).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func splitName(displayName string) (first, last string) {
	parts := strings.Fields(displayName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], parts[len(parts)-1]
}

func (r *Repository) FindByID(id uint) (*Client, error) {
	var c Client
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]Client, error) {
	var list []Client
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) Update(c *Client) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(c *Client) error {
	return r.DB.Delete(c).Error
}
