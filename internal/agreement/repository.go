package agreement

import (
	"time"

	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/company"
)

// Repository wraps database access for agreements and their structures.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create persists the agreement, resolving the company by name and creating
// the structure set alongside it, all in one transaction.
func (r *Repository) Create(agentID uint, dto *AgreementDTO, start time.Time, end *time.Time) (*Agreement, error) {
	structs, err := dto.structures()
	if err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusActive
	}

	var ag Agreement
	companies := company.NewRepository(r.DB)

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		co, err := companies.GetOrCreateByName(tx, dto.Company.Name, dto.Company.ContactInfo)
		if err != nil {
			return err
		}

		ag = Agreement{
			AgentID:              agentID,
			CompanyID:            co.ID,
			StartDate:            start,
			EndDate:              end,
			Terms:                dto.Terms,
			Status:               status,
			CommissionStructures: structs,
		}
		return tx.Create(&ag).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ag.ID)
}

// ReplaceStructures applies a full update: agreement fields are saved and the
// entire structure set (with owned payment terms) is deleted and recreated
// from the payload, atomically.
func (r *Repository) ReplaceStructures(ag *Agreement, dto *AgreementDTO, start time.Time, end *time.Time) (*Agreement, error) {
	structs, err := dto.structures()
	if err != nil {
		return nil, err
	}

	companies := company.NewRepository(r.DB)

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		co, err := companies.GetOrCreateByName(tx, dto.Company.Name, dto.Company.ContactInfo)
		if err != nil {
			return err
		}

		var oldIDs []uint
		if err := tx.Model(&CommissionStructure{}).
			Where("agreement_id = ?", ag.ID).
			Pluck("id", &oldIDs).Error; err != nil {
			return err
		}
		if len(oldIDs) > 0 {
			if err := tx.Where("commission_structure_id IN ?", oldIDs).Delete(&PaymentTerms{}).Error; err != nil {
				return err
			}
			if err := tx.Where("agreement_id = ?", ag.ID).Delete(&CommissionStructure{}).Error; err != nil {
				return err
			}
		}

		ag.CompanyID = co.ID
		ag.StartDate = start
		ag.EndDate = end
		ag.Terms = dto.Terms
		if dto.Status != "" {
			ag.Status = dto.Status
		}
		ag.CommissionStructures = structs
		return tx.Save(ag).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ag.ID)
}

// FindByID loads an agreement with its company and full structure set.
func (r *Repository) FindByID(id uint) (*Agreement, error) {
	var ag Agreement
	err := r.DB.
		Preload("Company").
		Preload("CommissionStructures", func(db *gorm.DB) *gorm.DB { return db.Order("commission_structures.id") }).
		Preload("CommissionStructures.Product").
		Preload("CommissionStructures.PaymentTerms").
		First(&ag, id).Error
	if err != nil {
		return nil, err
	}
	return &ag, nil
}

// ListByAgent returns the agent's agreements, optionally filtered by company.
func (r *Repository) ListByAgent(agentID uint, companyID uint) ([]Agreement, error) {
	q := r.DB.
		Preload("Company").
		Preload("CommissionStructures", func(db *gorm.DB) *gorm.DB { return db.Order("commission_structures.id") }).
		Preload("CommissionStructures.Product").
		Preload("CommissionStructures.PaymentTerms").
		Where("agent_id = ?", agentID)
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	var list []Agreement
	err := q.Order("id").Find(&list).Error
	return list, err
}

// Delete removes the agreement and cascades to structures and terms.
func (r *Repository) Delete(ag *Agreement) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&CommissionStructure{}).
			Where("agreement_id = ?", ag.ID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.Where("commission_structure_id IN ?", ids).Delete(&PaymentTerms{}).Error; err != nil {
				return err
			}
			if err := tx.Where("agreement_id = ?", ag.ID).Delete(&CommissionStructure{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(ag).Error
	})
}

// FindStructuresForSale selects every structure whose owning agreement
// belongs to the agent and whose product matches the sale. Ordered by
// structure id so repeated matches are stable.
func (r *Repository) FindStructuresForSale(agentID, productID uint) ([]CommissionStructure, error) {
	var list []CommissionStructure
	err := r.DB.
		Preload("PaymentTerms").
		Joins("JOIN agreements ON agreements.id = commission_structures.agreement_id").
		Where("agreements.agent_id = ? AND agreements.deleted_at IS NULL", agentID).
		Where("commission_structures.product_id = ?", productID).
		Order("commission_structures.id").
		Find(&list).Error
	return list, err
}
