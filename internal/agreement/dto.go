package agreement

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CompanyDTO struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo"`
}

type PaymentTermsDTO struct {
	PaymentType  string `json:"paymentType"`
	DayOfMonth   int    `json:"dayOfMonth"`
	SpecificDate string `json:"specificDate"`
}

type StructureDTO struct {
	ProductID      uint            `json:"product"`
	CommissionType string          `json:"commissionType"`
	Rate           decimal.Decimal `json:"rate"`
	PaymentTerms   PaymentTermsDTO `json:"paymentTerms"`
}

// AgreementDTO is the nested create/update payload: the company is matched by
// name (get-or-create) and the structure set is created atomically with the
// agreement.
type AgreementDTO struct {
	Company              CompanyDTO             `json:"company"`
	StartDate            string                 `json:"startDate"`
	EndDate              string                 `json:"endDate"`
	Terms                map[string]interface{} `json:"terms"`
	Status               string                 `json:"status"`
	CommissionStructures []StructureDTO         `json:"commissionStructures"`
}

// toTerms converts the DTO into a validated PaymentTerms row.
func (d PaymentTermsDTO) toTerms() (PaymentTerms, error) {
	t := PaymentTerms{PaymentType: d.PaymentType, DayOfMonth: d.DayOfMonth}
	if d.SpecificDate != "" {
		s, err := time.Parse(dateLayout, d.SpecificDate)
		if err != nil {
			return t, fmt.Errorf("invalid specificDate %q: %w", d.SpecificDate, err)
		}
		t.SpecificDate = &s
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate checks the payload and returns the parsed date range.
func (d *AgreementDTO) Validate() (start time.Time, end *time.Time, err error) {
	if d.Company.Name == "" {
		return start, nil, errors.New("company name is required")
	}
	if len(d.CommissionStructures) == 0 {
		return start, nil, errors.New("an agreement needs at least one commission structure")
	}
	if d.Status != "" && !ValidStatus(d.Status) {
		return start, nil, fmt.Errorf("unknown agreement status %q", d.Status)
	}

	start, err = time.Parse(dateLayout, d.StartDate)
	if err != nil {
		return start, nil, fmt.Errorf("invalid startDate %q: %w", d.StartDate, err)
	}
	if d.EndDate != "" {
		e, perr := time.Parse(dateLayout, d.EndDate)
		if perr != nil {
			return start, nil, fmt.Errorf("invalid endDate %q: %w", d.EndDate, perr)
		}
		if e.Before(start) {
			return start, nil, errors.New("endDate must not precede startDate")
		}
		end = &e
	}

	for i, s := range d.CommissionStructures {
		if s.ProductID == 0 {
			return start, end, fmt.Errorf("structure %d: product is required", i)
		}
		if !ValidCommissionType(s.CommissionType) {
			return start, end, fmt.Errorf("structure %d: unknown commission type %q", i, s.CommissionType)
		}
		if s.Rate.Sign() < 0 {
			return start, end, fmt.Errorf("structure %d: rate must not be negative", i)
		}
		if _, terr := s.PaymentTerms.toTerms(); terr != nil {
			return start, end, fmt.Errorf("structure %d: %w", i, terr)
		}
	}
	return start, end, nil
}

// structures materializes the DTO's structure set. Rates are normalized to
// two fractional digits.
func (d *AgreementDTO) structures() ([]CommissionStructure, error) {
	out := make([]CommissionStructure, 0, len(d.CommissionStructures))
	for _, s := range d.CommissionStructures {
		terms, err := s.PaymentTerms.toTerms()
		if err != nil {
			return nil, err
		}
		out = append(out, CommissionStructure{
			ProductID:      s.ProductID,
			CommissionType: s.CommissionType,
			Rate:           s.Rate.Round(2),
			PaymentTerms:   terms,
		})
	}
	return out, nil
}
