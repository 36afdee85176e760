package commission

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/agreement"
	"github.com/polisure/commission-api/internal/transaction"
)

// StructureMatcher yields the commission structures applicable to a sale:
// every structure whose agreement belongs to the agent and whose product
// matches, in a stable order. An empty result is not an error.
type StructureMatcher interface {
	Match(txn *transaction.Transaction) ([]agreement.CommissionStructure, error)
}

// RepositoryMatcher adapts the agreement repository's join query to the
// matcher contract.
type RepositoryMatcher struct {
	Agreements *agreement.Repository
}

func (m RepositoryMatcher) Match(txn *transaction.Transaction) ([]agreement.CommissionStructure, error) {
	return m.Agreements.FindStructuresForSale(txn.AgentID, txn.ProductID)
}

// amountRule computes the payable amount for one structure type.
type amountRule func(txn *transaction.Transaction, s *agreement.CommissionStructure) decimal.Decimal

var hundred = decimal.NewFromInt(100)

// amountRules maps each commission type to its calculation. Types without an
// entry (RETENTION, OVERRIDE, TRAIL, RENEWAL) have no agreed rule yet and
// evaluate to nothing payable; the evaluator logs each one it skips.
var amountRules = map[string]amountRule{
	agreement.CommissionTypeScope: func(txn *transaction.Transaction, s *agreement.CommissionStructure) decimal.Decimal {
		// percentage of the sale amount
		return txn.Details.Amount.Mul(s.Rate).Div(hundred).Round(2)
	},
	agreement.CommissionTypeRecurring: func(_ *transaction.Transaction, s *agreement.CommissionStructure) decimal.Decimal {
		// flat amount, independent of sale size
		return s.Rate
	},
}

// Evaluator turns completed transactions into persisted commission lines.
type Evaluator struct {
	DB      *gorm.DB
	Matcher StructureMatcher
	Logger  *zap.Logger
}

func NewEvaluator(db *gorm.DB, matcher StructureMatcher, logger *zap.Logger) *Evaluator {
	return &Evaluator{DB: db, Matcher: matcher, Logger: logger.Named("evaluator")}
}

// Evaluate computes one commission per applicable structure and persists the
// batch with status PENDING. The reference date feeds the payment schedule
// resolver, so evaluation is reproducible for any point in time.
//
// Lines whose computed amount is not positive are skipped, not errors.
// Re-evaluating a transaction replaces its previous PENDING lines inside the
// same database transaction, so the call is idempotent.
func (e *Evaluator) Evaluate(txn *transaction.Transaction, reference time.Time) ([]Commission, error) {
	structures, err := e.Matcher.Match(txn)
	if err != nil {
		return nil, err
	}

	lines := make([]Commission, 0, len(structures))
	for i := range structures {
		s := &structures[i]

		rule, ok := amountRules[s.CommissionType]
		if !ok {
			e.Logger.Warn("no amount rule for commission type, skipping structure",
				zap.Uint("structureId", s.ID),
				zap.String("commissionType", s.CommissionType),
				zap.Uint("transactionId", txn.ID))
			continue
		}

		amount := rule(txn, s)
		if amount.Sign() <= 0 {
			continue
		}

		lines = append(lines, Commission{
			TransactionID:         txn.ID,
			CommissionStructureID: s.ID,
			Amount:                amount,
			ExpectedPaymentDate:   ResolveExpectedPaymentDate(s.PaymentTerms, reference),
			Status:                StatusPending,
		})
	}

	err = e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ? AND status = ?", txn.ID, StatusPending).
			Delete(&Commission{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
