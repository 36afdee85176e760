package commission

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/agent"
	"github.com/polisure/commission-api/internal/agreement"
	"github.com/polisure/commission-api/internal/client"
	"github.com/polisure/commission-api/internal/company"
	"github.com/polisure/commission-api/internal/product"
	"github.com/polisure/commission-api/internal/transaction"
)

func setupEvaluatorTest(t *testing.T) (*gorm.DB, *Evaluator) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&agent.Agent{},
		&company.InsuranceCompany{},
		&product.Product{},
		&client.Client{},
		&agreement.Agreement{},
		&agreement.CommissionStructure{},
		&agreement.PaymentTerms{},
		&transaction.Transaction{},
		&Commission{},
	))

	matcher := RepositoryMatcher{Agreements: agreement.NewRepository(db)}
	return db, NewEvaluator(db, matcher, zap.NewNop())
}

type seed struct {
	agent   agent.Agent
	product product.Product
	client  client.Client
	company company.InsuranceCompany
}

func seedBase(t *testing.T, db *gorm.DB) seed {
	t.Helper()
	s := seed{
		agent:   agent.Agent{Username: "testagent", PasswordHash: "x"},
		product: product.Product{Name: "Life Insurance", Category: product.CategoryInsurance, Type: "Life"},
		client:  client.Client{DisplayName: "John Doe", FirstName: "John", LastName: "Doe"},
		company: company.InsuranceCompany{Name: "Test Insurance Co"},
	}
	require.NoError(t, db.Create(&s.agent).Error)
	require.NoError(t, db.Create(&s.product).Error)
	require.NoError(t, db.Create(&s.client).Error)
	require.NoError(t, db.Create(&s.company).Error)
	return s
}

func seedAgreement(t *testing.T, db *gorm.DB, s seed, structures ...agreement.CommissionStructure) agreement.Agreement {
	t.Helper()
	ag := agreement.Agreement{
		AgentID:              s.agent.ID,
		CompanyID:            s.company.ID,
		StartDate:            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:               agreement.StatusActive,
		CommissionStructures: structures,
	}
	require.NoError(t, db.Create(&ag).Error)
	return ag
}

func seedTransaction(t *testing.T, db *gorm.DB, s seed, amount decimal.Decimal) *transaction.Transaction {
	t.Helper()
	txn := transaction.Transaction{
		AgentID:    s.agent.ID,
		ClientID:   s.client.ID,
		ProductID:  s.product.ID,
		OccurredAt: time.Now(),
		Status:     transaction.StatusCompleted,
		Details:    transaction.Details{Amount: amount},
	}
	require.NoError(t, db.Create(&txn).Error)
	return &txn
}

func scopeStructure(productID uint, rate string, day int) agreement.CommissionStructure {
	return agreement.CommissionStructure{
		ProductID:      productID,
		CommissionType: agreement.CommissionTypeScope,
		Rate:           decimal.RequireFromString(rate),
		PaymentTerms:   agreement.PaymentTerms{PaymentType: agreement.PaymentTypeDayOfMonth, DayOfMonth: day},
	}
}

func recurringStructure(productID uint, rate string, day int) agreement.CommissionStructure {
	return agreement.CommissionStructure{
		ProductID:      productID,
		CommissionType: agreement.CommissionTypeRecurring,
		Rate:           decimal.RequireFromString(rate),
		PaymentTerms:   agreement.PaymentTerms{PaymentType: agreement.PaymentTypeDayOfMonth, DayOfMonth: day},
	}
}

func TestEvaluateScopeCommission(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)
	seedAgreement(t, db, s, scopeStructure(s.product.ID, "10.00", 15))
	txn := seedTransaction(t, db, s, decimal.NewFromInt(1000))

	ref := time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC)
	lines, err := ev.Evaluate(txn, ref)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "100.00", lines[0].Amount.StringFixed(2))
	assert.Equal(t, StatusPending, lines[0].Status)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), lines[0].ExpectedPaymentDate)

	var stored []Commission
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, txn.ID, stored[0].TransactionID)
}

func TestEvaluateScopeRoundsWithDecimalArithmetic(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)
	seedAgreement(t, db, s, scopeStructure(s.product.ID, "3.33", 15))
	txn := seedTransaction(t, db, s, decimal.RequireFromString("199.99"))

	lines, err := ev.Evaluate(txn, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	// 199.99 * 3.33 / 100 = 6.659667 -> 6.66
	assert.Equal(t, "6.66", lines[0].Amount.StringFixed(2))
}

func TestEvaluateRecurringIgnoresSaleAmount(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)
	seedAgreement(t, db, s, recurringStructure(s.product.ID, "250.00", 1))
	txn := seedTransaction(t, db, s, decimal.NewFromInt(999999))

	lines, err := ev.Evaluate(txn, time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "250.00", lines[0].Amount.StringFixed(2))
	assert.Equal(t, time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC), lines[0].ExpectedPaymentDate)
}

func TestEvaluateMultipleStructures(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)
	seedAgreement(t, db, s,
		scopeStructure(s.product.ID, "10.00", 15),
		recurringStructure(s.product.ID, "50.00", 20),
	)
	txn := seedTransaction(t, db, s, decimal.NewFromInt(1000))

	lines, err := ev.Evaluate(txn, time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "100.00", lines[0].Amount.StringFixed(2))
	assert.Equal(t, "50.00", lines[1].Amount.StringFixed(2))
}

func TestEvaluateNoMatchingStructures(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)
	txn := seedTransaction(t, db, s, decimal.NewFromInt(1000))

	lines, err := ev.Evaluate(txn, time.Now())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestEvaluateSkipsZeroAmounts(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)
	seedAgreement(t, db, s, scopeStructure(s.product.ID, "10.00", 15))
	txn := seedTransaction(t, db, s, decimal.Zero)

	lines, err := ev.Evaluate(txn, time.Now())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestEvaluateSkipsTypesWithoutRule(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)
	seedAgreement(t, db, s,
		agreement.CommissionStructure{
			ProductID:      s.product.ID,
			CommissionType: agreement.CommissionTypeTrail,
			Rate:           decimal.RequireFromString("5.00"),
			PaymentTerms:   agreement.PaymentTerms{PaymentType: agreement.PaymentTypeDayOfMonth, DayOfMonth: 10},
		},
		scopeStructure(s.product.ID, "10.00", 15),
	)
	txn := seedTransaction(t, db, s, decimal.NewFromInt(1000))

	lines, err := ev.Evaluate(txn, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "100.00", lines[0].Amount.StringFixed(2))
}

func TestEvaluateIsIdempotent(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)
	seedAgreement(t, db, s, scopeStructure(s.product.ID, "10.00", 15))
	txn := seedTransaction(t, db, s, decimal.NewFromInt(1000))

	ref := time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := ev.Evaluate(txn, ref)
	require.NoError(t, err)
	_, err = ev.Evaluate(txn, ref)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&Commission{}).Where("transaction_id = ?", txn.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMatcherScopingAndOrder(t *testing.T) {
	db, ev := setupEvaluatorTest(t)
	s := seedBase(t, db)

	otherAgent := agent.Agent{Username: "otheragent", PasswordHash: "x"}
	require.NoError(t, db.Create(&otherAgent).Error)
	otherProduct := product.Product{Name: "Pension Plan", Category: product.CategoryPension}
	require.NoError(t, db.Create(&otherProduct).Error)

	// two structures for our agent and product, plus noise
	seedAgreement(t, db, s,
		scopeStructure(s.product.ID, "10.00", 15),
		recurringStructure(s.product.ID, "25.00", 20),
		scopeStructure(otherProduct.ID, "99.00", 1),
	)
	otherAg := agreement.Agreement{
		AgentID:              otherAgent.ID,
		CompanyID:            s.company.ID,
		StartDate:            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:               agreement.StatusActive,
		CommissionStructures: []agreement.CommissionStructure{scopeStructure(s.product.ID, "50.00", 5)},
	}
	require.NoError(t, db.Create(&otherAg).Error)

	txn := seedTransaction(t, db, s, decimal.NewFromInt(1000))

	first, err := ev.Matcher.Match(txn)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, agreement.CommissionTypeScope, first[0].CommissionType)
	assert.Equal(t, agreement.CommissionTypeRecurring, first[1].CommissionType)

	// identical inputs yield the identical candidate set
	second, err := ev.Matcher.Match(txn)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
}
