package meetingsummary

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/agent"
	"github.com/polisure/commission-api/internal/client"
	"github.com/polisure/commission-api/internal/extractor"
	"github.com/polisure/commission-api/internal/product"
	"github.com/polisure/commission-api/internal/transaction"
)

type stubExtractor struct {
	fields extractor.Fields
}

func (s stubExtractor) Extract(_ context.Context, _ string) extractor.Fields {
	return s.fields
}

func setupPipelineTest(t *testing.T, fields extractor.Fields) (*gorm.DB, *Pipeline, uint) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&agent.Agent{},
		&product.Product{},
		&client.Client{},
		&transaction.Transaction{},
		&MeetingSummary{},
	))

	a := agent.Agent{Username: "testagent", PasswordHash: "x"}
	require.NoError(t, db.Create(&a).Error)

	return db, NewPipeline(db, stubExtractor{fields: fields}, zap.NewNop()), a.ID
}

func extracted() extractor.Fields {
	return extractor.Fields{
		ClientName:      "John Doe",
		ProductName:     "Life Insurance",
		ProductCategory: "INSURANCE",
		ProductType:     "Life",
		Amount:          decimal.RequireFromString("5000.00"),
	}
}

func TestProcessCreatesTransactionFromExtractedFields(t *testing.T) {
	db, p, agentID := setupPipelineTest(t, extracted())

	summary, txn, err := p.Process(context.Background(), agentID, "Had a great meeting with John Doe today...")
	require.NoError(t, err)

	require.NotNil(t, summary)
	assert.Equal(t, StatusSuccess, summary.ProcessedStatus)
	assert.Equal(t, agentID, summary.AgentID)

	require.NotNil(t, txn)
	assert.Equal(t, "John Doe", txn.Client.DisplayName)
	assert.Equal(t, "John", txn.Client.FirstName)
	assert.Equal(t, "Doe", txn.Client.LastName)
	assert.Equal(t, "Life Insurance", txn.Product.Name)
	assert.Equal(t, product.CategoryInsurance, txn.Product.Category)
	assert.Equal(t, "Life", txn.Product.Type)
	assert.Equal(t, "5000.00", txn.Details.Amount.StringFixed(2))

	var count int64
	require.NoError(t, db.Model(&MeetingSummary{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProcessSentinelExtractionFails(t *testing.T) {
	db, p, agentID := setupPipelineTest(t, extractor.Sentinel())

	summary, txn, err := p.Process(context.Background(), agentID, "gibberish the model could not parse")
	require.NoError(t, err)

	require.NotNil(t, summary)
	assert.Equal(t, StatusFailed, summary.ProcessedStatus)
	assert.Nil(t, txn)

	// the failure is recorded, nothing else is created
	var summaries, transactions int64
	require.NoError(t, db.Model(&MeetingSummary{}).Count(&summaries).Error)
	require.NoError(t, db.Model(&transaction.Transaction{}).Count(&transactions).Error)
	assert.EqualValues(t, 1, summaries)
	assert.EqualValues(t, 0, transactions)
}

func TestProcessMissingAmountFails(t *testing.T) {
	fields := extracted()
	fields.Amount = decimal.Zero
	_, p, agentID := setupPipelineTest(t, fields)

	summary, txn, err := p.Process(context.Background(), agentID, "meeting notes without a number")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, summary.ProcessedStatus)
	assert.Nil(t, txn)
}

func TestProcessReusesProductAndClient(t *testing.T) {
	db, p, agentID := setupPipelineTest(t, extracted())

	_, first, err := p.Process(context.Background(), agentID, "first meeting")
	require.NoError(t, err)
	_, second, err := p.Process(context.Background(), agentID, "second meeting")
	require.NoError(t, err)

	assert.Equal(t, first.ProductID, second.ProductID)
	assert.Equal(t, first.ClientID, second.ClientID)

	var products, clients int64
	require.NoError(t, db.Model(&product.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&client.Client{}).Count(&clients).Error)
	assert.EqualValues(t, 1, products)
	assert.EqualValues(t, 1, clients)
}

func TestProcessRefreshesProductType(t *testing.T) {
	db, p, agentID := setupPipelineTest(t, extracted())
	_, _, err := p.Process(context.Background(), agentID, "first meeting")
	require.NoError(t, err)

	changed := extracted()
	changed.ProductType = "Whole Life"
	p.Extractor = stubExtractor{fields: changed}

	_, txn, err := p.Process(context.Background(), agentID, "follow-up meeting")
	require.NoError(t, err)
	assert.Equal(t, "Whole Life", txn.Product.Type)

	var stored product.Product
	require.NoError(t, db.First(&stored, txn.ProductID).Error)
	assert.Equal(t, "Whole Life", stored.Type)
	// category set at creation is kept
	assert.Equal(t, product.CategoryInsurance, stored.Category)
}

func TestProcessUnknownCategoryDefaultsToInsurance(t *testing.T) {
	fields := extracted()
	fields.ProductCategory = "INVESTMENT"
	_, p, agentID := setupPipelineTest(t, fields)

	_, txn, err := p.Process(context.Background(), agentID, "meeting")
	require.NoError(t, err)
	assert.Equal(t, product.CategoryInsurance, txn.Product.Category)
}
