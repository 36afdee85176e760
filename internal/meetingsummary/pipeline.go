package meetingsummary

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/client"
	"github.com/polisure/commission-api/internal/extractor"
	"github.com/polisure/commission-api/internal/product"
	"github.com/polisure/commission-api/internal/transaction"
)

// Extractor is the text-to-fields collaborator. Implementations never fail;
// they degrade to the sentinel mapping instead.
type Extractor interface {
	Extract(ctx context.Context, content string) extractor.Fields
}

// Pipeline orchestrates ingestion: extract, validate, upsert product and
// client by natural key, create the transaction.
type Pipeline struct {
	DB        *gorm.DB
	Extractor Extractor
	Logger    *zap.Logger

	summaries *Repository
	products  *product.Repository
	clients   *client.Repository
}

func NewPipeline(db *gorm.DB, ex Extractor, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		DB:        db,
		Extractor: ex,
		Logger:    logger.Named("ingestion"),
		summaries: NewRepository(db),
		products:  product.NewRepository(db),
		clients:   client.NewRepository(db),
	}
}

// Process ingests one block of meeting notes for an agent. A summary row is
// always written: SUCCESS with a new transaction when the extracted fields
// are complete, FAILED with no transaction otherwise. Missing fields are a
// business outcome, not an error; the error return covers storage failures
// only.
func (p *Pipeline) Process(ctx context.Context, agentID uint, content string) (*MeetingSummary, *transaction.Transaction, error) {
	fields := p.Extractor.Extract(ctx, content)

	if fields.ClientName == "" || fields.ProductName == "" || fields.Amount.Sign() <= 0 {
		p.Logger.Info("ingestion rejected: incomplete extraction",
			zap.Uint("agentId", agentID),
			zap.String("clientName", fields.ClientName),
			zap.String("productName", fields.ProductName))

		summary := MeetingSummary{AgentID: agentID, Content: content, ProcessedStatus: StatusFailed}
		if err := p.summaries.Create(p.DB, &summary); err != nil {
			return nil, nil, err
		}
		return &summary, nil, nil
	}

	category := fields.ProductCategory
	if !product.ValidCategory(category) {
		category = product.CategoryInsurance
	}

	var (
		summary MeetingSummary
		txn     transaction.Transaction
	)
	err := p.DB.Transaction(func(tx *gorm.DB) error {
		summary = MeetingSummary{AgentID: agentID, Content: content, ProcessedStatus: StatusSuccess}
		if err := p.summaries.Create(tx, &summary); err != nil {
			return err
		}

		prod, err := p.products.GetOrCreateByName(tx, fields.ProductName, category, fields.ProductType)
		if err != nil {
			return err
		}
		cli, err := p.clients.GetOrCreateByDisplayName(tx, fields.ClientName)
		if err != nil {
			return err
		}

		txn = transaction.Transaction{
			AgentID:    agentID,
			ClientID:   cli.ID,
			ProductID:  prod.ID,
			OccurredAt: time.Now(),
			Status:     transaction.StatusCompleted,
			Details:    transaction.Details{Amount: fields.Amount.Round(2)},
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, nil, err
	}

	created, err := transaction.NewRepository(p.DB).FindByID(txn.ID)
	if err != nil {
		return nil, nil, err
	}
	return &summary, created, nil
}
