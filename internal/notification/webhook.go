package notification

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notifier posts fire-and-forget alerts to an external webhook. Delivery
// failures are logged and never surfaced to the caller.
type Notifier struct {
	URL    string
	Logger *zap.Logger
}

func NewNotifier(url string, logger *zap.Logger) *Notifier {
	if url == "" {
		return nil
	}
	return &Notifier{URL: url, Logger: logger.Named("notifier")}
}

// CommissionsEvaluated announces that an evaluation produced payable lines.
func (n *Notifier) CommissionsEvaluated(transactionID uint, count int, total decimal.Decimal) {
	payload := map[string]interface{}{
		"message":       "commissions evaluated",
		"transactionId": transactionID,
		"lines":         count,
		"total":         total,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(n.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		n.Logger.Error("webhook delivery failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.Logger.Warn("webhook rejected", zap.Int("status", resp.StatusCode))
	}
}
