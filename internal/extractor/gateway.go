// Package extractor turns free-text meeting notes into structured sale
// fields via an OpenAI-compatible chat-completions endpoint (Groq).
//
// The gateway never fails: any transport or parse problem degrades to the
// sentinel mapping, which the ingestion pipeline then rejects as incomplete.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Fields is the extractor's fixed output contract.
type Fields struct {
	ClientName      string          `json:"client_name"`
	ProductName     string          `json:"product_name"`
	ProductCategory string          `json:"product_category"`
	ProductType     string          `json:"product_type"`
	Amount          decimal.Decimal `json:"amount"`
}

// Sentinel is the fallback mapping returned when extraction fails.
func Sentinel() Fields {
	return Fields{
		ClientName:      "Unknown",
		ProductName:     "Unknown",
		ProductCategory: "Unknown",
		ProductType:     "Unknown",
		Amount:          decimal.Zero,
	}
}

const defaultModel = "llama-3.1-8b-instant"

const promptTemplate = `Extract the following information from the meeting summary:
- Client Name
- Product Name
- Product Category (e.g., INSURANCE, PENSION, FINANCIAL)
- Product Type (e.g., Term, Whole Life, etc.)
- Amount

Meeting Summary:
%s

Please provide the extracted information in JSON format with the keys
client_name, product_name, product_category, product_type and amount.`

// Config for the Groq endpoint. BaseURL and Model default to Groq's
// OpenAI-compatible API and llama-3.1-8b-instant.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ConfigFromEnv reads GROQ_API_KEY, GROQ_BASE_URL and GROQ_MODEL.
func ConfigFromEnv() Config {
	return Config{
		APIKey:  os.Getenv("GROQ_API_KEY"),
		BaseURL: os.Getenv("GROQ_BASE_URL"),
		Model:   os.Getenv("GROQ_MODEL"),
	}
}

// Gateway is the LLM extraction client.
type Gateway struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewGateway(cfg Config, logger *zap.Logger) *Gateway {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Gateway{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger.Named("extractor"),
	}
}

// Extract runs the extraction prompt over the meeting text. It always
// returns a usable mapping; see the package comment.
func (g *Gateway) Extract(ctx context.Context, content string) Fields {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful assistant."},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, content)},
		},
	})
	if err != nil {
		g.logger.Error("extraction request failed", zap.Error(err))
		return Sentinel()
	}
	if len(resp.Choices) == 0 {
		g.logger.Warn("extraction returned no choices")
		return Sentinel()
	}

	fields, ok := parseExtraction(strings.TrimSpace(resp.Choices[0].Message.Content))
	if !ok {
		g.logger.Warn("extraction output was not parseable JSON, using sentinel")
	}
	return fields
}

// parseExtraction tries the raw content as JSON first, then the inside of a
// ```-fenced block, and finally gives up with the sentinel mapping.
func parseExtraction(s string) (Fields, bool) {
	var f Fields
	if err := json.Unmarshal([]byte(s), &f); err == nil {
		return f, true
	}

	parts := strings.Split(s, "```")
	if len(parts) >= 2 {
		block := strings.TrimSpace(parts[1])
		block = strings.TrimSpace(strings.TrimPrefix(block, "json"))
		var fenced Fields
		if err := json.Unmarshal([]byte(block), &fenced); err == nil {
			return fenced, true
		}
	}

	return Sentinel(), false
}
