package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validJSON = `{"client_name":"John Doe","product_name":"Life Insurance","product_category":"INSURANCE","product_type":"Life","amount":5000.00}`

func TestParseExtractionPlainJSON(t *testing.T) {
	f, ok := parseExtraction(validJSON)
	assert.True(t, ok)
	assert.Equal(t, "John Doe", f.ClientName)
	assert.Equal(t, "Life Insurance", f.ProductName)
	assert.Equal(t, "INSURANCE", f.ProductCategory)
	assert.Equal(t, "Life", f.ProductType)
	assert.Equal(t, "5000.00", f.Amount.StringFixed(2))
}

func TestParseExtractionFencedJSON(t *testing.T) {
	content := "Here is the extracted information:\n```json\n" + validJSON + "\n```\nLet me know if you need anything else."
	f, ok := parseExtraction(content)
	assert.True(t, ok)
	assert.Equal(t, "John Doe", f.ClientName)
	assert.Equal(t, "5000.00", f.Amount.StringFixed(2))
}

func TestParseExtractionFenceWithoutLanguage(t *testing.T) {
	content := "```\n" + validJSON + "\n```"
	f, ok := parseExtraction(content)
	assert.True(t, ok)
	assert.Equal(t, "Life Insurance", f.ProductName)
}

func TestParseExtractionGarbageFallsBackToSentinel(t *testing.T) {
	f, ok := parseExtraction("I could not find any of the requested fields in the text.")
	assert.False(t, ok)
	assert.Equal(t, Sentinel(), f)
	assert.Equal(t, "Unknown", f.ClientName)
	assert.True(t, f.Amount.IsZero())
}

func TestParseExtractionQuotedAmount(t *testing.T) {
	f, ok := parseExtraction(`{"client_name":"Jane","product_name":"Pension Plan","amount":"1234.50"}`)
	assert.True(t, ok)
	assert.Equal(t, "1234.50", f.Amount.StringFixed(2))
}
