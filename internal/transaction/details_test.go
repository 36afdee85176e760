package transaction

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailsUnmarshalKeepsExtraKeys(t *testing.T) {
	var d Details
	require.NoError(t, json.Unmarshal([]byte(`{"amount":1000,"policyNumber":"P-123","riders":2}`), &d))

	assert.Equal(t, "1000.00", d.Amount.StringFixed(2))
	assert.Equal(t, "P-123", d.Extra["policyNumber"])
	assert.EqualValues(t, 2, d.Extra["riders"])
}

func TestDetailsMissingAmountDefaultsToZero(t *testing.T) {
	var d Details
	require.NoError(t, json.Unmarshal([]byte(`{"note":"no amount discussed"}`), &d))
	assert.True(t, d.Amount.IsZero())
}

func TestDetailsRejectsNonNumericAmount(t *testing.T) {
	var d Details
	err := json.Unmarshal([]byte(`{"amount":"a lot"}`), &d)
	assert.Error(t, err)
}

func TestDetailsRoundTrip(t *testing.T) {
	in := Details{
		Amount: decimal.RequireFromString("5000.50"),
		Extra:  map[string]interface{}{"policyNumber": "P-123"},
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Details
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, in.Amount.Equal(out.Amount))
	assert.Equal(t, in.Extra["policyNumber"], out.Extra["policyNumber"])
}
