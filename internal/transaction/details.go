package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Details is the sale metadata blob. The amount is a first-class decimal
// field; any other keys ride along untyped in Extra. A missing amount
// deserializes to zero, which the evaluator treats as "nothing payable".
type Details struct {
	Amount decimal.Decimal
	Extra  map[string]interface{}
}

func (d Details) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(d.Extra)+1)
	for k, v := range d.Extra {
		m[k] = v
	}
	m["amount"] = d.Amount
	return json.Marshal(m)
}

func (d *Details) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	d.Amount = decimal.Zero
	if raw, ok := m["amount"]; ok {
		if err := json.Unmarshal(raw, &d.Amount); err != nil {
			return fmt.Errorf("details.amount must be numeric: %w", err)
		}
		delete(m, "amount")
	}

	d.Extra = nil
	if len(m) > 0 {
		d.Extra = make(map[string]interface{}, len(m))
		for k, raw := range m {
			var v interface{}
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			d.Extra[k] = v
		}
	}
	return nil
}
