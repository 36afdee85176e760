package commission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/polisure/commission-api/internal/agreement"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayOfMonth(d int) agreement.PaymentTerms {
	return agreement.PaymentTerms{PaymentType: agreement.PaymentTypeDayOfMonth, DayOfMonth: d}
}

func specificDate(t time.Time) agreement.PaymentTerms {
	return agreement.PaymentTerms{PaymentType: agreement.PaymentTypeSpecificDate, SpecificDate: &t}
}

func TestResolveDayOfMonth(t *testing.T) {
	tests := []struct {
		name  string
		terms agreement.PaymentTerms
		ref   time.Time
		want  time.Time
	}{
		{"day not yet passed stays in month", dayOfMonth(15), date(2023, time.March, 10), date(2023, time.March, 15)},
		{"reference day equal to due day", dayOfMonth(15), date(2023, time.March, 15), date(2023, time.March, 15)},
		{"day already passed rolls to next month", dayOfMonth(15), date(2023, time.March, 20), date(2023, time.April, 15)},
		{"rollover across year boundary", dayOfMonth(5), date(2023, time.December, 20), date(2024, time.January, 5)},
		{"day 31 in a 30-day month rolls forward", dayOfMonth(31), date(2023, time.April, 10), date(2023, time.May, 31)},
		{"day clamps to short next month", dayOfMonth(30), date(2023, time.January, 31), date(2023, time.February, 28)},
		{"day 1 after the 1st rolls forward", dayOfMonth(1), date(2023, time.June, 2), date(2023, time.July, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveExpectedPaymentDate(tc.terms, tc.ref)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveSpecificDate(t *testing.T) {
	tests := []struct {
		name  string
		terms agreement.PaymentTerms
		ref   time.Time
		want  time.Time
	}{
		{"future date unchanged", specificDate(date(2023, time.September, 1)), date(2023, time.March, 10), date(2023, time.September, 1)},
		{"today unchanged", specificDate(date(2023, time.March, 10)), date(2023, time.March, 10), date(2023, time.March, 10)},
		{"past date rolls a year", specificDate(date(2023, time.January, 5)), date(2023, time.March, 10), date(2024, time.January, 5)},
		{"feb 29 clamps in non-leap year", specificDate(date(2024, time.February, 29)), date(2024, time.March, 1), date(2025, time.February, 28)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveExpectedPaymentDate(tc.terms, tc.ref)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveIgnoresTimeOfDay(t *testing.T) {
	ref := time.Date(2023, time.March, 10, 23, 59, 58, 0, time.UTC)
	got := ResolveExpectedPaymentDate(dayOfMonth(15), ref)
	assert.Equal(t, date(2023, time.March, 15), got)
}
