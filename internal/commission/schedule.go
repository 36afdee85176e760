package commission

import (
	"time"

	"github.com/polisure/commission-api/internal/agreement"
)

// ResolveExpectedPaymentDate computes the next valid payment date for the
// given terms relative to reference, which is truncated to a calendar date.
//
// DAY_OF_MONTH terms pay on day d of the reference month when that day has
// not passed yet, otherwise on day d of the following month. The next month
// is found by stepping 4 days past the 28th, which lands inside it for every
// month length. A d larger than the target month (31 in April, 29-31 in
// February) clamps to the month's last day.
//
// SPECIFIC_DATE terms are annual: a date not yet reached is returned as-is, a
// past date rolls to next year's occurrence. Feb 29 rolling into a non-leap
// year clamps to Feb 28.
func ResolveExpectedPaymentDate(terms agreement.PaymentTerms, reference time.Time) time.Time {
	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)

	if terms.PaymentType == agreement.PaymentTypeDayOfMonth {
		return resolveDayOfMonth(terms.DayOfMonth, ref)
	}
	return resolveSpecificDate(*terms.SpecificDate, ref)
}

func resolveDayOfMonth(day int, ref time.Time) time.Time {
	if ref.Day() <= day && day <= daysIn(ref.Year(), ref.Month()) {
		return time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, time.UTC)
	}

	next := time.Date(ref.Year(), ref.Month(), 28, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 4)
	d := day
	if limit := daysIn(next.Year(), next.Month()); d > limit {
		d = limit
	}
	return time.Date(next.Year(), next.Month(), d, 0, 0, 0, 0, time.UTC)
}

func resolveSpecificDate(s time.Time, ref time.Time) time.Time {
	due := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	if !due.Before(ref) {
		return due
	}

	year := due.Year() + 1
	d := due.Day()
	if d > daysIn(year, due.Month()) {
		d = daysIn(year, due.Month()) // Feb 29 -> Feb 28
	}
	return time.Date(year, due.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
