// Package money holds the shared decimal conventions for the ledger: two
// decimal places of precision and a single epsilon used for every monetary
// comparison. All amounts in the system are shopspring decimals, never floats,
// so cent-level drift cannot accumulate across splits and settlements.
package money

import "github.com/shopspring/decimal"

// Epsilon is the tolerance below which two amounts are considered equal and a
// balance is considered settled. It absorbs the rounding residue left by
// dividing amounts to two decimal places.
var Epsilon = decimal.New(1, -2) // 0.01

// Places is the number of minor-unit decimal places for the ledger currency.
const Places int32 = 2

// Equal reports whether a and b are within Epsilon of each other.
func Equal(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Epsilon)
}

// IsZero reports whether d is within Epsilon of zero.
func IsZero(d decimal.Decimal) bool {
	return d.Abs().LessThan(Epsilon)
}

// Truncate cuts d down to the ledger's minor unit without rounding up.
func Truncate(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(Places)
}

// Round rounds d half-up to the ledger's minor unit.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}
