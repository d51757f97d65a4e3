// Package money normalizes decimal monetary values to whole cents.
package money

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Normalize rounds a decimal amount to 2 fractional digits using
// round-half-up semantics: an exact half rounds away from zero
// (1.255 -> 1.26, -99.9999999 -> -100.00).
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToCents normalizes an amount and returns it as whole cents.
// "35.35" -> 3535, "-100" -> -10000.
func ToCents(d decimal.Decimal) int64 {
	return Normalize(d).Mul(decimal.NewFromInt(100)).IntPart()
}

// FromCents renders cents back as a 2-digit decimal, e.g. 3535 -> 35.35.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

// Amount is a decimal that unmarshals from either a JSON number or a
// numeric JSON string ("6.49" and 6.49 are both accepted).
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parsing amount: %w", err)
	}

	a.Decimal = d

	return nil
}
