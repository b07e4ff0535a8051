package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var ean13Pattern = regexp.MustCompile(`^\d{13}$`)

// EAN13 is a 13-digit European Article Number.
type EAN13 string

// NewEAN13 validates that v is composed of exactly 13 digits.
func NewEAN13(v string) (EAN13, error) {
	if !ean13Pattern.MatchString(v) {
		return "", invalid("ean", "must be composed of 13 digits, got %q", v)
	}
	return EAN13(v), nil
}

func (e EAN13) String() string { return string(e) }

var maxRating = decimal.NewFromInt(5)

// Rating is a client rating on the 0 to 5 scale, kept at one decimal place.
// Rounding is half-even, matching the money rounding used by Price.
type Rating struct {
	value decimal.Decimal
}

// NewRating validates the 0..5 range and rounds to one decimal place.
func NewRating(v decimal.Decimal) (Rating, error) {
	if v.IsNegative() || v.GreaterThan(maxRating) {
		return Rating{}, invalid("rating", "must be between 0 and 5, got %s", v)
	}
	return Rating{value: v.RoundBank(1)}, nil
}

func (r Rating) Decimal() decimal.Decimal { return r.value }

func (r Rating) String() string { return r.value.StringFixed(1) }

// hasMoreDecimalPlacesThan reports whether v carries more than n decimal
// places of precision.
func hasMoreDecimalPlacesThan(v decimal.Decimal, n int32) bool {
	return !v.Equal(v.Truncate(n))
}
