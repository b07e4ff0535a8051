package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var maxDimension = decimal.NewFromInt(100_000)

// Dimensions holds a product's height, width and length in millimetres,
// each kept at one decimal place.
type Dimensions struct {
	height decimal.Decimal
	width  decimal.Decimal
	length decimal.Decimal
}

// NewDimensions validates that every side is greater than 0 and less than
// 100,000, then rounds each to one decimal place.
func NewDimensions(height, width, length decimal.Decimal) (Dimensions, error) {
	for _, side := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"dimensions.height", height},
		{"dimensions.width", width},
		{"dimensions.length", length},
	} {
		if !side.value.IsPositive() || side.value.GreaterThanOrEqual(maxDimension) {
			return Dimensions{}, invalid(side.name, "must be greater than 0 and less than 100000, got %s", side.value)
		}
	}
	return Dimensions{
		height: height.RoundBank(1),
		width:  width.RoundBank(1),
		length: length.RoundBank(1),
	}, nil
}

func (d Dimensions) Height() decimal.Decimal { return d.height }
func (d Dimensions) Width() decimal.Decimal  { return d.width }
func (d Dimensions) Length() decimal.Decimal { return d.length }

func (d Dimensions) String() string {
	return fmt.Sprintf("%s X %s X %s", d.height.StringFixed(1), d.width.StringFixed(1), d.length.StringFixed(1))
}
