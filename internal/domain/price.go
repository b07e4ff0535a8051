package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	minPriceValue = decimal.RequireFromString("0.01")
	maxPriceValue = decimal.RequireFromString("999999.99")
)

// Price is a product's base price together with its VAT and an optional
// discount. Final prices are derived, never stored.
type Price struct {
	value    decimal.Decimal
	vat      VAT
	discount *Discount
}

// NewPrice validates the base value: two decimal places, between 0.01 and
// 999,999.99 inclusive. The discount may be nil.
func NewPrice(value decimal.Decimal, vat VAT, discount *Discount) (Price, error) {
	if err := validatePriceValue(value); err != nil {
		return Price{}, err
	}
	return Price{value: value, vat: vat, discount: discount}, nil
}

func validatePriceValue(value decimal.Decimal) error {
	if value.LessThan(minPriceValue) || value.GreaterThan(maxPriceValue) {
		return invalid("price.value", "must be between 0.01 and 999999.99, got %s", value)
	}
	if hasMoreDecimalPlacesThan(value, 2) {
		return invalid("price.value", "must have at most 2 decimal places, got %s", value)
	}
	return nil
}

// Calculate returns the final price: the discount (when present) applied to
// the base value, then VAT added, rounded half-even to two decimal places.
func (p Price) Calculate() decimal.Decimal {
	base := p.value
	if p.discount != nil {
		base = base.Sub(base.Mul(p.discount.rate))
	}
	return p.addVAT(base)
}

// CalculateWithoutDiscount returns the final price ignoring any discount.
func (p Price) CalculateWithoutDiscount() decimal.Decimal {
	return p.addVAT(p.value)
}

func (p Price) addVAT(base decimal.Decimal) decimal.Decimal {
	return base.Add(base.Mul(p.vat.rate)).RoundBank(2)
}

func (p Price) Value() decimal.Decimal { return p.value }

func (p Price) VAT() VAT { return p.vat }

func (p Price) VATID() uuid.UUID { return p.vat.id }

func (p Price) VATRate() decimal.Decimal { return p.vat.rate }

// Discount returns the attached discount, or nil when there is none.
func (p Price) Discount() *Discount { return p.discount }

// DiscountID returns nil when no discount is attached; that is not an error.
func (p Price) DiscountID() *uuid.UUID {
	if p.discount == nil {
		return nil
	}
	id := p.discount.id
	return &id
}

// DiscountRate returns nil when no discount is attached.
func (p Price) DiscountRate() *decimal.Decimal {
	if p.discount == nil {
		return nil
	}
	rate := p.discount.rate
	return &rate
}
