package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VAT is a named value-added tax rate. Immutable after creation; a product's
// tax is changed by replacing the whole VAT value through Product.SetVAT.
type VAT struct {
	id   uuid.UUID
	name string
	rate decimal.Decimal
}

// NewVAT validates the rate (two decimal places, 0 to 1 inclusive) and the
// name (2 to 20 characters).
func NewVAT(id uuid.UUID, name string, rate decimal.Decimal) (VAT, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return VAT{}, invalid("vat.rate", "must be between 0 and 1, got %s", rate)
	}
	if hasMoreDecimalPlacesThan(rate, 2) {
		return VAT{}, invalid("vat.rate", "must have at most 2 decimal places, got %s", rate)
	}
	if len(name) < 2 || len(name) > 20 {
		return VAT{}, invalid("vat.name", "must be 2 to 20 characters, got %d", len(name))
	}
	return VAT{id: id, name: name, rate: rate}, nil
}

func (v VAT) ID() uuid.UUID          { return v.id }
func (v VAT) Name() string           { return v.name }
func (v VAT) Rate() decimal.Decimal  { return v.rate }
