package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount is a named price reduction with a validity window.
type Discount struct {
	id           uuid.UUID
	name         string
	rate         decimal.Decimal
	creationDate time.Time
	expiryDate   time.Time
}

// NewDiscount validates the rate (two decimal places, greater than 0 and at
// most 1), the name (at most 50 characters) and the date ordering: the
// creation date may not be in the future and the expiry date must follow it.
func NewDiscount(id uuid.UUID, name string, rate decimal.Decimal, creationDate, expiryDate time.Time) (*Discount, error) {
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, invalid("discount.rate", "must be greater than 0 and at most 1, got %s", rate)
	}
	if hasMoreDecimalPlacesThan(rate, 2) {
		return nil, invalid("discount.rate", "must have at most 2 decimal places, got %s", rate)
	}
	if len(name) > 50 {
		return nil, invalid("discount.name", "must be at most 50 characters, got %d", len(name))
	}
	if creationDate.After(time.Now().UTC()) {
		return nil, invalid("discount.creation_date", "must not be a future date")
	}
	if !expiryDate.After(creationDate) {
		return nil, invalid("discount.expiry_date", "must be greater than creation_date")
	}
	return &Discount{
		id:           id,
		name:         name,
		rate:         rate,
		creationDate: creationDate,
		expiryDate:   expiryDate,
	}, nil
}

func (d *Discount) ID() uuid.UUID           { return d.id }
func (d *Discount) Name() string            { return d.name }
func (d *Discount) Rate() decimal.Decimal   { return d.rate }
func (d *Discount) CreationDate() time.Time { return d.creationDate }
func (d *Discount) ExpiryDate() time.Time   { return d.expiryDate }
