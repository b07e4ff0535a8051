package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PhotoURL holds the three rendered sizes of a product photo.
type PhotoURL struct {
	Thumbnail string
	Medium    string
	Large     string
}

// ProductParams carries everything needed to construct a Product. Optional
// fields are pointers or empty strings.
type ProductParams struct {
	ID              uuid.UUID
	EAN             EAN13
	Name            string
	Description     string
	Price           Price
	Quantity        int
	CreationDate    time.Time
	Dimensions      *Dimensions
	Color           string
	Material        string
	CountryOfOrigin string
	Warranty        int
	Category        *TerminalLevelCategory
	// Rating is the persisted aggregate rating, used only when Reviews is
	// empty (e.g. a fetch that skipped loading reviews). Loaded reviews
	// always win: the rating is then derived from them.
	Rating   *Rating
	Reviews  []Review
	PhotoURL *PhotoURL
	Vendor   *Vendor
}

// Product is the aggregate root of the catalog. All field mutation goes
// through setters that re-validate, and the rating is recomputed on every
// review mutation so it is never stale.
type Product struct {
	id              uuid.UUID
	ean             EAN13
	name            string
	description     string
	price           Price
	quantity        int
	creationDate    time.Time
	dimensions      *Dimensions
	color           string
	material        string
	countryOfOrigin string
	warranty        int
	category        *TerminalLevelCategory
	rating          *Rating
	reviews         map[uuid.UUID]Review
	photoURL        *PhotoURL
	vendor          *Vendor
}

// NewProduct validates every field and derives the initial rating from the
// given reviews.
func NewProduct(p ProductParams) (*Product, error) {
	if len(p.Name) < 1 || len(p.Name) > 50 {
		return nil, invalid("product.name", "must be 1 to 50 characters, got %d", len(p.Name))
	}
	if len(p.Description) > 3000 {
		return nil, invalid("product.description", "must be at most 3000 characters, got %d", len(p.Description))
	}
	if p.Quantity < 0 || p.Quantity > 1_000_000 {
		return nil, invalid("product.quantity", "must be between 0 and 1000000, got %d", p.Quantity)
	}
	if p.CreationDate.Location() != time.UTC {
		return nil, invalid("product.creation_date", "must have UTC timezone")
	}
	if p.CreationDate.After(time.Now().UTC()) {
		return nil, invalid("product.creation_date", "must not be a future date")
	}
	if len(p.Color) > 30 {
		return nil, invalid("product.color", "must be at most 30 characters, got %d", len(p.Color))
	}
	if len(p.Material) > 30 {
		return nil, invalid("product.material", "must be at most 30 characters, got %d", len(p.Material))
	}
	if len(p.CountryOfOrigin) < 1 || len(p.CountryOfOrigin) > 60 {
		return nil, invalid("product.country_of_origin", "must be 1 to 60 characters, got %d", len(p.CountryOfOrigin))
	}
	if p.Warranty < 0 || p.Warranty > 10 {
		return nil, invalid("product.warranty", "must be between 0 and 10 years, got %d", p.Warranty)
	}
	if p.Category == nil {
		return nil, fmt.Errorf("product %s has no category: %w", p.ID, ErrIncompleteAggregate)
	}
	if p.Vendor == nil {
		return nil, fmt.Errorf("product %s has no vendor: %w", p.ID, ErrIncompleteAggregate)
	}

	reviews := make(map[uuid.UUID]Review, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews[r.id] = r
	}

	product := &Product{
		id:              p.ID,
		ean:             p.EAN,
		name:            p.Name,
		description:     p.Description,
		price:           p.Price,
		quantity:        p.Quantity,
		creationDate:    p.CreationDate,
		dimensions:      p.Dimensions,
		color:           strings.ToLower(p.Color),
		material:        strings.ToLower(p.Material),
		countryOfOrigin: p.CountryOfOrigin,
		warranty:        p.Warranty,
		category:        p.Category,
		reviews:         reviews,
		photoURL:        p.PhotoURL,
		vendor:          p.Vendor,
	}
	product.rating = product.CalculateRating()
	if product.rating == nil {
		product.rating = p.Rating
	}
	return product, nil
}

func (p *Product) ID() uuid.UUID           { return p.id }
func (p *Product) IDHex() string           { return HexID(p.id) }
func (p *Product) EAN() EAN13              { return p.ean }
func (p *Product) Name() string            { return p.name }
func (p *Product) Description() string     { return p.description }
func (p *Product) Quantity() int           { return p.quantity }
func (p *Product) InStock() bool           { return p.quantity > 0 }
func (p *Product) CreationDate() time.Time { return p.creationDate }
func (p *Product) Color() string           { return p.color }
func (p *Product) Material() string        { return p.material }
func (p *Product) CountryOfOrigin() string { return p.countryOfOrigin }
func (p *Product) Warranty() int           { return p.warranty }
func (p *Product) PhotoURL() *PhotoURL     { return p.photoURL }

// Pricing accessors. Derived values are pure functions of the current fields.

func (p *Product) Price() Price { return p.price }

func (p *Product) BasePrice() decimal.Decimal { return p.price.value }

// SetBasePrice re-validates the new base value before assignment.
func (p *Product) SetBasePrice(value decimal.Decimal) error {
	if err := validatePriceValue(value); err != nil {
		return err
	}
	p.price.value = value
	return nil
}

func (p *Product) FinalPrice() decimal.Decimal { return p.price.Calculate() }

func (p *Product) FinalPriceWithoutDiscount() decimal.Decimal {
	return p.price.CalculateWithoutDiscount()
}

func (p *Product) Discount() *Discount { return p.price.discount }

func (p *Product) SetDiscount(d *Discount) { p.price.discount = d }

func (p *Product) DiscountID() *uuid.UUID { return p.price.DiscountID() }

func (p *Product) DiscountRate() *decimal.Decimal { return p.price.DiscountRate() }

func (p *Product) VAT() VAT { return p.price.vat }

func (p *Product) SetVAT(v VAT) { p.price.vat = v }

func (p *Product) VATRate() decimal.Decimal { return p.price.vat.rate }

// Dimensions returns nil when the product has no recorded dimensions.
func (p *Product) Dimensions() *Dimensions { return p.dimensions }

func (p *Product) SetDimensions(height, width, length decimal.Decimal) error {
	d, err := NewDimensions(height, width, length)
	if err != nil {
		return err
	}
	p.dimensions = &d
	return nil
}

// Category accessors.

func (p *Product) Category() *TerminalLevelCategory { return p.category }

func (p *Product) SetCategory(c *TerminalLevelCategory) error {
	if c == nil {
		return fmt.Errorf("product %s category: %w", p.id, ErrIncompleteAggregate)
	}
	p.category = c
	return nil
}

func (p *Product) CategoryID() uuid.UUID { return p.category.id }

func (p *Product) TopCategory() (*TopLevelCategory, error) {
	return p.category.TopLevel()
}

// Vendor accessors.

func (p *Product) Vendor() *Vendor { return p.vendor }

func (p *Product) SetVendor(v *Vendor) error {
	if v == nil {
		return fmt.Errorf("product %s vendor: %w", p.id, ErrIncompleteAggregate)
	}
	p.vendor = v
	return nil
}

// Rating returns the aggregate client rating, or nil when the product has no
// reviews.
func (p *Product) Rating() *Rating { return p.rating }

// Reviews returns the product's reviews. Insertion order is irrelevant, so
// no ordering is guaranteed.
func (p *Product) Reviews() []Review {
	reviews := make([]Review, 0, len(p.reviews))
	for _, r := range p.reviews {
		reviews = append(reviews, r)
	}
	return reviews
}

// CalculateRating returns the arithmetic mean of all review ratings rounded
// half-even to one decimal place, or nil when there are no reviews.
func (p *Product) CalculateRating() *Rating {
	if len(p.reviews) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, r := range p.reviews {
		sum = sum.Add(r.rating.value)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(p.reviews))))
	rating := Rating{value: mean.RoundBank(1)}
	return &rating
}

// AddReview inserts the review keyed by its id; a duplicate id overwrites the
// earlier review. The rating is recomputed before returning.
func (p *Product) AddReview(review Review) {
	p.reviews[review.id] = review
	p.rating = p.CalculateRating()
}

// DeleteReview removes the review with the given id and recomputes the
// rating. Deleting an absent id fails with ErrReviewNotFound and leaves the
// rating unchanged.
func (p *Product) DeleteReview(id uuid.UUID) (Review, error) {
	review, ok := p.reviews[id]
	if !ok {
		return Review{}, fmt.Errorf("no review with id %s on product %s: %w", id, p.id, ErrReviewNotFound)
	}
	delete(p.reviews, id)
	p.rating = p.CalculateRating()
	return review, nil
}
