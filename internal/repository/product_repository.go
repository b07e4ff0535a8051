package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-wide filter bounds. Supplied ranges outside these are silently
// clamped to the nearest bound rather than rejected.
var (
	MinPrice  = decimal.RequireFromString("0.01")
	MaxPrice  = decimal.NewFromInt(1_000_000)
	MinRating = decimal.Zero
	MaxRating = decimal.NewFromInt(5)
)

// ProductQuery is a loosely-bounded filter request for products within a
// terminal category.
type ProductQuery struct {
	CategoryID        uuid.UUID
	PriceMin          decimal.Decimal
	PriceMax          decimal.Decimal
	RatingMin         decimal.Decimal
	RatingMax         decimal.Decimal
	WithDiscountsOnly bool
}

// NewProductQuery returns a query over the full price and rating ranges.
func NewProductQuery(categoryID uuid.UUID) ProductQuery {
	return ProductQuery{
		CategoryID: categoryID,
		PriceMin:   MinPrice,
		PriceMax:   MaxPrice,
		RatingMin:  MinRating,
		RatingMax:  MaxRating,
	}
}

// Normalize clamps any out-of-bounds range value to the nearest domain-wide
// bound. A caller requesting price_min=-1 gets the same query as one that
// omitted price_min entirely.
func (q ProductQuery) Normalize() ProductQuery {
	if q.PriceMin.LessThan(MinPrice) || q.PriceMin.GreaterThan(MaxPrice) {
		q.PriceMin = MinPrice
	}
	if q.PriceMax.LessThan(MinPrice) || q.PriceMax.GreaterThan(MaxPrice) {
		q.PriceMax = MaxPrice
	}
	if q.RatingMin.LessThan(MinRating) || q.RatingMin.GreaterThan(MaxRating) {
		q.RatingMin = MinRating
	}
	if q.RatingMax.LessThan(MinRating) || q.RatingMax.GreaterThan(MaxRating) {
		q.RatingMax = MaxRating
	}
	return q
}

// ProductRepository defines read access to persisted products.
type ProductRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID, withReviews bool) (*domain.Product, error)
	GetProducts(ctx context.Context, query ProductQuery) ([]*domain.Product, error)
	GetProductsOrderedByRating(ctx context.Context, query ProductQuery, descending bool) ([]*domain.Product, error)
	GetProductsOrderedByPrice(ctx context.Context, query ProductQuery, descending bool) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// productColumns is the join shared by every product read. Relationships are
// LEFT-joined on purpose: a product whose vat/category/vendor row is gone
// must surface as an incomplete aggregate, not silently drop out of results.
const productColumns = `
	SELECT p.id, p.ean, p.name, p.description, p.base_price, p.quantity,
	       p.creation_date, p.height, p.width, p.length, p.color, p.material,
	       p.country_of_origin, p.warranty, p.rating,
	       p.thumbnail_photo_url, p.medium_size_photo_url, p.large_size_photo_url,
	       v.id, v.name, v.rate,
	       d.id, d.name, d.rate, d.creation_date, d.expiry_date,
	       tc.id, tc.name, tc.description,
	       mc.id, mc.name, mc.description,
	       top.id, top.name, top.description,
	       ven.id, ven.name, ven.description, ven.logo_url
	FROM product p
	LEFT JOIN vat v ON v.id = p.vat_id
	LEFT JOIN product_discount d ON d.id = p.discount_id
	LEFT JOIN terminal_level_category tc ON tc.id = p.category_id
	LEFT JOIN mid_level_category mc ON mc.id = tc.parent_id
	LEFT JOIN top_level_category top ON top.id = mc.parent_id
	LEFT JOIN vendor ven ON ven.id = p.vendor_id
`

type productRow struct {
	id              []byte
	ean             string
	name            string
	description     sql.NullString
	basePrice       decimal.Decimal
	quantity        int
	creationDate    time.Time
	height          decimal.NullDecimal
	width           decimal.NullDecimal
	length          decimal.NullDecimal
	color           sql.NullString
	material        sql.NullString
	countryOfOrigin string
	warranty        int
	rating          decimal.NullDecimal
	thumbnailURL    sql.NullString
	mediumURL       sql.NullString
	largeURL        sql.NullString

	vatID   []byte
	vatName sql.NullString
	vatRate decimal.NullDecimal

	discountID      []byte
	discountName    sql.NullString
	discountRate    decimal.NullDecimal
	discountCreated sql.NullTime
	discountExpiry  sql.NullTime

	categoryID   []byte
	categoryName sql.NullString
	categoryDesc sql.NullString

	midID   []byte
	midName sql.NullString
	midDesc sql.NullString

	topID   []byte
	topName sql.NullString
	topDesc sql.NullString

	vendorID   []byte
	vendorName sql.NullString
	vendorDesc sql.NullString
	vendorLogo sql.NullString
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductRow(s rowScanner) (*productRow, error) {
	row := &productRow{}
	err := s.Scan(
		&row.id, &row.ean, &row.name, &row.description, &row.basePrice, &row.quantity,
		&row.creationDate, &row.height, &row.width, &row.length, &row.color, &row.material,
		&row.countryOfOrigin, &row.warranty, &row.rating,
		&row.thumbnailURL, &row.mediumURL, &row.largeURL,
		&row.vatID, &row.vatName, &row.vatRate,
		&row.discountID, &row.discountName, &row.discountRate, &row.discountCreated, &row.discountExpiry,
		&row.categoryID, &row.categoryName, &row.categoryDesc,
		&row.midID, &row.midName, &row.midDesc,
		&row.topID, &row.topName, &row.topDesc,
		&row.vendorID, &row.vendorName, &row.vendorDesc, &row.vendorLogo,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// toDomainProduct rebuilds the full aggregate from a joined row, enforcing
// every domain invariant on the way. A missing required relationship fails
// the whole conversion.
func (r *productRepository) toDomainProduct(row *productRow, reviews []domain.Review) (*domain.Product, error) {
	id, err := decodeID(row.id)
	if err != nil {
		return nil, err
	}

	if row.vatID == nil {
		return nil, fmt.Errorf("product %s references a missing vat: %w", id, domain.ErrIncompleteAggregate)
	}
	vatID, err := decodeID(row.vatID)
	if err != nil {
		return nil, err
	}
	vat, err := domain.NewVAT(vatID, row.vatName.String, row.vatRate.Decimal)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}

	var discount *domain.Discount
	if row.discountID != nil {
		discountID, err := decodeID(row.discountID)
		if err != nil {
			return nil, err
		}
		discount, err = domain.NewDiscount(
			discountID,
			row.discountName.String,
			row.discountRate.Decimal,
			row.discountCreated.Time.UTC(),
			row.discountExpiry.Time.UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
	}

	price, err := domain.NewPrice(row.basePrice, vat, discount)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}

	category, err := r.toDomainTerminalCategory(
		row.categoryID, row.categoryName, row.categoryDesc,
		row.midID, row.midName, row.midDesc,
		row.topID, row.topName, row.topDesc,
	)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}

	if row.vendorID == nil {
		return nil, fmt.Errorf("product %s references a missing vendor: %w", id, domain.ErrIncompleteAggregate)
	}
	vendorID, err := decodeID(row.vendorID)
	if err != nil {
		return nil, err
	}
	vendor, err := domain.NewVendor(vendorID, row.vendorName.String, row.vendorDesc.String, row.vendorLogo.String)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}

	ean, err := domain.NewEAN13(row.ean)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}

	var dimensions *domain.Dimensions
	if row.height.Valid && row.width.Valid && row.length.Valid {
		d, err := domain.NewDimensions(row.height.Decimal, row.width.Decimal, row.length.Decimal)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		dimensions = &d
	}

	var rating *domain.Rating
	if row.rating.Valid {
		v, err := domain.NewRating(row.rating.Decimal)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		rating = &v
	}

	var photoURL *domain.PhotoURL
	if row.thumbnailURL.Valid || row.mediumURL.Valid || row.largeURL.Valid {
		photoURL = &domain.PhotoURL{
			Thumbnail: row.thumbnailURL.String,
			Medium:    row.mediumURL.String,
			Large:     row.largeURL.String,
		}
	}

	return domain.NewProduct(domain.ProductParams{
		ID:              id,
		EAN:             ean,
		Name:            row.name,
		Description:     row.description.String,
		Price:           price,
		Quantity:        row.quantity,
		CreationDate:    row.creationDate.UTC(),
		Dimensions:      dimensions,
		Color:           row.color.String,
		Material:        row.material.String,
		CountryOfOrigin: row.countryOfOrigin,
		Warranty:        row.warranty,
		Category:        category,
		Rating:          rating,
		Reviews:         reviews,
		PhotoURL:        photoURL,
		Vendor:          vendor,
	})
}

func (r *productRepository) toDomainTerminalCategory(
	terminalID []byte, terminalName, terminalDesc sql.NullString,
	midID []byte, midName, midDesc sql.NullString,
	topID []byte, topName, topDesc sql.NullString,
) (*domain.TerminalLevelCategory, error) {
	if terminalID == nil || midID == nil || topID == nil {
		return nil, fmt.Errorf("category ancestry chain not fully loaded: %w", domain.ErrIncompleteAggregate)
	}
	tid, err := decodeID(topID)
	if err != nil {
		return nil, err
	}
	top, err := domain.NewTopLevelCategory(tid, topName.String, topDesc.String)
	if err != nil {
		return nil, err
	}
	mid, err := buildMidCategory(midID, midName, midDesc, top)
	if err != nil {
		return nil, err
	}
	cid, err := decodeID(terminalID)
	if err != nil {
		return nil, err
	}
	return domain.NewTerminalLevelCategory(cid, terminalName.String, terminalDesc.String, mid)
}

// GetProduct retrieves a single product aggregate, optionally with its
// reviews loaded.
func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID, withReviews bool) (*domain.Product, error) {
	query := productColumns + ` WHERE p.id = $1`

	row, err := scanProductRow(r.db.QueryRowContext(ctx, query, encodeID(id)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	var reviews []domain.Review
	if withReviews {
		reviews, err = fetchReviews(ctx, r.db, id)
		if err != nil {
			return nil, err
		}
	}

	return r.toDomainProduct(row, reviews)
}

// GetProducts retrieves the products of a terminal category within the given
// (clamped) price and rating ranges, in store order.
func (r *productRepository) GetProducts(ctx context.Context, query ProductQuery) ([]*domain.Product, error) {
	return r.getProducts(ctx, query, "")
}

// GetProductsOrderedByRating sorts by aggregate rating; ties keep store order.
func (r *productRepository) GetProductsOrderedByRating(ctx context.Context, query ProductQuery, descending bool) ([]*domain.Product, error) {
	return r.getProducts(ctx, query, orderClause("p.rating", descending))
}

// GetProductsOrderedByPrice sorts by base price; ties keep store order.
func (r *productRepository) GetProductsOrderedByPrice(ctx context.Context, query ProductQuery, descending bool) ([]*domain.Product, error) {
	return r.getProducts(ctx, query, orderClause("p.base_price", descending))
}

func orderClause(attr string, descending bool) string {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	// Secondary keys keep the sort stable across rows with equal attributes.
	return fmt.Sprintf(" ORDER BY %s %s, p.creation_date ASC, p.id ASC", attr, direction)
}

func (r *productRepository) getProducts(ctx context.Context, query ProductQuery, order string) ([]*domain.Product, error) {
	q := query.Normalize()

	sqlQuery := productColumns + `
	WHERE p.category_id = $1
	  AND p.base_price >= $2 AND p.base_price <= $3
	  AND p.rating >= $4 AND p.rating <= $5
`
	args := []interface{}{
		encodeID(q.CategoryID),
		q.PriceMin, q.PriceMax,
		q.RatingMin, q.RatingMax,
	}
	if q.WithDiscountsOnly {
		sqlQuery += " AND p.discount_id IS NOT NULL"
	}
	sqlQuery += order

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		row, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		product, err := r.toDomainProduct(row, nil)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
