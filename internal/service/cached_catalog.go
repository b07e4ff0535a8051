package service

import (
	"context"
	"strconv"

	"catalog-api/internal/cache"
	"catalog-api/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductsRequest is the loosely-bounded listing request as it arrives from
// the transport layer. Range values outside the domain bounds are clamped
// downstream; order_by and order_type must name known values.
type ProductsRequest struct {
	CategoryID        string
	PriceMin          decimal.Decimal
	PriceMax          decimal.Decimal
	RatingMin         decimal.Decimal
	RatingMax         decimal.Decimal
	OrderBy           string
	OrderType         string
	WithDiscountsOnly bool
}

var orderingPropertyByName = map[string]OrderingProperty{
	"rating": OrderByRating,
	"price":  OrderByPrice,
}

var descendingByName = map[string]bool{
	"asc":        false,
	"ascending":  false,
	"desc":       true,
	"descending": true,
}

// CachedCatalog is the cache-aside read controller. Every operation
// validates its input first, then consults the cache, and only computes
// (use case + serialization) on a miss. Invalid input therefore never
// reaches the cache, and a cached entry can only ever hold a valid
// response. Cache failures degrade to computing the response.
type CachedCatalog struct {
	service   CatalogService
	cache     *cache.RepresentationCache
	presenter Presenter
	logger    *zap.Logger
}

// NewCachedCatalog creates a new CachedCatalog controller.
func NewCachedCatalog(service CatalogService, c *cache.RepresentationCache, presenter Presenter, logger *zap.Logger) *CachedCatalog {
	return &CachedCatalog{
		service:   service,
		cache:     c,
		presenter: presenter,
		logger:    logger,
	}
}

func parseID(param, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &InvalidArgumentError{Param: param, Value: value}
	}
	return id, nil
}

// readThrough runs the cache-aside protocol around compute. The key must be
// derived from canonical argument values so that semantically identical
// calls share an entry.
func (c *CachedCatalog) readThrough(ctx context.Context, key string, compute func() (interface{}, error)) (string, error) {
	cached, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		// A degraded cache never fails a read; recompute instead.
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	dto, err := compute()
	if err != nil {
		return "", err
	}
	representation, err := c.presenter(dto)
	if err != nil {
		return "", err
	}
	if err := c.cache.Set(ctx, key, representation); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return representation, nil
}

// GetProduct returns the serialized representation of a single product.
func (c *CachedCatalog) GetProduct(ctx context.Context, productID string, withReviews bool) (string, error) {
	id, err := parseID("product_id", productID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_product", domain.HexID(id), strconv.FormatBool(withReviews))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetProduct(ctx, id, withReviews)
	})
}

// GetProducts returns the serialized filtered/sorted product listing of a
// terminal category.
func (c *CachedCatalog) GetProducts(ctx context.Context, req ProductsRequest) (string, error) {
	id, err := parseID("category_id", req.CategoryID)
	if err != nil {
		return "", err
	}
	property, ok := orderingPropertyByName[req.OrderBy]
	if !ok {
		return "", &InvalidArgumentError{Param: "order_by", Value: req.OrderBy}
	}
	descending, ok := descendingByName[req.OrderType]
	if !ok {
		return "", &InvalidArgumentError{Param: "order_type", Value: req.OrderType}
	}

	key := c.cache.Key("get_products",
		domain.HexID(id),
		req.PriceMin.String(), req.PriceMax.String(),
		req.RatingMin.String(), req.RatingMax.String(),
		string(property), strconv.FormatBool(descending),
		strconv.FormatBool(req.WithDiscountsOnly),
	)
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetProducts(ctx, ProductsQuery{
			CategoryID:        id,
			PriceMin:          req.PriceMin,
			PriceMax:          req.PriceMax,
			RatingMin:         req.RatingMin,
			RatingMax:         req.RatingMax,
			WithDiscountsOnly: req.WithDiscountsOnly,
			Ordering:          &OrderingCriteria{Property: property, Descending: descending},
		})
	})
}

// GetTopCategory returns the serialized top level category.
func (c *CachedCatalog) GetTopCategory(ctx context.Context, categoryID string) (string, error) {
	id, err := parseID("category_id", categoryID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_top_category", domain.HexID(id))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetTopLevelCategory(ctx, id)
	})
}

// GetTopCategories returns the serialized listing of every top category.
func (c *CachedCatalog) GetTopCategories(ctx context.Context) (string, error) {
	key := c.cache.Key("get_top_categories")
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetTopLevelCategories(ctx)
	})
}

// GetMidCategory returns the serialized mid level category.
func (c *CachedCatalog) GetMidCategory(ctx context.Context, categoryID string) (string, error) {
	id, err := parseID("category_id", categoryID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_mid_category", domain.HexID(id))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetMidLevelCategory(ctx, id)
	})
}

// GetMidCategories returns the serialized children listing of a top
// category.
func (c *CachedCatalog) GetMidCategories(ctx context.Context, parentID string) (string, error) {
	id, err := parseID("category_id", parentID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_mid_categories", domain.HexID(id))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetMidLevelCategories(ctx, id)
	})
}

// GetTerminalCategory returns the serialized terminal level category.
func (c *CachedCatalog) GetTerminalCategory(ctx context.Context, categoryID string) (string, error) {
	id, err := parseID("category_id", categoryID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_terminal_category", domain.HexID(id))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetTerminalLevelCategory(ctx, id)
	})
}

// GetTerminalCategories returns the serialized children listing of a mid
// category.
func (c *CachedCatalog) GetTerminalCategories(ctx context.Context, parentID string) (string, error) {
	id, err := parseID("category_id", parentID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_terminal_categories", domain.HexID(id))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetTerminalLevelCategories(ctx, id)
	})
}

// GetVendor returns the serialized vendor.
func (c *CachedCatalog) GetVendor(ctx context.Context, vendorID string) (string, error) {
	id, err := parseID("vendor_id", vendorID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_vendor", domain.HexID(id))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetVendor(ctx, id)
	})
}

// GetVendors returns the serialized listing of every vendor.
func (c *CachedCatalog) GetVendors(ctx context.Context) (string, error) {
	key := c.cache.Key("get_vendors")
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetVendors(ctx)
	})
}

// GetReview returns the serialized review.
func (c *CachedCatalog) GetReview(ctx context.Context, reviewID string) (string, error) {
	id, err := parseID("review_id", reviewID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_review", domain.HexID(id))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetReview(ctx, id)
	})
}

// GetReviews returns the serialized review listing of a product.
func (c *CachedCatalog) GetReviews(ctx context.Context, productID string) (string, error) {
	id, err := parseID("product_id", productID)
	if err != nil {
		return "", err
	}
	key := c.cache.Key("get_reviews", domain.HexID(id))
	return c.readThrough(ctx, key, func() (interface{}, error) {
		return c.service.GetReviews(ctx, id)
	})
}
