package service

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderingProperty names the product attribute a listing is sorted by.
type OrderingProperty string

const (
	OrderByRating OrderingProperty = "rating"
	OrderByPrice  OrderingProperty = "price"
)

// OrderingCriteria is a validated sort request.
type OrderingCriteria struct {
	Property   OrderingProperty
	Descending bool
}

// ProductsQuery is the application-level filter/sort request for a category's
// products.
type ProductsQuery struct {
	CategoryID        uuid.UUID
	PriceMin          decimal.Decimal
	PriceMax          decimal.Decimal
	RatingMin         decimal.Decimal
	RatingMax         decimal.Decimal
	WithDiscountsOnly bool
	Ordering          *OrderingCriteria
}

// CatalogService composes the repository reads into output DTOs. It is the
// layer the cached controller wraps.
type CatalogService interface {
	GetProduct(ctx context.Context, id uuid.UUID, withReviews bool) (*ProductDTO, error)
	GetProducts(ctx context.Context, query ProductsQuery) (*ProductListDTO, error)
	GetTopLevelCategory(ctx context.Context, id uuid.UUID) (*TopCategoryDTO, error)
	GetTopLevelCategories(ctx context.Context) (*TopCategoryListDTO, error)
	GetMidLevelCategory(ctx context.Context, id uuid.UUID) (*MidCategoryDTO, error)
	GetMidLevelCategories(ctx context.Context, parentID uuid.UUID) (*MidCategoryListDTO, error)
	GetTerminalLevelCategory(ctx context.Context, id uuid.UUID) (*TerminalCategoryDTO, error)
	GetTerminalLevelCategories(ctx context.Context, parentID uuid.UUID) (*TerminalCategoryListDTO, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*VendorDTO, error)
	GetVendors(ctx context.Context) (*VendorListDTO, error)
	GetReview(ctx context.Context, id uuid.UUID) (*ReviewDTO, error)
	GetReviews(ctx context.Context, productID uuid.UUID) (*ReviewListDTO, error)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	vendors    repository.VendorRepository
	reviews    repository.ReviewRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	vendors repository.VendorRepository,
	reviews repository.ReviewRepository,
) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		vendors:    vendors,
		reviews:    reviews,
	}
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID, withReviews bool) (*ProductDTO, error) {
	product, err := s.products.GetProduct(ctx, id, withReviews)
	if err != nil {
		return nil, err
	}
	dto := newProductDTO(product)
	return &dto, nil
}

func (s *catalogService) GetProducts(ctx context.Context, query ProductsQuery) (*ProductListDTO, error) {
	repoQuery := repository.ProductQuery{
		CategoryID:        query.CategoryID,
		PriceMin:          query.PriceMin,
		PriceMax:          query.PriceMax,
		RatingMin:         query.RatingMin,
		RatingMax:         query.RatingMax,
		WithDiscountsOnly: query.WithDiscountsOnly,
	}

	products, err := s.fetchProducts(ctx, repoQuery, query.Ordering)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, newProductDTO(p))
	}
	return &ProductListDTO{Products: dtos}, nil
}

func (s *catalogService) fetchProducts(ctx context.Context, query repository.ProductQuery, ordering *OrderingCriteria) ([]*domain.Product, error) {
	if ordering == nil {
		return s.products.GetProducts(ctx, query)
	}
	switch ordering.Property {
	case OrderByRating:
		return s.products.GetProductsOrderedByRating(ctx, query, ordering.Descending)
	case OrderByPrice:
		return s.products.GetProductsOrderedByPrice(ctx, query, ordering.Descending)
	default:
		return nil, &InvalidArgumentError{Param: "order_by", Value: string(ordering.Property)}
	}
}

func (s *catalogService) GetTopLevelCategory(ctx context.Context, id uuid.UUID) (*TopCategoryDTO, error) {
	category, err := s.categories.GetTopLevelCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newTopCategoryDTO(category)
	return &dto, nil
}

func (s *catalogService) GetTopLevelCategories(ctx context.Context) (*TopCategoryListDTO, error) {
	categories, err := s.categories.GetTopLevelCategories(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]TopCategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, newTopCategoryDTO(c))
	}
	return &TopCategoryListDTO{Categories: dtos}, nil
}

func (s *catalogService) GetMidLevelCategory(ctx context.Context, id uuid.UUID) (*MidCategoryDTO, error) {
	category, err := s.categories.GetMidLevelCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newMidCategoryDTO(category)
	return &dto, nil
}

func (s *catalogService) GetMidLevelCategories(ctx context.Context, parentID uuid.UUID) (*MidCategoryListDTO, error) {
	categories, err := s.categories.GetMidLevelCategories(ctx, parentID)
	if err != nil {
		return nil, err
	}
	dtos := make([]MidCategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, newMidCategoryDTO(c))
	}
	return &MidCategoryListDTO{Categories: dtos}, nil
}

func (s *catalogService) GetTerminalLevelCategory(ctx context.Context, id uuid.UUID) (*TerminalCategoryDTO, error) {
	category, err := s.categories.GetTerminalLevelCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newTerminalCategoryDTO(category)
	return &dto, nil
}

func (s *catalogService) GetTerminalLevelCategories(ctx context.Context, parentID uuid.UUID) (*TerminalCategoryListDTO, error) {
	categories, err := s.categories.GetTerminalLevelCategories(ctx, parentID)
	if err != nil {
		return nil, err
	}
	dtos := make([]TerminalCategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, newTerminalCategoryDTO(c))
	}
	return &TerminalCategoryListDTO{Categories: dtos}, nil
}

func (s *catalogService) GetVendor(ctx context.Context, id uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.vendors.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newVendorDTO(vendor)
	return &dto, nil
}

func (s *catalogService) GetVendors(ctx context.Context) (*VendorListDTO, error) {
	vendors, err := s.vendors.GetVendors(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]VendorDTO, 0, len(vendors))
	for _, v := range vendors {
		dtos = append(dtos, newVendorDTO(v))
	}
	return &VendorListDTO{Vendors: dtos}, nil
}

func (s *catalogService) GetReview(ctx context.Context, id uuid.UUID) (*ReviewDTO, error) {
	review, err := s.reviews.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newReviewDTO(*review)
	return &dto, nil
}

func (s *catalogService) GetReviews(ctx context.Context, productID uuid.UUID) (*ReviewListDTO, error) {
	reviews, err := s.reviews.GetReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		dtos = append(dtos, newReviewDTO(r))
	}
	return &ReviewListDTO{Reviews: dtos}, nil
}
