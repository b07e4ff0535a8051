package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductListingQuery represents the query string of the product listing
// endpoint. Range values are kept as strings here so that format errors can
// be reported per field before any parsing happens.
type ProductListingQuery struct {
	CategoryID        string `validate:"required"`
	PriceMin          string `validate:"omitempty,numeric"`
	PriceMax          string `validate:"omitempty,numeric"`
	RatingMin         string `validate:"omitempty,numeric"`
	RatingMax         string `validate:"omitempty,numeric"`
	OrderBy           string `validate:"omitempty,oneof=rating price"`
	OrderType         string `validate:"omitempty,oneof=asc ascending desc descending"`
	WithDiscountsOnly string `validate:"omitempty,boolean"`
}

// CatalogReader produces ready-to-send representations of catalog reads.
// Satisfied by service.CachedCatalog.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string, withReviews bool) (string, error)
	GetProducts(ctx context.Context, req service.ProductsRequest) (string, error)
	GetTopCategory(ctx context.Context, categoryID string) (string, error)
	GetTopCategories(ctx context.Context) (string, error)
	GetMidCategory(ctx context.Context, categoryID string) (string, error)
	GetMidCategories(ctx context.Context, parentID string) (string, error)
	GetTerminalCategory(ctx context.Context, categoryID string) (string, error)
	GetTerminalCategories(ctx context.Context, parentID string) (string, error)
	GetVendor(ctx context.Context, vendorID string) (string, error)
	GetVendors(ctx context.Context) (string, error)
	GetReview(ctx context.Context, reviewID string) (string, error)
	GetReviews(ctx context.Context, productID string) (string, error)
}

// CatalogHandler handles HTTP requests for catalog reads
type CatalogHandler struct {
	catalog CatalogReader
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog CatalogReader, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.GetProducts)
		r.Get("/products/{productID}", h.GetProduct)
		r.Get("/products/{productID}/reviews", h.GetReviews)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/top", h.GetTopCategories)
			r.Get("/top/{categoryID}", h.GetTopCategory)
			r.Get("/top/{categoryID}/children", h.GetMidCategories)
			r.Get("/mid/{categoryID}", h.GetMidCategory)
			r.Get("/mid/{categoryID}/children", h.GetTerminalCategories)
			r.Get("/terminal/{categoryID}", h.GetTerminalCategory)
		})

		r.Get("/vendors", h.GetVendors)
		r.Get("/vendors/{vendorID}", h.GetVendor)
		r.Get("/reviews/{reviewID}", h.GetReview)
	})
}

// GetProduct returns a single product, optionally with its reviews
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	withReviews := false
	if raw := r.URL.Query().Get("reviews"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "reviews must be a boolean")
			return
		}
		withReviews = parsed
	}

	representation, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "productID"), withReviews)
	h.respond(w, r, representation, err)
}

// GetProducts returns the filtered and sorted products of a terminal
// category
func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := ProductListingQuery{
		CategoryID:        params.Get("category_id"),
		PriceMin:          params.Get("price_min"),
		PriceMax:          params.Get("price_max"),
		RatingMin:         params.Get("rating_min"),
		RatingMax:         params.Get("rating_max"),
		OrderBy:           params.Get("order_by"),
		OrderType:         params.Get("order_type"),
		WithDiscountsOnly: params.Get("with_discounts_only"),
	}
	if err := middleware.ValidateRequest(&query); err != nil {
		h.logger.Debug("Product listing validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	req := service.ProductsRequest{
		CategoryID: query.CategoryID,
		PriceMin:   decimalOrDefault(query.PriceMin, repository.MinPrice),
		PriceMax:   decimalOrDefault(query.PriceMax, repository.MaxPrice),
		RatingMin:  decimalOrDefault(query.RatingMin, repository.MinRating),
		RatingMax:  decimalOrDefault(query.RatingMax, repository.MaxRating),
		OrderBy:    defaultString(query.OrderBy, "rating"),
		OrderType:  defaultString(query.OrderType, "descending"),
	}
	if query.WithDiscountsOnly != "" {
		req.WithDiscountsOnly, _ = strconv.ParseBool(query.WithDiscountsOnly)
	}

	representation, err := h.catalog.GetProducts(r.Context(), req)
	h.respond(w, r, representation, err)
}

// GetTopCategory returns a single top level category
func (h *CatalogHandler) GetTopCategory(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetTopCategory(r.Context(), chi.URLParam(r, "categoryID"))
	h.respond(w, r, representation, err)
}

// GetTopCategories returns all top level categories
func (h *CatalogHandler) GetTopCategories(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetTopCategories(r.Context())
	h.respond(w, r, representation, err)
}

// GetMidCategory returns a single mid level category
func (h *CatalogHandler) GetMidCategory(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetMidCategory(r.Context(), chi.URLParam(r, "categoryID"))
	h.respond(w, r, representation, err)
}

// GetMidCategories returns the mid level children of a top level category
func (h *CatalogHandler) GetMidCategories(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetMidCategories(r.Context(), chi.URLParam(r, "categoryID"))
	h.respond(w, r, representation, err)
}

// GetTerminalCategory returns a single terminal level category
func (h *CatalogHandler) GetTerminalCategory(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetTerminalCategory(r.Context(), chi.URLParam(r, "categoryID"))
	h.respond(w, r, representation, err)
}

// GetTerminalCategories returns the terminal children of a mid level
// category
func (h *CatalogHandler) GetTerminalCategories(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetTerminalCategories(r.Context(), chi.URLParam(r, "categoryID"))
	h.respond(w, r, representation, err)
}

// GetVendor returns a single vendor
func (h *CatalogHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetVendor(r.Context(), chi.URLParam(r, "vendorID"))
	h.respond(w, r, representation, err)
}

// GetVendors returns all vendors
func (h *CatalogHandler) GetVendors(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetVendors(r.Context())
	h.respond(w, r, representation, err)
}

// GetReview returns a single product review
func (h *CatalogHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetReview(r.Context(), chi.URLParam(r, "reviewID"))
	h.respond(w, r, representation, err)
}

// GetReviews returns all reviews of a product
func (h *CatalogHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	representation, err := h.catalog.GetReviews(r.Context(), chi.URLParam(r, "productID"))
	h.respond(w, r, representation, err)
}

func (h *CatalogHandler) respond(w http.ResponseWriter, r *http.Request, representation string, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(representation))
}

func (h *CatalogHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var argErr *service.InvalidArgumentError
	switch {
	case errors.As(err, &argErr):
		middleware.RespondWithError(w, http.StatusUnprocessableEntity, argErr.Error())
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrTopCategoryNotFound),
		errors.Is(err, repository.ErrMidCategoryNotFound),
		errors.Is(err, repository.ErrTerminalCategoryNotFound),
		errors.Is(err, repository.ErrVendorNotFound),
		errors.Is(err, repository.ErrReviewNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("Catalog read failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decimalOrDefault(raw string, fallback decimal.Decimal) decimal.Decimal {
	if raw == "" {
		return fallback
	}
	// already checked by the numeric validation tag
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return value
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
