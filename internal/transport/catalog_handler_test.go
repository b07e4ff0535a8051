package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// stubReader returns a fixed representation or error for every operation
// and records the last listing request.
type stubReader struct {
	representation string
	err            error
	lastRequest    service.ProductsRequest
}

func (s *stubReader) read() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.representation, nil
}

func (s *stubReader) GetProduct(_ context.Context, _ string, _ bool) (string, error) {
	return s.read()
}

func (s *stubReader) GetProducts(_ context.Context, req service.ProductsRequest) (string, error) {
	s.lastRequest = req
	return s.read()
}

func (s *stubReader) GetTopCategory(_ context.Context, _ string) (string, error)        { return s.read() }
func (s *stubReader) GetTopCategories(_ context.Context) (string, error)                { return s.read() }
func (s *stubReader) GetMidCategory(_ context.Context, _ string) (string, error)        { return s.read() }
func (s *stubReader) GetMidCategories(_ context.Context, _ string) (string, error)      { return s.read() }
func (s *stubReader) GetTerminalCategory(_ context.Context, _ string) (string, error)   { return s.read() }
func (s *stubReader) GetTerminalCategories(_ context.Context, _ string) (string, error) { return s.read() }
func (s *stubReader) GetVendor(_ context.Context, _ string) (string, error)             { return s.read() }
func (s *stubReader) GetVendors(_ context.Context) (string, error)                      { return s.read() }
func (s *stubReader) GetReview(_ context.Context, _ string) (string, error)             { return s.read() }
func (s *stubReader) GetReviews(_ context.Context, _ string) (string, error)            { return s.read() }

func newTestRouter(reader *stubReader) *chi.Mux {
	router := chi.NewRouter()
	handler := NewCatalogHandler(reader, zap.NewNop())
	handler.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *chi.Mux, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetProductReturnsRepresentation(t *testing.T) {
	reader := &stubReader{representation: `{"id":"abc","name":"chair"}`}
	router := newTestRouter(reader)

	w := doRequest(t, router, "/api/products/a207e29729354f4fa1a71930428ab905")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if w.Body.String() != reader.representation {
		t.Errorf("body = %q, want the cached representation verbatim", w.Body.String())
	}
}

func TestGetProductRejectsBadReviewsFlag(t *testing.T) {
	router := newTestRouter(&stubReader{representation: "{}"})

	w := doRequest(t, router, "/api/products/a207e29729354f4fa1a71930428ab905?reviews=maybe")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestInvalidIDMapsTo422(t *testing.T) {
	reader := &stubReader{err: &service.InvalidArgumentError{Param: "product_id", Value: "nope"}}
	router := newTestRouter(reader)

	w := doRequest(t, router, "/api/products/nope")

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var response middleware.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("error body is not the standard envelope: %v", err)
	}
	if response.Error.Message == "" {
		t.Error("error envelope missing message")
	}
}

func TestNotFoundMapsTo404(t *testing.T) {
	cases := map[string]struct {
		err error
		url string
	}{
		"product":           {repository.ErrProductNotFound, "/api/products/a207e29729354f4fa1a71930428ab905"},
		"top category":      {repository.ErrTopCategoryNotFound, "/api/categories/top/a207e29729354f4fa1a71930428ab905"},
		"mid children":      {repository.ErrTopCategoryNotFound, "/api/categories/top/a207e29729354f4fa1a71930428ab905/children"},
		"terminal category": {repository.ErrTerminalCategoryNotFound, "/api/categories/terminal/a207e29729354f4fa1a71930428ab905"},
		"vendor":            {repository.ErrVendorNotFound, "/api/vendors/a207e29729354f4fa1a71930428ab905"},
		"review":            {repository.ErrReviewNotFound, "/api/reviews/a207e29729354f4fa1a71930428ab905"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			router := newTestRouter(&stubReader{err: tc.err})
			w := doRequest(t, router, tc.url)
			if w.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", w.Code)
			}
		})
	}
}

func TestUnexpectedErrorMapsTo500(t *testing.T) {
	router := newTestRouter(&stubReader{err: context.DeadlineExceeded})

	w := doRequest(t, router, "/api/vendors")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestGetProductsAppliesQueryDefaults(t *testing.T) {
	reader := &stubReader{representation: `{"products":[]}`}
	router := newTestRouter(reader)

	w := doRequest(t, router, "/api/products?category_id=a207e29729354f4fa1a71930428ab905")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	req := reader.lastRequest
	if !req.PriceMin.Equal(repository.MinPrice) || !req.PriceMax.Equal(repository.MaxPrice) {
		t.Errorf("price defaults = [%s, %s]", req.PriceMin, req.PriceMax)
	}
	if !req.RatingMin.Equal(repository.MinRating) || !req.RatingMax.Equal(repository.MaxRating) {
		t.Errorf("rating defaults = [%s, %s]", req.RatingMin, req.RatingMax)
	}
	if req.OrderBy != "rating" || req.OrderType != "descending" {
		t.Errorf("ordering defaults = %s %s", req.OrderBy, req.OrderType)
	}
	if req.WithDiscountsOnly {
		t.Error("with_discounts_only must default to false")
	}
}

func TestGetProductsForwardsQueryParameters(t *testing.T) {
	reader := &stubReader{representation: `{"products":[]}`}
	router := newTestRouter(reader)

	url := "/api/products?category_id=a207e29729354f4fa1a71930428ab905" +
		"&price_min=10.50&price_max=99.99&rating_min=2&rating_max=4.5" +
		"&order_by=price&order_type=asc&with_discounts_only=true"
	w := doRequest(t, router, url)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	req := reader.lastRequest
	if req.PriceMin.String() != "10.5" || req.PriceMax.String() != "99.99" {
		t.Errorf("price range = [%s, %s]", req.PriceMin, req.PriceMax)
	}
	if req.OrderBy != "price" || req.OrderType != "asc" {
		t.Errorf("ordering = %s %s", req.OrderBy, req.OrderType)
	}
	if !req.WithDiscountsOnly {
		t.Error("with_discounts_only not forwarded")
	}
}

func TestGetProductsRejectsMalformedQuery(t *testing.T) {
	router := newTestRouter(&stubReader{representation: "{}"})

	cases := map[string]string{
		"missing category": "/api/products",
		"bad price":        "/api/products?category_id=abc&price_min=cheap",
		"bad order_by":     "/api/products?category_id=abc&order_by=color",
		"bad order_type":   "/api/products?category_id=abc&order_type=sideways",
	}

	for name, url := range cases {
		t.Run(name, func(t *testing.T) {
			w := doRequest(t, router, url)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			var response middleware.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("error body is not the standard envelope: %v", err)
			}
		})
	}
}
