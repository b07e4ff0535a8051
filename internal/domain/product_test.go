package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func buildCategoryChain(t *testing.T) (*TopLevelCategory, *MidLevelCategory, *TerminalLevelCategory) {
	t.Helper()
	top, err := NewTopLevelCategory(uuid.New(), "Garden", "Everything for the garden")
	if err != nil {
		t.Fatalf("NewTopLevelCategory: %v", err)
	}
	mid, err := NewMidLevelCategory(uuid.New(), "Tools", "Garden tools", top)
	if err != nil {
		t.Fatalf("NewMidLevelCategory: %v", err)
	}
	terminal, err := NewTerminalLevelCategory(uuid.New(), "Shovels", "", mid)
	if err != nil {
		t.Fatalf("NewTerminalLevelCategory: %v", err)
	}
	return top, mid, terminal
}

func buildProduct(t *testing.T, reviews ...Review) *Product {
	t.Helper()
	_, _, terminal := buildCategoryChain(t)
	vendor, err := NewVendor(uuid.New(), "ACME Tools", "", "")
	if err != nil {
		t.Fatalf("NewVendor: %v", err)
	}
	price, err := NewPrice(decimal.RequireFromString("19.99"), mustVAT(t, "0.20"), nil)
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}
	ean, err := NewEAN13("4006381333931")
	if err != nil {
		t.Fatalf("NewEAN13: %v", err)
	}
	product, err := NewProduct(ProductParams{
		ID:              uuid.New(),
		EAN:             ean,
		Name:            "Steel shovel",
		Price:           price,
		Quantity:        3,
		CreationDate:    time.Now().UTC().Add(-time.Hour),
		CountryOfOrigin: "Portugal",
		Warranty:        2,
		Category:        terminal,
		Reviews:         reviews,
		Vendor:          vendor,
	})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return product
}

func buildReview(t *testing.T, productID uuid.UUID, rating string) Review {
	t.Helper()
	r, err := NewRating(decimal.RequireFromString(rating))
	if err != nil {
		t.Fatalf("NewRating(%s): %v", rating, err)
	}
	review, err := NewReview(uuid.New(), productID, uuid.New(), r, time.Now().UTC().Add(-time.Minute), "solid product")
	if err != nil {
		t.Fatalf("NewReview: %v", err)
	}
	return review
}

// Feature: catalog-api, Property 3: Rating is the rounded mean of all reviews
func TestProductRatingIsMeanOfReviews(t *testing.T) {
	product := buildProduct(t)

	if product.Rating() != nil {
		t.Fatal("rating should be nil with zero reviews")
	}

	for i := 0; i < 3; i++ {
		product.AddReview(buildReview(t, product.ID(), "5.0"))
	}
	if got := product.Rating(); got == nil || !got.Decimal().Equal(decimal.RequireFromString("5.0")) {
		t.Fatalf("rating after three 5.0 reviews = %v, want 5.0", got)
	}

	// mean of 5, 5, 5, 1 is 4.0
	product.AddReview(buildReview(t, product.ID(), "1.0"))
	if got := product.Rating(); got == nil || !got.Decimal().Equal(decimal.RequireFromString("4.0")) {
		t.Fatalf("rating after adding a 1.0 review = %v, want 4.0", got)
	}
}

func TestProductDeleteReview(t *testing.T) {
	review := buildReview(t, uuid.Nil, "5.0")
	product := buildProduct(t, review)

	deleted, err := product.DeleteReview(review.ID())
	if err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if deleted.ID() != review.ID() {
		t.Errorf("DeleteReview returned review %s, want %s", deleted.ID(), review.ID())
	}
	if product.Rating() != nil {
		t.Error("rating should be nil after the last review is removed")
	}
}

func TestProductDeleteMissingReviewLeavesRatingUnchanged(t *testing.T) {
	product := buildProduct(t, buildReview(t, uuid.Nil, "4.0"))
	before := product.Rating()

	_, err := product.DeleteReview(uuid.New())
	if !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("DeleteReview of missing id = %v, want ErrReviewNotFound", err)
	}
	after := product.Rating()
	if after == nil || !after.Decimal().Equal(before.Decimal()) {
		t.Errorf("rating changed on failed delete: before %v, after %v", before, after)
	}
}

func TestProductDuplicateReviewIDOverwrites(t *testing.T) {
	product := buildProduct(t)
	first := buildReview(t, product.ID(), "1.0")
	product.AddReview(first)

	rating, _ := NewRating(decimal.RequireFromString("5.0"))
	second, err := NewReview(first.ID(), product.ID(), uuid.New(), rating, time.Now().UTC().Add(-time.Second), "")
	if err != nil {
		t.Fatalf("NewReview: %v", err)
	}
	product.AddReview(second)

	if len(product.Reviews()) != 1 {
		t.Fatalf("expected 1 review after overwrite, got %d", len(product.Reviews()))
	}
	if got := product.Rating(); !got.Decimal().Equal(decimal.RequireFromString("5.0")) {
		t.Errorf("rating = %v, want 5.0 from the overwriting review", got)
	}
}

// Feature: catalog-api, Property 4: Terminal categories resolve their root
func TestCategoryChainRoundTrip(t *testing.T) {
	top, _, terminal := buildCategoryChain(t)

	resolved, err := terminal.TopLevel()
	if err != nil {
		t.Fatalf("TopLevel: %v", err)
	}
	if resolved.ID() != top.ID() {
		t.Errorf("TopLevel().ID() = %s, want %s", resolved.ID(), top.ID())
	}
}

func TestUnpopulatedCategoryChainFailsFast(t *testing.T) {
	terminal := &TerminalLevelCategory{id: uuid.New(), name: "Shovels"}

	if _, err := terminal.TopLevel(); !errors.Is(err, ErrIncompleteAggregate) {
		t.Errorf("TopLevel on unpopulated chain = %v, want ErrIncompleteAggregate", err)
	}
}

func TestSetBasePriceRevalidates(t *testing.T) {
	product := buildProduct(t)

	if err := product.SetBasePrice(decimal.RequireFromString("-5.00")); err == nil {
		t.Error("negative base price should be rejected")
	}
	if err := product.SetBasePrice(decimal.RequireFromString("25.50")); err != nil {
		t.Errorf("valid base price rejected: %v", err)
	}
	if !product.BasePrice().Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("base price = %s, want 25.50", product.BasePrice())
	}
}

func TestProductColorAndMaterialAreLowercased(t *testing.T) {
	_, _, terminal := buildCategoryChain(t)
	vendor, _ := NewVendor(uuid.New(), "ACME Tools", "", "")
	price, _ := NewPrice(decimal.RequireFromString("19.99"), mustVAT(t, "0.20"), nil)
	ean, _ := NewEAN13("4006381333931")

	product, err := NewProduct(ProductParams{
		ID:              uuid.New(),
		EAN:             ean,
		Name:            "Steel shovel",
		Price:           price,
		Quantity:        0,
		CreationDate:    time.Now().UTC().Add(-time.Hour),
		Color:           "Graphite Grey",
		Material:        "STEEL",
		CountryOfOrigin: "Portugal",
		Warranty:        2,
		Category:        terminal,
		Vendor:          vendor,
	})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	if product.Color() != "graphite grey" || product.Material() != "steel" {
		t.Errorf("color/material = %q/%q, want lowercase", product.Color(), product.Material())
	}
	if product.InStock() {
		t.Error("product with zero quantity should not be in stock")
	}
}

func TestEAN13Validation(t *testing.T) {
	for _, bad := range []string{"", "123", "40063813339311", "400638133393a"} {
		if _, err := NewEAN13(bad); err == nil {
			t.Errorf("NewEAN13(%q) succeeded, want error", bad)
		}
	}
}

func TestReviewValidation(t *testing.T) {
	rating, _ := NewRating(decimal.RequireFromString("3.5"))

	if _, err := NewReview(uuid.New(), uuid.New(), uuid.New(), rating, time.Now().UTC().Add(time.Hour), ""); err == nil {
		t.Error("future creation date should be rejected")
	}
	loc, _ := time.LoadLocation("Europe/Lisbon")
	if _, err := NewReview(uuid.New(), uuid.New(), uuid.New(), rating, time.Now().In(loc), ""); err == nil {
		t.Error("non-UTC creation date should be rejected")
	}
}
