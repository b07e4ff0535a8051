package middleware

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Test struct mirroring a listing query string
type testListingQuery struct {
	CategoryID string `validate:"required"`
	PriceMin   string `validate:"omitempty,numeric"`
	RatingMax  string `validate:"omitempty,numeric"`
	OrderBy    string `validate:"omitempty,oneof=rating price"`
}

// Feature: catalog-api, Property 32: Required field validation works
// Validates: Requirements 12.2
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a missing required field is rejected", prop.ForAll(
		func(includeCategoryID bool) bool {
			query := testListingQuery{}
			if includeCategoryID {
				query.CategoryID = "a207e29729354f4fa1a71930428ab905"
			}

			err := ValidateRequest(&query)
			if includeCategoryID {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that validation errors are properly formatted
func TestProperty_ValidationErrorsAreFormatted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation errors include field information", prop.ForAll(
		func(junk string) bool {
			query := testListingQuery{
				CategoryID: "a207e29729354f4fa1a71930428ab905",
				PriceMin:   junk + "!", // never numeric
			}

			err := ValidateRequest(&query)
			if err == nil {
				return false
			}

			validationErrors := FormatValidationErrors(err)
			if len(validationErrors) == 0 {
				return false
			}
			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}
			return true
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that well-formed queries pass validation
func TestProperty_ValidQueriesPassValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("numeric bounds and known ordering pass", prop.ForAll(
		func(priceCents int, pickPrice bool) bool {
			orderBy := "rating"
			if pickPrice {
				orderBy = "price"
			}
			query := testListingQuery{
				CategoryID: "a207e29729354f4fa1a71930428ab905",
				PriceMin:   strconv.Itoa(priceCents),
				RatingMax:  "4.5",
				OrderBy:    orderBy,
			}

			return ValidateRequest(&query) == nil
		},
		gen.IntRange(0, 1_000_000),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that unknown ordering properties are rejected
func TestProperty_UnknownOrderingIsRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("order_by outside the known set fails", prop.ForAll(
		func(orderBy string) bool {
			query := testListingQuery{
				CategoryID: "a207e29729354f4fa1a71930428ab905",
				OrderBy:    orderBy,
			}

			err := ValidateRequest(&query)
			if orderBy == "" || orderBy == "rating" || orderBy == "price" {
				return err == nil
			}
			return err != nil
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
