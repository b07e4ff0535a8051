package service

import (
	"time"

	"catalog-api/internal/domain"
)

// Output DTOs are the transport-facing representations the presenter
// serializes. Decimals travel as fixed-point strings, identifiers as
// 32-character lowercase hex.

type ProductDTO struct {
	ID                   string  `json:"id"`
	EAN                  string  `json:"ean"`
	Name                 string  `json:"name"`
	Description          *string `json:"description"`
	Price                string  `json:"price"`
	PriceWithoutDiscount string  `json:"price_without_discount"`
	Discount             *string `json:"discount"`
	VAT                  string  `json:"vat"`
	InStock              bool    `json:"in_stock"`
	Rating               *string `json:"rating"`
	Height               *string `json:"height"`
	Width                *string `json:"width"`
	Length               *string `json:"length"`
	Color                *string `json:"color"`
	Material             *string `json:"material"`
	CountryOfOrigin      string  `json:"country_of_origin"`
	Warranty             int     `json:"warranty"`
	CategoryID           string  `json:"category_id"`
	CategoryName         string  `json:"category_name"`
	ThumbnailPhotoURL    *string `json:"thumbnail_photo_url"`
	MediumSizePhotoURL   *string `json:"medium_size_photo_url"`
	LargeSizePhotoURL    *string `json:"large_size_photo_url"`
	VendorID             string  `json:"vendor_id"`
	VendorName           string  `json:"vendor_name"`
}

type ProductListDTO struct {
	Products []ProductDTO `json:"products"`
}

type TopCategoryDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type TopCategoryListDTO struct {
	Categories []TopCategoryDTO `json:"categories"`
}

type MidCategoryDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ParentID    string  `json:"parent_id"`
}

type MidCategoryListDTO struct {
	Categories []MidCategoryDTO `json:"categories"`
}

type TerminalCategoryDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ParentID    string  `json:"parent_id"`
}

type TerminalCategoryListDTO struct {
	Categories []TerminalCategoryDTO `json:"categories"`
}

type VendorDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

type VendorListDTO struct {
	Vendors []VendorDTO `json:"vendors"`
}

type ReviewDTO struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	ClientID     string  `json:"client_id"`
	Rating       string  `json:"rating"`
	CreationDate string  `json:"creation_date"`
	Feedback     *string `json:"feedback"`
}

type ReviewListDTO struct {
	Reviews []ReviewDTO `json:"reviews"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newProductDTO(p *domain.Product) ProductDTO {
	dto := ProductDTO{
		ID:                   p.IDHex(),
		EAN:                  p.EAN().String(),
		Name:                 p.Name(),
		Description:          optional(p.Description()),
		Price:                p.FinalPrice().StringFixed(2),
		PriceWithoutDiscount: p.FinalPriceWithoutDiscount().StringFixed(2),
		VAT:                  p.VATRate().StringFixed(2),
		InStock:              p.InStock(),
		Color:                optional(p.Color()),
		Material:             optional(p.Material()),
		CountryOfOrigin:      p.CountryOfOrigin(),
		Warranty:             p.Warranty(),
		CategoryID:           domain.HexID(p.CategoryID()),
		CategoryName:         p.Category().Name(),
		VendorID:             p.Vendor().IDHex(),
		VendorName:           p.Vendor().Name(),
	}
	if rate := p.DiscountRate(); rate != nil {
		v := rate.StringFixed(2)
		dto.Discount = &v
	}
	if rating := p.Rating(); rating != nil {
		v := rating.String()
		dto.Rating = &v
	}
	if d := p.Dimensions(); d != nil {
		height := d.Height().StringFixed(1)
		width := d.Width().StringFixed(1)
		length := d.Length().StringFixed(1)
		dto.Height, dto.Width, dto.Length = &height, &width, &length
	}
	if photo := p.PhotoURL(); photo != nil {
		dto.ThumbnailPhotoURL = optional(photo.Thumbnail)
		dto.MediumSizePhotoURL = optional(photo.Medium)
		dto.LargeSizePhotoURL = optional(photo.Large)
	}
	return dto
}

func newTopCategoryDTO(c *domain.TopLevelCategory) TopCategoryDTO {
	return TopCategoryDTO{
		ID:          domain.HexID(c.ID()),
		Name:        c.Name(),
		Description: optional(c.Description()),
	}
}

func newMidCategoryDTO(c *domain.MidLevelCategory) MidCategoryDTO {
	return MidCategoryDTO{
		ID:          domain.HexID(c.ID()),
		Name:        c.Name(),
		Description: optional(c.Description()),
		ParentID:    domain.HexID(c.ParentID()),
	}
}

func newTerminalCategoryDTO(c *domain.TerminalLevelCategory) TerminalCategoryDTO {
	return TerminalCategoryDTO{
		ID:          domain.HexID(c.ID()),
		Name:        c.Name(),
		Description: optional(c.Description()),
		ParentID:    domain.HexID(c.ParentID()),
	}
}

func newVendorDTO(v *domain.Vendor) VendorDTO {
	return VendorDTO{
		ID:          v.IDHex(),
		Name:        v.Name(),
		Description: optional(v.Description()),
		LogoURL:     optional(v.LogoURL()),
	}
}

func newReviewDTO(r domain.Review) ReviewDTO {
	return ReviewDTO{
		ID:           domain.HexID(r.ID()),
		ProductID:    domain.HexID(r.ProductID()),
		ClientID:     domain.HexID(r.ClientID()),
		Rating:       r.Rating().String(),
		CreationDate: r.CreationDate().Format(time.RFC3339),
		Feedback:     optional(r.Feedback()),
	}
}
