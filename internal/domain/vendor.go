package domain

import (
	"net/url"

	"github.com/google/uuid"
)

// Vendor is the seller or manufacturer of a product.
type Vendor struct {
	id          uuid.UUID
	name        string
	description string
	logoURL     string
}

// NewVendor validates the name (1 to 50 characters), the optional description
// (at most 3000 characters) and the optional logo URL.
func NewVendor(id uuid.UUID, name, description, logoURL string) (*Vendor, error) {
	if len(name) < 1 || len(name) > 50 {
		return nil, invalid("vendor.name", "must be 1 to 50 characters, got %d", len(name))
	}
	if len(description) > 3000 {
		return nil, invalid("vendor.description", "must be at most 3000 characters, got %d", len(description))
	}
	if logoURL != "" {
		if _, err := url.ParseRequestURI(logoURL); err != nil {
			return nil, invalid("vendor.logo_url", "must be a valid URL, got %q", logoURL)
		}
	}
	return &Vendor{id: id, name: name, description: description, logoURL: logoURL}, nil
}

func (v *Vendor) ID() uuid.UUID       { return v.id }
func (v *Vendor) Name() string        { return v.name }
func (v *Vendor) Description() string { return v.description }
func (v *Vendor) LogoURL() string     { return v.logoURL }

func (v *Vendor) IDHex() string { return HexID(v.id) }
