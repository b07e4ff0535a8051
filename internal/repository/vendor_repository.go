package repository

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

// VendorRepository defines read access to persisted vendors.
type VendorRepository interface {
	GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)
	GetVendors(ctx context.Context) ([]*domain.Vendor, error)
}

type vendorRepository struct {
	db *sql.DB
}

// NewVendorRepository creates a new instance of VendorRepository.
func NewVendorRepository(db *sql.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func scanVendor(s rowScanner) (*domain.Vendor, error) {
	var (
		rawID                 []byte
		name                  string
		description, logoURL  sql.NullString
	)
	if err := s.Scan(&rawID, &name, &description, &logoURL); err != nil {
		return nil, err
	}
	id, err := decodeID(rawID)
	if err != nil {
		return nil, err
	}
	return domain.NewVendor(id, name, description.String, logoURL.String)
}

// GetVendor retrieves a vendor by ID.
func (r *vendorRepository) GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	query := `SELECT id, name, description, logo_url FROM vendor WHERE id = $1`

	vendor, err := scanVendor(r.db.QueryRowContext(ctx, query, encodeID(id)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to find vendor by ID: %w", err)
	}
	return vendor, nil
}

// GetVendors lists every vendor.
func (r *vendorRepository) GetVendors(ctx context.Context) ([]*domain.Vendor, error) {
	query := `SELECT id, name, description, logo_url FROM vendor ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	vendors := []*domain.Vendor{}
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, vendor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendors: %w", err)
	}

	return vendors, nil
}
