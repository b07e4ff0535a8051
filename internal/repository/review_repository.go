package repository

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReviewRepository defines read access to persisted product reviews.
//
// GetReviews follows the same rule as the category children listings:
// a missing product fails with ErrProductNotFound, a product without
// reviews returns an empty slice.
type ReviewRepository interface {
	GetReview(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	GetReviews(ctx context.Context, productID uuid.UUID) ([]domain.Review, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func scanReview(s rowScanner) (domain.Review, error) {
	var (
		rawID, productID, clientID []byte
		rating                     decimal.NullDecimal
		creationDate               sql.NullTime
		feedback                   sql.NullString
	)
	if err := s.Scan(&rawID, &productID, &clientID, &rating, &creationDate, &feedback); err != nil {
		return domain.Review{}, err
	}

	id, err := decodeID(rawID)
	if err != nil {
		return domain.Review{}, err
	}
	pid, err := decodeID(productID)
	if err != nil {
		return domain.Review{}, err
	}
	cid, err := decodeID(clientID)
	if err != nil {
		return domain.Review{}, err
	}
	r, err := domain.NewRating(rating.Decimal)
	if err != nil {
		return domain.Review{}, fmt.Errorf("review %s: %w", id, err)
	}
	return domain.NewReview(id, pid, cid, r, creationDate.Time.UTC(), feedback.String)
}

const reviewColumns = `SELECT id, product_id, client_id, rating, creation_date, feedback FROM product_review`

// GetReview retrieves a single review by ID.
func (r *reviewRepository) GetReview(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	query := reviewColumns + ` WHERE id = $1`

	review, err := scanReview(r.db.QueryRowContext(ctx, query, encodeID(id)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}
	return &review, nil
}

// GetReviews lists the reviews of a product. The product must exist.
func (r *reviewRepository) GetReviews(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM product WHERE id = $1)`, encodeID(productID)).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	return fetchReviews(ctx, r.db, productID)
}

// fetchReviews is shared with the product repository for with_reviews loads.
func fetchReviews(ctx context.Context, db *sql.DB, productID uuid.UUID) ([]domain.Review, error) {
	query := reviewColumns + ` WHERE product_id = $1 ORDER BY creation_date ASC`

	rows, err := db.QueryContext(ctx, query, encodeID(productID))
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
