package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a client review of a product. Immutable once created.
type Review struct {
	id           uuid.UUID
	productID    uuid.UUID
	clientID     uuid.UUID
	rating       Rating
	creationDate time.Time
	feedback     string
}

// NewReview validates the creation date (UTC, not in the future) and the
// optional feedback text (1 to 3000 characters when present).
func NewReview(id, productID, clientID uuid.UUID, rating Rating, creationDate time.Time, feedback string) (Review, error) {
	if creationDate.Location() != time.UTC {
		return Review{}, invalid("review.creation_date", "must have UTC timezone")
	}
	if creationDate.After(time.Now().UTC()) {
		return Review{}, invalid("review.creation_date", "must not refer to a future date")
	}
	if len(feedback) > 3000 {
		return Review{}, invalid("review.feedback", "must be at most 3000 characters, got %d", len(feedback))
	}
	return Review{
		id:           id,
		productID:    productID,
		clientID:     clientID,
		rating:       rating,
		creationDate: creationDate,
		feedback:     feedback,
	}, nil
}

func (r Review) ID() uuid.UUID           { return r.id }
func (r Review) ProductID() uuid.UUID    { return r.productID }
func (r Review) ClientID() uuid.UUID     { return r.clientID }
func (r Review) Rating() Rating          { return r.rating }
func (r Review) CreationDate() time.Time { return r.creationDate }

// Feedback returns the review text; empty means no feedback was given.
func (r Review) Feedback() string { return r.feedback }
