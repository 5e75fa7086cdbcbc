package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.ReviewsService = (*Reviews)(nil)

// Reviews handles review intake and owner-only edits.
type Reviews struct {
	storage port.ReviewsStorage
	now     func() time.Time
}

func NewReviews(storage port.ReviewsStorage) Reviews {
	return Reviews{storage: storage, now: time.Now}
}

func (s Reviews) Submit(
	ctx context.Context, userID, userEmail, toyID string,
	rating int, comment string,
) (domain.Review, error) {
	const op = "Reviews.Submit"

	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	r := domain.Review{
		ReviewID:  uuid.NewString(),
		ToyID:     toyID,
		UserID:    userID,
		UserEmail: userEmail,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Validate(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.StoreReview(ctx, r); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

func (s Reviews) Update(
	ctx context.Context, userID, reviewID string, rating int, comment string,
) (domain.Review, error) {
	const op = "Reviews.Update"

	r, err := s.owned(ctx, userID, reviewID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = s.now()
	if err := r.Validate(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateReview(ctx, r); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

func (s Reviews) Delete(ctx context.Context, userID, reviewID string) error {
	const op = "Reviews.Delete"

	if _, err := s.owned(ctx, userID, reviewID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Reviews) ByToy(
	ctx context.Context, toyID string,
) ([]domain.Review, error) {
	const op = "Reviews.ByToy"

	rs, err := s.storage.ReviewsByToy(ctx, toyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rs, nil
}

func (s Reviews) owned(
	ctx context.Context, userID, reviewID string,
) (domain.Review, error) {
	r, err := s.storage.ReviewByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if r.UserID != userID {
		return domain.Review{}, domain.ErrNotOwner
	}
	return r, nil
}

var _ port.DemoRequestsService = (*DemoRequests)(nil)

type DemoRequests struct {
	storage port.DemoRequestsStorage
	now     func() time.Time
}

func NewDemoRequests(storage port.DemoRequestsStorage) DemoRequests {
	return DemoRequests{storage: storage, now: time.Now}
}

func (s DemoRequests) Submit(
	ctx context.Context, toyID, name, contact string,
) (domain.DemoRequest, error) {
	const op = "DemoRequests.Submit"

	d := domain.DemoRequest{
		RequestID: uuid.NewString(),
		ToyID:     toyID,
		Name:      strings.TrimSpace(name),
		Contact:   strings.TrimSpace(contact),
		CreatedAt: s.now(),
	}
	if err := d.Validate(); err != nil {
		return domain.DemoRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.StoreDemoRequest(ctx, d); err != nil {
		return domain.DemoRequest{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}
