package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.ReviewsStorage = (*ReviewsRepository)(nil)

type ReviewsRepository struct {
	sqldb sqldb
}

func NewReviewsRepository(sqldb sqldb) ReviewsRepository {
	return ReviewsRepository{sqldb}
}

func (r ReviewsRepository) StoreReview(
	ctx context.Context, v domain.Review,
) error {
	const op = "ReviewsRepository.StoreReview"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO reviews (
			review_id, toy_id, user_id, user_email,
			rating, comment, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.sqldb.ExecContext(ctx, query,
		v.ReviewID, v.ToyID, v.UserID, v.UserEmail,
		v.Rating, v.Comment, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r ReviewsRepository) ReviewByID(
	ctx context.Context, reviewID string,
) (domain.Review, error) {
	const op = "ReviewsRepository.ReviewByID"

	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT review_id, toy_id, user_id, user_email,
			rating, comment, created_at, updated_at
		FROM reviews
		WHERE review_id = $1;
	`
	var v domain.Review
	err := r.sqldb.QueryRowContext(ctx, query, reviewID).Scan(
		&v.ReviewID, &v.ToyID, &v.UserID, &v.UserEmail,
		&v.Rating, &v.Comment, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r ReviewsRepository) ReviewsByToy(
	ctx context.Context, toyID string,
) ([]domain.Review, error) {
	const op = "ReviewsRepository.ReviewsByToy"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT review_id, toy_id, user_id, user_email,
			rating, comment, created_at, updated_at
		FROM reviews
		WHERE toy_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.sqldb.QueryContext(ctx, query, toyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.Review
	for rows.Next() {
		var v domain.Review
		err := rows.Scan(
			&v.ReviewID, &v.ToyID, &v.UserID, &v.UserEmail,
			&v.Rating, &v.Comment, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r ReviewsRepository) UpdateReview(
	ctx context.Context, v domain.Review,
) error {
	const op = "ReviewsRepository.UpdateReview"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = $4
		WHERE review_id = $1;
	`
	res, err := r.sqldb.ExecContext(ctx, query,
		v.ReviewID, v.Rating, v.Comment, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ReviewsRepository) DeleteReview(
	ctx context.Context, reviewID string,
) error {
	const op = "ReviewsRepository.DeleteReview"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(ctx,
		`DELETE FROM reviews WHERE review_id = $1;`, reviewID,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
