package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/service"
)

type MockReviewsStorage struct {
	mock.Mock
}

func (m *MockReviewsStorage) StoreReview(
	ctx context.Context, v domain.Review,
) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockReviewsStorage) ReviewByID(
	ctx context.Context, reviewID string,
) (domain.Review, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewsStorage) ReviewsByToy(
	ctx context.Context, toyID string,
) ([]domain.Review, error) {
	args := m.Called(ctx, toyID)
	rs, _ := args.Get(0).([]domain.Review)
	return rs, args.Error(1)
}

func (m *MockReviewsStorage) UpdateReview(
	ctx context.Context, v domain.Review,
) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockReviewsStorage) DeleteReview(
	ctx context.Context, reviewID string,
) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

type MockDemoRequestsStorage struct {
	mock.Mock
}

func (m *MockDemoRequestsStorage) StoreDemoRequest(
	ctx context.Context, v domain.DemoRequest,
) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func TestReviewsSubmit(t *testing.T) {
	t.Run("StoresValidReview", func(t *testing.T) {
		storage := new(MockReviewsStorage)
		storage.On(
			"StoreReview", t.Context(), mock.AnythingOfType("domain.Review"),
		).Return(nil)

		s := service.NewReviews(storage)
		r, err := s.Submit(
			t.Context(), "user-1", "user@example.com", "toy-1", 5, "  great  ",
		)
		require.NoError(t, err)

		assert.NotEmpty(t, r.ReviewID)
		assert.Equal(t, "toy-1", r.ToyID)
		assert.Equal(t, "user-1", r.UserID)
		assert.Equal(t, "great", r.Comment)
		assert.Equal(t, r.CreatedAt, r.UpdatedAt)
		storage.AssertExpectations(t)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		storage := new(MockReviewsStorage)
		s := service.NewReviews(storage)

		for _, rating := range []int{0, 6, -1} {
			_, err := s.Submit(
				t.Context(), "user-1", "", "toy-1", rating, "",
			)
			assert.ErrorIs(t, err, domain.ErrRatingOutOfRange)
		}
		storage.AssertNotCalled(t, "StoreReview")
	})

	t.Run("CommentTooLong", func(t *testing.T) {
		storage := new(MockReviewsStorage)
		s := service.NewReviews(storage)

		comment := strings.Repeat("x", 501)
		_, err := s.Submit(t.Context(), "user-1", "", "toy-1", 3, comment)
		assert.ErrorIs(t, err, domain.ErrCommentTooLong)
	})
}

func TestReviewsUpdate(t *testing.T) {
	stored := domain.Review{
		ReviewID: "review-1",
		ToyID:    "toy-1",
		UserID:   "user-1",
		Rating:   3,
		Comment:  "ok",
	}

	t.Run("OwnerUpdates", func(t *testing.T) {
		storage := new(MockReviewsStorage)
		storage.On("ReviewByID", t.Context(), "review-1").Return(stored, nil)
		storage.On(
			"UpdateReview", t.Context(), mock.AnythingOfType("domain.Review"),
		).Return(nil)

		s := service.NewReviews(storage)
		r, err := s.Update(t.Context(), "user-1", "review-1", 5, "better now")
		require.NoError(t, err)

		assert.Equal(t, 5, r.Rating)
		assert.Equal(t, "better now", r.Comment)
		storage.AssertExpectations(t)
	})

	t.Run("NotOwner", func(t *testing.T) {
		storage := new(MockReviewsStorage)
		storage.On("ReviewByID", t.Context(), "review-1").Return(stored, nil)

		s := service.NewReviews(storage)
		_, err := s.Update(t.Context(), "user-2", "review-1", 5, "")
		assert.ErrorIs(t, err, domain.ErrNotOwner)
		storage.AssertNotCalled(t, "UpdateReview")
	})

	t.Run("UnknownReview", func(t *testing.T) {
		storage := new(MockReviewsStorage)
		storage.On("ReviewByID", t.Context(), "review-9").
			Return(domain.Review{}, domain.ErrNotFound)

		s := service.NewReviews(storage)
		_, err := s.Update(t.Context(), "user-1", "review-9", 5, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReviewsDelete(t *testing.T) {
	stored := domain.Review{ReviewID: "review-1", UserID: "user-1"}

	t.Run("OwnerDeletes", func(t *testing.T) {
		storage := new(MockReviewsStorage)
		storage.On("ReviewByID", t.Context(), "review-1").Return(stored, nil)
		storage.On("DeleteReview", t.Context(), "review-1").Return(nil)

		s := service.NewReviews(storage)
		require.NoError(t, s.Delete(t.Context(), "user-1", "review-1"))
		storage.AssertExpectations(t)
	})

	t.Run("NotOwner", func(t *testing.T) {
		storage := new(MockReviewsStorage)
		storage.On("ReviewByID", t.Context(), "review-1").Return(stored, nil)

		s := service.NewReviews(storage)
		err := s.Delete(t.Context(), "user-2", "review-1")
		assert.ErrorIs(t, err, domain.ErrNotOwner)
		storage.AssertNotCalled(t, "DeleteReview")
	})
}

func TestDemoRequestsSubmit(t *testing.T) {
	t.Run("StoresValidRequest", func(t *testing.T) {
		storage := new(MockDemoRequestsStorage)
		storage.On(
			"StoreDemoRequest", t.Context(),
			mock.AnythingOfType("domain.DemoRequest"),
		).Return(nil)

		s := service.NewDemoRequests(storage)
		d, err := s.Submit(t.Context(), "toy-1", " Alex ", "alex@example.com")
		require.NoError(t, err)

		assert.NotEmpty(t, d.RequestID)
		assert.Equal(t, "Alex", d.Name)
		storage.AssertExpectations(t)
	})

	t.Run("MissingContact", func(t *testing.T) {
		storage := new(MockDemoRequestsStorage)
		s := service.NewDemoRequests(storage)

		_, err := s.Submit(t.Context(), "toy-1", "Alex", "   ")
		assert.ErrorIs(t, err, domain.ErrMissingContact)

		_, err = s.Submit(t.Context(), "toy-1", "", "alex@example.com")
		assert.ErrorIs(t, err, domain.ErrMissingContact)
		storage.AssertNotCalled(t, "StoreDemoRequest")
	})
}
