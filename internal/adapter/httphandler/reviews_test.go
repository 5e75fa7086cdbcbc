package httphandler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toytopia/toystore/internal/adapter/httphandler"
	"github.com/toytopia/toystore/internal/adapter/identity"
	"github.com/toytopia/toystore/internal/core/domain"
)

type stubReviewsService struct {
	submitErr error
	updateErr error
	deleteErr error
}

func (s stubReviewsService) Submit(
	_ context.Context, userID, userEmail, toyID string, rating int, comment string,
) (domain.Review, error) {
	if s.submitErr != nil {
		return domain.Review{}, s.submitErr
	}
	return domain.Review{
		ReviewID: "review-1", ToyID: toyID, UserID: userID,
		UserEmail: userEmail, Rating: rating, Comment: comment,
	}, nil
}

func (s stubReviewsService) Update(
	_ context.Context, userID, reviewID string, rating int, comment string,
) (domain.Review, error) {
	if s.updateErr != nil {
		return domain.Review{}, s.updateErr
	}
	return domain.Review{ReviewID: reviewID, UserID: userID, Rating: rating}, nil
}

func (s stubReviewsService) Delete(context.Context, string, string) error {
	return s.deleteErr
}

func (s stubReviewsService) ByToy(
	context.Context, string,
) ([]domain.Review, error) {
	return nil, nil
}

type stubDemoService struct {
	err error
}

func (s stubDemoService) Submit(
	_ context.Context, toyID, name, contact string,
) (domain.DemoRequest, error) {
	if s.err != nil {
		return domain.DemoRequest{}, s.err
	}
	return domain.DemoRequest{RequestID: "request-1", ToyID: toyID}, nil
}

func reviewsMux(
	t *testing.T, reviews stubReviewsService, demos stubDemoService,
) *http.ServeMux {
	t.Helper()

	auth := httphandler.NewAuthenticator(
		identity.NewTokenVerifier(testSecret), identity.NewSession(),
	)
	mux := http.NewServeMux()
	httphandler.RegisterReviews(mux, auth, reviews, demos, newCatalog(t))
	return mux
}

func doJSON(
	mux *http.ServeMux, method, target, authz, body string,
) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	mux.ServeHTTP(rec, req)
	return rec
}

func TestPostReview(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mux := reviewsMux(t, stubReviewsService{}, stubDemoService{})
		rec := doJSON(
			mux, "POST", "/v1/toys/toy-1/reviews", bearerFor(t, "user-1"),
			`{"rating":5,"comment":"great"}`,
		)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("RequiresAuth", func(t *testing.T) {
		mux := reviewsMux(t, stubReviewsService{}, stubDemoService{})
		rec := doJSON(
			mux, "POST", "/v1/toys/toy-1/reviews", "", `{"rating":5}`,
		)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("UnknownToy", func(t *testing.T) {
		mux := reviewsMux(t, stubReviewsService{}, stubDemoService{})
		rec := doJSON(
			mux, "POST", "/v1/toys/toy-9/reviews", bearerFor(t, "user-1"),
			`{"rating":5}`,
		)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		mux := reviewsMux(
			t,
			stubReviewsService{submitErr: domain.ErrRatingOutOfRange},
			stubDemoService{},
		)
		rec := doJSON(
			mux, "POST", "/v1/toys/toy-1/reviews", bearerFor(t, "user-1"),
			`{"rating":9}`,
		)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BrokenJSON", func(t *testing.T) {
		mux := reviewsMux(t, stubReviewsService{}, stubDemoService{})
		rec := doJSON(
			mux, "POST", "/v1/toys/toy-1/reviews", bearerFor(t, "user-1"),
			"{half",
		)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPutDeleteReview(t *testing.T) {
	t.Run("NotOwnerForbidden", func(t *testing.T) {
		mux := reviewsMux(
			t,
			stubReviewsService{
				updateErr: domain.ErrNotOwner,
				deleteErr: domain.ErrNotOwner,
			},
			stubDemoService{},
		)
		authz := bearerFor(t, "user-2")

		rec := doJSON(mux, "PUT", "/v1/reviews/review-1", authz, `{"rating":1}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(mux, "DELETE", "/v1/reviews/review-1", authz, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("UnknownReview", func(t *testing.T) {
		mux := reviewsMux(
			t,
			stubReviewsService{
				updateErr: domain.ErrNotFound,
				deleteErr: domain.ErrNotFound,
			},
			stubDemoService{},
		)
		authz := bearerFor(t, "user-1")

		rec := doJSON(mux, "PUT", "/v1/reviews/review-9", authz, `{"rating":1}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(mux, "DELETE", "/v1/reviews/review-9", authz, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("OwnerUpdates", func(t *testing.T) {
		mux := reviewsMux(t, stubReviewsService{}, stubDemoService{})

		rec := doJSON(
			mux, "PUT", "/v1/reviews/review-1", bearerFor(t, "user-1"),
			`{"rating":4,"comment":"better"}`,
		)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPostDemoRequest(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		mux := reviewsMux(t, stubReviewsService{}, stubDemoService{})
		rec := doJSON(
			mux, "POST", "/v1/toys/toy-1/demo-requests", "",
			`{"name":"Alex","contact":"alex@example.com"}`,
		)
		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.Contains(t, rec.Body.String(), "request-1")
	})

	t.Run("MissingContact", func(t *testing.T) {
		mux := reviewsMux(
			t, stubReviewsService{},
			stubDemoService{err: domain.ErrMissingContact},
		)
		rec := doJSON(
			mux, "POST", "/v1/toys/toy-1/demo-requests", "",
			`{"name":"Alex"}`,
		)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownToy", func(t *testing.T) {
		mux := reviewsMux(t, stubReviewsService{}, stubDemoService{})
		rec := doJSON(
			mux, "POST", "/v1/toys/toy-9/demo-requests", "",
			`{"name":"Alex","contact":"a@b.c"}`,
		)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
