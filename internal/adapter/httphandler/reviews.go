package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

// GET v1/toys/{id}/reviews (200 OK)
// POST v1/toys/{id}/reviews JSON {"rating" int, "comment" string} (201 Created, 400 Bad request)
// PUT v1/reviews/{id} (200 OK, 403 Forbidden, 404 Not found)
// DELETE v1/reviews/{id} (200 OK, 403 Forbidden, 404 Not found)
// POST v1/toys/{id}/demo-requests JSON {"name", "contact"} (202 Accepted, 400 Bad request)

type ReviewsHandler struct {
	reviews port.ReviewsService
	demos   port.DemoRequestsService
	catalog port.CatalogReader
}

func RegisterReviews(
	mux *http.ServeMux,
	auth Authenticator,
	reviews port.ReviewsService,
	demos port.DemoRequestsService,
	catalog port.CatalogReader,
) {
	h := ReviewsHandler{reviews, demos, catalog}
	mux.HandleFunc("GET /v1/toys/{id}/reviews", h.GetReviews)
	mux.HandleFunc("POST /v1/toys/{id}/reviews", auth.Require(h.PostReview))
	mux.HandleFunc("PUT /v1/reviews/{id}", auth.Require(h.PutReview))
	mux.HandleFunc("DELETE /v1/reviews/{id}", auth.Require(h.DeleteReview))
	mux.HandleFunc("POST /v1/toys/{id}/demo-requests", h.PostDemoRequest)
}

func (h ReviewsHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	const op = "ReviewsHandler.GetReviews"
	log := slog.With("op", op)

	rs, err := h.reviews.ByToy(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Error("failed to read reviews", "err", err)
		http.Error(w, "failed to read reviews", http.StatusServiceUnavailable)
		return
	}

	res := make([]Review, 0, len(rs))
	for _, v := range rs {
		res = append(res, reviewDTO(v))
	}
	writeJSON(w, op, http.StatusOK, res)
}

func (h ReviewsHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	const op = "ReviewsHandler.PostReview"
	log := slog.With("op", op)

	toyID := r.PathValue("id")
	if _, ok := h.catalog.Toy(toyID); !ok {
		http.Error(w, "toy not found", http.StatusNotFound)
		return
	}

	var in ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	ident, _ := IdentityFromContext(r.Context())
	review, err := h.reviews.Submit(
		r.Context(), ident.UID, ident.Email, toyID, in.Rating, in.Comment,
	)
	if err != nil {
		h.writeError(w, op, err)
		return
	}
	writeJSON(w, op, http.StatusCreated, reviewDTO(review))
}

func (h ReviewsHandler) PutReview(w http.ResponseWriter, r *http.Request) {
	const op = "ReviewsHandler.PutReview"
	log := slog.With("op", op)

	var in ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	ident, _ := IdentityFromContext(r.Context())
	review, err := h.reviews.Update(
		r.Context(), ident.UID, r.PathValue("id"), in.Rating, in.Comment,
	)
	if err != nil {
		h.writeError(w, op, err)
		return
	}
	writeJSON(w, op, http.StatusOK, reviewDTO(review))
}

func (h ReviewsHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	const op = "ReviewsHandler.DeleteReview"

	ident, _ := IdentityFromContext(r.Context())
	err := h.reviews.Delete(r.Context(), ident.UID, r.PathValue("id"))
	if err != nil {
		h.writeError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h ReviewsHandler) PostDemoRequest(w http.ResponseWriter, r *http.Request) {
	const op = "ReviewsHandler.PostDemoRequest"
	log := slog.With("op", op)

	toyID := r.PathValue("id")
	if _, ok := h.catalog.Toy(toyID); !ok {
		http.Error(w, "toy not found", http.StatusNotFound)
		return
	}

	var in DemoRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	req, err := h.demos.Submit(r.Context(), toyID, in.Name, in.Contact)
	if err != nil {
		h.writeError(w, op, err)
		return
	}
	writeJSON(w, op, http.StatusAccepted, DemoRequestAccepted{req.RequestID})
}

func (h ReviewsHandler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrNotOwner):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, domain.ErrRatingOutOfRange),
		errors.Is(err, domain.ErrCommentTooLong),
		errors.Is(err, domain.ErrMissingContact):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("unexpected failure", "op", op, "err", err)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}
}

func reviewDTO(v domain.Review) Review {
	return Review{
		ID:        v.ReviewID,
		ToyID:     v.ToyID,
		UserID:    v.UserID,
		UserEmail: v.UserEmail,
		Rating:    v.Rating,
		Comment:   v.Comment,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
