package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

const trendingLimit = 10

// GET /v1/toys?search=&category=&sort= (200 OK)
// GET /v1/toys/trending (200 OK, 204 No content)
// GET /v1/toys/{id} (200 OK, 404 Not found)
// GET /v1/categories (200 OK)

type ToysHandler struct {
	catalog port.CatalogReader
	counts  port.FavoriteCounts
}

func RegisterToys(
	mux *http.ServeMux, catalog port.CatalogReader, counts port.FavoriteCounts,
) {
	h := ToysHandler{catalog, counts}
	mux.HandleFunc("GET /v1/toys", h.GetToys)
	mux.HandleFunc("GET /v1/toys/trending", h.GetTrending)
	mux.HandleFunc("GET /v1/toys/{id}", h.GetToy)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h ToysHandler) GetToys(w http.ResponseWriter, r *http.Request) {
	const op = "ToysHandler.GetToys"

	criteria := criteriaFromQuery(r)
	toys := h.catalog.Toys(criteria)

	res := make([]Toy, 0, len(toys))
	for _, t := range toys {
		res = append(res, toDTO(t))
	}
	writeJSON(w, op, http.StatusOK, res)
}

func (h ToysHandler) GetToy(w http.ResponseWriter, r *http.Request) {
	const op = "ToysHandler.GetToy"

	toy, ok := h.catalog.Toy(r.PathValue("id"))
	if !ok {
		http.Error(w, "toy not found", http.StatusNotFound)
		return
	}

	res := ToyWithCount{Toy: toDTO(toy)}
	if h.counts != nil {
		n, err := h.counts.Count(toy.ToyID)
		if err != nil {
			slog.Warn("favorite count is unavailable", "op", op, "err", err)
		}
		res.FavoriteCount = n
	}
	writeJSON(w, op, http.StatusOK, res)
}

func (h ToysHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "ToysHandler.GetCategories"
	writeJSON(w, op, http.StatusOK, h.catalog.Categories())
}

func (h ToysHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	const op = "ToysHandler.GetTrending"
	log := slog.With("op", op)

	if h.counts == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	counts, err := h.counts.TopToys(trendingLimit)
	if err != nil {
		log.Error("failed to read favorite counts", "err", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	res := make([]ToyWithCount, 0, len(counts))
	for _, c := range counts {
		toy, ok := h.catalog.Toy(c.ToyID)
		if !ok {
			continue
		}
		res = append(res, ToyWithCount{Toy: toDTO(toy), FavoriteCount: c.Count})
	}
	writeJSON(w, op, http.StatusOK, res)
}

func criteriaFromQuery(r *http.Request) domain.FilterCriteria {
	q := r.URL.Query()

	criteria := domain.FilterCriteria{
		SearchQuery: q.Get("search"),
		Category:    q.Get("category"),
	}
	switch q.Get("sort") {
	case "price-asc":
		criteria.Sort = domain.SortPriceAsc
	case "price-desc":
		criteria.Sort = domain.SortPriceDesc
	}
	return criteria
}

func toDTO(t domain.Toy) Toy {
	return Toy{
		ID:                t.ToyID,
		Name:              t.Name,
		Description:       t.Description,
		Price:             t.Price,
		Category:          t.Category,
		Rating:            t.Rating,
		AvailableQuantity: t.AvailableQuantity,
		Image:             t.ImageURL,
		SellerName:        t.SellerName,
	}
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
