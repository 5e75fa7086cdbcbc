package httphandler

import (
	"net/http"

	"github.com/toytopia/toystore/internal/core/port"
)

// GET v1/favorites Headers Authorization Bearer (200 OK, 401 Unauthorized)
// PUT v1/favorites/{toyID} (200 OK, 401 Unauthorized)
// DELETE v1/favorites/{toyID} (200 OK, 404 Not found, 401 Unauthorized)

type FavoritesHandler struct {
	favorites port.FavoritesReadWriter
	catalog   port.CatalogReader
}

func RegisterFavorites(
	mux *http.ServeMux,
	auth Authenticator,
	favorites port.FavoritesReadWriter,
	catalog port.CatalogReader,
) {
	h := FavoritesHandler{favorites, catalog}
	mux.HandleFunc("GET /v1/favorites", auth.Require(h.GetFavorites))
	mux.HandleFunc("PUT /v1/favorites/{toyID}", auth.Require(h.PutFavorite))
	mux.HandleFunc("DELETE /v1/favorites/{toyID}", auth.Require(h.DeleteFavorite))
}

func (h FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	const op = "FavoritesHandler.GetFavorites"

	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "sign in required", http.StatusUnauthorized)
		return
	}

	entries := h.favorites.Load(ident.UID)

	res := make([]FavoriteItem, 0, len(entries))
	for _, e := range entries {
		item := FavoriteItem{
			FavoriteEntry: FavoriteEntry{
				ToyID:   e.ToyID,
				UserID:  e.UserID,
				AddedAt: e.AddedAt,
			},
		}
		// stale ids are tolerated, the toy is simply absent
		if toy, ok := h.catalog.Toy(e.ToyID); ok {
			dto := toDTO(toy)
			item.Toy = &dto
		}
		res = append(res, item)
	}
	writeJSON(w, op, http.StatusOK, res)
}

func (h FavoritesHandler) PutFavorite(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	if ok := h.favorites.Add(ident.UID, r.PathValue("toyID")); !ok {
		http.Error(w, "sign in required", http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h FavoritesHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())
	if ident.UID == "" {
		http.Error(w, "sign in required", http.StatusUnauthorized)
		return
	}

	if ok := h.favorites.Remove(ident.UID, r.PathValue("toyID")); !ok {
		http.Error(w, "favorite not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
