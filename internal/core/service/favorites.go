package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.FavoritesReadWriter = (*FavoritesStore)(nil)

const (
	favoritesKeyPrefix  = "favorites_"
	eventProduceTimeout = 3 * time.Second
)

// favoriteRecord is the persisted shape of one favorites entry. The field
// names follow the historical storage format, so lists written by older
// storefront builds still decode.
type favoriteRecord struct {
	ToyID   string    `json:"toyId"`
	UserID  string    `json:"userId"`
	AddedAt time.Time `json:"addedAt"`
}

type FavoritesStoreOpt func(*FavoritesStore)

// FavoritesEventsOpt attaches a best-effort analytics producer. Produce
// failures never fail a favorites operation.
func FavoritesEventsOpt(p port.FavoriteEventsProducer) FavoritesStoreOpt {
	return func(s *FavoritesStore) { s.events = p }
}

func FavoritesClockOpt(now func() time.Time) FavoritesStoreOpt {
	return func(s *FavoritesStore) { s.now = now }
}

// FavoritesStore owns the authoritative local record of which toys each
// user liked. It keeps an in-memory list for the active identity and
// persists every mutation as a full-list overwrite under a per-user key.
//
// Storage failures flip the store into in-memory-only mode until the next
// identity change; callers only ever see boolean results or empty lists.
type FavoritesStore struct {
	mu       sync.Mutex
	kv       port.FavoritesKV
	events   port.FavoriteEventsProducer
	now      func() time.Time
	uid      string
	session  []domain.FavoriteEntry
	degraded bool
}

func NewFavoritesStore(kv port.FavoritesKV, opts ...FavoritesStoreOpt) *FavoritesStore {
	s := &FavoritesStore{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted favorites for userID. A missing record, an
// undecodable record, or an empty userID all yield an empty list.
func (s *FavoritesStore) Load(userID string) []domain.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(userID)
}

// Add appends a favorites entry for toyID stamped with the current time
// and persists the updated list. It reports false when no user is signed
// in. Re-adding an already liked toy is a no-op that still succeeds.
func (s *FavoritesStore) Add(userID, toyID string) bool {
	const op = "FavoritesStore.Add"

	if userID == "" || toyID == "" {
		return false
	}

	s.mu.Lock()
	entries := s.listLocked(userID)
	for _, e := range entries {
		if e.ToyID == toyID {
			s.mu.Unlock()
			return true
		}
	}

	entries = append(entries, domain.FavoriteEntry{
		ToyID:   toyID,
		UserID:  userID,
		AddedAt: s.now(),
	})
	s.persistLocked(op, userID, entries)
	s.mu.Unlock()

	s.produceEvent(domain.FavoriteEvent{
		UserID: userID, ToyID: toyID,
		Action: domain.FavoriteAdded, OccurredAt: s.now(),
	})
	return true
}

// Remove deletes any entry matching toyID and persists the updated list.
// It reports false when no user is signed in or the entry is absent.
func (s *FavoritesStore) Remove(userID, toyID string) bool {
	const op = "FavoritesStore.Remove"

	if userID == "" {
		return false
	}

	s.mu.Lock()
	entries := s.listLocked(userID)
	updated := slices.DeleteFunc(entries, func(e domain.FavoriteEntry) bool {
		return e.ToyID == toyID
	})
	if len(updated) == len(entries) {
		s.mu.Unlock()
		return false
	}

	s.persistLocked(op, userID, updated)
	s.mu.Unlock()

	s.produceEvent(domain.FavoriteEvent{
		UserID: userID, ToyID: toyID,
		Action: domain.FavoriteRemoved, OccurredAt: s.now(),
	})
	return true
}

// IsFavorite looks toyID up in the list loaded for the active identity.
// It never touches storage.
func (s *FavoritesStore) IsFavorite(toyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.ContainsFunc(s.session, func(e domain.FavoriteEntry) bool {
		return e.ToyID == toyID
	})
}

// OnIdentityChange discards the loaded list and reloads for the new
// identity. An empty userID (sign-out) leaves an empty list. A fresh
// identity also leaves in-memory-only mode and retries durable storage.
func (s *FavoritesStore) OnIdentityChange(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID != s.uid {
		s.degraded = false
	}
	s.uid = userID
	s.session = nil
	if userID != "" {
		s.session = s.listLocked(userID)
	}
}

func (s *FavoritesStore) listLocked(userID string) []domain.FavoriteEntry {
	const op = "FavoritesStore.load"
	log := slog.With("op", op)

	if userID == "" {
		return nil
	}
	if userID == s.uid && (s.session != nil || s.degraded) {
		return slices.Clone(s.session)
	}

	b, ok, err := s.kv.Get(favoritesKey(userID))
	if err != nil {
		log.Error("favorites storage unavailable, continuing in memory", "err", err)
		s.degraded = true
		return nil
	}
	if !ok {
		return nil
	}

	var records []favoriteRecord
	if err := json.Unmarshal(b, &records); err != nil {
		log.Warn("failed to decode stored favorites, treating as empty", "err", err)
		return nil
	}

	entries := make([]domain.FavoriteEntry, 0, len(records))
	for _, r := range records {
		if r.ToyID == "" {
			log.Warn("stored favorites entry is malformed, treating list as empty")
			return nil
		}
		entries = append(entries, domain.FavoriteEntry{
			ToyID:   r.ToyID,
			UserID:  r.UserID,
			AddedAt: r.AddedAt,
		})
	}
	return entries
}

func (s *FavoritesStore) persistLocked(op, userID string, entries []domain.FavoriteEntry) {
	log := slog.With("op", op, "userID", userID)

	if userID == s.uid {
		s.session = entries
	}

	if s.degraded {
		return
	}

	records := make([]favoriteRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, favoriteRecord(e))
	}

	b, err := json.Marshal(records)
	if err != nil {
		log.Error("failed to encode favorites", "err", err)
		return
	}

	if err := s.kv.Set(favoritesKey(userID), b); err != nil {
		log.Error("favorites storage unavailable, continuing in memory", "err", err)
		s.degraded = true
		if userID != s.uid {
			s.uid = userID
			s.session = entries
		}
	}
}

func (s *FavoritesStore) produceEvent(evt domain.FavoriteEvent) {
	const op = "FavoritesStore.produceEvent"

	if s.events == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(
			context.Background(), eventProduceTimeout,
		)
		defer cancel()

		if err := s.events.ProduceEvent(ctx, evt); err != nil {
			slog.Warn("failed to produce favorite event",
				"op", op, "err", err)
		}
	}()
}

func favoritesKey(userID string) string {
	return favoritesKeyPrefix + userID
}
