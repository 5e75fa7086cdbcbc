package domain

import "time"

// FavoriteEntry records that a user liked a toy. Entries are unique per
// (UserID, ToyID) pair and are never edited in place.
type FavoriteEntry struct {
	ToyID   string
	UserID  string
	AddedAt time.Time
}

type FavoriteAction string

const (
	FavoriteAdded   FavoriteAction = "added"
	FavoriteRemoved FavoriteAction = "removed"
)

// FavoriteEvent is the analytics record emitted on every successful
// favorites mutation.
type FavoriteEvent struct {
	UserID     string
	ToyID      string
	Action     FavoriteAction
	OccurredAt time.Time
}
