package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.FavoritesKV = (*LevelKV)(nil)

// LevelKV is the durable per-user key/value store for favorites lists.
type LevelKV struct {
	db *leveldb.DB
}

func NewLevelKV(path string) (*LevelKV, error) {
	const op = "NewLevelKV"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("favorites store is available", "op", op, "path", path)
	return &LevelKV{db}, nil
}

func (kv *LevelKV) Get(key string) ([]byte, bool, error) {
	const op = "LevelKV.Get"

	b, err := kv.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return b, true, nil
}

func (kv *LevelKV) Set(key string, value []byte) error {
	const op = "LevelKV.Set"

	if err := kv.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (kv *LevelKV) Close() {
	const op = "LevelKV.Close"
	log := slog.With("op", op)

	log.Info("closing favorites store...")
	if err := kv.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("favorites store is closed")
}
