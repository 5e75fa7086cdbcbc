package storage

import (
	"context"
	"fmt"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.FavoriteEventsStorage = (*FavoriteEventsRepository)(nil)

// FavoriteEventsRepository archives the favorite-activity stream for
// offline analytics.
type FavoriteEventsRepository struct {
	sqldb sqldb
}

func NewFavoriteEventsRepository(sqldb sqldb) FavoriteEventsRepository {
	return FavoriteEventsRepository{sqldb}
}

func (r FavoriteEventsRepository) StoreEvents(
	ctx context.Context, evts []domain.FavoriteEvent,
) error {
	const op = "FavoriteEventsRepository.StoreEvents"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO favorite_events (user_id, toy_id, action, occurred_at)
		VALUES ($1, $2, $3, $4);
	`
	for _, evt := range evts {
		_, err := r.sqldb.ExecContext(ctx, query,
			evt.UserID, evt.ToyID, string(evt.Action), evt.OccurredAt,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}
	return nil
}
