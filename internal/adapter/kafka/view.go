package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lovoo/goka"
	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.FavoriteCounts = (*FavoriteCountsView)(nil)

// A FavoriteCountsView serves reads over the favorite-counter group table.
type FavoriteCountsView struct {
	gv *goka.View
}

func NewFavoriteCountsView(
	seedBrokers []string, group string,
) (*FavoriteCountsView, error) {
	const op = "NewFavoriteCountsView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		countValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &FavoriteCountsView{gv}, nil
}

func (v *FavoriteCountsView) Run(ctx context.Context) {
	const op = "FavoriteCountsView.Run"
	log := slog.With("op", op)

	log.Info("running")
	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// Count returns the folded favorite counter for one toy. A toy that never
// appeared in the stream counts as zero.
func (v *FavoriteCountsView) Count(toyID string) (int64, error) {
	const op = "FavoriteCountsView.Count"

	value, err := v.gv.Get(toyID)
	if err != nil {
		return 0, opErr(err, op)
	}
	if value == nil {
		return 0, nil
	}

	cnt, ok := value.(countValue)
	if !ok {
		return 0, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, value), op,
		)
	}
	return int64(cnt), nil
}

// TopToys returns up to n toys ordered by favorite count descending.
func (v *FavoriteCountsView) TopToys(n int) ([]domain.FavoriteCount, error) {
	const op = "FavoriteCountsView.TopToys"

	it, err := v.gv.Iterator()
	if err != nil {
		return nil, opErr(err, op)
	}
	defer it.Release()

	var counts []domain.FavoriteCount
	for it.Next() {
		value, err := it.Value()
		if err != nil {
			return nil, opErr(err, op)
		}
		cnt, ok := value.(countValue)
		if !ok || cnt == 0 {
			continue
		}
		counts = append(counts, domain.FavoriteCount{
			ToyID: it.Key(),
			Count: int64(cnt),
		})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts, nil
}
