package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lovoo/goka"
	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func favoriteEventToSchemaV1(v domain.FavoriteEvent) schema.FavoriteEventV1 {
	return schema.FavoriteEventV1{
		UserID:     v.UserID,
		ToyID:      v.ToyID,
		Action:     string(v.Action),
		OccurredAt: v.OccurredAt,
	}
}

func schemaV1ToFavoriteEvent(s schema.FavoriteEventV1) domain.FavoriteEvent {
	return domain.FavoriteEvent{
		UserID:     s.UserID,
		ToyID:      s.ToyID,
		Action:     domain.FavoriteAction(s.Action),
		OccurredAt: s.OccurredAt,
	}
}
