package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
	"github.com/toytopia/toystore/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

type ConsumerOpt func(*consumerOpts) error

func ConsumerClientOpt(
	seedBrokers []string, topic, group string,
) ConsumerOpt {
	return func(co *consumerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumerGroup(group),
			kgo.DisableAutoCommit(),
		)
		if err != nil {
			return err
		}
		co.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(co *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		co.decoder = decoder
		return nil
	}
}

func EventsConsumerSaverOpt(s port.FavoriteEventsStorage) ConsumerOpt {
	return func(co *consumerOpts) error {
		if s == nil {
			return errors.New("events saver is nil")
		}
		co.eventsSaver = s
		return nil
	}
}

type consumerOpts struct {
	cl          ConsumerClient
	decoder     Decoder
	eventsSaver port.FavoriteEventsStorage
}

func (co *consumerOpts) apply(opts ...ConsumerOpt) error {
	for _, opt := range opts {
		if err := opt(co); err != nil {
			return err
		}
	}
	return nil
}

// A consumer is used for composition.
//
// Fetching records from the broker and closing the underlying [kgo.Client].

type consumerParent interface {
	processFetches(context.Context, kgo.Fetches) error
}

type consumer struct {
	opPrefix      string
	parent        consumerParent
	cl            ConsumerClient
	slowDownTimer *time.Timer
}

func (c consumer) run(ctx context.Context) {
	const op = "run"
	log := slog.With("op", makeOp(c.opPrefix, op))

	log.Info("running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				log.Error("failed to consume", "err", err)
				c.slowDown()
			}
		}
	}
}

func (c consumer) consume(ctx context.Context) error {
	const op = "consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	if fetches.Empty() {
		return nil
	}

	err = c.parent.processFetches(ctx, fetches)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.commit(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	err := c.handleFetchesErrs(fetches)
	if err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	return fetches, nil
}

func (c consumer) handleFetchesErrs(fetches kgo.Fetches) error {
	var errsMessages []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errMsg := fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			)
			errsMessages = append(errsMessages, errMsg)
		}
	})

	if len(errsMessages) != 0 {
		return errors.New(strings.Join(errsMessages, "; "))
	}
	return nil
}

func (c consumer) slowDown() {
	c.slowDownTimer.Reset(1 * time.Second)
	<-c.slowDownTimer.C
}

func (c consumer) commit(ctx context.Context) error {
	const op = "commit"

	err := ctx.Err()
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) close() {
	const op = "close"
	log := slog.With("op", makeOp(c.opPrefix, op))

	c.slowDownTimer.Stop()

	log.Info("closing consumer...")
	c.cl.Close()
	log.Info("consumer is closed")
}

// A FavoriteEventsConsumer consumes favorite events then sends them to
// the archive storage.
type FavoriteEventsConsumer struct {
	opPrefix string
	consumer consumer
	saver    port.FavoriteEventsStorage
	decoder  Decoder
}

func NewFavoriteEventsConsumer(
	opts ...ConsumerOpt,
) (fc FavoriteEventsConsumer, err error) {
	const op = "NewFavoriteEventsConsumer"

	var options consumerOpts
	if err := options.apply(opts...); err != nil {
		return fc, opErr(err, op)
	}

	opPrefix := "FavoriteEventsConsumer"

	fc.opPrefix = opPrefix
	fc.saver = options.eventsSaver
	fc.decoder = options.decoder

	fc.consumer = consumer{
		opPrefix:      opPrefix,
		parent:        fc,
		cl:            options.cl,
		slowDownTimer: time.NewTimer(0),
	}

	return fc, nil
}

func (c FavoriteEventsConsumer) Run(ctx context.Context) {
	c.consumer.run(ctx)
}

func (c FavoriteEventsConsumer) Close() {
	c.consumer.close()
}

func (c FavoriteEventsConsumer) processFetches(
	ctx context.Context, fetches kgo.Fetches,
) error {
	const op = "processFetches"

	values := c.toDomain(fetches)
	if len(values) == 0 {
		return nil
	}

	err := c.saver.StoreEvents(ctx, values)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c FavoriteEventsConsumer) toDomain(
	fetches kgo.Fetches,
) (vs []domain.FavoriteEvent) {
	const op = "toDomain"
	log := slog.With("op", makeOp(c.opPrefix, op))

	fetches.EachRecord(func(r *kgo.Record) {
		v, err := c.decodeRecValue(r)
		if err != nil {
			log.Error(
				"failed to decode value",
				"err", opErr(err, c.opPrefix, op),
			)
			return
		}
		vs = append(vs, v)
	})
	return vs
}

func (c FavoriteEventsConsumer) decodeRecValue(
	r *kgo.Record,
) (domain.FavoriteEvent, error) {
	var s schema.FavoriteEventV1
	err := c.decoder.Decode(r.Value, &s)
	if err != nil {
		return domain.FavoriteEvent{}, err
	}
	return schemaV1ToFavoriteEvent(s), nil
}
