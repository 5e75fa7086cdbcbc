package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

// A producer is used for composition.
//
// Producing records to the broker and closing the underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

var _ port.FavoriteEventsProducer = (*FavoriteEventsProducer)(nil)

// A FavoriteEventsProducer produces [domain.FavoriteEvent] records keyed
// by toy id, so the counter processor folds per toy.
type FavoriteEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewFavoriteEventsProducer(
	opts ...ProducerOpt,
) (FavoriteEventsProducer, error) {
	const op = "NewFavoriteEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return FavoriteEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "FavoriteEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return FavoriteEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p FavoriteEventsProducer) Close() {
	p.producer.close()
}

func (p FavoriteEventsProducer) ProduceEvent(
	ctx context.Context, v domain.FavoriteEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(v)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p FavoriteEventsProducer) createRecord(
	v domain.FavoriteEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := favoriteEventToSchemaV1(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.ToyID), Value: b}, nil
}
