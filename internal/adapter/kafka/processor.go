package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A favoriteEventCodec used for serde [schema.FavoriteEventV1]
type favoriteEventCodec struct {
	serde Serde
}

func newFavoriteEventCodec(s Serde) favoriteEventCodec {
	return favoriteEventCodec{s}
}

func (c favoriteEventCodec) Encode(v any) ([]byte, error) {
	const op = "favoriteEventCodec.Encode"
	if _, ok := v.(schema.FavoriteEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c favoriteEventCodec) Decode(data []byte) (any, error) {
	const op = "favoriteEventCodec.Decode"
	var s schema.FavoriteEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A countValue is the folded favorite counter for one toy.
type countValue int64

// A countValueCodec used for serde [countValue]
type countValueCodec struct{}

func (countValueCodec) Encode(v any) ([]byte, error) {
	const op = "countValueCodec.Encode"
	cv, ok := v.(countValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), int64(cv), 10), nil
}

func (countValueCodec) Decode(data []byte) (any, error) {
	const op = "countValueCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return countValue(n), nil
}

// A FavoriteCounterProcessor folds the favorite-events stream into a
// per-toy counter group table: +1 on add, -1 on remove, never below zero.
type FavoriteCounterProcessor struct {
	opPrefix string
	proc     processor
}

func NewFavoriteCounterProc(
	seedBrokers []string,
	inputStream string,
	group string,
	eventSerde Serde,
) (*FavoriteCounterProcessor, error) {
	const op = "NewFavoriteCounterProc"

	p := &FavoriteCounterProcessor{opPrefix: "FavoriteCounterProcessor"}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			newFavoriteEventCodec(eventSerde),
			p.processFn,
		),
		goka.Persist(countValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return p, nil
}

func (p *FavoriteCounterProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *FavoriteCounterProcessor) Close() {
	p.proc.close()
}

func (p *FavoriteCounterProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.FavoriteEventV1)

	var cnt countValue
	if v := ctx.Value(); v != nil {
		cnt, _ = v.(countValue)
	}

	cnt, ok := foldCount(cnt, domain.FavoriteAction(event.Action))
	if !ok {
		log.Warn("unknown favorite action", "action", event.Action)
		return
	}

	ctx.SetValue(cnt)
	log.Info("set favorite count", "toyID", ctx.Key(), "count", int64(cnt))
}

// foldCount applies one favorite action to a toy's counter. The counter
// never goes below zero.
func foldCount(cnt countValue, action domain.FavoriteAction) (countValue, bool) {
	switch action {
	case domain.FavoriteAdded:
		return cnt + 1, true
	case domain.FavoriteRemoved:
		if cnt > 0 {
			return cnt - 1, true
		}
		return 0, true
	default:
		return cnt, false
	}
}
