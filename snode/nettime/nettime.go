// Package nettime tracks the offset between the local clock and the network clock.
package nettime

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

//go:generate mockgen -typed -package=nettime -destination=./mocks.go -source=./nettime.go

type executor interface {
	Execute(ctx context.Context, node types.SwarmNode, reqs []request.SubRequest, opts ...batch.CallOpt) ([]batch.Result, error)
}

// Tracker adjusts the local clock by the last offset reported by a node.
type Tracker struct {
	clock  clockwork.Clock
	logger *zap.Logger
	offset atomic.Int64
}

type Opt func(*Tracker)

func WithClock(clock clockwork.Clock) Opt {
	return func(t *Tracker) {
		t.clock = clock
	}
}

func WithLogger(logger *zap.Logger) Opt {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func New(opts ...Opt) *Tracker {
	t := &Tracker{
		clock:  clockwork.NewRealClock(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the local time corrected by the network offset.
func (t *Tracker) Now() time.Time {
	return t.clock.Now().Add(t.Offset())
}

// Offset returns the last recorded difference between the network and the local clock.
func (t *Tracker) Offset() time.Duration {
	return time.Duration(t.offset.Load())
}

// Sync asks node for its clock and records the offset.
func (t *Tracker) Sync(ctx context.Context, exec executor, node types.SwarmNode) error {
	rst, err := exec.Execute(ctx, node, []request.SubRequest{request.NewNetworkTime()})
	if err != nil {
		return fmt.Errorf("network time from %s: %w", node, err)
	}
	if !rst[0].OK() {
		return fmt.Errorf("network time from %s: status %d", node, rst[0].Code)
	}
	remote, err := request.ParseNetworkTime(rst[0].Body)
	if err != nil {
		return fmt.Errorf("network time from %s: %w", node, err)
	}
	offset := remote.Sub(t.clock.Now())
	t.offset.Store(int64(offset))
	t.logger.Debug("network time synced",
		zap.Stringer("node", node),
		zap.Duration("offset", offset),
	)
	offsetSeconds.Set(offset.Seconds())
	return nil
}
