// Package outbox keeps outgoing messages until a swarm accepts them or they fail terminally.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log"
	"github.com/swarmsend/go-swarmsend/sql"
	"github.com/swarmsend/go-swarmsend/sql/pending"
)

// Callback is notified once with the outcome of a message. hash is empty on failure.
type Callback func(msg *types.OutgoingRawMessage, hash string, err error)

type key struct {
	dest types.PublicKey
	id   types.MessageID
}

// Outbox is the durable queue of outgoing messages.
// Entries survive restarts. Callbacks are held in memory only.
type Outbox struct {
	db     sql.Executor
	logger *zap.Logger

	mu        sync.Mutex
	callbacks map[key]Callback
}

type Opt func(*Outbox)

func WithLogger(logger *zap.Logger) Opt {
	return func(o *Outbox) {
		o.logger = logger
	}
}

func New(db sql.Executor, opts ...Opt) *Outbox {
	o := &Outbox{
		db:        db,
		logger:    zap.NewNop(),
		callbacks: map[key]Callback{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Add persists msg. Adding a message that is already pending is a no-op and keeps the
// original callback.
func (o *Outbox) Add(ctx context.Context, msg *types.OutgoingRawMessage, cb Callback) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	err := pending.Add(o.db, msg)
	switch {
	case errors.Is(err, sql.ErrObjectExists):
		o.logger.Debug("message already pending",
			log.ZContext(ctx),
			zap.Stringer("destination", msg.Destination),
			zap.String("id", string(msg.ID)),
		)
		return nil
	case err != nil:
		return fmt.Errorf("outbox add: %w", err)
	}
	if cb != nil {
		o.callbacks[key{msg.Destination, msg.ID}] = cb
	}
	o.updateGauge()
	return nil
}

// Get returns a pending message. Returns sql.ErrNotFound if it isn't pending.
func (o *Outbox) Get(dest types.PublicKey, id types.MessageID) (*types.OutgoingRawMessage, error) {
	return pending.Get(o.db, dest, id)
}

// List returns the pending messages of dest in insertion order.
func (o *Outbox) List(dest types.PublicKey) ([]*types.OutgoingRawMessage, error) {
	return pending.List(o.db, dest)
}

// Destinations returns every destination with pending messages.
func (o *Outbox) Destinations() ([]types.PublicKey, error) {
	return pending.Destinations(o.db)
}

// Callback returns the callback registered with the message, nil if there is none.
func (o *Outbox) Callback(dest types.PublicKey, id types.MessageID) Callback {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.callbacks[key{dest, id}]
}

// Remove drops a message and its callback. Removing a missing message is not an error.
func (o *Outbox) Remove(dest types.PublicKey, id types.MessageID) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := pending.Remove(o.db, dest, id); err != nil {
		return fmt.Errorf("outbox remove: %w", err)
	}
	delete(o.callbacks, key{dest, id})
	o.updateGauge()
	return nil
}

// Count returns the number of pending messages.
func (o *Outbox) Count() (int, error) {
	return pending.Count(o.db)
}

func (o *Outbox) updateGauge() {
	n, err := pending.Count(o.db)
	if err != nil {
		return
	}
	pendingMessages.Set(float64(n))
}
