// Package dispatch delivers outgoing messages from the outbox to destination swarms.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log"
	"github.com/swarmsend/go-swarmsend/outbox"
	"github.com/swarmsend/go-swarmsend/sql"
)

var (
	// ErrSelfSend is logged when a non sync message is addressed to our own swarm.
	ErrSelfSend = errors.New("dispatch: message to self is not a sync message")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("dispatch: closed")
	// ErrOpenGroupRejected is returned when the server did not assign a message id.
	ErrOpenGroupRejected = errors.New("dispatch: open group server rejected message")
	// ErrNoOpenGroupSender is returned by SendToOpenGroup when no open group sender is configured.
	ErrNoOpenGroupSender = errors.New("dispatch: no open group sender")
)

type Config struct {
	// Attempts is the number of swarm nodes tried for one message.
	Attempts int `mapstructure:"attempts"`
	// DefaultTTL is used for messages enqueued without a ttl.
	DefaultTTL time.Duration `mapstructure:"default-ttl"`
}

func DefaultConfig() Config {
	return Config{
		Attempts:   3,
		DefaultTTL: 14 * 24 * time.Hour,
	}
}

// OpenGroupMessage is a message posted to a room of an open group server.
type OpenGroupMessage struct {
	ID     types.MessageID
	Server string
	Room   string
	Data   []byte
}

// OpenGroupCallback is notified with the outcome of an open group send.
type OpenGroupCallback func(msg *OpenGroupMessage, serverID, serverTimestamp int64, err error)

// Dispatcher runs one job queue per destination. Jobs of a destination run one at a time,
// different destinations are served concurrently.
type Dispatcher struct {
	logger    *zap.Logger
	clock     clockwork.Clock
	cfg       Config
	self      types.PublicKey
	outbox    *outbox.Outbox
	sender    Sender
	openGroup OpenGroupSender

	ctx    context.Context
	cancel context.CancelFunc
	eg     errgroup.Group

	mu     sync.Mutex
	closed bool
	queues map[types.PublicKey]*queue
}

// queue holds the ids waiting for a destination. ids contains both queued and in flight ids.
type queue struct {
	order []types.MessageID
	ids   map[types.MessageID]struct{}
}

type Opt func(*Dispatcher)

func WithLogger(logger *zap.Logger) Opt {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(d *Dispatcher) {
		d.clock = clock
	}
}

func WithConfig(cfg Config) Opt {
	return func(d *Dispatcher) {
		d.cfg = cfg
	}
}

func WithOpenGroupSender(sender OpenGroupSender) Opt {
	return func(d *Dispatcher) {
		d.openGroup = sender
	}
}

// New creates a dispatcher for the account self.
func New(self types.PublicKey, ob *outbox.Outbox, sender Sender, opts ...Opt) *Dispatcher {
	d := &Dispatcher{
		logger: zap.NewNop(),
		clock:  clockwork.NewRealClock(),
		cfg:    DefaultConfig(),
		self:   self,
		outbox: ob,
		sender: sender,
		queues: map[types.PublicKey]*queue{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	return d
}

type sendOpts struct {
	sync bool
}

type SendOpt func(*sendOpts)

// IsSyncMessage marks a message that is addressed to our own swarm on purpose.
func IsSyncMessage() SendOpt {
	return func(o *sendOpts) {
		o.sync = true
	}
}

// Send enqueues msg and schedules its delivery. cb is called once with the outcome.
// A message to ourselves that is not a sync message is dropped.
func (d *Dispatcher) Send(ctx context.Context, msg *types.OutgoingRawMessage, cb outbox.Callback, opts ...SendOpt) error {
	err := d.prepare(msg, opts)
	if errors.Is(err, ErrSelfSend) {
		d.logger.Debug("dropping message",
			log.ZContext(ctx),
			zap.String("id", string(msg.ID)),
			zap.Error(err),
		)
		return nil
	}
	if err != nil {
		return err
	}
	if err := d.outbox.Add(ctx, msg, cb); err != nil {
		return err
	}
	return d.ProcessPending(ctx, msg.Destination)
}

// SendNonDurably stores msg right away, bypassing the outbox. It is meant for short lived
// messages that are useless after a restart, such as typing indicators and call offers.
// It returns the hash and the timestamp the message was stored with.
func (d *Dispatcher) SendNonDurably(ctx context.Context, msg *types.OutgoingRawMessage, opts ...SendOpt) (string, time.Time, error) {
	if err := d.prepare(msg, opts); err != nil {
		return "", time.Time{}, err
	}
	ctx = log.WithRequestID(ctx, string(msg.ID), zap.Stringer("destination", msg.Destination))
	start := time.Now()
	hash, err := d.sender.Send(ctx, msg)
	if err != nil {
		sendsFailed.Inc()
		d.logger.Debug("non durable send failed", log.ZContext(ctx), zap.Error(err))
		return "", time.Time{}, err
	}
	sendDuration.Observe(time.Since(start).Seconds())
	sendsOK.Inc()
	return hash, msg.CreatedAt, nil
}

// prepare normalizes the destination of msg and fills in the defaults. It returns
// ErrSelfSend for a message to ourselves that is not a sync message.
func (d *Dispatcher) prepare(msg *types.OutgoingRawMessage, opts []SendOpt) error {
	var o sendOpts
	for _, opt := range opts {
		opt(&o)
	}
	dest, err := types.ParsePublicKey(string(msg.Destination))
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	msg.Destination = dest
	if dest == d.self && !o.sync {
		return ErrSelfSend
	}
	if d.isClosed() {
		return ErrClosed
	}
	if msg.ID == "" {
		msg.ID = types.MessageID(uuid.NewString())
	}
	if msg.TTL <= 0 {
		msg.TTL = d.cfg.DefaultTTL
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = d.clock.Now()
	}
	msg.Sync = o.sync
	return nil
}

// ProcessPending schedules every pending message of dest that is not queued or in flight yet.
func (d *Dispatcher) ProcessPending(ctx context.Context, dest types.PublicKey) error {
	msgs, err := d.outbox.List(dest)
	if err != nil {
		return fmt.Errorf("list pending for %s: %w", dest.ShortString(), err)
	}
	for _, msg := range msgs {
		if d.enqueue(dest, msg.ID) {
			d.logger.Debug("message queued",
				log.ZContext(ctx),
				zap.Stringer("destination", dest),
				zap.String("id", string(msg.ID)),
			)
		}
	}
	return nil
}

// ProcessAllPending schedules the pending messages of every destination.
func (d *Dispatcher) ProcessAllPending(ctx context.Context) error {
	dests, err := d.outbox.Destinations()
	if err != nil {
		return fmt.Errorf("pending destinations: %w", err)
	}
	for _, dest := range dests {
		if err := d.ProcessPending(ctx, dest); err != nil {
			return err
		}
	}
	d.logger.Info("recovered pending messages", zap.Int("destinations", len(dests)))
	return nil
}

func (d *Dispatcher) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Dispatcher) enqueue(dest types.PublicKey, id types.MessageID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	q, ok := d.queues[dest]
	if !ok {
		q = &queue{ids: map[types.MessageID]struct{}{}}
		d.queues[dest] = q
		d.eg.Go(func() error {
			d.work(dest, q)
			return nil
		})
	}
	if _, ok := q.ids[id]; ok {
		return false
	}
	q.ids[id] = struct{}{}
	q.order = append(q.order, id)
	queueDepth.Inc()
	return true
}

// next pops the next id of q. The worker exits and the queue is dropped once it is empty.
func (d *Dispatcher) next(dest types.PublicKey, q *queue) (types.MessageID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(q.order) == 0 || d.ctx.Err() != nil {
		queueDepth.Sub(float64(len(q.order)))
		delete(d.queues, dest)
		return "", false
	}
	id := q.order[0]
	q.order = q.order[1:]
	return id, true
}

func (d *Dispatcher) done(q *queue, id types.MessageID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(q.ids, id)
	queueDepth.Dec()
}

func (d *Dispatcher) work(dest types.PublicKey, q *queue) {
	for {
		id, ok := d.next(dest, q)
		if !ok {
			return
		}
		d.run(dest, id)
		d.done(q, id)
	}
}

func (d *Dispatcher) run(dest types.PublicKey, id types.MessageID) {
	ctx := log.WithRequestID(d.ctx, string(id), zap.Stringer("destination", dest))
	msg, err := d.outbox.Get(dest, id)
	if errors.Is(err, sql.ErrNotFound) {
		return
	}
	if err != nil {
		d.logger.Error("failed to load pending message", log.ZContext(ctx), zap.Error(err))
		return
	}
	start := time.Now()
	hash, err := d.sender.Send(ctx, msg)
	if ctx.Err() != nil {
		// closing, the message stays in the outbox for the next start
		return
	}
	sendDuration.Observe(time.Since(start).Seconds())
	cb := d.outbox.Callback(dest, id)
	if err != nil {
		sendsFailed.Inc()
		d.logger.Warn("message delivery failed", log.ZContext(ctx), zap.Error(err))
		if cb != nil {
			cb(msg, "", err)
		}
	} else {
		sendsOK.Inc()
		d.logger.Debug("message delivered", log.ZContext(ctx), zap.String("hash", hash))
		if cb != nil {
			cb(msg, hash, nil)
		}
	}
	if err := d.outbox.Remove(dest, id); err != nil {
		d.logger.Error("failed to remove delivered message", log.ZContext(ctx), zap.Error(err))
	}
}

// SendToOpenGroup posts msg to an open group server. It doesn't use the outbox and cb is
// called before it returns.
func (d *Dispatcher) SendToOpenGroup(ctx context.Context, msg *OpenGroupMessage, cb OpenGroupCallback) error {
	if d.openGroup == nil {
		return ErrNoOpenGroupSender
	}
	if msg.ID == "" {
		msg.ID = types.MessageID(uuid.NewString())
	}
	serverID, ts, err := d.openGroup.Send(ctx, msg)
	if err == nil && (serverID == -1 || serverID == 0) {
		err = fmt.Errorf("%w: server id %d", ErrOpenGroupRejected, serverID)
	}
	if err != nil {
		openGroupFailed.Inc()
		d.logger.Warn("open group send failed",
			log.ZContext(ctx),
			zap.String("server", msg.Server),
			zap.String("room", msg.Room),
			zap.Error(err),
		)
		if cb != nil {
			cb(msg, 0, 0, err)
		}
		return err
	}
	openGroupOK.Inc()
	if cb != nil {
		cb(msg, serverID, ts, nil)
	}
	return nil
}

// Close stops all workers and waits for in flight jobs to return.
// Queued messages stay in the outbox.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.cancel()
	return d.eg.Wait()
}
