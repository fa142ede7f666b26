// Package configsync pushes local config changes to the swarm and persists wrapper dumps.
package configsync

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log"
	"github.com/swarmsend/go-swarmsend/namespace"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
	"github.com/swarmsend/go-swarmsend/sql"
	"github.com/swarmsend/go-swarmsend/sql/dumps"
)

var (
	// ErrPushFailed is returned when a node rejected one of the config stores.
	ErrPushFailed = errors.New("configsync: push failed")
	// ErrNoSwarm is returned when the destination swarm has no usable node.
	ErrNoSwarm = errors.New("configsync: empty swarm")
)

type Config struct {
	// TTL of stored config messages.
	TTL time.Duration `mapstructure:"ttl"`
	// Interval between two background syncs.
	Interval time.Duration `mapstructure:"interval"`
}

func DefaultConfig() Config {
	return Config{
		TTL:      30 * 24 * time.Hour,
		Interval: 30 * time.Second,
	}
}

// Change is one config to store.
type Change struct {
	// Kind is set for user configs only.
	Kind      Kind
	Namespace namespace.Namespace
	Data      [][]byte
	// Seqno is nil for a key rotation.
	Seqno *int64
}

// PendingChanges are the changes of one destination that are pushed together.
type PendingChanges struct {
	Changes []Change
	// AllOldHashes is the deduplicated set of hashes superseded by Changes.
	AllOldHashes []string
}

// Empty returns true if there is nothing to push.
func (p *PendingChanges) Empty() bool {
	return len(p.Changes) == 0 && len(p.AllOldHashes) == 0
}

// Reconciler pushes the pending changes of the registered wrappers.
type Reconciler struct {
	logger *zap.Logger
	clock  clockwork.Clock
	cfg    Config

	db       sql.Executor
	registry *Registry
	user     request.UserSigner
	groups   groupSigners
	swarms   swarmResolver
	exec     executor

	// pushes of one reconciler never overlap
	mu sync.Mutex
}

type Opt func(*Reconciler)

func WithLogger(logger *zap.Logger) Opt {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(r *Reconciler) {
		r.clock = clock
	}
}

func WithConfig(cfg Config) Opt {
	return func(r *Reconciler) {
		r.cfg = cfg
	}
}

func New(
	db sql.Executor,
	registry *Registry,
	user request.UserSigner,
	groups groupSigners,
	swarms swarmResolver,
	exec executor,
	opts ...Opt,
) *Reconciler {
	r := &Reconciler{
		logger:   zap.NewNop(),
		clock:    clockwork.NewRealClock(),
		cfg:      DefaultConfig(),
		db:       db,
		registry: registry,
		user:     user,
		groups:   groups,
		swarms:   swarms,
		exec:     exec,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PendingChangesForUs collects the changes of the user wrappers.
func (r *Reconciler) PendingChangesForUs(ctx context.Context) (*PendingChanges, error) {
	rst := &PendingChanges{}
	var hashes [][]string
	for _, kind := range UserKinds {
		w, err := r.registry.User(kind)
		if errors.Is(err, ErrNotInitialized) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !w.NeedsPush() {
			continue
		}
		push, err := w.Push()
		if err != nil {
			return nil, fmt.Errorf("push %s: %w", kind, err)
		}
		ns, err := kind.Namespace()
		if err != nil {
			return nil, err
		}
		seqno := push.Seqno
		rst.Changes = append(rst.Changes, Change{Kind: kind, Namespace: ns, Data: push.Data, Seqno: &seqno})
		hashes = append(hashes, push.Hashes)
		r.logger.Debug("pending config change",
			log.ZContext(ctx),
			zap.Stringer("namespace", ns),
			zap.Int64("seqno", seqno),
			zap.Int("chunks", len(push.Data)),
		)
	}
	rst.AllOldHashes = merge(hashes...)
	return rst, nil
}

// PendingChangesForGroup collects the changes of group pk. A key rotation comes first.
func (r *Reconciler) PendingChangesForGroup(ctx context.Context, pk types.PublicKey) (*PendingChanges, error) {
	g, err := r.registry.Group(pk)
	if err != nil {
		return nil, err
	}
	rst := &PendingChanges{}
	if !g.NeedsPush() {
		return rst, nil
	}
	push, err := g.Push()
	if err != nil {
		return nil, fmt.Errorf("push group %s: %w", pk.ShortString(), err)
	}
	hashes := [][]string{push.Hashes}
	if len(push.Keys) > 0 {
		rst.Changes = append(rst.Changes, Change{Namespace: namespace.GroupKeys, Data: push.Keys})
	}
	for _, part := range []struct {
		ns   namespace.Namespace
		push *PushResult
	}{
		{namespace.GroupInfo, push.Info},
		{namespace.GroupMembers, push.Members},
	} {
		if part.push == nil {
			continue
		}
		seqno := part.push.Seqno
		rst.Changes = append(rst.Changes, Change{Namespace: part.ns, Data: part.push.Data, Seqno: &seqno})
		hashes = append(hashes, part.push.Hashes)
	}
	rst.AllOldHashes = merge(hashes...)
	r.logger.Debug("pending group changes",
		log.ZContext(ctx),
		zap.Stringer("group", pk),
		zap.Int("changes", len(rst.Changes)),
		zap.Int("old hashes", len(rst.AllOldHashes)),
	)
	return rst, nil
}

// merge returns the non empty hashes of lists, deduplicated in the order they are first seen.
func merge(lists ...[]string) []string {
	seen := map[string]struct{}{}
	var rst []string
	for _, list := range lists {
		for _, h := range list {
			if _, ok := seen[h]; ok || h == "" {
				continue
			}
			seen[h] = struct{}{}
			rst = append(rst, h)
		}
	}
	return rst
}

type entry struct {
	req request.SubRequest
	// change is the index in PendingChanges.Changes, -1 for the delete of old hashes.
	change int
}

// Push stores changes in the swarm of dest and deletes the superseded hashes in one
// sequence call. On success the wrappers are confirmed and dumped.
func (r *Reconciler) Push(ctx context.Context, dest types.PublicKey, changes *PendingChanges) error {
	if changes.Empty() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.requests(dest, changes)
	if err != nil {
		return err
	}
	// keep the executor order so results map back to entries
	slices.SortStableFunc(entries, func(a, b entry) int {
		return a.req.Order() - b.req.Order()
	})
	reqs := make([]request.SubRequest, 0, len(entries))
	for _, e := range entries {
		reqs = append(reqs, e.req)
	}

	swarm, err := r.swarms.SwarmFor(ctx, dest)
	if err != nil {
		pushesFailed.Inc()
		return fmt.Errorf("swarm for %s: %w", dest.ShortString(), err)
	}
	if len(swarm) == 0 {
		pushesFailed.Inc()
		return fmt.Errorf("%w: %s", ErrNoSwarm, dest.ShortString())
	}
	node := swarm[rand.IntN(len(swarm))]
	results, err := r.exec.Execute(ctx, node, reqs, batch.WithMode(batch.ModeSequence))
	if err != nil {
		pushesFailed.Inc()
		return fmt.Errorf("push config to %s: %w", dest.ShortString(), err)
	}

	hashes := make([][]string, len(changes.Changes))
	for i, res := range results {
		e := entries[i]
		if e.change < 0 {
			if !res.OK() {
				r.logger.Warn("failed to delete superseded config",
					log.ZContext(ctx),
					zap.Stringer("destination", dest),
					zap.Int("code", res.Code),
				)
			}
			continue
		}
		if !res.OK() {
			pushesFailed.Inc()
			return fmt.Errorf("%w: %s to %s status %d",
				ErrPushFailed, e.req.LoggingID(), dest.ShortString(), res.Code)
		}
		hash, err := request.ParseStore(res.Body)
		if err != nil {
			pushesFailed.Inc()
			return fmt.Errorf("%w: %s: %w", ErrPushFailed, e.req.LoggingID(), err)
		}
		hashes[e.change] = append(hashes[e.change], hash)
	}
	pushesOK.Inc()
	if err := r.confirm(dest, changes, hashes); err != nil {
		return err
	}
	return r.SaveDumps(dest)
}

func (r *Reconciler) requests(dest types.PublicKey, changes *PendingChanges) ([]entry, error) {
	var entries []entry
	switch {
	case dest.IsGroup():
		signer, err := r.groups.GroupSigner(dest)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", request.ErrMissingSigningMaterial, err)
		}
		for i, c := range changes.Changes {
			for _, data := range c.Data {
				sr, err := request.NewStoreGroupConfig(signer, c.Namespace, data, r.cfg.TTL)
				if err != nil {
					return nil, err
				}
				entries = append(entries, entry{req: sr, change: i})
			}
		}
		if len(changes.AllOldHashes) > 0 {
			sr, err := request.NewDeleteHashesGroup(signer, changes.AllOldHashes)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{req: sr, change: -1})
		}
	case dest == r.user.SessionID():
		for i, c := range changes.Changes {
			for _, data := range c.Data {
				sr, err := request.NewStoreUserConfig(r.user, c.Namespace, data, r.cfg.TTL)
				if err != nil {
					return nil, err
				}
				entries = append(entries, entry{req: sr, change: i})
			}
		}
		if len(changes.AllOldHashes) > 0 {
			sr, err := request.NewDeleteHashesUser(r.user, changes.AllOldHashes)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{req: sr, change: -1})
		}
	default:
		return nil, fmt.Errorf("%w: config of %s", request.ErrInvalidDestination, dest.ShortString())
	}
	return entries, nil
}

func (r *Reconciler) confirm(dest types.PublicKey, changes *PendingChanges, hashes [][]string) error {
	if dest.IsGroup() {
		g, err := r.registry.Group(dest)
		if err != nil {
			return err
		}
		for i, c := range changes.Changes {
			if c.Seqno != nil {
				g.ConfirmPushed(c.Namespace, *c.Seqno, hashes[i])
			}
		}
		return nil
	}
	for i, c := range changes.Changes {
		w, err := r.registry.User(c.Kind)
		if err != nil {
			return err
		}
		if c.Seqno != nil {
			w.ConfirmPushed(*c.Seqno, hashes[i])
		}
	}
	return nil
}

// SaveDumps persists the wrappers of dest that need a dump.
func (r *Reconciler) SaveDumps(dest types.PublicKey) error {
	if dest.IsGroup() {
		g, err := r.registry.Group(dest)
		if err != nil {
			return err
		}
		if !g.NeedsDump() {
			return nil
		}
		return r.save(GroupDumpVariant(dest), dest, g.Dump)
	}
	var errs []error
	for _, kind := range UserKinds {
		w, err := r.registry.User(kind)
		if err != nil {
			continue
		}
		if !w.NeedsDump() {
			continue
		}
		if err := r.save(string(kind), dest, w.Dump); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Reconciler) save(variant string, pk types.PublicKey, dump func() ([]byte, error)) error {
	data, err := dump()
	if err != nil {
		return fmt.Errorf("dump %s: %w", variant, err)
	}
	written, err := dumps.Save(r.db, dumps.Dump{
		Variant:   variant,
		PublicKey: pk,
		Data:      data,
		UpdatedAt: r.clock.Now(),
	})
	if err != nil {
		return err
	}
	if written {
		dumpsWritten.Inc()
	}
	return nil
}

// LoadDumps returns the stored dumps of pk so that wrappers can be rehydrated.
func (r *Reconciler) LoadDumps(pk types.PublicKey) ([]dumps.Dump, error) {
	return dumps.ForPublicKey(r.db, pk)
}

// Forget frees the wrapper of group pk and deletes its dumps.
func (r *Reconciler) Forget(pk types.PublicKey) error {
	r.registry.Free(pk)
	return dumps.Delete(r.db, pk)
}

// Sync pushes the pending changes of our own wrappers and of every group.
func (r *Reconciler) Sync(ctx context.Context) error {
	var errs []error
	uctx := log.WithNewRequestID(ctx, zap.Stringer("destination", r.user.SessionID()))
	ours, err := r.PendingChangesForUs(uctx)
	if err == nil {
		err = r.Push(uctx, r.user.SessionID(), ours)
	}
	if err != nil {
		errs = append(errs, err)
	}
	for _, pk := range r.registry.Groups() {
		gctx := log.WithNewRequestID(ctx, zap.Stringer("destination", pk))
		changes, err := r.PendingChangesForGroup(gctx, pk)
		if err == nil {
			err = r.Push(gctx, pk, changes)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("group %s: %w", pk.ShortString(), err))
		}
	}
	return errors.Join(errs...)
}

// Run syncs every configured interval until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	ticker := r.clock.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		if err := r.Sync(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("config sync failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}
	}
}
