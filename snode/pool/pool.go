// Package pool maintains the local list of storage nodes and the swarms of destinations.
package pool

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/swarmsend/go-swarmsend/bootstrap"
	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/snode/request"
	"github.com/swarmsend/go-swarmsend/sql"
	"github.com/swarmsend/go-swarmsend/sql/snodes"
)

var (
	// ErrConsensus is returned when the queried nodes disagree on the node list.
	ErrConsensus = errors.New("pool: not enough nodes in agreement")
	// ErrPoolTooSmall is returned when the pool can't provide the requested number of nodes.
	ErrPoolTooSmall = errors.New("pool: not enough nodes")
	// ErrEmptySwarm is returned when no node of a swarm is known.
	ErrEmptySwarm = errors.New("pool: empty swarm")
)

type Config struct {
	// MinPoolSize is the size at or below which the pool is refreshed from the seeds.
	MinPoolSize int `mapstructure:"min-pool-size"`
	// ConsensusNodes is the number of nodes queried for their view of the network.
	ConsensusNodes int `mapstructure:"consensus-nodes"`
	// RequiredAgreement is the minimal number of nodes every queried node must report.
	RequiredAgreement int `mapstructure:"required-agreement"`

	SeedRetries       uint64        `mapstructure:"seed-retries"`
	SeedRetryInterval time.Duration `mapstructure:"seed-retry-interval"`

	SwarmCacheSize int           `mapstructure:"swarm-cache-size"`
	SwarmCacheTTL  time.Duration `mapstructure:"swarm-cache-ttl"`
	SwarmAttempts  int           `mapstructure:"swarm-attempts"`
}

func DefaultConfig() Config {
	return Config{
		MinPoolSize:       24,
		ConsensusNodes:    3,
		RequiredAgreement: 24,
		SeedRetries:       3,
		SeedRetryInterval: time.Second,
		SwarmCacheSize:    1024,
		SwarmCacheTTL:     time.Hour,
		SwarmAttempts:     3,
	}
}

type swarmEntry struct {
	nodes   []types.SwarmNode
	expires time.Time
}

// Pool is the local view of the network.
type Pool struct {
	cfg    Config
	logger *zap.Logger
	clock  clockwork.Clock
	db     *sql.Database
	exec   executor
	seeder seeder

	refresh singleflight.Group

	mu    sync.RWMutex
	nodes []types.SwarmNode

	swarms *lru.Cache[types.PublicKey, swarmEntry]
}

type Opt func(*Pool)

func WithConfig(cfg Config) Opt {
	return func(p *Pool) {
		p.cfg = cfg
	}
}

func WithLogger(logger *zap.Logger) Opt {
	return func(p *Pool) {
		p.logger = logger
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(p *Pool) {
		p.clock = clock
	}
}

// New loads the persisted node list. It doesn't query the network.
func New(db *sql.Database, exec executor, seeder seeder, opts ...Opt) (*Pool, error) {
	p := &Pool{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
		clock:  clockwork.NewRealClock(),
		db:     db,
		exec:   exec,
		seeder: seeder,
	}
	for _, opt := range opts {
		opt(p)
	}
	swarms, err := lru.New[types.PublicKey, swarmEntry](p.cfg.SwarmCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create swarm cache: %w", err)
	}
	p.swarms = swarms
	nodes, err := snodes.All(db)
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	p.nodes = types.FilterUsable(nodes)
	poolSize.Set(float64(len(p.nodes)))
	return p, nil
}

// Nodes returns a copy of the pool.
func (p *Pool) Nodes() []types.SwarmNode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.nodes)
}

// Len returns the number of nodes in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.nodes)
}

// RandomNodes returns n distinct nodes.
func (p *Pool) RandomNodes(n int) ([]types.SwarmNode, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return pick(p.nodes, n)
}

// RandomNode returns a single random node.
func (p *Pool) RandomNode() (types.SwarmNode, error) {
	nodes, err := p.RandomNodes(1)
	if err != nil {
		return types.SwarmNode{}, err
	}
	return nodes[0], nil
}

func pick(nodes []types.SwarmNode, n int) ([]types.SwarmNode, error) {
	if n > len(nodes) || n <= 0 {
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrPoolTooSmall, n, len(nodes))
	}
	rst := make([]types.SwarmNode, 0, n)
	for _, i := range rand.Perm(len(nodes))[:n] {
		rst = append(rst, nodes[i])
	}
	return rst, nil
}

// Drop removes a misbehaving node from the pool.
func (p *Pool) Drop(node types.SwarmNode) error {
	if err := snodes.Delete(p.db, node); err != nil {
		return err
	}
	p.mu.Lock()
	p.nodes = slices.DeleteFunc(p.nodes, func(n types.SwarmNode) bool {
		return n.Addr() == node.Addr()
	})
	size := len(p.nodes)
	p.mu.Unlock()
	poolSize.Set(float64(size))
	p.logger.Debug("dropped node from pool", zap.Stringer("node", node), zap.Int("size", size))
	return nil
}

// Refresh updates the pool from the network, or from the seeds if the pool is too small.
func (p *Pool) Refresh(ctx context.Context) error {
	return p.RefreshFromSwarm(ctx)
}

// RefreshFromSeed replaces the pool with the list returned by a seed.
func (p *Pool) RefreshFromSeed(ctx context.Context) error {
	return p.singleflight(ctx, p.refreshFromSeed)
}

// RefreshFromSwarm replaces the pool with the nodes every queried node agrees on.
// The pool is left unchanged if the nodes disagree.
func (p *Pool) RefreshFromSwarm(ctx context.Context) error {
	return p.singleflight(ctx, p.refreshFromSwarm)
}

// Restore installs nodes when the pool is empty, for instance the seed list persisted by
// a previous run. A non-empty pool is left unchanged.
func (p *Pool) Restore(ctx context.Context, nodes []types.SwarmNode) error {
	nodes = types.FilterUsable(nodes)
	if p.Len() > 0 || len(nodes) == 0 {
		return nil
	}
	if err := p.replace(ctx, nodes); err != nil {
		return err
	}
	p.logger.Info("pool restored", zap.Int("size", len(nodes)))
	return nil
}

func (p *Pool) singleflight(ctx context.Context, refresh func(context.Context) error) error {
	// refreshes share one key, so a seed refresh and a swarm refresh never overlap
	ch := p.refresh.DoChan("refresh", func() (any, error) {
		return nil, refresh(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case rst := <-ch:
		return rst.Err
	}
}

func (p *Pool) refreshFromSeed(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.SeedRetryInterval
	var nodes []types.SwarmNode
	err := backoff.Retry(func() error {
		var err error
		nodes, err = p.seeder.Fetch(ctx)
		if errors.Is(err, bootstrap.ErrNoSeeds) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, p.cfg.SeedRetries), ctx))
	if err != nil {
		seedFailed.Inc()
		return fmt.Errorf("refresh from seed: %w", err)
	}
	nodes = types.FilterUsable(nodes)
	if len(nodes) == 0 {
		seedFailed.Inc()
		return bootstrap.ErrEmptySeed
	}
	if err := p.replace(ctx, nodes); err != nil {
		seedFailed.Inc()
		return err
	}
	seedOK.Inc()
	p.logger.Info("pool refreshed from seed", zap.Int("size", len(nodes)))
	return nil
}

func (p *Pool) refreshFromSwarm(ctx context.Context) error {
	if p.Len() <= p.cfg.MinPoolSize {
		p.logger.Debug("pool too small, refreshing from seed",
			zap.Int("size", p.Len()),
			zap.Int("min", p.cfg.MinPoolSize),
		)
		if err := p.refreshFromSeed(ctx); err != nil {
			return err
		}
		if size := p.Len(); size <= p.cfg.MinPoolSize {
			return fmt.Errorf("%w after seed refresh: %d <= %d", ErrPoolTooSmall, size, p.cfg.MinPoolSize)
		}
		return nil
	}
	queried, err := p.RandomNodes(p.cfg.ConsensusNodes)
	if err != nil {
		swarmFailed.Inc()
		return err
	}
	lists := make([][]types.SwarmNode, len(queried))
	eg, ectx := errgroup.WithContext(ctx)
	for i, node := range queried {
		eg.Go(func() error {
			nodes, err := p.serviceNodes(ectx, node)
			if err != nil {
				return fmt.Errorf("service nodes from %s: %w", node, err)
			}
			lists[i] = nodes
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		swarmFailed.Inc()
		return err
	}
	agreed := intersect(lists)
	if len(agreed) < p.cfg.RequiredAgreement {
		swarmNoAgreement.Inc()
		return fmt.Errorf("%w: %d < %d", ErrConsensus, len(agreed), p.cfg.RequiredAgreement)
	}
	if err := p.replace(ctx, agreed); err != nil {
		swarmFailed.Inc()
		return err
	}
	swarmOK.Inc()
	p.logger.Info("pool refreshed from network", zap.Int("size", len(agreed)))
	return nil
}

func (p *Pool) serviceNodes(ctx context.Context, node types.SwarmNode) ([]types.SwarmNode, error) {
	rst, err := p.exec.Execute(ctx, node, []request.SubRequest{request.NewGetServiceNodes()})
	if err != nil {
		return nil, err
	}
	if !rst[0].OK() {
		return nil, fmt.Errorf("status %d", rst[0].Code)
	}
	return request.ParseServiceNodes(rst[0].Body)
}

// intersect returns the records of the first list whose address is present in every list.
func intersect(lists [][]types.SwarmNode) []types.SwarmNode {
	if len(lists) == 0 {
		return nil
	}
	counts := make(map[string]int, len(lists[0]))
	for _, list := range lists {
		seen := make(map[string]struct{}, len(list))
		for _, n := range list {
			if _, ok := seen[n.Addr()]; ok {
				continue
			}
			seen[n.Addr()] = struct{}{}
			counts[n.Addr()]++
		}
	}
	var rst []types.SwarmNode
	added := make(map[string]struct{}, len(lists[0]))
	for _, n := range lists[0] {
		if _, ok := added[n.Addr()]; ok {
			continue
		}
		if counts[n.Addr()] == len(lists) {
			added[n.Addr()] = struct{}{}
			rst = append(rst, n)
		}
	}
	return rst
}

func (p *Pool) replace(ctx context.Context, nodes []types.SwarmNode) error {
	if err := p.db.WithTx(ctx, func(tx *sql.Tx) error {
		return snodes.Replace(tx, nodes)
	}); err != nil {
		return fmt.Errorf("persist pool: %w", err)
	}
	p.mu.Lock()
	p.nodes = slices.Clone(nodes)
	p.mu.Unlock()
	poolSize.Set(float64(len(nodes)))
	return nil
}

// SwarmFor returns the swarm storing data of pk.
func (p *Pool) SwarmFor(ctx context.Context, pk types.PublicKey) ([]types.SwarmNode, error) {
	if entry, ok := p.swarms.Get(pk); ok && len(entry.nodes) > 0 && p.clock.Now().Before(entry.expires) {
		swarmHit.Inc()
		return slices.Clone(entry.nodes), nil
	}
	swarmMiss.Inc()
	getSwarm, err := request.NewGetSwarm(pk)
	if err != nil {
		return nil, err
	}
	candidates, err := p.RandomNodes(min(p.cfg.SwarmAttempts, p.Len()))
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, node := range candidates {
		nodes, err := p.swarmFrom(ctx, node, getSwarm)
		if err == nil {
			p.SetSwarm(pk, nodes)
			return slices.Clone(nodes), nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Debug("swarm lookup failed",
			zap.Stringer("pubkey", pk),
			zap.Stringer("node", node),
			zap.Error(err),
		)
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("swarm for %s: %w", pk.ShortString(), errors.Join(errs...))
}

func (p *Pool) swarmFrom(ctx context.Context, node types.SwarmNode, r *request.GetSwarm) ([]types.SwarmNode, error) {
	rst, err := p.exec.Execute(ctx, node, []request.SubRequest{r})
	if err != nil {
		return nil, err
	}
	if !rst[0].OK() {
		return nil, fmt.Errorf("status %d", rst[0].Code)
	}
	nodes, err := request.ParseSwarm(rst[0].Body)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, ErrEmptySwarm
	}
	return nodes, nil
}

// SetSwarm replaces the cached swarm of pk, as reported by a node that redirected us.
func (p *Pool) SetSwarm(pk types.PublicKey, nodes []types.SwarmNode) {
	nodes = types.FilterUsable(nodes)
	if len(nodes) == 0 {
		p.swarms.Remove(pk)
		return
	}
	p.swarms.Add(pk, swarmEntry{nodes: slices.Clone(nodes), expires: p.clock.Now().Add(p.cfg.SwarmCacheTTL)})
}

// DropFromSwarm removes node from the cached swarm of pk.
func (p *Pool) DropFromSwarm(pk types.PublicKey, node types.SwarmNode) {
	entry, ok := p.swarms.Peek(pk)
	if !ok {
		return
	}
	nodes := slices.DeleteFunc(slices.Clone(entry.nodes), func(n types.SwarmNode) bool {
		return n.Addr() == node.Addr()
	})
	if len(nodes) == 0 {
		p.swarms.Remove(pk)
		return
	}
	p.swarms.Add(pk, swarmEntry{nodes: nodes, expires: entry.expires})
}
