package pool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/swarmsend/go-swarmsend/bootstrap"
	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log/logtest"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
	"github.com/swarmsend/go-swarmsend/sql"
	"github.com/swarmsend/go-swarmsend/sql/snodes"
)

func genNodes(prefix string, n int) []types.SwarmNode {
	nodes := make([]types.SwarmNode, 0, n)
	for i := range n {
		nodes = append(nodes, types.SwarmNode{
			IP:            fmt.Sprintf("%s.%d", prefix, i+1),
			Port:          22021,
			PubkeyEd25519: fmt.Sprintf("ed-%s-%d", prefix, i),
			PubkeyX25519:  fmt.Sprintf("x-%s-%d", prefix, i),
			Version:       "2.8.0",
		})
	}
	return nodes
}

func serviceNodesBody(nodes []types.SwarmNode) json.RawMessage {
	states := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		states = append(states, map[string]any{
			"public_ip":              n.IP,
			"storage_port":           n.Port,
			"pubkey_x25519":          n.PubkeyX25519,
			"pubkey_ed25519":         n.PubkeyEd25519,
			"storage_server_version": []int{2, 8, 0},
		})
	}
	data, _ := json.Marshal(map[string]any{"result": map[string]any{"service_node_states": states}})
	return data
}

func swarmBody(nodes []types.SwarmNode) json.RawMessage {
	snodes := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		snodes = append(snodes, map[string]any{
			"ip":             n.IP,
			"port_https":     strconv.Itoa(n.Port),
			"pubkey_x25519":  n.PubkeyX25519,
			"pubkey_ed25519": n.PubkeyEd25519,
		})
	}
	data, _ := json.Marshal(map[string]any{"snodes": snodes})
	return data
}

type testPool struct {
	*Pool
	db     *sql.Database
	exec   *Mockexecutor
	seeder *Mockseeder
	clock  clockwork.FakeClock
}

func newTestPool(tb testing.TB, initial []types.SwarmNode) *testPool {
	tb.Helper()
	ctrl := gomock.NewController(tb)
	db := sql.InMemory()
	require.NoError(tb, snodes.Replace(db, initial))
	cfg := DefaultConfig()
	cfg.SeedRetryInterval = time.Millisecond
	cfg.SeedRetries = 1
	tp := &testPool{
		db:     db,
		exec:   NewMockexecutor(ctrl),
		seeder: NewMockseeder(ctrl),
		clock:  clockwork.NewFakeClock(),
	}
	p, err := New(db, tp.exec, tp.seeder,
		WithConfig(cfg),
		WithClock(tp.clock),
		WithLogger(logtest.New(tb)),
	)
	require.NoError(tb, err)
	tp.Pool = p
	return tp
}

func (tp *testPool) persisted(tb testing.TB) []types.SwarmNode {
	tb.Helper()
	nodes, err := snodes.All(tp.db)
	require.NoError(tb, err)
	return nodes
}

func addrs(nodes []types.SwarmNode) []string {
	rst := make([]string, 0, len(nodes))
	for _, n := range nodes {
		rst = append(rst, n.Addr())
	}
	return rst
}

func TestNewLoadsPersisted(t *testing.T) {
	initial := append(genNodes("10.0.0", 3), types.SwarmNode{IP: types.NullIP, Port: 1})
	tp := newTestPool(t, initial)
	require.Equal(t, 3, tp.Len())
	require.ElementsMatch(t, addrs(initial[:3]), addrs(tp.Nodes()))
}

func TestRandomNodes(t *testing.T) {
	tp := newTestPool(t, genNodes("10.0.0", 5))
	for range 10 {
		nodes, err := tp.RandomNodes(5)
		require.NoError(t, err)
		require.ElementsMatch(t, addrs(tp.Nodes()), addrs(nodes))
	}
	_, err := tp.RandomNodes(6)
	require.ErrorIs(t, err, ErrPoolTooSmall)

	empty := newTestPool(t, nil)
	_, err = empty.RandomNode()
	require.ErrorIs(t, err, ErrPoolTooSmall)
}

func TestDrop(t *testing.T) {
	nodes := genNodes("10.0.0", 3)
	tp := newTestPool(t, nodes)
	require.NoError(t, tp.Drop(nodes[1]))
	require.ElementsMatch(t, addrs([]types.SwarmNode{nodes[0], nodes[2]}), addrs(tp.Nodes()))
	require.ElementsMatch(t, addrs(tp.Nodes()), addrs(tp.persisted(t)))
}

func TestRestore(t *testing.T) {
	tp := newTestPool(t, nil)
	persisted := genNodes("10.2.0", 4)
	require.NoError(t, tp.Restore(context.Background(), persisted))
	require.ElementsMatch(t, addrs(persisted), addrs(tp.Nodes()))
	require.ElementsMatch(t, addrs(persisted), addrs(tp.persisted(t)))

	require.NoError(t, tp.Restore(context.Background(), genNodes("10.3.0", 2)))
	require.ElementsMatch(t, addrs(persisted), addrs(tp.Nodes()))
}

func TestRefreshFromSeed(t *testing.T) {
	tp := newTestPool(t, nil)
	seed := genNodes("10.1.0", 30)
	tp.seeder.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("timeout"))
	tp.seeder.EXPECT().Fetch(gomock.Any()).Return(seed, nil)

	require.NoError(t, tp.Refresh(context.Background()))
	require.Equal(t, 30, tp.Len())
	require.ElementsMatch(t, addrs(seed), addrs(tp.persisted(t)))
}

func TestRefreshFromSeedFailure(t *testing.T) {
	initial := genNodes("10.0.0", 3)
	tp := newTestPool(t, initial)

	t.Run("no seeds", func(t *testing.T) {
		tp.seeder.EXPECT().Fetch(gomock.Any()).Return(nil, bootstrap.ErrNoSeeds)
		require.ErrorIs(t, tp.RefreshFromSeed(context.Background()), bootstrap.ErrNoSeeds)
	})
	t.Run("retries exhausted", func(t *testing.T) {
		tp.seeder.EXPECT().Fetch(gomock.Any()).Return(nil, bootstrap.ErrEmptySeed).Times(2)
		require.ErrorIs(t, tp.RefreshFromSeed(context.Background()), bootstrap.ErrEmptySeed)
	})
	t.Run("only unusable nodes", func(t *testing.T) {
		tp.seeder.EXPECT().Fetch(gomock.Any()).Return([]types.SwarmNode{{IP: types.NullIP, Port: 1}}, nil)
		require.ErrorIs(t, tp.RefreshFromSeed(context.Background()), bootstrap.ErrEmptySeed)
	})
	require.ElementsMatch(t, addrs(initial), addrs(tp.Nodes()))
	require.ElementsMatch(t, addrs(initial), addrs(tp.persisted(t)))
}

func TestRefreshFromSwarmConsensus(t *testing.T) {
	initial := genNodes("10.0.0", 30)
	common := genNodes("10.2.0", 25)

	tp := newTestPool(t, initial)
	var calls atomic.Int32
	tp.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ types.SwarmNode, reqs []request.SubRequest, _ ...batch.CallOpt) ([]batch.Result, error) {
			if reqs[0].Kind() != request.KindGetServiceNodes {
				return nil, fmt.Errorf("unexpected %s", reqs[0].Kind())
			}
			i := calls.Add(1)
			// every node knows a few nodes the others don't
			list := append(genNodes(fmt.Sprintf("10.3.%d", i), 5), common...)
			return []batch.Result{{Code: 200, Body: serviceNodesBody(list)}}, nil
		}).Times(3)

	require.NoError(t, tp.RefreshFromSwarm(context.Background()))
	require.ElementsMatch(t, addrs(common), addrs(tp.Nodes()))
	require.ElementsMatch(t, addrs(common), addrs(tp.persisted(t)))
}

func TestRefreshFromSwarmNoConsensus(t *testing.T) {
	initial := genNodes("10.0.0", 30)
	tp := newTestPool(t, initial)
	var calls atomic.Int32
	tp.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, types.SwarmNode, []request.SubRequest, ...batch.CallOpt) ([]batch.Result, error) {
			i := calls.Add(1)
			list := append(genNodes(fmt.Sprintf("10.3.%d", i), 20), genNodes("10.2.0", 23)...)
			return []batch.Result{{Code: 200, Body: serviceNodesBody(list)}}, nil
		}).Times(3)

	require.ErrorIs(t, tp.RefreshFromSwarm(context.Background()), ErrConsensus)
	require.ElementsMatch(t, addrs(initial), addrs(tp.Nodes()))
	require.ElementsMatch(t, addrs(initial), addrs(tp.persisted(t)))
}

func TestRefreshFromSwarmNodeFailure(t *testing.T) {
	initial := genNodes("10.0.0", 30)
	tp := newTestPool(t, initial)
	var calls atomic.Int32
	tp.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, types.SwarmNode, []request.SubRequest, ...batch.CallOpt) ([]batch.Result, error) {
			if calls.Add(1) == 2 {
				return nil, batch.ErrRetriesExhausted
			}
			return []batch.Result{{Code: 200, Body: serviceNodesBody(genNodes("10.2.0", 30))}}, nil
		}).MinTimes(1).MaxTimes(3)

	require.ErrorIs(t, tp.RefreshFromSwarm(context.Background()), batch.ErrRetriesExhausted)
	require.ElementsMatch(t, addrs(initial), addrs(tp.Nodes()))
}

func TestRefreshFromSwarmSmallPoolUsesSeed(t *testing.T) {
	tp := newTestPool(t, genNodes("10.0.0", 24))
	seed := genNodes("10.1.0", 40)
	tp.seeder.EXPECT().Fetch(gomock.Any()).Return(seed, nil)
	require.NoError(t, tp.RefreshFromSwarm(context.Background()))
	require.ElementsMatch(t, addrs(seed), addrs(tp.Nodes()))
}

func TestRefreshFromSwarmSeedStillTooSmall(t *testing.T) {
	tp := newTestPool(t, genNodes("10.0.0", 5))
	seed := genNodes("10.1.0", 4)
	tp.seeder.EXPECT().Fetch(gomock.Any()).Return(seed, nil)
	require.ErrorIs(t, tp.Refresh(context.Background()), ErrPoolTooSmall)
	// the seed list is still the best known one
	require.ElementsMatch(t, addrs(seed), addrs(tp.Nodes()))
}

func TestRefreshSingleFlight(t *testing.T) {
	tp := newTestPool(t, nil)
	seed := genNodes("10.1.0", 30)
	entered := make(chan struct{})
	release := make(chan struct{})
	var fetches atomic.Int32
	tp.seeder.EXPECT().Fetch(gomock.Any()).DoAndReturn(func(context.Context) ([]types.SwarmNode, error) {
		fetches.Add(1)
		close(entered)
		<-release
		return seed, nil
	})

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- tp.Refresh(context.Background())
	}()
	<-entered
	for range callers - 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- tp.RefreshFromSeed(context.Background())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, fetches.Load())
	require.Equal(t, 30, tp.Len())
}

func TestRefreshCallerCancelled(t *testing.T) {
	tp := newTestPool(t, nil)
	release := make(chan struct{})
	tp.seeder.EXPECT().Fetch(gomock.Any()).DoAndReturn(func(context.Context) ([]types.SwarmNode, error) {
		<-release
		return genNodes("10.1.0", 30), nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, tp.RefreshFromSeed(ctx), context.Canceled)
	close(release)
	require.Eventually(t, func() bool { return tp.Len() == 30 }, time.Second, 5*time.Millisecond)
}

func TestIntersect(t *testing.T) {
	a := genNodes("10.0.0", 4)
	require.Empty(t, intersect(nil))
	require.Equal(t, addrs(a), addrs(intersect([][]types.SwarmNode{a})))
	require.Equal(t,
		addrs(a[1:3]),
		addrs(intersect([][]types.SwarmNode{a, {a[2], a[1]}, {a[1], a[2], a[1], a[3]}})),
	)
	require.Empty(t, intersect([][]types.SwarmNode{a, genNodes("10.9.9", 4)}))
}

func TestSwarmFor(t *testing.T) {
	tp := newTestPool(t, genNodes("10.0.0", 5))
	pk := types.PublicKey(types.UserPrefix + strings.Repeat("cd", 32))
	swarm := genNodes("10.5.0", 4)
	expectSwarm := func() {
		tp.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ types.SwarmNode, reqs []request.SubRequest, _ ...batch.CallOpt) ([]batch.Result, error) {
				require.Equal(t, request.KindGetSwarm, reqs[0].Kind())
				require.Equal(t, pk, reqs[0].Destination())
				return []batch.Result{{Code: 200, Body: swarmBody(swarm)}}, nil
			})
	}

	expectSwarm()
	got, err := tp.SwarmFor(context.Background(), pk)
	require.NoError(t, err)
	require.Equal(t, addrs(swarm), addrs(got))

	// cached
	got, err = tp.SwarmFor(context.Background(), pk)
	require.NoError(t, err)
	require.Equal(t, addrs(swarm), addrs(got))

	tp.DropFromSwarm(pk, swarm[0])
	got, err = tp.SwarmFor(context.Background(), pk)
	require.NoError(t, err)
	require.Equal(t, addrs(swarm[1:]), addrs(got))

	tp.clock.Advance(DefaultConfig().SwarmCacheTTL + time.Second)
	expectSwarm()
	got, err = tp.SwarmFor(context.Background(), pk)
	require.NoError(t, err)
	require.Len(t, got, 4)
}

func TestSwarmForTriesOtherNodes(t *testing.T) {
	tp := newTestPool(t, genNodes("10.0.0", 5))
	pk := types.PublicKey(types.GroupPrefix + strings.Repeat("cd", 32))
	tp.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, batch.ErrRetriesExhausted)
	tp.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]batch.Result{{Code: 200, Body: swarmBody(nil)}}, nil)
	tp.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]batch.Result{{Code: 200, Body: swarmBody(genNodes("10.6.0", 3))}}, nil)

	got, err := tp.SwarmFor(context.Background(), pk)
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestSwarmForFails(t *testing.T) {
	tp := newTestPool(t, genNodes("10.0.0", 2))
	pk := types.PublicKey(types.UserPrefix + strings.Repeat("cd", 32))
	tp.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]batch.Result{{Code: 500}}, nil).Times(2)
	_, err := tp.SwarmFor(context.Background(), pk)
	require.Error(t, err)

	tp.SetSwarm(pk, genNodes("10.7.0", 2))
	got, err := tp.SwarmFor(context.Background(), pk)
	require.NoError(t, err)
	require.Len(t, got, 2)
}
