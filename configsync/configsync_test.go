package configsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log"
	"github.com/swarmsend/go-swarmsend/log/logtest"
	"github.com/swarmsend/go-swarmsend/namespace"
	"github.com/swarmsend/go-swarmsend/signing"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
	"github.com/swarmsend/go-swarmsend/sql"
	"github.com/swarmsend/go-swarmsend/sql/dumps"
)

var node = types.SwarmNode{IP: "10.0.0.1", Port: 22021, PubkeyEd25519: "aa"}

type confirmation struct {
	seqno  int64
	hashes []string
}

type fakeWrapper struct {
	kind      Kind
	push      *PushResult
	dump      []byte
	confirmed []confirmation
}

func (f *fakeWrapper) Kind() Kind      { return f.kind }
func (f *fakeWrapper) NeedsPush() bool { return f.push != nil }
func (f *fakeWrapper) NeedsDump() bool { return f.dump != nil }

func (f *fakeWrapper) Push() (PushResult, error) {
	if f.push == nil {
		return PushResult{}, errors.New("nothing to push")
	}
	return *f.push, nil
}

func (f *fakeWrapper) Dump() ([]byte, error) { return f.dump, nil }

func (f *fakeWrapper) ConfirmPushed(seqno int64, hashes []string) {
	f.confirmed = append(f.confirmed, confirmation{seqno, hashes})
	f.push = nil
}

type testReconciler struct {
	*Reconciler
	db       *sql.Database
	registry *Registry
	user     *signing.EdSigner
	group    *signing.GroupSigner
	exec     *Mockexecutor
	swarms   *MockswarmResolver
	groups   *MockgroupSigners
	clock    clockwork.FakeClock
	wrappers map[Kind]*fakeWrapper
}

func newTestReconciler(t *testing.T) *testReconciler {
	ctrl := gomock.NewController(t)
	user, err := signing.NewEdSigner()
	require.NoError(t, err)
	pub, admin, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	group, err := signing.NewGroupSigner(types.BytesToPublicKey(types.GroupPrefix, pub), signing.WithAdminKey(admin))
	require.NoError(t, err)

	tr := &testReconciler{
		db:       sql.InMemory(),
		registry: NewRegistry(),
		user:     user,
		group:    group,
		exec:     NewMockexecutor(ctrl),
		swarms:   NewMockswarmResolver(ctrl),
		groups:   NewMockgroupSigners(ctrl),
		clock:    clockwork.NewFakeClockAt(time.UnixMilli(1_700_000_000_000)),
		wrappers: map[Kind]*fakeWrapper{},
	}
	for _, kind := range UserKinds {
		w := &fakeWrapper{kind: kind}
		tr.wrappers[kind] = w
		require.NoError(t, tr.registry.InitUser(kind, w))
	}
	tr.groups.EXPECT().GroupSigner(group.Group()).Return(group, nil).AnyTimes()
	tr.Reconciler = New(tr.db, tr.registry, user, tr.groups, tr.swarms, tr.exec,
		WithLogger(logtest.New(t)),
		WithClock(tr.clock),
	)
	return tr
}

func stored(hashes ...string) []batch.Result {
	rst := make([]batch.Result, 0, len(hashes))
	for _, h := range hashes {
		rst = append(rst, batch.Result{Code: 200, Body: json.RawMessage(fmt.Sprintf(`{"hash":%q}`, h))})
	}
	return rst
}

func TestKindNamespace(t *testing.T) {
	for _, kind := range UserKinds {
		ns, err := kind.Namespace()
		require.NoError(t, err)
		require.True(t, namespace.IsUserConfig(ns))
	}
	_, err := Kind("Unknown").Namespace()
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := NewRegistry()

	w := NewMockWrapper(ctrl)
	w.EXPECT().Kind().Return(KindContacts).AnyTimes()
	require.NoError(t, r.InitUser(KindContacts, w))
	require.ErrorIs(t, r.InitUser(KindContacts, w), ErrAlreadyInitialized)
	require.ErrorIs(t, r.InitUser(KindUser, w), ErrUnknownKind)
	require.ErrorIs(t, r.InitUser(Kind("other"), w), ErrUnknownKind)

	got, err := r.User(KindContacts)
	require.NoError(t, err)
	require.Equal(t, w, got)
	_, err = r.User(KindUser)
	require.ErrorIs(t, err, ErrNotInitialized)

	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	group := types.BytesToPublicKey(types.GroupPrefix, pub)
	g := NewMockMetaGroup(ctrl)
	require.ErrorIs(t, r.InitGroup(types.BytesToPublicKey(types.UserPrefix, pub), g), types.ErrInvalidPublicKey)
	require.NoError(t, r.InitGroup(group, g))
	require.ErrorIs(t, r.InitGroup(group, g), ErrAlreadyInitialized)
	require.Equal(t, []types.PublicKey{group}, r.Groups())

	r.Free(group)
	_, err = r.Group(group)
	require.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, r.InitGroup(group, g))
	r.FreeAll()
	require.Empty(t, r.Groups())
	_, err = r.User(KindContacts)
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestPendingChangesSingleWrapper(t *testing.T) {
	tr := newTestReconciler(t)
	tr.wrappers[KindContacts].push = &PushResult{
		Seqno:  7,
		Data:   [][]byte{[]byte("contacts")},
		Hashes: []string{"h1", "h2", "h3"},
	}

	changes, err := tr.PendingChangesForUs(context.Background())
	require.NoError(t, err)
	require.Len(t, changes.Changes, 1)
	require.Equal(t, namespace.UserContacts, changes.Changes[0].Namespace)
	require.Equal(t, KindContacts, changes.Changes[0].Kind)
	require.NotNil(t, changes.Changes[0].Seqno)
	require.EqualValues(t, 7, *changes.Changes[0].Seqno)
	require.Equal(t, []string{"h1", "h2", "h3"}, changes.AllOldHashes)
}

func TestPendingChangesMergesHashes(t *testing.T) {
	tr := newTestReconciler(t)
	tr.wrappers[KindConvoInfoVolatile].push = &PushResult{Seqno: 1, Data: [][]byte{[]byte("c")}, Hashes: []string{"b", "c"}}
	tr.wrappers[KindUser].push = &PushResult{Seqno: 2, Data: [][]byte{[]byte("u")}, Hashes: []string{"a", "b", ""}}

	changes, err := tr.PendingChangesForUs(context.Background())
	require.NoError(t, err)
	require.Len(t, changes.Changes, 2)
	// fixed wrapper order, not registration order
	require.Equal(t, KindUser, changes.Changes[0].Kind)
	require.Equal(t, KindConvoInfoVolatile, changes.Changes[1].Kind)
	require.Equal(t, []string{"a", "b", "c"}, changes.AllOldHashes)
}

func TestPendingChangesNone(t *testing.T) {
	tr := newTestReconciler(t)
	changes, err := tr.PendingChangesForUs(context.Background())
	require.NoError(t, err)
	require.True(t, changes.Empty())
	// nothing is sent
	require.NoError(t, tr.Push(context.Background(), tr.user.SessionID(), changes))
}

func TestPendingChangesForGroup(t *testing.T) {
	tr := newTestReconciler(t)
	g := NewMockMetaGroup(gomock.NewController(t))
	require.NoError(t, tr.registry.InitGroup(tr.group.Group(), g))

	g.EXPECT().NeedsPush().Return(true)
	g.EXPECT().Push().Return(GroupPush{
		Keys:    [][]byte{[]byte("keys")},
		Members: &PushResult{Seqno: 9, Data: [][]byte{[]byte("members")}, Hashes: []string{"m1", "k1"}},
		Hashes:  []string{"k1"},
	}, nil)

	changes, err := tr.PendingChangesForGroup(context.Background(), tr.group.Group())
	require.NoError(t, err)
	require.Len(t, changes.Changes, 2)
	require.Equal(t, namespace.GroupKeys, changes.Changes[0].Namespace)
	require.Nil(t, changes.Changes[0].Seqno)
	require.Equal(t, namespace.GroupMembers, changes.Changes[1].Namespace)
	require.EqualValues(t, 9, *changes.Changes[1].Seqno)
	require.Equal(t, []string{"k1", "m1"}, changes.AllOldHashes)

	g.EXPECT().NeedsPush().Return(false)
	changes, err = tr.PendingChangesForGroup(context.Background(), tr.group.Group())
	require.NoError(t, err)
	require.True(t, changes.Empty())

	_, err = tr.PendingChangesForGroup(context.Background(), types.PublicKey("03"+string(tr.user.SessionID()[2:])))
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestPushUser(t *testing.T) {
	tr := newTestReconciler(t)
	ctx := context.Background()
	self := tr.user.SessionID()
	user := tr.wrappers[KindUser]
	contacts := tr.wrappers[KindContacts]
	user.push = &PushResult{Seqno: 3, Data: [][]byte{[]byte("u1"), []byte("u2")}, Hashes: []string{"old-a"}}
	user.dump = []byte("user dump")
	contacts.push = &PushResult{Seqno: 5, Data: [][]byte{[]byte("c1")}, Hashes: []string{"old-a", "old-b"}}

	tr.swarms.EXPECT().SwarmFor(gomock.Any(), self).Return([]types.SwarmNode{node}, nil)
	tr.exec.EXPECT().Execute(gomock.Any(), node, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ types.SwarmNode, reqs []request.SubRequest, opts ...batch.CallOpt) ([]batch.Result, error) {
			if len(reqs) != 4 || len(opts) != 1 {
				return nil, fmt.Errorf("unexpected %d requests", len(reqs))
			}
			for _, r := range reqs[:3] {
				if r.Kind() != request.KindStoreUserConfig {
					return nil, fmt.Errorf("unexpected %s", r.LoggingID())
				}
			}
			del, ok := reqs[3].(*request.DeleteHashesUser)
			if !ok || len(del.Hashes()) != 2 {
				return nil, errors.New("expected delete of old hashes last")
			}
			return append(stored("n1", "n2", "n3"), batch.Result{Code: 200, Body: json.RawMessage(`{}`)}), nil
		})

	changes, err := tr.PendingChangesForUs(ctx)
	require.NoError(t, err)
	require.NoError(t, tr.Push(ctx, self, changes))

	require.Equal(t, []confirmation{{3, []string{"n1", "n2"}}}, user.confirmed)
	require.Equal(t, []confirmation{{5, []string{"n3"}}}, contacts.confirmed)

	d, err := dumps.Get(tr.db, string(KindUser), self)
	require.NoError(t, err)
	require.Equal(t, []byte("user dump"), d.Data)
	_, err = dumps.Get(tr.db, string(KindContacts), self)
	require.ErrorIs(t, err, sql.ErrNotFound)

	loaded, err := tr.LoadDumps(self)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
}

func TestPushStoreRejected(t *testing.T) {
	tr := newTestReconciler(t)
	ctx := context.Background()
	self := tr.user.SessionID()
	user := tr.wrappers[KindUser]
	user.push = &PushResult{Seqno: 3, Data: [][]byte{[]byte("u1")}, Hashes: []string{"old"}}
	user.dump = []byte("dump")

	tr.swarms.EXPECT().SwarmFor(gomock.Any(), self).Return([]types.SwarmNode{node}, nil)
	tr.exec.EXPECT().Execute(gomock.Any(), node, gomock.Any(), gomock.Any()).Return([]batch.Result{
		{Code: 401},
		{Skipped: true},
	}, nil)

	changes, err := tr.PendingChangesForUs(ctx)
	require.NoError(t, err)
	require.ErrorIs(t, tr.Push(ctx, self, changes), ErrPushFailed)
	require.Empty(t, user.confirmed)

	_, err = dumps.Get(tr.db, string(KindUser), self)
	require.ErrorIs(t, err, sql.ErrNotFound)
}

func TestPushExecutorError(t *testing.T) {
	tr := newTestReconciler(t)
	ctx := context.Background()
	self := tr.user.SessionID()
	tr.wrappers[KindUserGroups].push = &PushResult{Seqno: 1, Data: [][]byte{[]byte("g")}}

	tr.swarms.EXPECT().SwarmFor(gomock.Any(), self).Return([]types.SwarmNode{node}, nil)
	tr.exec.EXPECT().Execute(gomock.Any(), node, gomock.Any(), gomock.Any()).Return(nil, batch.ErrRetriesExhausted)

	changes, err := tr.PendingChangesForUs(ctx)
	require.NoError(t, err)
	require.ErrorIs(t, tr.Push(ctx, self, changes), batch.ErrRetriesExhausted)
	require.Empty(t, tr.wrappers[KindUserGroups].confirmed)
}

func TestPushGroup(t *testing.T) {
	tr := newTestReconciler(t)
	ctx := context.Background()
	pk := tr.group.Group()
	g := NewMockMetaGroup(gomock.NewController(t))
	require.NoError(t, tr.registry.InitGroup(pk, g))

	g.EXPECT().NeedsPush().Return(true)
	g.EXPECT().Push().Return(GroupPush{
		Keys: [][]byte{[]byte("keys")},
		Info: &PushResult{Seqno: 4, Data: [][]byte{[]byte("info")}},
	}, nil)
	tr.swarms.EXPECT().SwarmFor(gomock.Any(), pk).Return([]types.SwarmNode{node}, nil)
	tr.exec.EXPECT().Execute(gomock.Any(), node, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ types.SwarmNode, reqs []request.SubRequest, _ ...batch.CallOpt) ([]batch.Result, error) {
			if len(reqs) != 2 {
				return nil, fmt.Errorf("unexpected %d requests", len(reqs))
			}
			keys, ok := reqs[0].(*request.StoreGroupConfig)
			if !ok || keys.Namespace() != namespace.GroupKeys {
				return nil, errors.New("expected key rotation first")
			}
			return stored("keys-hash", "info-hash"), nil
		})
	g.EXPECT().ConfirmPushed(namespace.GroupInfo, int64(4), []string{"info-hash"})
	g.EXPECT().NeedsDump().Return(true)
	g.EXPECT().Dump().Return([]byte("group dump"), nil)

	changes, err := tr.PendingChangesForGroup(ctx, pk)
	require.NoError(t, err)
	require.NoError(t, tr.Push(ctx, pk, changes))

	d, err := dumps.Get(tr.db, GroupDumpVariant(pk), pk)
	require.NoError(t, err)
	require.Equal(t, []byte("group dump"), d.Data)
	require.Equal(t, tr.clock.Now().UnixMilli(), d.UpdatedAt.UnixMilli())

	require.NoError(t, tr.Forget(pk))
	loaded, err := tr.LoadDumps(pk)
	require.NoError(t, err)
	require.Empty(t, loaded)
	_, err = tr.registry.Group(pk)
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestPushInvalidDestination(t *testing.T) {
	tr := newTestReconciler(t)
	other, err := signing.NewEdSigner()
	require.NoError(t, err)
	changes := &PendingChanges{AllOldHashes: []string{"h"}}
	require.ErrorIs(t, tr.Push(context.Background(), other.SessionID(), changes), request.ErrInvalidDestination)
}

func TestSync(t *testing.T) {
	tr := newTestReconciler(t)
	ctx := context.Background()
	g := NewMockMetaGroup(gomock.NewController(t))
	require.NoError(t, tr.registry.InitGroup(tr.group.Group(), g))
	tr.wrappers[KindUser].push = &PushResult{Seqno: 1, Data: [][]byte{[]byte("u")}}

	g.EXPECT().NeedsPush().Return(false)
	tr.swarms.EXPECT().SwarmFor(gomock.Any(), tr.user.SessionID()).Return([]types.SwarmNode{node}, nil)
	tr.exec.EXPECT().Execute(gomock.Any(), node, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ types.SwarmNode, _ []request.SubRequest, _ ...batch.CallOpt) ([]batch.Result, error) {
			id, ok := log.ExtractRequestID(ctx)
			require.True(t, ok)
			require.NotEmpty(t, id)
			return stored("h"), nil
		})

	require.NoError(t, tr.Sync(ctx))
	require.Equal(t, []confirmation{{1, []string{"h"}}}, tr.wrappers[KindUser].confirmed)
}

func TestRun(t *testing.T) {
	tr := newTestReconciler(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx) }()
	tr.clock.BlockUntil(1)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "run did not return")
	}
}
