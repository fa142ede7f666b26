package outbox

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log/logtest"
	"github.com/swarmsend/go-swarmsend/namespace"
	"github.com/swarmsend/go-swarmsend/sql"
)

func message(dest types.PublicKey, id string) *types.OutgoingRawMessage {
	return &types.OutgoingRawMessage{
		ID:          types.MessageID(id),
		Destination: dest,
		Namespace:   namespace.Default,
		Data:        []byte("payload-" + id),
		TTL:         time.Hour,
		CreatedAt:   time.UnixMilli(1_700_000_000_000),
	}
}

var (
	alice = types.PublicKey(types.UserPrefix + strings.Repeat("a1", 32))
	bob   = types.PublicKey(types.UserPrefix + strings.Repeat("b2", 32))
)

func TestOutbox(t *testing.T) {
	ob := New(sql.InMemory(), WithLogger(logtest.New(t)))
	ctx := context.Background()

	var called []string
	cb := func(tag string) Callback {
		return func(*types.OutgoingRawMessage, string, error) { called = append(called, tag) }
	}
	require.NoError(t, ob.Add(ctx, message(alice, "1"), cb("first")))
	require.NoError(t, ob.Add(ctx, message(alice, "2"), nil))
	require.NoError(t, ob.Add(ctx, message(bob, "3"), cb("bob")))

	// duplicate keeps the original entry and callback
	dup := message(alice, "1")
	dup.Data = []byte("other")
	require.NoError(t, ob.Add(ctx, dup, cb("dup")))
	got, err := ob.Get(alice, "1")
	require.NoError(t, err)
	require.Equal(t, []byte("payload-1"), got.Data)
	ob.Callback(alice, "1")(got, "", nil)
	require.Equal(t, []string{"first"}, called)

	require.Nil(t, ob.Callback(alice, "2"))

	list, err := ob.List(alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, types.MessageID("1"), list[0].ID)
	require.Equal(t, types.MessageID("2"), list[1].ID)

	dests, err := ob.Destinations()
	require.NoError(t, err)
	require.Equal(t, []types.PublicKey{alice, bob}, dests)

	require.NoError(t, ob.Remove(alice, "1"))
	require.NoError(t, ob.Remove(alice, "1"))
	require.Nil(t, ob.Callback(alice, "1"))
	_, err = ob.Get(alice, "1")
	require.ErrorIs(t, err, sql.ErrNotFound)

	n, err := ob.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestOutboxSurvivesReopen(t *testing.T) {
	uri := "file:" + filepath.Join(t.TempDir(), "state.sql")
	db, err := sql.Open(uri)
	require.NoError(t, err)
	ob := New(db)
	require.NoError(t, ob.Add(context.Background(), message(alice, "1"),
		func(*types.OutgoingRawMessage, string, error) {}))
	require.NoError(t, db.Close())

	db, err = sql.Open(uri)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ob = New(db)
	list, err := ob.List(alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, message(alice, "1"), list[0])
	require.Nil(t, ob.Callback(alice, "1"))
}
