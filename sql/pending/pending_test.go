package pending

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/namespace"
	"github.com/swarmsend/go-swarmsend/sql"
)

func pk(c string) types.PublicKey {
	return types.PublicKey(types.UserPrefix + strings.Repeat(c, 64))
}

func msg(dest types.PublicKey, id string) *types.OutgoingRawMessage {
	return &types.OutgoingRawMessage{
		ID:          types.MessageID(id),
		Destination: dest,
		Namespace:   namespace.Default,
		Data:        []byte("cipher-" + id),
		TTL:         14 * 24 * time.Hour,
		CreatedAt:   time.UnixMilli(1_700_000_000_000),
	}
}

func TestPending(t *testing.T) {
	db := sql.InMemory()
	a, b := pk("a"), pk("b")

	m1 := msg(a, "1")
	m1.PlaintextMirror = []byte("plain")
	m1.Sync = true
	require.NoError(t, Add(db, m1))
	require.NoError(t, Add(db, msg(b, "2")))
	require.NoError(t, Add(db, msg(a, "3")))
	require.ErrorIs(t, Add(db, msg(a, "1")), sql.ErrObjectExists)

	got, err := Get(db, a, "1")
	require.NoError(t, err)
	require.Equal(t, m1, got)

	got, err = Get(db, b, "2")
	require.NoError(t, err)
	require.Nil(t, got.PlaintextMirror)
	require.False(t, got.Sync)

	_, err = Get(db, b, "1")
	require.ErrorIs(t, err, sql.ErrNotFound)

	list, err := List(db, a)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, types.MessageID("1"), list[0].ID)
	require.Equal(t, types.MessageID("3"), list[1].ID)

	dests, err := Destinations(db)
	require.NoError(t, err)
	require.Equal(t, []types.PublicKey{a, b}, dests)

	require.NoError(t, Remove(db, a, "1"))
	require.NoError(t, Remove(db, a, "1"))
	n, err := Count(db)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, Remove(db, b, "2"))
	dests, err = Destinations(db)
	require.NoError(t, err)
	require.Equal(t, []types.PublicKey{a}, dests)
}
