package snodes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/sql"
)

func TestReplace(t *testing.T) {
	db := sql.InMemory()
	first := []types.SwarmNode{
		{IP: "1.1.1.1", Port: 1, PubkeyEd25519: "a", Version: "2.8.0"},
		{IP: "2.2.2.2", Port: 2, PubkeyEd25519: "b"},
	}
	require.NoError(t, Replace(db, first))
	got, err := All(db)
	require.NoError(t, err)
	require.Equal(t, first, got)

	second := []types.SwarmNode{{IP: "3.3.3.3", Port: 3}}
	require.NoError(t, Replace(db, second))
	got, err = All(db)
	require.NoError(t, err)
	require.Equal(t, second, got)

	require.NoError(t, Delete(db, second[0]))
	got, err = All(db)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReplaceRollback(t *testing.T) {
	db := sql.InMemory()
	nodes := []types.SwarmNode{{IP: "1.1.1.1", Port: 1}}
	require.NoError(t, Replace(db, nodes))

	errAbort := errors.New("abort")
	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		require.NoError(t, Replace(tx, []types.SwarmNode{{IP: "9.9.9.9", Port: 9}}))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	got, err := All(db)
	require.NoError(t, err)
	require.Equal(t, nodes, got)
}
