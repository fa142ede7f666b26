// Package snodes persists the locally known list of swarm nodes.
package snodes

import (
	"fmt"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/sql"
)

// Replace overwrites the stored list with nodes. Use within a transaction so the list
// is never partially replaced.
func Replace(db sql.Executor, nodes []types.SwarmNode) error {
	if _, err := db.Exec("delete from snodes", nil, nil); err != nil {
		return fmt.Errorf("clear snodes: %w", err)
	}
	for _, n := range nodes {
		if err := add(db, n); err != nil {
			return err
		}
	}
	return nil
}

func add(db sql.Executor, n types.SwarmNode) error {
	if _, err := db.Exec(`insert into snodes (ip, port, pubkey_x25519, pubkey_ed25519, version)
		values (?1, ?2, ?3, ?4, ?5)
		on conflict (ip, port) do update set
			pubkey_x25519 = ?3, pubkey_ed25519 = ?4, version = ?5`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, n.IP)
			stmt.BindInt64(2, int64(n.Port))
			stmt.BindText(3, n.PubkeyX25519)
			stmt.BindText(4, n.PubkeyEd25519)
			stmt.BindText(5, n.Version)
		}, nil); err != nil {
		return fmt.Errorf("insert snode %s: %w", n.Addr(), err)
	}
	return nil
}

// All returns every stored node.
func All(db sql.Executor) ([]types.SwarmNode, error) {
	var rst []types.SwarmNode
	if _, err := db.Exec(`select ip, port, pubkey_x25519, pubkey_ed25519, version
		from snodes order by ip, port`, nil,
		func(stmt *sql.Statement) bool {
			rst = append(rst, types.SwarmNode{
				IP:            stmt.ColumnText(0),
				Port:          stmt.ColumnInt(1),
				PubkeyX25519:  stmt.ColumnText(2),
				PubkeyEd25519: stmt.ColumnText(3),
				Version:       stmt.ColumnText(4),
			})
			return true
		}); err != nil {
		return nil, fmt.Errorf("select snodes: %w", err)
	}
	return rst, nil
}

// Delete removes a single node.
func Delete(db sql.Executor, n types.SwarmNode) error {
	if _, err := db.Exec("delete from snodes where ip = ?1 and port = ?2",
		func(stmt *sql.Statement) {
			stmt.BindText(1, n.IP)
			stmt.BindInt64(2, int64(n.Port))
		}, nil); err != nil {
		return fmt.Errorf("delete snode %s: %w", n.Addr(), err)
	}
	return nil
}
