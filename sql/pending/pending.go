// Package pending persists outgoing messages that are not confirmed by a swarm yet.
package pending

import (
	"fmt"
	"time"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/namespace"
	"github.com/swarmsend/go-swarmsend/sql"
)

const fields = "destination, id, namespace, data, ttl_ms, mirror, sync, created_ms"

// Add inserts msg. Returns sql.ErrObjectExists if the message is already pending.
func Add(db sql.Executor, msg *types.OutgoingRawMessage) error {
	if _, err := db.Exec(`insert into pending_messages (`+fields+`)
		values (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8)`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, msg.Destination.String())
			stmt.BindText(2, string(msg.ID))
			stmt.BindInt64(3, int64(msg.Namespace))
			stmt.BindBytes(4, msg.Data)
			stmt.BindInt64(5, msg.TTL.Milliseconds())
			if msg.PlaintextMirror != nil {
				stmt.BindBytes(6, msg.PlaintextMirror)
			} else {
				stmt.BindNull(6)
			}
			stmt.BindBool(7, msg.Sync)
			stmt.BindInt64(8, msg.CreatedAt.UnixMilli())
		}, nil); err != nil {
		return fmt.Errorf("insert pending %s/%s: %w", msg.Destination.ShortString(), msg.ID, err)
	}
	return nil
}

func decode(stmt *sql.Statement) *types.OutgoingRawMessage {
	msg := &types.OutgoingRawMessage{
		Destination: types.PublicKey(stmt.ColumnText(0)),
		ID:          types.MessageID(stmt.ColumnText(1)),
		Namespace:   namespace.Namespace(stmt.ColumnInt64(2)),
		Data:        sql.ColumnBytes(stmt, 3),
		TTL:         time.Duration(stmt.ColumnInt64(4)) * time.Millisecond,
		Sync:        stmt.ColumnInt(6) != 0,
		CreatedAt:   time.UnixMilli(stmt.ColumnInt64(7)),
	}
	if !sql.IsNull(stmt, 5) {
		msg.PlaintextMirror = sql.ColumnBytes(stmt, 5)
	}
	return msg
}

// Get returns a single pending message.
func Get(db sql.Executor, dest types.PublicKey, id types.MessageID) (*types.OutgoingRawMessage, error) {
	var msg *types.OutgoingRawMessage
	rows, err := db.Exec(`select `+fields+` from pending_messages
		where destination = ?1 and id = ?2`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, dest.String())
			stmt.BindText(2, string(id))
		}, func(stmt *sql.Statement) bool {
			msg = decode(stmt)
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get pending %s/%s: %w", dest.ShortString(), id, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: pending %s/%s", sql.ErrNotFound, dest.ShortString(), id)
	}
	return msg, nil
}

// List returns pending messages of dest in insertion order.
func List(db sql.Executor, dest types.PublicKey) ([]*types.OutgoingRawMessage, error) {
	var rst []*types.OutgoingRawMessage
	if _, err := db.Exec(`select `+fields+` from pending_messages
		where destination = ?1 order by seq`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, dest.String())
		}, func(stmt *sql.Statement) bool {
			rst = append(rst, decode(stmt))
			return true
		}); err != nil {
		return nil, fmt.Errorf("list pending %s: %w", dest.ShortString(), err)
	}
	return rst, nil
}

// Destinations returns every destination with at least one pending message.
func Destinations(db sql.Executor) ([]types.PublicKey, error) {
	var rst []types.PublicKey
	if _, err := db.Exec(`select destination from pending_messages
		group by destination order by min(seq)`, nil,
		func(stmt *sql.Statement) bool {
			rst = append(rst, types.PublicKey(stmt.ColumnText(0)))
			return true
		}); err != nil {
		return nil, fmt.Errorf("pending destinations: %w", err)
	}
	return rst, nil
}

// Remove deletes a pending message. Removing a missing message is not an error.
func Remove(db sql.Executor, dest types.PublicKey, id types.MessageID) error {
	if _, err := db.Exec(`delete from pending_messages where destination = ?1 and id = ?2`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, dest.String())
			stmt.BindText(2, string(id))
		}, nil); err != nil {
		return fmt.Errorf("remove pending %s/%s: %w", dest.ShortString(), id, err)
	}
	return nil
}

// Count returns the number of pending messages of all destinations.
func Count(db sql.Executor) (int, error) {
	var n int
	if _, err := db.Exec(`select count(*) from pending_messages`, nil,
		func(stmt *sql.Statement) bool {
			n = stmt.ColumnInt(0)
			return false
		}); err != nil {
		return 0, fmt.Errorf("count pending: %w", err)
	}
	return n, nil
}
