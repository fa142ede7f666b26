// Package dumps persists serialized config wrapper snapshots.
package dumps

import (
	"bytes"
	"fmt"
	"time"

	"github.com/zeebo/blake3"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/sql"
)

// Dump is the persisted state of one config wrapper.
type Dump struct {
	Variant   string
	PublicKey types.PublicKey
	Data      []byte
	UpdatedAt time.Time
}

func digest(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

// Save stores the dump. It returns false without writing if the stored bytes are identical.
func Save(db sql.Executor, d Dump) (bool, error) {
	sum := digest(d.Data)
	var prev []byte
	if _, err := db.Exec(`select digest from config_dumps where variant = ?1 and public_key = ?2`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, d.Variant)
			stmt.BindText(2, d.PublicKey.String())
		}, func(stmt *sql.Statement) bool {
			prev = sql.ColumnBytes(stmt, 0)
			return false
		}); err != nil {
		return false, fmt.Errorf("get dump digest %s/%s: %w", d.Variant, d.PublicKey.ShortString(), err)
	}
	if bytes.Equal(prev, sum) {
		return false, nil
	}
	if _, err := db.Exec(`insert into config_dumps (variant, public_key, data, digest, updated_ms)
		values (?1, ?2, ?3, ?4, ?5)
		on conflict (variant, public_key) do update set
			data = ?3, digest = ?4, updated_ms = ?5`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, d.Variant)
			stmt.BindText(2, d.PublicKey.String())
			stmt.BindBytes(3, d.Data)
			stmt.BindBytes(4, sum)
			stmt.BindInt64(5, d.UpdatedAt.UnixMilli())
		}, nil); err != nil {
		return false, fmt.Errorf("save dump %s/%s: %w", d.Variant, d.PublicKey.ShortString(), err)
	}
	return true, nil
}

func decode(stmt *sql.Statement) Dump {
	return Dump{
		Variant:   stmt.ColumnText(0),
		PublicKey: types.PublicKey(stmt.ColumnText(1)),
		Data:      sql.ColumnBytes(stmt, 2),
		UpdatedAt: time.UnixMilli(stmt.ColumnInt64(3)),
	}
}

// Get returns the dump of a single wrapper.
func Get(db sql.Executor, variant string, pk types.PublicKey) (Dump, error) {
	var d Dump
	rows, err := db.Exec(`select variant, public_key, data, updated_ms from config_dumps
		where variant = ?1 and public_key = ?2`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, variant)
			stmt.BindText(2, pk.String())
		}, func(stmt *sql.Statement) bool {
			d = decode(stmt)
			return false
		})
	if err != nil {
		return Dump{}, fmt.Errorf("get dump %s/%s: %w", variant, pk.ShortString(), err)
	}
	if rows == 0 {
		return Dump{}, fmt.Errorf("%w: dump %s/%s", sql.ErrNotFound, variant, pk.ShortString())
	}
	return d, nil
}

// ForPublicKey returns every dump owned by pk.
func ForPublicKey(db sql.Executor, pk types.PublicKey) ([]Dump, error) {
	var rst []Dump
	if _, err := db.Exec(`select variant, public_key, data, updated_ms from config_dumps
		where public_key = ?1 order by variant`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, pk.String())
		}, func(stmt *sql.Statement) bool {
			rst = append(rst, decode(stmt))
			return true
		}); err != nil {
		return nil, fmt.Errorf("list dumps %s: %w", pk.ShortString(), err)
	}
	return rst, nil
}

// Delete removes every dump owned by pk.
func Delete(db sql.Executor, pk types.PublicKey) error {
	if _, err := db.Exec(`delete from config_dumps where public_key = ?1`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, pk.String())
		}, nil); err != nil {
		return fmt.Errorf("delete dumps %s: %w", pk.ShortString(), err)
	}
	return nil
}
