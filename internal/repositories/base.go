package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "armada/internal/config"
	intdb "armada/internal/db"
)

// ErrNoDB is returned when neither an explicit handle nor the shared pool is available.
var ErrNoDB = errors.New("database belum terhubung")

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func conn(q intdb.DBTX) (intdb.DBTX, error) {
	if q != nil {
		return q, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, ErrNoDB
}

func affected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// where accumulates AND-joined predicates and their args.
type where struct {
	parts []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.parts = append(w.parts, cond)
	w.args = append(w.args, args...)
}

func (w *where) sql() string {
	if len(w.parts) == 0 {
		return "1=1"
	}
	return strings.Join(w.parts, " AND ")
}

// valueExists reports whether a live row has column = value. table and column
// must be trusted identifiers.
func valueExists(ctx context.Context, q intdb.DBTX, table, column string, value any) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE `+column+` = ? AND `+intdb.Live(""), value).Scan(&n)
	return n > 0, err
}
