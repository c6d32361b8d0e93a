package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"armada/internal/utils"

	"go.uber.org/zap"
)

// RequiredTables lists the tables the service expects after migrations.
var RequiredTables = []string{
	"users",
	"vehicles",
	"customers",
	"locations",
	"expense_categories",
	"trips",
	"expenses",
	"delivery_checklists",
}

func HasTable(ctx context.Context, q DBTX, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		// bad conn -> false, biar caller yang handle
		if errors.Is(err, driver.ErrBadConn) {
			utils.Logger().Warn("information_schema lookup on bad connection", zap.String("table", table))
		}
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(ctx context.Context, q DBTX, table, column string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// MissingTables returns the subset of RequiredTables not present in the schema.
func MissingTables(ctx context.Context, q DBTX) []string {
	missing := []string{}
	for _, t := range RequiredTables {
		if !HasTable(ctx, q, t) {
			missing = append(missing, t)
		}
	}
	return missing
}
