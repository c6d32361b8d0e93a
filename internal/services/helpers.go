package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "armada/internal/config"
	intdb "armada/internal/db"
	"armada/internal/domain"
	"armada/internal/utils"

	"github.com/shopspring/decimal"
)

var errNoDB = errors.New("database belum terhubung")

func pickDB(db *sql.DB) (*sql.DB, error) {
	if db != nil {
		return db, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, errNoDB
}

// notFound converts sql.ErrNoRows into the domain error; other errors pass through.
func notFound(err error, resource string) error {
	if intdb.IsNoRows(err) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

// requireLive records msg under field when id does not name a live row of table.
// Only database failures are returned.
func requireLive(ctx context.Context, q intdb.DBTX, fe domain.FieldErrors, field, table string, id int64, msg string) error {
	ok, err := intdb.ExistsLive(ctx, q, table, id)
	if err != nil {
		return err
	}
	if !ok {
		fe.Add(field, msg)
	}
	return nil
}

// optionalID treats nil and non-positive ids as absent.
func optionalID(p *int64) (int64, bool) {
	if p == nil || *p <= 0 {
		return 0, false
	}
	return *p, true
}

func parseRequiredDate(fe domain.FieldErrors, field, raw, label string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		fe.Add(field, label+" wajib diisi")
		return ""
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		fe.Add(field, "format "+label+" harus YYYY-MM-DD")
		return ""
	}
	return utils.FormatDate(t)
}

func requireNonNegative(fe domain.FieldErrors, field string, v *decimal.Decimal, label string) decimal.Decimal {
	if v == nil {
		fe.Add(field, label+" wajib diisi")
		return decimal.Zero
	}
	if v.IsNegative() {
		fe.Add(field, label+" tidak boleh negatif")
		return decimal.Zero
	}
	return v.Round(2)
}
