package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var tripStateCols = []string{"id", "vehicle_id", "allowance", "total_expense", "remaining_balance", "status", "settlement_status"}

const tripStateQuery = `SELECT id, vehicle_id, allowance, total_expense, remaining_balance, status, settlement_status\s+FROM trips`

type stateRow struct {
	id, vehicle        int64
	allowance, total   string
	remaining          string
	status, settlement string
}

func expectTripState(mock sqlmock.Sqlmock, r stateRow) {
	if r.settlement == "" {
		r.settlement = "unsettled"
	}
	mock.ExpectQuery(tripStateQuery).WithArgs(r.id).WillReturnRows(
		sqlmock.NewRows(tripStateCols).AddRow(r.id, r.vehicle, r.allowance, r.total, r.remaining, r.status, r.settlement),
	)
}

func expectTripMissing(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(tripStateQuery).WithArgs(id).WillReturnRows(sqlmock.NewRows(tripStateCols))
}

func expectExists(mock sqlmock.Sqlmock, table string, id int64, n int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ` + table + ` WHERE id=\?`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(n))
}

func expectKind(mock sqlmock.Sqlmock, categoryID int64, kind string) {
	mock.ExpectQuery(`SELECT kind FROM expense_categories`).WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow(kind))
}

// expectReconcile covers one Reconcile call: sum, state reload, financial update.
func expectReconcile(mock sqlmock.Sqlmock, tripID int64, sum, allowance, wantTotal, wantRemaining string) {
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\),0\) FROM expenses`).WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(sum))
	expectTripState(mock, stateRow{id: tripID, vehicle: 1, allowance: allowance, total: "0", remaining: allowance, status: "ongoing"})
	mock.ExpectExec(`UPDATE trips SET total_expense = \?, remaining_balance = \?`).
		WithArgs(wantTotal, wantRemaining, tripID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func ptr[T any](v T) *T { return &v }
