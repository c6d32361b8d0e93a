package services

import (
	"context"
	"errors"
	"testing"

	"armada/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

var expenseRefCols = []string{"id", "trip_id", "vehicle_id", "category_id", "amount"}

const expenseRefQuery = `SELECT id, trip_id, vehicle_id, category_id, amount\s+FROM expenses`

func TestTripExpensesKeepBalanceInStep(t *testing.T) {
	db, mock := newMock(t)
	ctx := context.Background()
	svc := ExpenseService{DB: db}
	trip := stateRow{id: 1, vehicle: 1, allowance: "2000000.00", total: "0.00", remaining: "2000000.00", status: "ongoing"}

	// expense A: 500000
	mock.ExpectBegin()
	expectKind(mock, 3, "trip")
	expectTripState(mock, trip)
	mock.ExpectExec(`INSERT INTO expenses`).
		WithArgs("2026-01-21", int64(1), int64(1), int64(3), "500000", "solar").
		WillReturnResult(sqlmock.NewResult(10, 1))
	expectReconcile(mock, 1, "500000.00", "2000000.00", "500000", "1500000")
	mock.ExpectCommit()

	// expense B: 300000
	mock.ExpectBegin()
	expectKind(mock, 3, "trip")
	expectTripState(mock, trip)
	mock.ExpectExec(`INSERT INTO expenses`).
		WithArgs("2026-01-22", int64(1), int64(1), int64(3), "300000", "tol").
		WillReturnResult(sqlmock.NewResult(11, 1))
	expectReconcile(mock, 1, "800000.00", "2000000.00", "800000", "1200000")
	mock.ExpectCommit()

	// delete B
	mock.ExpectBegin()
	mock.ExpectQuery(expenseRefQuery).WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(expenseRefCols).AddRow(11, 1, 1, 3, "300000.00"))
	mock.ExpectExec(`UPDATE expenses SET deleted_at = NOW\(\)`).WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectReconcile(mock, 1, "500000.00", "2000000.00", "500000", "1500000")
	mock.ExpectCommit()

	a, err := svc.Create(ctx, ExpenseInput{
		ExpenseDate: "2026-01-21",
		TripID:      ptr(int64(1)),
		CategoryID:  3,
		Amount:      ptr(decimal.NewFromInt(500000)),
		Notes:       "solar",
	})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	if a.ID != 10 || a.VehicleID == nil || *a.VehicleID != 1 {
		t.Fatalf("expense A should inherit the trip vehicle, got %+v", a)
	}
	if _, err := svc.Create(ctx, ExpenseInput{
		ExpenseDate: "2026-01-22",
		TripID:      ptr(int64(1)),
		CategoryID:  3,
		Amount:      ptr(decimal.NewFromInt(300000)),
		Notes:       "tol",
	}); err != nil {
		t.Fatalf("create B: %v", err)
	}
	if err := svc.Delete(ctx, 11); err != nil {
		t.Fatalf("delete B: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMaintenanceExpenseNeedsVehicle(t *testing.T) {
	db, mock := newMock(t)
	svc := ExpenseService{DB: db}

	mock.ExpectBegin()
	expectKind(mock, 5, "maintenance")
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), ExpenseInput{
		ExpenseDate: "2026-01-21",
		CategoryID:  5,
		Amount:      ptr(decimal.NewFromInt(150000)),
	})
	if _, ok := domain.Fields(err)["vehicle_id"]; !ok {
		t.Fatalf("expected vehicle_id field error, got %v", err)
	}

	mock.ExpectBegin()
	expectKind(mock, 5, "maintenance")
	expectExists(mock, "vehicles", 2, 1)
	mock.ExpectExec(`INSERT INTO expenses`).
		WithArgs("2026-01-21", nil, int64(2), int64(5), "150000", "ganti oli mesin").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	e, err := svc.Create(context.Background(), ExpenseInput{
		ExpenseDate: "2026-01-21",
		VehicleID:   ptr(int64(2)),
		CategoryID:  5,
		Amount:      ptr(decimal.NewFromInt(150000)),
		Notes:       " ganti oli mesin ",
	})
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}
	if e.TripID != nil || e.CategoryKind != "maintenance" {
		t.Fatalf("unexpected expense %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripExpenseRules(t *testing.T) {
	cases := []struct {
		name  string
		in    ExpenseInput
		setup func(sqlmock.Sqlmock)
		field string
	}{
		{
			name: "trip kind without trip",
			in:   ExpenseInput{ExpenseDate: "2026-01-21", CategoryID: 3, Amount: ptr(decimal.NewFromInt(1))},
			setup: func(m sqlmock.Sqlmock) {
				expectKind(m, 3, "trip")
			},
			field: "trip_id",
		},
		{
			name: "vehicle differs from trip",
			in: ExpenseInput{
				ExpenseDate: "2026-01-21",
				TripID:      ptr(int64(1)),
				VehicleID:   ptr(int64(9)),
				CategoryID:  3,
				Amount:      ptr(decimal.NewFromInt(1)),
			},
			setup: func(m sqlmock.Sqlmock) {
				expectKind(m, 3, "trip")
				expectTripState(m, stateRow{id: 1, vehicle: 1, allowance: "0", total: "0", remaining: "0", status: "ongoing"})
			},
			field: "vehicle_id",
		},
		{
			name: "unknown category",
			in:   ExpenseInput{ExpenseDate: "2026-01-21", CategoryID: 99, Amount: ptr(decimal.NewFromInt(1))},
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT kind FROM expense_categories`).WithArgs(int64(99)).
					WillReturnRows(sqlmock.NewRows([]string{"kind"}))
			},
			field: "category_id",
		},
		{
			name: "negative amount",
			in:   ExpenseInput{ExpenseDate: "2026-01-21", CategoryID: 8, Amount: ptr(decimal.NewFromInt(-5))},
			setup: func(m sqlmock.Sqlmock) {
				expectKind(m, 8, "general")
			},
			field: "amount",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectBegin()
			tc.setup(mock)
			mock.ExpectRollback()

			_, err := ExpenseService{DB: db}.Create(context.Background(), tc.in)
			if _, ok := domain.Fields(err)[tc.field]; !ok {
				t.Fatalf("expected %s field error, got %v", tc.field, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestDisabledKindRejected(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	expectKind(mock, 8, "general")
	mock.ExpectRollback()

	svc := ExpenseService{DB: db, Kinds: domain.NewKindSet([]string{"maintenance", "trip"})}
	_, err := svc.Create(context.Background(), ExpenseInput{
		ExpenseDate: "2026-01-21",
		CategoryID:  8,
		Amount:      ptr(decimal.NewFromInt(1)),
	})
	if _, ok := domain.Fields(err)["category_id"]; !ok {
		t.Fatalf("expected category_id field error, got %v", err)
	}
}

func TestUpdateMovingTripReconcilesBoth(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(expenseRefQuery).WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(expenseRefCols).AddRow(11, 1, 1, 3, "300000.00"))
	expectKind(mock, 3, "trip")
	expectTripState(mock, stateRow{id: 2, vehicle: 4, allowance: "1000000.00", total: "0", remaining: "1000000.00", status: "ongoing"})
	mock.ExpectExec(`UPDATE expenses SET\s+expense_date = \?`).
		WithArgs("2026-01-23", int64(2), int64(4), int64(3), "300000", nil, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectReconcile(mock, 1, "200000.00", "2000000.00", "200000", "1800000")
	expectReconcile(mock, 2, "300000.00", "1000000.00", "300000", "700000")
	mock.ExpectCommit()

	e, err := ExpenseService{DB: db}.Update(context.Background(), 11, ExpenseInput{
		ExpenseDate: "2026-01-23",
		TripID:      ptr(int64(2)),
		CategoryID:  3,
		Amount:      ptr(decimal.NewFromInt(300000)),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if *e.VehicleID != 4 {
		t.Fatalf("vehicle should follow trip 2, got %d", *e.VehicleID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateMissingExpense(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(expenseRefQuery).WithArgs(int64(40)).WillReturnRows(sqlmock.NewRows(expenseRefCols))
	mock.ExpectRollback()

	_, err := ExpenseService{DB: db}.Update(context.Background(), 40, ExpenseInput{})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestReconcileMissingTripIsNoop(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\),0\) FROM expenses`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))
	expectTripMissing(mock, 7)

	if err := (ExpenseService{}).Reconcile(context.Background(), db, 7); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	expectKind(mock, 8, "general")
	mock.ExpectExec(`INSERT INTO expenses`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := ExpenseService{DB: db}.Create(context.Background(), ExpenseInput{
		ExpenseDate: "2026-01-21",
		CategoryID:  8,
		Amount:      ptr(decimal.NewFromInt(250000)),
	})
	if err == nil || domain.IsValidation(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReconcileAll(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT id FROM trips`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectBegin()
	expectReconcile(mock, 1, "0", "500000.00", "0", "500000")
	mock.ExpectCommit()
	mock.ExpectBegin()
	expectReconcile(mock, 2, "100000.00", "100000.00", "100000", "0")
	mock.ExpectCommit()

	n, err := ExpenseService{DB: db}.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("reconcile all: %v", err)
	}
	if n != 2 {
		t.Fatalf("reconciled %d trips, want 2", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAffectedTrips(t *testing.T) {
	one, two := int64(1), int64(2)
	cases := []struct {
		old, cur *int64
		want     []int64
	}{
		{nil, nil, []int64{}},
		{&one, nil, []int64{1}},
		{nil, &two, []int64{2}},
		{&one, &one, []int64{1}},
		{&one, &two, []int64{1, 2}},
	}
	for _, tc := range cases {
		got := affectedTrips(tc.old, tc.cur)
		if len(got) != len(tc.want) {
			t.Fatalf("affectedTrips = %v, want %v", got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("affectedTrips = %v, want %v", got, tc.want)
			}
		}
	}
}
