package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "armada/internal/db"
	"armada/internal/domain/models"

	"github.com/shopspring/decimal"
)

type ExpenseFilter struct {
	StartDate  string
	EndDate    string
	Kind       string
	VehicleID  int64
	TripID     int64
	CategoryID int64
}

type ExpenseRepository struct {
	DB intdb.DBTX
}

func (r ExpenseRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

const expenseSelect = `
	SELECT
		e.id,
		DATE_FORMAT(e.expense_date,'%Y-%m-%d'),
		e.trip_id,
		e.vehicle_id,
		e.category_id,
		e.amount,
		COALESCE(e.notes,''),
		COALESCE(v.plate_number,''),
		COALESCE(k.name,''),
		COALESCE(k.kind,''),
		e.created_at,
		e.updated_at
	FROM expenses e
	LEFT JOIN vehicles v ON v.id = e.vehicle_id
	LEFT JOIN expense_categories k ON k.id = e.category_id`

func scanExpense(s rowScanner) (models.Expense, error) {
	var (
		e                 models.Expense
		tripID, vehicleID sql.NullInt64
	)
	err := s.Scan(
		&e.ID,
		&e.ExpenseDate,
		&tripID,
		&vehicleID,
		&e.CategoryID,
		&e.Amount,
		&e.Notes,
		&e.PlateNumber,
		&e.CategoryName,
		&e.CategoryKind,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	e.TripID = intdb.Int64Ptr(tripID)
	e.VehicleID = intdb.Int64Ptr(vehicleID)
	return e, nil
}

func (r ExpenseRepository) List(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}

	w := where{}
	w.add(intdb.Live("e"))
	if s := strings.TrimSpace(f.StartDate); s != "" {
		w.add("e.expense_date >= ?", s)
	}
	if s := strings.TrimSpace(f.EndDate); s != "" {
		w.add("e.expense_date <= ?", s)
	}
	if s := strings.TrimSpace(f.Kind); s != "" {
		w.add("k.kind = ?", s)
	}
	if f.VehicleID > 0 {
		w.add("e.vehicle_id = ?", f.VehicleID)
	}
	if f.TripID > 0 {
		w.add("e.trip_id = ?", f.TripID)
	}
	if f.CategoryID > 0 {
		w.add("e.category_id = ?", f.CategoryID)
	}

	rows, err := q.QueryContext(ctx, expenseSelect+` WHERE `+w.sql()+` ORDER BY e.expense_date DESC, e.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r ExpenseRepository) GetByID(ctx context.Context, id int64) (models.Expense, error) {
	q, err := r.db()
	if err != nil {
		return models.Expense{}, err
	}
	return scanExpense(q.QueryRowContext(ctx, expenseSelect+` WHERE e.id = ? AND `+intdb.Live("e")+` LIMIT 1`, id))
}

// GetRef loads the foreign keys and amount of a live expense without joins.
func (r ExpenseRepository) GetRef(ctx context.Context, id int64) (models.Expense, error) {
	var (
		e                 models.Expense
		tripID, vehicleID sql.NullInt64
	)
	q, err := r.db()
	if err != nil {
		return e, err
	}
	err = q.QueryRowContext(ctx, `
		SELECT id, trip_id, vehicle_id, category_id, amount
		FROM expenses
		WHERE id = ? AND `+intdb.Live("")+`
		LIMIT 1
	`, id).Scan(&e.ID, &tripID, &vehicleID, &e.CategoryID, &e.Amount)
	if err != nil {
		return e, err
	}
	e.TripID = intdb.Int64Ptr(tripID)
	e.VehicleID = intdb.Int64Ptr(vehicleID)
	return e, nil
}

func (r ExpenseRepository) Insert(ctx context.Context, e models.Expense) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO expenses
			(expense_date, trip_id, vehicle_id, category_id, amount, notes, created_at, updated_at)
		VALUES (?,?,?,?,?,?,NOW(),NOW())
	`,
		e.ExpenseDate,
		intdb.NullInt64(e.TripID),
		intdb.NullInt64(e.VehicleID),
		e.CategoryID,
		e.Amount,
		intdb.NullIfEmpty(e.Notes),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ExpenseRepository) Update(ctx context.Context, e models.Expense) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE expenses SET
			expense_date = ?,
			trip_id = ?,
			vehicle_id = ?,
			category_id = ?,
			amount = ?,
			notes = ?,
			updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`,
		e.ExpenseDate,
		intdb.NullInt64(e.TripID),
		intdb.NullInt64(e.VehicleID),
		e.CategoryID,
		e.Amount,
		intdb.NullIfEmpty(e.Notes),
		e.ID,
	))
}

func (r ExpenseRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE expenses SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`, id))
}

// SumByTrip totals the live expenses attached to a trip.
func (r ExpenseRepository) SumByTrip(ctx context.Context, tripID int64) (decimal.Decimal, error) {
	q, err := r.db()
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	err = q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount),0) FROM expenses WHERE trip_id = ? AND `+intdb.Live("")+`
	`, tripID).Scan(&total)
	return total, err
}

// SyncVehicleForTrip rewrites the vehicle of every live expense attached to the trip.
func (r ExpenseRepository) SyncVehicleForTrip(ctx context.Context, tripID, vehicleID int64) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE expenses SET vehicle_id = ?, updated_at = NOW()
		WHERE trip_id = ? AND `+intdb.Live("")+`
	`, vehicleID, tripID))
}
