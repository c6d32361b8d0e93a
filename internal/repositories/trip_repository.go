package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "armada/internal/db"
	"armada/internal/domain/models"

	"github.com/shopspring/decimal"
)

type TripFilter struct {
	StartDate string
	EndDate   string
	Status    string
	VehicleID int64
}

type TripRepository struct {
	DB intdb.DBTX
}

func (r TripRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

const tripSelect = `
	SELECT
		t.id,
		DATE_FORMAT(t.trip_date,'%Y-%m-%d'),
		t.vehicle_id,
		t.customer_id,
		t.origin_id,
		t.destination_id,
		t.allowance,
		t.total_expense,
		t.remaining_balance,
		t.status,
		t.settlement_status,
		t.returned_amount,
		COALESCE(DATE_FORMAT(t.returned_date,'%Y-%m-%d'),''),
		t.settlement_difference,
		COALESCE(t.trip_notes,''),
		COALESCE(t.settlement_notes,''),
		COALESCE(v.plate_number,''),
		COALESCE(v.type,''),
		COALESCE(c.name,''),
		COALESCE(o.city_name,''),
		COALESCE(d.city_name,''),
		t.created_at,
		t.updated_at
	FROM trips t
	LEFT JOIN vehicles v ON v.id = t.vehicle_id
	LEFT JOIN customers c ON c.id = t.customer_id
	LEFT JOIN locations o ON o.id = t.origin_id
	LEFT JOIN locations d ON d.id = t.destination_id`

func scanTrip(s rowScanner) (models.Trip, error) {
	var (
		t                                   models.Trip
		customerID, originID, destinationID sql.NullInt64
	)
	err := s.Scan(
		&t.ID,
		&t.TripDate,
		&t.VehicleID,
		&customerID,
		&originID,
		&destinationID,
		&t.Allowance,
		&t.TotalExpense,
		&t.RemainingBalance,
		&t.Status,
		&t.SettlementStatus,
		&t.ReturnedAmount,
		&t.ReturnedDate,
		&t.SettlementDiff,
		&t.TripNotes,
		&t.SettlementNotes,
		&t.PlateNumber,
		&t.VehicleType,
		&t.CustomerName,
		&t.OriginName,
		&t.DestinationName,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.CustomerID = intdb.Int64Ptr(customerID)
	t.OriginID = intdb.Int64Ptr(originID)
	t.DestinationID = intdb.Int64Ptr(destinationID)
	return t, nil
}

func (r TripRepository) List(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}

	w := where{}
	w.add(intdb.Live("t"))
	if s := strings.TrimSpace(f.StartDate); s != "" {
		w.add("t.trip_date >= ?", s)
	}
	if s := strings.TrimSpace(f.EndDate); s != "" {
		w.add("t.trip_date <= ?", s)
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		w.add("t.status = ?", s)
	}
	if f.VehicleID > 0 {
		w.add("t.vehicle_id = ?", f.VehicleID)
	}

	rows, err := q.QueryContext(ctx, tripSelect+` WHERE `+w.sql()+` ORDER BY t.trip_date DESC, t.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows for missing or soft-deleted trips.
func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	q, err := r.db()
	if err != nil {
		return models.Trip{}, err
	}
	return scanTrip(q.QueryRowContext(ctx, tripSelect+` WHERE t.id = ? AND `+intdb.Live("t")+` LIMIT 1`, id))
}

// GetState loads only the columns lifecycle and reconciliation decisions need.
func (r TripRepository) GetState(ctx context.Context, id int64) (models.TripState, error) {
	var st models.TripState
	q, err := r.db()
	if err != nil {
		return st, err
	}
	err = q.QueryRowContext(ctx, `
		SELECT id, vehicle_id, allowance, total_expense, remaining_balance, status, settlement_status
		FROM trips
		WHERE id = ? AND `+intdb.Live("")+`
		LIMIT 1
	`, id).Scan(
		&st.ID,
		&st.VehicleID,
		&st.Allowance,
		&st.TotalExpense,
		&st.RemainingBalance,
		&st.Status,
		&st.SettlementStatus,
	)
	return st, err
}

func (r TripRepository) Insert(ctx context.Context, t models.Trip) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO trips
			(trip_date, vehicle_id, customer_id, origin_id, destination_id,
			 allowance, total_expense, remaining_balance, status, settlement_status,
			 trip_notes, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())
	`,
		t.TripDate,
		t.VehicleID,
		intdb.NullInt64(t.CustomerID),
		intdb.NullInt64(t.OriginID),
		intdb.NullInt64(t.DestinationID),
		t.Allowance,
		t.TotalExpense,
		t.RemainingBalance,
		t.Status,
		t.SettlementStatus,
		intdb.NullIfEmpty(t.TripNotes),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateFields rewrites the editable columns of a draft trip. Zero rows means
// the trip is gone or has left draft.
func (r TripRepository) UpdateFields(ctx context.Context, t models.Trip) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE trips SET
			trip_date = ?,
			vehicle_id = ?,
			customer_id = ?,
			origin_id = ?,
			destination_id = ?,
			allowance = ?,
			remaining_balance = ?,
			trip_notes = ?,
			updated_at = NOW()
		WHERE id = ? AND status = 'draft' AND `+intdb.Live("")+`
	`,
		t.TripDate,
		t.VehicleID,
		intdb.NullInt64(t.CustomerID),
		intdb.NullInt64(t.OriginID),
		intdb.NullInt64(t.DestinationID),
		t.Allowance,
		t.RemainingBalance,
		intdb.NullIfEmpty(t.TripNotes),
		t.ID,
	))
}

// UpdateStatus moves a trip from one status to another, only if it is still in from.
func (r TripRepository) UpdateStatus(ctx context.Context, id int64, from, to string) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE trips SET status = ?, updated_at = NOW()
		WHERE id = ? AND status = ? AND `+intdb.Live("")+`
	`, to, id, from))
}

// ForceStatus sets status without consulting the current value.
func (r TripRepository) ForceStatus(ctx context.Context, id int64, to string) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE trips SET status = ?, updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`, to, id))
}

func (r TripRepository) UpdateFinancials(ctx context.Context, id int64, total, remaining decimal.Decimal) error {
	q, err := r.db()
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
		UPDATE trips SET total_expense = ?, remaining_balance = ?, updated_at = NOW()
		WHERE id = ?
	`, total, remaining, id)
	return err
}

// UpdateSettlement records the cash return once; a settled trip is left untouched.
func (r TripRepository) UpdateSettlement(ctx context.Context, id int64, s models.Settlement) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE trips SET
			returned_amount = ?,
			returned_date = ?,
			settlement_difference = ?,
			settlement_notes = ?,
			settlement_status = 'settled',
			updated_at = NOW()
		WHERE id = ? AND settlement_status = 'unsettled' AND `+intdb.Live("")+`
	`,
		s.ReturnedAmount,
		s.ReturnedDate.Format("2006-01-02"),
		s.Difference,
		intdb.NullIfEmpty(s.Notes),
		id,
	))
}

func (r TripRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE trips SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`, id))
}

// CountReferencing counts live trips pointing at id through any of the given columns.
// columns must be trusted identifiers.
func (r TripRepository) CountReferencing(ctx context.Context, id int64, columns ...string) (int, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, nil
	}
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, c := range columns {
		conds = append(conds, c+" = ?")
		args = append(args, id)
	}
	var n int
	err = q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trips WHERE (`+strings.Join(conds, " OR ")+`) AND `+intdb.Live(""),
		args...,
	).Scan(&n)
	return n, err
}

// ListIDs returns every live trip id in ascending order.
func (r TripRepository) ListIDs(ctx context.Context) ([]int64, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `SELECT id FROM trips WHERE `+intdb.Live("")+` ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
