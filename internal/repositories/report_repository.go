package repositories

import (
	"context"

	intdb "armada/internal/db"
	"armada/internal/domain/models"

	"github.com/shopspring/decimal"
)

// CostFilter scopes the vehicle cost report. With no vehicle, ShowGeneral switches
// between vehicle-bound expenses and overhead without a vehicle.
type CostFilter struct {
	StartDate   string
	EndDate     string
	VehicleID   int64
	ShowGeneral bool
}

type VehicleCost struct {
	VehicleID   int64           `json:"vehicle_id"`
	PlateNumber string          `json:"plate_number"`
	Type        string          `json:"type"`
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
}

type CategoryCost struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Total decimal.Decimal `json:"total"`
}

type KindCost struct {
	Kind  string          `json:"kind"`
	Total decimal.Decimal `json:"total"`
}

type ReportRepository struct {
	DB intdb.DBTX
}

func (r ReportRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

func (f CostFilter) scope() where {
	w := where{}
	w.add(intdb.Live("e"))
	w.add("e.expense_date BETWEEN ? AND ?", f.StartDate, f.EndDate)
	switch {
	case f.VehicleID > 0:
		w.add("e.vehicle_id = ?", f.VehicleID)
	case f.ShowGeneral:
		w.add("e.vehicle_id IS NULL")
	default:
		w.add("e.vehicle_id IS NOT NULL")
	}
	return w
}

func (r ReportRepository) CostDetail(ctx context.Context, f CostFilter) ([]models.Expense, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := f.scope()
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

// CostPerVehicle ignores ShowGeneral; overhead has no vehicle to group by.
func (r ReportRepository) CostPerVehicle(ctx context.Context, f CostFilter) ([]VehicleCost, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := where{}
	w.add(intdb.Live("e"))
	w.add("e.expense_date BETWEEN ? AND ?", f.StartDate, f.EndDate)
	w.add("e.vehicle_id IS NOT NULL")
	if f.VehicleID > 0 {
		w.add("e.vehicle_id = ?", f.VehicleID)
	}
	rows, err := q.QueryContext(ctx, `
		SELECT v.id, COALESCE(v.plate_number,''), COALESCE(v.type,''), COALESCE(SUM(e.amount),0), COUNT(e.id)
		FROM expenses e
		LEFT JOIN vehicles v ON v.id = e.vehicle_id
		WHERE `+w.sql()+`
		GROUP BY v.id, v.plate_number, v.type
		ORDER BY 4 DESC
	`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VehicleCost{}
	for rows.Next() {
		var vc VehicleCost
		if err := rows.Scan(&vc.VehicleID, &vc.PlateNumber, &vc.Type, &vc.Total, &vc.Count); err != nil {
			return out, err
		}
		out = append(out, vc)
	}
	return out, rows.Err()
}

func (r ReportRepository) CostPerCategory(ctx context.Context, f CostFilter) ([]CategoryCost, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := f.scope()
	rows, err := q.QueryContext(ctx, `
		SELECT COALESCE(k.name,''), COALESCE(k.kind,''), COALESCE(SUM(e.amount),0)
		FROM expenses e
		LEFT JOIN expense_categories k ON k.id = e.category_id
		WHERE `+w.sql()+`
		GROUP BY k.id, k.name, k.kind
		ORDER BY 3 DESC
	`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CategoryCost{}
	for rows.Next() {
		var cc CategoryCost
		if err := rows.Scan(&cc.Name, &cc.Kind, &cc.Total); err != nil {
			return out, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

func (r ReportRepository) CostPerKind(ctx context.Context, f CostFilter) ([]KindCost, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := f.scope()
	rows, err := q.QueryContext(ctx, `
		SELECT COALESCE(k.kind,''), COALESCE(SUM(e.amount),0)
		FROM expenses e
		LEFT JOIN expense_categories k ON k.id = e.category_id
		WHERE `+w.sql()+`
		GROUP BY k.kind
		ORDER BY 1 ASC
	`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []KindCost{}
	for rows.Next() {
		var kc KindCost
		if err := rows.Scan(&kc.Kind, &kc.Total); err != nil {
			return out, err
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}
