package repositories

import (
	"context"
	"database/sql"

	intdb "armada/internal/db"
	"armada/internal/domain/models"
)

type VehicleRepository struct {
	DB intdb.DBTX
}

func (r VehicleRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

const vehicleSelect = `
	SELECT id, plate_number, type, COALESCE(brand,''), year, capacity_tons, is_active, COALESCE(notes,''), created_at, updated_at
	FROM vehicles`

func scanVehicle(s rowScanner) (models.Vehicle, error) {
	var (
		v    models.Vehicle
		year sql.NullInt64
	)
	if err := s.Scan(&v.ID, &v.PlateNumber, &v.Type, &v.Brand, &year, &v.CapacityTons, &v.IsActive, &v.Notes, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return v, err
	}
	if year.Valid {
		y := int(year.Int64)
		v.Year = &y
	}
	return v, nil
}

// List returns live vehicles ordered by plate; activeOnly narrows to dropdown candidates.
func (r VehicleRepository) List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := where{}
	w.add(intdb.Live(""))
	if activeOnly {
		w.add("is_active = 1")
	}
	rows, err := q.QueryContext(ctx, vehicleSelect+` WHERE `+w.sql()+` ORDER BY plate_number ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	q, err := r.db()
	if err != nil {
		return models.Vehicle{}, err
	}
	return scanVehicle(q.QueryRowContext(ctx, vehicleSelect+` WHERE id = ? AND `+intdb.Live("")+` LIMIT 1`, id))
}

func vehicleArgs(v models.Vehicle) []any {
	var year any
	if v.Year != nil {
		year = *v.Year
	}
	var capacity any
	if v.CapacityTons.Valid {
		capacity = v.CapacityTons.Decimal
	}
	return []any{v.PlateNumber, v.Type, intdb.NullIfEmpty(v.Brand), year, capacity, v.IsActive, intdb.NullIfEmpty(v.Notes)}
}

func (r VehicleRepository) Insert(ctx context.Context, v models.Vehicle) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO vehicles (plate_number, type, brand, year, capacity_tons, is_active, notes, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,NOW(),NOW())
	`, vehicleArgs(v)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(ctx context.Context, v models.Vehicle) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	args := append(vehicleArgs(v), v.ID)
	return affected(q.ExecContext(ctx, `
		UPDATE vehicles SET
			plate_number = ?, type = ?, brand = ?, year = ?, capacity_tons = ?, is_active = ?, notes = ?,
			updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`, args...))
}

func (r VehicleRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `UPDATE vehicles SET deleted_at = NOW(), updated_at = NOW() WHERE id = ? AND `+intdb.Live(""), id))
}
