package repositories

import (
	"context"

	intdb "armada/internal/db"
	"armada/internal/domain/models"
)

type LocationRepository struct {
	DB intdb.DBTX
}

func (r LocationRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

const locationSelect = `SELECT id, city_name, is_active, created_at, updated_at FROM locations`

func scanLocation(s rowScanner) (models.Location, error) {
	var l models.Location
	err := s.Scan(&l.ID, &l.CityName, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r LocationRepository) List(ctx context.Context, activeOnly bool) ([]models.Location, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := where{}
	w.add(intdb.Live(""))
	if activeOnly {
		w.add("is_active = 1")
	}
	rows, err := q.QueryContext(ctx, locationSelect+` WHERE `+w.sql()+` ORDER BY city_name ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return out, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r LocationRepository) GetByID(ctx context.Context, id int64) (models.Location, error) {
	q, err := r.db()
	if err != nil {
		return models.Location{}, err
	}
	return scanLocation(q.QueryRowContext(ctx, locationSelect+` WHERE id = ? AND `+intdb.Live("")+` LIMIT 1`, id))
}

func (r LocationRepository) Insert(ctx context.Context, l models.Location) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO locations (city_name, is_active, created_at, updated_at) VALUES (?,?,NOW(),NOW())
	`, l.CityName, l.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r LocationRepository) Update(ctx context.Context, l models.Location) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE locations SET city_name = ?, is_active = ?, updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`, l.CityName, l.IsActive, l.ID))
}

func (r LocationRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `UPDATE locations SET deleted_at = NOW(), updated_at = NOW() WHERE id = ? AND `+intdb.Live(""), id))
}

func (r LocationRepository) CityExists(ctx context.Context, name string) (bool, error) {
	q, err := r.db()
	if err != nil {
		return false, err
	}
	return valueExists(ctx, q, "locations", "city_name", name)
}
