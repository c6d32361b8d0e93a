package repositories

import (
	"context"

	intdb "armada/internal/db"
	"armada/internal/domain/models"
)

type CustomerRepository struct {
	DB intdb.DBTX
}

func (r CustomerRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

const customerSelect = `SELECT id, name, phone, COALESCE(address,''), is_active, created_at, updated_at FROM customers`

func scanCustomer(s rowScanner) (models.Customer, error) {
	var c models.Customer
	err := s.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r CustomerRepository) List(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := where{}
	w.add(intdb.Live(""))
	if activeOnly {
		w.add("is_active = 1")
	}
	rows, err := q.QueryContext(ctx, customerSelect+` WHERE `+w.sql()+` ORDER BY name ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CustomerRepository) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	q, err := r.db()
	if err != nil {
		return models.Customer{}, err
	}
	return scanCustomer(q.QueryRowContext(ctx, customerSelect+` WHERE id = ? AND `+intdb.Live("")+` LIMIT 1`, id))
}

func (r CustomerRepository) Insert(ctx context.Context, c models.Customer) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO customers (name, phone, address, is_active, created_at, updated_at)
		VALUES (?,?,?,?,NOW(),NOW())
	`, c.Name, c.Phone, intdb.NullIfEmpty(c.Address), c.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CustomerRepository) Update(ctx context.Context, c models.Customer) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE customers SET name = ?, phone = ?, address = ?, is_active = ?, updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`, c.Name, c.Phone, intdb.NullIfEmpty(c.Address), c.IsActive, c.ID))
}

func (r CustomerRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `UPDATE customers SET deleted_at = NOW(), updated_at = NOW() WHERE id = ? AND `+intdb.Live(""), id))
}
