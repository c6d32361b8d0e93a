package repositories

import (
	"context"
	"strings"

	intdb "armada/internal/db"
	"armada/internal/domain/models"
)

type CategoryFilter struct {
	Kind       string
	ActiveOnly bool
}

type CategoryRepository struct {
	DB intdb.DBTX
}

func (r CategoryRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

const categorySelect = `SELECT id, name, kind, COALESCE(notes,''), is_active, created_at, updated_at FROM expense_categories`

func scanCategory(s rowScanner) (models.ExpenseCategory, error) {
	var c models.ExpenseCategory
	err := s.Scan(&c.ID, &c.Name, &c.Kind, &c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r CategoryRepository) List(ctx context.Context, f CategoryFilter) ([]models.ExpenseCategory, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := where{}
	w.add(intdb.Live(""))
	if k := strings.TrimSpace(f.Kind); k != "" {
		w.add("kind = ?", k)
	}
	if f.ActiveOnly {
		w.add("is_active = 1")
	}
	rows, err := q.QueryContext(ctx, categorySelect+` WHERE `+w.sql()+` ORDER BY kind ASC, name ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ExpenseCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CategoryRepository) GetByID(ctx context.Context, id int64) (models.ExpenseCategory, error) {
	q, err := r.db()
	if err != nil {
		return models.ExpenseCategory{}, err
	}
	return scanCategory(q.QueryRowContext(ctx, categorySelect+` WHERE id = ? AND `+intdb.Live("")+` LIMIT 1`, id))
}

// KindOf returns the kind of a live category, or sql.ErrNoRows.
func (r CategoryRepository) KindOf(ctx context.Context, id int64) (string, error) {
	q, err := r.db()
	if err != nil {
		return "", err
	}
	var kind string
	err = q.QueryRowContext(ctx, `SELECT kind FROM expense_categories WHERE id = ? AND `+intdb.Live("")+` LIMIT 1`, id).Scan(&kind)
	return kind, err
}

func (r CategoryRepository) Insert(ctx context.Context, c models.ExpenseCategory) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO expense_categories (name, kind, notes, is_active, created_at, updated_at)
		VALUES (?,?,?,?,NOW(),NOW())
	`, c.Name, c.Kind, intdb.NullIfEmpty(c.Notes), c.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CategoryRepository) Update(ctx context.Context, c models.ExpenseCategory) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE expense_categories SET name = ?, kind = ?, notes = ?, is_active = ?, updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`, c.Name, c.Kind, intdb.NullIfEmpty(c.Notes), c.IsActive, c.ID))
}

func (r CategoryRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `UPDATE expense_categories SET deleted_at = NOW(), updated_at = NOW() WHERE id = ? AND `+intdb.Live(""), id))
}

func (r CategoryRepository) NameExists(ctx context.Context, name string) (bool, error) {
	q, err := r.db()
	if err != nil {
		return false, err
	}
	return valueExists(ctx, q, "expense_categories", "name", name)
}
