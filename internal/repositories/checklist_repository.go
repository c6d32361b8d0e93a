package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intdb "armada/internal/db"
	"armada/internal/domain/models"
)

type ChecklistFilter struct {
	StartDate string
	EndDate   string
	Status    string
}

type ChecklistRepository struct {
	DB intdb.DBTX
}

func (r ChecklistRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

const checklistSelect = `
	SELECT id, document_number, DATE_FORMAT(document_date,'%Y-%m-%d'), status, completed_at, COALESCE(notes,''), created_at, updated_at
	FROM delivery_checklists`

func scanChecklist(s rowScanner) (models.DeliveryChecklist, error) {
	var (
		c           models.DeliveryChecklist
		completedAt sql.NullTime
	)
	if err := s.Scan(&c.ID, &c.DocumentNumber, &c.DocumentDate, &c.Status, &completedAt, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return c, err
	}
	c.CompletedAt = intdb.TimePtr(completedAt)
	return c, nil
}

func (r ChecklistRepository) List(ctx context.Context, f ChecklistFilter) ([]models.DeliveryChecklist, error) {
	q, err := r.db()
	if err != nil {
		return nil, err
	}
	w := where{}
	w.add(intdb.Live(""))
	if s := strings.TrimSpace(f.StartDate); s != "" {
		w.add("document_date >= ?", s)
	}
	if s := strings.TrimSpace(f.EndDate); s != "" {
		w.add("document_date <= ?", s)
	}
	if s := strings.TrimSpace(f.Status); s != "" && s != "all" {
		w.add("status = ?", s)
	}
	rows, err := q.QueryContext(ctx, checklistSelect+` WHERE `+w.sql()+` ORDER BY document_date DESC, id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.DeliveryChecklist{}
	for rows.Next() {
		c, err := scanChecklist(rows)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ChecklistRepository) GetByID(ctx context.Context, id int64) (models.DeliveryChecklist, error) {
	q, err := r.db()
	if err != nil {
		return models.DeliveryChecklist{}, err
	}
	return scanChecklist(q.QueryRowContext(ctx, checklistSelect+` WHERE id = ? AND `+intdb.Live("")+` LIMIT 1`, id))
}

func (r ChecklistRepository) Insert(ctx context.Context, c models.DeliveryChecklist) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO delivery_checklists (document_number, document_date, status, notes, created_at, updated_at)
		VALUES (?,?,?,?,NOW(),NOW())
	`, c.DocumentNumber, c.DocumentDate, c.Status, intdb.NullIfEmpty(c.Notes))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ChecklistRepository) Update(ctx context.Context, c models.DeliveryChecklist) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE delivery_checklists SET document_number = ?, document_date = ?, notes = ?, updated_at = NOW()
		WHERE id = ? AND `+intdb.Live("")+`
	`, c.DocumentNumber, c.DocumentDate, intdb.NullIfEmpty(c.Notes), c.ID))
}

// MarkCompleted flips a pending checklist; already completed rows are not touched.
func (r ChecklistRepository) MarkCompleted(ctx context.Context, id int64, at time.Time) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `
		UPDATE delivery_checklists SET status = 'completed', completed_at = ?, updated_at = NOW()
		WHERE id = ? AND status = 'pending' AND `+intdb.Live("")+`
	`, at, id))
}

func (r ChecklistRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	q, err := r.db()
	if err != nil {
		return 0, err
	}
	return affected(q.ExecContext(ctx, `UPDATE delivery_checklists SET deleted_at = NOW(), updated_at = NOW() WHERE id = ? AND `+intdb.Live(""), id))
}
