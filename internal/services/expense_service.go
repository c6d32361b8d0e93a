package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "armada/internal/db"
	"armada/internal/domain"
	"armada/internal/domain/models"
	"armada/internal/repositories"
	"armada/internal/utils"

	"github.com/shopspring/decimal"
)

type ExpenseInput struct {
	ExpenseDate string           `json:"expense_date"`
	TripID      *int64           `json:"trip_id"`
	VehicleID   *int64           `json:"vehicle_id"`
	CategoryID  int64            `json:"category_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Notes       string           `json:"notes"`
}

// ExpenseService writes ledger entries and keeps the owning trip's totals in step.
type ExpenseService struct {
	DB        *sql.DB
	Kinds     domain.KindSet
	RequestID string
}

// resolve applies the category-kind requirement table and returns the row to write.
func (s ExpenseService) resolve(ctx context.Context, q intdb.DBTX, in ExpenseInput) (models.Expense, error) {
	fe := domain.FieldErrors{}
	e := models.Expense{
		ExpenseDate: parseRequiredDate(fe, "expense_date", in.ExpenseDate, "tanggal"),
		Amount:      requireNonNegative(fe, "amount", in.Amount, "jumlah"),
		Notes:       strings.TrimSpace(in.Notes),
		CategoryID:  in.CategoryID,
	}

	var req domain.Requirement
	if in.CategoryID <= 0 {
		fe.Add("category_id", "kategori wajib dipilih")
	} else {
		raw, err := repositories.CategoryRepository{DB: q}.KindOf(ctx, in.CategoryID)
		switch {
		case intdb.IsNoRows(err):
			fe.Add("category_id", "kategori tidak ditemukan")
		case err != nil:
			return e, err
		default:
			kind, ok := s.Kinds.ParseKind(raw)
			if !ok {
				fe.Add("category_id", "tipe kategori tidak didukung")
			} else {
				req, _ = domain.RequirementFor(kind)
				e.CategoryKind = string(kind)
			}
		}
	}

	tripID, hasTrip := optionalID(in.TripID)
	vehicleID, hasVehicle := optionalID(in.VehicleID)

	if req.TripRequired && !hasTrip {
		fe.Add("trip_id", "trip wajib dipilih untuk kategori ini")
	}
	if req.VehicleRequired && !hasVehicle {
		fe.Add("vehicle_id", "kendaraan wajib dipilih untuk kategori maintenance")
	}

	if hasTrip {
		st, err := repositories.TripRepository{DB: q}.GetState(ctx, tripID)
		switch {
		case intdb.IsNoRows(err):
			fe.Add("trip_id", "trip tidak ditemukan")
		case err != nil:
			return e, err
		default:
			e.TripID = &tripID
			if hasVehicle && vehicleID != st.VehicleID {
				fe.Add("vehicle_id", "kendaraan harus sama dengan kendaraan trip")
			}
			// vehicle always follows the trip
			v := st.VehicleID
			e.VehicleID = &v
		}
	} else if hasVehicle {
		if err := requireLive(ctx, q, fe, "vehicle_id", "vehicles", vehicleID, "kendaraan tidak ditemukan"); err != nil {
			return e, err
		}
		e.VehicleID = &vehicleID
	}

	return e, fe.Err()
}

func (s ExpenseService) List(ctx context.Context, f repositories.ExpenseFilter) ([]models.Expense, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return nil, err
	}
	return repositories.ExpenseRepository{DB: db}.List(ctx, f)
}

func (s ExpenseService) Get(ctx context.Context, id int64) (models.Expense, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.Expense{}, err
	}
	e, err := repositories.ExpenseRepository{DB: db}.GetByID(ctx, id)
	return e, notFound(err, "expense")
}

func (s ExpenseService) Create(ctx context.Context, in ExpenseInput) (models.Expense, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.Expense{}, err
	}

	var out models.Expense
	err = intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		e, err := s.resolve(ctx, tx, in)
		if err != nil {
			return err
		}
		id, err := repositories.ExpenseRepository{DB: tx}.Insert(ctx, e)
		if err != nil {
			return err
		}
		e.ID = id
		if e.TripID != nil {
			if err := s.Reconcile(ctx, tx, *e.TripID); err != nil {
				return err
			}
		}
		out = e
		return nil
	})
	if err != nil {
		if !domain.IsValidation(err) {
			utils.LogError(s.RequestID, "expense", "create", err)
		}
		return models.Expense{}, err
	}
	utils.LogEvent(s.RequestID, "expense", "create", fmt.Sprintf("id=%d amount=%s", out.ID, out.Amount))
	return out, nil
}

// Update rewrites an expense and reconciles the previous and the new trip, each once.
func (s ExpenseService) Update(ctx context.Context, id int64, in ExpenseInput) (models.Expense, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.Expense{}, err
	}

	var out models.Expense
	err = intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		expenses := repositories.ExpenseRepository{DB: tx}

		old, err := expenses.GetRef(ctx, id)
		if err != nil {
			return notFound(err, "expense")
		}
		e, err := s.resolve(ctx, tx, in)
		if err != nil {
			return err
		}
		e.ID = id
		n, err := expenses.Update(ctx, e)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "expense"}
		}

		for _, tripID := range affectedTrips(old.TripID, e.TripID) {
			if err := s.Reconcile(ctx, tx, tripID); err != nil {
				return err
			}
		}
		out = e
		return nil
	})
	if err != nil {
		return models.Expense{}, err
	}
	utils.LogEvent(s.RequestID, "expense", "update", fmt.Sprintf("id=%d amount=%s", id, out.Amount))
	return out, nil
}

func (s ExpenseService) Delete(ctx context.Context, id int64) error {
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}

	return intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		expenses := repositories.ExpenseRepository{DB: tx}

		old, err := expenses.GetRef(ctx, id)
		if err != nil {
			return notFound(err, "expense")
		}
		n, err := expenses.SoftDelete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "expense"}
		}
		if old.TripID != nil {
			if err := s.Reconcile(ctx, tx, *old.TripID); err != nil {
				return err
			}
		}
		utils.LogEvent(s.RequestID, "expense", "delete", fmt.Sprintf("id=%d", id))
		return nil
	})
}

// Reconcile recomputes total_expense and remaining_balance from the live expenses
// of a trip. A trip that no longer exists is skipped without error.
func (s ExpenseService) Reconcile(ctx context.Context, q intdb.DBTX, tripID int64) error {
	total, err := repositories.ExpenseRepository{DB: q}.SumByTrip(ctx, tripID)
	if err != nil {
		return err
	}

	trips := repositories.TripRepository{DB: q}
	st, err := trips.GetState(ctx, tripID)
	if intdb.IsNoRows(err) {
		utils.LogEvent(s.RequestID, "expense", "reconcile_skip", fmt.Sprintf("trip=%d not found", tripID))
		return nil
	}
	if err != nil {
		return err
	}

	remaining := domain.RemainingBalance(st.Allowance, total)
	if err := trips.UpdateFinancials(ctx, tripID, total, remaining); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "expense", "reconcile", fmt.Sprintf("trip=%d total=%s remaining=%s", tripID, total, remaining))
	return nil
}

// ReconcileAll recomputes every live trip, each in its own transaction.
func (s ExpenseService) ReconcileAll(ctx context.Context) (int, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return 0, err
	}
	ids, err := repositories.TripRepository{DB: db}.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	done := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		err := intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
			return s.Reconcile(ctx, tx, id)
		})
		if err != nil {
			return done, fmt.Errorf("reconcile trip %d: %w", id, err)
		}
		done++
	}
	return done, nil
}

// affectedTrips returns the distinct non-nil trip ids, old first.
func affectedTrips(old, current *int64) []int64 {
	out := []int64{}
	if old != nil {
		out = append(out, *old)
	}
	if current != nil && (old == nil || *current != *old) {
		out = append(out, *current)
	}
	return out
}
