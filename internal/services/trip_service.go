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

type TripInput struct {
	TripDate      string           `json:"trip_date"`
	VehicleID     int64            `json:"vehicle_id"`
	CustomerID    *int64           `json:"customer_id"`
	OriginID      *int64           `json:"origin_id"`
	DestinationID *int64           `json:"destination_id"`
	Allowance     *decimal.Decimal `json:"allowance"`
	TripNotes     string           `json:"trip_notes"`
}

type SettleInput struct {
	ReturnedAmount *decimal.Decimal `json:"returned_amount"`
	ReturnedDate   string           `json:"returned_date"`
	Notes          string           `json:"notes"`
}

// TripService owns trip status transitions and the draft-only edit rule.
type TripService struct {
	DB        *sql.DB
	OwnerRole string
	RequestID string
}

func (s TripService) ownerRole() string {
	if r := strings.TrimSpace(s.OwnerRole); r != "" {
		return r
	}
	return "owner"
}

// buildTrip validates input and resolves references against live rows.
func (s TripService) buildTrip(ctx context.Context, q intdb.DBTX, in TripInput) (models.Trip, error) {
	fe := domain.FieldErrors{}
	t := models.Trip{
		TripDate:  parseRequiredDate(fe, "trip_date", in.TripDate, "tanggal trip"),
		TripNotes: strings.TrimSpace(in.TripNotes),
		Allowance: requireNonNegative(fe, "allowance", in.Allowance, "uang sangu"),
	}

	if in.VehicleID <= 0 {
		fe.Add("vehicle_id", "kendaraan wajib dipilih")
	} else if err := requireLive(ctx, q, fe, "vehicle_id", "vehicles", in.VehicleID, "kendaraan tidak ditemukan"); err != nil {
		return t, err
	}
	t.VehicleID = in.VehicleID

	if id, ok := optionalID(in.CustomerID); ok {
		if err := requireLive(ctx, q, fe, "customer_id", "customers", id, "pelanggan tidak ditemukan"); err != nil {
			return t, err
		}
		t.CustomerID = &id
	}
	if id, ok := optionalID(in.OriginID); ok {
		if err := requireLive(ctx, q, fe, "origin_id", "locations", id, "lokasi asal tidak ditemukan"); err != nil {
			return t, err
		}
		t.OriginID = &id
	}
	if id, ok := optionalID(in.DestinationID); ok {
		if err := requireLive(ctx, q, fe, "destination_id", "locations", id, "lokasi tujuan tidak ditemukan"); err != nil {
			return t, err
		}
		t.DestinationID = &id
	}

	return t, fe.Err()
}

func (s TripService) CreateTrip(ctx context.Context, in TripInput) (models.Trip, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.Trip{}, err
	}

	t, err := s.buildTrip(ctx, db, in)
	if err != nil {
		return t, err
	}
	t.Status = string(domain.TripDraft)
	t.SettlementStatus = string(domain.Unsettled)
	t.TotalExpense = decimal.Zero
	t.RemainingBalance = domain.RemainingBalance(t.Allowance, decimal.Zero)

	id, err := repositories.TripRepository{DB: db}.Insert(ctx, t)
	if err != nil {
		utils.LogError(s.RequestID, "trip", "create", err)
		return t, err
	}
	t.ID = id
	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("id=%d allowance=%s", id, t.Allowance))
	return t, nil
}

func (s TripService) ListTrips(ctx context.Context, f repositories.TripFilter) ([]models.Trip, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return nil, err
	}
	return repositories.TripRepository{DB: db}.List(ctx, f)
}

func (s TripService) GetTrip(ctx context.Context, id int64) (models.Trip, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.Trip{}, err
	}
	t, err := repositories.TripRepository{DB: db}.GetByID(ctx, id)
	return t, notFound(err, "trip")
}

// RequestTransition moves a trip one step along the lifecycle table.
func (s TripService) RequestTransition(ctx context.Context, id int64, target string) error {
	to, ok := domain.ParseTripStatus(target)
	if !ok {
		return domain.NewValidation("status", "status tidak valid")
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}
	repo := repositories.TripRepository{DB: db}

	st, err := repo.GetState(ctx, id)
	if err != nil {
		return notFound(err, "trip")
	}
	from := domain.TripStatus(st.Status)
	if err := domain.Transition(from, to); err != nil {
		return err
	}

	n, err := repo.UpdateStatus(ctx, id, string(from), string(to))
	if err != nil {
		return err
	}
	if n == 0 {
		// status moved between read and write
		return domain.InvalidTransitionError{Resource: "trip", From: string(from), To: string(to)}
	}
	utils.LogEvent(s.RequestID, "trip", "transition", fmt.Sprintf("id=%d %s->%s", id, from, to))
	return nil
}

// UpdateTripFields edits a draft trip. A vehicle change is propagated to the
// trip's live expenses in the same transaction.
func (s TripService) UpdateTripFields(ctx context.Context, id int64, in TripInput) error {
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}

	return intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		trips := repositories.TripRepository{DB: tx}

		st, err := trips.GetState(ctx, id)
		if err != nil {
			return notFound(err, "trip")
		}
		if !domain.TripStatus(st.Status).Editable() {
			return domain.ImmutableStateError{Resource: "trip", Status: st.Status}
		}

		t, err := s.buildTrip(ctx, tx, in)
		if err != nil {
			return err
		}
		t.ID = id
		t.RemainingBalance = domain.RemainingBalance(t.Allowance, st.TotalExpense)

		n, err := trips.UpdateFields(ctx, t)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ImmutableStateError{Resource: "trip", Status: st.Status}
		}

		if t.VehicleID != st.VehicleID {
			moved, err := repositories.ExpenseRepository{DB: tx}.SyncVehicleForTrip(ctx, id, t.VehicleID)
			if err != nil {
				return err
			}
			utils.LogEvent(s.RequestID, "trip", "sync_vehicle", fmt.Sprintf("id=%d vehicle=%d expenses=%d", id, t.VehicleID, moved))
		}
		utils.LogEvent(s.RequestID, "trip", "update", fmt.Sprintf("id=%d remaining=%s", id, t.RemainingBalance))
		return nil
	})
}

// SettleAllowance records returned cash once per trip.
func (s TripService) SettleAllowance(ctx context.Context, id int64, in SettleInput) (models.Settlement, error) {
	fe := domain.FieldErrors{}
	amount := requireNonNegative(fe, "returned_amount", in.ReturnedAmount, "uang kembali")
	date := parseRequiredDate(fe, "returned_date", in.ReturnedDate, "tanggal pengembalian")
	if err := fe.Err(); err != nil {
		return models.Settlement{}, err
	}
	returnedDate, _ := utils.ParseDate(date)

	db, err := pickDB(s.DB)
	if err != nil {
		return models.Settlement{}, err
	}
	repo := repositories.TripRepository{DB: db}

	st, err := repo.GetState(ctx, id)
	if err != nil {
		return models.Settlement{}, notFound(err, "trip")
	}
	if domain.SettlementStatus(st.SettlementStatus) == domain.Settled {
		return models.Settlement{}, domain.AlreadySettledError{Resource: "trip", ID: id}
	}

	settlement := models.Settlement{
		ReturnedAmount: amount,
		ReturnedDate:   returnedDate,
		Difference:     domain.SettlementDifference(amount, st.RemainingBalance),
		Notes:          strings.TrimSpace(in.Notes),
	}
	n, err := repo.UpdateSettlement(ctx, id, settlement)
	if err != nil {
		return models.Settlement{}, err
	}
	if n == 0 {
		return models.Settlement{}, domain.AlreadySettledError{Resource: "trip", ID: id}
	}
	utils.LogEvent(s.RequestID, "trip", "settle", fmt.Sprintf("id=%d returned=%s diff=%s", id, amount, settlement.Difference))
	return settlement, nil
}

// OverrideStatus force-sets any status. Only the owner role may call it.
func (s TripService) OverrideStatus(ctx context.Context, p domain.Principal, id int64, target string) error {
	if !p.HasRole(s.ownerRole()) {
		utils.LogEvent(s.RequestID, "trip", "override_denied", fmt.Sprintf("id=%d user=%d role=%s", id, p.UserID, p.Role))
		return domain.UnauthorizedError{Action: "override trip status"}
	}
	to, ok := domain.ParseTripStatus(target)
	if !ok {
		return domain.NewValidation("status", "status tidak valid")
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}
	repo := repositories.TripRepository{DB: db}

	st, err := repo.GetState(ctx, id)
	if err != nil {
		return notFound(err, "trip")
	}
	n, err := repo.ForceStatus(ctx, id, string(to))
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	utils.LogEvent(s.RequestID, "trip", "override", fmt.Sprintf("id=%d %s->%s by user=%d", id, st.Status, to, p.UserID))
	return nil
}

func (s TripService) DeleteTrip(ctx context.Context, id int64) error {
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}
	n, err := repositories.TripRepository{DB: db}.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	utils.LogEvent(s.RequestID, "trip", "delete", fmt.Sprintf("id=%d", id))
	return nil
}
