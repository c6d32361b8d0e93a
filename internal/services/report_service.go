package services

import (
	"context"
	"database/sql"
	"strings"

	"armada/internal/domain"
	"armada/internal/domain/models"
	"armada/internal/repositories"
	"armada/internal/utils"

	"github.com/shopspring/decimal"
)

type ReportService struct {
	DB        *sql.DB
	RequestID string
}

type VehicleCostReport struct {
	StartDate   string                      `json:"start_date"`
	EndDate     string                      `json:"end_date"`
	VehicleID   int64                       `json:"vehicle_id,omitempty"`
	ShowGeneral bool                        `json:"show_general"`
	PerVehicle  []repositories.VehicleCost  `json:"per_vehicle"`
	PerCategory []repositories.CategoryCost `json:"per_category"`
	PerKind     map[string]decimal.Decimal  `json:"per_kind"`
	Detail      []models.Expense            `json:"detail"`
	GrandTotal  decimal.Decimal             `json:"grand_total"`
}

type AllowanceReportFilter struct {
	StartDate string
	EndDate   string
	Status    string
	VehicleID int64
}

type AllowanceSummary struct {
	TotalTrips     int             `json:"total_trips"`
	TotalAllowance decimal.Decimal `json:"total_allowance"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	ByStatus       map[string]int  `json:"by_status"`
}

type VehicleAllowance struct {
	VehicleID      int64           `json:"vehicle_id"`
	PlateNumber    string          `json:"plate_number"`
	Type           string          `json:"type"`
	TotalTrips     int             `json:"total_trips"`
	TotalAllowance decimal.Decimal `json:"total_allowance"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
}

type AllowanceReport struct {
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	Status     string             `json:"status,omitempty"`
	VehicleID  int64              `json:"vehicle_id,omitempty"`
	Trips      []models.Trip      `json:"trips"`
	Summary    AllowanceSummary   `json:"summary"`
	PerVehicle []VehicleAllowance `json:"per_vehicle"`
}

// reportRange fills blank bounds with the current month to date.
func reportRange(start, end string) (string, string, error) {
	fe := domain.FieldErrors{}
	from, to := utils.MonthToDate()
	out := [2]string{utils.FormatDate(from), utils.FormatDate(to)}
	for i, pair := range [][2]string{{"start_date", start}, {"end_date", end}} {
		raw := strings.TrimSpace(pair[1])
		if raw == "" {
			continue
		}
		t, err := utils.ParseDate(raw)
		if err != nil {
			fe.Add(pair[0], "format tanggal harus YYYY-MM-DD")
			continue
		}
		out[i] = utils.FormatDate(t)
	}
	if err := fe.Err(); err != nil {
		return "", "", err
	}
	if out[0] > out[1] {
		return "", "", domain.NewValidation("end_date", "tanggal akhir tidak boleh sebelum tanggal awal")
	}
	return out[0], out[1], nil
}

func (s ReportService) VehicleCosts(ctx context.Context, f repositories.CostFilter) (VehicleCostReport, error) {
	start, end, err := reportRange(f.StartDate, f.EndDate)
	if err != nil {
		return VehicleCostReport{}, err
	}
	f.StartDate, f.EndDate = start, end

	db, err := pickDB(s.DB)
	if err != nil {
		return VehicleCostReport{}, err
	}
	repo := repositories.ReportRepository{DB: db}

	rep := VehicleCostReport{
		StartDate:   start,
		EndDate:     end,
		VehicleID:   f.VehicleID,
		ShowGeneral: f.ShowGeneral,
		PerKind:     map[string]decimal.Decimal{},
		GrandTotal:  decimal.Zero,
	}
	if rep.PerVehicle, err = repo.CostPerVehicle(ctx, f); err != nil {
		return rep, err
	}
	if rep.PerCategory, err = repo.CostPerCategory(ctx, f); err != nil {
		return rep, err
	}
	kinds, err := repo.CostPerKind(ctx, f)
	if err != nil {
		return rep, err
	}
	for _, k := range kinds {
		rep.PerKind[k.Kind] = k.Total
	}
	if rep.Detail, err = repo.CostDetail(ctx, f); err != nil {
		return rep, err
	}
	for _, e := range rep.Detail {
		rep.GrandTotal = rep.GrandTotal.Add(e.Amount)
	}

	utils.LogEvent(s.RequestID, "report", "vehicle_costs", start+".."+end)
	return rep, nil
}

func (s ReportService) Allowance(ctx context.Context, f AllowanceReportFilter) (AllowanceReport, error) {
	start, end, err := reportRange(f.StartDate, f.EndDate)
	if err != nil {
		return AllowanceReport{}, err
	}
	status := ""
	if strings.TrimSpace(f.Status) != "" {
		st, ok := domain.ParseTripStatus(f.Status)
		if !ok {
			return AllowanceReport{}, domain.NewValidation("status", "status tidak valid")
		}
		status = string(st)
	}

	db, err := pickDB(s.DB)
	if err != nil {
		return AllowanceReport{}, err
	}
	trips, err := repositories.TripRepository{DB: db}.List(ctx, repositories.TripFilter{
		StartDate: start,
		EndDate:   end,
		Status:    status,
		VehicleID: f.VehicleID,
	})
	if err != nil {
		return AllowanceReport{}, err
	}

	summary, perVehicle := summarizeAllowance(trips)
	utils.LogEvent(s.RequestID, "report", "allowance", start+".."+end)
	return AllowanceReport{
		StartDate:  start,
		EndDate:    end,
		Status:     status,
		VehicleID:  f.VehicleID,
		Trips:      trips,
		Summary:    summary,
		PerVehicle: perVehicle,
	}, nil
}

// summarizeAllowance keeps per-vehicle rows in first-seen order of trips.
func summarizeAllowance(trips []models.Trip) (AllowanceSummary, []VehicleAllowance) {
	sum := AllowanceSummary{
		TotalAllowance: decimal.Zero,
		TotalExpense:   decimal.Zero,
		TotalRemaining: decimal.Zero,
		ByStatus:       map[string]int{},
	}
	for _, st := range domain.TripStatuses() {
		sum.ByStatus[string(st)] = 0
	}

	index := map[int64]int{}
	per := []VehicleAllowance{}
	for _, t := range trips {
		sum.TotalTrips++
		sum.TotalAllowance = sum.TotalAllowance.Add(t.Allowance)
		sum.TotalExpense = sum.TotalExpense.Add(t.TotalExpense)
		sum.TotalRemaining = sum.TotalRemaining.Add(t.RemainingBalance)
		sum.ByStatus[t.Status]++

		i, ok := index[t.VehicleID]
		if !ok {
			i = len(per)
			index[t.VehicleID] = i
			per = append(per, VehicleAllowance{
				VehicleID:      t.VehicleID,
				PlateNumber:    t.PlateNumber,
				Type:           t.VehicleType,
				TotalAllowance: decimal.Zero,
				TotalExpense:   decimal.Zero,
			})
		}
		per[i].TotalTrips++
		per[i].TotalAllowance = per[i].TotalAllowance.Add(t.Allowance)
		per[i].TotalExpense = per[i].TotalExpense.Add(t.TotalExpense)
	}
	return sum, per
}
