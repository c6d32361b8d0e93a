package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is a single dispatch of one vehicle with a cash allowance.
type Trip struct {
	ID            int64  `json:"id"`
	TripDate      string `json:"trip_date"`
	VehicleID     int64  `json:"vehicle_id"`
	CustomerID    *int64 `json:"customer_id"`
	OriginID      *int64 `json:"origin_id"`
	DestinationID *int64 `json:"destination_id"`

	Allowance        decimal.Decimal `json:"allowance"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`

	Status           string              `json:"status"`
	SettlementStatus string              `json:"settlement_status"`
	ReturnedAmount   decimal.NullDecimal `json:"returned_amount"`
	ReturnedDate     string              `json:"returned_date,omitempty"`
	SettlementDiff   decimal.NullDecimal `json:"settlement_difference"`

	TripNotes       string `json:"trip_notes,omitempty"`
	SettlementNotes string `json:"settlement_notes,omitempty"`

	// joined for display
	PlateNumber     string `json:"plate_number,omitempty"`
	VehicleType     string `json:"vehicle_type,omitempty"`
	CustomerName    string `json:"customer_name,omitempty"`
	OriginName      string `json:"origin_name,omitempty"`
	DestinationName string `json:"destination_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TripState is the subset of a trip the lifecycle and reconciliation rules read.
type TripState struct {
	ID               int64
	VehicleID        int64
	Allowance        decimal.Decimal
	TotalExpense     decimal.Decimal
	RemainingBalance decimal.Decimal
	Status           string
	SettlementStatus string
}

type Settlement struct {
	ReturnedAmount decimal.Decimal
	ReturnedDate   time.Time
	Difference     decimal.Decimal
	Notes          string
}
