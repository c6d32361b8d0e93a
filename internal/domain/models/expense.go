package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          int64           `json:"id"`
	ExpenseDate string          `json:"expense_date"`
	TripID      *int64          `json:"trip_id"`
	VehicleID   *int64          `json:"vehicle_id"`
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes,omitempty"`

	PlateNumber  string `json:"plate_number,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	CategoryKind string `json:"category_kind,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
