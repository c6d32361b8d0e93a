package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Vehicle struct {
	ID           int64               `json:"id"`
	PlateNumber  string              `json:"plate_number"`
	Type         string              `json:"type"`
	Brand        string              `json:"brand,omitempty"`
	Year         *int                `json:"year,omitempty"`
	CapacityTons decimal.NullDecimal `json:"capacity_tons"`
	IsActive     bool                `json:"is_active"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Location struct {
	ID        int64     `json:"id"`
	CityName  string    `json:"city_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ExpenseCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
