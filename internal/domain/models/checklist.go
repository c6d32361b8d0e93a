package models

import "time"

type DeliveryChecklist struct {
	ID             int64      `json:"id"`
	DocumentNumber string     `json:"document_number"`
	DocumentDate   string     `json:"document_date"`
	Status         string     `json:"status"`
	CompletedAt    *time.Time `json:"completed_at"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
