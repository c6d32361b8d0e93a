package domain

import "strings"

type TripStatus string

const (
	TripDraft     TripStatus = "draft"
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

type SettlementStatus string

const (
	Unsettled SettlementStatus = "unsettled"
	Settled   SettlementStatus = "settled"
)

type ChecklistStatus string

const (
	ChecklistPending   ChecklistStatus = "pending"
	ChecklistCompleted ChecklistStatus = "completed"
)

var tripTransitions = map[TripStatus][]TripStatus{
	TripDraft:     {TripOngoing, TripCancelled},
	TripOngoing:   {TripCompleted, TripCancelled},
	TripCompleted: nil,
	TripCancelled: nil,
}

// TripStatuses lists every status in lifecycle order.
func TripStatuses() []TripStatus {
	return []TripStatus{TripDraft, TripOngoing, TripCompleted, TripCancelled}
}

// ParseTripStatus accepts any casing and surrounding whitespace.
func ParseTripStatus(raw string) (TripStatus, bool) {
	s := TripStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := tripTransitions[s]; !ok {
		return "", false
	}
	return s, true
}

// CanTransition reports whether to is reachable from from in one step.
// A status is never a successor of itself.
func CanTransition(from, to TripStatus) bool {
	for _, next := range tripTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s TripStatus) IsTerminal() bool {
	return s == TripCompleted || s == TripCancelled
}

// Editable is true only for drafts.
func (s TripStatus) Editable() bool {
	return s == TripDraft
}

// Transition validates from -> to against the table.
func Transition(from, to TripStatus) error {
	if !CanTransition(from, to) {
		return InvalidTransitionError{Resource: "trip", From: string(from), To: string(to)}
	}
	return nil
}

func ParseChecklistStatus(raw string) (ChecklistStatus, bool) {
	switch s := ChecklistStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case ChecklistPending, ChecklistCompleted:
		return s, true
	}
	return "", false
}
