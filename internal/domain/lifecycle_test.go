package domain

import "testing"

func TestTransitionTable(t *testing.T) {
	allowed := map[[2]TripStatus]bool{
		{TripDraft, TripOngoing}:     true,
		{TripDraft, TripCancelled}:   true,
		{TripOngoing, TripCompleted}: true,
		{TripOngoing, TripCancelled}: true,
	}
	for _, from := range TripStatuses() {
		for _, to := range TripStatuses() {
			want := allowed[[2]TripStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
			err := Transition(from, to)
			if want && err != nil {
				t.Errorf("Transition(%s, %s) returned %v", from, to, err)
			}
			if !want && !IsInvalidTransition(err) {
				t.Errorf("Transition(%s, %s) = %v, want InvalidTransitionError", from, to, err)
			}
		}
	}
}

func TestTerminalStatusesHaveNoSuccessor(t *testing.T) {
	for _, s := range TripStatuses() {
		if !s.IsTerminal() {
			continue
		}
		for _, to := range TripStatuses() {
			if CanTransition(s, to) {
				t.Fatalf("terminal %s can reach %s", s, to)
			}
		}
	}
}

func TestOnlyDraftIsEditable(t *testing.T) {
	for _, s := range TripStatuses() {
		if got := s.Editable(); got != (s == TripDraft) {
			t.Fatalf("%s.Editable() = %v", s, got)
		}
	}
}

func TestParseTripStatus(t *testing.T) {
	if s, ok := ParseTripStatus("  OnGoing "); !ok || s != TripOngoing {
		t.Fatalf("ParseTripStatus = %q, %v", s, ok)
	}
	for _, raw := range []string{"", "done", "berjalan"} {
		if _, ok := ParseTripStatus(raw); ok {
			t.Fatalf("ParseTripStatus(%q) accepted", raw)
		}
	}
	if _, ok := ParseChecklistStatus("Completed"); !ok {
		t.Fatalf("checklist status rejected")
	}
}
