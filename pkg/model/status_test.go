package model

import "testing"

func TestIsTerminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusCancelled, StatusNoShow}
	active := []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusPaused, StatusLate}

	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	allowed := []struct {
		from Status
		to   Status
	}{
		{StatusScheduled, StatusConfirmed},
		{StatusScheduled, StatusCancelled},
		{StatusScheduled, StatusNoShow},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusLate},
		{StatusInProgress, StatusPaused},
		{StatusInProgress, StatusCompleted},
		{StatusPaused, StatusInProgress},
		{StatusLate, StatusInProgress},
		{StatusLate, StatusNoShow},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransitionTo(tt.to) {
			t.Errorf("%s -> %s must be allowed", tt.from, tt.to)
		}
	}

	denied := []struct {
		from Status
		to   Status
	}{
		{StatusScheduled, StatusCompleted},
		{StatusScheduled, StatusPaused},
		{StatusConfirmed, StatusCompleted},
		{StatusPaused, StatusNoShow},
		{StatusCompleted, StatusInProgress},
		{StatusCancelled, StatusScheduled},
		{StatusNoShow, StatusConfirmed},
	}
	for _, tt := range denied {
		if tt.from.CanTransitionTo(tt.to) {
			t.Errorf("%s -> %s must be denied", tt.from, tt.to)
		}
	}

	// Terminal statuses accept no transition at all.
	for _, from := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		for _, to := range []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusPaused, StatusLate, StatusCompleted, StatusCancelled, StatusNoShow} {
			if from.CanTransitionTo(to) {
				t.Errorf("terminal %s -> %s must be denied", from, to)
			}
		}
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(StatusScheduled) || !ValidStatus(StatusNoShow) {
		t.Error("known statuses must be valid")
	}
	if ValidStatus("finished") || ValidStatus("") {
		t.Error("unknown statuses must be invalid")
	}
}

func TestValidPriority(t *testing.T) {
	if !ValidPriority(PriorityUrgent) || !ValidPriority(PriorityLow) {
		t.Error("known priorities must be valid")
	}
	if ValidPriority("critical") || ValidPriority("") {
		t.Error("unknown priorities must be invalid")
	}
}
