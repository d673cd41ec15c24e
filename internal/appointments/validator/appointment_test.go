package validator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pitstop/internal/scheduling"
	"pitstop/pkg/logger"
	"pitstop/pkg/model"
)

func newTestValidator() *AppointmentValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Service: "test",
	})
	v := NewAppointmentValidator(scheduling.DefaultRules(), log)
	v.Now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return v
}

func validAppointment() *model.Appointment {
	return &model.Appointment{
		Date:        "2026-09-15",
		StartTime:   "09:00",
		EndTime:     "10:00",
		ServiceType: "oil change",
	}
}

func TestValidate_ValidAppointment(t *testing.T) {
	v := newTestValidator()
	if err := v.Validate(validAppointment()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	v := newTestValidator()

	// Missing service type and inverted times violate two independent rules.
	appt := validAppointment()
	appt.ServiceType = ""
	appt.StartTime = "10:00"
	appt.EndTime = "09:00"

	err := v.Validate(appt)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("expected 2 errors in one call, got %d: %v", len(verrs), verrs)
	}

	fields := map[string]bool{}
	for _, e := range verrs {
		fields[e.Field] = true
	}
	if !fields["ServiceType"] || !fields["EndTime"] {
		t.Errorf("expected ServiceType and EndTime violations, got %v", verrs)
	}
}

func TestValidate_TimeRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.Appointment)
		wantField string
		wantPart  string
	}{
		{
			name:      "equal start and end",
			mutate:    func(a *model.Appointment) { a.StartTime = "09:00"; a.EndTime = "09:00" },
			wantField: "EndTime",
			wantPart:  "after start_time",
		},
		{
			name:      "too short",
			mutate:    func(a *model.Appointment) { a.StartTime = "09:00"; a.EndTime = "09:10" },
			wantField: "EndTime",
			wantPart:  "duration",
		},
		{
			name:      "before opening",
			mutate:    func(a *model.Appointment) { a.StartTime = "06:00"; a.EndTime = "08:00" },
			wantField: "StartTime",
			wantPart:  "opening",
		},
		{
			name:      "after closing",
			mutate:    func(a *model.Appointment) { a.StartTime = "18:00"; a.EndTime = "20:00" },
			wantField: "EndTime",
			wantPart:  "closing",
		},
		{
			name:      "past date",
			mutate:    func(a *model.Appointment) { a.Date = "2026-08-31" },
			wantField: "Date",
			wantPart:  "past",
		},
		{
			name:      "bad time format",
			mutate:    func(a *model.Appointment) { a.StartTime = "9am" },
			wantField: "StartTime",
			wantPart:  "format",
		},
		{
			name:      "bad priority",
			mutate:    func(a *model.Appointment) { a.Priority = "critical" },
			wantField: "Priority",
			wantPart:  "one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator()
			appt := validAppointment()
			tt.mutate(appt)

			err := v.Validate(appt)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}

			found := false
			for _, e := range verrs {
				if e.Field == tt.wantField && strings.Contains(e.Message, tt.wantPart) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s error containing %q, got %v", tt.wantField, tt.wantPart, verrs)
			}
		})
	}
}

func TestValidate_TodayIsNotPast(t *testing.T) {
	v := newTestValidator()
	appt := validAppointment()
	appt.Date = "2026-09-01"

	if err := v.Validate(appt); err != nil {
		t.Errorf("same-day appointment must be valid, got: %v", err)
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateUpdate(&model.AppointmentUpdate{StartTime: "09:00", EndTime: "10:00"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := v.ValidateUpdate(&model.AppointmentUpdate{}); err != nil {
		t.Errorf("empty update must be valid, got: %v", err)
	}

	if err := v.ValidateUpdate(&model.AppointmentUpdate{StartTime: "10:00", EndTime: "09:00"}); err == nil {
		t.Error("expected error for inverted times")
	}

	if err := v.ValidateUpdate(&model.AppointmentUpdate{Date: "not-a-date"}); err == nil {
		t.Error("expected error for malformed date")
	}
}
