package service

import (
	"context"
	"errors"
	"testing"

	"pitstop/internal/appointments/repository"
	"pitstop/internal/scheduling"
	"pitstop/pkg/config"
	apperrors "pitstop/pkg/errors"
	"pitstop/pkg/logger"
	"pitstop/pkg/model"
)

// mockAppointmentRepository backs failure-path tests.
type mockAppointmentRepository struct {
	listByDateFunc  func(ctx context.Context, date string) ([]*model.Appointment, error)
	listByRangeFunc func(ctx context.Context, startDate, endDate string) ([]*model.Appointment, error)
}

func (m *mockAppointmentRepository) Insert(context.Context, *model.Appointment) error {
	return nil
}

func (m *mockAppointmentRepository) Update(context.Context, string, *model.Appointment) error {
	return nil
}

func (m *mockAppointmentRepository) FindByID(context.Context, string) (*model.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) ListByDate(ctx context.Context, date string) ([]*model.Appointment, error) {
	if m.listByDateFunc != nil {
		return m.listByDateFunc(ctx, date)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) ListByRange(ctx context.Context, startDate, endDate string) ([]*model.Appointment, error) {
	if m.listByRangeFunc != nil {
		return m.listByRangeFunc(ctx, startDate, endDate)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) ExecuteTransaction(ctx context.Context, fn repository.TransactionFunc) error {
	return fn(ctx)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}
}

func seedRepository(t *testing.T, appts ...*model.Appointment) repository.AppointmentRepository {
	t.Helper()
	repo := repository.NewMemoryAppointmentRepository()
	for _, appt := range appts {
		if err := repo.Insert(context.Background(), appt); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}
	return repo
}

func appt(id, date, start, end string, duration int, status model.Status, priority model.Priority) *model.Appointment {
	return &model.Appointment{
		ID:              id,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		ServiceType:     "brake service",
		Status:          status,
		Priority:        priority,
	}
}

func TestCapacityForDate(t *testing.T) {
	repo := seedRepository(t,
		appt("a1", "2026-09-15", "09:00", "10:00", 60, model.StatusScheduled, model.PriorityNormal),
		appt("a2", "2026-09-15", "09:00", "10:00", 60, model.StatusConfirmed, model.PriorityNormal),
		appt("a3", "2026-09-15", "09:30", "10:30", 60, model.StatusScheduled, model.PriorityNormal),
		// Terminal appointments never count.
		appt("a4", "2026-09-15", "09:00", "12:00", 180, model.StatusCancelled, model.PriorityNormal),
		appt("a5", "2026-09-16", "09:00", "10:00", 60, model.StatusScheduled, model.PriorityNormal),
	)
	svc := NewCapacityService(repo, scheduling.DefaultRules(), testConfig())

	capacity, err := svc.CapacityForDate(context.Background(), "2026-09-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capacity.TotalMinutesScheduled != 180 {
		t.Errorf("expected 180 scheduled minutes, got %d", capacity.TotalMinutesScheduled)
	}
	if capacity.TotalCapacityMinutes != 2160 {
		t.Errorf("expected 2160 capacity minutes, got %d", capacity.TotalCapacityMinutes)
	}

	wantRate := 180.0 / 2160.0
	if capacity.UtilizationRate != wantRate {
		t.Errorf("expected utilization %f, got %f", wantRate, capacity.UtilizationRate)
	}
	if capacity.IsNearFull || capacity.IsFull {
		t.Errorf("light day flagged as full: nearFull=%v full=%v", capacity.IsNearFull, capacity.IsFull)
	}

	// All three active appointments touch the 09:00 hour; a3 spills into 10:00.
	if got := capacity.HourlyLoad[9]; got != 3 {
		t.Errorf("expected hour 9 load 3, got %d", got)
	}
	if got := capacity.HourlyLoad[10]; got != 1 {
		t.Errorf("expected hour 10 load 1, got %d", got)
	}
	if got := capacity.HourlyLoad[11]; got != 0 {
		t.Errorf("expected hour 11 load 0, got %d", got)
	}

	if len(capacity.PeakHours) != 1 || capacity.PeakHours[0] != 9 {
		t.Errorf("expected peak hour [9], got %v", capacity.PeakHours)
	}

	if len(capacity.AvailableSlots) != 12 {
		t.Fatalf("expected 12 hourly slots, got %d", len(capacity.AvailableSlots))
	}
	for _, slot := range capacity.AvailableSlots {
		switch slot.Hour {
		case 9:
			if slot.SlotsAvailable != 0 {
				t.Errorf("expected 0 open slots at hour 9, got %d", slot.SlotsAvailable)
			}
		case 10:
			if slot.SlotsAvailable != 2 {
				t.Errorf("expected 2 open slots at hour 10, got %d", slot.SlotsAvailable)
			}
		case 7:
			if slot.SlotsAvailable != 3 {
				t.Errorf("expected 3 open slots at hour 7, got %d", slot.SlotsAvailable)
			}
		}
	}
}

func TestCapacityForDate_EmptyDay(t *testing.T) {
	svc := NewCapacityService(seedRepository(t), scheduling.DefaultRules(), testConfig())

	capacity, err := svc.CapacityForDate(context.Background(), "2026-09-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capacity.TotalMinutesScheduled != 0 || capacity.UtilizationRate != 0 {
		t.Errorf("empty day must report zero load, got %+v", capacity)
	}
	if len(capacity.PeakHours) != 0 {
		t.Errorf("empty day must have no peak hours, got %v", capacity.PeakHours)
	}
}

func TestCapacityForDate_InvalidDate(t *testing.T) {
	svc := NewCapacityService(seedRepository(t), scheduling.DefaultRules(), testConfig())

	_, err := svc.CapacityForDate(context.Background(), "15-09-2026")
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

func TestCapacityForDate_RepositoryFailure(t *testing.T) {
	repo := &mockAppointmentRepository{
		listByDateFunc: func(context.Context, string) ([]*model.Appointment, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := NewCapacityService(repo, scheduling.DefaultRules(), testConfig())

	_, err := svc.CapacityForDate(context.Background(), "2026-09-15")
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", appErr.Code)
	}
}

func TestStatisticsForRange(t *testing.T) {
	repo := seedRepository(t,
		appt("a1", "2026-09-14", "09:00", "10:00", 60, model.StatusCompleted, model.PriorityNormal),
		appt("a2", "2026-09-14", "10:00", "11:00", 60, model.StatusCompleted, model.PriorityHigh),
		appt("a3", "2026-09-15", "09:00", "10:00", 60, model.StatusNoShow, model.PriorityNormal),
		appt("a4", "2026-09-15", "10:00", "12:00", 120, model.StatusCancelled, model.PriorityLow),
		appt("a5", "2026-09-16", "09:00", "10:00", 60, model.StatusScheduled, model.PriorityUrgent),
		// Outside the queried range.
		appt("a6", "2026-09-20", "09:00", "10:00", 60, model.StatusScheduled, model.PriorityNormal),
	)
	svc := NewCapacityService(repo, scheduling.DefaultRules(), testConfig())

	stats, err := svc.StatisticsForRange(context.Background(), "2026-09-14", "2026-09-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Total != 5 {
		t.Fatalf("expected 5 appointments, got %d", stats.Total)
	}
	if got := stats.ByStatus[string(model.StatusCompleted)]; got != 2 {
		t.Errorf("expected 2 completed, got %d", got)
	}
	if got := stats.ByPriority[string(model.PriorityNormal)]; got != 2 {
		t.Errorf("expected 2 normal priority, got %d", got)
	}

	// 1 no-show out of 3 attended outcomes.
	if want := 1.0 / 3.0; stats.NoShowRate != want {
		t.Errorf("expected no-show rate %f, got %f", want, stats.NoShowRate)
	}
	if want := 1.0 / 5.0; stats.CancellationRate != want {
		t.Errorf("expected cancellation rate %f, got %f", want, stats.CancellationRate)
	}
	if want := 2.0 / 5.0; stats.CompletionRate != want {
		t.Errorf("expected completion rate %f, got %f", want, stats.CompletionRate)
	}
	if want := 360.0 / 5.0; stats.AvgDurationMinutes != want {
		t.Errorf("expected avg duration %f, got %f", want, stats.AvgDurationMinutes)
	}
}

func TestStatisticsForRange_EmptyRangeReportsZeroRates(t *testing.T) {
	svc := NewCapacityService(seedRepository(t), scheduling.DefaultRules(), testConfig())

	stats, err := svc.StatisticsForRange(context.Background(), "2026-09-14", "2026-09-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("expected 0 appointments, got %d", stats.Total)
	}
	if stats.NoShowRate != 0 || stats.CancellationRate != 0 || stats.CompletionRate != 0 || stats.AvgDurationMinutes != 0 {
		t.Errorf("zero-denominator rates must be 0, got %+v", stats)
	}
}

func TestStatisticsForRange_InvalidInputs(t *testing.T) {
	svc := NewCapacityService(seedRepository(t), scheduling.DefaultRules(), testConfig())
	ctx := context.Background()

	if _, err := svc.StatisticsForRange(ctx, "bad", "2026-09-16"); err == nil {
		t.Error("expected error for malformed start date")
	}
	if _, err := svc.StatisticsForRange(ctx, "2026-09-14", "bad"); err == nil {
		t.Error("expected error for malformed end date")
	}
	if _, err := svc.StatisticsForRange(ctx, "2026-09-16", "2026-09-14"); err == nil {
		t.Error("expected error for inverted range")
	}
}
