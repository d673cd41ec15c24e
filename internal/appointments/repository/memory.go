package repository

import (
	"context"
	"sort"
	"sync"

	apptErrors "pitstop/internal/appointments/errors"
	"pitstop/pkg/model"
)

// memoryAppointmentRepository keeps the schedule in process memory, keyed by
// appointment id. Reads return copies so concurrent statistics queries
// observe a consistent snapshot and never see a partially-written record.
type memoryAppointmentRepository struct {
	mu    sync.RWMutex
	appts map[string]*model.Appointment
}

func NewMemoryAppointmentRepository() AppointmentRepository {
	return &memoryAppointmentRepository{
		appts: make(map[string]*model.Appointment),
	}
}

func (r *memoryAppointmentRepository) Insert(_ context.Context, appt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *appt
	r.appts[appt.ID] = &stored
	return nil
}

func (r *memoryAppointmentRepository) Update(_ context.Context, id string, appt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[id]; !ok {
		return apptErrors.ErrNotFound
	}

	stored := *appt
	stored.ID = id
	r.appts[id] = &stored
	return nil
}

func (r *memoryAppointmentRepository) FindByID(_ context.Context, id string) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, apptErrors.ErrNotFound
	}

	found := *appt
	return &found, nil
}

func (r *memoryAppointmentRepository) ListByDate(_ context.Context, date string) ([]*model.Appointment, error) {
	return r.snapshot(func(a *model.Appointment) bool {
		return a.Date == date
	}), nil
}

func (r *memoryAppointmentRepository) ListByRange(_ context.Context, startDate, endDate string) ([]*model.Appointment, error) {
	return r.snapshot(func(a *model.Appointment) bool {
		return a.Date >= startDate && a.Date <= endDate
	}), nil
}

// ExecuteTransaction runs fn directly; atomicity across submit/amend is
// provided by the admission service's per-date lock.
func (r *memoryAppointmentRepository) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	return fn(ctx)
}

func (r *memoryAppointmentRepository) snapshot(keep func(*model.Appointment) bool) []*model.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Appointment, 0)
	for _, appt := range r.appts {
		if keep(appt) {
			copied := *appt
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].ID < result[j].ID
	})

	return result
}
