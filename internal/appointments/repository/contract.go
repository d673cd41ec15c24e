package repository

import (
	"context"

	"pitstop/pkg/model"
)

// TransactionFunc runs inside a repository transaction. For stores without
// transactional semantics the function simply runs with the given context.
type TransactionFunc func(ctx context.Context) error

// AppointmentRepository is the engine's only window onto appointment
// storage. The engine never holds references into the caller's storage; it
// operates purely through this contract.
type AppointmentRepository interface {
	Insert(ctx context.Context, appt *model.Appointment) error
	Update(ctx context.Context, id string, appt *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)

	// ListByDate returns every appointment on the given operational date,
	// terminal or not; filtering is the caller's concern.
	ListByDate(ctx context.Context, date string) ([]*model.Appointment, error)

	// ListByRange returns appointments with startDate <= date <= endDate.
	ListByRange(ctx context.Context, startDate, endDate string) ([]*model.Appointment, error)

	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}
