package notifier

import (
	"context"
	"time"

	"pitstop/internal/scheduling"
	"pitstop/pkg/model"
)

const (
	EventAdmitted      = "appointment.admitted"
	EventAmended       = "appointment.amended"
	EventRejected      = "appointment.rejected"
	EventStatusChanged = "appointment.status_changed"
)

// Event is forwarded to the external notification system after every
// admission decision. Conflicts are always carried, even on an urgent
// override, so downstream audit trails retain the override reason.
type Event struct {
	Type        string                `json:"type"`
	Appointment *model.Appointment    `json:"appointment,omitempty"`
	Conflicts   []scheduling.Conflict `json:"conflicts,omitempty"`
	Overridden  bool                  `json:"overridden,omitempty"`
	OccurredAt  time.Time             `json:"occurred_at"`
}

// Notifier delivers events to the outside world. Delivery failures must not
// fail the admission itself; callers log and move on.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

type noopNotifier struct{}

// NewNoop returns a Notifier that drops every event. Used when no brokers
// are configured.
func NewNoop() Notifier {
	return noopNotifier{}
}

func (noopNotifier) Publish(context.Context, Event) error {
	return nil
}
