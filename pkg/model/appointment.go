package model

import "time"

// Priority orders appointments for admission policy. Urgent is the only
// level allowed to override a detected conflict.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusLate       Status = "late"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Appointment is the central scheduling entity. Times are wall-clock HH:MM
// strings within a single operating day; Date carries no time component.
type Appointment struct {
	ID                  string    `json:"id,omitempty" bson:"_id,omitempty"`
	Date                string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime           string    `json:"start_time" bson:"start_time" validate:"required,datetime=15:04"`
	EndTime             string    `json:"end_time" bson:"end_time" validate:"required,datetime=15:04"`
	DurationMinutes     int       `json:"duration_minutes" bson:"duration_minutes"`
	TechnicianID        *string   `json:"technician_id,omitempty" bson:"technician_id,omitempty"`
	BayID               *string   `json:"bay_id,omitempty" bson:"bay_id,omitempty"`
	VehicleID           *string   `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty"`
	ServiceType         string    `json:"service_type" bson:"service_type" validate:"required,min=1,max=100"`
	Notes               *string   `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	Priority            Priority  `json:"priority,omitempty" bson:"priority" validate:"omitempty,oneof=urgent high normal low"`
	Status              Status    `json:"status,omitempty" bson:"status" validate:"omitempty,oneof=scheduled confirmed in_progress paused late completed cancelled no_show"`
	HasConflictOverride bool      `json:"has_conflict_override" bson:"has_conflict_override"`
	CreatedAt           time.Time `json:"created_at,omitempty" bson:"created_at"`
	UpdatedAt           time.Time `json:"updated_at,omitempty" bson:"updated_at"`
}

// AppointmentUpdate carries a partial edit. Nil/empty fields keep the
// existing value.
type AppointmentUpdate struct {
	Date         string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime    string   `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime      string   `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	TechnicianID *string  `json:"technician_id,omitempty"`
	BayID        *string  `json:"bay_id,omitempty"`
	VehicleID    *string  `json:"vehicle_id,omitempty"`
	ServiceType  string   `json:"service_type,omitempty" validate:"omitempty,min=1,max=100"`
	Notes        *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
	Priority     Priority `json:"priority,omitempty" validate:"omitempty,oneof=urgent high normal low"`
}

// IsTerminal reports whether the appointment no longer participates in
// conflict or capacity checks.
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

func (a *Appointment) IsActive() bool {
	return !a.IsTerminal()
}
