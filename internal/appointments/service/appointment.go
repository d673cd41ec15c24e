package service

import (
	"context"
	"errors"
	"time"

	apptErrors "pitstop/internal/appointments/errors"
	"pitstop/internal/appointments/repository"
	"pitstop/internal/appointments/validator"
	"pitstop/internal/notifier"
	"pitstop/internal/scheduling"
	"pitstop/pkg/config"
	apperrors "pitstop/pkg/errors"
	"pitstop/pkg/model"
	"pitstop/pkg/sanitizer"

	"github.com/google/uuid"
)

type AppointmentService interface {
	Submit(ctx context.Context, appt *model.Appointment) (*AdmissionResult, error)
	Amend(ctx context.Context, id string, updates *model.AppointmentUpdate) (*AdmissionResult, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Appointment, error)
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	ListByDate(ctx context.Context, date string, limit int, offset int64) ([]*model.Appointment, int64, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	validator *validator.AppointmentValidator
	notify    notifier.Notifier
	rules     scheduling.Rules
	cfg       *config.Config
	locks     *dateLockTable
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	apptValidator *validator.AppointmentValidator,
	notify notifier.Notifier,
	rules scheduling.Rules,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		validator: apptValidator,
		notify:    notify,
		rules:     rules,
		cfg:       cfg,
		locks:     newDateLockTable(),
	}
}

// Submit runs the admission protocol: structural validation, conflict
// detection against the date's non-terminal appointments, then insertion.
// An urgent candidate is admitted over conflicts with the override recorded;
// anything else is rejected with the full conflict list.
func (s *appointmentService) Submit(ctx context.Context, appt *model.Appointment) (*AdmissionResult, error) {
	s.applyDefaults(appt)
	s.sanitize(appt)
	if err := s.validate(appt); err != nil {
		return nil, err
	}

	release := s.locks.acquire(appt.Date)
	defer release()

	var result *AdmissionResult
	var rejectedOn []scheduling.Conflict
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		report, err := s.detect(txCtx, appt, "")
		if err != nil {
			return err
		}

		if report.HasConflicts() && appt.Priority != model.PriorityUrgent {
			rejectedOn = report.Conflicts
			return apperrors.Conflict("Appointment conflicts with existing schedule", map[string]any{
				"conflicts": report.Conflicts,
			})
		}

		appt.ID = uuid.NewString()
		appt.Status = model.StatusScheduled
		appt.HasConflictOverride = report.HasConflicts()

		if err := s.repo.Insert(txCtx, appt); err != nil {
			return apperrors.Internal("Failed to store appointment", err)
		}

		result = &AdmissionResult{
			Appointment: appt,
			Overridden:  appt.HasConflictOverride,
			Warnings:    report.Conflicts,
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Appointment submission rejected", "date", appt.Date, "error", err)
		if len(rejectedOn) > 0 {
			s.publish(ctx, notifier.Event{
				Type:        notifier.EventRejected,
				Appointment: appt,
				Conflicts:   rejectedOn,
			})
		}
		return nil, err
	}

	s.cfg.Log.Info("Appointment admitted",
		"id", appt.ID,
		"date", appt.Date,
		"start_time", appt.StartTime,
		"end_time", appt.EndTime,
		"priority", appt.Priority,
		"override", appt.HasConflictOverride,
	)
	s.publish(ctx, notifier.Event{
		Type:        notifier.EventAdmitted,
		Appointment: appt,
		Conflicts:   result.Warnings,
		Overridden:  result.Overridden,
	})
	return result, nil
}

// Amend applies a partial edit and re-runs the full admission protocol with
// the appointment's own record excluded from conflict detection.
func (s *appointmentService) Amend(ctx context.Context, id string, updates *model.AppointmentUpdate) (*AdmissionResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, apperrors.Validation("Invalid update input", validationDetails(err))
	}

	existing, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsTerminal() {
		appErr := apperrors.Conflict("Cannot amend an appointment in a terminal status", map[string]any{
			"id":     id,
			"status": existing.Status,
		})
		appErr.Err = apptErrors.ErrTerminalStatus
		return nil, appErr
	}

	merged := s.merge(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	release := s.locks.acquire(existing.Date, merged.Date)
	defer release()

	var result *AdmissionResult
	var rejectedOn []scheduling.Conflict
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		report, err := s.detect(txCtx, merged, id)
		if err != nil {
			return err
		}

		if report.HasConflicts() && merged.Priority != model.PriorityUrgent {
			rejectedOn = report.Conflicts
			return apperrors.Conflict("Amended appointment conflicts with existing schedule", map[string]any{
				"conflicts": report.Conflicts,
			})
		}

		merged.HasConflictOverride = report.HasConflicts()

		if err := s.repo.Update(txCtx, id, merged); err != nil {
			if errors.Is(err, apptErrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Appointment", id)
			}
			return apperrors.Internal("Failed to update appointment", err)
		}

		result = &AdmissionResult{
			Appointment: merged,
			Overridden:  merged.HasConflictOverride,
			Warnings:    report.Conflicts,
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Appointment amendment rejected", "id", id, "error", err)
		if len(rejectedOn) > 0 {
			s.publish(ctx, notifier.Event{
				Type:        notifier.EventRejected,
				Appointment: merged,
				Conflicts:   rejectedOn,
			})
		}
		return nil, err
	}

	s.cfg.Log.Info("Appointment amended", "id", id, "date", merged.Date, "override", merged.HasConflictOverride)
	s.publish(ctx, notifier.Event{
		Type:        notifier.EventAmended,
		Appointment: merged,
		Conflicts:   result.Warnings,
		Overridden:  result.Overridden,
	})
	return result, nil
}

// UpdateStatus moves an appointment through its lifecycle. Transitions are
// bounded by the lifecycle table; terminal statuses accept nothing.
func (s *appointmentService) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.InvalidInput("Unknown appointment status: " + string(status))
	}

	existing, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if !existing.Status.CanTransitionTo(status) {
		appErr := apperrors.Conflict("Status transition not allowed", map[string]any{
			"id":   id,
			"from": existing.Status,
			"to":   status,
		})
		appErr.Err = apptErrors.ErrInvalidTransition
		return nil, appErr
	}

	release := s.locks.acquire(existing.Date)
	defer release()

	existing.Status = status
	if err := s.repo.Update(ctx, id, existing); err != nil {
		if errors.Is(err, apptErrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		return nil, apperrors.Internal("Failed to update appointment status", err)
	}

	s.cfg.Log.Info("Appointment status changed", "id", id, "status", status)
	s.publish(ctx, notifier.Event{
		Type:        notifier.EventStatusChanged,
		Appointment: existing,
	})
	return existing, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}
	return s.findExisting(ctx, id)
}

func (s *appointmentService) ListByDate(ctx context.Context, date string, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if date == "" {
		return nil, 0, apperrors.InvalidInput("Date cannot be empty")
	}

	appts, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list appointments", "date", date, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve appointments", err)
	}

	total := int64(len(appts))
	if offset >= total {
		return []*model.Appointment{}, total, nil
	}

	end := offset + int64(limit)
	if end > total {
		end = total
	}
	return appts[offset:end], total, nil
}

// --- Helpers ---

func (s *appointmentService) detect(ctx context.Context, candidate *model.Appointment, excludeID string) (scheduling.Report, error) {
	existing, err := s.repo.ListByDate(ctx, candidate.Date)
	if err != nil {
		return scheduling.Report{}, apperrors.Internal("Failed to check existing appointments", err)
	}
	return scheduling.DetectConflicts(candidate, existing, excludeID, s.rules.MaxBays), nil
}

func (s *appointmentService) findExisting(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptErrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		return nil, apperrors.Internal("Failed to retrieve appointment", err)
	}
	return appt, nil
}

func (s *appointmentService) applyDefaults(appt *model.Appointment) {
	if appt.Priority == "" {
		appt.Priority = model.PriorityNormal
	}
}

func (s *appointmentService) sanitize(appt *model.Appointment) {
	appt.ServiceType = sanitizer.NormalizeServiceType(appt.ServiceType)
	if appt.Notes != nil {
		normalized := sanitizer.NormalizeNotes(*appt.Notes)
		appt.Notes = &normalized
	}
}

// validate checks the candidate and, when it passes, fixes up the derived
// duration from the (now known valid) times.
func (s *appointmentService) validate(appt *model.Appointment) error {
	if err := s.validator.Validate(appt); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return apperrors.Validation("Appointment validation failed", validationDetails(err))
	}

	interval, err := scheduling.ParseInterval(appt.StartTime, appt.EndTime)
	if err != nil {
		return apperrors.Validation("Appointment validation failed", map[string]any{"error": err.Error()})
	}
	appt.DurationMinutes = interval.Duration()
	return nil
}

func (s *appointmentService) merge(existing *model.Appointment, updates *model.AppointmentUpdate) *model.Appointment {
	merged := *existing

	if updates.Date != "" {
		merged.Date = updates.Date
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}
	if updates.TechnicianID != nil {
		merged.TechnicianID = updates.TechnicianID
	}
	if updates.BayID != nil {
		merged.BayID = updates.BayID
	}
	if updates.VehicleID != nil {
		merged.VehicleID = updates.VehicleID
	}
	if updates.ServiceType != "" {
		merged.ServiceType = updates.ServiceType
	}
	if updates.Notes != nil {
		merged.Notes = updates.Notes
	}
	if updates.Priority != "" {
		merged.Priority = updates.Priority
	}

	return &merged
}

// publish forwards an event to the notification collaborator. Delivery
// failures never fail the admission itself.
func (s *appointmentService) publish(ctx context.Context, event notifier.Event) {
	event.OccurredAt = time.Now().UTC()
	if err := s.notify.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish scheduling event", "type", event.Type, "error", err)
	}
}

func validationDetails(err error) map[string]any {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return map[string]any{"errors": verrs}
	}
	return map[string]any{"error": err.Error()}
}
