package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pitstop/internal/scheduling"
	"pitstop/pkg/logger"
	"pitstop/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// AppointmentValidator checks a proposed appointment's structural
// correctness. Every violated rule is reported; nothing short-circuits, so
// callers can present the complete error list in one round trip.
type AppointmentValidator struct {
	validate *validator.Validate
	rules    scheduling.Rules
	logger   *logger.Logger

	// Now is the clock used for the no-past-dates rule. Overridable in tests.
	Now func() time.Time
}

func NewAppointmentValidator(rules scheduling.Rules, log *logger.Logger) *AppointmentValidator {
	return &AppointmentValidator{
		validate: validator.New(),
		rules:    rules,
		logger:   log,
		Now:      time.Now,
	}
}

func (v *AppointmentValidator) Validate(appt *model.Appointment) error {
	var validationErrors ValidationErrors

	if err := v.validate.Struct(appt); err != nil {
		var structErrs validator.ValidationErrors
		if errors.As(err, &structErrs) {
			validationErrors = append(validationErrors, v.translateValidationErrors(structErrs)...)
		} else {
			return err
		}
	}

	validationErrors = append(validationErrors, v.checkTimes(appt.Date, appt.StartTime, appt.EndTime)...)

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

// ValidateUpdate checks only the fields present on a partial edit. The
// merged appointment is re-validated in full by Validate before admission.
func (v *AppointmentValidator) ValidateUpdate(update *model.AppointmentUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var structErrs validator.ValidationErrors
		if errors.As(err, &structErrs) {
			return v.translateValidationErrors(structErrs)
		}
		return err
	}

	if update.StartTime != "" && update.EndTime != "" {
		start, startErr := scheduling.ParseClock(update.StartTime)
		end, endErr := scheduling.ParseClock(update.EndTime)
		if startErr == nil && endErr == nil && start >= end {
			return ValidationErrors{
				ValidationError{
					Field:   "EndTime",
					Message: "end_time must be after start_time",
				},
			}
		}
	}

	return nil
}

// checkTimes evaluates the ordering, duration, past-date and
// operating-window rules. Rules that depend on an unparsable field are
// skipped; the format violation is already reported by the struct tags.
func (v *AppointmentValidator) checkTimes(date, startTime, endTime string) ValidationErrors {
	var errs ValidationErrors

	if date != "" {
		if day, err := time.Parse(scheduling.DateFormat, date); err == nil {
			today := v.Now().Format(scheduling.DateFormat)
			if day.Format(scheduling.DateFormat) < today {
				errs = append(errs, ValidationError{
					Field:   "Date",
					Message: "date cannot be in the past",
				})
			}
		}
	}

	start, startErr := scheduling.ParseClock(startTime)
	end, endErr := scheduling.ParseClock(endTime)
	if startErr != nil || endErr != nil {
		return errs
	}

	if start >= end {
		errs = append(errs, ValidationError{
			Field:   "EndTime",
			Message: "end_time must be after start_time",
		})
	} else {
		duration := end - start
		if duration < v.rules.MinDurationMinutes || duration > v.rules.MaxDurationMinutes {
			errs = append(errs, ValidationError{
				Field:   "EndTime",
				Message: fmt.Sprintf("duration must be between %d and %d minutes, got %d", v.rules.MinDurationMinutes, v.rules.MaxDurationMinutes, duration),
			})
		}
	}

	window := v.rules.OperatingWindow()
	if start < window.Start {
		errs = append(errs, ValidationError{
			Field:   "StartTime",
			Message: fmt.Sprintf("start_time must not be before opening time %s", scheduling.FormatClock(window.Start)),
		})
	}
	if end > window.End {
		errs = append(errs, ValidationError{
			Field:   "EndTime",
			Message: fmt.Sprintf("end_time must not be after closing time %s", scheduling.FormatClock(window.End)),
		})
	}

	return errs
}

func (v *AppointmentValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must match format %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
