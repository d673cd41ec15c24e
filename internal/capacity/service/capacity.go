package service

import (
	"context"
	"sort"

	"pitstop/internal/appointments/repository"
	"pitstop/internal/scheduling"
	"pitstop/pkg/config"
	apperrors "pitstop/pkg/errors"
	"pitstop/pkg/model"
)

const nearFullThreshold = 0.8

// DayCapacity summarizes the load on a single operational date. All figures
// count non-terminal appointments only.
type DayCapacity struct {
	Date                  string          `json:"date"`
	TotalMinutesScheduled int             `json:"totalMinutesScheduled"`
	TotalCapacityMinutes  int             `json:"totalCapacityMinutes"`
	UtilizationRate       float64         `json:"utilizationRate"`
	IsNearFull            bool            `json:"isNearFull"`
	IsFull                bool            `json:"isFull"`
	HourlyLoad            map[int]int     `json:"hourlyLoad"`
	PeakHours             []int           `json:"peakHours"`
	AvailableSlots        []AvailableSlot `json:"availableSlots"`
}

// AvailableSlot reports remaining bay openings for one hour of the
// operating window.
type AvailableSlot struct {
	Hour           int `json:"hour"`
	SlotsAvailable int `json:"slotsAvailable"`
}

// RangeStatistics aggregates appointment outcomes over an inclusive date
// range. Rates with a zero denominator report 0.
type RangeStatistics struct {
	StartDate          string         `json:"startDate"`
	EndDate            string         `json:"endDate"`
	Total              int            `json:"total"`
	ByStatus           map[string]int `json:"byStatus"`
	ByPriority         map[string]int `json:"byPriority"`
	NoShowRate         float64        `json:"noShowRate"`
	CancellationRate   float64        `json:"cancellationRate"`
	CompletionRate     float64        `json:"completionRate"`
	AvgDurationMinutes float64        `json:"avgDurationMinutes"`
}

type CapacityService interface {
	CapacityForDate(ctx context.Context, date string) (*DayCapacity, error)
	StatisticsForRange(ctx context.Context, startDate, endDate string) (*RangeStatistics, error)
}

type capacityService struct {
	repo  repository.AppointmentRepository
	rules scheduling.Rules
	cfg   *config.Config
}

func NewCapacityService(repo repository.AppointmentRepository, rules scheduling.Rules, cfg *config.Config) CapacityService {
	return &capacityService{
		repo:  repo,
		rules: rules,
		cfg:   cfg,
	}
}

// CapacityForDate computes the utilization picture for one date: scheduled
// minutes against the pool's total bay-minutes, the per-hour appointment
// load, the hours running at or over the bay count, and per-hour openings.
func (s *capacityService) CapacityForDate(ctx context.Context, date string) (*DayCapacity, error) {
	if _, err := scheduling.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("Invalid date, expected YYYY-MM-DD")
	}

	appts, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to load appointments", err)
	}

	capacity := &DayCapacity{
		Date:                 date,
		TotalCapacityMinutes: s.rules.CapacityMinutes(),
		HourlyLoad:           make(map[int]int),
	}

	for _, appt := range appts {
		if appt.IsTerminal() {
			continue
		}
		interval, err := scheduling.ParseInterval(appt.StartTime, appt.EndTime)
		if err != nil {
			s.cfg.Log.Warn("Skipping appointment with unparsable times",
				"appointment_id", appt.ID, "error", err)
			continue
		}
		capacity.TotalMinutesScheduled += interval.Duration()

		for hour := s.rules.OpenHour; hour < s.rules.CloseHour; hour++ {
			hourSlot := scheduling.Interval{Start: hour * 60, End: (hour + 1) * 60}
			if interval.Overlaps(hourSlot) {
				capacity.HourlyLoad[hour]++
			}
		}
	}

	if capacity.TotalCapacityMinutes > 0 {
		capacity.UtilizationRate = float64(capacity.TotalMinutesScheduled) / float64(capacity.TotalCapacityMinutes)
	}
	capacity.IsNearFull = capacity.UtilizationRate > nearFullThreshold
	capacity.IsFull = capacity.UtilizationRate >= 1.0

	for hour := s.rules.OpenHour; hour < s.rules.CloseHour; hour++ {
		load := capacity.HourlyLoad[hour]
		if load >= s.rules.MaxBays {
			capacity.PeakHours = append(capacity.PeakHours, hour)
		}
		open := s.rules.MaxBays - load
		if open < 0 {
			open = 0
		}
		capacity.AvailableSlots = append(capacity.AvailableSlots, AvailableSlot{
			Hour:           hour,
			SlotsAvailable: open,
		})
	}
	sort.Ints(capacity.PeakHours)

	return capacity, nil
}

// StatisticsForRange aggregates every appointment whose date falls in the
// inclusive [startDate, endDate] range, terminal ones included.
func (s *capacityService) StatisticsForRange(ctx context.Context, startDate, endDate string) (*RangeStatistics, error) {
	if _, err := scheduling.ParseDate(startDate); err != nil {
		return nil, apperrors.InvalidInput("Invalid start date, expected YYYY-MM-DD")
	}
	if _, err := scheduling.ParseDate(endDate); err != nil {
		return nil, apperrors.InvalidInput("Invalid end date, expected YYYY-MM-DD")
	}
	if startDate > endDate {
		return nil, apperrors.InvalidInput("Start date must not be after end date")
	}

	appts, err := s.repo.ListByRange(ctx, startDate, endDate)
	if err != nil {
		return nil, apperrors.Internal("Failed to load appointments", err)
	}

	stats := &RangeStatistics{
		StartDate:  startDate,
		EndDate:    endDate,
		Total:      len(appts),
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}

	var totalDuration int
	for _, appt := range appts {
		stats.ByStatus[string(appt.Status)]++
		stats.ByPriority[string(appt.Priority)]++
		totalDuration += appt.DurationMinutes
	}

	completed := stats.ByStatus[string(model.StatusCompleted)]
	noShows := stats.ByStatus[string(model.StatusNoShow)]
	cancelled := stats.ByStatus[string(model.StatusCancelled)]

	if attended := completed + noShows; attended > 0 {
		stats.NoShowRate = float64(noShows) / float64(attended)
	}
	if stats.Total > 0 {
		stats.CancellationRate = float64(cancelled) / float64(stats.Total)
		stats.CompletionRate = float64(completed) / float64(stats.Total)
		stats.AvgDurationMinutes = float64(totalDuration) / float64(stats.Total)
	}

	return stats, nil
}
