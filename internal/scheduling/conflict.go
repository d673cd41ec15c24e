package scheduling

import "pitstop/pkg/model"

// ConflictType identifies which resource axis (or the shared bay capacity)
// a conflict was detected on.
type ConflictType string

const (
	ConflictTechnician ConflictType = "technician"
	ConflictBay        ConflictType = "bay"
	ConflictVehicle    ConflictType = "vehicle"
	ConflictCapacity   ConflictType = "capacity"
)

// Conflict describes a single detected collision. Resource conflicts carry
// the existing appointment they collide with; the capacity conflict carries
// the overlap count including the candidate.
type Conflict struct {
	Type ConflictType       `json:"type"`
	With *model.Appointment `json:"with,omitempty"`
	// Count is the number of concurrently overlapping appointments,
	// candidate included. Set only for capacity conflicts.
	Count int `json:"count,omitempty"`
}

type Report struct {
	Conflicts []Conflict `json:"conflicts"`
}

func (r Report) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// DetectConflicts checks the candidate against every existing appointment.
// Only appointments on the candidate's date with a non-terminal status are
// considered; excludeID skips the candidate's own record when re-validating
// an edit. The check is a pure read.
//
// A resource conflict is reported per axis only when the field is set on
// BOTH sides and equal; two appointments with no technician assigned never
// collide on the technician axis. Independently, when the number of
// time-overlapping appointments plus the candidate exceeds maxBays, a single
// capacity conflict is reported regardless of resource identity.
func DetectConflicts(candidate *model.Appointment, existing []*model.Appointment, excludeID string, maxBays int) Report {
	candInterval, err := ParseInterval(candidate.StartTime, candidate.EndTime)
	if err != nil {
		// Times are validated before admission; an unparsable candidate
		// cannot overlap anything.
		return Report{}
	}

	var report Report
	overlapping := 0

	for _, appt := range existing {
		if appt.Date != candidate.Date {
			continue
		}
		if appt.IsTerminal() {
			continue
		}
		if excludeID != "" && appt.ID == excludeID {
			continue
		}

		interval, err := ParseInterval(appt.StartTime, appt.EndTime)
		if err != nil {
			continue
		}
		if !candInterval.Overlaps(interval) {
			continue
		}

		overlapping++

		if sameResource(candidate.TechnicianID, appt.TechnicianID) {
			report.Conflicts = append(report.Conflicts, Conflict{Type: ConflictTechnician, With: appt})
		}
		if sameResource(candidate.BayID, appt.BayID) {
			report.Conflicts = append(report.Conflicts, Conflict{Type: ConflictBay, With: appt})
		}
		if sameResource(candidate.VehicleID, appt.VehicleID) {
			report.Conflicts = append(report.Conflicts, Conflict{Type: ConflictVehicle, With: appt})
		}
	}

	if overlapping+1 > maxBays {
		report.Conflicts = append(report.Conflicts, Conflict{Type: ConflictCapacity, Count: overlapping + 1})
	}

	return report
}

func sameResource(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}
