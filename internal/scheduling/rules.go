package scheduling

// Rules carries the operational constants of a resource pool. Every engine
// operation receives them explicitly; nothing is read from ambient state.
type Rules struct {
	MaxBays   int
	OpenHour  int
	CloseHour int

	MinDurationMinutes int
	MaxDurationMinutes int
}

// DefaultRules matches a three-bay shop open 07:00-19:00.
func DefaultRules() Rules {
	return Rules{
		MaxBays:            3,
		OpenHour:           7,
		CloseHour:          19,
		MinDurationMinutes: 15,
		MaxDurationMinutes: 480,
	}
}

// OperatingWindow is the admissible [open, close) interval in minutes.
func (r Rules) OperatingWindow() Interval {
	return Interval{Start: r.OpenHour * 60, End: r.CloseHour * 60}
}

// CapacityMinutes is the total bay-minutes available in one operating day.
func (r Rules) CapacityMinutes() int {
	return r.MaxBays * (r.CloseHour - r.OpenHour) * 60
}
