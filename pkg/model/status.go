package model

// Terminal statuses are excluded from conflict and capacity scans and accept
// no further transitions.
var terminalStatuses = map[Status]bool{
	StatusCompleted: true,
	StatusCancelled: true,
	StatusNoShow:    true,
}

var allowedTransitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusLate, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusLate, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusPaused, StatusCompleted, StatusCancelled},
	StatusPaused:     {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusLate:       {StatusInProgress, StatusCancelled, StatusNoShow},
}

func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// CanTransitionTo reports whether the status change is allowed by the
// lifecycle table. Terminal statuses accept nothing.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusPaused,
		StatusLate, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}
