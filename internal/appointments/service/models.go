package service

import (
	"pitstop/internal/scheduling"
	"pitstop/pkg/model"
)

// AdmissionResult is returned on a successful submit or amend. Warnings
// carry the conflicts an urgent appointment was admitted over.
type AdmissionResult struct {
	Appointment *model.Appointment    `json:"appointment"`
	Overridden  bool                  `json:"overridden"`
	Warnings    []scheduling.Conflict `json:"warnings,omitempty"`
}
