package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrTerminalStatus = errors.New("appointment is in a terminal status")

	ErrInvalidTransition = errors.New("status transition not allowed")
)
