package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestHelperStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
		http int
	}{
		{name: "not found", err: NotFound("Appointment"), code: CodeNotFound, http: http.StatusNotFound},
		{name: "not found with id", err: NotFoundWithID("Appointment", "a1"), code: CodeNotFound, http: http.StatusNotFound},
		{name: "validation", err: Validation("bad input", nil), code: CodeValidation, http: http.StatusUnprocessableEntity},
		{name: "invalid input", err: InvalidInput("bad id"), code: CodeInvalidInput, http: http.StatusBadRequest},
		{name: "conflict", err: Conflict("overlap", nil), code: CodeConflict, http: http.StatusConflict},
		{name: "internal", err: Internal("boom", errors.New("cause")), code: CodeInternal, http: http.StatusInternalServerError},
		{name: "timeout", err: Timeout("too slow"), code: CodeTimeout, http: http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.http {
				t.Errorf("expected status %d, got %d", tt.http, tt.err.StatusCode())
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("storage failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Error() == "" {
		t.Error("expected non-empty error string")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Appointment")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected the same AppError back")
	}

	plain := errors.New("something broke")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("plain errors must map to %s, got %s", CodeInternal, got.Code)
	}
	if got.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", got.StatusCode())
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Conflict("overlap", nil)) {
		t.Error("expected true for AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
}
