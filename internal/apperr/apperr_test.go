package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
	}{
		{name: "validation", err: Validation("bad input"), wantStatus: http.StatusBadRequest},
		{name: "not found", err: NotFound("missing"), wantStatus: http.StatusNotFound},
		{name: "conflict renders 400", err: Conflict("duplicate"), wantStatus: http.StatusBadRequest},
		{name: "unauthorized", err: Unauthorized("no token"), wantStatus: http.StatusUnauthorized},
		{name: "forbidden", err: Forbidden("not allowed"), wantStatus: http.StatusForbidden},
		{name: "internal", err: Internal("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
			if tt.err.Error() == "" {
				t.Fatal("empty message")
			}
		})
	}
}

func TestFrom_PassesThroughDomainErrors(t *testing.T) {
	orig := NotFound("user not found")

	got := From(fmt.Errorf("lookup: %w", orig))
	if got.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", got.Status, http.StatusNotFound)
	}
	if got.Message != "user not found" {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestFrom_WrapsUnknownErrorsAs500(t *testing.T) {
	got := From(errors.New("pq: connection refused"))
	if got.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", got.Status)
	}
	if got.Message != "internal server error" {
		t.Fatalf("unexpected leak of internals: %q", got.Message)
	}
}

func TestFrom_Nil(t *testing.T) {
	if got := From(nil); got != nil {
		t.Fatalf("From(nil) = %v, want nil", got)
	}
}
