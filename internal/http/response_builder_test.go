package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"household/internal/core"
	"household/internal/storage"
)

func TestResponseBuilder_JSON(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().
		Status(http.StatusOK).
		Header("X-Test", "1").
		JSON(map[string]int{"n": 1}).
		Write(w)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Errorf("Content-Type = %q", got)
	}
	if w.Header().Get("X-Test") != "1" {
		t.Error("custom header not set")
	}
	if w.Body.String() != `{"n":1}` {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestResponseBuilder_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	NewResponse().JSON(make(chan int)).Write(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want 500", w.Code)
	}
}

func TestResponseBuilder_CSV(t *testing.T) {
	w := httptest.NewRecorder()
	NewResponse().CSV("expenses-2024-02.csv", "a,b").Write(w)

	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="expenses-2024-02.csv"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if w.Body.String() != "a,b" {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	BadRequestError(`bad "input"`).Write(w)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status code = %d, want 400", w.Code)
	}
	if w.Body.String() != `{"error":"bad \"input\""}` {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount}, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", core.ErrInvalidMonthFormat), http.StatusBadRequest},
		{core.ErrInvalidGroupShape, http.StatusBadRequest},
		{fmt.Errorf("paidBy x: %w", storage.ErrForeignKey), http.StatusBadRequest},
		{storage.ErrDemoGroup, http.StatusBadRequest},
		{errInvalidBody, http.StatusBadRequest},
		{fmt.Errorf("group x: %w", storage.ErrNotFound), http.StatusNotFound},
		{storage.ErrConflict, http.StatusConflict},
		{storage.ErrInUse, http.StatusConflict},
		{errors.New("disk on fire"), 0},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError_HidesUnexpectedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	writeError(w, r, errors.New("sql: connection refused"), "Failed to fetch groups")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "sql") {
		t.Errorf("internal error leaked: %s", w.Body.String())
	}
}
