// Package http exposes the household REST API.
//
// This file implements a small builder for JSON and CSV responses and the
// single place where domain errors are mapped to HTTP status codes.

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"household/internal/core"
	"household/internal/log"
	"household/internal/storage"
)

// ResponseBuilder provides a fluent API for building API responses.
type ResponseBuilder struct {
	statusCode int
	body       []byte
	headers    map[string]string
	err        error
}

// NewResponse creates a new response builder with default 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// JSON encodes v as the response body.
func (b *ResponseBuilder) JSON(v any) *ResponseBuilder {
	b.headers["Content-Type"] = "application/json; charset=utf-8"
	b.body, b.err = json.Marshal(v)
	return b
}

// CSV sets a CSV attachment body.
func (b *ResponseBuilder) CSV(filename, content string) *ResponseBuilder {
	b.headers["Content-Type"] = "text/csv; charset=utf-8"
	b.headers["Content-Disposition"] = `attachment; filename="` + filename + `"`
	b.body = []byte(content)
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	if b.err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}`))
		return
	}
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// ErrorResponse creates a JSON error response.
func ErrorResponse(statusCode int, message string) *ResponseBuilder {
	return NewResponse().Status(statusCode).JSON(errorBody{Error: message})
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

// NotFoundError creates a 404 Not Found error response.
func NotFoundError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// statusFor maps domain and storage errors to a status code. Zero means the
// error is unexpected.
func statusFor(err error) int {
	switch {
	case core.IsValidation(err),
		errors.Is(err, errInvalidBody),
		errors.Is(err, core.ErrInvalidMonthFormat),
		errors.Is(err, core.ErrInvalidGroupShape),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, storage.ErrForeignKey),
		errors.Is(err, storage.ErrDemoGroup):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict), errors.Is(err, storage.ErrInUse):
		return http.StatusConflict
	}
	return 0
}

// writeError maps err to its status. Unexpected errors are logged and
// answered with fallback so internals never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	if status == 0 {
		log.FromContext(r.Context()).ErrorContext(r.Context(), fallback, log.FieldError, err)
		ErrorResponse(http.StatusInternalServerError, fallback).Write(w)
		return
	}
	ErrorResponse(status, errorMessage(err)).Write(w)
}

// errorMessage gives the client-facing text for a known error.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidGroupShape):
		return "Group must have exactly 2 persons"
	case errors.Is(err, core.ErrInvalidMonthFormat):
		return `Invalid month format. Use YYYY-MM or "all"`
	case errors.Is(err, storage.ErrDemoGroup):
		return "Cannot delete demo group"
	}
	return err.Error()
}
