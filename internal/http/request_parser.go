// Package http provides HTTP server and handler implementations.
//
// This file implements decoding and validation of JSON request bodies.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"household/internal/core"
)

// maxBodyBytes bounds request bodies; notes are the largest field.
const maxBodyBytes = 64 << 10

var errInvalidBody = errors.New("invalid JSON body")

type (
	createGroupRequest struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Person1Name string `json:"person1Name"`
		Person2Name string `json:"person2Name"`
		IsDemo      bool   `json:"isDemo"`
	}

	createExpenseRequest struct {
		Amount        json.RawMessage `json:"amount"`
		SubCategoryID string          `json:"subCategoryId"`
		PaidBy        string          `json:"paidBy"`
		GroupID       string          `json:"groupId"`
		Date          string          `json:"date"`
		Note          *string         `json:"note"`
	}
)

// decodeJSON reads a JSON object from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("%w: body too large", errInvalidBody)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return fmt.Errorf("%w: expected an object", errInvalidBody)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

func (req createGroupRequest) toInput() core.NewGroup {
	return core.NewGroup{
		ID:          sanitizeInput(req.ID),
		Name:        sanitizeInput(req.Name),
		Person1Name: sanitizeInput(req.Person1Name),
		Person2Name: sanitizeInput(req.Person2Name),
		IsDemo:      req.IsDemo,
	}
}

func (req createExpenseRequest) toInput() (core.NewExpense, error) {
	amount, err := parseAmountField(req.Amount)
	if err != nil {
		return core.NewExpense{}, err
	}
	date, err := parseDateField(req.Date)
	if err != nil {
		return core.NewExpense{}, err
	}
	in := core.NewExpense{
		GroupID:       strings.TrimSpace(req.GroupID),
		Amount:        amount,
		SubCategoryID: strings.TrimSpace(req.SubCategoryID),
		PaidBy:        strings.TrimSpace(req.PaidBy),
		Date:          date,
		Note:          sanitizeNote(req.Note),
	}
	return in, in.Validate()
}

// parseExpenseUpdate decodes a partial update. A field that is absent is
// left untouched; "note": null clears the note.
func parseExpenseUpdate(r *http.Request) (core.ExpenseUpdate, error) {
	var fields map[string]json.RawMessage
	if err := decodeJSON(r, &fields); err != nil {
		return core.ExpenseUpdate{}, err
	}

	var u core.ExpenseUpdate
	if raw, ok := fields["amount"]; ok {
		amount, err := parseAmountField(raw)
		if err != nil {
			return core.ExpenseUpdate{}, err
		}
		u.Amount = &amount
	}
	if raw, ok := fields["subCategoryId"]; ok {
		s, err := stringField("subCategoryId", raw)
		if err != nil {
			return core.ExpenseUpdate{}, err
		}
		u.SubCategoryID = &s
	}
	if raw, ok := fields["paidBy"]; ok {
		s, err := stringField("paidBy", raw)
		if err != nil {
			return core.ExpenseUpdate{}, err
		}
		u.PaidBy = &s
	}
	if raw, ok := fields["date"]; ok {
		s, err := stringField("date", raw)
		if err != nil {
			return core.ExpenseUpdate{}, err
		}
		d, err := parseDateField(s)
		if err != nil {
			return core.ExpenseUpdate{}, err
		}
		u.Date = &d
	}
	if raw, ok := fields["note"]; ok {
		u.Note.Set = true
		if !isNull(raw) {
			s, err := stringField("note", raw)
			if err != nil {
				return core.ExpenseUpdate{}, err
			}
			u.Note.Value = sanitizeNote(&s)
		}
	}
	return u, u.Validate()
}

// parseAmountField accepts a JSON number or a numeric string.
func parseAmountField(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return 0, &core.ValidationError{Field: "amount", Err: core.ErrMissingField}
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, &core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount}
		}
	}
	return core.ParseAmount(text)
}

func parseDateField(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Date{}, &core.ValidationError{Field: "date", Err: core.ErrMissingField}
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, &core.ValidationError{Field: "date", Err: err}
	}
	return d, nil
}

func stringField(name string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", errInvalidBody, name)
	}
	return strings.TrimSpace(s), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// sanitizeNote trims the note; blank notes are stored as absent.
func sanitizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	s := sanitizeInput(*note)
	if s == "" {
		return nil
	}
	return &s
}

// sanitizeInput removes control characters except tab, newline and carriage
// return, and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
