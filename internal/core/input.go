package core

import (
	"strings"

	"github.com/google/uuid"
)

type (
	// NewGroup carries the fields needed to create a group and its two persons.
	// ID is optional; when empty a fresh UUID is assigned by storage.
	NewGroup struct {
		ID          string
		Name        string
		Person1Name string
		Person2Name string
		IsDemo      bool
	}

	NewExpense struct {
		GroupID       string
		Amount        float64
		SubCategoryID string
		PaidBy        string
		Date          Date
		Note          *string
	}

	// ExpenseUpdate is a partial update. Nil fields are left untouched.
	// Note distinguishes "absent" (Set=false) from "cleared" (Set=true, Value=nil).
	ExpenseUpdate struct {
		Amount        *float64
		SubCategoryID *string
		PaidBy        *string
		Date          *Date
		Note          OptionalString
	}

	OptionalString struct {
		Set   bool
		Value *string
	}
)

func (g *NewGroup) Normalize() {
	g.ID = strings.TrimSpace(g.ID)
	g.Name = strings.TrimSpace(g.Name)
	g.Person1Name = strings.TrimSpace(g.Person1Name)
	g.Person2Name = strings.TrimSpace(g.Person2Name)
}

func (g NewGroup) Validate() error {
	if g.ID != "" {
		if _, err := uuid.Parse(g.ID); err != nil {
			return invalid("id", ErrInvalidID)
		}
	}
	if err := validateName("name", g.Name, MaxGroupNameLength); err != nil {
		return err
	}
	if err := validateName("person1Name", g.Person1Name, MaxPersonNameLength); err != nil {
		return err
	}
	return validateName("person2Name", g.Person2Name, MaxPersonNameLength)
}

func (e NewExpense) Validate() error {
	if err := validateAmount(e.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(e.SubCategoryID) == "" {
		return invalid("subCategoryId", ErrMissingField)
	}
	if strings.TrimSpace(e.PaidBy) == "" {
		return invalid("paidBy", ErrMissingField)
	}
	if strings.TrimSpace(e.GroupID) == "" {
		return invalid("groupId", ErrMissingField)
	}
	if e.Date.IsZero() {
		return invalid("date", ErrInvalidDate)
	}
	return validateNote(e.Note)
}

func (u ExpenseUpdate) Validate() error {
	if u.Amount != nil {
		if err := validateAmount(*u.Amount); err != nil {
			return err
		}
	}
	if u.SubCategoryID != nil && strings.TrimSpace(*u.SubCategoryID) == "" {
		return invalid("subCategoryId", ErrMissingField)
	}
	if u.PaidBy != nil && strings.TrimSpace(*u.PaidBy) == "" {
		return invalid("paidBy", ErrMissingField)
	}
	if u.Date != nil && u.Date.IsZero() {
		return invalid("date", ErrInvalidDate)
	}
	if u.Note.Set {
		return validateNote(u.Note.Value)
	}
	return nil
}

// Apply returns a copy of e with the update applied.
func (u ExpenseUpdate) Apply(e Expense) Expense {
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.SubCategoryID != nil {
		e.SubCategoryID = *u.SubCategoryID
	}
	if u.PaidBy != nil {
		e.PaidBy = *u.PaidBy
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Note.Set {
		e.Note = u.Note.Value
	}
	return e
}
