package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxGroupNameLength  = 200
	MaxPersonNameLength = 100
	MaxNoteLength       = 500
)

type (
	// Group is a household of exactly two people sharing expenses.
	Group struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		IsDemo    bool      `json:"isDemo"`
		CreatedAt time.Time `json:"createdAt"`
		Persons   []Person  `json:"persons"`
	}

	Person struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		GroupID string `json:"groupId"`
	}

	MainCategory struct {
		ID            string        `json:"id"`
		Name          string        `json:"name"`
		GroupID       string        `json:"groupId"`
		SubCategories []SubCategory `json:"subCategories,omitempty"`
	}

	SubCategory struct {
		ID             string        `json:"id"`
		Name           string        `json:"name"`
		GroupID        string        `json:"groupId"`
		MainCategoryID string        `json:"mainCategoryId"`
		MainCategory   *MainCategory `json:"mainCategory,omitempty"`
	}

	// Expense is a single payment made by one person of the group.
	// SubCategory and Person are populated when loaded from storage.
	Expense struct {
		ID            string       `json:"id"`
		Amount        float64      `json:"amount"`
		SubCategoryID string       `json:"subCategoryId"`
		PaidBy        string       `json:"paidBy"`
		GroupID       string       `json:"groupId"`
		Date          Date         `json:"date"`
		Note          *string      `json:"note"`
		CreatedAt     time.Time    `json:"createdAt"`
		UpdatedAt     time.Time    `json:"updatedAt"`
		SubCategory   *SubCategory `json:"subCategory,omitempty"`
		Person        *Person      `json:"person,omitempty"`
	}
)

var (
	ErrInvalidGroupShape  = errors.New("group must have exactly 2 persons")
	ErrInvalidMonthFormat = errors.New("invalid month format, expected YYYY-MM or all")
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidID          = errors.New("invalid id")
	ErrEmptyName          = errors.New("name is required")
	ErrNameTooLong        = errors.New("name too long")
	ErrNoteTooLong        = errors.New("note too long (max 500 characters)")
	ErrMissingField       = errors.New("missing required field")
)

// ValidationError reports which input field was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err was produced by input validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Pair returns the two persons of the group in creation order.
func (g Group) Pair() (Person, Person, error) {
	if len(g.Persons) != 2 || g.Persons[0].ID == g.Persons[1].ID {
		return Person{}, Person{}, ErrInvalidGroupShape
	}
	return g.Persons[0], g.Persons[1], nil
}

// HasPerson reports whether personID belongs to the group.
func (g Group) HasPerson(personID string) bool {
	for _, p := range g.Persons {
		if p.ID == personID {
			return true
		}
	}
	return false
}

func (e Expense) MainCategoryName() string {
	if e.SubCategory == nil || e.SubCategory.MainCategory == nil {
		return ""
	}
	return e.SubCategory.MainCategory.Name
}

func (e Expense) SubCategoryName() string {
	if e.SubCategory == nil {
		return ""
	}
	return e.SubCategory.Name
}

func (e Expense) PayerName() string {
	if e.Person == nil {
		return ""
	}
	return e.Person.Name
}

// NoteText returns the note or the empty string when absent.
func (e Expense) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

func validateName(field, name string, max int) error {
	if strings.TrimSpace(name) == "" {
		return invalid(field, ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > max {
		return invalid(field, fmt.Errorf("%w (max %d characters)", ErrNameTooLong, max))
	}
	return nil
}

func validateNote(note *string) error {
	if note != nil && utf8.RuneCountInString(*note) > MaxNoteLength {
		return invalid("note", ErrNoteTooLong)
	}
	return nil
}

func validateAmount(amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return invalid("amount", ErrInvalidAmount)
	}
	return nil
}
