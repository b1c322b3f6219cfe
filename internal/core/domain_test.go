package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-15", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-1-15", false},
		{"15/01/2024", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || d.String() != tc.in {
				t.Fatalf("%q expected ok, got %v (err=%v)", tc.in, d, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2024-03-05"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Date.Equal(NewDate(2024, 3, 5).Time) {
		t.Fatalf("unexpected date %v", payload.Date)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"date":"2024-03-05"}` {
		t.Fatalf("unexpected json %s", out)
	}
	if err := json.Unmarshal([]byte(`{"date":"2024-3-5"}`), &payload); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestGroupPair(t *testing.T) {
	g := Group{Persons: []Person{{ID: "a"}, {ID: "b"}}}
	p1, p2, err := g.Pair()
	if err != nil || p1.ID != "a" || p2.ID != "b" {
		t.Fatalf("unexpected pair %v %v (err=%v)", p1, p2, err)
	}
	bads := []Group{
		{},
		{Persons: []Person{{ID: "a"}}},
		{Persons: []Person{{ID: "a"}, {ID: "a"}}},
		{Persons: []Person{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
	}
	for i, g := range bads {
		if _, _, err := g.Pair(); !errors.Is(err, ErrInvalidGroupShape) {
			t.Fatalf("case %d expected ErrInvalidGroupShape, got %v", i, err)
		}
	}
}

func TestNewGroupValidate(t *testing.T) {
	good := NewGroup{Name: "Home", Person1Name: "Ana", Person2Name: "Luis"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []NewGroup{
		{Name: "", Person1Name: "Ana", Person2Name: "Luis"},
		{Name: "Home", Person1Name: " ", Person2Name: "Luis"},
		{Name: "Home", Person1Name: "Ana", Person2Name: ""},
		{Name: strings.Repeat("x", 201), Person1Name: "Ana", Person2Name: "Luis"},
		{Name: "Home", Person1Name: strings.Repeat("x", 101), Person2Name: "Luis"},
		{ID: "not-a-uuid", Name: "Home", Person1Name: "Ana", Person2Name: "Luis"},
	}
	for i, g := range bads {
		err := g.Validate()
		if err == nil || !IsValidation(err) {
			t.Fatalf("case %d expected validation error, got %v", i, err)
		}
	}
}

func TestNewExpenseValidate(t *testing.T) {
	note := strings.Repeat("n", 500)
	good := NewExpense{GroupID: "g", Amount: 10, SubCategoryID: "s", PaidBy: "p", Date: NewDate(2024, 1, 1), Note: &note}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	long := strings.Repeat("n", 501)
	cases := []struct {
		e    NewExpense
		want error
	}{
		{NewExpense{GroupID: "g", Amount: 0, SubCategoryID: "s", PaidBy: "p", Date: NewDate(2024, 1, 1)}, ErrInvalidAmount},
		{NewExpense{GroupID: "g", Amount: -3, SubCategoryID: "s", PaidBy: "p", Date: NewDate(2024, 1, 1)}, ErrInvalidAmount},
		{NewExpense{GroupID: "g", Amount: 1, SubCategoryID: "", PaidBy: "p", Date: NewDate(2024, 1, 1)}, ErrMissingField},
		{NewExpense{GroupID: "g", Amount: 1, SubCategoryID: "s", PaidBy: "", Date: NewDate(2024, 1, 1)}, ErrMissingField},
		{NewExpense{GroupID: "g", Amount: 1, SubCategoryID: "s", PaidBy: "p"}, ErrInvalidDate},
		{NewExpense{GroupID: "g", Amount: 1, SubCategoryID: "s", PaidBy: "p", Date: NewDate(2024, 1, 1), Note: &long}, ErrNoteTooLong},
	}
	for i, tc := range cases {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestExpenseUpdateApply(t *testing.T) {
	note := "old"
	e := Expense{ID: "x", Amount: 10, SubCategoryID: "s1", PaidBy: "p1", Date: NewDate(2024, 1, 1), Note: &note}

	amount := 25.5
	u := ExpenseUpdate{Amount: &amount}
	got := u.Apply(e)
	if got.Amount != 25.5 || got.SubCategoryID != "s1" || got.NoteText() != "old" {
		t.Fatalf("unexpected partial apply %+v", got)
	}

	cleared := ExpenseUpdate{Note: OptionalString{Set: true}}
	if got := cleared.Apply(e); got.Note != nil {
		t.Fatalf("expected note cleared, got %q", *got.Note)
	}
	if e.Note == nil {
		t.Fatalf("apply must not mutate the original")
	}

	bad := -1.0
	if err := (ExpenseUpdate{Amount: &bad}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDefaultTaxonomy(t *testing.T) {
	if len(DefaultTaxonomy) != 10 {
		t.Fatalf("expected 10 main categories, got %d", len(DefaultTaxonomy))
	}
	for _, c := range DefaultTaxonomy {
		if c.Main == "" || len(c.Subs) == 0 {
			t.Fatalf("incomplete template entry %+v", c)
		}
	}
	if err := DemoGroup().Validate(); err != nil {
		t.Fatalf("demo group must validate: %v", err)
	}
}
