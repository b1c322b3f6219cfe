package calculator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"household/internal/core"
)

func TestFormatCSV_Empty(t *testing.T) {
	assert.Equal(t, "Date,Main Category,Subcategory,Amount,Paid By,Note", FormatCSV(nil))
}

func TestFormatCSV_Row(t *testing.T) {
	note := "weekly shop"
	e := expense("e1", 12.5, alice, core.NewDate(2024, 1, 15), "Alimentos", "Mercado")
	e.Note = &note

	out := FormatCSV([]core.Expense{e})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, `"2024-01-15","Alimentos","Mercado","12.50","Alice","weekly shop"`, lines[1])
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestFormatCSV_SortsAscendingByDate(t *testing.T) {
	expenses := []core.Expense{
		expense("late", 3, bob, core.NewDate(2024, 1, 20), "Other", "Miscellaneous"),
		expense("early", 1, alice, core.NewDate(2024, 1, 2), "Other", "Miscellaneous"),
		expense("mid", 2, alice, core.NewDate(2024, 1, 10), "Other", "Miscellaneous"),
	}

	lines := strings.Split(FormatCSV(expenses), "\n")

	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], `"2024-01-02"`))
	assert.True(t, strings.HasPrefix(lines[2], `"2024-01-10"`))
	assert.True(t, strings.HasPrefix(lines[3], `"2024-01-20"`))
	// input untouched
	assert.Equal(t, "late", expenses[0].ID)
}

func TestFormatCSV_MissingNoteIsEmptyCell(t *testing.T) {
	e := expense("e1", 7, bob, core.NewDate(2024, 5, 1), "Mascotas", "Alimento")

	lines := strings.Split(FormatCSV([]core.Expense{e}), "\n")

	assert.Equal(t, `"2024-05-01","Mascotas","Alimento","7.00","Bob",""`, lines[1])
}

func TestFormatCSV_QuotesAreNotEscaped(t *testing.T) {
	note := `say "hi"`
	e := expense("e1", 1, alice, core.NewDate(2024, 6, 1), "Other", "Miscellaneous")
	e.Note = &note

	lines := strings.Split(FormatCSV([]core.Expense{e}), "\n")

	assert.True(t, strings.HasSuffix(lines[1], `,"say "hi""`))
}
