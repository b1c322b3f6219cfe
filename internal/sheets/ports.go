package sheets

import (
	"context"

	"household/internal/core"
)

// Ports for outbound adapters.
type (
	// ExpenseMirror keeps a spreadsheet copy of the expense ledger, one row
	// per expense keyed by expense ID.
	ExpenseMirror interface {
		UpsertExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
		// ExpenseIDs lists the expense ID of every mirrored row.
		ExpenseIDs(ctx context.Context) ([]string, error)
	}
)

// Header is the first row of a mirror sheet.
var Header = []string{"Date", "Group", "Main Category", "Subcategory", "Amount", "Paid By", "Note", "ID"}

// IDColumn is the zero-based column holding the expense ID.
const IDColumn = 7

// Row renders an expense in Header column order.
func Row(e core.Expense) []string {
	return []string{
		e.Date.String(),
		e.GroupID,
		e.MainCategoryName(),
		e.SubCategoryName(),
		core.FormatAmount(e.Amount),
		e.PayerName(),
		e.NoteText(),
		e.ID,
	}
}
