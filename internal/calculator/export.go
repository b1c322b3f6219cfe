package calculator

import (
	"sort"
	"strings"

	"household/internal/core"
)

// CSVHeader is written unquoted as the first line of every export.
var CSVHeader = []string{"Date", "Main Category", "Subcategory", "Amount", "Paid By", "Note"}

// FormatCSV renders expenses ascending by date, one row per expense.
//
// Every cell is wrapped in double quotes and embedded quotes are NOT
// escaped, so a note containing `"` yields a row that strict CSV readers
// reject. Lines are joined by "\n" without a trailing newline.
func FormatCSV(expenses []core.Expense) string {
	sorted := make([]core.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var b strings.Builder
	b.WriteString(strings.Join(CSVHeader, ","))
	for _, e := range sorted {
		b.WriteByte('\n')
		writeRow(&b, []string{
			e.Date.String(),
			e.MainCategoryName(),
			e.SubCategoryName(),
			core.FormatAmount(e.Amount),
			e.PayerName(),
			e.NoteText(),
		})
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(c)
		b.WriteByte('"')
	}
}

// ExportFilename is the attachment name suggested for a period export.
func ExportFilename(p Period) string {
	return "expenses-" + p.Label() + ".csv"
}
