package calculator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"household/internal/core"
)

// AllTime is the sentinel token selecting every expense.
const AllTime = "all"

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Period is either a calendar month or the whole history.
type Period struct {
	All   bool
	Year  int
	Month time.Month
}

// ParsePeriod accepts "YYYY-MM" or "all" (case-insensitive).
func ParsePeriod(token string) (Period, error) {
	t := strings.TrimSpace(token)
	if strings.EqualFold(t, AllTime) {
		return Period{All: true}, nil
	}
	if !monthPattern.MatchString(t) {
		return Period{}, fmt.Errorf("%w: %q", core.ErrInvalidMonthFormat, token)
	}
	year, _ := strconv.Atoi(t[:4])
	month, _ := strconv.Atoi(t[5:])
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: %q", core.ErrInvalidMonthFormat, token)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// Label renders the period the way it is accepted by ParsePeriod.
func (p Period) Label() string {
	if p.All {
		return AllTime
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Range returns the inclusive first and last day of the month.
// ok is false for the all-time period.
func (p Period) Range() (first, last core.Date, ok bool) {
	if p.All {
		return core.Date{}, core.Date{}, false
	}
	first = core.NewDate(p.Year, int(p.Month), 1)
	// day 0 of the next month is the last day of this one
	last = core.NewDate(p.Year, int(p.Month)+1, 0)
	return first, last, true
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d core.Date) bool {
	first, last, ok := p.Range()
	if !ok {
		return true
	}
	return !d.Before(first) && !d.After(last)
}

// FilterByMonth keeps the expenses dated inside the month named by token.
// The "all" token returns the input unchanged.
func FilterByMonth(expenses []core.Expense, token string) ([]core.Expense, error) {
	p, err := ParsePeriod(token)
	if err != nil {
		return nil, err
	}
	if p.All {
		return expenses, nil
	}
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if p.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}
