package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"household/internal/calculator"
	"household/internal/core"
	"household/internal/storage"
)

type (
	PersonBalance struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Balance float64 `json:"balance"`
	}

	BalanceReport struct {
		Person1 PersonBalance `json:"person1"`
		Person2 PersonBalance `json:"person2"`
	}

	SummaryReport struct {
		calculator.Summary
		Expenses []core.Expense `json:"expenses"`
	}

	ExportResult struct {
		Filename string
		Content  string
		Rows     int
	}
)

// ReportService feeds stored expenses through the pure engines.
type ReportService struct {
	repo Repository
}

func NewReportService(repo Repository) *ReportService {
	return &ReportService{repo: repo}
}

// load fetches the group and its expenses for the period concurrently and
// checks the group shape.
func (s *ReportService) load(ctx context.Context, groupID string, p calculator.Period) (core.Person, core.Person, []core.Expense, error) {
	var (
		group    core.Group
		expenses []core.Expense
	)
	filter := storage.ExpenseFilter{GroupID: groupID, Ascending: true}
	filter.From, filter.To, _ = p.Range()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		group, err = s.repo.GetGroup(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.repo.ListExpenses(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Person{}, core.Person{}, nil, err
	}

	p1, p2, err := group.Pair()
	if err != nil {
		return core.Person{}, core.Person{}, nil, err
	}
	return p1, p2, expenses, nil
}

// Balances computes the all-time 50/50 balances of the group.
func (s *ReportService) Balances(ctx context.Context, groupID string) (BalanceReport, error) {
	p1, p2, expenses, err := s.load(ctx, groupID, calculator.Period{All: true})
	if err != nil {
		return BalanceReport{}, err
	}
	b := calculator.ComputeBalances(expenses, p1.ID, p2.ID)
	return BalanceReport{
		Person1: PersonBalance{ID: p1.ID, Name: p1.Name, Balance: b.Person1},
		Person2: PersonBalance{ID: p2.ID, Name: p2.Name, Balance: b.Person2},
	}, nil
}

// Summary aggregates the month named by monthToken, which is required.
func (s *ReportService) Summary(ctx context.Context, groupID, monthToken string) (SummaryReport, error) {
	p, err := calculator.ParsePeriod(monthToken)
	if err != nil {
		return SummaryReport{}, err
	}
	p1, p2, expenses, err := s.load(ctx, groupID, p)
	if err != nil {
		return SummaryReport{}, err
	}
	return SummaryReport{
		Summary:  calculator.ComputeSummary(expenses, p1, p2, p.Label()),
		Expenses: expenses,
	}, nil
}

// Export renders the period as CSV. An empty token exports everything.
func (s *ReportService) Export(ctx context.Context, groupID, monthToken string) (ExportResult, error) {
	if monthToken == "" {
		monthToken = calculator.AllTime
	}
	p, err := calculator.ParsePeriod(monthToken)
	if err != nil {
		return ExportResult{}, err
	}
	_, _, expenses, err := s.load(ctx, groupID, p)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{
		Filename: calculator.ExportFilename(p),
		Content:  calculator.FormatCSV(expenses),
		Rows:     len(expenses),
	}, nil
}
