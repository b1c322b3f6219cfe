package services

import (
	"context"
	"fmt"

	"household/internal/amqp"
	"household/internal/calculator"
	"household/internal/core"
	"household/internal/metrics"
	"household/internal/storage"
)

// ExpenseService orchestrates expense writes across SQLite and AMQP
type ExpenseService struct {
	repo    Repository
	events  eventEmitter
	metrics *metrics.Metrics
}

func NewExpenseService(repo Repository, publisher EventPublisher, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{
		repo:    repo,
		events:  eventEmitter{publisher: publisher, metrics: m},
		metrics: m,
	}
}

// Create saves an expense and announces it.
func (s *ExpenseService) Create(ctx context.Context, in core.NewExpense) (core.Expense, error) {
	if err := in.Validate(); err != nil {
		return core.Expense{}, err
	}
	e, err := s.repo.CreateExpense(ctx, in)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ExpensesRecorded.Inc()
	}
	s.events.publish(ctx, amqp.ExpenseCreated, e.ID, e.GroupID)
	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, u core.ExpenseUpdate) (core.Expense, error) {
	if err := u.Validate(); err != nil {
		return core.Expense{}, err
	}
	e, err := s.repo.UpdateExpense(ctx, id, u)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	s.events.publish(ctx, amqp.ExpenseUpdated, e.ID, e.GroupID)
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	e, err := s.repo.DeleteExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.events.publish(ctx, amqp.ExpenseDeleted, e.ID, e.GroupID)
	return nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// List returns the group's expenses newest first, optionally restricted to
// the month named by monthToken ("" or "all" for everything).
func (s *ExpenseService) List(ctx context.Context, groupID, monthToken string) ([]core.Expense, error) {
	if _, err := s.repo.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	filter := storage.ExpenseFilter{GroupID: groupID}
	if monthToken != "" {
		p, err := calculator.ParsePeriod(monthToken)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To, _ = p.Range()
	}
	return s.repo.ListExpenses(ctx, filter)
}
