package services

import (
	"context"

	"household/internal/amqp"
	"household/internal/core"
	"household/internal/storage"
)

// Repository is the storage surface the services depend on.
type Repository interface {
	CreateGroup(ctx context.Context, in core.NewGroup) (core.Group, error)
	GetGroup(ctx context.Context, id string) (core.Group, error)
	ListGroups(ctx context.Context) ([]core.Group, error)
	DeleteGroup(ctx context.Context, id string) error
	EnsureDemoGroup(ctx context.Context) (core.Group, error)

	SeedCategories(ctx context.Context, groupID string, force bool) (bool, error)
	ListMainCategories(ctx context.Context, groupID string) ([]core.MainCategory, error)
	ListSubCategories(ctx context.Context, groupID string) ([]core.SubCategory, error)

	CreateExpense(ctx context.Context, in core.NewExpense) (core.Expense, error)
	GetExpense(ctx context.Context, id string) (core.Expense, error)
	ListExpenses(ctx context.Context, f storage.ExpenseFilter) ([]core.Expense, error)
	UpdateExpense(ctx context.Context, id string, u core.ExpenseUpdate) (core.Expense, error)
	DeleteExpense(ctx context.Context, id string) (core.Expense, error)
}

// EventPublisher announces expense changes. A nil publisher disables events.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, ev amqp.ExpenseEvent) error
}

var _ Repository = (*storage.SQLiteRepository)(nil)
var _ EventPublisher = (*amqp.Client)(nil)
