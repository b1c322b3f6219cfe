package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"household/internal/core"
)

// ExpenseFilter selects a group's expenses. Zero From/To leave that side of
// the date range open.
type ExpenseFilter struct {
	GroupID   string
	From      core.Date
	To        core.Date
	Ascending bool
}

const expenseSelect = `
	SELECT e.id, e.amount, e.sub_category_id, e.paid_by, e.group_id, e.date, e.note,
	       e.created_at, e.updated_at, s.name, s.main_category_id, m.name, p.name
	FROM expenses e
	JOIN sub_categories s ON s.id = e.sub_category_id
	JOIN main_categories m ON m.id = s.main_category_id
	JOIN persons p ON p.id = e.paid_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e                    core.Expense
		date                 string
		note                 sql.NullString
		createdAt, updatedAt int64
		subName, mainID      string
		mainName, payerName  string
	)
	if err := row.Scan(&e.ID, &e.Amount, &e.SubCategoryID, &e.PaidBy, &e.GroupID, &date, &note,
		&createdAt, &updatedAt, &subName, &mainID, &mainName, &payerName); err != nil {
		return core.Expense{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	e.Date = d
	e.Note = stringPtr(note)
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	e.SubCategory = &core.SubCategory{
		ID:             e.SubCategoryID,
		Name:           subName,
		GroupID:        e.GroupID,
		MainCategoryID: mainID,
		MainCategory:   &core.MainCategory{ID: mainID, Name: mainName, GroupID: e.GroupID},
	}
	e.Person = &core.Person{ID: e.PaidBy, Name: payerName, GroupID: e.GroupID}
	return e, nil
}

// CreateExpense stores a new expense after checking that the payer and the
// subcategory belong to the expense's group.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, in core.NewExpense) (core.Expense, error) {
	id := uuid.NewString()
	now := r.now()

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := groupExists(ctx, tx, in.GroupID); err != nil {
			return err
		}
		if err := checkReferences(ctx, tx, in.GroupID, in.SubCategoryID, in.PaidBy); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (id, group_id, sub_category_id, paid_by, amount, date, note, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, in.GroupID, in.SubCategoryID, in.PaidBy, in.Amount, in.Date.String(),
			nullString(in.Note), toMillis(now), toMillis(now),
		); err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Expense{}, err
	}
	return r.GetExpense(ctx, id)
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx, expenseSelect+" WHERE e.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// ListExpenses returns the group's expenses ordered by date, newest first
// unless the filter asks for ascending order.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, f ExpenseFilter) ([]core.Expense, error) {
	var (
		where = []string{"e.group_id = ?"}
		args  = []any{f.GroupID}
	)
	if !f.From.IsZero() {
		where = append(where, "e.date >= ?")
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		where = append(where, "e.date <= ?")
		args = append(args, f.To.String())
	}
	order := "DESC"
	if f.Ascending {
		order = "ASC"
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY e.date %s, e.created_at %s, e.rowid %s",
		expenseSelect, strings.Join(where, " AND "), order, order, order)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := make([]core.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// UpdateExpense applies a partial update. References are re-checked against
// the expense's group.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id string, u core.ExpenseUpdate) (core.Expense, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		current, err := scanExpense(tx.QueryRowContext(ctx, expenseSelect+" WHERE e.id = ?", id))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("expense %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get expense: %w", err)
		}

		next := u.Apply(current)
		if err := checkReferences(ctx, tx, next.GroupID, next.SubCategoryID, next.PaidBy); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE expenses
			SET sub_category_id = ?, paid_by = ?, amount = ?, date = ?, note = ?, updated_at = ?
			WHERE id = ?`,
			next.SubCategoryID, next.PaidBy, next.Amount, next.Date.String(),
			nullString(next.Note), toMillis(r.now()), id,
		); err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Expense{}, err
	}
	return r.GetExpense(ctx, id)
}

// DeleteExpense removes an expense and returns it as it was before deletion.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) (core.Expense, error) {
	var deleted core.Expense
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		e, err := scanExpense(tx.QueryRowContext(ctx, expenseSelect+" WHERE e.id = ?", id))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("expense %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get expense: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		deleted = e
		return nil
	})
	if err != nil {
		return core.Expense{}, err
	}
	return deleted, nil
}

func checkReferences(ctx context.Context, tx *sql.Tx, groupID, subCategoryID, personID string) error {
	var owner string
	err := tx.QueryRowContext(ctx, "SELECT group_id FROM sub_categories WHERE id = ?", subCategoryID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != groupID) {
		return fmt.Errorf("subCategoryId %s: %w", subCategoryID, ErrForeignKey)
	}
	if err != nil {
		return fmt.Errorf("check subcategory: %w", err)
	}

	err = tx.QueryRowContext(ctx, "SELECT group_id FROM persons WHERE id = ?", personID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != groupID) {
		return fmt.Errorf("paidBy %s: %w", personID, ErrForeignKey)
	}
	if err != nil {
		return fmt.Errorf("check payer: %w", err)
	}
	return nil
}
