package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"household/internal/amqp"
	"household/internal/core"
	"household/internal/metrics"
	"household/internal/sheets"
	"household/internal/storage"
)

// ExpenseSource is the read side of storage the worker needs.
type ExpenseSource interface {
	GetExpense(ctx context.Context, id string) (core.Expense, error)
	ListAllGroups(ctx context.Context) ([]core.Group, error)
	ListExpenses(ctx context.Context, f storage.ExpenseFilter) ([]core.Expense, error)
}

// MirrorWorker applies expense events to a spreadsheet mirror.
type MirrorWorker struct {
	store   ExpenseSource
	mirror  sheets.ExpenseMirror
	metrics *metrics.Metrics
}

func NewMirrorWorker(store ExpenseSource, mirror sheets.ExpenseMirror, m *metrics.Metrics) *MirrorWorker {
	return &MirrorWorker{store: store, mirror: mirror, metrics: m}
}

// HandleEvent processes a single expense event from AMQP. Returning an error
// requeues the message.
func (w *MirrorWorker) HandleEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	slog.InfoContext(ctx, "Processing expense event",
		"type", ev.Type,
		"id", ev.ID,
		"group_id", ev.GroupID)

	err := w.apply(ctx, ev)
	w.observe(ev.Type, err)
	return err
}

func (w *MirrorWorker) apply(ctx context.Context, ev *amqp.ExpenseEvent) error {
	if ev.Type == amqp.ExpenseDeleted {
		if err := w.mirror.DeleteExpense(ctx, ev.ID); err != nil {
			return fmt.Errorf("delete mirrored expense: %w", err)
		}
		return nil
	}

	expense, err := w.store.GetExpense(ctx, ev.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted before we got here; the delete event cleans the mirror.
		slog.InfoContext(ctx, "Expense no longer exists, skipping", "id", ev.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get expense from storage: %w", err)
	}

	if err := w.mirror.UpsertExpense(ctx, expense); err != nil {
		return fmt.Errorf("upsert mirrored expense: %w", err)
	}
	return nil
}

func (w *MirrorWorker) observe(t amqp.EventType, err error) {
	if w.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	w.metrics.EventsProcessed.WithLabelValues(string(t), outcome).Inc()
}

// Resync makes the mirror match storage: every stored expense, demo
// household included, is upserted and rows whose expense no longer exists
// are removed. It recovers from events lost while the worker was down.
func (w *MirrorWorker) Resync(ctx context.Context) error {
	groups, err := w.store.ListAllGroups(ctx)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}

	stored := make(map[string]struct{})
	synced, failed := 0, 0
	for _, g := range groups {
		expenses, err := w.store.ListExpenses(ctx, storage.ExpenseFilter{GroupID: g.ID, Ascending: true})
		if err != nil {
			return fmt.Errorf("list expenses for group %s: %w", g.ID, err)
		}
		for _, e := range expenses {
			if err := ctx.Err(); err != nil {
				return err
			}
			stored[e.ID] = struct{}{}
			if err := w.mirror.UpsertExpense(ctx, e); err != nil {
				slog.ErrorContext(ctx, "Failed to resync expense", "id", e.ID, "error", err)
				failed++
				continue
			}
			synced++
		}
	}

	mirrored, err := w.mirror.ExpenseIDs(ctx)
	if err != nil {
		return fmt.Errorf("list mirrored expenses: %w", err)
	}
	pruned := 0
	for _, id := range mirrored {
		if _, ok := stored[id]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.mirror.DeleteExpense(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to prune mirrored expense", "id", id, "error", err)
			failed++
			continue
		}
		pruned++
	}

	slog.InfoContext(ctx, "Resync completed",
		"groups", len(groups),
		"synced", synced,
		"pruned", pruned,
		"errors", failed)
	return nil
}
