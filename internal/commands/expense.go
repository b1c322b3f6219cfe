package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"household/internal/backend"
	"household/internal/core"
)

func newExpenseCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record expenses",
	}
	cmd.AddCommand(newExpenseAddCommand(rt))
	return cmd
}

type expenseAddFlags struct {
	amount   string
	category string
	payer    string
	date     string
	note     string
}

func newExpenseAddCommand(rt *runtime) *cobra.Command {
	var f expenseAddFlags
	cmd := &cobra.Command{
		Use:   "add <groupId>",
		Short: "Record an expense, matching category and payer names loosely",
		Long: `Record an expense. --category takes a subcategory name, or
"Main/Sub" when the name exists under several main categories. Small typos
in category and payer names are corrected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			in, err := buildExpense(cmd.Context(), app, args[0], f, time.Now())
			if err != nil {
				return err
			}
			e, err := app.Expenses.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded %s %s / %s paid by %s on %s (%s)\n",
				core.FormatAmount(e.Amount), e.MainCategoryName(), e.SubCategoryName(),
				e.PayerName(), e.Date, e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.amount, "amount", "", "amount, e.g. 12.50 or 12,50 (required)")
	cmd.Flags().StringVar(&f.category, "category", "", `subcategory name or "Main/Sub" (required)`)
	cmd.Flags().StringVar(&f.payer, "payer", "", "name of the person who paid (required)")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.note, "note", "", "optional note")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("payer")
	return cmd
}

func buildExpense(ctx context.Context, app *backend.App, groupID string, f expenseAddFlags, now time.Time) (core.NewExpense, error) {
	amount, err := core.ParseAmount(f.amount)
	if err != nil {
		return core.NewExpense{}, err
	}

	date := core.NewDate(now.Year(), int(now.Month()), now.Day())
	if f.date != "" {
		if date, err = core.ParseDate(f.date); err != nil {
			return core.NewExpense{}, fmt.Errorf("date %q: %w", f.date, err)
		}
	}

	g, err := app.Groups.Get(ctx, groupID)
	if err != nil {
		return core.NewExpense{}, err
	}
	names := make([]string, len(g.Persons))
	for i, p := range g.Persons {
		names[i] = p.Name
	}
	pi, err := resolveName("payer", f.payer, names, nil)
	if err != nil {
		return core.NewExpense{}, err
	}

	subs, err := app.Groups.SubCategories(ctx, groupID)
	if err != nil {
		return core.NewExpense{}, err
	}
	qualified := strings.Contains(f.category, "/")
	keys := make([]string, len(subs))
	labels := make([]string, len(subs))
	for i, s := range subs {
		labels[i] = s.MainCategory.Name + "/" + s.Name
		keys[i] = s.Name
		if qualified {
			keys[i] = labels[i]
		}
	}
	si, err := resolveName("category", f.category, keys, labels)
	if err != nil {
		return core.NewExpense{}, err
	}

	in := core.NewExpense{
		GroupID:       g.ID,
		Amount:        amount,
		SubCategoryID: subs[si].ID,
		PaidBy:        g.Persons[pi].ID,
		Date:          date,
	}
	if note := strings.TrimSpace(f.note); note != "" {
		in.Note = &note
	}
	return in, in.Validate()
}
