package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"household/internal/core"
)

func newBalancesCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "balances <groupId>",
		Short: "Show all-time balances of a household",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			b, err := app.Reports.Balances(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "%s\t%s\t\n", b.Person1.Name, core.FormatAmount(b.Person1.Balance))
			fmt.Fprintf(tw, "%s\t%s\t\n", b.Person2.Name, core.FormatAmount(b.Person2.Balance))
			return tw.Flush()
		},
	}
}

func newSummaryCommand(rt *runtime) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "summary <groupId>",
		Short: "Summarize a month of spending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			s, err := app.Reports.Summary(cmd.Context(), args[0], month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Month: %s\n", s.Month)
			fmt.Fprintf(out, "Total spending: %s\n\n", core.FormatAmount(s.TotalSpending))

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PERSON\tPAID\tBALANCE")
			for _, p := range []struct {
				name      string
				paid, bal float64
			}{
				{s.Person1.Name, s.Person1.TotalPaid, s.Person1.Balance},
				{s.Person2.Name, s.Person2.TotalPaid, s.Person2.Balance},
			} {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.name, core.FormatAmount(p.paid), core.FormatAmount(p.bal))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(s.MainCategoryTotals) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tTOTAL")
			for _, c := range s.MainCategoryTotals {
				fmt.Fprintf(tw, "%s\t%s\n", c.Name, core.FormatAmount(c.Total))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&month, "month", "", `month as YYYY-MM or "all" (required)`)
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func newExportCommand(rt *runtime) *cobra.Command {
	var month, out string
	cmd := &cobra.Command{
		Use:   "export <groupId>",
		Short: "Export expenses as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			res, err := app.Reports.Export(cmd.Context(), args[0], month)
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), res.Content+"\n")
				return err
			}
			if out == "" {
				out = res.Filename
			}
			if err := os.WriteFile(out, []byte(res.Content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d expenses to %s\n", res.Rows, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "all", `month as YYYY-MM or "all"`)
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file, "-" for stdout (default expenses-<month>.csv)`)
	return cmd
}
