package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psychodash/practice-dashboard/internal/app"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/export"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the demo data into empty collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if len(a.Seeded) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to seed")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded: %s\n", strings.Join(a.Seeded, ", "))
				return nil
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	var out, search, pathology string
	cmd := &cobra.Command{
		Use:       "export {patients|financials}",
		Short:     "Export a collection as CSV",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"patients", "financials"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				write := func(w io.Writer) error {
					if args[0] == "patients" {
						return exportPatients(ctx, a, w, ports.PatientFilter{Search: search, Pathology: pathology})
					}
					return exportFinancials(ctx, a, w)
				}
				if out == "" {
					return write(cmd.OutOrStdout())
				}
				return writeFile(out, write)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&search, "search", "", "Patients: name substring")
	cmd.Flags().StringVar(&pathology, "pathology", "", "Patients: exact pathology")
	return cmd
}

// writeFile creates path and runs write on it. A failed close is reported
// when write itself succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func exportPatients(ctx context.Context, a *app.App, w io.Writer, filter ports.PatientFilter) error {
	patients, err := a.Dashboard.ListPatients(ctx, filter)
	if err != nil {
		return err
	}
	return export.WritePatients(w, patients)
}

// exportFinancials is restricted to a logged-in admin, like the web view.
func exportFinancials(ctx context.Context, a *app.App, w io.Writer) error {
	if _, err := a.RequireAdmin(ctx); err != nil {
		return err
	}
	records, err := a.FinancialRepo.List(ctx)
	if err != nil {
		return err
	}
	return export.WriteFinancials(w, records)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return printStats(ctx, a, cmd.OutOrStdout())
			})
		},
	}
}

func printStats(ctx context.Context, a *app.App, w io.Writer) error {
	o, err := a.Dashboard.Overview(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Patients:          %d\n", o.Counts.TotalPatients)
	fmt.Fprintf(w, "Sessions today:    %d\n", o.Counts.SessionsToday)
	fmt.Fprintf(w, "Pending sessions:  %d\n", o.Counts.PendingSessions)
	fmt.Fprintf(w, "Status:            %d completed, %d scheduled, %d cancelled\n",
		o.Statuses.Completed, o.Statuses.Scheduled, o.Statuses.Cancelled)

	fmt.Fprintln(w, "\nLast 7 days:")
	for _, d := range o.Weekly {
		fmt.Fprintf(w, "  %s %s %s\n", d.Day, d.Date, strings.Repeat("#", d.Sessions))
	}

	user, err := a.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return nil
	}
	t, err := a.Dashboard.FinancialTotals(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nIncome:   %s\nExpenses: %s\nNet:      %s\n",
		ports.FormatAmount(t.Income), ports.FormatAmount(t.Expense), ports.FormatAmount(t.Net))
	return nil
}
