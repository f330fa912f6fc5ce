package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/menucost/internal/costing"
	"github.com/Simplici0/menucost/internal/menu"
	"github.com/Simplici0/menucost/internal/migrations"
	"github.com/Simplici0/menucost/internal/seed"
	"github.com/Simplici0/menucost/internal/sheet"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := migrations.Up(a.db.DB, a.migrationsDir, a.log); err != nil {
				return err
			}
			version, err := migrations.Version(a.db.DB)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and its default categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := seed.Run(cmd.Context(), a.db, seed.Config{
				AdminEmail:    a.cfg.AdminEmail,
				AdminPassword: a.cfg.AdminPassword,
				Currency:      a.cfg.DefaultCurrency,
				TaxPercent:    a.cfg.DefaultTaxPercent,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seed finished: %d inserts\n", stats.Inserts)
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	var email, mode string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print per-category profitability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := a.userID(cmd.Context(), email)
			if err != nil {
				return err
			}
			snap, err := a.store.Snapshot(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printReport(cmd, email, menu.Build(snap, costing.ParseCostMode(mode)))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&mode, "mode", "unit_aware", "costing mode: unit_aware or legacy")
	return cmd
}

func printReport(cmd *cobra.Command, email string, r menu.Report) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Menú de %s (%s, impuesto %s%%, modo %s)\n\n", email, r.Currency, sheet.Percent(r.TaxPercent), r.Mode)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORÍA\tPLATOS\tMARGEN %\tCOSTO %\tVENTAS\tOBJETIVO")
	for _, c := range r.Categories {
		target := "-"
		if c.Target != nil {
			verdict := "no cumple"
			if c.MeetsTarget {
				verdict = "cumple"
			}
			target = fmt.Sprintf("%s (costo <= %s%%)", verdict, sheet.Percent(c.Target.CostPercent))
		}
		name := c.Name
		if c.Hidden {
			name += " (oculta)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			name,
			c.Stats.TotalDishes,
			sheet.Percent(c.Stats.AvgMargin),
			sheet.Percent(c.Stats.AvgCostPercent),
			sheet.Money(c.Stats.TotalRevenue).StringFixed(2),
			target,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.MostProfitable != nil {
		fmt.Fprintf(out, "\nMás rentable: %s (%s%%)\n", r.MostProfitable.Name, sheet.Percent(r.MostProfitable.Stats.AvgMargin))
	} else {
		fmt.Fprintln(out, "\nSin platos registrados.")
	}
	return nil
}

func newImportCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "import FILE.xlsx|FILE.csv",
		Short: "Upsert inventory prices from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.userID(cmd.Context(), email)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := sheet.Import(cmd.Context(), a.store, userID, sheet.FormatFor(args[0], ""), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d items, skipped %d blank rows\n", res.Imported, res.Skipped)
			for _, rowErr := range res.Errors {
				fmt.Fprintf(out, "row %d: %s\n", rowErr.Row, rowErr.Message)
			}
			a.log.Info("inventory imported", zap.String("file", args[0]), zap.Int("imported", res.Imported), zap.Int("rejected", len(res.Errors)))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var email, mode string
	cmd := &cobra.Command{
		Use:   "export FILE.xlsx",
		Short: "Write the menu report to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.userID(cmd.Context(), email)
			if err != nil {
				return err
			}
			snap, err := a.store.Snapshot(cmd.Context(), userID)
			if err != nil {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			if err := sheet.ExportMenu(f, menu.Build(snap, costing.ParseCostMode(mode))); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&mode, "mode", "unit_aware", "costing mode: unit_aware or legacy")
	return cmd
}
