package main

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"MoviesETL/internal/app"
	"MoviesETL/internal/domain"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run extract, transform, load and report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(func(a *app.Application) error {
				summary, err := a.Run(cmd.Context(), time.Now())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Raw data:   %s (%d ids, %d failed)\n",
					summary.Extract.CSVPath, summary.Extract.IDs, summary.Extract.Failed)
				fmt.Fprintf(out, "Loaded:     %d rows (%d rejected, %d dropped)\n",
					len(summary.Transform.Movies), len(summary.Transform.Rejected), summary.Transform.Dropped)
				fmt.Fprintf(out, "Report:     %s\n", summary.Report.Artifacts.Index)
				fmt.Fprintln(out, yearlyWinnersTable(summary.Report.Top))
				return nil
			})
		},
	}
}

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Fetch top rated movies and write the raw CSV dump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(func(a *app.Application) error {
				result, err := a.Extract(cmd.Context(), time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.CSVPath)
				return nil
			})
		},
	}
}

func newTransformCommand(ctx *commandContext) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "transform <csv>",
		Short: "Clean and score a raw dump without touching the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(func(a *app.Application) error {
				result, err := a.Transform(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Kept %d rows (%d rejected, %d dropped)\n",
					len(result.Movies), len(result.Rejected), result.Dropped)
				fmt.Fprintln(out, scoredMoviesTable(byProfitability(result.Movies), top))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "Rows to print, 0 for all")
	return cmd
}

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render KPI charts from the loaded table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(func(a *app.Application) error {
				result, err := a.Report(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Report: %s\n", result.Artifacts.Index)
				fmt.Fprintln(out, yearlyWinnersTable(result.Top))
				return nil
			})
		},
	}
}

func byProfitability(movies []domain.ScoredMovie) []domain.ScoredMovie {
	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, func(a, b domain.ScoredMovie) int {
		return cmp.Compare(b.ProfitabilitySuccess, a.ProfitabilitySuccess)
	})
	return sorted
}
