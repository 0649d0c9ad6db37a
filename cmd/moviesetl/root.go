package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "moviesetl",
		Short:         "Extract top rated movies, score them and report KPIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags.pagesSet = cmd.Flags().Changed("pages")
			_, err := ctx.ensureConfig()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().IntVar(&flags.pages, "pages", 0, "Number of top rated pages to fetch")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	runCmd := newRunCommand(ctx)
	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = cobra.NoArgs

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newTransformCommand(ctx))
	rootCmd.AddCommand(newReportCommand(ctx))

	return rootCmd
}
