package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:          "gridsizer",
		Short:        "Size diesel generation and battery storage for an isolated micro-grid",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// a missing .env is fine, the environment may already be set
			_ = godotenv.Load()

			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")

	rootCmd.AddCommand(sizeCmd())
	rootCmd.AddCommand(demandCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func sizeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "size [study]",
		Short: "Assemble the generator fleet and size the battery bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSize(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func demandCmd() *cobra.Command {
	var month string
	var day int

	cmd := &cobra.Command{
		Use:   "demand [study]",
		Short: "Print the demand profile of the year, a month or a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDemand(args[0], month, day)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month name, e.g. July or jul")
	cmd.Flags().IntVarP(&day, "day", "d", 0, "day of the month, requires --month")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [study]",
		Short: "Serve the study over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServe(args[0], port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	return cmd
}
