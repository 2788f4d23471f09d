package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	version string
)

// newRootCmd wires the serve, migrate, token and version commands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "grbpwr-waitlist",
		Short: "Collect waitlist applications and let admins approve or reject them",
		Long: "Serves the public join endpoint and the admin review API. Applicants are admitted\n" +
			"by the configured enablement, capacity and email domain rules.",
		SilenceUsage: true,
		RunE:         run,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")
	root.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version of the waitlist service",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
		migrateCmd,
		newTokenCmd(),
	)
	return root
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	if err := newRootCmd().Execute(); err != nil {
		slog.Default().Error("waitlist service exited", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
