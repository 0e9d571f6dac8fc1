// Command hotelsite serves the hotel site and offers offline tools for its
// forms.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "hotelsite"

// Set with -ldflags at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// errReported marks failures whose details were already printed.
var errReported = errors.New("failed")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Hotel site server and form tools",
		Long: `hotelsite serves the hotel and restaurant site: rooms, dining,
facilities, gallery, contact and reservation pages with toast feedback.

The check and reserve commands run the site's form validation offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(
		serveCmd(&configPath),
		checkCmd(),
		reserveCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}
