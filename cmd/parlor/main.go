package main

import (
	"os"

	"github.com/spf13/cobra"

	"parlor/internal/interfaces/cli/migrate"
	"parlor/internal/interfaces/cli/seed"
	"parlor/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parlor",
		Short: "Parlor - capacity-gated conversational assistant",
		Long:  `Parlor serves a public conversational assistant behind a session admission scheduler: a fixed pool of concurrent seats, a FIFO waiting line, and a background expiry sweep.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
