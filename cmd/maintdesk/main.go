package main

import (
	"os"

	"github.com/spf13/cobra"

	"maintdesk/internal/interfaces/cli/migrate"
	"maintdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "maintdesk",
		Short: "Maintdesk - maintenance ticket dashboard service",
		Long:  `Maintdesk serves the maintenance ticket API consumed by the role-scoped dashboards, with migration and seeding tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
