package main

import (
	"os"

	"github.com/spf13/cobra"

	"chatwarden/internal/interfaces/cli/admin"
	"chatwarden/internal/interfaces/cli/migrate"
	"chatwarden/internal/interfaces/cli/server"
)

// @title Chatwarden API
// @version 1.0
// @description Telegram chat membership reconciliation service
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{
		Use:   "chatwarden",
		Short: "Chatwarden - Telegram chat membership guard",
		Long:  `Chatwarden keeps Telegram group membership in sync with an employee directory: the API manages bots, chats and employees, the worker reconciles the chats.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
