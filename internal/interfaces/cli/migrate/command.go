package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"chatwarden/internal/infrastructure/config"
	"chatwarden/internal/infrastructure/database"
	"chatwarden/internal/infrastructure/migration"
	"chatwarden/internal/shared/logger"
)

var steps int

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, check status and create new migration files.`,
	}

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new migration file pair",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreate,
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	strategy, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := strategy.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println("migrations applied")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	strategy, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	gm, ok := strategy.(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("rollback requires the golang-migrate strategy")
	}

	if err := gm.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	fmt.Printf("rolled back %d migration(s)\n", steps)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	strategy, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	gm, ok := strategy.(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("status requires the golang-migrate strategy")
	}

	version, dirty, err := gm.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	fmt.Printf("version: %d  dirty: %v\n", version, dirty)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	generator := migration.NewGenerator(migration.DefaultScriptsPath)
	return generator.CreateMigration(args[0])
}

// setup loads config, connects the database and returns the SQL-file
// migration strategy.
func setup() (migration.Strategy, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs(migration.DefaultScriptsPath)
	if err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	cleanup := func() { _ = database.Close() }
	return migration.NewGolangMigrateStrategy(scriptsPath), cleanup, nil
}
