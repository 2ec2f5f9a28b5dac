package cmd

import (
	"fmt"

	"professor-registry/internal/config"
	"professor-registry/internal/infrastructure/database"
	"professor-registry/pkg/logger"

	"github.com/spf13/cobra"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration management",
	Long:  "Manage database migrations for the professors and professor_events tables",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run pending migrations",
	Long:  "Execute all pending database migrations",
	RunE:  runMigrateUp,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  "Display the status of all migrations",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "", "migrations directory (overrides database.migrations_dir)")
}

func resolveMigrationsDir(cfg *config.Config) string {
	if migrationsDir != "" {
		return migrationsDir
	}
	return cfg.Database.MigrationsDir
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, resolveMigrationsDir(cfg)); err != nil {
		logger.Error("Migration failed: %v", err)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed successfully!")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		return err
	}
	defer database.Close(db)

	migrationRunner := database.NewMigrationRunner(db, resolveMigrationsDir(cfg))
	migrations, err := migrationRunner.GetMigrationStatus()
	if err != nil {
		logger.Error("Failed to get migration status: %v", err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Migration Status:")
	fmt.Fprintln(out, "================")
	for _, migration := range migrations {
		status := "Pending"
		if migration.AppliedAt != nil {
			status = fmt.Sprintf("Applied at %s", migration.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(out, "%s - %s [%s]\n", migration.ID, migration.Description, status)
	}
	return nil
}
