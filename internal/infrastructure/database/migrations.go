package database

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"professor-registry/pkg/logger"

	"gorm.io/gorm"
)

const migrationsTable = "schema_migrations"

// Migration is one SQL file named <id>_<description>.sql
type Migration struct {
	ID          string
	Description string
	SQL         string
	AppliedAt   *time.Time
}

type MigrationRunner struct {
	db            *gorm.DB
	migrationsDir string
}

func NewMigrationRunner(db *gorm.DB, migrationsDir string) *MigrationRunner {
	return &MigrationRunner{
		db:            db,
		migrationsDir: migrationsDir,
	}
}

func (mr *MigrationRunner) createMigrationsTable() error {
	sql := `
	CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (
		id VARCHAR(255) PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	return mr.db.Exec(sql).Error
}

type appliedMigration struct {
	ID        string
	AppliedAt time.Time
}

func (mr *MigrationRunner) getAppliedMigrations() (map[string]time.Time, error) {
	var rows []appliedMigration
	err := mr.db.Raw("SELECT id, applied_at FROM " + migrationsTable + " ORDER BY id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	applied := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		applied[row.ID] = row.AppliedAt
	}

	return applied, nil
}

// LoadMigrations reads and parses every .sql file in the migrations directory, sorted by file name
func (mr *MigrationRunner) LoadMigrations() ([]*Migration, error) {
	var files []string

	err := filepath.WalkDir(mr.migrationsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(d.Name(), ".sql") {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get migration files: %w", err)
	}

	sort.Strings(files)

	migrations := make([]*Migration, 0, len(files))
	for _, file := range files {
		migration, err := readMigrationFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		migrations = append(migrations, migration)
	}

	return migrations, nil
}

func readMigrationFile(filePath string) (*Migration, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(filePath)
	parts := strings.SplitN(filename, "_", 2)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid migration filename format: %s", filename)
	}

	description := strings.TrimSuffix(parts[1], ".sql")
	description = strings.ReplaceAll(description, "_", " ")

	return &Migration{
		ID:          parts[0],
		Description: description,
		SQL:         string(content),
	}, nil
}

// RunMigrations applies every pending migration, each in its own transaction
func (mr *MigrationRunner) RunMigrations() error {
	if err := mr.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := mr.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations, err := mr.LoadMigrations()
	if err != nil {
		return err
	}

	pendingCount := 0
	for _, migration := range migrations {
		if _, ok := applied[migration.ID]; ok {
			continue
		}

		err = mr.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(migration.SQL).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", migration.ID, err)
			}

			if err := tx.Exec("INSERT INTO "+migrationsTable+" (id, description) VALUES (?, ?)",
				migration.ID, migration.Description).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
			}

			return nil
		})
		if err != nil {
			return err
		}

		logger.WithField("migration", migration.ID).Infof("Applied migration: %s", migration.Description)
		pendingCount++
	}

	if pendingCount == 0 {
		logger.Info("No pending migrations to apply")
	} else {
		logger.Info("Successfully applied %d migrations", pendingCount)
	}

	return nil
}

// GetMigrationStatus returns every known migration with AppliedAt set for those already applied
func (mr *MigrationRunner) GetMigrationStatus() ([]Migration, error) {
	if err := mr.createMigrationsTable(); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := mr.getAppliedMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations, err := mr.LoadMigrations()
	if err != nil {
		return nil, err
	}

	status := make([]Migration, 0, len(migrations))
	for _, migration := range migrations {
		if appliedAt, ok := applied[migration.ID]; ok {
			migration.AppliedAt = &appliedAt
		}
		status = append(status, *migration)
	}

	return status, nil
}
