package database

import (
	"context"
	"fmt"
	"strings"

	"fest-registration/logger"
)

// Migration is one versioned schema step. Statements run in order; %ID%
// expands to the dialect's auto-increment primary key column.
type Migration struct {
	Version    int
	Name       string
	Statements []string
}

// Keep this in order of execution, oldest to newest.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_tables",
		Statements: []string{
			`CREATE TABLE users (
				id %ID%,
				name VARCHAR(255) NOT NULL,
				email VARCHAR(255) NOT NULL,
				phone VARCHAR(255) NOT NULL,
				event VARCHAR(255) NOT NULL,
				event_date VARCHAR(255) NOT NULL DEFAULT '',
				event_time VARCHAR(255) NOT NULL DEFAULT '',
				registered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX users_name_idx ON users (name)`,
			`CREATE TABLE events (
				id %ID%,
				name VARCHAR(255) NOT NULL,
				date VARCHAR(10) NOT NULL,
				time VARCHAR(5) NOT NULL,
				location VARCHAR(255) NOT NULL
			)`,
			`CREATE INDEX events_name_idx ON events (name)`,
			`CREATE TABLE admin (
				id %ID%,
				username VARCHAR(255) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		Version: 2,
		Name:    "add_event_description",
		Statements: []string{
			`ALTER TABLE events ADD COLUMN description VARCHAR(1024) NOT NULL DEFAULT ''`,
		},
	},
}

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func idColumn(driver string) string {
	switch driver {
	case DriverPostgres:
		return "BIGSERIAL PRIMARY KEY"
	case DriverMySQL:
		return "BIGINT AUTO_INCREMENT PRIMARY KEY"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

// Migrate applies every migration newer than the recorded version. Each
// migration runs in its own transaction. MySQL commits DDL implicitly, so
// there a failed migration can leave partial schema behind.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.ExecContext(ctx, migrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	current, err := d.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		logger.Info.Printf("Running migration %d. %s", m.Version, m.Name)
		err := d.Transaction(ctx, func(tx *Tx) error {
			for _, stmt := range m.Statements {
				stmt = strings.ReplaceAll(stmt, "%ID%", idColumn(tx.DriverName()))
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx,
				tx.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"),
				m.Version, m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied migration, 0 if none.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := d.GetContext(ctx, &version, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// LatestVersion is the version Migrate brings a database to.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}
