// migrate.go
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fest-registration/config"
	"fest-registration/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		db, err := openMigrated(ctx, configFrom(ctx))
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := db.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
		return nil
	},
}

// openMigrated opens the database, failing if it cannot be reached, and
// brings the schema up to date.
func openMigrated(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.Probe(ctx, cfg.Database.PingTimeout); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
