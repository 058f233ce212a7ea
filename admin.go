// admin.go
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fest-registration/logger"
	"fest-registration/services"
)

var adminPassword string

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage dashboard administrators",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create an administrator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		hash, err := passwordHash(cmd)
		if err != nil {
			return err
		}
		db, err := openMigrated(ctx, configFrom(ctx))
		if err != nil {
			return err
		}
		defer db.Close()

		admin, err := services.NewAdminService(db).Create(ctx, args[0], hash)
		if err != nil {
			return err
		}
		logger.Info.Printf("Created admin %q", admin.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s\n", admin.Username)
		return nil
	},
}

var adminPasswdCmd = &cobra.Command{
	Use:   "passwd USERNAME",
	Short: "Replace an administrator's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		hash, err := passwordHash(cmd)
		if err != nil {
			return err
		}
		db, err := openMigrated(ctx, configFrom(ctx))
		if err != nil {
			return err
		}
		defer db.Close()

		if err := services.NewAdminService(db).UpdatePassword(ctx, args[0], hash); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return fmt.Errorf("admin %q does not exist", args[0])
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated password for %s\n", args[0])
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{adminCreateCmd, adminPasswdCmd} {
		c.Flags().StringVarP(&adminPassword, "password", "p", "", "password (read from stdin when omitted)")
	}
	adminCmd.AddCommand(adminCreateCmd, adminPasswdCmd)
}

// passwordHash takes the password from --password or the first line of
// stdin and hashes it.
func passwordHash(cmd *cobra.Command) (string, error) {
	password := adminPassword
	if password == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	return services.HashPassword(password)
}
