// main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"fest-registration/config"
	"fest-registration/logger"
)

// Version is set via ldflags when building.
var Version = "dev"

type configKey struct{}

var rootCmd = &cobra.Command{
	Use:               "festreg",
	Short:             "Event registration service",
	Long:              "festreg serves the public registration form and the admin dashboard for a campus fest.",
	SilenceUsage:      true,
	Version:           Version,
	PersistentPreRunE: loadConfig,
	RunE:              runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, adminCmd)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// loadConfig reads the configuration once for every subcommand and
// configures logging from it.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.InitLogger(logger.Options{
		Dir:    cfg.LogDir,
		JSON:   cfg.IsProduction(),
		Stdout: cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}
	logger.SetLogLevel(cfg.Env)
	cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
	return nil
}

// configFrom returns the configuration stored by loadConfig.
func configFrom(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey{}).(*config.Config)
	return cfg
}

func main() {
	// Set the max number of processes to the container CPU quota
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Debug.Printf)); err != nil {
		logger.Warn.Printf("couldn't set automaxprocs: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}
