// Command combatsim fights catalog scenarios with the combat core and
// optionally records the results in PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/data"
)

var (
	configPath string
	cfg        config.Combat
	catalog    *data.Catalog
)

var rootCmd = &cobra.Command{
	Use:               "combatsim",
	Short:             "Arena combat simulator",
	Long:              `combatsim runs team fights between catalog archetypes: skills, status effects and damage resolution on a fixed-step clock.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

// setup loads the config first so the log level applies to everything
// after it, then the catalog.
func setup(cmd *cobra.Command, _ []string) error {
	path := config.ResolvePath(configPath)
	c, err := config.LoadCombat(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := config.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
	cfg = c

	catalog, err = data.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	slog.Debug("combatsim configured",
		"config", path,
		"catalog", cfg.CatalogPath,
		"log_level", level)
	return nil
}
