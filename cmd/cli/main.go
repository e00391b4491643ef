package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/cmd/cli/commands"
	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/memstore"
	"github.com/jakechorley/staffhours/pkg/postgres"
	"github.com/jakechorley/staffhours/pkg/redisstore"
	"github.com/jakechorley/staffhours/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
	closers []func()
)

func main() {
	app = &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Staff Hours CLI - Manage employees and allocate weekly hours",
		Long:  `A CLI tool for managing employee records and preferences, and generating priority-weighted hour schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
		SilenceUsage: true,
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.AddEmployeeCmd(app))
	rootCmd.AddCommand(commands.ListEmployeesCmd(app))
	rootCmd.AddCommand(commands.EditEmployeeCmd(app))
	rootCmd.AddCommand(commands.DeleteEmployeeCmd(app))
	rootCmd.AddCommand(commands.SetPreferenceCmd(app))
	rootCmd.AddCommand(commands.ShowPreferencesCmd(app))
	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.ImportEmployeesCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		shutdown()
		os.Exit(1)
	}
}

// initApp sets up logger, config and stores
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Env = env

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("storage", app.Cfg.Storage.Backend),
		zap.String("preferences", app.Cfg.Preferences.Backend))

	if err := initEmployeeStore(app.Cfg.Storage); err != nil {
		return err
	}

	return initPreferenceStore(app.Cfg.Preferences)
}

func initEmployeeStore(cfg config.StorageConfig) error {
	switch cfg.Backend {
	case config.BackendPostgres:
		app.Logger.Info("Connecting to PostgreSQL")
		database, err := postgres.NewDB(app.Ctx, cfg.PostgresDSN, postgres.Options{
			MaxConns:        cfg.MaxConns,
			MaxConnLifetime: cfg.MaxConnLifetime,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, database.Close)

		applied, err := database.RunMigrations(app.Ctx)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		for _, filename := range applied {
			app.Logger.Info("Applied migration", zap.String("file", filename))
		}
		app.Employees = database

	default:
		if err := useMemoryStore(); err != nil {
			return err
		}
		app.Logger.Debug("Using in-memory employee store")
	}
	return nil
}

func initPreferenceStore(cfg config.PreferencesConfig) error {
	switch cfg.Backend {
	case config.BackendRedis:
		app.Logger.Info("Connecting to Redis", zap.String("address", cfg.RedisAddress))
		store, err := redisstore.New(app.Ctx, redisstore.Options{
			Address:   cfg.RedisAddress,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return err
		}
		closers = append(closers, func() { _ = store.Close() })
		app.Preferences = store

	default:
		if err := useMemoryStore(); err != nil {
			return err
		}
		app.Logger.Debug("Using in-memory preference store")
	}
	return nil
}

// useMemoryStore fills any unset store with one shared in-memory database
func useMemoryStore() error {
	if mem, ok := app.Employees.(*memstore.Store); ok {
		if app.Preferences == nil {
			app.Preferences = mem
		}
		return nil
	}
	if mem, ok := app.Preferences.(*memstore.Store); ok {
		if app.Employees == nil {
			app.Employees = mem
		}
		return nil
	}

	mem, err := memstore.New()
	if err != nil {
		return fmt.Errorf("failed to create in-memory store: %w", err)
	}
	if app.Employees == nil {
		app.Employees = mem
	}
	if app.Preferences == nil {
		app.Preferences = mem
	}
	return nil
}

func shutdown() {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	closers = nil

	if app != nil && app.Logger != nil {
		_ = app.Logger.Sync()
	}
}
