package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/cmd/cli/commands"
	"github.com/jakechorley/shift-scheduler/internal/config"
	"github.com/jakechorley/shift-scheduler/pkg/utils/logging"
)

var (
	env      string
	business string
	verbose  bool
	logDir   string
)

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:           "scheduler",
		Short:         "Shift scheduler CLI - build weekly staff schedules",
		Long:          `A CLI tool for managing employees, availability and shift demand, and generating weekly schedules.`,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVarP(&business, "business", "b", "", "Business ID (defaults to business_id from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "logs", "Directory for JSON log files")

	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.ViewShiftsCmd(app))
	rootCmd.AddCommand(commands.DeleteShiftsCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))
	rootCmd.AddCommand(commands.ShiftSlotsCmd(app))
	rootCmd.AddCommand(commands.StaffingRulesCmd(app))
	rootCmd.AddCommand(commands.EmployeesCmd(app))
	rootCmd.AddCommand(commands.SetAvailabilityCmd(app))
	rootCmd.AddCommand(commands.SetStoreHoursCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database and strategies
func initApp(app *commands.AppContext) error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, logging.Options{Dir: logDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Debug("Loading configuration")
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("business_id", cfg.BusinessID),
		zap.String("strategy", cfg.Scheduling.Strategy))

	if err := app.Init(cfg, business); err != nil {
		return err
	}
	app.Logger.Debug("Application initialized", zap.String("business_id", app.BusinessID))

	return nil
}
