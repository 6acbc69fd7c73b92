// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"satimge/satimge-charts/internal/config"
	"satimge/satimge-charts/internal/container"
	"satimge/satimge-charts/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	DevMode    bool
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired application dependencies
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "satimge-charts",
		Short: "Normalize SATIMGE model results and render report charts.",
		Long: `satimge-charts turns a raw SATIMGE results extract into an enriched dataset
with decoded scenario fields, canonical sector groups and CO2-equivalent emissions,
then renders the report charts and their data files from it.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to satimge-charts!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in ., .satimge or $HOME/.satimge)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		Cmd.PersistentFlags().BoolVar(&SharedFlags.DevMode, "dev-mode", false, "Preview charts in the log instead of writing files")
	})
}

// Initialize loads .env and the configuration, applies flag overrides and
// wires the container.
func Initialize(cmd *cobra.Command) error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd != nil && cmd.Flags().Changed("log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if cmd != nil && cmd.Flags().Changed("dev-mode") {
		cfg.DevMode = SharedFlags.DevMode
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	Log.Debug("Configuration loaded",
		logging.Field{Key: "log_level", Value: cfg.Log.Level},
		logging.Field{Key: "dev_mode", Value: cfg.DevMode})
	return nil
}

// GetContainer returns the application container, or nil before Initialize.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before Initialize.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the shared command logger.
func GetLogger() logging.Logger {
	return Log
}

// MustContainer returns the container or exits when it was not initialized.
func MustContainer() *container.Container {
	if AppContainer == nil {
		Log.Fatal("Container not initialized")
	}
	return AppContainer
}
