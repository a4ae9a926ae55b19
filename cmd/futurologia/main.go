package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/futurologia/internal/config"
	"github.com/yourusername/futurologia/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
	auditLog   *logger.AuditLogger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(serveCmd, analyzeCmd, leaguesCmd, plansCmd)
}

var rootCmd = &cobra.Command{
	Use:   "futurologia",
	Short: "Football match analysis service",
	Long: `FuturoLogia scores football fixtures from team statistics and returns
win/draw/loss probabilities, a recommended winner and the reasons behind it.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	auditLog = logger.NewAuditLogger(appLog)

	secrets, err := config.SecretsSettingsFromEnv()
	if err != nil {
		return err
	}
	if secrets.Enabled {
		if ctx == nil {
			ctx = context.Background()
		}
		secretsCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		keys, err := config.LoadSecretsFromAWS(secretsCtx, cfg, secrets.Region, secrets.SecretName)
		if err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
		auditLog.LogSecretsOverlay(secrets.SecretName, keys)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	auditLog.LogConfigLoaded(cfg.App.Environment, cfg.FootballAPI.Enabled, cfg.HasFootballAPIKey(), cfg.History.Enabled)
	return nil
}
