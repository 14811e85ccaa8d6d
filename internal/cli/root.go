package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/apresai/adgenius/internal/config"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/generation"
	"github.com/apresai/adgenius/internal/observability"
	"github.com/apresai/adgenius/internal/progress"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "adgenius",
	Short:        "Turn marketing questionnaire answers into ad creative prompts",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagTUI = true
		return runGenerate(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "adgenius %s\n", Version)
	},
}

var (
	flagConfig  string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML config file (environment variables override it)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable detailed logging")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command, cancelling its context on interrupt.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

// cliLogger writes JSON logs to stderr. Without --verbose only warnings and
// errors are shown, leaving the progress display readable.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return observability.NewLogger(os.Stderr, level)
}

// loadConfig reads the config file and, when a secret prefix is set, fills the
// API key from Secrets Manager.
func loadConfig(ctx context.Context, logger *slog.Logger) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.SecretPrefix != "" && cfg.AnthropicAPIKey == "" {
		awsCfg, err := cfg.AWSConfig(ctx)
		if err != nil {
			logger.Warn("Failed to load AWS config, skipping Secrets Manager", "error", err)
			return cfg, nil
		}
		if err := cfg.LoadSecrets(ctx, config.NewSecretsClient(awsCfg), logger); err != nil {
			logger.Warn("Failed to load secrets, falling back to env vars", "error", err)
		}
	}
	return cfg, nil
}

// newService wires config, generator and logger into a generation service.
// offline skips the remote generator entirely.
func newService(ctx context.Context, logger *slog.Logger, offline bool, onProgress progress.Callback) (*generation.Service, config.Config, error) {
	cfg, err := loadConfig(ctx, logger)
	if err != nil {
		return nil, config.Config{}, err
	}

	var gen creative.Generator
	if !offline {
		gen, err = cfg.NewGenerator(ctx)
		if err != nil {
			return nil, config.Config{}, err
		}
		if gen == nil {
			logger.Warn("No API key configured, using rule-based generation")
		}
	}

	svc := generation.NewService(gen, logger, generation.Options{
		Request:    cfg.RequestOptions(),
		Timeout:    cfg.RequestTimeout,
		OnProgress: onProgress,
	})
	return svc, cfg, nil
}
