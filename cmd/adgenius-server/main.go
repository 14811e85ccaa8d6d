package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/apresai/adgenius/internal/config"
	"github.com/apresai/adgenius/internal/export"
	"github.com/apresai/adgenius/internal/generation"
	"github.com/apresai/adgenius/internal/observability"
	"github.com/apresai/adgenius/internal/server"
)

var version = "dev"

func main() {
	logger := observability.InitLogger()

	logger.Info("AdGenius server starting...", "version", version)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if observability.TracingEnabled() {
		tp, err := observability.InitTracer(ctx, "adgenius-server", version)
		if err != nil {
			logger.Warn("Failed to init tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				if err := tp.Shutdown(context.Background()); err != nil {
					logger.Error("Tracer shutdown error", "error", err)
				}
			}()
		}
	}

	cfg, err := config.Load(os.Getenv("ADGENIUS_CONFIG"))
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, awsErr := cfg.AWSConfig(ctx)
	if awsErr != nil {
		logger.Warn("Failed to load AWS config", "error", awsErr)
	} else if cfg.SecretPrefix != "" {
		if err := cfg.LoadSecrets(ctx, config.NewSecretsClient(awsCfg), logger); err != nil {
			logger.Warn("Failed to load secrets from Secrets Manager, falling back to env vars", "error", err)
		}
	}

	gen, err := cfg.NewGenerator(ctx)
	if err != nil {
		logger.Warn("Failed to create generator, using the rule-based fallback", "error", err)
	} else if gen == nil {
		logger.Warn("No API key configured, every request will use the rule-based fallback")
	}

	var storage *export.Storage
	if cfg.ExportBucket != "" && awsErr == nil {
		storage = export.NewStorage(s3.NewFromConfig(awsCfg), cfg.ExportBucket, cfg.ExportBaseURL)
	}

	svc := generation.NewService(gen, logger, generation.Options{
		Request: cfg.RequestOptions(),
		Timeout: cfg.RequestTimeout,
	})

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins(),
		Version:        version,
	}, svc, storage, logger)

	if err := srv.Start(ctx); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
