//go:build lambda.norpc

package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/apresai/adgenius/internal/config"
	"github.com/apresai/adgenius/internal/generation"
	"github.com/apresai/adgenius/internal/observability"
	"github.com/apresai/adgenius/internal/server"
)

var version = "dev"

func main() {
	logger := observability.InitLogger()
	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, err := cfg.AWSConfig(ctx)
	if err != nil {
		logger.Error("Failed to load AWS config", "error", err)
		os.Exit(1)
	}
	if err := cfg.LoadSecrets(ctx, config.NewSecretsClient(awsCfg), logger); err != nil {
		logger.Warn("Failed to load secrets from Secrets Manager, falling back to env vars", "error", err)
	}

	gen, err := cfg.NewGenerator(ctx)
	if err != nil {
		logger.Warn("Failed to create generator, using the rule-based fallback", "error", err)
	} else if gen == nil {
		logger.Warn("No API key configured, every request will use the rule-based fallback")
	}

	svc := generation.NewService(gen, logger, generation.Options{
		Request: cfg.RequestOptions(),
		Timeout: cfg.RequestTimeout,
	})
	srv := server.New(server.Config{
		AllowedOrigins: cfg.AllowedOrigins(),
		Version:        version,
	}, svc, nil, logger)

	lambda.Start(srv.HandleLambda)
}
