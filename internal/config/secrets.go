package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/apresai/adgenius/internal/creative"
)

// SecretGetter is the subset of the Secrets Manager client used here.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSConfig loads the default AWS configuration with OpenTelemetry
// instrumentation.
func (c Config) AWSConfig(ctx context.Context) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)
	return awsCfg, nil
}

// LoadSecrets fills the provider API key from Secrets Manager when it is not
// already set. A missing secret is logged, not returned.
func (c *Config) LoadSecrets(ctx context.Context, client SecretGetter, logger *slog.Logger) error {
	name, target := "ANTHROPIC_API_KEY", &c.AnthropicAPIKey
	switch c.Provider {
	case ProviderBedrock:
		return nil
	case ProviderGemini:
		name, target = "GEMINI_API_KEY", &c.GeminiAPIKey
	}
	if c.SecretPrefix == "" || *target != "" {
		return nil
	}

	secretID := c.SecretPrefix + name
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		logger.InfoContext(ctx, "Secret not found", "secret_id", secretID, "error", err)
		return nil
	}
	if result.SecretString == nil || strings.TrimSpace(*result.SecretString) == "" {
		return fmt.Errorf("secret %s is empty", secretID)
	}

	*target = strings.TrimSpace(*result.SecretString)
	logger.InfoContext(ctx, "Loaded secret", "secret_id", secretID)
	return nil
}

// NewSecretsClient creates a Secrets Manager client from an AWS config.
func NewSecretsClient(awsCfg aws.Config) *secretsmanager.Client {
	return secretsmanager.NewFromConfig(awsCfg)
}

// NewGenerator builds the remote generator for the configured provider. It
// returns nil when no credential is available, which makes every attempt fall
// back.
func (c Config) NewGenerator(ctx context.Context) (creative.Generator, error) {
	if !c.HasCredential() {
		return nil, nil
	}
	switch c.Provider {
	case ProviderBedrock:
		awsCfg, err := c.AWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		return creative.NewBedrockGenerator(awsCfg, c.BedrockModel, c.MaxAttempts), nil
	case ProviderGemini:
		return creative.NewGeminiGenerator(creative.GeminiConfig{
			APIKey:      c.GeminiAPIKey,
			Model:       c.GeminiModel,
			MaxAttempts: c.MaxAttempts,
		}), nil
	}
	return creative.NewClaudeGenerator(creative.ClaudeConfig{
		APIKey:      c.AnthropicAPIKey,
		BaseURL:     c.AnthropicBaseURL,
		MaxAttempts: c.MaxAttempts,
	}), nil
}
