package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/adgenius/internal/creative"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ANTHROPIC_API_KEY", "CLAUDE_API_KEY", "ANTHROPIC_BASE_URL", "ADGENIUS_PROVIDER",
		"ADGENIUS_MODEL", "AWS_REGION", "SECRET_PREFIX", "BEDROCK_MODEL_ID",
		"CORS_ALLOWED_ORIGINS", "EXPORT_BUCKET", "EXPORT_BASE_URL", "PORT",
		"ADGENIUS_MAX_ATTEMPTS", "ADGENIUS_REQUEST_TIMEOUT", "GEMINI_API_KEY", "ADGENIUS_GEMINI_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.HasCredential())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "adgenius.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
model: claude-test
max_attempts: 3
request_timeout: 45s
cors_allowed_origins: "https://a.example, https://b.example"
`), 0644))

	t.Setenv("ADGENIUS_MODEL", "claude-from-env")
	t.Setenv("CLAUDE_API_KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "claude-from-env", cfg.Model)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "secret", cfg.AnthropicAPIKey)
	assert.True(t, cfg.HasCredential())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.Equal(t, "claude-from-env", cfg.RequestOptions().Model)
}

func TestRequestOptionsKeepsZeroTemperature(t *testing.T) {
	cfg := Default()
	cfg.Temperature = 0
	require.NoError(t, cfg.Validate())

	opts := cfg.RequestOptions()
	require.NotNil(t, opts.Temperature)
	assert.Zero(t, *opts.Temperature)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"PORT":                     "eighty",
		"ADGENIUS_MAX_ATTEMPTS":    "9",
		"ADGENIUS_REQUEST_TIMEOUT": "soon",
		"ADGENIUS_PROVIDER":        "openai",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

type fakeSecrets struct {
	value *string
	err   error
	calls int
}

func (f *fakeSecrets) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestLoadSecrets(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cfg := Default()
	cfg.SecretPrefix = "/adgenius/"
	secrets := &fakeSecrets{value: aws.String(" sk-test \n")}
	require.NoError(t, cfg.LoadSecrets(context.Background(), secrets, logger))
	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)

	// Already set: no lookup.
	require.NoError(t, cfg.LoadSecrets(context.Background(), secrets, logger))
	assert.Equal(t, 1, secrets.calls)

	missing := Default()
	missing.SecretPrefix = "/adgenius/"
	require.NoError(t, missing.LoadSecrets(context.Background(), &fakeSecrets{err: errors.New("not found")}, logger))
	assert.False(t, missing.HasCredential())

	empty := Default()
	empty.SecretPrefix = "/adgenius/"
	assert.Error(t, empty.LoadSecrets(context.Background(), &fakeSecrets{value: aws.String("")}, logger))
}

func TestNewGenerator(t *testing.T) {
	cfg := Default()
	gen, err := cfg.NewGenerator(context.Background())
	require.NoError(t, err)
	assert.Nil(t, gen)

	cfg.AnthropicAPIKey = "sk-test"
	gen, err = cfg.NewGenerator(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &creative.ClaudeGenerator{}, gen)

	cfg.Provider = ProviderGemini
	gen, err = cfg.NewGenerator(context.Background())
	require.NoError(t, err)
	assert.Nil(t, gen)

	cfg.GeminiAPIKey = "gem-key"
	gen, err = cfg.NewGenerator(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &creative.GeminiGenerator{}, gen)
}

func TestLoadSecretsGemini(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cfg := Default()
	cfg.Provider = ProviderGemini
	cfg.SecretPrefix = "/adgenius/"
	secrets := &fakeSecrets{value: aws.String("gem-secret")}
	require.NoError(t, cfg.LoadSecrets(context.Background(), secrets, logger))
	assert.Equal(t, "gem-secret", cfg.GeminiAPIKey)
	assert.Empty(t, cfg.AnthropicAPIKey)
	assert.True(t, cfg.HasCredential())
}
