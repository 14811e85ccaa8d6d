package creative

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ClaudeConfig configures the Anthropic Messages API client. The API key is
// always passed in; the generator never reads it from the environment.
type ClaudeConfig struct {
	APIKey      string
	BaseURL     string
	MaxAttempts int
	Backoff     time.Duration
	HTTPClient  *http.Client
}

// ClaudeGenerator calls the Anthropic Messages API.
type ClaudeGenerator struct {
	client   anthropic.Client
	apiKey   string
	attempts int
	backoff  time.Duration
}

func NewClaudeGenerator(cfg ClaudeConfig) *ClaudeGenerator {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		// Attempts are counted by the generator, not the SDK.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	return &ClaudeGenerator{
		client:   anthropic.NewClient(opts...),
		apiKey:   cfg.APIKey,
		attempts: cfg.MaxAttempts,
		backoff:  backoff,
	}
}

func (g *ClaudeGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, ErrMissingCredential
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}

	return retry(ctx, g.attempts, g.backoff, func() (*Result, error) {
		message, err := g.client.Messages.New(ctx, params)
		if err != nil {
			return nil, claudeTransportError(err)
		}

		text := extractText(message)
		if strings.TrimSpace(text) == "" {
			return nil, ErrNoText
		}
		return ParseResult(text)
	})
}

func claudeTransportError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &TransportError{StatusCode: apiErr.StatusCode, Err: err}
	}
	return &TransportError{Err: err}
}

func extractText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
