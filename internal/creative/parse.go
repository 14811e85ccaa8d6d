package creative

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrMissingCredential is returned before any network call when no API key is configured.
	ErrMissingCredential = errors.New("missing API credential")
	// ErrNoText means the provider answered without a text block.
	ErrNoText = errors.New("response has no text content")
	// ErrMalformed means the text could not be read as a result document.
	ErrMalformed = errors.New("malformed result document")
)

// TransportError wraps a failed call to the provider. StatusCode is 0 when no
// HTTP response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

// ParseResult reads a result document out of model text. Markdown fences and
// surrounding prose are tolerated; all top-level keys must be present.
func ParseResult(text string) (*Result, error) {
	text = strings.TrimSpace(extractJSON(stripMarkdownFences(text)))
	if text == "" {
		return nil, fmt.Errorf("%w: no JSON content found", ErrMalformed)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return nil, fmt.Errorf("%w: %v (first 200 chars: %s)", ErrMalformed, err, truncate(text, 200))
	}
	for _, k := range TopLevelKeys {
		if v, ok := keys[k]; !ok || string(v) == "null" {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformed, k)
		}
	}

	var r Result
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &r, nil
}

func stripMarkdownFences(text string) string {
	if m := fenceRe.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return text
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
