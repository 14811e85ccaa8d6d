package creative

import (
	"context"
	"fmt"
	"time"
)

// Generator sends a generation request to a model provider.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

const (
	defaultAttempts = 1
	defaultBackoff  = time.Second
	backoffMult     = 2
)

// retry runs call up to attempts times with exponential backoff between tries.
func retry(ctx context.Context, attempts int, backoff time.Duration, call func() (*Result, error)) (*Result, error) {
	if attempts < 1 {
		attempts = defaultAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		res, err := call()
		if err == nil {
			return res, nil
		}
		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, attempts, err)

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= backoffMult
		}
	}
	return nil, lastErr
}
