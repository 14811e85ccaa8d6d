package creative

import "github.com/apresai/adgenius/internal/insight"

// Fallback produces the rule-based result used whenever the remote path fails.
// It performs no I/O and returns the same document for the same inputs.
func Fallback(s insight.Signals, st insight.Strategy) *Result {
	return Synthesize(s, st)
}
