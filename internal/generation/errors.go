package generation

import (
	"context"
	"errors"

	"github.com/apresai/adgenius/internal/creative"
)

// ErrorKind classifies why the remote path failed.
type ErrorKind string

const (
	KindConfig    ErrorKind = "config"
	KindTransport ErrorKind = "transport"
	KindContract  ErrorKind = "contract"
	KindCanceled  ErrorKind = "canceled"
)

// Classify maps a generator error to its kind. Unknown errors count as transport
// failures.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, creative.ErrMissingCredential):
		return KindConfig
	case errors.Is(err, creative.ErrNoText), errors.Is(err, creative.ErrMalformed):
		return KindContract
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindTransport
	}
}
