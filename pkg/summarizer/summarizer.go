// Package summarizer defines the contract for turning note content into a short summary.
package summarizer

import (
	"context"
	"errors"
)

// ErrUnavailable covers every way the upstream model can fail: transport errors,
// timeouts, non-2xx statuses and payloads of an unexpected shape.
var ErrUnavailable = errors.New("summarization unavailable")

// Summarizer is implemented by every summarization backend.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
