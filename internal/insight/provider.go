// Package insight produces the free-text pattern narrative shown next to the
// symptom statistics.
package insight

import (
	"context"
	"errors"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderStatic    = "static"

	DefaultMaxTokens = 1000
)

// ErrNoInsight reports a response that arrived but carried no usable text.
// Transport failures are returned unwrapped.
var ErrNoInsight = errors.New("no insight in provider response")

type Provider interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}
