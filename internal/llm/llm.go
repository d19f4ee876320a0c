// Package llm is the invocation boundary to the remote model service.
//
// The rest of the pipeline sees only Invoker: one synchronous call with a
// rendered prompt and sampling parameters, returning raw text or an error.
// Rate limiting is the one transport condition callers recover from, so it is
// distinguished by a sentinel; everything else is fatal for the current unit.
package llm

import (
	"context"
	"errors"
)

// ErrRateLimited marks a transport rejection caused by request-rate quotas.
// Callers test for it with errors.Is and back off before retrying.
var ErrRateLimited = errors.New("rate limited by model service")

// Default sampling parameters applied when a Request leaves them zero.
const (
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultMaxTokens   = 4000
)

// Request is one rendered prompt plus sampling parameters.
type Request struct {
	Model       string
	Prompt      string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// withDefaults fills unset sampling parameters.
func (r Request) withDefaults() Request {
	if r.Temperature == 0 {
		r.Temperature = DefaultTemperature
	}
	if r.TopP == 0 {
		r.TopP = DefaultTopP
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	return r
}

// Response carries the raw model text plus token usage when the service
// reports it (zero otherwise).
type Response struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Invoker is the black-box model call. Implementations suspend until the
// service responds or ctx is cancelled.
type Invoker interface {
	Name() string
	Invoke(ctx context.Context, req Request) (*Response, error)
}
