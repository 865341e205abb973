// Package llm is the thin boundary to the generative-text provider.
// It never retries; retry policy belongs to the caller.
package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Options tune a single generation request.
type Options struct {
	Temperature     float32
	MaxOutputTokens int32
	// JSON asks the provider for an application/json response body.
	// Callers still parse defensively.
	JSON bool
}

// Message is one turn of a multi-turn conversation.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Gateway interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	Chat(ctx context.Context, history []Message, opts Options) (string, error)
}

var ErrAPIKeyNotFound = errors.New("API key not found")

// UpstreamError is a failed provider call: a non-2xx response or an
// envelope without candidate text.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}
