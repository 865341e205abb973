// Package planner runs the content-generation pipeline: strategy matrix,
// weekly themes, per-week posts and calendar slotting. It talks to the model
// only through llm.Gateway and never touches storage.
package planner

import (
	"context"
	"time"

	"github.com/maheshrc27/marketing-planner/internal/llm"
	"go.uber.org/zap"
)

// Caller identifies who a pipeline call runs for. It is passed explicitly so
// the pipeline can run headless.
type Caller struct {
	UserID    string
	ProjectID string
}

func (c Caller) fields(step string) []zap.Field {
	return []zap.Field{
		zap.String("step", step),
		zap.String("user_id", c.UserID),
		zap.String("project_id", c.ProjectID),
	}
}

type Planner struct {
	llm        llm.Gateway
	retryDelay time.Duration
	log        *zap.Logger
}

type Option func(*Planner)

// WithRetryDelay sets the fixed pause between attempts of a retried step.
func WithRetryDelay(d time.Duration) Option {
	return func(p *Planner) { p.retryDelay = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Planner) { p.log = l }
}

func New(gateway llm.Gateway, opts ...Option) *Planner {
	p := &Planner{
		llm:        gateway,
		retryDelay: time.Second,
		log:        zap.L(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) pause(ctx context.Context) error {
	if p.retryDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
