package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/maheshrc27/marketing-planner/internal/llm"
)

// Response is one scripted model reply.
type Response struct {
	Text string
	Err  error
}

// MockGateway replays scripted responses in order, or delegates to
// GenerateFunc / ChatFunc when set.
type MockGateway struct {
	mu        sync.Mutex
	Responses []Response

	GenerateFunc func(ctx context.Context, prompt string, opts llm.Options) (string, error)
	ChatFunc     func(ctx context.Context, history []llm.Message, opts llm.Options) (string, error)

	Prompts   []string
	Options   []llm.Options
	Histories [][]llm.Message
}

func NewMockGateway(responses ...Response) *MockGateway {
	return &MockGateway{Responses: responses}
}

func (m *MockGateway) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.Options = append(m.Options, opts)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt, opts)
	}
	return m.next()
}

func (m *MockGateway) Chat(ctx context.Context, history []llm.Message, opts llm.Options) (string, error) {
	m.mu.Lock()
	m.Histories = append(m.Histories, append([]llm.Message(nil), history...))
	m.Options = append(m.Options, opts)
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, history, opts)
	}
	return m.next()
}

func (m *MockGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts) + len(m.Histories)
}

func (m *MockGateway) next() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Responses) == 0 {
		return "", errors.New("mock gateway: no scripted response left")
	}
	r := m.Responses[0]
	m.Responses = m.Responses[1:]
	return r.Text, r.Err
}
