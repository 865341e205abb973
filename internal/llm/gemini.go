package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient is optional; the upstream stack's defaults apply otherwise.
	HTTPClient *http.Client
}

type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds the gateway. A missing API key is not a construction
// error: every call then fails with ErrAPIKeyNotFound before any network I/O.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	g := &Gemini{model: cfg.Model}
	if g.model == "" {
		g.model = DefaultModel
	}

	if cfg.APIKey == "" {
		zap.L().Warn("gemini api key not configured, generation is disabled")
		return g, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return g.generate(ctx, genai.Text(prompt), opts)
}

func (g *Gemini) Chat(ctx context.Context, history []Message, opts Options) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return g.generate(ctx, contents, opts)
}

func (g *Gemini) generate(ctx context.Context, contents []*genai.Content, opts Options) (string, error) {
	if g.client == nil {
		return "", ErrAPIKeyNotFound
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}
	if opts.JSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		zap.L().Error("gemini request failed", zap.String("model", g.model), zap.Error(err))
		return "", toUpstreamError(err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", &UpstreamError{Message: "no candidate text returned"}
	}
	return text, nil
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func toUpstreamError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &UpstreamError{StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message}
	}
	return &UpstreamError{Message: err.Error()}
}
