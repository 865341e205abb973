package planner

import (
	"context"
	"errors"
	"strings"

	"github.com/maheshrc27/marketing-planner/internal/extract"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/metrics"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

const DefaultThemeCount = 3

type ThemeInput struct {
	Strategy  Matrix `json:"strategy"`
	Aesthetic string `json:"aesthetic,omitempty"`
	Count     int    `json:"count,omitempty"`
}

// GenerateThemes makes a single attempt. Any failure is returned as a
// *GenerationError and the outline run must not start.
func (p *Planner) GenerateThemes(ctx context.Context, caller Caller, in ThemeInput) ([]models.Theme, error) {
	count := in.Count
	if count <= 0 {
		count = DefaultThemeCount
	}

	raw, err := p.llm.Generate(ctx, themesPrompt(in, count), llm.Options{Temperature: 0.8, MaxOutputTokens: 1024, JSON: true})
	metrics.ObserveLLM("themes", err)
	if err != nil {
		return nil, &GenerationError{Step: "themes", Err: err}
	}

	var themes []models.Theme
	if err := extract.JSONArray(raw, &themes); err != nil {
		return nil, &GenerationError{Step: "themes", Err: err}
	}

	kept := themes[:0]
	for _, t := range themes {
		if strings.TrimSpace(t.Theme) != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, &GenerationError{Step: "themes", Err: errors.New("no themes returned")}
	}
	if len(kept) > count {
		kept = kept[:count]
	}

	if !increasing(kept) {
		p.log.Warn("renumbering themes", append(caller.fields("themes"), zap.Int("count", len(kept)))...)
		for i := range kept {
			kept[i].Week = i + 1
		}
	}
	return kept, nil
}

func increasing(themes []models.Theme) bool {
	for i, t := range themes {
		if t.Week <= 0 || (i > 0 && t.Week <= themes[i-1].Week) {
			return false
		}
	}
	return true
}
