package planner

import (
	"context"

	"github.com/maheshrc27/marketing-planner/internal/extract"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/metrics"
	"go.uber.org/zap"
)

type FocusSuggestions struct {
	BusinessType       string   `json:"business_type"`
	AreasOfFocus       []string `json:"areas_of_focus"`
	SuggestedAudiences []string `json:"suggested_audiences"`
	Fallback           bool     `json:"fallback"`
}

func defaultFocusSuggestions() FocusSuggestions {
	return FocusSuggestions{
		BusinessType: "general business",
		AreasOfFocus: []string{
			"Brand awareness",
			"Community engagement",
			"Lead generation",
			"Customer loyalty",
		},
		SuggestedAudiences: []string{
			"Existing customers",
			"Local professionals",
			"First-time buyers",
		},
		Fallback: true,
	}
}

// SuggestFocusAreas never fails: any upstream or parse problem yields the
// built-in defaults.
func (p *Planner) SuggestFocusAreas(ctx context.Context, caller Caller, description string) FocusSuggestions {
	raw, err := p.llm.Generate(ctx, focusPrompt(description), llm.Options{Temperature: 0.5, MaxOutputTokens: 512, JSON: true})
	metrics.ObserveLLM("suggestions", err)
	if err != nil {
		p.log.Warn("focus suggestions fell back to defaults", append(caller.fields("suggestions"), zap.Error(err))...)
		metrics.ObserveFallback("suggestions")
		return defaultFocusSuggestions()
	}

	got, ok := extract.ObjectOr(raw, defaultFocusSuggestions())
	if !ok || len(got.AreasOfFocus) == 0 {
		p.log.Warn("focus suggestions fell back to defaults", append(caller.fields("suggestions"), zap.String("reason", "unparseable response"))...)
		metrics.ObserveFallback("suggestions")
		return defaultFocusSuggestions()
	}
	got.Fallback = false
	return got
}
