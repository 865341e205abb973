package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/maheshrc27/marketing-planner/internal/extract"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/metrics"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

const weekAttempts = 3

type WeekInput struct {
	Strategy  Matrix         `json:"strategy"`
	Theme     models.Theme   `json:"theme"`
	AllThemes []models.Theme `json:"all_themes"`
	Feedback  string         `json:"feedback,omitempty"`
	Aesthetic string         `json:"aesthetic,omitempty"`
}

type weekResponse struct {
	Week  int               `json:"week"`
	Theme string            `json:"theme"`
	Posts []models.PostPlan `json:"posts"`
}

// GenerateWeek produces the posts for one theme, retrying up to three times
// with the fixed delay. Exhaustion returns a *StepError for this week only.
func (p *Planner) GenerateWeek(ctx context.Context, caller Caller, in WeekInput) (*models.Week, error) {
	prompt := weekPrompt(in)
	step := fmt.Sprintf("week %d", in.Theme.Week)

	var lastErr error
	for attempt := 1; attempt <= weekAttempts; attempt++ {
		if attempt > 1 {
			if err := p.pause(ctx); err != nil {
				return nil, &StepError{Step: step, Attempts: attempt - 1, Err: err}
			}
		}

		posts, err := p.weekAttempt(ctx, prompt)
		metrics.ObserveLLM("week", err)
		if err == nil {
			return &models.Week{
				Week:          in.Theme.Week,
				Theme:         in.Theme.Theme,
				Objective:     in.Theme.Objective,
				TargetSegment: in.Theme.TargetSegment,
				Phase:         in.Theme.Phase,
				Posts:         posts,
			}, nil
		}

		lastErr = err
		p.log.Warn("week generation attempt failed",
			append(caller.fields("week"), zap.Int("week", in.Theme.Week), zap.Int("attempt", attempt), zap.Error(err))...)
		if errors.Is(err, llm.ErrAPIKeyNotFound) {
			return nil, &StepError{Step: step, Attempts: attempt, Err: err}
		}
	}

	return nil, &StepError{Step: step, Attempts: weekAttempts, Err: lastErr}
}

func (p *Planner) weekAttempt(ctx context.Context, prompt string) ([]models.PostPlan, error) {
	raw, err := p.llm.Generate(ctx, prompt, llm.Options{Temperature: 0.8, MaxOutputTokens: 4096, JSON: true})
	if err != nil {
		return nil, err
	}

	var resp weekResponse
	if err := extract.JSONObject(raw, &resp); err != nil || len(resp.Posts) == 0 {
		// some responses drop the wrapper and return the posts array alone
		var posts []models.PostPlan
		if arrErr := extract.JSONArray(raw, &posts); arrErr == nil && len(posts) > 0 {
			return posts, nil
		}
		if err != nil {
			return nil, err
		}
		return nil, &extract.ParseError{Kind: "week", Reason: "no posts returned"}
	}
	return resp.Posts, nil
}
