package planner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/maheshrc27/marketing-planner/internal/extract"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/metrics"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

const strategyAttempts = 2

type StrategyInput struct {
	BusinessDescription string                     `json:"business_description"`
	Feedback            string                     `json:"feedback,omitempty"`
	Competitors         []models.CompetitorInsight `json:"competitors,omitempty"`
}

// Matrix is the 3x3 audience/objective/message plan. Row i of each list
// belongs together.
type Matrix struct {
	TargetAudience []string `json:"target_audience" yaml:"target_audience"`
	Objectives     []string `json:"objectives" yaml:"objectives"`
	KeyMessages    []string `json:"key_messages" yaml:"key_messages"`
}

func MatrixOf(s *models.Strategy) Matrix {
	return Matrix{
		TargetAudience: s.TargetAudience,
		Objectives:     s.Objectives,
		KeyMessages:    s.KeyMessages,
	}
}

type StrategyResult struct {
	Matrix
	Enhanced *models.EnhancedStrategy `json:"enhanced_strategy,omitempty"`
	Attempts int                      `json:"attempts"`
}

type strategyResponse struct {
	Matrix
	Audiences       []models.AudiencePlan          `json:"audiences"`
	Timeline        *models.ImplementationTimeline `json:"implementation_timeline"`
	CompetitiveGaps []models.CompetitiveGap        `json:"competitive_gaps"`
	ContentStrategy *models.ContentStrategy        `json:"content_strategy"`
}

// GenerateStrategy asks for the matrix up to two times. When every attempt
// fails it returns a *StrategyFailure listing each attempt's error; it never
// substitutes default content.
func (p *Planner) GenerateStrategy(ctx context.Context, caller Caller, in StrategyInput) (*StrategyResult, error) {
	if strings.TrimSpace(in.BusinessDescription) == "" {
		return nil, fmt.Errorf("business description is required")
	}

	prompt := strategyPrompt(in)
	failure := &StrategyFailure{}

	for attempt := 1; attempt <= strategyAttempts; attempt++ {
		if attempt > 1 {
			if err := p.pause(ctx); err != nil {
				failure.Attempts = append(failure.Attempts, fmt.Sprintf("attempt %d: %v", attempt, err))
				break
			}
		}

		result, err := p.strategyAttempt(ctx, prompt, len(in.Competitors) > 0)
		metrics.ObserveLLM("strategy", err)
		if err == nil {
			result.Attempts = attempt
			return result, nil
		}

		p.log.Warn("strategy attempt failed", append(caller.fields("strategy"), zap.Int("attempt", attempt), zap.Error(err))...)
		failure.Attempts = append(failure.Attempts, fmt.Sprintf("attempt %d: %v", attempt, err))
	}

	return nil, failure
}

func (p *Planner) strategyAttempt(ctx context.Context, prompt string, enhanced bool) (*StrategyResult, error) {
	raw, err := p.llm.Generate(ctx, prompt, llm.Options{Temperature: 0.7, MaxOutputTokens: 4096, JSON: true})
	if err != nil {
		return nil, err
	}

	var resp strategyResponse
	if err := extract.JSONObject(raw, &resp); err != nil {
		return nil, err
	}
	if err := ValidateMatrix(resp.Matrix); err != nil {
		return nil, err
	}

	if enhanced {
		if err := validateAudiences(resp.Audiences); err != nil {
			return nil, err
		}
	}

	result := &StrategyResult{Matrix: resp.Matrix}
	if enhanced && (len(resp.Audiences) > 0 || resp.Timeline != nil || len(resp.CompetitiveGaps) > 0 || resp.ContentStrategy != nil) {
		result.Enhanced = &models.EnhancedStrategy{
			Audiences:       resp.Audiences,
			CompetitiveGaps: resp.CompetitiveGaps,
		}
		if resp.Timeline != nil {
			result.Enhanced.Timeline = *resp.Timeline
		}
		if resp.ContentStrategy != nil {
			result.Enhanced.ContentStrategy = *resp.ContentStrategy
		}
	}
	return result, nil
}

// ValidateMatrix checks the three lists are complete and every objective
// follows the behavior rule.
func ValidateMatrix(m Matrix) error {
	fields := []struct {
		name  string
		items []string
	}{
		{"target_audience", m.TargetAudience},
		{"objectives", m.Objectives},
		{"key_messages", m.KeyMessages},
	}
	for _, f := range fields {
		if len(f.items) != models.MatrixSize {
			return fmt.Errorf("%s has %d entries, expected %d", f.name, len(f.items), models.MatrixSize)
		}
		for i, item := range f.items {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("%s[%d] is empty", f.name, i)
			}
		}
	}
	for i, o := range m.Objectives {
		if err := CheckObjective(o); err != nil {
			return fmt.Errorf("objectives[%d]: %w", i, err)
		}
	}
	return nil
}

// validateAudiences applies the objective rule to every per-audience
// objective of an enhanced strategy.
func validateAudiences(audiences []models.AudiencePlan) error {
	for i, a := range audiences {
		for j, o := range a.Objectives {
			if err := CheckObjective(o.Objective); err != nil {
				return fmt.Errorf("audiences[%d].objectives[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

var standaloneNumeral = regexp.MustCompile(`\b\d+(?:[.,]\d+)*\b`)

// CheckObjective enforces that an objective is a behavior, not a metric: no
// percent sign and no standalone numerals.
func CheckObjective(objective string) error {
	if strings.Contains(objective, "%") {
		return fmt.Errorf("objective %q contains a percentage", objective)
	}
	if standaloneNumeral.MatchString(objective) {
		return fmt.Errorf("objective %q contains a numeric target", objective)
	}
	return nil
}
