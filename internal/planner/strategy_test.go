package planner_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMatrix = `{
  "target_audience": ["Busy parents", "Remote workers", "Students"],
  "objectives": ["Book a weekend class for their kids", "Share a desk setup photo", "Join the study club"],
  "key_messages": ["We save you time", "Work where you feel good", "Learn together"]
}`

func newPlanner(gw llm.Gateway) *planner.Planner {
	return planner.New(gw, planner.WithRetryDelay(0))
}

var caller = planner.Caller{UserID: "user-1", ProjectID: "strategy-1"}

func TestGenerateStrategy_FirstAttempt(t *testing.T) {
	gw := mocks.NewMockGateway(mocks.Response{Text: "Sure!\n" + validMatrix})

	got, err := newPlanner(gw).GenerateStrategy(context.Background(), caller, planner.StrategyInput{BusinessDescription: "A family yoga studio"})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, []string{"Busy parents", "Remote workers", "Students"}, got.TargetAudience)
	assert.Nil(t, got.Enhanced)
	assert.Equal(t, 1, gw.Calls())
	assert.True(t, gw.Options[0].JSON)
}

func TestGenerateStrategy_RetriesInvalidMatrix(t *testing.T) {
	bad := `{"target_audience": ["A", "B", "C"], "objectives": ["Grow followers by 20%", "Share", "Visit"], "key_messages": ["x", "y", "z"]}`
	gw := mocks.NewMockGateway(
		mocks.Response{Text: bad},
		mocks.Response{Text: validMatrix},
	)

	got, err := newPlanner(gw).GenerateStrategy(context.Background(), caller, planner.StrategyInput{BusinessDescription: "Coffee roaster"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, 2, gw.Calls())
}

func TestGenerateStrategy_KeepsEveryAttemptError(t *testing.T) {
	gw := mocks.NewMockGateway(
		mocks.Response{Err: &llm.UpstreamError{StatusCode: 503, Message: "model overloaded"}},
		mocks.Response{Text: `{"target_audience": ["A", "B"], "objectives": [], "key_messages": []}`},
	)

	_, err := newPlanner(gw).GenerateStrategy(context.Background(), caller, planner.StrategyInput{BusinessDescription: "Bakery"})
	require.Error(t, err)

	var failure *planner.StrategyFailure
	require.True(t, errors.As(err, &failure))
	require.Len(t, failure.Attempts, 2)
	assert.Contains(t, failure.Attempts[0], "model overloaded")
	assert.Contains(t, failure.Attempts[1], "target_audience has 2 entries")
}

func TestGenerateStrategy_MissingAPIKey(t *testing.T) {
	gw := &mocks.MockGateway{
		GenerateFunc: func(context.Context, string, llm.Options) (string, error) {
			return "", llm.ErrAPIKeyNotFound
		},
	}

	_, err := newPlanner(gw).GenerateStrategy(context.Background(), caller, planner.StrategyInput{BusinessDescription: "Bakery"})
	var failure *planner.StrategyFailure
	require.True(t, errors.As(err, &failure))
	for _, a := range failure.Attempts {
		assert.Contains(t, a, "API key not found")
	}
}

func TestGenerateStrategy_RequiresDescription(t *testing.T) {
	gw := mocks.NewMockGateway()
	_, err := newPlanner(gw).GenerateStrategy(context.Background(), caller, planner.StrategyInput{BusinessDescription: "  "})
	require.Error(t, err)
	assert.Zero(t, gw.Calls())
}

func TestGenerateStrategy_Enhanced(t *testing.T) {
	enhanced := strings.TrimSuffix(strings.TrimSpace(validMatrix), "}") + `,
  "audiences": [{"segment": "Busy parents", "objectives": [{"objective": "Book a class", "success_metrics": ["bookings"], "content_types": ["reel"], "channels": ["instagram"]}]}],
  "implementation_timeline": {
    "days_1_30": {"title": "Launch", "focus": "awareness", "actions": ["post daily"]},
    "days_31_60": {"title": "Grow", "focus": "engagement", "actions": ["run contest"]},
    "days_61_90": {"title": "Convert", "focus": "sales", "actions": ["offer"]}
  },
  "competitive_gaps": [{"gap": "No kids classes nearby", "strategy": "Lead with family content"}],
  "content_strategy": {"tone": "warm", "frequency": "3x weekly", "cta_library": ["Book now"], "ab_test_ideas": ["video vs photo"]}
}`
	gw := mocks.NewMockGateway(mocks.Response{Text: enhanced})

	got, err := newPlanner(gw).GenerateStrategy(context.Background(), caller, planner.StrategyInput{
		BusinessDescription: "Family yoga",
		Competitors: []models.CompetitorInsight{{
			Name:              "Zen Studio",
			Offerings:         []string{"adult yoga"},
			NegativeSentiment: []string{"no kids classes"},
		}},
	})
	require.NoError(t, err)
	require.NotNil(t, got.Enhanced)
	assert.Equal(t, "Launch", got.Enhanced.Timeline.Days1To30.Title)
	assert.Equal(t, []string{"Book now"}, got.Enhanced.ContentStrategy.CallsToAction)
	assert.Len(t, got.Enhanced.CompetitiveGaps, 1)
	assert.Contains(t, gw.Prompts[0], "Zen Studio")
	assert.Contains(t, gw.Prompts[0], "implementation_timeline")
}

func enhancedReply(objective string) string {
	return strings.TrimSuffix(strings.TrimSpace(validMatrix), "}") + fmt.Sprintf(`,
  "audiences": [{"segment": "Busy parents", "objectives": [{"objective": %q, "success_metrics": ["bookings"]}]}]
}`, objective)
}

func TestGenerateStrategy_EnhancedObjectivesAreBehaviors(t *testing.T) {
	competitors := []models.CompetitorInsight{{Name: "Zen Studio"}}

	t.Run("retries a metric objective", func(t *testing.T) {
		gw := mocks.NewMockGateway(
			mocks.Response{Text: enhancedReply("Increase signups by 20%")},
			mocks.Response{Text: enhancedReply("Book a trial class")},
		)

		got, err := newPlanner(gw).GenerateStrategy(context.Background(), caller, planner.StrategyInput{
			BusinessDescription: "Family yoga",
			Competitors:         competitors,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Attempts)
		require.NotNil(t, got.Enhanced)
		assert.Equal(t, "Book a trial class", got.Enhanced.Audiences[0].Objectives[0].Objective)
	})

	t.Run("fails when every attempt has one", func(t *testing.T) {
		gw := mocks.NewMockGateway(
			mocks.Response{Text: enhancedReply("Increase signups by 20%")},
			mocks.Response{Text: enhancedReply("Get 50 new members")},
		)

		_, err := newPlanner(gw).GenerateStrategy(context.Background(), caller, planner.StrategyInput{
			BusinessDescription: "Family yoga",
			Competitors:         competitors,
		})
		var failure *planner.StrategyFailure
		require.True(t, errors.As(err, &failure))
		require.Len(t, failure.Attempts, 2)
		assert.Contains(t, failure.Attempts[0], "audiences[0].objectives[0]")
		assert.Contains(t, failure.Attempts[1], "numeric target")
	})
}

func TestGenerateStrategy_ObjectivesAreBehaviors(t *testing.T) {
	var call int
	gw := &mocks.MockGateway{
		GenerateFunc: func(_ context.Context, prompt string, _ llm.Options) (string, error) {
			call++
			// every third business first gets a metric-style reply
			if call%3 == 1 {
				return `{"target_audience": ["a", "b", "c"], "objectives": ["Reach 1,000 followers", "Get 5 reviews", "Lift sales 10%"], "key_messages": ["x", "y", "z"]}`, nil
			}
			return validMatrix, nil
		},
	}
	p := newPlanner(gw)

	var objectives []string
	for i := 0; i < 50; i++ {
		got, err := p.GenerateStrategy(context.Background(), caller, planner.StrategyInput{
			BusinessDescription: fmt.Sprintf("Business number %d selling handmade goods", i),
		})
		require.NoError(t, err)
		objectives = append(objectives, got.Objectives...)
	}

	require.Len(t, objectives, 150)
	for _, o := range objectives {
		assert.NotContains(t, o, "%")
		assert.NoError(t, planner.CheckObjective(o))
	}
}

func TestCheckObjective(t *testing.T) {
	tests := []struct {
		objective string
		wantErr   bool
	}{
		{"Share their finished project photos", false},
		{"Visit the store with a friend", false},
		{"Increase sales by 20%", true},
		{"Post 3 times a week", true},
		{"Reach 1,000 followers", true},
		{"Rate us 4.5 stars", true},
	}
	for _, tt := range tests {
		t.Run(tt.objective, func(t *testing.T) {
			err := planner.CheckObjective(tt.objective)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
