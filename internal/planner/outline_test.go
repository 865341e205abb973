package planner_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMatrix = planner.Matrix{
	TargetAudience: []string{"Busy parents", "Remote workers", "Students"},
	Objectives:     []string{"Book a class", "Share a desk photo", "Join the club"},
	KeyMessages:    []string{"Save time", "Feel good", "Learn together"},
}

func TestGenerateThemes(t *testing.T) {
	gw := mocks.NewMockGateway(mocks.Response{Text: `Here you go:
[
  {"week": 1, "theme": "Meet the studio", "objective": "Book a class", "target_segment": "Busy parents", "phase": "awareness"},
  {"week": 2, "theme": "Desk stretches", "objective": "Share a desk photo"},
  {"week": 3, "theme": "Study breaks", "objective": "Join the club"},
  {"week": 4, "theme": "Extra", "objective": "Extra"}
]`})

	themes, err := newPlanner(gw).GenerateThemes(context.Background(), caller, planner.ThemeInput{Strategy: testMatrix})
	require.NoError(t, err)
	require.Len(t, themes, planner.DefaultThemeCount)
	assert.Equal(t, "Meet the studio", themes[0].Theme)
	assert.Equal(t, "awareness", themes[0].Phase)
	assert.Equal(t, 3, themes[2].Week)
}

func TestGenerateThemes_RenumbersWeeks(t *testing.T) {
	gw := mocks.NewMockGateway(mocks.Response{Text: `[{"week": 1, "theme": "A"}, {"week": 1, "theme": "B"}]`})

	themes, err := newPlanner(gw).GenerateThemes(context.Background(), caller, planner.ThemeInput{Strategy: testMatrix, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, themes[0].Week)
	assert.Equal(t, 2, themes[1].Week)
}

func TestGenerateThemes_SingleAttempt(t *testing.T) {
	gw := mocks.NewMockGateway(
		mocks.Response{Text: "I cannot help with that."},
		mocks.Response{Text: `[{"week": 1, "theme": "never used"}]`},
	)

	_, err := newPlanner(gw).GenerateThemes(context.Background(), caller, planner.ThemeInput{Strategy: testMatrix})
	var genErr *planner.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "themes", genErr.Step)
	assert.Equal(t, 1, gw.Calls())
}

func testThemes() []models.Theme {
	return []models.Theme{
		{Week: 1, Theme: "Meet the studio", Objective: "Book a class"},
		{Week: 2, Theme: "Desk stretches", Objective: "Share a desk photo"},
		{Week: 3, Theme: "Study breaks", Objective: "Join the club"},
	}
}

func weekReply(week int) string {
	return fmt.Sprintf(`{"week": %d, "theme": "t", "posts": [
  {"type": "reel", "topic": "Topic %d-1", "audience": "Busy parents", "call_to_action": "Book", "persuasion_principle": "social proof", "persuasion_explanation": "others do it", "visual_concept": "class", "proposed_caption": "Join us"},
  {"type": "carousel", "topic": "Topic %d-2", "audience": "Students"}
]}`, week, week, week)
}

// weekGateway answers week prompts and fails the weeks in failing.
type weekGateway struct {
	mu      sync.Mutex
	calls   map[int]int
	failing map[int]bool
}

func (g *weekGateway) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for week := 1; week <= 3; week++ {
		if strings.Contains(prompt, fmt.Sprintf("This week: week %d,", week)) {
			g.calls[week]++
			if g.failing[week] {
				return "", &llm.UpstreamError{StatusCode: 500, Message: "internal error"}
			}
			return weekReply(week), nil
		}
	}
	return "", errors.New("unexpected prompt")
}

func (g *weekGateway) Chat(context.Context, []llm.Message, llm.Options) (string, error) {
	return "", errors.New("not used")
}

func (g *weekGateway) count(week int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[week]
}

func TestOutlineRun_WeekFailureIsIsolated(t *testing.T) {
	gw := &weekGateway{calls: map[int]int{}, failing: map[int]bool{2: true}}
	p := newPlanner(gw)

	var progress []string
	run := p.NewOutlineRun(caller, planner.OutlineInput{Strategy: testMatrix, Themes: testThemes()},
		planner.OnProgress(func(s planner.WeekState) {
			progress = append(progress, fmt.Sprintf("%d:%s", s.Theme.Week, s.Status))
		}))

	require.NoError(t, run.Run(context.Background()))

	states := run.States()
	assert.Equal(t, planner.WeekReady, states[0].Status)
	assert.Equal(t, planner.WeekErrored, states[1].Status)
	assert.Equal(t, planner.WeekReady, states[2].Status)
	assert.Contains(t, states[1].Error, "internal error")
	assert.NotNil(t, states[1].Week.Posts)
	assert.Empty(t, states[1].Week.Posts)
	assert.Len(t, states[0].Week.Posts, 2)
	assert.Equal(t, []string{
		"1:loading", "1:ready",
		"2:loading", "2:errored",
		"3:loading", "3:ready",
	}, progress)
	assert.Equal(t, 3, gw.count(2), "week 2 uses all of its attempts")
	assert.False(t, run.Done())
	assert.Len(t, run.Outline(), 2)

	gw.mu.Lock()
	gw.failing[2] = false
	gw.mu.Unlock()

	require.NoError(t, run.RetryWeek(context.Background(), 2))
	assert.Equal(t, planner.WeekReady, run.State(1).Status)
	assert.Empty(t, run.State(1).Error)
	assert.Equal(t, 1, gw.count(1))
	assert.Equal(t, 1, gw.count(3))
	assert.Equal(t, 4, gw.count(2))
	assert.True(t, run.Done())

	outline := run.Outline()
	require.Len(t, outline, 3)
	assert.NoError(t, models.ValidateWeeks(outline))
}

func TestOutlineRun_TransitionRules(t *testing.T) {
	gw := &weekGateway{calls: map[int]int{}, failing: map[int]bool{1: true}}
	p := newPlanner(gw)
	run := p.NewOutlineRun(caller, planner.OutlineInput{Strategy: testMatrix, Themes: testThemes()})

	assert.Error(t, run.RetryWeek(context.Background(), 1), "pending weeks cannot be retried")
	require.NoError(t, run.Run(context.Background()))

	assert.Error(t, run.RegenerateWeek(context.Background(), 1, "more fun"), "errored weeks are retried, not regenerated")
	assert.Error(t, run.RetryWeek(context.Background(), 2), "ready weeks cannot be retried")
	assert.Error(t, run.RetryWeek(context.Background(), 9))

	before := gw.count(2)
	require.NoError(t, run.RegenerateWeek(context.Background(), 2, "more fun"))
	assert.Equal(t, before+1, gw.count(2))
	assert.Equal(t, planner.WeekReady, run.State(1).Status)
}

func TestRestoreOutlineRun(t *testing.T) {
	gw := &weekGateway{calls: map[int]int{}, failing: map[int]bool{}}
	p := newPlanner(gw)
	themes := testThemes()

	states := []planner.WeekState{
		{Status: planner.WeekReady, Week: models.Week{Week: 1, Posts: []models.PostPlan{{Topic: "kept"}}}},
		{Status: planner.WeekLoading},
		{Status: planner.WeekPending},
	}
	run, err := p.RestoreOutlineRun(caller, planner.OutlineInput{Strategy: testMatrix, Themes: themes}, states)
	require.NoError(t, err)
	assert.Equal(t, planner.WeekErrored, run.State(1).Status)

	require.NoError(t, run.RetryWeek(context.Background(), 2))
	require.NoError(t, run.Run(context.Background()))
	assert.Zero(t, gw.count(1))
	assert.Equal(t, "kept", run.State(0).Week.Posts[0].Topic)
	assert.True(t, run.Done())

	_, err = p.RestoreOutlineRun(caller, planner.OutlineInput{Themes: themes}, states[:1])
	assert.Error(t, err)
}

func TestOutlineRun_AdvanceDispatchesOnStatus(t *testing.T) {
	gw := &weekGateway{calls: map[int]int{}, failing: map[int]bool{2: true}}
	p := newPlanner(gw)
	run := p.NewOutlineRun(caller, planner.OutlineInput{Strategy: testMatrix, Themes: testThemes()})
	ctx := context.Background()

	require.NoError(t, run.Advance(ctx, 1, ""))
	assert.Equal(t, planner.WeekReady, run.State(0).Status)
	assert.Equal(t, planner.WeekPending, run.State(1).Status, "other weeks are left alone")

	require.NoError(t, run.Advance(ctx, 2, ""))
	assert.Equal(t, planner.WeekErrored, run.State(1).Status)

	gw.mu.Lock()
	gw.failing[2] = false
	gw.mu.Unlock()
	require.NoError(t, run.Advance(ctx, 2, ""))
	assert.Equal(t, planner.WeekReady, run.State(1).Status)

	require.NoError(t, run.Advance(ctx, 1, "shorter captions"))
	assert.Equal(t, 2, gw.count(1))
	assert.Zero(t, gw.count(3))
	assert.Error(t, run.Advance(ctx, 7, ""))
}

func TestGenerateWeek_FallsBackToPostsArray(t *testing.T) {
	gw := mocks.NewMockGateway(
		mocks.Response{Text: "not json"},
		mocks.Response{Text: `[{"type": "story", "topic": "Behind the scenes"}]`},
	)

	week, err := newPlanner(gw).GenerateWeek(context.Background(), caller, planner.WeekInput{
		Strategy: testMatrix, Theme: testThemes()[0], AllThemes: testThemes(), Feedback: "shorter captions",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, week.Week)
	assert.Equal(t, "Behind the scenes", week.Posts[0].Topic)
	assert.Contains(t, gw.Prompts[0], "shorter captions")
}

func TestGenerateWeek_Exhausted(t *testing.T) {
	gw := mocks.NewMockGateway(
		mocks.Response{Text: `{"week": 1, "posts": []}`},
		mocks.Response{Text: "nope"},
		mocks.Response{Err: errors.New("boom")},
	)

	_, err := newPlanner(gw).GenerateWeek(context.Background(), caller, planner.WeekInput{Theme: testThemes()[0]})
	var stepErr *planner.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 3, stepErr.Attempts)
	assert.Equal(t, 3, gw.Calls())
}
