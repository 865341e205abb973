package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/marketing-planner/internal/extract"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/metrics"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"

	// postsPerWeek caps how many posts of one week are slotted.
	postsPerWeek = 3
	gridWeeks    = 5
	gridDays     = gridWeeks * 7

	defaultChannel     = "instagram"
	defaultPostingTime = "09:00"
)

// Weekdays are the literal grid column headers.
var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Preferences drive slotting. The zero value is usable.
type Preferences struct {
	Frequency   string   `json:"frequency" yaml:"frequency"`
	Channels    []string `json:"channels" yaml:"channels"`
	PostingTime string   `json:"posting_time" yaml:"posting_time"`
}

func PreferencesFrom(s *models.Settings) Preferences {
	if s == nil {
		return Preferences{}
	}
	return Preferences{Frequency: s.Frequency, Channels: s.Channels, PostingTime: s.PostingTime}
}

// Weekdays maps the frequency tier to the preferred posting days.
func (p Preferences) Weekdays() []time.Weekday {
	switch p.Frequency {
	case models.FrequencyLow:
		return []time.Weekday{time.Tuesday, time.Thursday}
	case models.FrequencyHigh:
		return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	default:
		return []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	}
}

func (p Preferences) channels() []string {
	var out []string
	for _, c := range p.Channels {
		if c = strings.TrimSpace(strings.ToLower(c)); c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []string{defaultChannel}
	}
	return out
}

// clock returns the posting time of day, falling back to 09:00.
func (p Preferences) clock() time.Duration {
	t, err := time.Parse("15:04", p.PostingTime)
	if err != nil {
		if p.PostingTime != "" {
			zap.L().Warn("invalid posting time, using default", zap.String("posting_time", p.PostingTime))
		}
		t, _ = time.Parse("15:04", defaultPostingTime)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// Slot is one planned post with its assigned date.
type Slot struct {
	Week          int             `json:"week"`
	Index         int             `json:"index"`
	AudienceIndex int             `json:"audience_index"`
	Post          models.PostPlan `json:"post"`
	Date          time.Time       `json:"date"`
	Channel       string          `json:"channel"`
}

type Cell struct {
	Date  time.Time `json:"date"`
	Posts []Slot    `json:"posts"`
}

// Grid is a 5 row by 7 column calendar starting on a Sunday.
type Grid struct {
	Start   time.Time `json:"start"`
	Headers []string  `json:"headers"`
	Rows    [][]Cell  `json:"rows"`
}

type CalendarInput struct {
	Weeks    []models.Week `json:"weeks"`
	Start    time.Time     `json:"start"`
	Prefs    Preferences   `json:"prefs"`
	Strategy Matrix        `json:"strategy"`
}

type CalendarPlan struct {
	Source string `json:"source"`
	HTML   string `json:"html"`
	Grid   *Grid  `json:"grid,omitempty"`
	Slots  []Slot `json:"slots"`
}

// BuildCalendar asks the model for a table and falls back to
// FallbackCalendar whenever no usable table comes back.
func (p *Planner) BuildCalendar(ctx context.Context, caller Caller, in CalendarInput) (*CalendarPlan, error) {
	slots := collectSlots(in.Weeks, in.Strategy)
	if len(slots) == 0 {
		return nil, fmt.Errorf("outline has no posts to schedule")
	}

	gridStart := GridStart(in.Start)
	prompt := calendarPrompt(gridStart, in.Prefs.Weekdays(), in.Prefs.channels(), slots)

	raw, err := p.llm.Generate(ctx, prompt, llm.Options{Temperature: 0.4, MaxOutputTokens: 8192})
	metrics.ObserveLLM("calendar", err)
	if err != nil {
		return p.fallback(caller, in, err), nil
	}

	table, err := extract.HTMLTable(raw)
	if err != nil {
		return p.fallback(caller, in, err), nil
	}

	plan, err := slotTable(table, slots, in.Prefs)
	if err != nil {
		return p.fallback(caller, in, err), nil
	}
	return plan, nil
}

func (p *Planner) fallback(caller Caller, in CalendarInput, reason error) *CalendarPlan {
	p.log.Warn("using algorithmic calendar", append(caller.fields("calendar"), zap.Error(reason))...)
	metrics.ObserveFallback("calendar")
	return FallbackCalendar(in)
}

// collectSlots flattens up to three posts per week, in outline order.
func collectSlots(weeks []models.Week, strategy Matrix) []Slot {
	var slots []Slot
	for wi, w := range weeks {
		for pi, post := range w.Posts {
			if pi == postsPerWeek {
				break
			}
			slots = append(slots, Slot{
				Week:          w.Week,
				Index:         pi + 1,
				AudienceIndex: audienceIndex(post.Audience, w.TargetSegment, strategy.TargetAudience, wi),
				Post:          post,
			})
		}
	}
	return slots
}

// audienceIndex is the 1-based strategy row the post speaks to.
func audienceIndex(audience, segment string, audiences []string, weekIdx int) int {
	for _, want := range []string{audience, segment} {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		for i, a := range audiences {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" || i >= 3 {
				continue
			}
			if a == want || strings.Contains(a, want) || strings.Contains(want, a) {
				return i + 1
			}
		}
	}
	return weekIdx%3 + 1
}

// GridStart is the Sunday on or before t, at midnight UTC.
func GridStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
