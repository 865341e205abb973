package planner_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outlineWeeks(weeks, posts int) []models.Week {
	out := make([]models.Week, weeks)
	for w := range out {
		out[w] = models.Week{Week: w + 1, Theme: fmt.Sprintf("Theme %d", w+1)}
		for p := 0; p < posts; p++ {
			out[w].Posts = append(out[w].Posts, models.PostPlan{
				Type:  "reel",
				Topic: fmt.Sprintf("Week %d post %d", w+1, p+1),
			})
		}
	}
	return out
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFallbackCalendar_WorkedExample(t *testing.T) {
	plan := planner.FallbackCalendar(planner.CalendarInput{
		Weeks: outlineWeeks(2, 3),
		Start: day("2024-06-03"),
	})

	require.Equal(t, planner.SourceFallback, plan.Source)
	var dates []string
	for _, s := range plan.Slots {
		dates = append(dates, s.Date.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2024-06-04", "2024-06-09", "2024-06-14", "2024-06-19", "2024-06-24", "2024-06-29"}, dates)
	assert.Equal(t, 9, plan.Slots[0].Date.Hour())

	assert.Equal(t, day("2024-06-02"), plan.Grid.Start)
	assert.Equal(t, []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}, plan.Grid.Headers)
	require.Len(t, plan.Grid.Rows, 5)
	for _, row := range plan.Grid.Rows {
		require.Len(t, row, 7)
	}

	tuesday := plan.Grid.Rows[0][2]
	assert.Equal(t, day("2024-06-04"), tuesday.Date)
	require.Len(t, tuesday.Posts, 1)
	assert.Equal(t, "Week 1 post 1", tuesday.Posts[0].Post.Topic)

	for _, h := range plan.Grid.Headers {
		assert.Contains(t, plan.HTML, ">"+h+"<")
	}
}

func TestFallbackCalendar_Deterministic(t *testing.T) {
	in := planner.CalendarInput{
		Weeks: outlineWeeks(3, 3),
		Start: day("2024-06-05"),
		Prefs: planner.Preferences{Channels: []string{"instagram", "linkedin"}, PostingTime: "14:30"},
	}

	first := planner.FallbackCalendar(in)
	second := planner.FallbackCalendar(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("fallback calendar differs between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.HTML, second.HTML)

	assert.Equal(t, "instagram", first.Slots[0].Channel)
	assert.Equal(t, "linkedin", first.Slots[1].Channel)
	assert.Equal(t, 14, first.Slots[0].Date.Hour())
	assert.Equal(t, 30, first.Slots[0].Date.Minute())
}

func TestFallbackCalendar_CapsPostsPerWeek(t *testing.T) {
	plan := planner.FallbackCalendar(planner.CalendarInput{Weeks: outlineWeeks(2, 5), Start: day("2024-06-03")})
	require.Len(t, plan.Slots, 6)
	assert.Equal(t, 3, plan.Slots[2].Index)
	assert.Equal(t, 2, plan.Slots[3].Week)
}

func TestFallbackCalendar_AudienceColors(t *testing.T) {
	weeks := outlineWeeks(1, 2)
	weeks[0].Posts[0].Audience = "remote workers"
	plan := planner.FallbackCalendar(planner.CalendarInput{Weeks: weeks, Start: day("2024-06-03"), Strategy: testMatrix})

	assert.Equal(t, 2, plan.Slots[0].AudienceIndex)
	assert.Equal(t, 1, plan.Slots[1].AudienceIndex, "unmatched audiences use the week's row")
	assert.Contains(t, plan.HTML, "#E8F5E9")
	assert.Contains(t, plan.HTML, "#E3F2FD")
}

func TestPreferencesWeekdays(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, planner.Preferences{Frequency: models.FrequencyLow}.Weekdays())
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, planner.Preferences{}.Weekdays())
	assert.Len(t, planner.Preferences{Frequency: models.FrequencyHigh}.Weekdays(), 5)
}

const modelTable = `Here is the calendar you asked for.
<table>
<thead><tr><th>Sunday</th><th>Monday</th><th>Tuesday</th><th>Wednesday</th><th>Thursday</th><th>Friday</th><th>Saturday</th></tr></thead>
<tbody>
<tr>
<td data-date="2024-06-02"></td>
<td data-date="2024-06-03"><div class="post" data-week="1" data-post="1" data-audience="2" data-channel="LinkedIn">Week 1 post 1</div></td>
<td data-date="2024-06-04"><script>alert(1)</script></td>
<td data-date="2024-06-05" onclick="steal()"><div class="post" data-week="1" data-post="2" data-audience="3" data-channel="tiktok">Week 1 post 2</div></td>
<td data-date="2024-06-06"></td>
<td data-date="2024-06-07"></td>
<td data-date="2024-06-08"></td>
</tr>
</tbody>
</table>
Let me know if you want changes.`

func TestBuildCalendar_RestylesModelTable(t *testing.T) {
	gw := mocks.NewMockGateway(mocks.Response{Text: modelTable})

	plan, err := newPlanner(gw).BuildCalendar(context.Background(), caller, planner.CalendarInput{
		Weeks: outlineWeeks(1, 2),
		Start: day("2024-06-03"),
		Prefs: planner.Preferences{Channels: []string{"instagram", "linkedin"}},
	})
	require.NoError(t, err)

	assert.Equal(t, planner.SourceLLM, plan.Source)
	require.Len(t, plan.Slots, 2)
	assert.Equal(t, day("2024-06-03").Add(9*time.Hour), plan.Slots[0].Date)
	assert.Equal(t, "linkedin", plan.Slots[0].Channel)
	assert.Equal(t, 2, plan.Slots[0].AudienceIndex)
	assert.Equal(t, "linkedin", plan.Slots[1].Channel, "channels outside the preferences are reassigned")

	assert.True(t, strings.HasPrefix(plan.HTML, "<table"))
	assert.Contains(t, plan.HTML, "background:#E8F5E9;")
	assert.Contains(t, plan.HTML, "background:#FFF3E0;")
	assert.NotContains(t, plan.HTML, "<script")
	assert.NotContains(t, plan.HTML, "onclick")
	assert.NotContains(t, plan.HTML, "Let me know")
	assert.Contains(t, gw.Prompts[0], "2024-06-02")
}

func TestBuildCalendar_Fallbacks(t *testing.T) {
	doubleBooked := `<table><tr>
<td data-date="2024-06-03"><div class="post" data-week="1" data-post="1">a</div><div class="post" data-week="1" data-post="2">b</div></td>
</tr></table>`

	partial := `<table><tr>
<td data-date="2024-06-03"><div class="post" data-week="1" data-post="1">a</div></td>
</tr></table>`

	tests := []struct {
		name  string
		reply mocks.Response
	}{
		{"upstream error", mocks.Response{Err: fmt.Errorf("connection reset")}},
		{"no table", mocks.Response{Text: "Sorry, I can only describe the calendar in words."}},
		{"no posts in table", mocks.Response{Text: "<table><tr><td>empty</td></tr></table>"}},
		{"double booked day", mocks.Response{Text: doubleBooked}},
		{"posts left out of the table", mocks.Response{Text: partial}},
	}

	in := planner.CalendarInput{Weeks: outlineWeeks(2, 3), Start: day("2024-06-03")}
	want := planner.FallbackCalendar(in)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := mocks.NewMockGateway(tt.reply)
			plan, err := newPlanner(gw).BuildCalendar(context.Background(), caller, in)
			require.NoError(t, err)
			if diff := cmp.Diff(want, plan); diff != "" {
				t.Errorf("unexpected fallback plan (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildCalendar_EmptyOutline(t *testing.T) {
	gw := mocks.NewMockGateway()
	_, err := newPlanner(gw).BuildCalendar(context.Background(), caller, planner.CalendarInput{Weeks: outlineWeeks(2, 0)})
	assert.Error(t, err)
	assert.Zero(t, gw.Calls())
}
