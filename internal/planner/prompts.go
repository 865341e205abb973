package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/marketing-planner/internal/models"
)

const strategyRules = `Rules:
- Return exactly 3 target audiences, 3 objectives and 3 key messages. Row i of each list belongs together.
- Each objective describes a specific behavior the audience should adopt (e.g. "Share their finished project photos with friends").
- Objectives must NOT contain percentages, numbers or counts. They are behaviors, not KPIs.
- Key messages are one sentence each, written for that row's audience.`

const strategyPromptTemplate = `You are a senior social media marketing strategist.

Business description:
%s
%s%s
%s

Respond ONLY with a JSON object of this shape:
{
  "target_audience": ["...", "...", "..."],
  "objectives": ["...", "...", "..."],
  "key_messages": ["...", "...", "..."]%s
}`

const enhancedStrategyShape = `,
  "audiences": [
    {
      "segment": "same text as target_audience[i]",
      "objectives": [
        {"objective": "...", "success_metrics": ["..."], "content_types": ["..."], "channels": ["..."]}
      ]
    }
  ],
  "implementation_timeline": {
    "days_1_30": {"title": "...", "focus": "...", "actions": ["..."]},
    "days_31_60": {"title": "...", "focus": "...", "actions": ["..."]},
    "days_61_90": {"title": "...", "focus": "...", "actions": ["..."]}
  },
  "competitive_gaps": [{"gap": "...", "strategy": "how to exploit it"}],
  "content_strategy": {
    "tone": "...",
    "frequency": "...",
    "cta_library": ["..."],
    "ab_test_ideas": ["..."]
  }`

func strategyPrompt(in StrategyInput) string {
	feedback := ""
	if strings.TrimSpace(in.Feedback) != "" {
		feedback = fmt.Sprintf("\nThe user rejected a previous version with this feedback, address it:\n%s\n", in.Feedback)
	}

	competitors := ""
	shape := ""
	if len(in.Competitors) > 0 {
		var sb strings.Builder
		sb.WriteString("\nCompetitor insights:\n")
		for _, c := range in.Competitors {
			fmt.Fprintf(&sb, "- %s\n  offerings: %s\n  customers like: %s\n  customers dislike: %s\n  their audience: %s\n  opportunities: %s\n",
				c.Name,
				strings.Join(c.Offerings, ", "),
				strings.Join(c.PositiveSentiment, ", "),
				strings.Join(c.NegativeSentiment, ", "),
				c.TargetAudience,
				strings.Join(c.Opportunities, ", "))
		}
		sb.WriteString("Use the gaps in what competitors do to sharpen each audience, and add a 90-day plan.\n")
		competitors = sb.String()
		shape = enhancedStrategyShape
	}

	return fmt.Sprintf(strategyPromptTemplate, in.BusinessDescription, feedback, competitors, strategyRules, shape)
}

const focusPromptTemplate = `Suggest marketing focus areas for this business:
%s

Respond ONLY with JSON:
{"business_type": "...", "areas_of_focus": ["...", "...", "...", "..."], "suggested_audiences": ["...", "...", "..."]}`

func focusPrompt(description string) string {
	return fmt.Sprintf(focusPromptTemplate, description)
}

func matrixBlock(m Matrix) string {
	var sb strings.Builder
	for i := 0; i < models.MatrixSize; i++ {
		fmt.Fprintf(&sb, "Row %d\n  audience: %s\n  objective: %s\n  message: %s\n",
			i+1, at(m.TargetAudience, i), at(m.Objectives, i), at(m.KeyMessages, i))
	}
	return sb.String()
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

const themesPromptTemplate = `You are planning a social media content calendar.

Strategy:
%s
%s
Create %d weekly themes that move these audiences toward their objectives. Spread the audiences across weeks.

Respond ONLY with a JSON array:
[{"week": 1, "theme": "...", "objective": "...", "target_segment": "one of the audiences", "phase": "awareness|consideration|conversion"}]`

func themesPrompt(in ThemeInput, count int) string {
	aesthetic := ""
	if strings.TrimSpace(in.Aesthetic) != "" {
		aesthetic = fmt.Sprintf("Visual and verbal style: %s\n", in.Aesthetic)
	}
	return fmt.Sprintf(themesPromptTemplate, matrixBlock(in.Strategy), aesthetic, count)
}

const weekPromptTemplate = `You are writing one week of a social media content plan.

Strategy:
%s
All weekly themes, for consistency across weeks:
%s
This week: week %d, theme "%s", objective "%s".%s
%s%s
Create 3 posts for this week. Each post uses one persuasion principle (reciprocity, social proof, authority, scarcity, liking, commitment) and explains how.

Respond ONLY with a JSON object:
{
  "week": %d,
  "theme": "%s",
  "posts": [
    {
      "type": "carousel|reel|story|static",
      "topic": "...",
      "audience": "...",
      "call_to_action": "...",
      "persuasion_principle": "...",
      "persuasion_explanation": "...",
      "visual_concept": "...",
      "proposed_caption": "..."
    }
  ]
}`

func weekPrompt(in WeekInput) string {
	var themes strings.Builder
	for _, t := range in.AllThemes {
		fmt.Fprintf(&themes, "- week %d: %s (%s)\n", t.Week, t.Theme, t.Objective)
	}

	segment := ""
	if in.Theme.TargetSegment != "" {
		segment = fmt.Sprintf(" Focus segment: %s.", in.Theme.TargetSegment)
	}
	aesthetic := ""
	if strings.TrimSpace(in.Aesthetic) != "" {
		aesthetic = fmt.Sprintf("Style: %s\n", in.Aesthetic)
	}
	feedback := ""
	if strings.TrimSpace(in.Feedback) != "" {
		feedback = fmt.Sprintf("The previous version of this week was rejected. Apply this feedback:\n%s\n", in.Feedback)
	}

	return fmt.Sprintf(weekPromptTemplate,
		matrixBlock(in.Strategy), themes.String(),
		in.Theme.Week, in.Theme.Theme, in.Theme.Objective, segment,
		aesthetic, feedback,
		in.Theme.Week, in.Theme.Theme)
}

const calendarPromptTemplate = `Build a 5-week social media posting calendar as an HTML table.

The first row of the table body starts on Sunday %s. Use 7 columns with headers Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday and exactly 5 body rows.
Every day cell is <td data-date="YYYY-MM-DD">. Place each post inside its day cell as:
<div class="post" data-week="W" data-post="P" data-audience="A" data-channel="CHANNEL">short topic</div>
where W and P are the week and post numbers below, and A is the audience number (1, 2 or 3).

Constraints:
- Never more than one post per day.
- Leave 7 to 10 days between posts for the same audience.
- Prefer these weekdays: %s.
- Channels to use: %s.

Posts:
%s
Respond with the HTML table only.`

func calendarPrompt(gridStart time.Time, weekdays []time.Weekday, channels []string, posts []Slot) string {
	days := make([]string, len(weekdays))
	for i, d := range weekdays {
		days[i] = d.String()
	}

	var sb strings.Builder
	for _, s := range posts {
		fmt.Fprintf(&sb, "- week %d post %d (audience %d): %s\n", s.Week, s.Index, s.AudienceIndex, s.Post.Topic)
	}

	return fmt.Sprintf(calendarPromptTemplate,
		gridStart.Format("2006-01-02"),
		strings.Join(days, ", "),
		strings.Join(channels, ", "),
		sb.String())
}

const refineSystemPrompt = `You help a marketer refine a 3x3 strategy matrix (audience, objective, key message per row).
Objectives are audience behaviors and never contain numbers or percentages.

Reply conversationally. When you offer choices, append any of these blocks on their own line:
AUDIENCE_OPTIONS: {"options": ["..."]}
OBJECTIVE_OPTIONS: {"options": ["..."]}
MESSAGE_OPTIONS: {"options": ["..."]}
When the user accepts a change, append:
MATRIX_UPDATES: {"target_audience": ["", "", ""], "objectives": ["", "", ""], "key_messages": ["", "", ""]}
using an empty string for cells that do not change, and
CHANGED_CELLS: {"cells": [{"field": "objectives", "index": 0}]}

Business description:
%s

Current matrix:
%s`

func refinePrompt(in RefineInput) string {
	return fmt.Sprintf(refineSystemPrompt, in.BusinessDescription, matrixBlock(in.Matrix))
}
