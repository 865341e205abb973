package models

import (
	"fmt"
	"time"
)

type ContentOutline struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	StrategyID string    `db:"strategy_id" json:"strategy_id"`
	Outline    []Week    `db:"outline" json:"outline"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Theme is the plan for one week before its posts are generated.
type Theme struct {
	Week          int    `json:"week" yaml:"week"`
	Theme         string `json:"theme" yaml:"theme"`
	Objective     string `json:"objective" yaml:"objective"`
	TargetSegment string `json:"target_segment,omitempty" yaml:"target_segment,omitempty"`
	Phase         string `json:"phase,omitempty" yaml:"phase,omitempty"`
}

type Week struct {
	Week          int        `json:"week" yaml:"week"`
	Theme         string     `json:"theme" yaml:"theme"`
	Objective     string     `json:"objective" yaml:"objective"`
	TargetSegment string     `json:"target_segment,omitempty" yaml:"target_segment,omitempty"`
	Phase         string     `json:"phase,omitempty" yaml:"phase,omitempty"`
	Posts         []PostPlan `json:"posts" yaml:"posts"`
}

type PostPlan struct {
	Type                  string `json:"type" yaml:"type"`
	Topic                 string `json:"topic" yaml:"topic"`
	Audience              string `json:"audience" yaml:"audience"`
	CallToAction          string `json:"call_to_action" yaml:"call_to_action"`
	PersuasionPrinciple   string `json:"persuasion_principle" yaml:"persuasion_principle"`
	PersuasionExplanation string `json:"persuasion_explanation" yaml:"persuasion_explanation"`
	VisualConcept         string `json:"visual_concept" yaml:"visual_concept"`
	ProposedCaption       string `json:"proposed_caption" yaml:"proposed_caption"`
}

// ValidateWeeks checks that week numbers are unique and strictly increasing.
func ValidateWeeks(weeks []Week) error {
	for i := 1; i < len(weeks); i++ {
		if weeks[i].Week <= weeks[i-1].Week {
			return fmt.Errorf("week %d must come after week %d", weeks[i].Week, weeks[i-1].Week)
		}
	}
	return nil
}
