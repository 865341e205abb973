package models

import "time"

type Strategy struct {
	ID                  string            `db:"id" json:"id"`
	UserID              string            `db:"user_id" json:"user_id"`
	Name                string            `db:"name" json:"name"`
	BusinessDescription string            `db:"business_description" json:"business_description"`
	TargetAudience      []string          `db:"target_audience" json:"target_audience"`
	Objectives          []string          `db:"objectives" json:"objectives"`
	KeyMessages         []string          `db:"key_messages" json:"key_messages"`
	Enhanced            *EnhancedStrategy `db:"enhanced_strategy" json:"enhanced_strategy,omitempty"`
	CreatedAt           time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time         `db:"updated_at" json:"updated_at"`
}

// MatrixSize is the number of audience/objective/message rows in a strategy.
const MatrixSize = 3

// EnhancedStrategy is produced only when competitor data was supplied.
type EnhancedStrategy struct {
	Audiences       []AudiencePlan         `json:"audiences"`
	Timeline        ImplementationTimeline `json:"implementation_timeline"`
	CompetitiveGaps []CompetitiveGap       `json:"competitive_gaps"`
	ContentStrategy ContentStrategy        `json:"content_strategy"`
}

type AudiencePlan struct {
	Segment    string              `json:"segment"`
	Objectives []AudienceObjective `json:"objectives"`
}

type AudienceObjective struct {
	Objective      string   `json:"objective"`
	SuccessMetrics []string `json:"success_metrics"`
	ContentTypes   []string `json:"content_types"`
	Channels       []string `json:"channels"`
}

type ImplementationTimeline struct {
	Days1To30  TimelinePhase `json:"days_1_30"`
	Days31To60 TimelinePhase `json:"days_31_60"`
	Days61To90 TimelinePhase `json:"days_61_90"`
}

type TimelinePhase struct {
	Title   string   `json:"title"`
	Focus   string   `json:"focus"`
	Actions []string `json:"actions"`
}

type CompetitiveGap struct {
	Gap      string `json:"gap"`
	Strategy string `json:"strategy"`
}

type ContentStrategy struct {
	Tone          string   `json:"tone"`
	Frequency     string   `json:"frequency"`
	CallsToAction []string `json:"cta_library"`
	ABTestIdeas   []string `json:"ab_test_ideas"`
}

// CompetitorInsight is one analysed competitor fed into strategy generation.
type CompetitorInsight struct {
	Name              string   `json:"name" yaml:"name"`
	Offerings         []string `json:"offerings" yaml:"offerings"`
	PositiveSentiment []string `json:"positive_sentiment" yaml:"positive_sentiment"`
	NegativeSentiment []string `json:"negative_sentiment" yaml:"negative_sentiment"`
	TargetAudience    string   `json:"target_audience" yaml:"target_audience"`
	Opportunities     []string `json:"opportunities" yaml:"opportunities"`
}
