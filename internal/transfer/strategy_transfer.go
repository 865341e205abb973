package transfer

import (
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
)

type StrategyGenerate struct {
	BusinessDescription string                     `json:"business_description"`
	Feedback            string                     `json:"feedback"`
	Competitors         []models.CompetitorInsight `json:"competitors"`
}

type StrategySave struct {
	Name                string                   `json:"name"`
	BusinessDescription string                   `json:"business_description"`
	TargetAudience      []string                 `json:"target_audience"`
	Objectives          []string                 `json:"objectives"`
	KeyMessages         []string                 `json:"key_messages"`
	Enhanced            *models.EnhancedStrategy `json:"enhanced_strategy"`
}

func (s StrategySave) Model() *models.Strategy {
	return &models.Strategy{
		Name:                s.Name,
		BusinessDescription: s.BusinessDescription,
		TargetAudience:      s.TargetAudience,
		Objectives:          s.Objectives,
		KeyMessages:         s.KeyMessages,
		Enhanced:            s.Enhanced,
	}
}

type Suggestions struct {
	BusinessDescription string `json:"business_description"`
}

type Refine struct {
	BusinessDescription string         `json:"business_description"`
	Matrix              planner.Matrix `json:"matrix"`
	History             []llm.Message  `json:"history"`
	Message             string         `json:"message"`
}
