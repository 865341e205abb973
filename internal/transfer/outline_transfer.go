package transfer

import (
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
)

type ThemesRequest struct {
	Aesthetic string `json:"aesthetic"`
	Count     int    `json:"count"`
}

type OutlineGenerate struct {
	Aesthetic string         `json:"aesthetic"`
	Themes    []models.Theme `json:"themes"`
}

type OutlineWeek struct {
	Aesthetic string              `json:"aesthetic"`
	Themes    []models.Theme      `json:"themes"`
	States    []planner.WeekState `json:"states"`
	Week      int                 `json:"week"`
	Feedback  string              `json:"feedback"`
}

type OutlineSave struct {
	Outline []models.Week `json:"outline"`
}

type OutlineRunResponse struct {
	States []planner.WeekState `json:"states"`
	Done   bool                `json:"done"`
}
