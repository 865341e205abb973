package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestFocusAreas(t *testing.T) {
	gw := mocks.NewMockGateway(mocks.Response{Text: `{"business_type": "bakery", "areas_of_focus": ["Seasonal menus", "Local events"], "suggested_audiences": ["Neighbours"]}`})

	got := newPlanner(gw).SuggestFocusAreas(context.Background(), caller, "Neighbourhood bakery")
	assert.False(t, got.Fallback)
	assert.Equal(t, "bakery", got.BusinessType)
	assert.Equal(t, []string{"Seasonal menus", "Local events"}, got.AreasOfFocus)
}

func TestSuggestFocusAreas_AlwaysFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		reply mocks.Response
	}{
		{"upstream error", mocks.Response{Err: &llm.UpstreamError{StatusCode: 429, Message: "quota exceeded"}}},
		{"missing key", mocks.Response{Err: llm.ErrAPIKeyNotFound}},
		{"prose", mocks.Response{Text: "A bakery should focus on bread."}},
		{"empty areas", mocks.Response{Text: `{"business_type": "bakery", "areas_of_focus": []}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newPlanner(mocks.NewMockGateway(tt.reply)).SuggestFocusAreas(context.Background(), caller, "bakery")
			assert.True(t, got.Fallback)
			assert.NotEmpty(t, got.AreasOfFocus)
			assert.NotEmpty(t, got.SuggestedAudiences)
		})
	}
}

func TestRefineMatrix(t *testing.T) {
	reply := `Here are some ideas.
AUDIENCE_OPTIONS: {"options": ["New parents", "Grandparents"]}
I updated the second objective for you.
MATRIX_UPDATES: {"target_audience": ["", "", ""], "objectives": ["", "Post their home office on Instagram", "Hit 500 signups"], "key_messages": ["", "", ""]}
Pick one!`
	gw := mocks.NewMockGateway(mocks.Response{Text: reply})

	history := []llm.Message{
		{Role: llm.RoleUser, Text: "Can you help with audiences?"},
		{Role: llm.RoleModel, Text: "Of course."},
	}
	got, err := newPlanner(gw).RefineMatrix(context.Background(), caller, planner.RefineInput{
		BusinessDescription: "Co-working space",
		Matrix:              testMatrix,
		History:             history,
		Message:             "Make objective two more concrete",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"New parents", "Grandparents"}, got.AudienceOptions)
	assert.Nil(t, got.ObjectiveOptions)
	assert.NotContains(t, got.Message, "AUDIENCE_OPTIONS")
	assert.NotContains(t, got.Message, "MATRIX_UPDATES")
	assert.Contains(t, got.Message, "Here are some ideas.")
	assert.Contains(t, got.Message, "Pick one!")

	assert.Equal(t, "Post their home office on Instagram", got.Matrix.Objectives[1])
	assert.Equal(t, testMatrix.Objectives[2], got.Matrix.Objectives[2], "numeric objectives are not applied")
	assert.Equal(t, testMatrix.Objectives[1], "Share a desk photo", "input matrix is not mutated")
	assert.Equal(t, []planner.ChangedCell{{Field: "objectives", Index: 1}}, got.ChangedCells)

	require.Len(t, got.History, 4)
	assert.Equal(t, llm.RoleModel, got.History[3].Role)
	assert.Equal(t, reply, got.History[3].Text)

	require.Len(t, gw.Histories, 1)
	sent := gw.Histories[0]
	require.Len(t, sent, 4)
	assert.Contains(t, sent[0].Text, "Co-working space")
	assert.Equal(t, "Make objective two more concrete", sent[3].Text)
}

func TestRefineMatrix_ChangedCellsBlock(t *testing.T) {
	reply := `Done.
MATRIX_UPDATES: {"key_messages": ["Save an hour a day"]}
CHANGED_CELLS: {"cells": [{"field": "key_messages", "index": 0}]}`
	gw := mocks.NewMockGateway(mocks.Response{Text: reply})

	got, err := newPlanner(gw).RefineMatrix(context.Background(), caller, planner.RefineInput{Matrix: testMatrix, Message: "shorter"})
	require.NoError(t, err)
	assert.Equal(t, "Done.", got.Message)
	assert.Equal(t, "Save an hour a day", got.Matrix.KeyMessages[0])
	assert.Equal(t, []planner.ChangedCell{{Field: "key_messages", Index: 0}}, got.ChangedCells)
}

func TestRefineMatrix_FencedBlock(t *testing.T) {
	reply := "Updated.\nMATRIX_UPDATES:\n```json\n{\"key_messages\": [\"Save an hour a day\"]}\n```\nAnything else?"
	gw := mocks.NewMockGateway(mocks.Response{Text: reply})

	got, err := newPlanner(gw).RefineMatrix(context.Background(), caller, planner.RefineInput{Matrix: testMatrix, Message: "shorter"})
	require.NoError(t, err)
	assert.Equal(t, "Save an hour a day", got.Matrix.KeyMessages[0])
	assert.Equal(t, []planner.ChangedCell{{Field: "key_messages", Index: 0}}, got.ChangedCells)
	assert.NotContains(t, got.Message, "```")
	assert.Contains(t, got.Message, "Updated.")
	assert.Contains(t, got.Message, "Anything else?")
}

func TestRefineMatrix_BrokenBlockIsSkipped(t *testing.T) {
	gw := mocks.NewMockGateway(mocks.Response{Text: `Try these.
OBJECTIVE_OPTIONS: {"options": ["Visit", `})

	got, err := newPlanner(gw).RefineMatrix(context.Background(), caller, planner.RefineInput{Matrix: testMatrix, Message: "ideas?"})
	require.NoError(t, err)
	assert.Nil(t, got.ObjectiveOptions)
	assert.Equal(t, testMatrix, got.Matrix)
}

func TestRefineMatrix_UpstreamError(t *testing.T) {
	gw := mocks.NewMockGateway(mocks.Response{Err: &llm.UpstreamError{StatusCode: 500, Message: "down"}})

	_, err := newPlanner(gw).RefineMatrix(context.Background(), caller, planner.RefineInput{Matrix: testMatrix, Message: "hi"})
	var genErr *planner.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "refine", genErr.Step)

	_, err = newPlanner(gw).RefineMatrix(context.Background(), caller, planner.RefineInput{Matrix: testMatrix})
	assert.Error(t, err)
}
