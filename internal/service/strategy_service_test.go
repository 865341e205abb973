package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCascade(t *testing.T, f *fixture) {
	t.Helper()
	f.seedStrategy(t, "s1")
	f.seedCalendar(t, "c1", "s1", samplePosts("c1", models.PostStatusDraft, models.PostStatusScheduled)...)
	f.seedCalendar(t, "c2", "s1", samplePosts("c2", models.PostStatusPublished)...)
	_, err := f.outlines.Create(context.Background(), &models.ContentOutline{ID: "o1", UserID: owner, StrategyID: "s1", Outline: sampleWeeks()})
	require.NoError(t, err)
}

func TestRemoveStrategyCascadeOrder(t *testing.T) {
	f := newFixture()
	seedCascade(t, f)

	require.NoError(t, f.strategies().Remove(context.Background(), owner, "s1"))

	assert.Equal(t, []string{
		"posts.RemoveByCalendarID c1",
		"calendar.Remove c1",
		"posts.RemoveByCalendarID c2",
		"calendar.Remove c2",
		"outline.Remove o1",
		"strategy.Remove s1",
	}, f.log.Calls())

	assert.Empty(t, f.calendars.Calendars)
	assert.Empty(t, f.posts.Posts)
	assert.Empty(t, f.outlines.Outlines)
	assert.Empty(t, f.strategy.Strategies)
	assert.Equal(t, []string{models.AuditDeleteStrategy}, f.audit.Actions())
}

func TestRemoveStrategyCascadeIsNotAtomic(t *testing.T) {
	f := newFixture()
	seedCascade(t, f)
	f.outlines.Errors["Remove"] = errors.New("connection reset")

	err := f.strategies().Remove(context.Background(), owner, "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete outline o1")

	// earlier and later deletes are not rolled back
	assert.Empty(t, f.calendars.Calendars)
	assert.Empty(t, f.strategy.Strategies)
	assert.Contains(t, f.outlines.Outlines, "o1")

	require.Len(t, f.audit.Entries, 1)
	assert.Equal(t, false, f.audit.Entries[0].Details["complete"])
}

func TestRemoveStrategyChecksOwner(t *testing.T) {
	f := newFixture()
	seedCascade(t, f)

	err := f.strategies().Remove(context.Background(), "someone-else", "s1")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.log.Calls())

	err = f.strategies().Remove(context.Background(), owner, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateStrategyValidatesMatrix(t *testing.T) {
	f := newFixture()
	svc := f.strategies()

	st := sampleStrategy()
	st.Objectives = st.Objectives[:2]
	_, err := svc.Create(context.Background(), owner, st)
	assert.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.Create(context.Background(), owner, sampleStrategy())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner, created.UserID)

	list, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateStrategyReplacesFields(t *testing.T) {
	f := newFixture()
	f.seedStrategy(t, "s1")
	svc := f.strategies()

	replacement := sampleStrategy()
	replacement.ID = "s1"
	replacement.Name = "Renamed"
	replacement.KeyMessages = []string{"One", "Two", "Three"}

	updated, err := svc.Update(context.Background(), owner, replacement)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, []string{"One", "Two", "Three"}, updated.KeyMessages)
	assert.Equal(t, owner, updated.UserID)

	replacement.UserID = "someone-else"
	_, err = svc.Update(context.Background(), "someone-else", replacement)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGenerateStrategyPassesFailureThrough(t *testing.T) {
	f := newFixture(
		mocks.Response{Text: "not json"},
		mocks.Response{Text: `{"target_audience": ["a"]}`},
	)

	_, err := f.strategies().Generate(context.Background(), planner.Caller{UserID: owner}, planner.StrategyInput{
		BusinessDescription: "Bakery",
	})
	var failure *planner.StrategyFailure
	require.ErrorAs(t, err, &failure)
	assert.Len(t, failure.Attempts, 2)
}
