package stats

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/groupsort/internal/dataset"
	"github.com/lox/groupsort/internal/game"
)

func testSession(t *testing.T, clock quartz.Clock) *game.Session {
	t.Helper()
	categories := []dataset.Category{
		{ID: "cat-1", Name: "Red"},
		{ID: "cat-2", Name: "Blue"},
	}
	cards := []dataset.Card{
		{ID: "card-1", Title: "One", CategoryID: "cat-1"},
		{ID: "card-2", Title: "Two", CategoryID: "cat-1"},
		{ID: "card-3", Title: "Three", CategoryID: "cat-1"},
		{ID: "card-4", Title: "Four", CategoryID: "cat-2"},
		{ID: "card-5", Title: "Five", CategoryID: "cat-2"},
		{ID: "card-6", Title: "Six", CategoryID: "cat-2"},
	}
	return game.NewSession(categories, cards, game.SessionConfig{
		Rules: game.Rules{CategorySize: 3},
		Clock: clock,
	})
}

func TestRecorderCounts(t *testing.T) {
	clock := quartz.NewMock(t)
	session := testSession(t, clock)
	recorder := NewRecorder(clock)
	session.EventBus().Subscribe(recorder)

	pileID, result := session.TryCreatePile("card-1", "card-2")
	require.Equal(t, game.ResultAccepted, result)
	session.TryAddCard("card-4", pileID) // mistake
	session.TryAddCard("card-3", pileID) // completes

	clock.Advance(30 * time.Second)
	s := recorder.Snapshot()
	assert.Equal(t, 2, s.Moves)
	assert.Equal(t, 1, s.Mistakes)
	assert.Equal(t, 1, s.Completions)
	assert.Equal(t, 3, s.Attempts())
	assert.InDelta(t, 2.0/3.0, s.Accuracy(), 1e-9)
	assert.Equal(t, 30*time.Second, s.Elapsed)
	assert.InDelta(t, 4.0, s.MovesPerMinute(), 1e-9)
	assert.False(t, s.Won)
}

func TestRecorderWinAndSplit(t *testing.T) {
	clock := quartz.NewMock(t)
	session := testSession(t, clock)
	recorder := NewRecorder(clock)
	session.EventBus().Subscribe(recorder)

	p1, _ := session.TryCreatePile("card-1", "card-2")
	session.TryAddCard("card-3", p1)
	session.Split(p1)

	p1, _ = session.TryCreatePile("card-1", "card-2")
	session.TryAddCard("card-3", p1)
	p2, _ := session.TryCreatePile("card-4", "card-5")
	session.TryAddCard("card-6", p2)

	s := recorder.Snapshot()
	assert.Equal(t, 1, s.Splits)
	assert.Equal(t, 3, s.Completions)
	assert.True(t, s.Won)
}

func TestRecorderReset(t *testing.T) {
	clock := quartz.NewMock(t)
	session := testSession(t, clock)
	recorder := NewRecorder(clock)
	session.EventBus().Subscribe(recorder)

	session.TryCreatePile("card-1", "card-4") // mistake
	clock.Advance(time.Minute)
	session.Reset()

	s := recorder.Snapshot()
	assert.Equal(t, 0, s.Mistakes)
	assert.Equal(t, 0, s.Moves)
	assert.Equal(t, 1, s.Resets)
	assert.Equal(t, time.Duration(0), s.Elapsed)

	session.Reset()
	assert.Equal(t, 2, recorder.Snapshot().Resets)
}

func TestStatsZeroGuards(t *testing.T) {
	var s Stats
	assert.Zero(t, s.Accuracy())
	assert.Zero(t, s.MovesPerMinute())
}
