package tui

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/groupsort/internal/dataset"
	"github.com/lox/groupsort/internal/game"
)

func testModel(t *testing.T) *Model {
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

	n := 0
	session := game.NewSession(categories, cards, game.SessionConfig{
		Rules: game.Rules{CategorySize: 3},
		NewPileID: func() string {
			n++
			return fmt.Sprintf("pile-%d", n)
		},
	})
	return New(session, log.New(io.Discard))
}

func (m *Model) lastLog() string {
	if len(m.gameLog) == 0 {
		return ""
	}
	return m.gameLog[len(m.gameLog)-1]
}

func TestPairCreatesPile(t *testing.T) {
	m := testModel(t)

	quit := m.execute("pair 1 2")
	require.False(t, quit)

	state := m.session.State()
	require.Len(t, state.Piles, 1)
	assert.Equal(t, []string{"card-1", "card-2"}, state.Piles[0].CardIDs)
	assert.Contains(t, m.lastLog(), "One + Two")
}

func TestPairMismatchReportsMistake(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 4")

	assert.Empty(t, m.session.State().Piles)
	assert.Equal(t, 1, m.session.State().Mistakes)
	assert.Contains(t, m.lastLog(), "don't belong together")
}

func TestAddCompletesPile(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 2")
	// Card numbering shifts once One and Two are piled: Three is now first.
	m.execute("add 1 1")

	state := m.session.State()
	require.Len(t, state.Piles, 1)
	assert.True(t, state.Piles[0].Complete)
	assert.Equal(t, "Red", state.Piles[0].RevealedCategory)
	assert.Contains(t, m.lastLog(), "Category revealed: Red")
}

func TestAddMismatchReportsMistake(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 2")
	m.execute("add 2 1") // Four into the Red pile

	state := m.session.State()
	assert.Len(t, state.Piles[0].CardIDs, 2)
	assert.Equal(t, 1, state.Mistakes)
	assert.Contains(t, m.lastLog(), "doesn't belong in pile 1")
}

func TestSplitReturnsCards(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 2")
	m.execute("split 1")

	assert.Empty(t, m.session.State().Piles)
	assert.Len(t, game.UngroupedCards(m.session.State()), 6)
	assert.Contains(t, m.lastLog(), "2 cards returned")
}

func TestResetClearsProgress(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 4")
	m.execute("pair 1 2")
	m.execute("reset")

	state := m.session.State()
	assert.Empty(t, state.Piles)
	assert.Zero(t, state.Mistakes)
	assert.Contains(t, m.lastLog(), "Game reset")
}

func TestBadIndexesRejected(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 99")
	assert.Contains(t, m.lastLog(), "No such card: 99")
	assert.Empty(t, m.session.State().Piles)
	assert.Zero(t, m.session.State().Mistakes)

	m.execute("add 1 1")
	assert.Contains(t, m.lastLog(), "No such pile: 1")

	m.execute("pair one two")
	assert.Contains(t, m.lastLog(), "No such card")
}

func TestUsageErrors(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1")
	assert.Contains(t, m.lastLog(), "Usage: pair")

	m.execute("add 1")
	assert.Contains(t, m.lastLog(), "Usage: add")

	m.execute("split")
	assert.Contains(t, m.lastLog(), "Usage: split")

	m.execute("frobnicate")
	assert.Contains(t, m.lastLog(), "Unknown command")
}

func TestQuitCommands(t *testing.T) {
	m := testModel(t)

	for _, cmd := range []string{"quit", "q", "exit"} {
		assert.True(t, m.execute(cmd), cmd)
	}
	assert.False(t, m.execute("cards"))
}

func TestWinAnnouncement(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 2") // One + Two
	m.execute("add 1 1")  // Three completes Red
	m.execute("pair 1 2") // Four + Five
	m.execute("add 1 2")  // Six completes Blue

	require.True(t, m.session.Won())
	joined := strings.Join(m.gameLog, "\n")
	assert.Contains(t, joined, "Category revealed: Blue")
	assert.Contains(t, joined, "You won!")
}

func TestStatsCommand(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 2")
	m.execute("pair 1 4") // Three + Six, mismatch
	m.execute("stats")

	assert.Contains(t, m.lastLog(), "moves 1")
	assert.Contains(t, m.lastLog(), "mistakes 1")
	assert.Contains(t, m.lastLog(), "accuracy 50%")
}

func TestStatusLine(t *testing.T) {
	m := testModel(t)

	m.execute("pair 1 2")
	m.execute("add 1 1")

	status := m.statusLine()
	assert.Contains(t, status, "placed 3/6")
	assert.Contains(t, status, "complete 1")
	assert.Contains(t, status, "50%")
}
