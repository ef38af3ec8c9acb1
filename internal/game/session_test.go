package game

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	session := NewSession(testCategories(), testCards(), SessionConfig{
		Rules:     testRules(),
		Clock:     clock,
		NewPileID: sequentialIDs(),
	})
	return session, clock
}

// eventLog records published event types for assertions.
type eventLog struct {
	types []EventType
}

func (l *eventLog) OnEvent(event Event) {
	l.types = append(l.types, event.EventType())
}

func TestSessionHappyPath(t *testing.T) {
	session, _ := newTestSession(t)

	pileID, result := session.TryCreatePile("card-1", "card-2")
	require.Equal(t, ResultAccepted, result)
	require.Equal(t, "pile-1", pileID)
	assert.Equal(t, 0, session.State().Mistakes)

	// Wrong category: rejected, one mistake, pile unchanged.
	result = session.TryAddCard("card-4", pileID)
	assert.Equal(t, ResultRejectedMismatch, result)
	assert.Equal(t, 1, session.State().Mistakes)
	assert.Len(t, session.State().Piles[0].CardIDs, 2)

	// Completing card: pile locks and reveals its category name.
	result = session.TryAddCard("card-3", pileID)
	require.Equal(t, ResultAccepted, result)
	pile := session.State().Piles[0]
	assert.True(t, pile.Complete)
	assert.Equal(t, "Red", pile.RevealedCategory)
	assert.Equal(t, 1, session.State().Completed)

	require.NoError(t, checkInvariants(session.State()))
}

func TestSessionCreatePileMismatch(t *testing.T) {
	session, _ := newTestSession(t)

	pileID, result := session.TryCreatePile("card-1", "card-4")
	assert.Equal(t, ResultRejectedMismatch, result)
	assert.Empty(t, pileID)
	assert.Equal(t, 1, session.State().Mistakes)
	assert.Empty(t, session.State().Piles)
}

func TestSessionInvalidReferencesAreNotMistakes(t *testing.T) {
	session, _ := newTestSession(t)
	pileID, _ := session.TryCreatePile("card-1", "card-2")

	_, result := session.TryCreatePile("card-3", "ghost")
	assert.Equal(t, ResultUnknownCard, result)

	// A card already in a pile is unavailable, not a mistake.
	_, result = session.TryCreatePile("card-1", "card-3")
	assert.Equal(t, ResultUnknownCard, result)

	// Pairing a card with itself is a wiring defect.
	_, result = session.TryCreatePile("card-3", "card-3")
	assert.Equal(t, ResultUnknownCard, result)

	assert.Equal(t, ResultUnknownPile, session.TryAddCard("card-3", "ghost"))
	assert.Equal(t, ResultUnknownCard, session.TryAddCard("ghost", pileID))
	assert.Equal(t, ResultUnknownPile, session.Split("ghost"))

	assert.Equal(t, 0, session.State().Mistakes, "invalid references are never scored")
}

func TestSessionCompletePileTarget(t *testing.T) {
	session, _ := newTestSession(t)
	pileID, _ := session.TryCreatePile("card-1", "card-2")
	require.Equal(t, ResultAccepted, session.TryAddCard("card-3", pileID))

	result := session.TryAddCard("card-4", pileID)
	assert.Equal(t, ResultPileComplete, result)
	assert.Equal(t, 0, session.State().Mistakes)
	assert.Len(t, session.State().Piles[0].CardIDs, 3)
}

func TestSessionSplit(t *testing.T) {
	session, _ := newTestSession(t)
	pileID, _ := session.TryCreatePile("card-1", "card-2")
	session.TryAddCard("card-3", pileID)
	require.Equal(t, 1, session.State().Completed)

	require.Equal(t, ResultAccepted, session.Split(pileID))
	assert.Equal(t, 0, session.State().Completed)
	assert.Len(t, UngroupedCards(session.State()), 6)

	// The split cards are available for grouping again.
	_, result := session.TryCreatePile("card-1", "card-3")
	assert.Equal(t, ResultAccepted, result)
}

func TestSessionReset(t *testing.T) {
	session, _ := newTestSession(t)
	pileID, _ := session.TryCreatePile("card-1", "card-2")
	session.TryAddCard("card-4", pileID) // mistake
	session.TryAddCard("card-3", pileID)

	before := session.State().Cards
	session.Reset()

	s := session.State()
	assert.Empty(t, s.Piles)
	assert.Equal(t, 0, s.Mistakes)
	assert.Equal(t, 0, s.Completed)
	require.Len(t, s.Cards, len(before))
	for i := range s.Cards {
		assert.Equal(t, before[i].ID, s.Cards[i].ID, "reset must retain the display order")
	}
}

func TestSessionWin(t *testing.T) {
	session, _ := newTestSession(t)
	log := &eventLog{}
	session.EventBus().Subscribe(log)

	p1, _ := session.TryCreatePile("card-1", "card-2")
	session.TryAddCard("card-3", p1)
	assert.False(t, session.Won())

	p2, _ := session.TryCreatePile("card-4", "card-5")
	session.TryAddCard("card-6", p2)
	assert.True(t, session.Won())

	assert.Equal(t, []EventType{
		EventTypePileCreated,
		EventTypeCardAdded,
		EventTypePileCompleted,
		EventTypePileCreated,
		EventTypeCardAdded,
		EventTypePileCompleted,
		EventTypeGameWon,
	}, log.types)
}

func TestSessionMistakeEvents(t *testing.T) {
	session, _ := newTestSession(t)
	log := &eventLog{}
	session.EventBus().Subscribe(log)

	session.TryCreatePile("card-1", "card-4")
	require.Equal(t, []EventType{EventTypeMistake}, log.types)
}

func TestSessionElapsed(t *testing.T) {
	session, clock := newTestSession(t)

	clock.Advance(42 * time.Second)
	assert.Equal(t, 42*time.Second, session.Elapsed())

	// Reset restarts the session clock.
	session.Reset()
	clock.Advance(5 * time.Second)
	assert.Equal(t, 5*time.Second, session.Elapsed())
}

func TestSessionInvariantsAcrossActionSequence(t *testing.T) {
	session, _ := newTestSession(t)

	moves := []func(){
		func() { session.TryCreatePile("card-1", "card-2") },
		func() { session.TryAddCard("card-4", "pile-1") },
		func() { session.TryCreatePile("card-4", "card-5") },
		func() { session.TryAddCard("card-3", "pile-1") },
		func() { session.Split("pile-1") },
		func() { session.TryAddCard("card-6", "pile-2") },
		func() { session.Reset() },
		func() { session.TryCreatePile("card-2", "card-3") },
	}
	for i, move := range moves {
		move()
		require.NoError(t, checkInvariants(session.State()), "after move %d", i)
	}
}
