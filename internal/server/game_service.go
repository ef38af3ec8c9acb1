package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/groupsort/internal/dataset"
	"github.com/lox/groupsort/internal/game"
	"github.com/lox/groupsort/internal/pileid"
)

// GameService creates and tracks game sessions over one loaded universe. The
// mutex guards only the session map; each session belongs to a single
// connection, which serializes its moves.
type GameService struct {
	mu         sync.RWMutex
	categories []dataset.Category
	cards      []dataset.Card
	rules      game.Rules
	sessions   map[string]*game.Session
	logger     *log.Logger
	clock      quartz.Clock
}

// NewGameService creates a service over an already-loaded universe.
func NewGameService(categories []dataset.Category, cards []dataset.Card, rules game.Rules, logger *log.Logger, clock quartz.Clock) *GameService {
	return &GameService{
		categories: categories,
		cards:      cards,
		rules:      rules,
		sessions:   make(map[string]*game.Session),
		logger:     logger.WithPrefix("games"),
		clock:      clock,
	}
}

// CreateGame starts a new session and returns its id.
func (gs *GameService) CreateGame() (string, *game.Session) {
	id := pileid.Generate()
	session := game.NewSession(gs.categories, gs.cards, game.SessionConfig{
		Rules:  gs.rules,
		Logger: gs.logger,
		Clock:  gs.clock,
	})

	gs.mu.Lock()
	gs.sessions[id] = session
	gs.mu.Unlock()

	gs.logger.Info("game created", "game", id)
	return id, session
}

// Game looks up a session by id.
func (gs *GameService) Game(id string) (*game.Session, bool) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	session, ok := gs.sessions[id]
	return session, ok
}

// RemoveGame drops a session, typically when its connection closes.
func (gs *GameService) RemoveGame(id string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if _, ok := gs.sessions[id]; ok {
		delete(gs.sessions, id)
		gs.logger.Info("game removed", "game", id)
	}
}

// GameCount returns the number of live sessions.
func (gs *GameService) GameCount() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return len(gs.sessions)
}
