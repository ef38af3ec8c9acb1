package server

import (
	"encoding/json"
	"time"

	"github.com/lox/groupsort/internal/game"
)

// MessageType identifies a websocket message.
type MessageType string

// Client → server.
const (
	MessageTypeNewGame    MessageType = "new_game"
	MessageTypeCreatePile MessageType = "create_pile"
	MessageTypeAddCard    MessageType = "add_card"
	MessageTypeSplitPile  MessageType = "split_pile"
	MessageTypeReset      MessageType = "reset"
	MessageTypeGetState   MessageType = "get_state"
)

// Server → client.
const (
	MessageTypeGameState  MessageType = "game_state"
	MessageTypeMoveResult MessageType = "move_result"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope for all websocket traffic. State payloads are
// projection views; hidden category ids never cross this boundary.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// CreatePileData requests a new pile from two ungrouped cards.
type CreatePileData struct {
	FirstCardID  string `json:"firstCardId"`
	SecondCardID string `json:"secondCardId"`
}

// AddCardData requests adding an ungrouped card to a pile.
type AddCardData struct {
	CardID string `json:"cardId"`
	PileID string `json:"pileId"`
}

// SplitPileData requests destroying a pile.
type SplitPileData struct {
	PileID string `json:"pileId"`
}

// GameStateData carries a full state projection.
type GameStateData struct {
	GameID string         `json:"gameId"`
	State  game.StateView `json:"state"`
	Won    bool           `json:"won"`
}

// MoveResultData carries the outcome of a move plus the resulting state.
type MoveResultData struct {
	Result string         `json:"result"`
	PileID string         `json:"pileId,omitempty"`
	State  game.StateView `json:"state"`
	Won    bool           `json:"won"`
}

// ErrorData carries a protocol-level error.
type ErrorData struct {
	Message string `json:"message"`
}
