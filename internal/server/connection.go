package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/groupsort/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Connection wraps one websocket client. A connection owns at most one game
// session; all of its moves are applied from the read loop, so the session
// sees a single serialized dispatch stream.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	gameID  string
	session *game.Session
}

// NewConnection creates a connection wrapper.
func NewConnection(conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		server: server,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) readPump() {
	defer func() {
		if c.gameID != "" {
			c.server.gameService.RemoveGame(c.gameID)
		}
		c.server.unregister <- c
		c.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("read failed", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Error("write failed", "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeNewGame:
		c.handleNewGame(msg)
	case MessageTypeCreatePile:
		c.handleCreatePile(msg)
	case MessageTypeAddCard:
		c.handleAddCard(msg)
	case MessageTypeSplitPile:
		c.handleSplitPile(msg)
	case MessageTypeReset:
		c.handleReset(msg)
	case MessageTypeGetState:
		c.handleGetState(msg)
	default:
		c.sendError(msg, "unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) handleNewGame(msg *Message) {
	if c.gameID != "" {
		c.server.gameService.RemoveGame(c.gameID)
	}
	c.gameID, c.session = c.server.gameService.CreateGame()
	c.sendState(msg)
}

func (c *Connection) handleCreatePile(msg *Message) {
	session, ok := c.requireGame(msg)
	if !ok {
		return
	}

	var data CreatePileData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError(msg, "invalid create_pile payload")
		return
	}

	pileID, result := session.TryCreatePile(data.FirstCardID, data.SecondCardID)
	c.sendMoveResult(msg, result, pileID)
}

func (c *Connection) handleAddCard(msg *Message) {
	session, ok := c.requireGame(msg)
	if !ok {
		return
	}

	var data AddCardData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError(msg, "invalid add_card payload")
		return
	}

	result := session.TryAddCard(data.CardID, data.PileID)
	c.sendMoveResult(msg, result, data.PileID)
}

func (c *Connection) handleSplitPile(msg *Message) {
	session, ok := c.requireGame(msg)
	if !ok {
		return
	}

	var data SplitPileData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError(msg, "invalid split_pile payload")
		return
	}

	result := session.Split(data.PileID)
	c.sendMoveResult(msg, result, data.PileID)
}

func (c *Connection) handleReset(msg *Message) {
	session, ok := c.requireGame(msg)
	if !ok {
		return
	}
	session.Reset()
	c.sendState(msg)
}

func (c *Connection) handleGetState(msg *Message) {
	if _, ok := c.requireGame(msg); !ok {
		return
	}
	c.sendState(msg)
}

func (c *Connection) requireGame(msg *Message) (*game.Session, bool) {
	if c.session == nil {
		c.sendError(msg, "no active game, send new_game first")
		return nil, false
	}
	return c.session, true
}

func (c *Connection) sendState(msg *Message) {
	out, err := NewMessage(MessageTypeGameState, GameStateData{
		GameID: c.gameID,
		State:  game.Snapshot(c.session.State()),
		Won:    c.session.Won(),
	})
	if err != nil {
		c.logger.Error("failed to build state message", "error", err)
		return
	}
	out.RequestID = msg.RequestID
	c.enqueue(out)
}

func (c *Connection) sendMoveResult(msg *Message, result game.Result, pileID string) {
	data := MoveResultData{
		Result: result.String(),
		State:  game.Snapshot(c.session.State()),
		Won:    c.session.Won(),
	}
	if result.Accepted() {
		data.PileID = pileID
	}

	out, err := NewMessage(MessageTypeMoveResult, data)
	if err != nil {
		c.logger.Error("failed to build move result", "error", err)
		return
	}
	out.RequestID = msg.RequestID
	c.enqueue(out)
}

func (c *Connection) sendError(msg *Message, message string) {
	out, err := NewMessage(MessageTypeError, ErrorData{Message: message})
	if err != nil {
		return
	}
	out.RequestID = msg.RequestID
	c.enqueue(out)
}

func (c *Connection) enqueue(msg *Message) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	}
}
