package game

import "time"

// EventType identifies a game event.
type EventType string

const (
	EventTypePileCreated   EventType = "pile_created"
	EventTypeCardAdded     EventType = "card_added"
	EventTypePileCompleted EventType = "pile_completed"
	EventTypePileSplit     EventType = "pile_split"
	EventTypeMistake       EventType = "mistake"
	EventTypeGameReset     EventType = "game_reset"
	EventTypeGameWon       EventType = "game_won"
)

func (et EventType) String() string { return string(et) }

// Event is anything published on the session's event bus. Timestamps come
// from the session clock so event streams are reproducible under a mock clock.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// PileCreatedEvent is published when two cards form a new pile.
type PileCreatedEvent struct {
	PileID    string
	CardIDs   []string
	timestamp time.Time
}

func (e PileCreatedEvent) EventType() EventType { return EventTypePileCreated }
func (e PileCreatedEvent) Timestamp() time.Time { return e.timestamp }

// CardAddedEvent is published for every accepted insertion into a pile.
type CardAddedEvent struct {
	PileID    string
	CardID    string
	PileSize  int
	timestamp time.Time
}

func (e CardAddedEvent) EventType() EventType { return EventTypeCardAdded }
func (e CardAddedEvent) Timestamp() time.Time { return e.timestamp }

// PileCompletedEvent is published when a pile reaches the category size and
// its category name is revealed.
type PileCompletedEvent struct {
	PileID       string
	RevealedName string
	Completed    int
	timestamp    time.Time
}

func (e PileCompletedEvent) EventType() EventType { return EventTypePileCompleted }
func (e PileCompletedEvent) Timestamp() time.Time { return e.timestamp }

// PileSplitEvent is published when a pile is destroyed and its cards return
// to the ungrouped pool.
type PileSplitEvent struct {
	PileID      string
	WasComplete bool
	timestamp   time.Time
}

func (e PileSplitEvent) EventType() EventType { return EventTypePileSplit }
func (e PileSplitEvent) Timestamp() time.Time { return e.timestamp }

// MistakeEvent is published for every rejected grouping attempt.
type MistakeEvent struct {
	CardID    string
	PileID    string // empty for a rejected pile creation
	Mistakes  int
	timestamp time.Time
}

func (e MistakeEvent) EventType() EventType { return EventTypeMistake }
func (e MistakeEvent) Timestamp() time.Time { return e.timestamp }

// GameResetEvent is published when the game is cleared back to its initial
// ungrouped state.
type GameResetEvent struct {
	timestamp time.Time
}

func (e GameResetEvent) EventType() EventType { return EventTypeGameReset }
func (e GameResetEvent) Timestamp() time.Time { return e.timestamp }

// GameWonEvent is published when the final pile completes.
type GameWonEvent struct {
	Mistakes  int
	timestamp time.Time
}

func (e GameWonEvent) EventType() EventType { return EventTypeGameWon }
func (e GameWonEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events.
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous and
// in subscription order, matching the engine's single dispatch stream.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish delivers an event to all subscribers.
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
