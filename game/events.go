package game

import (
	"github.com/theworldofobi/whot/deck"
)

// EventType names a lifecycle event emitted by the engine
type EventType string

const (
	EventRoundStarted EventType = "round_started"
	EventCardPlayed   EventType = "card_played"
	EventCardDrawn    EventType = "card_drawn"
	EventRoundEnded   EventType = "round_ended"
	EventGameEnded    EventType = "game_ended"

	// EventAny subscribes a handler to every event type
	EventAny EventType = "*"
)

// Event carries a lifecycle notification and the state it produced.
// Delivery is synchronous and best-effort; the engine makes no
// guarantees to subscribers beyond at-most-once.
type Event struct {
	Type     EventType  `json:"type"`
	GameID   string     `json:"gameId"`
	PlayerID string     `json:"playerId,omitempty"`
	Card     *deck.Card `json:"card,omitempty"`
	WinnerID string     `json:"winnerId,omitempty"`
	Snapshot *Snapshot  `json:"snapshot,omitempty"`
}

// EventHandler consumes engine events
type EventHandler func(Event)

// Subscribe registers a handler for an event type. Use EventAny to
// receive everything.
func (e *Engine) Subscribe(t EventType, h EventHandler) {
	e.handlers[t] = append(e.handlers[t], h)
}

// emit buffers an event for dispatch. Events are delivered once the
// mutation that produced them has completed, so subscribers never run
// while the game is mid-update.
func (e *Engine) emit(ev Event) {
	ev.GameID = e.state.ID
	e.pending = append(e.pending, ev)
}

// TakeEvents drains the buffered events without dispatching them
func (e *Engine) TakeEvents() []Event {
	evs := e.pending
	e.pending = nil
	return evs
}

// dispatchPlan pairs drained events with a copy of the handler table.
// The copy is taken under the same lock that guards Subscribe, so
// delivery can run lock-free without racing a late subscription.
type dispatchPlan struct {
	events   []Event
	handlers map[EventType][]EventHandler
}

// takeDispatch drains the buffered events together with a snapshot of
// the subscribers. Callers run the plan after releasing the game's
// mutation lock.
func (e *Engine) takeDispatch() dispatchPlan {
	plan := dispatchPlan{
		events:   e.pending,
		handlers: make(map[EventType][]EventHandler, len(e.handlers)),
	}
	e.pending = nil
	for t, hs := range e.handlers {
		plan.handlers[t] = append([]EventHandler(nil), hs...)
	}
	return plan
}

// run delivers the events to the snapshotted subscribers
func (p dispatchPlan) run() {
	for _, ev := range p.events {
		for _, h := range p.handlers[ev.Type] {
			h(ev)
		}
		for _, h := range p.handlers[EventAny] {
			h(ev)
		}
	}
}
