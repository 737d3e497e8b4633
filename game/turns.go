package game

import (
	"time"

	"github.com/theworldofobi/whot/deck"
)

const maxTurnHistory = 100

// TurnAction is a record of one processed action, kept for display and
// debugging only. It plays no part in rule validation.
type TurnAction struct {
	PlayerID string
	Type     ActionType
	Card     *deck.Card
	At       time.Time
}

// TurnController owns whose turn it is: advancement, skips, the replay
// flag set by Hold-On cards, and turn timing. It is independent of
// card semantics.
type TurnController struct {
	state       *GameState
	allowReplay bool
	turnStart   time.Time
	history     []TurnAction
	now         func() time.Time
}

// NewTurnController constructs a TurnController over the given state
func NewTurnController(state *GameState) *TurnController {
	now := state.now
	if now == nil {
		now = time.Now
	}
	return &TurnController{
		state:     state,
		turnStart: now(),
		now:       now,
	}
}

// StartTurn begins the current player's turn and resets the timer
func (t *TurnController) StartTurn() {
	t.turnStart = t.now()
}

// EndTurn clears the replay flag and advances to the next seat
func (t *TurnController) EndTurn() {
	t.allowReplay = false
	t.state.AdvanceTurn()
	t.StartTurn()
}

// SkipTurn advances past a seat without touching the replay flag
func (t *TurnController) SkipTurn() {
	t.state.SkipNextPlayer()
}

// ForceNextPlayer advances the turn without clearing the replay flag,
// used for enforced skips distinct from a normal end of turn
func (t *TurnController) ForceNextPlayer() {
	t.state.AdvanceTurn()
	t.StartTurn()
}

// EnableMultipleActions lets the current player act again instead of
// ending their turn (Hold-On cards)
func (t *TurnController) EnableMultipleActions() {
	t.allowReplay = true
}

// DisableMultipleActions clears the replay flag
func (t *TurnController) DisableMultipleActions() {
	t.allowReplay = false
}

// CanPlayAgain reports whether the current player keeps the turn
func (t *TurnController) CanPlayAgain() bool {
	return t.allowReplay
}

// CurrentPlayerID returns the id of the player whose turn it is
func (t *TurnController) CurrentPlayerID() string {
	if p := t.state.CurrentPlayer(); p != nil {
		return p.ID
	}
	return ""
}

// IsPlayerTurn reports whether it is the given player's turn
func (t *TurnController) IsPlayerTurn(playerID string) bool {
	return playerID != "" && t.CurrentPlayerID() == playerID
}

// Record appends an action to the bounded history buffer
func (t *TurnController) Record(action TurnAction) {
	t.history = append(t.history, action)
	if len(t.history) > maxTurnHistory {
		t.history = t.history[len(t.history)-maxTurnHistory:]
	}
}

// History returns up to n most recent actions, newest last
func (t *TurnController) History(n int) []TurnAction {
	if n <= 0 || n > len(t.history) {
		n = len(t.history)
	}
	out := make([]TurnAction, n)
	copy(out, t.history[len(t.history)-n:])
	return out
}

// LastAction returns the most recently recorded action
func (t *TurnController) LastAction() (TurnAction, bool) {
	if len(t.history) == 0 {
		return TurnAction{}, false
	}
	return t.history[len(t.history)-1], true
}

// RemainingTime returns how long the current player has left. With the
// timer disabled (limit 0) the remaining time is effectively
// unlimited.
func (t *TurnController) RemainingTime() time.Duration {
	limit := t.state.Config.TurnTimeSeconds
	if limit <= 0 {
		return time.Duration(1<<62 - 1)
	}
	elapsed := t.now().Sub(t.turnStart)
	remaining := time.Duration(limit)*time.Second - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the current player's time is up
func (t *TurnController) Expired() bool {
	return t.RemainingTime() <= 0
}
