package game

import (
	"github.com/theworldofobi/whot/deck"
)

// ActionType enumerates the intents a player can submit
type ActionType int

const (
	ActionPlayCard ActionType = iota
	ActionDrawCard
	ActionDeclareLastCard
	ActionDeclareCheckUp
	ActionChooseSuit
	ActionForfeitTurn
)

var actionTypeNames = []string{
	"play_card",
	"draw_card",
	"declare_last_card",
	"declare_check_up",
	"choose_suit",
	"forfeit_turn",
}

func (a ActionType) String() string {
	if a < ActionPlayCard || a > ActionForfeitTurn {
		return "unknown"
	}
	return actionTypeNames[a]
}

// Action is a player intent submitted to the engine. CardIndex
// addresses the card to play; AdditionalCards carries extra indices
// of the same rank for a multi-card play. ChosenSuit accompanies a
// Whot card (or a choose_suit action); ReverseDirection asks for a
// direction change where the rules allow it.
type Action struct {
	Type             ActionType `json:"type"`
	PlayerID         string     `json:"playerId"`
	CardIndex        int        `json:"cardIndex"`
	AdditionalCards  []int      `json:"additionalCards,omitempty"`
	ChosenSuit       *deck.Suit `json:"chosenSuit,omitempty"`
	ReverseDirection bool       `json:"reverseDirection,omitempty"`
}

// ActionResult reports the outcome of processing an action. A
// rejected action carries a human-readable reason and guarantees that
// no state was mutated.
type ActionResult struct {
	Success           bool      `json:"success"`
	Message           string    `json:"message,omitempty"`
	AffectedPlayerIDs []string  `json:"affectedPlayerIds,omitempty"`
	NewState          *Snapshot `json:"newState,omitempty"`
}

func rejected(reason string) ActionResult {
	return ActionResult{Success: false, Message: reason}
}
