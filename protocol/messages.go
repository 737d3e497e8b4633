package protocol

import (
	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/game"
)

// Player identifies a player in a message
type Player struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// InboundMessage is a message from a player to the game engine
type InboundMessage struct {
	PlayerID        string     `json:"playerID"`
	Command         Cmd        `json:"command"`
	CardIndex       int        `json:"cardIndex"`
	AdditionalCards []int      `json:"additionalCards,omitempty"`
	ChosenSuit      *deck.Suit `json:"chosenSuit,omitempty"`
	Reverse         bool       `json:"reverse,omitempty"`
}

// OutboundMessage is a message from the game engine to a player
type OutboundMessage struct {
	PlayerID    string          `json:"playerID"`
	Command     Cmd             `json:"command"`
	Message     string          `json:"message,omitempty"`
	State       *game.StateView `json:"state,omitempty"`
	Joiner      *Player         `json:"joiner,omitempty"`
	CurrentTurn *Player         `json:"currentTurn,omitempty"`
	WinnerID    string          `json:"winnerId,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// ToAction maps an inbound message onto the engine's action type.
// Messages with no engine counterpart return false.
func (m InboundMessage) ToAction() (game.Action, bool) {
	action := game.Action{
		PlayerID:         m.PlayerID,
		CardIndex:        m.CardIndex,
		AdditionalCards:  m.AdditionalCards,
		ChosenSuit:       m.ChosenSuit,
		ReverseDirection: m.Reverse,
	}
	switch m.Command {
	case PlayCard:
		action.Type = game.ActionPlayCard
	case DrawCard:
		action.Type = game.ActionDrawCard
	case DeclareLastCard:
		action.Type = game.ActionDeclareLastCard
	case DeclareCheckUp:
		action.Type = game.ActionDeclareCheckUp
	case ChooseSuit:
		action.Type = game.ActionChooseSuit
	default:
		return game.Action{}, false
	}
	return action, true
}
