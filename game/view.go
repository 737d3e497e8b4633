package game

import (
	"github.com/theworldofobi/whot/deck"
)

// PlayerView is a player as seen by a particular viewer. Only the
// viewer's own hand carries card contents; everyone else shows a
// count.
type PlayerView struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Kind       PlayerKind   `json:"kind"`
	Status     PlayerStatus `json:"status"`
	Hand       []deck.Card  `json:"hand,omitempty"`
	HandCount  int          `json:"count"`
	RoundScore int          `json:"roundScore"`
	TotalScore int          `json:"totalScore"`
}

// StateView is the projection of a game for one viewer. Everything
// except opponents' hands is fully visible.
type StateView struct {
	GameID          string       `json:"gameId"`
	JoinCode        string       `json:"joinCode,omitempty"`
	CreatorID       string       `json:"creatorId,omitempty"`
	Phase           Phase        `json:"phase"`
	Direction       Direction    `json:"direction"`
	CurrentPlayerID string       `json:"currentPlayerId,omitempty"`
	Players         []PlayerView `json:"players"`
	CallCard        *deck.Card   `json:"callCard,omitempty"`
	AttackCount     int          `json:"attackCount"`
	DemandedSuit    *deck.Suit   `json:"demandedSuit,omitempty"`
	DeckSize        int          `json:"deckSize"`
	DiscardSize     int          `json:"discardSize"`
	WinnerID        string       `json:"winnerId,omitempty"`
}

// ViewFor projects the state for one viewer, masking every other
// player's hand down to a count
func (s *GameState) ViewFor(viewerID string) StateView {
	view := StateView{
		GameID:      s.ID,
		JoinCode:    s.JoinCode,
		CreatorID:   s.CreatorID,
		Phase:       s.Phase,
		Direction:   s.Direction,
		AttackCount: s.AttackCount,
		DeckSize:    len(s.Deck),
		DiscardSize: len(s.Discard),
		Players:     make([]PlayerView, len(s.Players)),
	}
	if cur := s.CurrentPlayer(); cur != nil {
		view.CurrentPlayerID = cur.ID
	}
	if s.CallCard != nil {
		c := *s.CallCard
		view.CallCard = &c
	}
	if s.DemandedSuit != nil {
		suit := *s.DemandedSuit
		view.DemandedSuit = &suit
	}
	if winnerID, ok := s.WinnerID(); ok {
		view.WinnerID = winnerID
	}
	for i, p := range s.Players {
		pv := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Kind:       p.Kind,
			Status:     p.Status,
			HandCount:  len(p.Hand),
			RoundScore: p.RoundScore,
			TotalScore: p.TotalScore,
		}
		if p.ID == viewerID {
			pv.Hand = append([]deck.Card{}, p.Hand...)
		}
		view.Players[i] = pv
	}
	return view
}
