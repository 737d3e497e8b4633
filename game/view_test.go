package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/theworldofobi/whot/deck"
	utils "github.com/theworldofobi/whot/internal"
	"github.com/theworldofobi/whot/rules"
)

func TestViewFor(t *testing.T) {
	e := newTestEngine(rules.DefaultConfig(), deck.NewCard(deck.Circle, 7),
		cards(deck.NewCard(deck.Circle, 3), deck.NewCard(deck.Triangle, 4), deck.NewCard(deck.Whot, 20)),
		cards(deck.NewCard(deck.Block, 10), deck.NewCard(deck.Cross, 11)),
	)
	s := e.State()

	view := s.ViewFor("player-0")

	t.Run("viewer sees their own hand", func(t *testing.T) {
		utils.AssertEqual(t, len(view.Players[0].Hand), 3)
		utils.AssertEqual(t, view.Players[0].HandCount, 3)
	})

	t.Run("opponents show a count only", func(t *testing.T) {
		utils.AssertEqual(t, len(view.Players[1].Hand), 0)
		utils.AssertEqual(t, view.Players[1].HandCount, 2)
	})

	t.Run("table state is fully visible", func(t *testing.T) {
		utils.AssertEqual(t, *view.CallCard, deck.NewCard(deck.Circle, 7))
		utils.AssertEqual(t, view.CurrentPlayerID, "player-0")
		utils.AssertEqual(t, view.DeckSize, len(s.Deck))
	})

	t.Run("serialised view leaks no opponent cards", func(t *testing.T) {
		data, err := json.Marshal(s.ViewFor("player-1"))
		utils.AssertNoError(t, err)

		// player-0 holds the only whot on the table
		if strings.Contains(string(data), `"suit":"Whot"`) {
			t.Errorf("opponent hand leaked into view: %s", data)
		}
	})

	t.Run("spectators see no hands at all", func(t *testing.T) {
		spectator := s.ViewFor("")
		for _, p := range spectator.Players {
			utils.AssertEqual(t, len(p.Hand), 0)
		}
	})
}
