package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/rules"
)

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestState builds a lobby-phase state with n seated players and
// deterministic collaborators
func newTestState(n int, cfg rules.Config) *GameState {
	s := NewGameState(GameStateOpts{
		ID:       "test-game",
		JoinCode: "ABCDEF",
		Config:   cfg,
		Rand:     rand.New(rand.NewSource(1)),
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return testTime },
	})
	for i := 0; i < n; i++ {
		s.AddPlayer(NewPlayer(fmt.Sprintf("player-%d", i), fmt.Sprintf("Player %d", i), Human))
	}
	return s
}

// newTestEngine builds an engine over a mid-round position: full deck,
// the given call card, and each player holding the given hand
func newTestEngine(cfg rules.Config, call deck.Card, hands ...[]deck.Card) *Engine {
	s := newTestState(len(hands), cfg)
	s.Phase = PhaseInProgress
	s.Deck = deck.New()
	s.PlaceCallCard(call)
	for i, h := range hands {
		s.Players[i].Hand = append(Hand{}, h...)
	}
	return NewEngine(s, zerolog.Nop())
}

func cards(cs ...deck.Card) []deck.Card {
	return cs
}

func suitPtr(s deck.Suit) *deck.Suit {
	return &s
}
