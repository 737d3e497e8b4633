// Package ai provides computer opponents for Whot. Strategies are
// selected by difficulty tier; the game core consumes only the
// DecideAction capability and never depends on a concrete strategy.
package ai

import (
	"math/rand"

	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/game"
)

// Strategy decides which of the legal options a bot takes. Under an
// attack the playable indices are the defence cards; drawing is not a
// choice while a defence is in hand, so every strategy answers.
type Strategy interface {
	// SelectCard picks one of the playable indices
	SelectCard(hand game.Hand, playable []int) int
	// SelectSuit picks the suit to demand after a Whot card
	SelectSuit(hand game.Hand) deck.Suit
	// Name identifies the strategy
	Name() string
}

// suitCounts tallies the non-Whot suits in a hand
func suitCounts(hand game.Hand) map[deck.Suit]int {
	counts := map[deck.Suit]int{}
	for _, c := range hand {
		if !c.IsWhot() {
			counts[c.Suit]++
		}
	}
	return counts
}

// mostHeldSuit returns the suit the hand holds most of
func mostHeldSuit(hand game.Hand) deck.Suit {
	best := deck.Circle
	max := -1
	for suit, n := range suitCounts(hand) {
		if n > max {
			max = n
			best = suit
		}
	}
	return best
}

// cardWeight scores a card's tactical value when deciding what to
// lead with
func cardWeight(c deck.Card) int {
	switch c.Ability() {
	case deck.GeneralMarket:
		return 14
	case deck.WhotCard:
		return 12
	case deck.HoldOn:
		return 10
	case deck.Suspension:
		return 8
	case deck.PickTwo:
		return 5
	case deck.PickThree:
		return 4
	}
	return c.Rank
}

// RandomStrategy plays an arbitrary legal card
type RandomStrategy struct {
	Rand *rand.Rand
}

func (s *RandomStrategy) SelectCard(hand game.Hand, playable []int) int {
	return playable[s.Rand.Intn(len(playable))]
}

func (s *RandomStrategy) SelectSuit(hand game.Hand) deck.Suit {
	suits := []deck.Suit{deck.Circle, deck.Triangle, deck.Cross, deck.Block, deck.Star}
	return suits[s.Rand.Intn(len(suits))]
}

func (s *RandomStrategy) Name() string { return "Random" }

// AggressiveStrategy leads with its highest-impact card
type AggressiveStrategy struct{}

func (s *AggressiveStrategy) SelectCard(hand game.Hand, playable []int) int {
	best := playable[0]
	bestWeight := -1
	for _, idx := range playable {
		if w := cardWeight(hand[idx]); w > bestWeight {
			bestWeight = w
			best = idx
		}
	}
	return best
}

func (s *AggressiveStrategy) SelectSuit(hand game.Hand) deck.Suit {
	return mostHeldSuit(hand)
}

func (s *AggressiveStrategy) Name() string { return "Aggressive" }

// DefensiveStrategy sheds its most expensive cards first, holding on
// to attack cards
type DefensiveStrategy struct{}

func (s *DefensiveStrategy) SelectCard(hand game.Hand, playable []int) int {
	best := playable[0]
	bestWeight := -1 << 30
	for _, idx := range playable {
		c := hand[idx]
		w := c.Score()
		switch c.Ability() {
		case deck.WhotCard:
			w = -20
		case deck.PickTwo, deck.PickThree:
			w = -10
		}
		if w > bestWeight {
			bestWeight = w
			best = idx
		}
	}
	return best
}

func (s *DefensiveStrategy) SelectSuit(hand game.Hand) deck.Suit {
	return mostHeldSuit(hand)
}

func (s *DefensiveStrategy) Name() string { return "Defensive" }

// BalancedStrategy plays defensively until its hand is short, then
// switches to aggressive play to close the round out
type BalancedStrategy struct{}

const balancedEndgameHandSize = 3

func (s *BalancedStrategy) SelectCard(hand game.Hand, playable []int) int {
	if len(hand) <= balancedEndgameHandSize {
		return (&AggressiveStrategy{}).SelectCard(hand, playable)
	}
	best := playable[0]
	bestScore := 1 << 30
	for _, idx := range playable {
		if v := hand[idx].Score(); v < bestScore {
			bestScore = v
			best = idx
		}
	}
	return best
}

func (s *BalancedStrategy) SelectSuit(hand game.Hand) deck.Suit {
	return mostHeldSuit(hand)
}

func (s *BalancedStrategy) Name() string { return "Balanced" }
