// Package rules implements the Nigerian Whot rule set as pure
// predicates over card values. Nothing in this package reads or
// mutates game state; the game package adapts these rules to a live
// game via its rule engine.
package rules

import "github.com/theworldofobi/whot/deck"

const (
	DefaultMinPlayers       = 2
	DefaultMaxPlayers       = 8
	DefaultStartingCards    = 6
	MinStartingCards        = 3
	MaxStartingCards        = 6
	DefaultTurnTimeSeconds  = 10
	DefaultEliminationScore = 100

	// Cards drawn by the next player for each attack rank
	PickTwoCount   = 2
	PickThreeCount = 3

	// Cards drawn as a penalty for a missed declaration
	DeclarationPenalty = 2
)

// Config holds the recognised game options
type Config struct {
	MinPlayers           int  `json:"minPlayers" env:"WHOT_MIN_PLAYERS,default=2"`
	MaxPlayers           int  `json:"maxPlayers" env:"WHOT_MAX_PLAYERS,default=8"`
	StartingCards        int  `json:"startingCards" env:"WHOT_STARTING_CARDS,default=6"`
	TurnTimeSeconds      int  `json:"turnTimeSeconds" env:"WHOT_TURN_TIME_SECONDS,default=10"`
	EliminationScore     int  `json:"eliminationScore" env:"WHOT_ELIMINATION_SCORE,default=100"`
	AllowMultiPlay       bool `json:"allowMultiPlay" env:"WHOT_ALLOW_MULTI_PLAY,default=false"`
	AllowDirectionChange bool `json:"allowDirectionChange" env:"WHOT_ALLOW_DIRECTION_CHANGE,default=true"`
	EnforceTurnTimer     bool `json:"enforceTurnTimer" env:"WHOT_ENFORCE_TURN_TIMER,default=false"`
}

// DefaultConfig returns the standard Nigerian Whot configuration
func DefaultConfig() Config {
	return Config{
		MinPlayers:           DefaultMinPlayers,
		MaxPlayers:           DefaultMaxPlayers,
		StartingCards:        DefaultStartingCards,
		TurnTimeSeconds:      DefaultTurnTimeSeconds,
		EliminationScore:     DefaultEliminationScore,
		AllowMultiPlay:       false,
		AllowDirectionChange: true,
		EnforceTurnTimer:     false,
	}
}

// Normalise clamps the starting hand size to the variant's bounds and
// backfills zero values with defaults
func (c Config) Normalise() Config {
	if c.MinPlayers <= 0 {
		c.MinPlayers = DefaultMinPlayers
	}
	if c.MaxPlayers <= 0 {
		c.MaxPlayers = DefaultMaxPlayers
	}
	if c.StartingCards == 0 {
		c.StartingCards = DefaultStartingCards
	}
	if c.StartingCards < MinStartingCards {
		c.StartingCards = MinStartingCards
	}
	if c.StartingCards > MaxStartingCards {
		c.StartingCards = MaxStartingCards
	}
	if c.EliminationScore <= 0 {
		c.EliminationScore = DefaultEliminationScore
	}
	return c
}

// CanPlay reports whether a card is a legal play on the call card.
// Whot cards are always legal. A demanded suit (set by a Whot play)
// overrides ordinary matching: the card must match that suit, rank
// matches do not count. Otherwise the card must match the call card's
// suit or rank.
func CanPlay(card, call deck.Card, demanded *deck.Suit) bool {
	if card.IsWhot() {
		return true
	}
	if demanded != nil {
		return card.Suit == *demanded
	}
	return card.CanPlayOn(call)
}

// CanDefend reports whether a candidate card defends against an attack
// card. Only the exact same rank defends: a 2 against a 2, a 5 against
// a 5. Cross-rank defence is illegal.
func CanDefend(attack, candidate deck.Card) bool {
	if AttackAmount(attack) == 0 {
		return false
	}
	return candidate.Rank == attack.Rank
}

// AttackAmount returns the number of cards the next player must draw
// for an attack card, or 0 for a non-attack card
func AttackAmount(card deck.Card) int {
	switch card.Ability() {
	case deck.PickTwo:
		return PickTwoCount
	case deck.PickThree:
		return PickThreeCount
	}
	return 0
}

// ValidateMultiPlay validates playing several cards at once: all cards
// must share a rank and the first must be independently legal on the
// call card. Always false when the config disallows multi-play or the
// list is empty.
func ValidateMultiPlay(cfg Config, cards []deck.Card, call deck.Card, demanded *deck.Suit) bool {
	if !cfg.AllowMultiPlay || len(cards) == 0 {
		return false
	}
	if !CanPlay(cards[0], call, demanded) {
		return false
	}
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

// HandScore sums the scoring values of a hand. Star cards count double.
func HandScore(cards []deck.Card) int {
	score := 0
	for _, c := range cards {
		score += c.Score()
	}
	return score
}

// RequiresLastCardDeclaration reports whether a player about to play
// must first have said "last card" (hand is down to two cards)
func RequiresLastCardDeclaration(handSize int) bool {
	return handSize == 2
}

// RequiresCheckUpDeclaration reports whether a player about to play
// must first have said "check up" (hand is down to one card)
func RequiresCheckUpDeclaration(handSize int) bool {
	return handSize == 1
}

// IsEliminated reports whether a cumulative score meets the
// elimination threshold
func IsEliminated(cfg Config, totalScore int) bool {
	return totalScore >= cfg.EliminationScore
}
