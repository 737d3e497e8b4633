package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a suit in a Whot deck
type Suit int

const (
	Circle Suit = iota
	Triangle
	Cross
	Block
	Star
	Whot
)

var suitNames = []string{"Circle", "Triangle", "Cross", "Block", "Star", "Whot"}

func (s Suit) String() string {
	if s < Circle || s > Whot {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// MarshalJSON serialises a suit by name
func (s Suit) MarshalJSON() ([]byte, error) {
	if s < Circle || s > Whot {
		return nil, fmt.Errorf("cannot marshal invalid suit %d", int(s))
	}
	return json.Marshal(suitNames[s])
}

// UnmarshalJSON parses a suit from its name
func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range suitNames {
		if n == name {
			*s = Suit(i)
			return nil
		}
	}
	return fmt.Errorf("unknown suit %q", name)
}

// Ability represents the special behaviour a card triggers when played
type Ability int

const (
	NoAbility Ability = iota
	HoldOn
	PickTwo
	PickThree
	Suspension
	GeneralMarket
	WhotCard
)

var abilityNames = []string{
	"NoAbility",
	"HoldOn",
	"PickTwo",
	"PickThree",
	"Suspension",
	"GeneralMarket",
	"WhotCard",
}

func (a Ability) String() string {
	return abilityNames[a]
}

// Card represents a playing card in a Whot deck. Cards are immutable
// values; they move between the deck, hands and the pile by copy.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

// NewCard constructs a card
func NewCard(suit Suit, rank int) Card {
	return Card{Suit: suit, Rank: rank}
}

// Ability returns the special behaviour attached to the card's rank
func (c Card) Ability() Ability {
	switch c.Rank {
	case 1:
		return HoldOn
	case 2:
		return PickTwo
	case 5:
		return PickThree
	case 8:
		return Suspension
	case 14:
		return GeneralMarket
	case 20:
		return WhotCard
	}
	return NoAbility
}

// IsWhot reports whether the card is a Whot (wild) card
func (c Card) IsWhot() bool {
	return c.Suit == Whot
}

// IsStar reports whether the card belongs to the Star suit
func (c Card) IsStar() bool {
	return c.Suit == Star
}

// Score returns the card's scoring value. Star cards count double.
func (c Card) Score() int {
	if c.IsStar() {
		return 2 * c.Rank
	}
	return c.Rank
}

// CanPlayOn reports whether the card is an ordinary legal play on the
// given call card. Whot cards play on anything; otherwise the card must
// match the call card's suit or rank.
func (c Card) CanPlayOn(call Card) bool {
	if c.IsWhot() {
		return true
	}
	return c.Suit == call.Suit || c.Rank == call.Rank
}

func (c Card) String() string {
	if c.IsWhot() {
		return "Whot"
	}
	return fmt.Sprintf("%s %d", c.Suit, c.Rank)
}
