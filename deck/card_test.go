package deck

import (
	"encoding/json"
	"testing"

	utils "github.com/theworldofobi/whot/internal"
)

func TestCardAbilities(t *testing.T) {
	tt := []struct {
		name string
		card Card
		want Ability
	}{
		{"rank 1 is hold on", Card{Suit: Circle, Rank: 1}, HoldOn},
		{"rank 2 is pick two", Card{Suit: Triangle, Rank: 2}, PickTwo},
		{"rank 5 is pick three", Card{Suit: Cross, Rank: 5}, PickThree},
		{"rank 8 is suspension", Card{Suit: Star, Rank: 8}, Suspension},
		{"rank 14 is general market", Card{Suit: Block, Rank: 14}, GeneralMarket},
		{"rank 20 is whot", Card{Suit: Whot, Rank: 20}, WhotCard},
		{"rank 7 is plain", Card{Suit: Circle, Rank: 7}, NoAbility},
		{"rank 13 is plain", Card{Suit: Block, Rank: 13}, NoAbility},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			utils.AssertEqual(t, tc.card.Ability(), tc.want)
		})
	}
}

func TestCardScore(t *testing.T) {
	utils.AssertEqual(t, Card{Suit: Circle, Rank: 11}.Score(), 11)
	utils.AssertEqual(t, Card{Suit: Star, Rank: 7}.Score(), 14)
	utils.AssertEqual(t, Card{Suit: Whot, Rank: 20}.Score(), 20)
}

func TestCanPlayOn(t *testing.T) {
	call := Card{Suit: Circle, Rank: 7}

	tt := []struct {
		name string
		card Card
		want bool
	}{
		{"same suit", Card{Suit: Circle, Rank: 13}, true},
		{"same rank", Card{Suit: Block, Rank: 7}, true},
		{"whot on anything", Card{Suit: Whot, Rank: 20}, true},
		{"no match", Card{Suit: Triangle, Rank: 4}, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			utils.AssertEqual(t, tc.card.CanPlayOn(call), tc.want)
		})
	}
}

func TestSuitJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data, err := json.Marshal(Card{Suit: Triangle, Rank: 11})
		utils.AssertNoError(t, err)

		var got Card
		utils.AssertNoError(t, json.Unmarshal(data, &got))
		utils.AssertEqual(t, got, Card{Suit: Triangle, Rank: 11})
	})

	t.Run("unknown suit name", func(t *testing.T) {
		var s Suit
		utils.AssertErrored(t, json.Unmarshal([]byte(`"hearts"`), &s))
	})
}
