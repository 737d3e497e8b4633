package game

import (
	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/rules"
)

// Hand represents the cards a player is holding. Order is not
// meaningful; cards are addressed by index or by value.
type Hand []deck.Card

// Add places cards in the hand
func (h *Hand) Add(cards ...deck.Card) {
	*h = append(*h, cards...)
}

// RemoveAt removes and returns the card at the given index. The second
// return value is false when the index is out of bounds.
func (h *Hand) RemoveAt(idx int) (deck.Card, bool) {
	cards := *h
	if idx < 0 || idx >= len(cards) {
		return deck.Card{}, false
	}
	removed := cards[idx]
	*h = append(cards[:idx], cards[idx+1:]...)
	return removed, true
}

// Remove removes the first card equal to the given card. Returns false
// if the hand does not contain it.
func (h *Hand) Remove(card deck.Card) bool {
	for i, c := range *h {
		if c == card {
			_, ok := h.RemoveAt(i)
			return ok
		}
	}
	return false
}

// Contains reports whether the hand holds the given card
func (h Hand) Contains(card deck.Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}
	return false
}

// PlayableIndices returns the indices of cards that are legal plays
// against the call card, honouring a demanded suit if set
func (h Hand) PlayableIndices(call deck.Card, demanded *deck.Suit) []int {
	indices := []int{}
	for i, c := range h {
		if rules.CanPlay(c, call, demanded) {
			indices = append(indices, i)
		}
	}
	return indices
}

// DefenseIndices returns the indices of cards that defend against the
// given attack card
func (h Hand) DefenseIndices(attack deck.Card) []int {
	indices := []int{}
	for i, c := range h {
		if rules.CanDefend(attack, c) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Score returns the hand's total scoring value
func (h Hand) Score() int {
	return rules.HandScore(h)
}
