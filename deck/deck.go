package deck

import "math/rand"

// Deck represents a pile of cards. The top of the pile is the end of
// the slice.
type Deck []Card

// Suit distributions in a standard 54-card Nigerian Whot deck.
var (
	circleTriangleRanks = []int{1, 2, 3, 4, 5, 7, 8, 10, 11, 12, 13, 14}
	crossBlockRanks     = []int{1, 2, 3, 5, 7, 10, 11, 13, 14}
	starRanks           = []int{1, 2, 3, 4, 5, 7, 8}
)

const numWhotCards = 5

// New creates a standard 54-card Whot deck, unshuffled
func New() Deck {
	cards := Deck{}
	for _, suit := range []Suit{Circle, Triangle} {
		for _, rank := range circleTriangleRanks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	for _, suit := range []Suit{Cross, Block} {
		for _, rank := range crossBlockRanks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	for _, rank := range starRanks {
		cards = append(cards, NewCard(Star, rank))
	}
	for i := 0; i < numWhotCards; i++ {
		cards = append(cards, NewCard(Whot, 20))
	}
	return cards
}

// Shuffle shuffles the deck using the supplied random source
func (d *Deck) Shuffle(rng *rand.Rand) {
	cards := *d
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal deals n cards from the top of the deck, or fewer if the deck
// runs out
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 {
		return []Card{}
	}
	if n > numCardsInDeck {
		n = numCardsInDeck
	}
	startingIndex := numCardsInDeck - n
	dealt := make([]Card, n)
	copy(dealt, (*d)[startingIndex:])
	*d = (*d)[:startingIndex]
	return dealt
}

// Draw removes and returns the top card of the deck. The second return
// value is false when the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	cards := *d
	if len(cards) == 0 {
		return Card{}, false
	}
	top := cards[len(cards)-1]
	*d = cards[:len(cards)-1]
	return top, true
}

// Add places cards on top of the deck
func (d *Deck) Add(cards ...Card) {
	*d = append(*d, cards...)
}
