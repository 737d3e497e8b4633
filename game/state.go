package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	uuid "github.com/satori/go.uuid"

	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/rules"
)

var (
	ErrTooFewPlayers   = errors.New("minimum of 2 players required")
	ErrGameFull        = errors.New("game is full")
	ErrDuplicatePlayer = errors.New("player is already in the game")
	ErrUnknownPlayer   = errors.New("player is not in the game")
	ErrWrongPhase      = errors.New("operation not valid in current game phase")
)

// Phase represents the game lifecycle stage
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseStarting
	PhaseInProgress
	PhaseRoundEnded
	PhaseGameEnded
)

var phaseNames = []string{"lobby", "starting", "in_progress", "round_ended", "game_ended"}

func (p Phase) String() string {
	if p < PhaseLobby || p > PhaseGameEnded {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Direction represents the order of play around the table
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	if d == Clockwise {
		return "clockwise"
	}
	return "counter_clockwise"
}

// Reversed returns the opposite direction
func (d Direction) Reversed() Direction {
	if d == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

// GameState is the authoritative aggregate for one game: seating,
// hands, piles, call card and the special-card state. It persists
// across rounds. All mutation must be serialised by the caller (see
// Instance).
type GameState struct {
	ID        string
	JoinCode  string
	CreatorID string
	Config    rules.Config

	Phase      Phase
	Players    []*Player
	CurrentIdx int
	Direction  Direction

	Deck     deck.Deck
	Discard  []deck.Card
	CallCard *deck.Card

	AttackCount  int
	DemandedSuit *deck.Suit

	rng *rand.Rand
	log zerolog.Logger
	now func() time.Time
}

// GameStateOpts holds the collaborators and identifiers for a new
// GameState. Zero values are backfilled with sensible defaults.
type GameStateOpts struct {
	ID       string
	JoinCode string
	Config   rules.Config
	Rand     *rand.Rand
	Logger   zerolog.Logger
	Now      func() time.Time
}

// NewGameState constructs a GameState in the lobby phase
func NewGameState(opts GameStateOpts) *GameState {
	if opts.ID == "" {
		opts.ID = uuid.NewV4().String()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &GameState{
		ID:        opts.ID,
		JoinCode:  opts.JoinCode,
		Config:    opts.Config.Normalise(),
		Phase:     PhaseLobby,
		Players:   []*Player{},
		Direction: Clockwise,
		Deck:      deck.Deck{},
		Discard:   []deck.Card{},
		rng:       opts.Rand,
		log:       opts.Logger.With().Str("game_id", opts.ID).Logger(),
		now:       opts.Now,
	}
}

// AddPlayer seats a player. The first player to join becomes the
// creator.
func (s *GameState) AddPlayer(p *Player) error {
	if len(s.Players) >= s.Config.MaxPlayers {
		return ErrGameFull
	}
	if _, ok := s.Player(p.ID); ok {
		return ErrDuplicatePlayer
	}
	if len(s.Players) == 0 {
		s.CreatorID = p.ID
	}
	s.Players = append(s.Players, p)
	return nil
}

// RemovePlayer unseats a player. The current-turn index is repaired so
// that the next turn computation still lands on the correct seat.
func (s *GameState) RemovePlayer(playerID string) error {
	for i, p := range s.Players {
		if p.ID == playerID {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			if len(s.Players) == 0 {
				s.CurrentIdx = 0
				return nil
			}
			if i < s.CurrentIdx || s.CurrentIdx >= len(s.Players) {
				s.CurrentIdx = (s.CurrentIdx - 1 + len(s.Players)) % len(s.Players)
			}
			return nil
		}
	}
	return ErrUnknownPlayer
}

// Player finds a seated player by id
func (s *GameState) Player(playerID string) (*Player, bool) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

// CurrentPlayer returns the player whose turn it is, or nil if the
// table is empty
func (s *GameState) CurrentPlayer() *Player {
	if len(s.Players) == 0 || s.CurrentIdx < 0 || s.CurrentIdx >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentIdx]
}

// ActivePlayers returns the seated players still in the running, in
// seat order
func (s *GameState) ActivePlayers() []*Player {
	out := []*Player{}
	for _, p := range s.Players {
		if p.Status == Active {
			out = append(out, p)
		}
	}
	return out
}

// NextIndex computes the seat one step away in the current direction,
// skipping eliminated and disconnected players
func (s *GameState) NextIndex() int {
	n := len(s.Players)
	if n == 0 {
		return 0
	}
	step := 1
	if s.Direction == CounterClockwise {
		step = n - 1
	}
	idx := s.CurrentIdx
	for i := 0; i < n; i++ {
		idx = (idx + step) % n
		if s.Players[idx].Status == Active {
			return idx
		}
	}
	return s.CurrentIdx
}

// AdvanceTurn moves the turn to the next active seat
func (s *GameState) AdvanceTurn() {
	if len(s.Players) == 0 {
		return
	}
	s.CurrentIdx = s.NextIndex()
}

// SkipNextPlayer advances the turn past one seat. Combined with a
// normal end-of-turn advance, the net effect is that one seat misses
// a go.
func (s *GameState) SkipNextPlayer() {
	s.AdvanceTurn()
}

// ReverseDirection flips the order of play
func (s *GameState) ReverseDirection() {
	s.Direction = s.Direction.Reversed()
}

// StartRound resets the table for a fresh round: new shuffled deck,
// empty discard pile, no call card, no attack or demanded suit, turn
// back to the first seat. Players, scores and statuses persist.
func (s *GameState) StartRound() {
	s.Phase = PhaseInProgress
	s.CurrentIdx = 0
	s.Direction = Clockwise
	s.AttackCount = 0
	s.DemandedSuit = nil
	s.Deck = deck.New()
	s.Deck.Shuffle(s.rng)
	s.Discard = []deck.Card{}
	s.CallCard = nil
	for _, p := range s.Players {
		p.Hand = Hand{}
		p.ResetTurnFlags()
		p.ResetRoundScore()
	}
	if cur := s.CurrentPlayer(); cur != nil && cur.Status != Active {
		s.AdvanceTurn()
	}
	s.log.Info().Str("phase", s.Phase.String()).Msg("round started")
}

// EndRound freezes the state for scoring
func (s *GameState) EndRound() {
	s.Phase = PhaseRoundEnded
}

// EndGame transitions to the terminal phase
func (s *GameState) EndGame() {
	s.Phase = PhaseGameEnded
}

// NeedsReshuffle reports whether a draw would hit an empty deck while
// discarded cards are available
func (s *GameState) NeedsReshuffle() bool {
	return len(s.Deck) == 0 && len(s.Discard) > 0
}

// ReshuffleDiscard folds the discard pile back into the deck and
// shuffles it. The current call card stays where it is.
func (s *GameState) ReshuffleDiscard() {
	if len(s.Discard) == 0 {
		return
	}
	s.Deck.Add(s.Discard...)
	s.Discard = []deck.Card{}
	s.Deck.Shuffle(s.rng)
	s.log.Debug().Int("deck_size", len(s.Deck)).Msg("reshuffled discard pile into deck")
}

// DrawCards draws up to n cards, reshuffling the discard pile when the
// deck runs dry. Fewer cards (possibly none) are returned when both
// piles are exhausted; that is legal, not an error.
func (s *GameState) DrawCards(n int) []deck.Card {
	drawn := []deck.Card{}
	for i := 0; i < n; i++ {
		if s.NeedsReshuffle() {
			s.ReshuffleDiscard()
		}
		card, ok := s.Deck.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}
	return drawn
}

// PlaceCallCard makes the card the new call card, pushing the previous
// call card onto the discard pile
func (s *GameState) PlaceCallCard(card deck.Card) {
	if s.CallCard != nil {
		s.Discard = append(s.Discard, *s.CallCard)
	}
	c := card
	s.CallCard = &c
}

// RoundOver reports whether any active player has shed their last card
func (s *GameState) RoundOver() bool {
	for _, p := range s.Players {
		if p.Status == Active && len(p.Hand) == 0 {
			return true
		}
	}
	return false
}

// WinnerID returns the id of the player with an empty hand, if any
func (s *GameState) WinnerID() (string, bool) {
	for _, p := range s.Players {
		if p.Status == Active && len(p.Hand) == 0 {
			return p.ID, true
		}
	}
	return "", false
}

// EliminatePlayers marks every player at or over the elimination
// threshold, returning their ids
func (s *GameState) EliminatePlayers() []string {
	eliminated := []string{}
	for _, p := range s.Players {
		if p.Status == Active && rules.IsEliminated(s.Config, p.TotalScore) {
			p.Status = Eliminated
			eliminated = append(eliminated, p.ID)
		}
	}
	return eliminated
}

// CardCount returns the total number of cards across hands, deck,
// discard pile and call card. Within a round this is constant.
func (s *GameState) CardCount() int {
	total := len(s.Deck) + len(s.Discard)
	if s.CallCard != nil {
		total++
	}
	for _, p := range s.Players {
		total += len(p.Hand)
	}
	return total
}
