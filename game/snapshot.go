package game

import (
	"encoding/json"
	"fmt"

	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/rules"
)

// PlayerSnapshot is the persisted form of a player, full hand
// included. It is never sent to viewers; see ViewFor.
type PlayerSnapshot struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Kind         PlayerKind  `json:"kind"`
	Status       PlayerStatus `json:"status"`
	Hand         []deck.Card `json:"hand"`
	RoundScore   int         `json:"roundScore"`
	TotalScore   int         `json:"totalScore"`
	SaidLastCard bool        `json:"saidLastCard"`
	SaidCheckUp  bool        `json:"saidCheckUp"`
	GamesPlayed  int         `json:"gamesPlayed"`
	GamesWon     int         `json:"gamesWon"`
}

// Snapshot is the full-fidelity, reconstructable form of a GameState
type Snapshot struct {
	ID           string           `json:"gameId"`
	JoinCode     string           `json:"joinCode,omitempty"`
	CreatorID    string           `json:"creatorId,omitempty"`
	Config       rules.Config     `json:"config"`
	Phase        Phase            `json:"phase"`
	CurrentIdx   int              `json:"currentPlayerIndex"`
	Direction    Direction        `json:"direction"`
	Players      []PlayerSnapshot `json:"players"`
	Deck         []deck.Card      `json:"deck"`
	Discard      []deck.Card      `json:"discardPile"`
	CallCard     *deck.Card       `json:"callCard,omitempty"`
	AttackCount  int              `json:"attackCount"`
	DemandedSuit *deck.Suit       `json:"demandedSuit,omitempty"`
	WinnerID     string           `json:"winnerId,omitempty"`
}

// Snapshot captures the complete game state, all hands included
func (s *GameState) Snapshot() *Snapshot {
	snap := &Snapshot{
		ID:          s.ID,
		JoinCode:    s.JoinCode,
		CreatorID:   s.CreatorID,
		Config:      s.Config,
		Phase:       s.Phase,
		CurrentIdx:  s.CurrentIdx,
		Direction:   s.Direction,
		Players:     make([]PlayerSnapshot, len(s.Players)),
		Deck:        append([]deck.Card{}, s.Deck...),
		Discard:     append([]deck.Card{}, s.Discard...),
		AttackCount: s.AttackCount,
	}
	if s.CallCard != nil {
		c := *s.CallCard
		snap.CallCard = &c
	}
	if s.DemandedSuit != nil {
		suit := *s.DemandedSuit
		snap.DemandedSuit = &suit
	}
	if winnerID, ok := s.WinnerID(); ok {
		snap.WinnerID = winnerID
	}
	for i, p := range s.Players {
		snap.Players[i] = PlayerSnapshot{
			ID:           p.ID,
			Name:         p.Name,
			Kind:         p.Kind,
			Status:       p.Status,
			Hand:         append([]deck.Card{}, p.Hand...),
			RoundScore:   p.RoundScore,
			TotalScore:   p.TotalScore,
			SaidLastCard: p.SaidLastCard,
			SaidCheckUp:  p.SaidCheckUp,
			GamesPlayed:  p.GamesPlayed,
			GamesWon:     p.GamesWon,
		}
	}
	return snap
}

// Validate rejects structurally impossible snapshots. Corrupt
// persisted data surfaces here as a hard error; there is no partial
// recovery.
func (snap *Snapshot) Validate() error {
	if snap.ID == "" {
		return fmt.Errorf("snapshot missing game id")
	}
	if snap.Phase < PhaseLobby || snap.Phase > PhaseGameEnded {
		return fmt.Errorf("snapshot has invalid phase %d", int(snap.Phase))
	}
	if len(snap.Players) > 0 && (snap.CurrentIdx < 0 || snap.CurrentIdx >= len(snap.Players)) {
		return fmt.Errorf("snapshot current player index %d out of range", snap.CurrentIdx)
	}
	if snap.AttackCount < 0 {
		return fmt.Errorf("snapshot has negative attack count %d", snap.AttackCount)
	}
	seen := map[string]bool{}
	for _, p := range snap.Players {
		if p.ID == "" {
			return fmt.Errorf("snapshot contains a player with no id")
		}
		if seen[p.ID] {
			return fmt.Errorf("snapshot contains duplicate player id %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// FromSnapshot reconstructs a GameState from its persisted form
func FromSnapshot(snap *Snapshot, opts GameStateOpts) (*GameState, error) {
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("restore game state: %w", err)
	}

	opts.ID = snap.ID
	opts.JoinCode = snap.JoinCode
	opts.Config = snap.Config
	s := NewGameState(opts)

	s.CreatorID = snap.CreatorID
	s.Phase = snap.Phase
	s.CurrentIdx = snap.CurrentIdx
	s.Direction = snap.Direction
	s.Deck = append(deck.Deck{}, snap.Deck...)
	s.Discard = append([]deck.Card{}, snap.Discard...)
	s.AttackCount = snap.AttackCount
	if snap.CallCard != nil {
		c := *snap.CallCard
		s.CallCard = &c
	}
	if snap.DemandedSuit != nil {
		suit := *snap.DemandedSuit
		s.DemandedSuit = &suit
	}
	for _, ps := range snap.Players {
		p := NewPlayer(ps.ID, ps.Name, ps.Kind)
		p.Status = ps.Status
		p.Hand = append(Hand{}, ps.Hand...)
		p.RoundScore = ps.RoundScore
		p.TotalScore = ps.TotalScore
		p.SaidLastCard = ps.SaidLastCard
		p.SaidCheckUp = ps.SaidCheckUp
		p.GamesPlayed = ps.GamesPlayed
		p.GamesWon = ps.GamesWon
		s.Players = append(s.Players, p)
	}
	return s, nil
}

// UnmarshalSnapshot decodes and validates a persisted snapshot
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}
