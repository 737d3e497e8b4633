package game

import (
	"time"
)

// PlayerKind distinguishes human players from AI tiers. The tiers are
// behavioural hints for the bot collaborator; the game core treats all
// players alike.
type PlayerKind int

const (
	Human PlayerKind = iota
	BotEasy
	BotMedium
	BotHard
)

var playerKindNames = []string{"human", "bot-easy", "bot-medium", "bot-hard"}

func (k PlayerKind) String() string {
	return playerKindNames[k]
}

// PlayerStatus represents a player's standing in the game
type PlayerStatus int

const (
	Active PlayerStatus = iota
	Eliminated
	Disconnected
	Winner
)

var playerStatusNames = []string{"active", "eliminated", "disconnected", "winner"}

func (s PlayerStatus) String() string {
	return playerStatusNames[s]
}

// Player represents a seated player: identity, hand, scores and the
// turn-scoped declaration flags
type Player struct {
	ID     string
	Name   string
	Kind   PlayerKind
	Status PlayerStatus
	Hand   Hand

	RoundScore int
	TotalScore int

	SaidLastCard bool
	SaidCheckUp  bool

	GamesPlayed int
	GamesWon    int

	LastActionAt time.Time
}

// NewPlayer constructs a player
func NewPlayer(id, name string, kind PlayerKind) *Player {
	return &Player{
		ID:           id,
		Name:         name,
		Kind:         kind,
		Status:       Active,
		Hand:         Hand{},
		LastActionAt: time.Now(),
	}
}

// AddScore adds points to both the round score and the cumulative score
func (p *Player) AddScore(points int) {
	p.RoundScore += points
	p.TotalScore += points
}

// ResetRoundScore resets the per-round score
func (p *Player) ResetRoundScore() {
	p.RoundScore = 0
}

// ResetTurnFlags clears the declaration flags
func (p *Player) ResetTurnFlags() {
	p.SaidLastCard = false
	p.SaidCheckUp = false
}

// Touch records the time of the player's most recent action
func (p *Player) Touch(now time.Time) {
	p.LastActionAt = now
}

// ExceededTurnTime reports whether the player has been idle for longer
// than the given limit. A non-positive limit disables the check.
func (p *Player) ExceededTurnTime(now time.Time, limitSeconds int) bool {
	if limitSeconds <= 0 {
		return false
	}
	return now.Sub(p.LastActionAt) >= time.Duration(limitSeconds)*time.Second
}
