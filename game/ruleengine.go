package game

import (
	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/rules"
)

// RuleEngine adapts the pure rule set to live game state: whether a
// card is playable right now, whether a player must draw, and how
// many cards. One per game.
type RuleEngine struct {
	cfg rules.Config
}

// NewRuleEngine constructs a RuleEngine for the given configuration
func NewRuleEngine(cfg rules.Config) *RuleEngine {
	return &RuleEngine{cfg: cfg.Normalise()}
}

// Config returns the rule configuration in force
func (r *RuleEngine) Config() rules.Config {
	return r.cfg
}

// CanPlayCard reports whether the player may play the given card on
// the current call card
func (r *RuleEngine) CanPlayCard(s *GameState, card deck.Card) bool {
	if s.CallCard == nil {
		return false
	}
	return rules.CanPlay(card, *s.CallCard, s.DemandedSuit)
}

// HasPlayableCard reports whether the player holds any legal play
func (r *RuleEngine) HasPlayableCard(s *GameState, p *Player) bool {
	if s.CallCard == nil {
		return false
	}
	return len(p.Hand.PlayableIndices(*s.CallCard, s.DemandedSuit)) > 0
}

// HasDefenseCard reports whether the player holds a card defending
// against the active attack
func (r *RuleEngine) HasDefenseCard(s *GameState, p *Player) bool {
	if s.AttackCount <= 0 || s.CallCard == nil {
		return false
	}
	return len(p.Hand.DefenseIndices(*s.CallCard)) > 0
}

// MustDrawCard reports whether the player has no legal alternative to
// drawing: under attack without a defence, or otherwise without a
// playable card
func (r *RuleEngine) MustDrawCard(s *GameState, p *Player) bool {
	if s.AttackCount > 0 {
		return !r.HasDefenseCard(s, p)
	}
	return !r.HasPlayableCard(s, p)
}

// DrawCount returns the number of cards the player draws: the full
// accumulated attack count when under an undefended attack, else one
func (r *RuleEngine) DrawCount(s *GameState, p *Player) int {
	if s.AttackCount > 0 && !r.HasDefenseCard(s, p) {
		return s.AttackCount
	}
	return 1
}

// CanDefendAgainstPick reports whether the player is under attack and
// holds at least one matching-rank defence
func (r *RuleEngine) CanDefendAgainstPick(s *GameState, p *Player) bool {
	return s.AttackCount > 0 && r.HasDefenseCard(s, p)
}

// RequiresLastCardDeclaration reports whether the player must have
// declared "last card" before their next play
func (r *RuleEngine) RequiresLastCardDeclaration(p *Player) bool {
	return rules.RequiresLastCardDeclaration(len(p.Hand))
}

// RequiresCheckUpDeclaration reports whether the player must have
// declared "check up" before their next play
func (r *RuleEngine) RequiresCheckUpDeclaration(p *Player) bool {
	return rules.RequiresCheckUpDeclaration(len(p.Hand))
}

// DeclarationPenalty returns the number of penalty cards drawn for a
// missed declaration
func (r *RuleEngine) DeclarationPenalty() int {
	return rules.DeclarationPenalty
}

// RoundScore returns the player's score for the cards left in their
// hand
func (r *RuleEngine) RoundScore(p *Player) int {
	return p.Hand.Score()
}

// IsEliminated reports whether the player's cumulative score has
// reached the elimination threshold
func (r *RuleEngine) IsEliminated(p *Player) bool {
	return rules.IsEliminated(r.cfg, p.TotalScore)
}

// EnforceTurnTimer reports whether turn timing is enforced
func (r *RuleEngine) EnforceTurnTimer() bool {
	return r.cfg.EnforceTurnTimer
}

// TurnTimeLimit returns the per-turn limit in seconds (0 = disabled)
func (r *RuleEngine) TurnTimeLimit() int {
	return r.cfg.TurnTimeSeconds
}
