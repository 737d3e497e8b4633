package ai

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/game"
	"github.com/theworldofobi/whot/rules"
)

// Difficulty tunes how strong and how human a bot appears
type Difficulty struct {
	Strategy    Strategy
	ThinkTime   time.Duration
	MistakeRate float64 // chance of playing a random legal card instead
}

// EasyDifficulty plays randomly with a noticeable pause
func EasyDifficulty(rng *rand.Rand) Difficulty {
	return Difficulty{
		Strategy:    &RandomStrategy{Rand: rng},
		ThinkTime:   time.Second,
		MistakeRate: 0.3,
	}
}

// MediumDifficulty plays a balanced game
func MediumDifficulty(rng *rand.Rand) Difficulty {
	return Difficulty{
		Strategy:    &BalancedStrategy{},
		ThinkTime:   700 * time.Millisecond,
		MistakeRate: 0.1,
	}
}

// HardDifficulty plays aggressively and rarely slips
func HardDifficulty(rng *rand.Rand) Difficulty {
	return Difficulty{
		Strategy:    &AggressiveStrategy{},
		ThinkTime:   400 * time.Millisecond,
		MistakeRate: 0,
	}
}

// DifficultyFor maps a player kind to its difficulty tier
func DifficultyFor(kind game.PlayerKind, rng *rand.Rand) Difficulty {
	switch kind {
	case game.BotHard:
		return HardDifficulty(rng)
	case game.BotMedium:
		return MediumDifficulty(rng)
	default:
		return EasyDifficulty(rng)
	}
}

// Bot drives a computer-controlled player. It sees the game through
// the same masked projection a remote player gets and emits Actions
// into the engine.
type Bot struct {
	PlayerID   string
	Difficulty Difficulty
	rng        *rand.Rand
	log        zerolog.Logger
}

// BotOpts configures a Bot
type BotOpts struct {
	PlayerID   string
	Difficulty Difficulty
	Rand       *rand.Rand
	Logger     zerolog.Logger
}

func NewBot(opts BotOpts) *Bot {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Bot{
		PlayerID:   opts.PlayerID,
		Difficulty: opts.Difficulty,
		rng:        rng,
		log:        opts.Logger.With().Str("botId", opts.PlayerID).Logger(),
	}
}

// ownHand pulls the bot's hand out of its projection
func ownHand(view game.StateView, playerID string) game.Hand {
	for _, p := range view.Players {
		if p.ID == playerID {
			return game.Hand(p.Hand)
		}
	}
	return nil
}

// DecideAction chooses the bot's next move for the given projection.
// The caller is responsible for submitting the returned action and
// for applying ThinkTime before doing so.
func (b *Bot) DecideAction(view game.StateView) game.Action {
	hand := ownHand(view, b.PlayerID)
	if len(hand) == 0 || view.CallCard == nil {
		return game.Action{Type: game.ActionDrawCard, PlayerID: b.PlayerID}
	}
	call := *view.CallCard

	if view.AttackCount > 0 {
		// Drawing is refused while a defence is in hand, so a held
		// defence is always played.
		if defense := hand.DefenseIndices(call); len(defense) > 0 {
			return b.playAction(hand, b.Difficulty.Strategy.SelectCard(hand, defense))
		}
		return game.Action{Type: game.ActionDrawCard, PlayerID: b.PlayerID}
	}

	playable := hand.PlayableIndices(call, view.DemandedSuit)
	if len(playable) == 0 {
		return game.Action{Type: game.ActionDrawCard, PlayerID: b.PlayerID}
	}

	idx := b.Difficulty.Strategy.SelectCard(hand, playable)
	if b.Difficulty.MistakeRate > 0 && b.rng.Float64() < b.Difficulty.MistakeRate {
		idx = playable[b.rng.Intn(len(playable))]
	}
	return b.playAction(hand, idx)
}

// ForcedPlay returns the first legal play in the hand, used to
// recover when a submitted draw was refused
func (b *Bot) ForcedPlay(view game.StateView) (game.Action, bool) {
	hand := ownHand(view, b.PlayerID)
	if len(hand) == 0 || view.CallCard == nil {
		return game.Action{}, false
	}
	call := *view.CallCard

	if view.AttackCount > 0 {
		if defense := hand.DefenseIndices(call); len(defense) > 0 {
			return b.playAction(hand, defense[0]), true
		}
		return game.Action{}, false
	}
	if playable := hand.PlayableIndices(call, view.DemandedSuit); len(playable) > 0 {
		return b.playAction(hand, playable[0]), true
	}
	return game.Action{}, false
}

// playAction builds the play, attaching a suit demand when the card
// is a Whot
func (b *Bot) playAction(hand game.Hand, idx int) game.Action {
	action := game.Action{
		Type:      game.ActionPlayCard,
		PlayerID:  b.PlayerID,
		CardIndex: idx,
	}
	if hand[idx].IsWhot() {
		suit := b.Difficulty.Strategy.SelectSuit(hand)
		action.ChosenSuit = &suit
	}
	return action
}

// DeclarationFor returns the declaration the bot must make before its
// play, if any. Declaring is idempotent, so the bot declares whenever
// its hand size calls for it rather than tracking whether it already
// has.
func (b *Bot) DeclarationFor(view game.StateView) *game.Action {
	hand := ownHand(view, b.PlayerID)
	if rules.RequiresCheckUpDeclaration(len(hand)) {
		return &game.Action{Type: game.ActionDeclareCheckUp, PlayerID: b.PlayerID}
	}
	if rules.RequiresLastCardDeclaration(len(hand)) {
		return &game.Action{Type: game.ActionDeclareLastCard, PlayerID: b.PlayerID}
	}
	return nil
}
