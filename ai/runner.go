package ai

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/game"
)

// swapped out in tests
var sleep = time.Sleep

// Runner drives a bot against a game instance. It listens to the
// game's events and takes the bot's turn whenever one comes around.
type Runner struct {
	bot   *Bot
	table *game.Instance
	log   zerolog.Logger
}

// NewRunner attaches a bot to a game. The runner acts on every event
// the game emits; attaching must happen before the game starts.
func NewRunner(bot *Bot, table *game.Instance, log zerolog.Logger) *Runner {
	r := &Runner{
		bot:   bot,
		table: table,
		log:   log.With().Str("botId", bot.PlayerID).Str("gameId", table.ID()).Logger(),
	}
	table.Subscribe(game.EventAny, func(e game.Event) {
		go r.maybeAct()
	})
	// A restored game can already be waiting on the bot with no
	// event on the way, so check the table once up front.
	go r.maybeAct()
	return r
}

// maybeAct takes the bot's turn if it is up. The turn is re-checked
// after the think delay in case a timeout sweep resolved it first.
func (r *Runner) maybeAct() {
	view := r.table.View(r.bot.PlayerID)
	if view.Phase != game.PhaseInProgress || view.CurrentPlayerID != r.bot.PlayerID {
		return
	}

	if d := r.bot.Difficulty.ThinkTime; d > 0 {
		sleep(d)
	}

	view = r.table.View(r.bot.PlayerID)
	if view.Phase != game.PhaseInProgress || view.CurrentPlayerID != r.bot.PlayerID {
		return
	}

	if decl := r.bot.DeclarationFor(view); decl != nil {
		r.table.Submit(*decl)
	}

	action := r.bot.DecideAction(view)
	res := r.table.Submit(action)
	if res.Success {
		return
	}

	// A rejected action still owes the table a move, or the game
	// stalls with the bot on turn.
	r.log.Debug().Str("reason", res.Message).Msg("bot action rejected, falling back")
	switch action.Type {
	case game.ActionPlayCard:
		r.table.Submit(game.Action{Type: game.ActionDrawCard, PlayerID: r.bot.PlayerID})
	case game.ActionDrawCard:
		if forced, ok := r.bot.ForcedPlay(r.table.View(r.bot.PlayerID)); ok {
			r.table.Submit(forced)
		}
	}
}
