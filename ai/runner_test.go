package ai

import (
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/game"
	utils "github.com/theworldofobi/whot/internal"
	"github.com/theworldofobi/whot/rules"
)

func TestRunnerPlaysItsTurns(t *testing.T) {
	sleep = func(time.Duration) {}
	defer func() { sleep = time.Sleep }()

	rng := rand.New(rand.NewSource(3))
	state := game.NewGameState(game.GameStateOpts{
		ID:     "bot-game",
		Config: rules.DefaultConfig(),
		Rand:   rng,
		Logger: zerolog.Nop(),
	})
	instance := game.NewInstance(game.NewEngine(state, zerolog.Nop()))

	var moves int64
	instance.Subscribe(game.EventAny, func(e game.Event) {
		if e.Type == game.EventCardPlayed || e.Type == game.EventCardDrawn {
			atomic.AddInt64(&moves, 1)
		}
	})

	for _, id := range []string{"bot-a", "bot-b"} {
		utils.AssertNoError(t, instance.AddPlayer(game.NewPlayer(id, id, game.BotHard)))
		bot := NewBot(BotOpts{
			PlayerID:   id,
			Difficulty: HardDifficulty(rng),
			Rand:       rng,
			Logger:     zerolog.Nop(),
		})
		NewRunner(bot, instance, zerolog.Nop())
	}

	utils.AssertNoError(t, instance.Start())

	// The bots drive the game forward on their own; give them a
	// moment and check that moves actually happened.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt64(&moves) >= 5 || instance.Phase() != game.PhaseInProgress {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if atomic.LoadInt64(&moves) == 0 {
		t.Fatal("expected the bots to make moves")
	}
}
