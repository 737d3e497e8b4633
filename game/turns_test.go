package game

import (
	"testing"
	"time"

	utils "github.com/theworldofobi/whot/internal"
	"github.com/theworldofobi/whot/rules"
)

func TestTurnController(t *testing.T) {
	t.Run("end of turn advances the seat", func(t *testing.T) {
		s := newTestState(3, rules.DefaultConfig())
		tc := NewTurnController(s)

		utils.AssertEqual(t, tc.CurrentPlayerID(), "player-0")
		tc.EndTurn()
		utils.AssertEqual(t, tc.CurrentPlayerID(), "player-1")
	})

	t.Run("replay flag holds the turn", func(t *testing.T) {
		s := newTestState(2, rules.DefaultConfig())
		tc := NewTurnController(s)

		tc.EnableMultipleActions()
		utils.AssertTrue(t, tc.CanPlayAgain())

		// ending the turn clears the flag
		tc.EndTurn()
		utils.AssertEqual(t, tc.CanPlayAgain(), false)
	})

	t.Run("is player turn", func(t *testing.T) {
		s := newTestState(2, rules.DefaultConfig())
		tc := NewTurnController(s)

		utils.AssertTrue(t, tc.IsPlayerTurn("player-0"))
		utils.AssertEqual(t, tc.IsPlayerTurn("player-1"), false)
		utils.AssertEqual(t, tc.IsPlayerTurn(""), false)
	})
}

func TestTurnTimer(t *testing.T) {
	t.Run("expires after the limit", func(t *testing.T) {
		now := testTime
		s := NewGameState(GameStateOpts{
			ID:     "timer-game",
			Config: rules.DefaultConfig(),
			Now:    func() time.Time { return now },
		})
		s.AddPlayer(NewPlayer("a", "A", Human))
		tc := NewTurnController(s)
		tc.StartTurn()

		utils.AssertEqual(t, tc.Expired(), false)

		now = now.Add(11 * time.Second)
		utils.AssertTrue(t, tc.Expired())
	})

	t.Run("disabled timer never expires", func(t *testing.T) {
		cfg := rules.DefaultConfig()
		cfg.TurnTimeSeconds = 0
		now := testTime
		s := NewGameState(GameStateOpts{
			ID:     "timer-game",
			Config: cfg,
			Now:    func() time.Time { return now },
		})
		tc := NewTurnController(s)
		tc.StartTurn()

		now = now.Add(24 * time.Hour)
		utils.AssertEqual(t, tc.Expired(), false)
	})
}

func TestTurnHistory(t *testing.T) {
	s := newTestState(2, rules.DefaultConfig())
	tc := NewTurnController(s)

	for i := 0; i < maxTurnHistory+20; i++ {
		tc.Record(TurnAction{PlayerID: "player-0", Type: ActionDrawCard, At: testTime})
	}

	utils.AssertEqual(t, len(tc.History(0)), maxTurnHistory)

	last, ok := tc.LastAction()
	utils.AssertTrue(t, ok)
	utils.AssertEqual(t, last.PlayerID, "player-0")

	utils.AssertEqual(t, len(tc.History(5)), 5)
}
