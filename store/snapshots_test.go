package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/game"
	utils "github.com/theworldofobi/whot/internal"
	"github.com/theworldofobi/whot/rules"
)

func testSnapshot(gameID string) *game.Snapshot {
	state := game.NewGameState(game.GameStateOpts{
		ID:       gameID,
		JoinCode: "ABCDEF",
		Config:   rules.DefaultConfig(),
		Logger:   zerolog.Nop(),
	})
	state.AddPlayer(game.NewPlayer("p1", "One", game.Human))
	state.AddPlayer(game.NewPlayer("p2", "Two", game.Human))
	state.Players[0].Hand.Add(deck.NewCard(deck.Circle, 7), deck.NewCard(deck.Star, 3))
	return state.Snapshot()
}

func runSnapshotStoreTests(t *testing.T, s SnapshotStore) {
	ctx := context.Background()

	t.Run("save and load round trip", func(t *testing.T) {
		snap := testSnapshot("game-1")
		utils.AssertNoError(t, s.Save(ctx, snap))

		got, err := s.Load(ctx, "game-1")
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, got.ID, "game-1")
		utils.AssertEqual(t, len(got.Players), 2)
		utils.AssertDeepEqual(t, got.Players[0].Hand, snap.Players[0].Hand)
	})

	t.Run("save replaces an existing snapshot", func(t *testing.T) {
		snap := testSnapshot("game-1")
		snap.Phase = game.PhaseInProgress
		snap.CurrentIdx = 1
		utils.AssertNoError(t, s.Save(ctx, snap))

		got, err := s.Load(ctx, "game-1")
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, got.CurrentIdx, 1)
	})

	t.Run("unknown game id", func(t *testing.T) {
		_, err := s.Load(ctx, "missing")
		utils.AssertEqual(t, err, ErrSnapshotNotFound)
	})

	t.Run("invalid snapshots are refused", func(t *testing.T) {
		snap := testSnapshot("game-bad")
		snap.ID = ""
		utils.AssertErrored(t, s.Save(ctx, snap))
	})

	t.Run("list and delete", func(t *testing.T) {
		utils.AssertNoError(t, s.Save(ctx, testSnapshot("game-2")))

		ids, err := s.List(ctx)
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, len(ids), 2)

		utils.AssertNoError(t, s.Delete(ctx, "game-2"))
		_, err = s.Load(ctx, "game-2")
		utils.AssertEqual(t, err, ErrSnapshotNotFound)
	})
}

func TestInMemorySnapshotStore(t *testing.T) {
	runSnapshotStoreTests(t, NewInMemorySnapshotStore())
}

func TestSQLiteSnapshotStore(t *testing.T) {
	s, err := OpenSQLiteSnapshotStore(filepath.Join(t.TempDir(), "whot.db"), zerolog.Nop())
	utils.AssertNoError(t, err)
	defer s.Close()

	runSnapshotStoreTests(t, s)
}
