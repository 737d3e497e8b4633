package ai

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/game"
	utils "github.com/theworldofobi/whot/internal"
)

func testBot() *Bot {
	rng := rand.New(rand.NewSource(1))
	return NewBot(BotOpts{
		PlayerID:   "bot",
		Difficulty: HardDifficulty(rng),
		Rand:       rng,
		Logger:     zerolog.Nop(),
	})
}

func viewWith(hand []deck.Card, call deck.Card, attack int, demanded *deck.Suit) game.StateView {
	c := call
	return game.StateView{
		Phase:           game.PhaseInProgress,
		CurrentPlayerID: "bot",
		CallCard:        &c,
		AttackCount:     attack,
		DemandedSuit:    demanded,
		Players: []game.PlayerView{
			{ID: "bot", Hand: hand, HandCount: len(hand)},
			{ID: "opponent", HandCount: 4},
		},
	}
}

func TestBotDecideAction(t *testing.T) {
	t.Run("plays a legal card", func(t *testing.T) {
		bot := testBot()
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Triangle, 4), deck.NewCard(deck.Circle, 3)},
			deck.NewCard(deck.Circle, 7), 0, nil)

		action := bot.DecideAction(view)

		utils.AssertEqual(t, action.Type, game.ActionPlayCard)
		utils.AssertEqual(t, action.CardIndex, 1)
	})

	t.Run("draws with no legal play", func(t *testing.T) {
		bot := testBot()
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Triangle, 4), deck.NewCard(deck.Block, 5)},
			deck.NewCard(deck.Circle, 7), 0, nil)

		action := bot.DecideAction(view)
		utils.AssertEqual(t, action.Type, game.ActionDrawCard)
	})

	t.Run("attaches a suit to a whot", func(t *testing.T) {
		bot := testBot()
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Whot, 20), deck.NewCard(deck.Block, 5), deck.NewCard(deck.Block, 13)},
			deck.NewCard(deck.Circle, 7), 0, nil)

		action := bot.DecideAction(view)

		utils.AssertEqual(t, action.Type, game.ActionPlayCard)
		if action.ChosenSuit == nil {
			t.Fatal("expected a chosen suit with the whot play")
		}
		utils.AssertEqual(t, *action.ChosenSuit, deck.Block)
	})

	t.Run("defends an attack when it can", func(t *testing.T) {
		bot := testBot()
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Triangle, 4), deck.NewCard(deck.Block, 2)},
			deck.NewCard(deck.Circle, 2), 2, nil)

		action := bot.DecideAction(view)

		utils.AssertEqual(t, action.Type, game.ActionPlayCard)
		utils.AssertEqual(t, action.CardIndex, 1)
	})

	t.Run("easy bots answer an attack too", func(t *testing.T) {
		// drawing is refused while a defence is in hand, so even the
		// random strategy must play one
		rng := rand.New(rand.NewSource(1))
		bot := NewBot(BotOpts{
			PlayerID:   "bot",
			Difficulty: EasyDifficulty(rng),
			Rand:       rng,
			Logger:     zerolog.Nop(),
		})
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Triangle, 4), deck.NewCard(deck.Block, 2)},
			deck.NewCard(deck.Circle, 2), 2, nil)

		for i := 0; i < 20; i++ {
			action := bot.DecideAction(view)
			utils.AssertEqual(t, action.Type, game.ActionPlayCard)
			utils.AssertEqual(t, action.CardIndex, 1)
		}
	})

	t.Run("draws under an undefendable attack", func(t *testing.T) {
		bot := testBot()
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Triangle, 4), deck.NewCard(deck.Block, 5)},
			deck.NewCard(deck.Circle, 2), 2, nil)

		action := bot.DecideAction(view)
		utils.AssertEqual(t, action.Type, game.ActionDrawCard)
	})

	t.Run("honours a demanded suit", func(t *testing.T) {
		bot := testBot()
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Circle, 7), deck.NewCard(deck.Triangle, 4)},
			deck.NewCard(deck.Whot, 20), 0, suitPtr(deck.Triangle))

		action := bot.DecideAction(view)

		utils.AssertEqual(t, action.Type, game.ActionPlayCard)
		utils.AssertEqual(t, action.CardIndex, 1)
	})
}

func TestBotForcedPlay(t *testing.T) {
	bot := testBot()

	t.Run("answers an attack with the first defence", func(t *testing.T) {
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Triangle, 4), deck.NewCard(deck.Block, 2)},
			deck.NewCard(deck.Circle, 2), 2, nil)

		action, ok := bot.ForcedPlay(view)
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, action.Type, game.ActionPlayCard)
		utils.AssertEqual(t, action.CardIndex, 1)
	})

	t.Run("nothing to force without a legal play", func(t *testing.T) {
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Triangle, 4), deck.NewCard(deck.Block, 5)},
			deck.NewCard(deck.Circle, 7), 0, nil)

		_, ok := bot.ForcedPlay(view)
		utils.AssertTrue(t, !ok)
	})
}

func TestBotDeclarations(t *testing.T) {
	bot := testBot()

	t.Run("two cards left calls last card", func(t *testing.T) {
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Circle, 3), deck.NewCard(deck.Block, 5)},
			deck.NewCard(deck.Circle, 7), 0, nil)

		decl := bot.DeclarationFor(view)
		if decl == nil {
			t.Fatal("expected a declaration")
		}
		utils.AssertEqual(t, decl.Type, game.ActionDeclareLastCard)
	})

	t.Run("one card left calls check up", func(t *testing.T) {
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Circle, 3)},
			deck.NewCard(deck.Circle, 7), 0, nil)

		decl := bot.DeclarationFor(view)
		if decl == nil {
			t.Fatal("expected a declaration")
		}
		utils.AssertEqual(t, decl.Type, game.ActionDeclareCheckUp)
	})

	t.Run("nothing owed with a full hand", func(t *testing.T) {
		view := viewWith(
			[]deck.Card{deck.NewCard(deck.Circle, 3), deck.NewCard(deck.Block, 5), deck.NewCard(deck.Star, 1)},
			deck.NewCard(deck.Circle, 7), 0, nil)

		if decl := bot.DeclarationFor(view); decl != nil {
			t.Fatalf("unexpected declaration %v", decl.Type)
		}
	})
}

func suitPtr(s deck.Suit) *deck.Suit {
	return &s
}
