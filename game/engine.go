package game

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/deck"
	"github.com/theworldofobi/whot/rules"
)

// Engine validates and applies player actions against the game state,
// executes special-card side effects, advances turns and fires
// lifecycle events. It holds no state of its own beyond references to
// its collaborators.
type Engine struct {
	state    *GameState
	rules    *RuleEngine
	turns    *TurnController
	handlers map[EventType][]EventHandler
	pending  []Event
	log      zerolog.Logger
}

// NewEngine constructs an Engine over the given state
func NewEngine(state *GameState, logger zerolog.Logger) *Engine {
	return &Engine{
		state:    state,
		rules:    NewRuleEngine(state.Config),
		turns:    NewTurnController(state),
		handlers: map[EventType][]EventHandler{},
		log:      logger.With().Str("game_id", state.ID).Logger(),
	}
}

// State returns the authoritative game state
func (e *Engine) State() *GameState {
	return e.state
}

// Turns returns the turn controller
func (e *Engine) Turns() *TurnController {
	return e.turns
}

// Rules returns the rule engine
func (e *Engine) Rules() *RuleEngine {
	return e.rules
}

// StartGame moves the game out of the lobby
func (e *Engine) StartGame() error {
	if e.state.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	if len(e.state.Players) < e.state.Config.MinPlayers {
		return ErrTooFewPlayers
	}
	e.state.Phase = PhaseStarting
	return nil
}

// StartNewRound resets the table, deals a fresh hand to every active
// player and flips the first call card
func (e *Engine) StartNewRound() error {
	switch e.state.Phase {
	case PhaseStarting, PhaseRoundEnded:
	default:
		return ErrWrongPhase
	}
	if len(e.state.ActivePlayers()) < e.state.Config.MinPlayers {
		return ErrTooFewPlayers
	}

	e.state.StartRound()

	for i := 0; i < e.state.Config.StartingCards; i++ {
		for _, p := range e.state.ActivePlayers() {
			p.Hand.Add(e.state.DrawCards(1)...)
		}
	}
	if first, ok := e.state.Deck.Draw(); ok {
		e.state.PlaceCallCard(first)
	}

	e.turns.StartTurn()
	e.emit(Event{Type: EventRoundStarted, Snapshot: e.state.Snapshot()})
	return nil
}

// EndGame transitions the game to its terminal phase
func (e *Engine) EndGame() {
	e.state.EndGame()
	scores := GameScoresFor(e.state.Players)
	if winner, ok := e.state.Player(scores.OverallWinnerID); ok {
		winner.Status = Winner
	}
	e.emit(Event{Type: EventGameEnded, WinnerID: scores.OverallWinnerID, Snapshot: e.state.Snapshot()})
}

// GameOver reports whether the game has reached its terminal phase
func (e *Engine) GameOver() bool {
	return e.state.Phase == PhaseGameEnded
}

// ProcessAction validates a player intent and, if legal, applies it.
// A failed validation returns a rejected result and leaves the state
// untouched.
func (e *Engine) ProcessAction(action Action) ActionResult {
	if e.state.Phase != PhaseInProgress {
		return rejected(fmt.Sprintf("game is not in progress (phase %s)", e.state.Phase))
	}
	player, ok := e.state.Player(action.PlayerID)
	if !ok {
		return rejected("player is not in this game")
	}
	if !e.turns.IsPlayerTurn(action.PlayerID) {
		return rejected("not your turn")
	}

	var res ActionResult
	switch action.Type {
	case ActionPlayCard:
		res = e.handlePlayCard(action, player)
	case ActionDrawCard:
		res = e.handleDrawCard(action, player)
	case ActionDeclareLastCard, ActionDeclareCheckUp:
		res = e.handleDeclaration(action, player)
	case ActionChooseSuit:
		res = e.handleChooseSuit(action, player)
	case ActionForfeitTurn:
		res = e.handleForfeitTurn(action, player)
	default:
		res = rejected(fmt.Sprintf("unknown action type %d", action.Type))
	}

	if res.Success {
		player.Touch(e.state.now())
		e.turns.Record(TurnAction{PlayerID: action.PlayerID, Type: action.Type, At: e.state.now()})
	}
	return res
}

// ValidActions lists the action types currently open to the player
// whose turn it is
func (e *Engine) ValidActions() []ActionType {
	out := []ActionType{}
	p := e.state.CurrentPlayer()
	if p == nil || e.state.Phase != PhaseInProgress {
		return out
	}
	if e.state.AttackCount > 0 {
		if e.rules.HasDefenseCard(e.state, p) {
			out = append(out, ActionPlayCard)
		}
	} else if e.rules.HasPlayableCard(e.state, p) {
		out = append(out, ActionPlayCard)
	}
	if e.rules.MustDrawCard(e.state, p) {
		out = append(out, ActionDrawCard)
	}
	if e.rules.RequiresLastCardDeclaration(p) && !p.SaidLastCard {
		out = append(out, ActionDeclareLastCard)
	}
	if e.rules.RequiresCheckUpDeclaration(p) && !p.SaidCheckUp {
		out = append(out, ActionDeclareCheckUp)
	}
	return out
}

// resolvePlayIndices collects and bounds-checks the indices of a play
// action, primary index first
func resolvePlayIndices(action Action, hand Hand) ([]int, error) {
	indices := append([]int{action.CardIndex}, action.AdditionalCards...)
	seen := map[int]bool{}
	for _, idx := range indices {
		if idx < 0 || idx >= len(hand) {
			return nil, fmt.Errorf("card index %d out of bounds", idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("duplicate card index %d", idx)
		}
		seen[idx] = true
	}
	return indices, nil
}

func (e *Engine) handlePlayCard(action Action, player *Player) ActionResult {
	indices, err := resolvePlayIndices(action, player.Hand)
	if err != nil {
		return rejected(err.Error())
	}

	cards := make([]deck.Card, len(indices))
	for i, idx := range indices {
		cards[i] = player.Hand[idx]
	}

	if len(cards) > 1 {
		if e.state.CallCard == nil ||
			!rules.ValidateMultiPlay(e.state.Config, cards, *e.state.CallCard, e.state.DemandedSuit) {
			return rejected("cards cannot be played together")
		}
	} else if !e.rules.CanPlayCard(e.state, cards[0]) {
		return rejected(fmt.Sprintf("%s cannot be played now", cards[0]))
	}

	// An unresolved attack chain can only be extended with the same
	// rank that most recently extended it.
	if e.state.AttackCount > 0 && !rules.CanDefend(*e.state.CallCard, cards[0]) {
		return rejected(fmt.Sprintf("%s does not defend against %s", cards[0], e.state.CallCard))
	}

	affected := []string{player.ID}

	// Missed-declaration penalty: playing down to one card without
	// "last card", or out without "check up", draws the penalty
	// before the play resolves. Penalty cards append to the end of
	// the hand, so the play indices stay valid.
	if penalty := e.missedDeclarationPenalty(player); penalty > 0 {
		drawn := e.state.DrawCards(penalty)
		player.Hand.Add(drawn...)
		e.log.Info().Str("player_id", player.ID).Int("cards", len(drawn)).
			Msg("declaration penalty applied")
	}

	// Remove from the hand highest index first so earlier indices
	// stay stable.
	removal := append([]int{}, indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(removal)))
	for _, idx := range removal {
		player.Hand.RemoveAt(idx)
	}

	for _, c := range cards {
		e.state.PlaceCallCard(c)
	}
	e.state.DemandedSuit = nil

	// A fresh play starts with no replay; special effects may grant
	// one.
	e.turns.DisableMultipleActions()
	for _, c := range cards {
		affected = append(affected, e.executeSpecialCard(c, action, player)...)
	}

	played := cards[len(cards)-1]
	e.emit(Event{Type: EventCardPlayed, PlayerID: player.ID, Card: &played, Snapshot: e.state.Snapshot()})

	if e.state.RoundOver() {
		e.finishRound()
	} else if e.turns.CanPlayAgain() {
		e.turns.StartTurn()
	} else {
		e.turns.EndTurn()
	}

	return ActionResult{
		Success:           true,
		AffectedPlayerIDs: dedupe(affected),
		NewState:          e.state.Snapshot(),
	}
}

// executeSpecialCard applies a played card's side effects, returning
// the ids of any players it forced to draw
func (e *Engine) executeSpecialCard(card deck.Card, action Action, player *Player) []string {
	affected := []string{}

	switch card.Ability() {
	case deck.HoldOn:
		// The replay flag saturates: several Hold-Ons put down in
		// one multi-card play still grant a single extra action.
		e.turns.EnableMultipleActions()

	case deck.PickTwo, deck.PickThree:
		e.state.AttackCount += rules.AttackAmount(card)

	case deck.Suspension:
		e.turns.SkipTurn()

	case deck.GeneralMarket:
		for _, p := range e.state.ActivePlayers() {
			if p.ID == player.ID {
				continue
			}
			p.Hand.Add(e.state.DrawCards(1)...)
			affected = append(affected, p.ID)
		}

	case deck.WhotCard:
		if action.ChosenSuit != nil {
			suit := *action.ChosenSuit
			e.state.DemandedSuit = &suit
			if action.ReverseDirection && e.state.Config.AllowDirectionChange {
				e.state.ReverseDirection()
			}
		} else {
			// No suit supplied with the card: hold the turn until
			// the player follows up with a choose_suit action.
			e.turns.EnableMultipleActions()
		}
	}

	return affected
}

func (e *Engine) handleDrawCard(action Action, player *Player) ActionResult {
	if !e.rules.MustDrawCard(e.state, player) {
		return rejected("you hold a playable card")
	}
	return e.drawAndEndTurn(player)
}

// handleForfeitTurn resolves an expired turn as a forced draw,
// submitted through the same validated path as every other action
func (e *Engine) handleForfeitTurn(action Action, player *Player) ActionResult {
	if !e.rules.EnforceTurnTimer() {
		return rejected("turn timer is not enforced")
	}
	if !e.turns.Expired() {
		return rejected("turn has not expired")
	}
	return e.drawAndEndTurn(player)
}

func (e *Engine) drawAndEndTurn(player *Player) ActionResult {
	count := e.rules.DrawCount(e.state, player)
	drawn := e.state.DrawCards(count)
	player.Hand.Add(drawn...)
	e.state.AttackCount = 0

	e.emit(Event{Type: EventCardDrawn, PlayerID: player.ID, Snapshot: e.state.Snapshot()})
	e.turns.EndTurn()

	return ActionResult{
		Success:           true,
		Message:           fmt.Sprintf("drew %d card(s)", len(drawn)),
		AffectedPlayerIDs: []string{player.ID},
		NewState:          e.state.Snapshot(),
	}
}

func (e *Engine) handleDeclaration(action Action, player *Player) ActionResult {
	switch action.Type {
	case ActionDeclareLastCard:
		player.SaidLastCard = true
	case ActionDeclareCheckUp:
		player.SaidCheckUp = true
	}
	return ActionResult{
		Success:           true,
		AffectedPlayerIDs: []string{player.ID},
		NewState:          e.state.Snapshot(),
	}
}

func (e *Engine) handleChooseSuit(action Action, player *Player) ActionResult {
	// A suit choice is only pending right after the player put down
	// a Whot without naming a suit: the Whot is the call card, no
	// demand is in force yet, and the turn was held open for the
	// follow-up.
	if e.state.CallCard == nil || !e.state.CallCard.IsWhot() ||
		e.state.DemandedSuit != nil || !e.turns.CanPlayAgain() {
		return rejected("no suit choice is pending")
	}
	if action.ChosenSuit == nil {
		return rejected("a suit must be supplied")
	}
	suit := *action.ChosenSuit
	e.state.DemandedSuit = &suit
	if action.ReverseDirection && e.state.Config.AllowDirectionChange {
		e.state.ReverseDirection()
	}
	e.turns.EndTurn()
	return ActionResult{
		Success:           true,
		AffectedPlayerIDs: []string{player.ID},
		NewState:          e.state.Snapshot(),
	}
}

// missedDeclarationPenalty returns the penalty draw count owed for a
// play made without the required declaration
func (e *Engine) missedDeclarationPenalty(player *Player) int {
	if e.rules.RequiresLastCardDeclaration(player) && !player.SaidLastCard {
		return e.rules.DeclarationPenalty()
	}
	if e.rules.RequiresCheckUpDeclaration(player) && !player.SaidCheckUp {
		return e.rules.DeclarationPenalty()
	}
	return 0
}

// finishRound scores the round, applies eliminations and freezes the
// state
func (e *Engine) finishRound() {
	winnerID, _ := e.state.WinnerID()
	for _, p := range e.state.ActivePlayers() {
		p.AddScore(e.rules.RoundScore(p))
		p.GamesPlayed++
	}
	if winner, ok := e.state.Player(winnerID); ok {
		winner.GamesWon++
	}
	eliminated := e.state.EliminatePlayers()
	e.state.EndRound()

	e.log.Info().Str("winner_id", winnerID).Strs("eliminated", eliminated).Msg("round ended")
	e.emit(Event{Type: EventRoundEnded, WinnerID: winnerID, Snapshot: e.state.Snapshot()})

	// With fewer than two players left standing the game is over.
	if len(e.state.ActivePlayers()) < rules.DefaultMinPlayers {
		e.EndGame()
	}
}

func dedupe(ids []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
