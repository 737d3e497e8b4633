package game

import (
	"sync"
)

// Instance is the per-game mutual-exclusion boundary. All mutations
// of one game pass through it in sequence; different games are fully
// independent. Events produced by a mutation are dispatched after the
// lock is released so subscribers (broadcast, persistence) never run
// inside the critical section.
type Instance struct {
	mu     sync.Mutex
	engine *Engine
}

// NewInstance wraps an engine in its serialisation boundary
func NewInstance(engine *Engine) *Instance {
	return &Instance{engine: engine}
}

// ID returns the game id
func (i *Instance) ID() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.State().ID
}

// JoinCode returns the game's join code
func (i *Instance) JoinCode() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.State().JoinCode
}

// Subscribe registers an event handler
func (i *Instance) Subscribe(t EventType, h EventHandler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.engine.Subscribe(t, h)
}

// Submit processes one action under the game's lock, then dispatches
// any resulting events outside it
func (i *Instance) Submit(action Action) ActionResult {
	i.mu.Lock()
	res := i.engine.ProcessAction(action)
	plan := i.engine.takeDispatch()
	i.mu.Unlock()

	plan.run()
	return res
}

// AddPlayer seats a player in the lobby
func (i *Instance) AddPlayer(p *Player) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.engine.State().Phase != PhaseLobby {
		return ErrWrongPhase
	}
	return i.engine.State().AddPlayer(p)
}

// Start moves the game out of the lobby and deals the first round
func (i *Instance) Start() error {
	i.mu.Lock()
	err := i.engine.StartGame()
	if err == nil {
		err = i.engine.StartNewRound()
	}
	plan := i.engine.takeDispatch()
	i.mu.Unlock()

	plan.run()
	return err
}

// StartNextRound begins a fresh round after a round has ended
func (i *Instance) StartNextRound() error {
	i.mu.Lock()
	err := i.engine.StartNewRound()
	plan := i.engine.takeDispatch()
	i.mu.Unlock()

	plan.run()
	return err
}

// EndGame forces the terminal phase
func (i *Instance) EndGame() {
	i.mu.Lock()
	i.engine.EndGame()
	plan := i.engine.takeDispatch()
	i.mu.Unlock()

	plan.run()
}

// CheckTurnTimeout resolves an expired turn by submitting a synthetic
// forfeit through the normal validated path. It is safe to call from
// a periodic sweep; when the timer has not expired the forfeit is
// simply rejected.
func (i *Instance) CheckTurnTimeout() ActionResult {
	i.mu.Lock()
	playerID := i.engine.Turns().CurrentPlayerID()
	i.mu.Unlock()
	if playerID == "" {
		return ActionResult{Success: false, Message: "no current player"}
	}
	return i.Submit(Action{Type: ActionForfeitTurn, PlayerID: playerID})
}

// View returns the game projected for one viewer
func (i *Instance) View(viewerID string) StateView {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.State().ViewFor(viewerID)
}

// Snapshot returns the full persistable state
func (i *Instance) Snapshot() *Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.State().Snapshot()
}

// Phase returns the current lifecycle phase
func (i *Instance) Phase() Phase {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.State().Phase
}

// PlayerIDs returns the ids of all seated players
func (i *Instance) PlayerIDs() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	ids := []string{}
	for _, p := range i.engine.State().Players {
		ids = append(ids, p.ID)
	}
	return ids
}
