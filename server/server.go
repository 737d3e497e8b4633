package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/ai"
	"github.com/theworldofobi/whot/game"
	"github.com/theworldofobi/whot/protocol"
	"github.com/theworldofobi/whot/rules"
	"github.com/theworldofobi/whot/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewGameReq struct {
	Name string   `json:"name"`
	Bots []string `json:"bots,omitempty"` // "easy", "medium" or "hard"
}

type NewGameRes struct {
	GameID   string `json:"game_id"`
	JoinCode string `json:"join_code"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Admin    bool   `json:"is_admin"`
}

type JoinGameReq struct {
	JoinCode string `json:"join_code"`
	Name     string `json:"name"`
}

type JoinGameRes struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type StartGameReq struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

type errorRes struct {
	Error string `json:"error"`
}

// GameServer is a game server
type GameServer struct {
	store     store.GameStore
	snapshots store.SnapshotStore
	cfg       rules.Config
	rng       *rand.Rand
	log       zerolog.Logger
	hub       *hub
	http.Server
}

// ServerOpts configures a GameServer
type ServerOpts struct {
	Addr      string
	Store     store.GameStore
	Snapshots store.SnapshotStore
	Config    rules.Config
	Rand      *rand.Rand
	Logger    zerolog.Logger
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	s := &GameServer{
		store:     opts.Store,
		snapshots: opts.Snapshots,
		cfg:       opts.Config.Normalise(),
		rng:       opts.Rand,
		log:       opts.Logger,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.hub = newHub(s.log)

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/join", http.HandlerFunc(s.HandleJoinGame))
	router.Handle("/start", http.HandlerFunc(s.HandleStartGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	s.Addr = opts.Addr
	s.Handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.LoggingHandler(zerologWriter{s.log}, router))

	return s
}

// zerologWriter adapts the request log to the structured logger
type zerologWriter struct {
	log zerolog.Logger
}

func (w zerologWriter) Write(p []byte) (int, error) {
	w.log.Debug().Msg(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorRes{Error: msg})
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request")
		return
	}
	if data.Name == "" {
		writeError(w, http.StatusBadRequest, "missing player name")
		return
	}

	state := game.NewGameState(game.GameStateOpts{
		JoinCode: NewJoinCode(g.rng),
		Config:   g.cfg,
		Logger:   g.log,
	})
	engine := game.NewEngine(state, g.log)
	instance := game.NewInstance(engine)

	playerID := NewID()
	creator := game.NewPlayer(playerID, data.Name, game.Human)
	if err := instance.AddPlayer(creator); err != nil {
		g.log.Error().Err(err).Msg("seat creator")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for _, tier := range data.Bots {
		if err := g.addBot(instance, tier); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	g.hub.attach(instance)
	g.attachPersistence(instance)

	if err := g.store.AddGame(instance); err != nil {
		g.log.Error().Err(err).Msg("register game")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.log.Info().
		Str("gameId", instance.ID()).
		Str("joinCode", instance.JoinCode()).
		Msg("new game created")

	writeJSON(w, http.StatusCreated, NewGameRes{
		GameID:   instance.ID(),
		JoinCode: instance.JoinCode(),
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
	})
}

// addBot seats a computer player and starts its runner
func (g *GameServer) addBot(instance *game.Instance, tier string) error {
	var kind game.PlayerKind
	switch tier {
	case "easy":
		kind = game.BotEasy
	case "medium":
		kind = game.BotMedium
	case "hard":
		kind = game.BotHard
	default:
		return ErrUnknownDifficulty
	}

	botID := NewID()
	if err := instance.AddPlayer(game.NewPlayer(botID, botName(g.rng), kind)); err != nil {
		return err
	}
	g.attachBotRunner(instance, botID, kind)
	return nil
}

// attachBotRunner drives an already-seated computer player
func (g *GameServer) attachBotRunner(instance *game.Instance, playerID string, kind game.PlayerKind) {
	bot := ai.NewBot(ai.BotOpts{
		PlayerID:   playerID,
		Difficulty: ai.DifficultyFor(kind, g.rng),
		Rand:       g.rng,
		Logger:     g.log,
	})
	ai.NewRunner(bot, instance, g.log)
}

var botNames = []string{"Ada", "Bisi", "Chidi", "Dike", "Emeka", "Funke", "Gozie", "Halima"}

func botName(rng *rand.Rand) string {
	return botNames[rng.Intn(len(botNames))] + " (bot)"
}

// attachPersistence saves a snapshot after every event the game emits
func (g *GameServer) attachPersistence(instance *game.Instance) {
	if g.snapshots == nil {
		return
	}
	instance.Subscribe(game.EventAny, func(e game.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.snapshots.Save(ctx, instance.Snapshot()); err != nil {
			g.log.Error().Err(err).Str("gameId", instance.ID()).Msg("persist snapshot")
		}
	})
}

// ResumeGames rebuilds live games from the snapshots left by a
// previous run. Each restored instance gets the same broadcast and
// persistence subscriptions and bot runners a new game gets.
func (g *GameServer) ResumeGames(ctx context.Context) error {
	if g.snapshots == nil {
		return nil
	}
	ids, err := g.snapshots.List(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		snap, err := g.snapshots.Load(ctx, id)
		if err != nil {
			g.log.Error().Err(err).Str("gameId", id).Msg("load snapshot")
			continue
		}
		if snap.Phase == game.PhaseGameEnded {
			continue
		}
		state, err := game.FromSnapshot(snap, game.GameStateOpts{Config: g.cfg, Logger: g.log})
		if err != nil {
			g.log.Error().Err(err).Str("gameId", id).Msg("restore game")
			continue
		}
		instance := game.NewInstance(game.NewEngine(state, g.log))

		g.hub.attach(instance)
		g.attachPersistence(instance)

		if err := g.store.AddGame(instance); err != nil {
			g.log.Error().Err(err).Str("gameId", id).Msg("register restored game")
			continue
		}
		// Runners last: a restored bot on turn starts thinking as
		// soon as it is attached.
		for _, p := range snap.Players {
			if p.Kind != game.Human {
				g.attachBotRunner(instance, p.ID, p.Kind)
			}
		}
		g.log.Info().Str("gameId", id).Str("phase", snap.Phase.String()).Msg("resumed game")
	}
	return nil
}

// HandleJoinGame handles a request to join an existing game
func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request")
		return
	}
	if data.JoinCode == "" || data.Name == "" {
		writeError(w, http.StatusBadRequest, "missing join code or player name")
		return
	}

	instance := g.store.FindGameByJoinCode(strings.ToUpper(data.JoinCode))
	if instance == nil {
		writeError(w, http.StatusNotFound, "unknown join code")
		return
	}

	playerID := NewID()
	if err := instance.AddPlayer(game.NewPlayer(playerID, data.Name, game.Human)); err != nil {
		switch err {
		case game.ErrGameFull:
			writeError(w, http.StatusConflict, "game is full")
		case game.ErrWrongPhase:
			writeError(w, http.StatusConflict, "game has already started")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	g.hub.broadcast(instance, protocol.NewJoiner, data.Name+" joined")

	writeJSON(w, http.StatusOK, JoinGameRes{
		GameID:   instance.ID(),
		PlayerID: playerID,
		Name:     data.Name,
	})
}

// HandleStartGame moves a game out of the lobby. Only the creator may
// start it.
func (g *GameServer) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data StartGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request")
		return
	}

	instance := g.store.FindGame(data.GameID)
	if instance == nil {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(data.GameID))
		return
	}
	if instance.View(data.PlayerID).CreatorID != data.PlayerID {
		writeError(w, http.StatusForbidden, "only the game creator can start the game")
		return
	}

	if err := instance.Start(); err != nil {
		switch err {
		case game.ErrTooFewPlayers:
			writeError(w, http.StatusConflict, "not enough players")
		case game.ErrWrongPhase:
			writeError(w, http.StatusConflict, "game has already started")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

// HandleGame serves GET /game/{id} (a viewer's projection) and
// POST /game/{id}/action (a player's move)
func (g *GameServer) HandleGame(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/game/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := parts[0]
	instance := g.store.FindGame(gameID)
	if instance == nil {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		viewerID := r.URL.Query().Get("player_id")
		writeJSON(w, http.StatusOK, instance.View(viewerID))
	case len(parts) == 2 && parts[1] == "action" && r.Method == http.MethodPost:
		g.handleAction(w, r, instance)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (g *GameServer) handleAction(w http.ResponseWriter, r *http.Request, instance *game.Instance) {
	var msg protocol.InboundMessage
	err := json.NewDecoder(r.Body).Decode(&msg)
	defer r.Body.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request")
		return
	}

	action, ok := msg.ToAction()
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown command "+msg.Command.String())
		return
	}

	res := instance.Submit(action)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

// HandleWS upgrades a player's connection and streams their view of
// the game to them
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	playerID := r.URL.Query().Get("player_id")
	if gameID == "" || playerID == "" {
		writeError(w, http.StatusBadRequest, "missing game_id or player_id")
		return
	}

	instance := g.store.FindGame(gameID)
	if instance == nil {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error().Err(err).Msg("websocket upgrade")
		return
	}

	c := g.hub.register(gameID, playerID, conn)
	g.log.Info().Str("gameId", gameID).Str("playerId", playerID).Msg("player connected")

	// greet the new connection with its current view
	view := instance.View(playerID)
	if data, err := json.Marshal(protocol.OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.StateUpdate,
		State:    &view,
	}); err == nil {
		c.send <- data
	}

	go g.readLoop(instance, c, gameID)
}

// readLoop consumes a player's inbound messages until the connection
// drops
func (g *GameServer) readLoop(instance *game.Instance, c *client, gameID string) {
	defer g.hub.unregister(gameID, c.playerID, c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			g.log.Info().Str("playerId", c.playerID).Msg("player disconnected")
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			g.sendError(c, "could not parse message")
			continue
		}
		msg.PlayerID = c.playerID

		action, ok := msg.ToAction()
		if !ok {
			g.sendError(c, "unknown command "+msg.Command.String())
			continue
		}

		if res := instance.Submit(action); !res.Success {
			g.sendError(c, res.Message)
		}
	}
}

func (g *GameServer) sendError(c *client, msg string) {
	data, err := json.Marshal(protocol.OutboundMessage{
		PlayerID: c.playerID,
		Command:  protocol.Error,
		Error:    msg,
	})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// RunTurnSweeper forfeits expired turns on every active game until the
// context is cancelled
func (g *GameServer) RunTurnSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, instance := range g.store.ActiveGames() {
				if instance.Phase() == game.PhaseInProgress {
					instance.CheckTurnTimeout()
				}
			}
		}
	}
}
