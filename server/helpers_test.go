package server

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	utils "github.com/theworldofobi/whot/internal"
	"github.com/theworldofobi/whot/rules"
	"github.com/theworldofobi/whot/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := NewServer(ServerOpts{
		Store:     store.NewInMemoryGameStore(),
		Snapshots: store.NewInMemorySnapshotStore(),
		Config:    rules.DefaultConfig(),
		Rand:      rand.New(rand.NewSource(1)),
		Logger:    zerolog.Nop(),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func mustMakeJSON(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)
	return data
}

func postJSON(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()

	res, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	utils.AssertNoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, into interface{}) {
	t.Helper()

	defer res.Body.Close()
	utils.AssertNoError(t, json.NewDecoder(res.Body).Decode(into))
}

func createGame(t *testing.T, ts *httptest.Server, name string, bots ...string) NewGameRes {
	t.Helper()

	res := postJSON(t, ts.URL+"/new", mustMakeJSON(t, NewGameReq{Name: name, Bots: bots}))
	assertStatus(t, res.StatusCode, http.StatusCreated)

	var created NewGameRes
	decodeBody(t, res, &created)
	return created
}

func joinGame(t *testing.T, ts *httptest.Server, joinCode, name string) JoinGameRes {
	t.Helper()

	res := postJSON(t, ts.URL+"/join", mustMakeJSON(t, JoinGameReq{JoinCode: joinCode, Name: name}))
	assertStatus(t, res.StatusCode, http.StatusOK)

	var joined JoinGameRes
	decodeBody(t, res, &joined)
	return joined
}

func startGame(t *testing.T, ts *httptest.Server, gameID, playerID string) {
	t.Helper()

	res := postJSON(t, ts.URL+"/start", mustMakeJSON(t, StartGameReq{GameID: gameID, PlayerID: playerID}))
	assertStatus(t, res.StatusCode, http.StatusOK)
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("got status %d, want %d", got, want)
	}
}

func makeWSURL(serverURL, gameID, playerID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") +
		"/ws?game_id=" + gameID + "&player_id=" + playerID
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("could not open a ws connection on %s: %v", url, err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}
