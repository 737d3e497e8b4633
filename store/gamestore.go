package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/theworldofobi/whot/game"
)

var (
	ErrUnknownGameID   = errors.New("unknown game ID")
	ErrUnknownJoinCode = errors.New("unknown join code")
	ErrFnGameExists    = func(gameID string) error {
		return fmt.Errorf("game with id %q already exists", gameID)
	}
	ErrGameAlreadyStarted = errors.New("game has already started")
)

// GameStore holds the live games a server is running
type GameStore interface {
	FindGame(gameID string) *game.Instance
	FindGameByJoinCode(code string) *game.Instance
	AddGame(instance *game.Instance) error
	RemoveGame(gameID string)
	ActiveGames() []*game.Instance
}

// InMemoryGameStore maps game id to game instance
type InMemoryGameStore struct {
	mu        sync.RWMutex
	games     map[string]*game.Instance
	joinCodes map[string]string // join code -> game id
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games:     map[string]*game.Instance{},
		joinCodes: map[string]string{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) *game.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[gameID]
}

func (s *InMemoryGameStore) FindGameByJoinCode(code string) *game.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gameID, ok := s.joinCodes[code]
	if !ok {
		return nil
	}
	return s.games[gameID]
}

func (s *InMemoryGameStore) AddGame(instance *game.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := instance.ID()
	if _, exists := s.games[id]; exists {
		return ErrFnGameExists(id)
	}
	s.games[id] = instance
	if code := instance.JoinCode(); code != "" {
		s.joinCodes[code] = id
	}
	return nil
}

func (s *InMemoryGameStore) RemoveGame(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	instance, ok := s.games[gameID]
	if !ok {
		return
	}
	if code := instance.JoinCode(); code != "" {
		delete(s.joinCodes, code)
	}
	delete(s.games, gameID)
}

func (s *InMemoryGameStore) ActiveGames() []*game.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := []*game.Instance{}
	for _, instance := range s.games {
		games = append(games, instance)
	}
	return games
}
