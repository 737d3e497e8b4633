package server

import (
	"errors"
	"fmt"
	"math/rand"

	uuid "github.com/satori/go.uuid"
)

var ErrUnknownDifficulty = errors.New("unknown bot difficulty")

// NewID returns a fresh player or game id
func NewID() string {
	return uuid.NewV4().String()
}

const joinCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const joinCodeLength = 6

// NewJoinCode returns a 6-letter code players use to join a game
func NewJoinCode(rng *rand.Rand) string {
	code := make([]byte, joinCodeLength)
	for i := range code {
		code[i] = joinCodeLetters[rng.Intn(len(joinCodeLetters))]
	}
	return string(code)
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}
