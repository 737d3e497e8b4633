package protocol

// Cmd represents a message type on the wire
type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Start
	HasStarted
	Error
	// game-specific messages
	PlayCard
	DrawCard
	DeclareLastCard
	DeclareCheckUp
	ChooseSuit
	Turn
	StateUpdate
	RoundStarted
	RoundOver
	GameOver
)

var CmdNames = map[Cmd]string{
	Null:            "Null",
	NewJoiner:       "NewJoiner",
	Start:           "Start",
	HasStarted:      "HasStarted",
	Error:           "Error",
	PlayCard:        "PlayCard",
	DrawCard:        "DrawCard",
	DeclareLastCard: "DeclareLastCard",
	DeclareCheckUp:  "DeclareCheckUp",
	ChooseSuit:      "ChooseSuit",
	Turn:            "Turn",
	StateUpdate:     "StateUpdate",
	RoundStarted:    "RoundStarted",
	RoundOver:       "RoundOver",
	GameOver:        "GameOver",
}

var NameToCmd = map[string]Cmd{
	"Null":            Null,
	"NewJoiner":       NewJoiner,
	"Start":           Start,
	"HasStarted":      HasStarted,
	"Error":           Error,
	"PlayCard":        PlayCard,
	"DrawCard":        DrawCard,
	"DeclareLastCard": DeclareLastCard,
	"DeclareCheckUp":  DeclareCheckUp,
	"ChooseSuit":      ChooseSuit,
	"Turn":            Turn,
	"StateUpdate":     StateUpdate,
	"RoundStarted":    RoundStarted,
	"RoundOver":       RoundOver,
	"GameOver":        GameOver,
}

func (c Cmd) String() string {
	return CmdNames[c]
}
