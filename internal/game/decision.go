package game

import "errors"

type DecisionKind string

const (
	DecisionBuy   DecisionKind = "buy"
	DecisionBuild DecisionKind = "build"
	DecisionPot   DecisionKind = "pot_escape"
)

type BuildAction string

const (
	ActionBuild   BuildAction = "build"
	ActionUpgrade BuildAction = "upgrade"
)

// BuildDecision is the answer to a build offer; nil means skip the phase.
type BuildDecision struct {
	SquareIndex int         `json:"squareIndex"`
	Action      BuildAction `json:"action"`
}

type PotChoice string

const (
	PotUseCard PotChoice = "card"
	PotPay     PotChoice = "pay"
	PotRoll    PotChoice = "roll"
)

// DecisionProvider answers the three decision points the engine reaches
// during a turn. Calls block the engine goroutine until an answer exists;
// implementations that wait on external input must time out with the safe
// default (decline purchase, skip building, attempt roll).
type DecisionProvider interface {
	DecideBuy(p *Player, sq *Square, st *State) bool
	DecideBuild(p *Player, buildable, upgradeable []int, st *State) *BuildDecision
	DecidePotEscape(p *Player, st *State) PotChoice
}

// Protocol-boundary failures for out-of-band decision answers.
var (
	ErrNoPending     = errors.New("no decision pending")
	ErrWrongKind     = errors.New("pending decision is of a different kind")
	ErrIllegalTarget = errors.New("target square is not a legal choice")
)
