package game

import (
	"fmt"
	"math/rand"
	"time"
)

func testState(players int) *State {
	st := &State{
		Board:     NewBoard(),
		Phase:     PhaseWaiting,
		Speed:     "instant",
		TurnLimit: 200,
	}
	for i := 0; i < players; i++ {
		st.Players = append(st.Players, &Player{
			ID:         fmt.Sprintf("p%d", i+1),
			Name:       fmt.Sprintf("Player %d", i+1),
			Money:      1500,
			Properties: []int{},
		})
	}
	return st
}

func testEngine(st *State, providers map[string]DecisionProvider, roller *Roller) *Engine {
	return NewEngine(st, providers, roller, EngineConfig{
		PassStartBonus: 200,
		EscapeFee:      50,
		SpeedDelays:    map[string]time.Duration{"instant": 0},
	})
}

// scriptedProvider answers every decision the same way, for steering a turn
// through a known path.
type scriptedProvider struct {
	buy   bool
	build *BuildDecision
	pot   PotChoice
}

func (s *scriptedProvider) DecideBuy(*Player, *Square, *State) bool { return s.buy }
func (s *scriptedProvider) DecideBuild(*Player, []int, []int, *State) *BuildDecision {
	return s.build
}
func (s *scriptedProvider) DecidePotEscape(*Player, *State) PotChoice { return s.pot }

// ownGroup hands every property in the color group to the player.
func ownGroup(st *State, p *Player, group string) {
	for _, sq := range st.Board {
		if sq.Type == SquareProperty && sq.ColorGroup == group {
			sq.Owner = p.ID
			p.Properties = append(p.Properties, sq.Index)
		}
	}
}

// seedWhere finds a seed whose fresh roller satisfies the predicate, so turn
// paths that depend on specific dice can be replayed deterministically.
func seedWhere(pred func(*Roller) bool) int64 {
	for seed := int64(0); seed < 100000; seed++ {
		if pred(NewRoller(seed)) {
			return seed
		}
	}
	panic("no seed satisfies predicate")
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
