package game

import (
	"math/rand"
	"time"
)

// Roller produces dice rolls from its own rand source so matches and tests
// can be seeded independently.
type Roller struct {
	r *rand.Rand
}

func NewRoller(seed int64) *Roller {
	return &Roller{r: rand.New(rand.NewSource(seed))}
}

func NewTimeRoller() *Roller {
	return NewRoller(time.Now().UnixNano())
}

// Roll returns a pair of 1-6 dice.
func (ro *Roller) Roll() DiceRoll {
	d1 := ro.r.Intn(6) + 1
	d2 := ro.r.Intn(6) + 1
	return DiceRoll{
		Dice:    [2]int{d1, d2},
		Total:   d1 + d2,
		Doubles: d1 == d2,
	}
}

// RollOne returns a single die, used for turn-order resolution.
func (ro *Roller) RollOne() int {
	return ro.r.Intn(6) + 1
}

// Rand exposes the underlying source for deck shuffling.
func (ro *Roller) Rand() *rand.Rand {
	return ro.r
}
