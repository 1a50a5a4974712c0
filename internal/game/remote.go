package game

import (
	"sync"
	"time"
)

// PendingDecision is the one in-flight question for a remote seat. It is
// created when the engine asks, and destroyed the moment it is answered or
// its deadline passes.
type PendingDecision struct {
	Kind     DecisionKind           `json:"kind"`
	Context  map[string]interface{} `json:"context"`
	Deadline time.Time              `json:"deadline"`

	// legal build targets, kept for boundary validation
	buildable   []int
	upgradeable []int

	result chan interface{}
}

// RemoteProvider parks each engine question behind a single pending slot and
// waits for an out-of-band answer. The answering goroutine only fulfills the
// result channel; game logic stays on the engine goroutine. An unanswered
// question falls back to the safe default when the timeout elapses.
type RemoteProvider struct {
	mu      sync.Mutex
	pending *PendingDecision
	timeout time.Duration
	notify  func(kind DecisionKind, ctx map[string]interface{})
}

func NewRemoteProvider(timeout time.Duration) *RemoteProvider {
	return &RemoteProvider{timeout: timeout}
}

// SetNotify registers a callback fired the instant a decision becomes
// pending, used to wake long-polling callers.
func (a *RemoteProvider) SetNotify(fn func(kind DecisionKind, ctx map[string]interface{})) {
	a.mu.Lock()
	a.notify = fn
	a.mu.Unlock()
}

// Pending returns the current pending decision, or nil.
func (a *RemoteProvider) Pending() *PendingDecision {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

func (a *RemoteProvider) DecideBuy(p *Player, sq *Square, _ *State) bool {
	pd := a.arm(DecisionBuy, map[string]interface{}{
		"property": map[string]interface{}{
			"index":      sq.Index,
			"name":       sq.Name,
			"price":      sq.Price,
			"colorGroup": sq.ColorGroup,
		},
		"yourMoney": p.Money,
	}, nil, nil)

	if v, ok := a.await(pd); ok {
		if buy, ok := v.(bool); ok {
			return buy
		}
	}
	return false
}

func (a *RemoteProvider) DecideBuild(p *Player, buildable, upgradeable []int, st *State) *BuildDecision {
	buildCtx := make([]map[string]interface{}, 0, len(buildable))
	for _, idx := range buildable {
		sq := st.Board[idx]
		buildCtx = append(buildCtx, map[string]interface{}{
			"index": idx, "name": sq.Name, "outposts": sq.Outposts, "outpostCost": sq.OutpostCost,
		})
	}
	upgradeCtx := make([]map[string]interface{}, 0, len(upgradeable))
	for _, idx := range upgradeable {
		sq := st.Board[idx]
		upgradeCtx = append(upgradeCtx, map[string]interface{}{
			"index": idx, "name": sq.Name, "fortressCost": sq.FortressCost,
		})
	}

	pd := a.arm(DecisionBuild, map[string]interface{}{
		"buildableSquares":   buildCtx,
		"upgradeableSquares": upgradeCtx,
		"yourMoney":          p.Money,
	}, buildable, upgradeable)

	if v, ok := a.await(pd); ok {
		if d, ok := v.(*BuildDecision); ok {
			return d
		}
	}
	return nil
}

func (a *RemoteProvider) DecidePotEscape(p *Player, _ *State) PotChoice {
	pd := a.arm(DecisionPot, map[string]interface{}{
		"turnsTrapped":  p.PotTurns,
		"hasEscapeCard": p.EscapeCards > 0,
		"yourMoney":     p.Money,
	}, nil, nil)

	if v, ok := a.await(pd); ok {
		if c, ok := v.(PotChoice); ok {
			return c
		}
	}
	return PotRoll
}

// ResolveBuy answers a pending buy decision from any goroutine.
func (a *RemoteProvider) ResolveBuy(accept bool) error {
	return a.resolve(DecisionBuy, accept, -1)
}

// ResolveBuild answers a pending build decision. A nil decision skips the
// phase; a non-nil one must name a currently legal target.
func (a *RemoteProvider) ResolveBuild(d *BuildDecision) error {
	target := -1
	if d != nil {
		target = d.SquareIndex
	}
	var v interface{}
	if d != nil {
		v = d
	}
	return a.resolve(DecisionBuild, v, target)
}

// ResolvePotEscape answers a pending escape decision.
func (a *RemoteProvider) ResolvePotEscape(choice PotChoice) error {
	return a.resolve(DecisionPot, choice, -1)
}

func (a *RemoteProvider) arm(kind DecisionKind, ctx map[string]interface{}, buildable, upgradeable []int) *PendingDecision {
	pd := &PendingDecision{
		Kind:        kind,
		Context:     ctx,
		Deadline:    time.Now().Add(a.timeout),
		buildable:   buildable,
		upgradeable: upgradeable,
		result:      make(chan interface{}, 1),
	}

	a.mu.Lock()
	a.pending = pd
	notify := a.notify
	a.mu.Unlock()

	if notify != nil {
		notify(kind, ctx)
	}
	return pd
}

// await blocks until the decision is answered or times out. On timeout the
// slot is cleared; if an answer slipped in between the timer firing and the
// clear, that answer still wins.
func (a *RemoteProvider) await(pd *PendingDecision) (interface{}, bool) {
	t := time.NewTimer(a.timeout)
	defer t.Stop()

	select {
	case v := <-pd.result:
		return v, true
	case <-t.C:
		if !a.clearIfCurrent(pd) {
			return <-pd.result, true
		}
		return nil, false
	}
}

func (a *RemoteProvider) resolve(kind DecisionKind, v interface{}, buildTarget int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pending == nil {
		return ErrNoPending
	}
	if a.pending.Kind != kind {
		return ErrWrongKind
	}
	if kind == DecisionBuild && buildTarget >= 0 {
		d, _ := v.(*BuildDecision)
		if d == nil || !a.pending.allowsTarget(d) {
			return ErrIllegalTarget
		}
	}

	pd := a.pending
	a.pending = nil
	pd.result <- v
	return nil
}

func (a *RemoteProvider) clearIfCurrent(pd *PendingDecision) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == pd {
		a.pending = nil
		return true
	}
	return false
}

func (pd *PendingDecision) allowsTarget(d *BuildDecision) bool {
	pool := pd.buildable
	if d.Action == ActionUpgrade {
		pool = pd.upgradeable
	}
	for _, idx := range pool {
		if idx == d.SquareIndex {
			return true
		}
	}
	return false
}
