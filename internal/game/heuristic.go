package game

import "math/rand"

// HeuristicProvider is the instant filler opponent: biased random choices,
// no waiting. Upgrades are preferred over new outposts.
type HeuristicProvider struct {
	r *rand.Rand
}

func NewHeuristicProvider(r *rand.Rand) *HeuristicProvider {
	return &HeuristicProvider{r: r}
}

func (h *HeuristicProvider) DecideBuy(p *Player, sq *Square, _ *State) bool {
	if sq.Price == 0 || p.Money < sq.Price {
		return false
	}
	return h.r.Float64() > 0.3
}

func (h *HeuristicProvider) DecideBuild(p *Player, buildable, upgradeable []int, st *State) *BuildDecision {
	if h.r.Float64() > 0.5 {
		return nil
	}
	for _, idx := range upgradeable {
		if p.Money >= st.Board[idx].FortressCost {
			return &BuildDecision{SquareIndex: idx, Action: ActionUpgrade}
		}
	}
	for _, idx := range buildable {
		if p.Money >= st.Board[idx].OutpostCost {
			return &BuildDecision{SquareIndex: idx, Action: ActionBuild}
		}
	}
	return nil
}

func (h *HeuristicProvider) DecidePotEscape(p *Player, _ *State) PotChoice {
	if p.EscapeCards > 0 && h.r.Float64() > 0.5 {
		return PotUseCard
	}
	if p.Money >= 50 && h.r.Float64() > 0.5 {
		return PotPay
	}
	return PotRoll
}
