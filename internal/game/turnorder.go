package game

import "sort"

// DetermineTurnOrder rolls one die per player and ranks them descending.
// Tie groups are re-rolled recursively until the ranking is strict; a re-roll
// only ever reorders the tied players themselves.
func DetermineTurnOrder(playerIDs []string, roller *Roller) ([]string, map[string]int) {
	rolls := make(map[string]int, len(playerIDs))
	for _, id := range playerIDs {
		rolls[id] = roller.RollOne()
	}
	return resolveOrder(playerIDs, rolls, roller), rolls
}

func resolveOrder(ids []string, rolls map[string]int, roller *Roller) []string {
	if len(ids) <= 1 {
		return append([]string(nil), ids...)
	}

	groups := make(map[int][]string)
	for _, id := range ids {
		groups[rolls[id]] = append(groups[rolls[id]], id)
	}

	values := make([]int, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	var order []string
	for _, v := range values {
		group := groups[v]
		if len(group) == 1 {
			order = append(order, group[0])
			continue
		}
		tieRolls := make(map[string]int, len(group))
		for _, id := range group {
			tieRolls[id] = roller.RollOne()
			rolls[id] = tieRolls[id]
		}
		order = append(order, resolveOrder(group, tieRolls, roller)...)
	}
	return order
}
