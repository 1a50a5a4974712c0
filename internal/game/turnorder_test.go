package game

import "testing"

func TestDetermineTurnOrderIsPermutation(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	order, rolls := DetermineTurnOrder(ids, NewRoller(3))

	if len(order) != len(ids) {
		t.Fatalf("order has %d entries, want %d", len(order), len(ids))
	}
	seen := map[string]bool{}
	for _, id := range order {
		if seen[id] {
			t.Fatalf("player %s appears twice", id)
		}
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Fatalf("player %s missing from order", id)
		}
		if rolls[id] < 1 || rolls[id] > 6 {
			t.Fatalf("roll for %s out of range: %d", id, rolls[id])
		}
	}
}

func TestDetermineTurnOrderHigherRollGoesFirst(t *testing.T) {
	// Seed whose first two single-die rolls differ, so no tie-break kicks in
	seed := seedWhere(func(ro *Roller) bool {
		return ro.RollOne() != ro.RollOne()
	})

	preview := NewRoller(seed)
	r1, r2 := preview.RollOne(), preview.RollOne()

	order, rolls := DetermineTurnOrder([]string{"a", "b"}, NewRoller(seed))
	if rolls["a"] != r1 || rolls["b"] != r2 {
		t.Fatalf("rolls %v, want %d/%d from the same seed", rolls, r1, r2)
	}
	want := "a"
	if r2 > r1 {
		want = "b"
	}
	if order[0] != want {
		t.Fatalf("order %v, want %s first with rolls %v", order, want, rolls)
	}
}

func TestDetermineTurnOrderResolvesTies(t *testing.T) {
	// Seed whose first two single-die rolls tie, forcing a re-roll round
	seed := seedWhere(func(ro *Roller) bool {
		return ro.RollOne() == ro.RollOne()
	})

	order, _ := DetermineTurnOrder([]string{"a", "b"}, NewRoller(seed))
	if len(order) != 2 || order[0] == order[1] {
		t.Fatalf("tie not resolved into a strict order: %v", order)
	}
}

func TestDetermineTurnOrderSinglePlayer(t *testing.T) {
	order, _ := DetermineTurnOrder([]string{"solo"}, NewRoller(1))
	if len(order) != 1 || order[0] != "solo" {
		t.Fatalf("order = %v", order)
	}
}
