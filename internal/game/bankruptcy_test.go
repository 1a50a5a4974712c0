package game

import "testing"

func TestResolveBankruptcySolventNoop(t *testing.T) {
	st := testState(2)
	p := st.Players[0]
	p.Money = 500

	if ResolveBankruptcy(p, 300, "", st) {
		t.Fatal("solvent player went bankrupt")
	}
	if p.Money != 500 {
		t.Fatalf("money changed to %d without liquidation", p.Money)
	}
}

func TestResolveBankruptcyLiquidatesBuildingsFirst(t *testing.T) {
	st := testState(2)
	p := st.Players[0]
	ownGroup(st, p, "Sandy Shore")
	st.Board[1].Outposts = 2 // sells for 2 x 50
	p.Money = 10

	if ResolveBankruptcy(p, 100, "", st) {
		t.Fatal("player went bankrupt despite sellable buildings")
	}
	if st.Board[1].Outposts != 0 {
		t.Fatalf("outposts = %d after liquidation", st.Board[1].Outposts)
	}
	if p.Money != 110 {
		t.Fatalf("money = %d after selling buildings, want 110", p.Money)
	}
	if st.Board[1].Mortgaged || st.Board[3].Mortgaged {
		t.Fatal("mortgaged squares even though building sales covered the debt")
	}
}

func TestResolveBankruptcyMortgagesAfterBuildings(t *testing.T) {
	st := testState(2)
	p := st.Players[0]
	ownGroup(st, p, "Sandy Shore") // mortgage value 30 each
	p.Money = 0

	if ResolveBankruptcy(p, 50, "", st) {
		t.Fatal("player went bankrupt despite mortgageable squares")
	}
	if !st.Board[1].Mortgaged || !st.Board[3].Mortgaged {
		t.Fatal("squares not mortgaged during liquidation")
	}
	if p.Money != 60 {
		t.Fatalf("money = %d after mortgaging, want 60", p.Money)
	}
}

func TestBankruptcyTransfersAssetsToCreditor(t *testing.T) {
	st := testState(2)
	debtor, creditor := st.Players[0], st.Players[1]
	ownGroup(st, debtor, "Sandy Shore")
	debtor.Money = 0
	debtor.EscapeCards = 1
	creditorBefore := creditor.Money

	if !ResolveBankruptcy(debtor, 5000, creditor.ID, st) {
		t.Fatal("expected bankruptcy")
	}
	if !debtor.Bankrupt {
		t.Fatal("debtor not flagged bankrupt")
	}
	if debtor.Money != 0 || len(debtor.Properties) != 0 || debtor.EscapeCards != 0 {
		t.Fatalf("debtor kept assets: %+v", debtor)
	}
	// Liquidation mortgaged both squares for 30 each before the transfer
	if creditor.Money != creditorBefore+60 {
		t.Fatalf("creditor money = %d, want %d", creditor.Money, creditorBefore+60)
	}
	if creditor.EscapeCards != 1 {
		t.Fatalf("creditor escape cards = %d, want 1", creditor.EscapeCards)
	}
	for _, idx := range []int{1, 3} {
		if st.Board[idx].Owner != creditor.ID {
			t.Fatalf("square %d owner = %q, want creditor", idx, st.Board[idx].Owner)
		}
		if !st.Board[idx].Mortgaged {
			t.Fatalf("square %d lost its mortgage flag in transfer", idx)
		}
	}
}

func TestBankruptcyToBankResetsSquares(t *testing.T) {
	st := testState(2)
	debtor := st.Players[0]
	ownGroup(st, debtor, "Sandy Shore")
	st.Board[1].Outposts = 1
	debtor.Money = 0

	if !ResolveBankruptcy(debtor, 5000, "", st) {
		t.Fatal("expected bankruptcy")
	}
	for _, idx := range []int{1, 3} {
		sq := st.Board[idx]
		if sq.Owner != "" || sq.Mortgaged || sq.Outposts != 0 || sq.Fortress {
			t.Fatalf("square %d not reset: %+v", idx, sq)
		}
	}
}

func TestNetWorthValuation(t *testing.T) {
	st := testState(1)
	p := st.Players[0]
	p.Money = 100
	ownGroup(st, p, "Sandy Shore") // price 60 each
	st.Board[1].Outposts = 2       // outpost cost 100, half is 50 each
	st.Board[3].Mortgaged = true   // counts at mortgage value 30

	want := 100 + 60 + 2*50 + 30
	if got := NetWorth(p, st.Board); got != want {
		t.Fatalf("net worth = %d, want %d", got, want)
	}
}
