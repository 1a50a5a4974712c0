package game

// ResolveBankruptcy tries to raise debtAmount for the player by liquidating
// in strict order: sell every building, then mortgage every square. If that
// still does not cover the debt the player goes bankrupt and all assets move
// to the creditor, or back to the bank when creditorID is empty.
// Returns true when the player went bankrupt.
func ResolveBankruptcy(p *Player, debtAmount int, creditorID string, st *State) bool {
	if p.Money >= debtAmount {
		return false
	}

	sellAllBuildings(p, st.Board)
	if p.Money >= debtAmount {
		return false
	}

	mortgageAll(p, st.Board)
	if p.Money >= debtAmount {
		return false
	}

	p.Bankrupt = true

	if creditorID != "" {
		if creditor := st.FindPlayer(creditorID); creditor != nil {
			transferAssets(p, creditor, st.Board)
			return true
		}
	}
	returnAssetsToBank(p, st.Board)
	return true
}

// NetWorth values a player for standings: cash, mortgage value or full price
// per square, and half the marginal cost per building held.
func NetWorth(p *Player, board []*Square) int {
	worth := p.Money
	for _, idx := range p.Properties {
		sq := board[idx]
		if sq.Mortgaged {
			worth += sq.MortgageValue
		} else {
			worth += sq.Price
		}
		if sq.Fortress {
			worth += sq.FortressCost / 2
		}
		worth += (sq.OutpostCost / 2) * sq.Outposts
	}
	return worth
}

func sellAllBuildings(p *Player, board []*Square) {
	// A fortress sells in one step without restoring outposts, so repeat
	// until nothing is left to sell.
	for {
		sold := false
		for _, idx := range p.Properties {
			if HasBuildings(board[idx]) {
				SellBuilding(idx, board, p)
				sold = true
			}
		}
		if !sold {
			return
		}
	}
}

func mortgageAll(p *Player, board []*Square) {
	for _, idx := range p.Properties {
		sq := board[idx]
		if !sq.Mortgaged && sq.MortgageValue > 0 {
			sq.Mortgaged = true
			p.Money += sq.MortgageValue
		}
	}
}

func transferAssets(debtor, creditor *Player, board []*Square) {
	creditor.Money += debtor.Money
	debtor.Money = 0

	creditor.EscapeCards += debtor.EscapeCards
	debtor.EscapeCards = 0

	// Squares keep their mortgage flags across the transfer
	for _, idx := range debtor.Properties {
		board[idx].Owner = creditor.ID
		creditor.Properties = append(creditor.Properties, idx)
	}
	debtor.Properties = nil
}

func returnAssetsToBank(debtor *Player, board []*Square) {
	debtor.Money = 0
	debtor.EscapeCards = 0

	for _, idx := range debtor.Properties {
		sq := board[idx]
		sq.Owner = ""
		sq.Mortgaged = false
		sq.Outposts = 0
		sq.Fortress = false
	}
	debtor.Properties = nil
}
