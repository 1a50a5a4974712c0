package game

// CardResult is the structured effect of a drawn card. The engine applies it;
// executing a card never touches game state directly except for the fresh
// utility-rent roll baked into ForcedDiceTotal.
type CardResult struct {
	MovedTo         int // -1 when the card causes no movement
	PassedStart     bool
	MoneyDelta      int
	GotoPot         bool
	EscapeCard      bool
	RentMultiplier  int
	ForcedDiceTotal int
	PayEach         int
	CollectFromEach int
}

// ExecuteCard maps a card to its effect for the given player.
func ExecuteCard(card *Card, p *Player, st *State, roller *Roller) CardResult {
	res := CardResult{MovedTo: -1, RentMultiplier: 1}

	switch card.Action {
	case CardMoveTo:
		// Plain relocation never awards the pass-start bonus
		res.MovedTo = card.Position

	case CardMoveToCollect:
		res.MovedTo = card.Position
		res.PassedStart = card.Position <= p.Position && card.Position != p.Position

	case CardMoveBack:
		res.MovedTo = (p.Position - card.Spaces + BoardSize) % BoardSize

	case CardNearestCurrent:
		nearest := findNearest(p.Position, CurrentPositions)
		res.MovedTo = nearest
		res.PassedStart = nearest < p.Position
		res.RentMultiplier = card.Multiplier

	case CardNearestUtility:
		nearest := findNearest(p.Position, UtilityPositions)
		res.MovedTo = nearest
		res.PassedStart = nearest < p.Position
		res.RentMultiplier = card.Multiplier
		// Utility rent from this card uses its own roll, not the live one
		res.ForcedDiceTotal = roller.Roll().Total

	case CardCollect:
		res.MoneyDelta = card.Amount

	case CardPay:
		res.MoneyDelta = -card.Amount

	case CardPayPerBuilding:
		outposts, fortresses := 0, 0
		for _, sq := range st.Board {
			if sq.Owner == p.ID {
				outposts += sq.Outposts
				if sq.Fortress {
					fortresses++
				}
			}
		}
		res.MoneyDelta = -(outposts*card.PerOutpost + fortresses*card.PerFortress)

	case CardCollectFromAll:
		res.CollectFromEach = card.Amount

	case CardPayEach:
		res.PayEach = card.Amount

	case CardEscapePot:
		res.EscapeCard = true

	case CardGoToPot:
		res.GotoPot = true
	}

	return res
}

// findNearest returns the first target reached moving forward around the ring.
func findNearest(pos int, targets []int) int {
	minDist := BoardSize + 1
	nearest := targets[0]
	for _, t := range targets {
		dist := (t - pos + BoardSize) % BoardSize
		if dist > 0 && dist < minDist {
			minDist = dist
			nearest = t
		}
	}
	return nearest
}
