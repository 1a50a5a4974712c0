package game

// CalculateRent computes the rent owed for landing on a square. Pure: it
// never mutates the square or board. diceTotal only matters for utilities.
func CalculateRent(sq *Square, board []*Square, diceTotal int) int {
	if sq.Mortgaged || sq.Owner == "" {
		return 0
	}

	switch sq.Type {
	case SquareProperty:
		return propertyRent(sq, board)
	case SquareCurrent:
		return currentRent(sq, board)
	case SquareUtility:
		return utilityRent(sq, board, diceTotal)
	default:
		return 0
	}
}

func propertyRent(sq *Square, board []*Square) int {
	if sq.Fortress {
		return sq.Rent[5]
	}
	if sq.Outposts > 0 {
		return sq.Rent[sq.Outposts]
	}
	if OwnsFullColorGroup(sq, board) {
		return sq.Rent[0] * 2
	}
	return sq.Rent[0]
}

func currentRent(sq *Square, board []*Square) int {
	count := CountCurrentsOwned(sq.Owner, board)
	if count == 0 {
		// Inconsistent ownership state; charge nothing
		return 0
	}
	return sq.Rent[count-1]
}

func utilityRent(sq *Square, board []*Square, diceTotal int) int {
	switch CountUtilitiesOwned(sq.Owner, board) {
	case 1:
		return diceTotal * 4
	case 2:
		return diceTotal * 10
	}
	return 0
}

// OwnsFullColorGroup reports whether the square's owner holds every property
// in the square's color group.
func OwnsFullColorGroup(sq *Square, board []*Square) bool {
	if sq.ColorGroup == "" || sq.Owner == "" {
		return false
	}
	for _, s := range board {
		if s.Type == SquareProperty && s.ColorGroup == sq.ColorGroup && s.Owner != sq.Owner {
			return false
		}
	}
	return true
}

func CountCurrentsOwned(ownerID string, board []*Square) int {
	n := 0
	for _, pos := range CurrentPositions {
		if board[pos].Owner == ownerID {
			n++
		}
	}
	return n
}

func CountUtilitiesOwned(ownerID string, board []*Square) int {
	n := 0
	for _, pos := range UtilityPositions {
		if board[pos].Owner == ownerID {
			n++
		}
	}
	return n
}
