package game

// CanBuild reports whether playerID may add an outpost on squareIndex.
// Building requires sole ownership of the full color group, no mortgage
// anywhere in the group, and lockstep progress: a square may not get ahead of
// the least-built sibling in its group.
func CanBuild(squareIndex int, board []*Square, playerID string) bool {
	sq := board[squareIndex]
	if sq.Type != SquareProperty || sq.Owner != playerID {
		return false
	}
	if sq.Mortgaged || sq.Fortress || sq.Outposts >= MaxOutposts || sq.OutpostCost == 0 {
		return false
	}
	if !ownsEntireGroup(sq, board, playerID) {
		return false
	}

	minOutposts := MaxOutposts
	for _, s := range groupSquares(sq, board) {
		if s.Mortgaged {
			return false
		}
		if s.Outposts < minOutposts {
			minOutposts = s.Outposts
		}
	}
	return sq.Outposts <= minOutposts
}

// CanUpgrade reports whether playerID may replace 4 outposts with a fortress.
// Every sibling must already hold 4 outposts or a fortress of its own.
func CanUpgrade(squareIndex int, board []*Square, playerID string) bool {
	sq := board[squareIndex]
	if sq.Type != SquareProperty || sq.Owner != playerID {
		return false
	}
	if sq.Mortgaged || sq.Fortress || sq.Outposts != MaxOutposts || sq.FortressCost == 0 {
		return false
	}
	if !ownsEntireGroup(sq, board, playerID) {
		return false
	}
	for _, s := range groupSquares(sq, board) {
		if s.Index == squareIndex {
			continue
		}
		if s.Outposts != MaxOutposts && !s.Fortress {
			return false
		}
	}
	return true
}

func CanBuildWithMoney(squareIndex int, board []*Square, p *Player) bool {
	return CanBuild(squareIndex, board, p.ID) && p.Money >= board[squareIndex].OutpostCost
}

func CanUpgradeWithMoney(squareIndex int, board []*Square, p *Player) bool {
	return CanUpgrade(squareIndex, board, p.ID) && p.Money >= board[squareIndex].FortressCost
}

// BuildableSquares lists every square index playerID could build on now.
func BuildableSquares(board []*Square, playerID string) []int {
	var out []int
	for _, s := range board {
		if s.Type == SquareProperty && CanBuild(s.Index, board, playerID) {
			out = append(out, s.Index)
		}
	}
	return out
}

// UpgradeableSquares lists every square index playerID could upgrade now.
func UpgradeableSquares(board []*Square, playerID string) []int {
	var out []int
	for _, s := range board {
		if s.Type == SquareProperty && CanUpgrade(s.Index, board, playerID) {
			out = append(out, s.Index)
		}
	}
	return out
}

func Build(squareIndex int, board []*Square, p *Player) {
	sq := board[squareIndex]
	sq.Outposts++
	p.Money -= sq.OutpostCost
}

func Upgrade(squareIndex int, board []*Square, p *Player) {
	sq := board[squareIndex]
	sq.Outposts = 0
	sq.Fortress = true
	p.Money -= sq.FortressCost
}

// SellBuilding removes one building from the square and refunds half its
// cost. Selling a fortress does NOT restore the 4 outposts it replaced.
func SellBuilding(squareIndex int, board []*Square, p *Player) int {
	sq := board[squareIndex]
	refund := BuildingSellValue(sq)

	switch {
	case sq.Fortress:
		sq.Fortress = false
	case sq.Outposts > 0:
		sq.Outposts--
	default:
		return 0
	}

	p.Money += refund
	return refund
}

// BuildingSellValue is the refund for selling the square's next building.
func BuildingSellValue(sq *Square) int {
	if sq.Fortress && sq.FortressCost > 0 {
		return sq.FortressCost / 2
	}
	if sq.Outposts > 0 && sq.OutpostCost > 0 {
		return sq.OutpostCost / 2
	}
	return 0
}

func HasBuildings(sq *Square) bool {
	return sq.Outposts > 0 || sq.Fortress
}

func ownsEntireGroup(sq *Square, board []*Square, playerID string) bool {
	if sq.ColorGroup == "" {
		return false
	}
	for _, s := range groupSquares(sq, board) {
		if s.Owner != playerID {
			return false
		}
	}
	return true
}

func groupSquares(sq *Square, board []*Square) []*Square {
	var out []*Square
	for _, s := range board {
		if s.Type == SquareProperty && s.ColorGroup == sq.ColorGroup {
			out = append(out, s)
		}
	}
	return out
}
