package game

// NewBoard returns a fresh 40-square board with all ownership state cleared.
func NewBoard() []*Square {
	board := make([]*Square, len(boardData))
	for i := range boardData {
		sq := boardData[i]
		board[i] = &sq
	}
	return board
}

var boardData = [BoardSize]Square{
	// Bottom row: 0-10
	{Index: 0, Name: "Set Sail", Type: SquareSpecial},
	{Index: 1, Name: "Tidal Pool Flats", Type: SquareProperty, ColorGroup: "Sandy Shore", Price: 60, Rent: []int{2, 10, 30, 90, 160, 250}, OutpostCost: 100, FortressCost: 500, MortgageValue: 30},
	{Index: 2, Name: "Treasure Chest", Type: SquareTreasureChest},
	{Index: 3, Name: "Mangrove Shallows", Type: SquareProperty, ColorGroup: "Sandy Shore", Price: 60, Rent: []int{4, 20, 60, 180, 320, 450}, OutpostCost: 100, FortressCost: 500, MortgageValue: 30},
	{Index: 4, Name: "Fishing Tax", Type: SquareTax},
	{Index: 5, Name: "Poseidon's Current", Type: SquareCurrent, Price: 200, Rent: []int{25, 50, 100, 200}, MortgageValue: 100},
	{Index: 6, Name: "Ningaloo Reef", Type: SquareProperty, ColorGroup: "Coastal Waters", Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, OutpostCost: 100, FortressCost: 500, MortgageValue: 50},
	{Index: 7, Name: "Tide Card", Type: SquareTideCard},
	{Index: 8, Name: "Red Sea Reef", Type: SquareProperty, ColorGroup: "Coastal Waters", Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, OutpostCost: 100, FortressCost: 500, MortgageValue: 50},
	{Index: 9, Name: "Belize Barrier Reef", Type: SquareProperty, ColorGroup: "Coastal Waters", Price: 120, Rent: []int{8, 40, 100, 300, 450, 600}, OutpostCost: 100, FortressCost: 500, MortgageValue: 60},
	{Index: 10, Name: "Lobster Pot / Just Visiting", Type: SquareSpecial},

	// Left column: 11-20
	{Index: 11, Name: "Raja Ampat Gardens", Type: SquareProperty, ColorGroup: "Coral Gardens", Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, OutpostCost: 150, FortressCost: 750, MortgageValue: 70},
	{Index: 12, Name: "Electric Eel Power", Type: SquareUtility, Price: 150, MortgageValue: 75},
	{Index: 13, Name: "Coral Triangle", Type: SquareProperty, ColorGroup: "Coral Gardens", Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, OutpostCost: 150, FortressCost: 750, MortgageValue: 70},
	{Index: 14, Name: "Tubbataha Reef", Type: SquareProperty, ColorGroup: "Coral Gardens", Price: 160, Rent: []int{12, 60, 180, 500, 700, 900}, OutpostCost: 150, FortressCost: 750, MortgageValue: 80},
	{Index: 15, Name: "Maelstrom Express", Type: SquareCurrent, Price: 200, Rent: []int{25, 50, 100, 200}, MortgageValue: 100},
	{Index: 16, Name: "Maldives Atolls", Type: SquareProperty, ColorGroup: "Tropical Seas", Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, OutpostCost: 150, FortressCost: 750, MortgageValue: 90},
	{Index: 17, Name: "Treasure Chest", Type: SquareTreasureChest},
	{Index: 18, Name: "Seychelles Bank", Type: SquareProperty, ColorGroup: "Tropical Seas", Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, OutpostCost: 150, FortressCost: 750, MortgageValue: 90},
	{Index: 19, Name: "Galapagos Reserve", Type: SquareProperty, ColorGroup: "Tropical Seas", Price: 200, Rent: []int{16, 80, 220, 600, 800, 1000}, OutpostCost: 150, FortressCost: 750, MortgageValue: 100},
	{Index: 20, Name: "Anchor Bay", Type: SquareSpecial},

	// Top row: 21-30
	{Index: 21, Name: "Hydrothermal Vents", Type: SquareProperty, ColorGroup: "Volcanic Depths", Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, OutpostCost: 200, FortressCost: 1000, MortgageValue: 110},
	{Index: 22, Name: "Tide Card", Type: SquareTideCard},
	{Index: 23, Name: "Volcanic Abyss", Type: SquareProperty, ColorGroup: "Volcanic Depths", Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, OutpostCost: 200, FortressCost: 1000, MortgageValue: 110},
	{Index: 24, Name: "Dragon Eel Caverns", Type: SquareProperty, ColorGroup: "Volcanic Depths", Price: 240, Rent: []int{20, 100, 300, 750, 925, 1100}, OutpostCost: 200, FortressCost: 1000, MortgageValue: 120},
	{Index: 25, Name: "Charybdis Passage", Type: SquareCurrent, Price: 200, Rent: []int{25, 50, 100, 200}, MortgageValue: 100},
	{Index: 26, Name: "Sargasso Sea", Type: SquareProperty, ColorGroup: "Sunlit Expanse", Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, OutpostCost: 200, FortressCost: 1000, MortgageValue: 130},
	{Index: 27, Name: "Palau Sanctuary", Type: SquareProperty, ColorGroup: "Sunlit Expanse", Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, OutpostCost: 200, FortressCost: 1000, MortgageValue: 130},
	{Index: 28, Name: "Tidal Generator", Type: SquareUtility, Price: 150, MortgageValue: 75},
	{Index: 29, Name: "Chagos Archipelago", Type: SquareProperty, ColorGroup: "Sunlit Expanse", Price: 280, Rent: []int{24, 120, 360, 850, 1025, 1200}, OutpostCost: 200, FortressCost: 1000, MortgageValue: 140},
	{Index: 30, Name: "Caught in the Net!", Type: SquareSpecial},

	// Right column: 31-39
	{Index: 31, Name: "Abyssal Kraken's Lair", Type: SquareProperty, ColorGroup: "The Deep", Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, OutpostCost: 300, FortressCost: 1500, MortgageValue: 150},
	{Index: 32, Name: "Serpent's Trench", Type: SquareProperty, ColorGroup: "The Deep", Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, OutpostCost: 300, FortressCost: 1500, MortgageValue: 150},
	{Index: 33, Name: "Treasure Chest", Type: SquareTreasureChest},
	{Index: 34, Name: "The Sunken Citadel", Type: SquareProperty, ColorGroup: "The Deep", Price: 320, Rent: []int{28, 150, 450, 1000, 1200, 1400}, OutpostCost: 300, FortressCost: 1500, MortgageValue: 160},
	{Index: 35, Name: "Abyssal Drift", Type: SquareCurrent, Price: 200, Rent: []int{25, 50, 100, 200}, MortgageValue: 100},
	{Index: 36, Name: "Tide Card", Type: SquareTideCard},
	{Index: 37, Name: "Leviathan's Throne", Type: SquareProperty, ColorGroup: "Emperor's Realm", Price: 350, Rent: []int{35, 175, 500, 1100, 1300, 1500}, OutpostCost: 300, FortressCost: 1500, MortgageValue: 175},
	{Index: 38, Name: "Pearl Tax", Type: SquareTax},
	{Index: 39, Name: "Claw Emperor's Domain", Type: SquareProperty, ColorGroup: "Emperor's Realm", Price: 400, Rent: []int{50, 200, 600, 1400, 1700, 2000}, OutpostCost: 300, FortressCost: 1500, MortgageValue: 200},
}
