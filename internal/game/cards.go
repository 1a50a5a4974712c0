package game

import "math/rand"

// NewTideDeck returns a shuffled copy of the tide deck.
func NewTideDeck(r *rand.Rand) []*Card {
	return shuffleDeck(tideCards, r)
}

// NewChestDeck returns a shuffled copy of the treasure chest deck.
func NewChestDeck(r *rand.Rand) []*Card {
	return shuffleDeck(chestCards, r)
}

func shuffleDeck(src []Card, r *rand.Rand) []*Card {
	deck := make([]*Card, len(src))
	for i := range src {
		c := src[i]
		deck[i] = &c
	}
	r.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

var tideCards = []Card{
	{ID: 1, Deck: "tide", Text: "A strong current carries you to Claw Emperor's Domain!", Action: CardMoveTo, Position: 39},
	{ID: 2, Deck: "tide", Text: "Favorable winds! Sail to Set Sail (collect 200 Shells)", Action: CardMoveToCollect, Position: 0},
	{ID: 3, Deck: "tide", Text: "A sea turtle guides you to Dragon Eel Caverns. If you pass Set Sail, collect 200 Shells", Action: CardMoveToCollect, Position: 24},
	{ID: 4, Deck: "tide", Text: "Follow the bioluminescent trail to Raja Ampat Gardens. If you pass Set Sail, collect 200 Shells", Action: CardMoveToCollect, Position: 11},
	{ID: 5, Deck: "tide", Text: "Drift to the nearest Current. Pay owner twice the toll", Action: CardNearestCurrent, Multiplier: 2},
	{ID: 6, Deck: "tide", Text: "Drift to the nearest Current. Pay owner twice the toll", Action: CardNearestCurrent, Multiplier: 2},
	{ID: 7, Deck: "tide", Text: "Swim to nearest Utility. If unowned, you may claim it. If owned, roll dice and pay owner 10x amount", Action: CardNearestUtility, Multiplier: 10},
	{ID: 8, Deck: "tide", Text: "A merchant ship drops 50 Shells overboard. Collect them!", Action: CardCollect, Amount: 50},
	{ID: 9, Deck: "tide", Text: "Escape the Lobster Pot Free card", Action: CardEscapePot},
	{ID: 10, Deck: "tide", Text: "Undertow pulls you back 3 spaces", Action: CardMoveBack, Spaces: 3},
	{ID: 11, Deck: "tide", Text: "Caught in a fisherman's net! Go directly to Lobster Pot, do not pass Set Sail", Action: CardGoToPot},
	{ID: 12, Deck: "tide", Text: "Reef maintenance required. Pay 25 Shells per Outpost, 100 Shells per Fortress", Action: CardPayPerBuilding, PerOutpost: 25, PerFortress: 100},
	{ID: 13, Deck: "tide", Text: "Speeding through a no-swim zone. Pay 15 Shells", Action: CardPay, Amount: 15},
	{ID: 14, Deck: "tide", Text: "Hitch a ride on Poseidon's Current. If you pass Set Sail, collect 200 Shells", Action: CardMoveToCollect, Position: 5},
	{ID: 15, Deck: "tide", Text: "You've been crowned Tide Master. Pay each player 50 Shells", Action: CardPayEach, Amount: 50},
	{ID: 16, Deck: "tide", Text: "Your pearl farm yields profits. Collect 150 Shells", Action: CardCollect, Amount: 150},
}

var chestCards = []Card{
	{ID: 1, Deck: "treasure_chest", Text: "The current carries you to Set Sail! Collect 200 Shells", Action: CardMoveToCollect, Position: 0},
	{ID: 2, Deck: "treasure_chest", Text: "Sunken treasure found! The reef bank awards you 200 Shells", Action: CardCollect, Amount: 200},
	{ID: 3, Deck: "treasure_chest", Text: "Sea doctor's fee. Pay 50 Shells", Action: CardPay, Amount: 50},
	{ID: 4, Deck: "treasure_chest", Text: "Sold rare seashells at the market. Collect 50 Shells", Action: CardCollect, Amount: 50},
	{ID: 5, Deck: "treasure_chest", Text: "Escape the Lobster Pot Free card", Action: CardEscapePot},
	{ID: 6, Deck: "treasure_chest", Text: "Trapped by a giant clam! Go directly to Lobster Pot, do not pass Set Sail", Action: CardGoToPot},
	{ID: 7, Deck: "treasure_chest", Text: "Migration season bonus. Receive 100 Shells", Action: CardCollect, Amount: 100},
	{ID: 8, Deck: "treasure_chest", Text: "Coral tax refund. Collect 20 Shells", Action: CardCollect, Amount: 20},
	{ID: 9, Deck: "treasure_chest", Text: "It's your hatching day! Collect 10 Shells from every player", Action: CardCollectFromAll, Amount: 10},
	{ID: 10, Deck: "treasure_chest", Text: "Deep sea salvage pays off. Collect 100 Shells", Action: CardCollect, Amount: 100},
	{ID: 11, Deck: "treasure_chest", Text: "Pay the sea witch 100 Shells for healing", Action: CardPay, Amount: 100},
	{ID: 12, Deck: "treasure_chest", Text: "Reef school tuition. Pay 50 Shells", Action: CardPay, Amount: 50},
	{ID: 13, Deck: "treasure_chest", Text: "Navigation consulting fee. Receive 25 Shells", Action: CardCollect, Amount: 25},
	{ID: 14, Deck: "treasure_chest", Text: "Reef repair assessment. 40 Shells per Outpost, 115 Shells per Fortress", Action: CardPayPerBuilding, PerOutpost: 40, PerFortress: 115},
	{ID: 15, Deck: "treasure_chest", Text: "Second place in the Great Reef Race! Collect 10 Shells", Action: CardCollect, Amount: 10},
	{ID: 16, Deck: "treasure_chest", Text: "Ancient treasure inheritance. Collect 100 Shells", Action: CardCollect, Amount: 100},
}
