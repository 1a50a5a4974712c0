package game

import "time"

type SquareType string

const (
	SquareProperty      SquareType = "property"
	SquareCurrent       SquareType = "current"
	SquareUtility       SquareType = "utility"
	SquareTax           SquareType = "tax"
	SquareTideCard      SquareType = "tide_card"
	SquareTreasureChest SquareType = "treasure_chest"
	SquareSpecial       SquareType = "special"
)

// Board positions with fixed roles.
const (
	StartSquare   = 0
	PotSquare     = 10
	CaughtSquare  = 30
	FishingTaxSq  = 4
	PearlTaxSq    = 38
	BoardSize     = 40
	MaxOutposts   = 4
	FishingTaxAmt = 200
	PearlTaxAmt   = 100
)

var (
	CurrentPositions = []int{5, 15, 25, 35}
	UtilityPositions = []int{12, 28}
)

// Square is one board cell. The catalog fields are fixed per match; Owner,
// Outposts, Fortress and Mortgaged are the mutable ownership state.
type Square struct {
	Index         int        `json:"index"`
	Name          string     `json:"name"`
	Type          SquareType `json:"type"`
	ColorGroup    string     `json:"colorGroup,omitempty"`
	Price         int        `json:"price,omitempty"`
	Rent          []int      `json:"rent,omitempty"`
	OutpostCost   int        `json:"outpostCost,omitempty"`
	FortressCost  int        `json:"fortressCost,omitempty"`
	MortgageValue int        `json:"mortgageValue,omitempty"`

	Owner     string `json:"owner,omitempty"`
	Outposts  int    `json:"outposts"`
	Fortress  bool   `json:"fortress"`
	Mortgaged bool   `json:"mortgaged"`
}

type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Token      string `json:"token"`
	Color      string `json:"color"`
	Money      int    `json:"money"`
	Position   int    `json:"position"`
	Properties []int  `json:"properties"`

	InPot       bool `json:"inPot"`
	PotTurns    int  `json:"potTurns"`
	EscapeCards int  `json:"escapeCards"`
	Bankrupt    bool `json:"bankrupt"`
	Connected   bool `json:"connected"`
}

type CardAction string

const (
	CardMoveTo         CardAction = "move_to"
	CardMoveToCollect  CardAction = "move_to_collect"
	CardMoveBack       CardAction = "move_back"
	CardNearestCurrent CardAction = "move_nearest_current"
	CardNearestUtility CardAction = "move_nearest_utility"
	CardCollect        CardAction = "collect"
	CardPay            CardAction = "pay"
	CardPayPerBuilding CardAction = "pay_per_building"
	CardCollectFromAll CardAction = "collect_from_each"
	CardPayEach        CardAction = "pay_each"
	CardEscapePot      CardAction = "escape_pot"
	CardGoToPot        CardAction = "go_to_pot"
)

// Card is an immutable deck entry. Action parameters are flattened; only the
// fields an action reads are set.
type Card struct {
	ID     int        `json:"id"`
	Deck   string     `json:"deck"` // "tide" or "treasure_chest"
	Text   string     `json:"text"`
	Action CardAction `json:"action"`

	Position    int `json:"position,omitempty"`
	Amount      int `json:"amount,omitempty"`
	Spaces      int `json:"spaces,omitempty"`
	Multiplier  int `json:"multiplier,omitempty"`
	PerOutpost  int `json:"perOutpost,omitempty"`
	PerFortress int `json:"perFortress,omitempty"`
}

type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseRollOrder Phase = "roll_order"
	PhasePlaying   Phase = "playing"
	PhasePaused    Phase = "paused"
	PhaseFinished  Phase = "finished"
)

// State is the aggregate for one live match. It is owned by the engine's
// goroutine while the match runs; nothing else mutates it.
type State struct {
	RoomID   string `json:"roomId"`
	RoomCode string `json:"roomCode"`
	RoomName string `json:"roomName"`

	Players            []*Player `json:"players"`
	Board              []*Square `json:"board"`
	CurrentPlayerIndex int       `json:"currentPlayerIndex"`
	TurnNumber         int       `json:"turnNumber"`

	TideCards  []*Card `json:"-"`
	ChestCards []*Card `json:"-"`

	Phase     Phase   `json:"phase"`
	Speed     string  `json:"speed"`
	Winner    *Player `json:"winner,omitempty"`
	TurnLimit int     `json:"turnLimit"`
}

type DiceRoll struct {
	Dice    [2]int `json:"dice"`
	Total   int    `json:"total"`
	Doubles bool   `json:"doubles"`
}

// Event is the externally visible record of what happened. Sequence is a
// per-match monotonic counter; consumers rely on it for total ordering.
type Event struct {
	ID         string                 `json:"id"`
	RoomID     string                 `json:"roomId"`
	Sequence   int                    `json:"sequence"`
	TurnNumber int                    `json:"turnNumber"`
	Type       string                 `json:"type"`
	PlayerID   string                 `json:"playerId,omitempty"`
	Data       map[string]interface{} `json:"data"`
	Timestamp  time.Time              `json:"timestamp"`
}

// Snapshot deep-copies everything the match mutates, so the copy can be
// read or marshaled while the engine goroutine keeps playing. Decks are
// engine-internal and stay behind.
func (s *State) Snapshot() *State {
	cp := &State{
		RoomID:             s.RoomID,
		RoomCode:           s.RoomCode,
		RoomName:           s.RoomName,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		TurnNumber:         s.TurnNumber,
		Phase:              s.Phase,
		Speed:              s.Speed,
		TurnLimit:          s.TurnLimit,
	}

	cp.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		pc := *p
		pc.Properties = append([]int(nil), p.Properties...)
		cp.Players[i] = &pc
		if s.Winner == p {
			cp.Winner = &pc
		}
	}

	cp.Board = make([]*Square, len(s.Board))
	for i, sq := range s.Board {
		sc := *sq
		sc.Rent = append([]int(nil), sq.Rent...)
		cp.Board[i] = &sc
	}
	return cp
}

// FindPlayer returns the player with the given id, or nil.
func (s *State) FindPlayer(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActivePlayers returns all non-bankrupt players in seat order.
func (s *State) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.Bankrupt {
			out = append(out, p)
		}
	}
	return out
}

func (s *State) CurrentPlayer() *Player {
	return s.Players[s.CurrentPlayerIndex]
}
