package http

// CreateRoomRequest represents the payload for POST /rooms.
type CreateRoomRequest struct {
	Name      string `json:"name"`
	Speed     string `json:"speed"`
	TurnLimit int    `json:"turn_limit"`
}

// JoinRoomRequest represents the payload for joining an existing room.
type JoinRoomRequest struct {
	PlayerName string `json:"player_name"`
}

// AddBotsRequest represents the payload for filling seats with bots.
type AddBotsRequest struct {
	Bots int `json:"bots"`
}

// SetSpeedRequest represents a live speed change.
type SetSpeedRequest struct {
	Speed string `json:"speed"`
}

// DecisionRequest is an agent's answer to its pending decision. Kind selects
// which of the optional fields apply.
type DecisionRequest struct {
	Token string `json:"token"`
	Kind  string `json:"kind"`

	// buy
	Accept bool `json:"accept"`

	// build; Skip true means pass on building this turn
	Skip        bool   `json:"skip"`
	SquareIndex int    `json:"square_index"`
	Action      string `json:"action"`

	// pot_escape
	Choice string `json:"choice"`
}
