package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"reefopoly/internal/config"
	"reefopoly/internal/game"
	"reefopoly/internal/room"

	"github.com/gin-gonic/gin"
)

// @Summary Create new room
// @Description Create a new match room in the waiting phase
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest true "Room settings"
// @Success 200 {object} map[string]interface{}
// @Router /rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		rx, err := rm.CreateRoom(req.Name, req.Speed, req.TurnLimit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"roomCode": rx.Code, "room": rx.View()})
	}
}

// @Summary List rooms
// @Tags Room
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		views := make([]room.View, 0)
		for _, rx := range rm.List() {
			views = append(views, rx.View())
		}
		c.JSON(http.StatusOK, gin.H{"rooms": views})
	}
}

// @Summary Get a room
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rx, ok := rm.Get(c.Param("code"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": rx.View()})
	}
}

// @Summary Join a room as a remote agent
// @Description Seats an agent and returns the token it authenticates with
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.JoinRoomRequest true "Agent info"
// @Success 200 {object} room.JoinResult
// @Router /rooms/{code}/join [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_name required"})
			return
		}
		res, err := rm.JoinRoom(c.Param("code"), req.PlayerName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary Add bots to a room
// @Description Fill empty seats with heuristic opponents (default 1)
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.AddBotsRequest true "Bot count"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/bots [post]
func AddBotsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddBotsRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Bots <= 0 {
			req.Bots = 1
		}
		code := c.Param("code")
		if err := rm.AddBots(code, req.Bots); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rx, _ := rm.Get(code)
		c.JSON(http.StatusOK, gin.H{"room": rx.View()})
	}
}

// @Summary Start the match
// @Description Resolves turn order and launches the turn loop
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/start [post]
func StartHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		if err := rm.Start(code); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rx, _ := rm.Get(code)
		c.JSON(http.StatusOK, gin.H{"room": rx.View()})
	}
}

// @Summary Pause the match
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/pause [post]
func PauseHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rm.Pause(c.Param("code")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"paused": true})
	}
}

// @Summary Resume the match
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/resume [post]
func ResumeHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rm.Resume(c.Param("code")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"paused": false})
	}
}

// @Summary Change the match speed
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.SetSpeedRequest true "Speed"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/speed [post]
func SetSpeedHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetSpeedRequest
		if err := c.BindJSON(&req); err != nil || req.Speed == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "speed required"})
			return
		}
		if err := rm.SetSpeed(c.Param("code"), req.Speed); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"speed": req.Speed})
	}
}

// @Summary Get the current standings
// @Description Net-worth ranking of all players, bankrupt seats included
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/standings [get]
func StandingsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := rm.Standings(c.Param("code"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"standings": rows})
	}
}

// @Summary Get the room event log
// @Description Ordered events from the given sequence number on
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Param since query int false "Sequence number to resume from"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/events [get]
func EventsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		since := 0
		if s := c.Query("since"); s != "" {
			var err error
			since, err = strconv.Atoi(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "since must be an integer"})
				return
			}
		}
		events, ok := rm.RoomEvents(c.Param("code"), since)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// @Summary Poll agent state
// @Description Returns the game state plus the agent's pending decision, if
// any. With wait=1 the call long-polls until a decision arrives or the
// window closes.
// @Tags Agent
// @Produce json
// @Param token query string true "Agent Token"
// @Param wait query int false "Long-poll (1 to enable)"
// @Success 200 {object} map[string]interface{}
// @Router /agent/state [get]
func AgentStateHandler(rm *room.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := rm.SessionByToken(c.Query("token"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown token"})
			return
		}
		rx, ok := rm.Get(sess.RoomCode)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}

		pending := sess.Provider.Pending()
		if pending == nil && c.Query("wait") == "1" {
			sess.Wait(cfg.LongPollWindow)
			pending = sess.Provider.Pending()
		}

		resp := gin.H{
			"playerId": sess.PlayerID,
			"state":    rx.StateView(),
		}
		if pending != nil {
			resp["pending"] = pending
			resp["deadline_ms"] = time.Until(pending.Deadline).Milliseconds()
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary Answer a pending decision
// @Description Resolves the agent's in-flight decision. Answers for a stale
// or mismatched decision are rejected with 409.
// @Tags Agent
// @Accept json
// @Produce json
// @Param request body http.DecisionRequest true "Decision"
// @Success 200 {object} map[string]interface{}
// @Router /agent/decision [post]
func AgentDecisionHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DecisionRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		sess, ok := rm.SessionByToken(req.Token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown token"})
			return
		}

		var err error
		switch game.DecisionKind(req.Kind) {
		case game.DecisionBuy:
			err = sess.Provider.ResolveBuy(req.Accept)
		case game.DecisionBuild:
			if req.Skip {
				err = sess.Provider.ResolveBuild(nil)
			} else {
				err = sess.Provider.ResolveBuild(&game.BuildDecision{
					SquareIndex: req.SquareIndex,
					Action:      game.BuildAction(req.Action),
				})
			}
		case game.DecisionPot:
			err = sess.Provider.ResolvePotEscape(game.PotChoice(req.Choice))
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown decision kind"})
			return
		}

		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"accepted": true})
		case errors.Is(err, game.ErrNoPending),
			errors.Is(err, game.ErrWrongKind),
			errors.Is(err, game.ErrIllegalTarget):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
	}
}
