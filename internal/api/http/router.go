package http

import (
	"reefopoly/internal/api/ws"
	"reefopoly/internal/config"
	"reefopoly/internal/room"

	"github.com/gin-gonic/gin"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket for spectator live updates
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/rooms", CreateRoomHandler(rm))
	r.GET("/rooms", ListRoomsHandler(rm))
	r.GET("/rooms/:code", GetRoomHandler(rm))
	r.POST("/rooms/:code/join", JoinRoomHandler(rm))
	r.POST("/rooms/:code/bots", AddBotsHandler(rm))
	r.POST("/rooms/:code/start", StartHandler(rm))
	r.POST("/rooms/:code/pause", PauseHandler(rm))
	r.POST("/rooms/:code/resume", ResumeHandler(rm))
	r.POST("/rooms/:code/speed", SetSpeedHandler(rm))
	r.GET("/rooms/:code/standings", StandingsHandler(rm))
	r.GET("/rooms/:code/events", EventsHandler(rm))

	// --- AGENT ENDPOINTS ---
	r.GET("/agent/state", AgentStateHandler(rm, cfg))
	r.POST("/agent/decision", AgentDecisionHandler(rm))

	return r
}
