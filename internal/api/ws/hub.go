package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"reefopoly/internal/game"
)

// RoomSource hands the hub historical events so a late spectator can catch
// up before live broadcasts take over.
type RoomSource interface {
	RoomEvents(roomCode string, sinceSeq int) ([]game.Event, bool)
}

// Hub fans match events out to spectator connections grouped by room code.
// Spectators are read-only; agents act through the HTTP decision endpoints.
// Each connection carries its own write mutex: the relay goroutine and the
// connection's reader goroutine both write frames, and the transport allows
// only one writer at a time.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[*websocket.Conn]*sync.Mutex
	source RoomSource
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]*sync.Mutex),
	}
}

// SetSource wires the room lookup in after construction. Called once at
// startup, before the hub serves connections.
func (h *Hub) SetSource(source RoomSource) {
	h.source = source
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

func writeJSON(conn *websocket.Conn, wmu *sync.Mutex, v interface{}) error {
	wmu.Lock()
	defer wmu.Unlock()
	return conn.WriteJSON(v)
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_code"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	wmu := &sync.Mutex{}
	h.mu.Lock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*websocket.Conn]*sync.Mutex)
	}
	h.rooms[roomCode][conn] = wmu
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.rooms[roomCode], conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		var msg struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		switch msg.Action {
		case "catchup":
			var req struct {
				Since int `json:"since"`
			}
			if len(msg.Data) > 0 {
				if err := json.Unmarshal(msg.Data, &req); err != nil {
					log.Printf("Invalid catchup data: %v", err)
					continue
				}
			}
			if h.source == nil {
				continue
			}
			events, ok := h.source.RoomEvents(roomCode, req.Since)
			if !ok {
				log.Printf("Room not found: %s", roomCode)
				continue
			}
			for _, ev := range events {
				if err := writeJSON(conn, wmu, map[string]interface{}{
					"action": "event",
					"data":   ev,
				}); err != nil {
					log.Printf("Failed to send catchup event: %v", err)
					break
				}
			}
		default:
			log.Printf("Unknown action: %s", msg.Action)
		}
	}
}

func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	// Full lock: dead connections are pruned from the room map mid-broadcast.
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[roomCode]
	if !ok {
		return
	}

	message := map[string]interface{}{
		"action": action,
		"data":   data,
	}
	for conn, wmu := range clients {
		if err := writeJSON(conn, wmu, message); err != nil {
			log.Printf("Failed to send message: %v", err)
			conn.Close()
			delete(clients, conn)
		}
	}
}
