package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reefopoly/internal/api/ws"
	"reefopoly/internal/config"
	"reefopoly/internal/room"
	"reefopoly/internal/store"

	"github.com/gin-gonic/gin"
)

func testRouter() (*gin.Engine, *room.Manager) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		StartMoney:     1500,
		PassStartBonus: 200,
		EscapeFee:      50,
		TurnLimit:      5,
		MaxPlayers:     4,
		AgentTimeout:   20 * time.Millisecond,
		LongPollWindow: 50 * time.Millisecond,
	}
	hub := ws.NewHub()
	rm := room.NewManager(store.NewMemoryStore(), cfg, hub, nil, nil)
	hub.SetSource(rm)
	return NewRouter(rm, hub, cfg), rm
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndFetchRoom(t *testing.T) {
	r, _ := testRouter()

	w := doJSON(t, r, http.MethodPost, "/rooms", CreateRoomRequest{Name: "reef", Speed: "instant"})
	if w.Code != http.StatusOK {
		t.Fatalf("create status %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		RoomCode string `json:"roomCode"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.RoomCode == "" {
		t.Fatal("no room code in response")
	}

	w = doJSON(t, r, http.MethodGet, "/rooms/"+created.RoomCode, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/rooms/NOPE99", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing room status %d, want 404", w.Code)
	}
}

func TestCreateRoomRejectsBadSpeed(t *testing.T) {
	r, _ := testRouter()
	w := doJSON(t, r, http.MethodPost, "/rooms", CreateRoomRequest{Speed: "ludicrous"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestJoinIssuesAgentToken(t *testing.T) {
	r, rm := testRouter()
	rx, _ := rm.CreateRoom("test", "instant", 0)

	w := doJSON(t, r, http.MethodPost, "/rooms/"+rx.Code+"/join", JoinRoomRequest{PlayerName: "Crabby"})
	if w.Code != http.StatusOK {
		t.Fatalf("join status %d: %s", w.Code, w.Body.String())
	}
	var res room.JoinResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.AgentToken == "" || res.PlayerID == "" {
		t.Fatalf("incomplete join result: %+v", res)
	}

	w = doJSON(t, r, http.MethodPost, "/rooms/"+rx.Code+"/join", JoinRoomRequest{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("nameless join status %d, want 400", w.Code)
	}
}

func TestAgentStateRequiresValidToken(t *testing.T) {
	r, _ := testRouter()
	w := doJSON(t, r, http.MethodGet, "/agent/state?token=bogus", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestAgentStateReportsNoPending(t *testing.T) {
	r, rm := testRouter()
	rx, _ := rm.CreateRoom("test", "instant", 0)
	res, _ := rm.JoinRoom(rx.Code, "Crabby")

	w := doJSON(t, r, http.MethodGet, "/agent/state?token="+res.AgentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body["pending"]; ok {
		t.Fatal("pending present with no decision in flight")
	}
	if body["playerId"] != res.PlayerID {
		t.Fatalf("playerId = %v", body["playerId"])
	}
}

func TestAgentDecisionConflictsWithoutPending(t *testing.T) {
	r, rm := testRouter()
	rx, _ := rm.CreateRoom("test", "instant", 0)
	res, _ := rm.JoinRoom(rx.Code, "Crabby")

	w := doJSON(t, r, http.MethodPost, "/agent/decision", DecisionRequest{
		Token:  res.AgentToken,
		Kind:   "buy",
		Accept: true,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/agent/decision", DecisionRequest{
		Token: res.AgentToken,
		Kind:  "teleport",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown kind status %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/agent/decision", DecisionRequest{
		Token: "bogus",
		Kind:  "buy",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status %d, want 401", w.Code)
	}
}

func TestEventsEndpoint(t *testing.T) {
	r, rm := testRouter()
	rx, _ := rm.CreateRoom("test", "instant", 0)

	w := doJSON(t, r, http.MethodGet, "/rooms/"+rx.Code+"/events", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/rooms/"+rx.Code+"/events?since=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad since status %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/rooms/NOPE99/events", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing room status %d, want 404", w.Code)
	}
}

func TestLifecycleEndpointsBeforeStart(t *testing.T) {
	r, rm := testRouter()
	rx, _ := rm.CreateRoom("test", "instant", 0)

	for _, path := range []string{"pause", "resume"} {
		w := doJSON(t, r, http.MethodPost, "/rooms/"+rx.Code+"/"+path, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s before start: status %d, want 400", path, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodPost, "/rooms/"+rx.Code+"/start", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("start with no players: status %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/rooms/"+rx.Code+"/standings", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("standings before start: status %d, want 400", w.Code)
	}
}
