package room

import (
	"sync"
	"testing"
	"time"

	"reefopoly/internal/config"
	"reefopoly/internal/game"
)

type fakeStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func newFakeStore() *fakeStore {
	return &fakeStore{rooms: make(map[string]*Room)}
}

func (s *fakeStore) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[code]
	return r, ok
}

func (s *fakeStore) SaveRoom(r *Room) {
	s.mu.Lock()
	s.rooms[r.Code] = r
	s.mu.Unlock()
}

func (s *fakeStore) ListRooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

func (s *fakeStore) DeleteRoom(code string) {
	s.mu.Lock()
	delete(s.rooms, code)
	s.mu.Unlock()
}

type fakeHub struct {
	mu       sync.Mutex
	messages []string
}

func (h *fakeHub) Broadcast(roomCode, action string, data interface{}) {
	h.mu.Lock()
	h.messages = append(h.messages, action)
	h.mu.Unlock()
}

func (h *fakeHub) actions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.messages...)
}

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:       ":0",
		StartMoney:     1500,
		PassStartBonus: 200,
		EscapeFee:      50,
		TurnLimit:      5,
		MaxPlayers:     4,
		AgentTimeout:   20 * time.Millisecond,
		LongPollWindow: 50 * time.Millisecond,
	}
}

func newTestManager() (*Manager, *fakeStore, *fakeHub) {
	st := newFakeStore()
	hub := &fakeHub{}
	m := NewManager(st, testConfig(), hub, nil, nil)
	return m, st, hub
}

func TestCreateRoomDefaults(t *testing.T) {
	m, _, _ := newTestManager()

	r, err := m.CreateRoom("", "", 0)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(r.Code) != 6 {
		t.Fatalf("code %q, want 6 characters", r.Code)
	}
	if r.State.Phase != game.PhaseWaiting {
		t.Fatalf("phase = %q", r.State.Phase)
	}
	if r.State.Speed != "normal" {
		t.Fatalf("speed = %q", r.State.Speed)
	}
	if r.State.TurnLimit != 5 {
		t.Fatalf("turn limit = %d", r.State.TurnLimit)
	}
	if len(r.State.Board) != game.BoardSize {
		t.Fatalf("board has %d squares", len(r.State.Board))
	}
	if len(r.State.TideCards) != 16 || len(r.State.ChestCards) != 16 {
		t.Fatal("decks not dealt")
	}
}

func TestCreateRoomRejectsUnknownSpeed(t *testing.T) {
	m, _, _ := newTestManager()
	if _, err := m.CreateRoom("x", "ludicrous", 0); err == nil {
		t.Fatal("unknown speed accepted")
	}
}

func TestJoinRoomSeatsAgent(t *testing.T) {
	m, _, _ := newTestManager()
	r, _ := m.CreateRoom("test", "instant", 0)

	res, err := m.JoinRoom(r.Code, "Crabby")
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if res.AgentToken == "" {
		t.Fatal("no agent token issued")
	}
	if res.Token != "lobster" {
		t.Fatalf("first seat token = %q, want lobster", res.Token)
	}

	sess, ok := m.SessionByToken(res.AgentToken)
	if !ok {
		t.Fatal("session not registered")
	}
	if sess.PlayerID != res.PlayerID || sess.RoomCode != r.Code {
		t.Fatalf("session mismatch: %+v vs %+v", sess, res)
	}

	p := r.State.FindPlayer(res.PlayerID)
	if p == nil || p.Money != 1500 || p.Position != game.StartSquare {
		t.Fatalf("seated player wrong: %+v", p)
	}
	if _, bound := r.Providers[res.PlayerID]; !bound {
		t.Fatal("no provider bound to the seat")
	}
}

func TestJoinRoomFullAndStarted(t *testing.T) {
	m, _, _ := newTestManager()
	r, _ := m.CreateRoom("test", "instant", 0)

	for i := 0; i < 4; i++ {
		if _, err := m.JoinRoom(r.Code, "Agent"); err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
	}
	if _, err := m.JoinRoom(r.Code, "Late"); err == nil {
		t.Fatal("join accepted on a full room")
	}

	r.State.Phase = game.PhasePlaying
	r.State.Players = r.State.Players[:2]
	if _, err := m.JoinRoom(r.Code, "Mid"); err == nil {
		t.Fatal("join accepted after start")
	}
}

func TestAddBotsCapsAtMaxPlayers(t *testing.T) {
	m, _, _ := newTestManager()
	r, _ := m.CreateRoom("test", "instant", 0)

	if err := m.AddBots(r.Code, 10); err != nil {
		t.Fatalf("add bots failed: %v", err)
	}
	if len(r.State.Players) != 4 {
		t.Fatalf("players = %d, want capped at 4", len(r.State.Players))
	}
	for _, p := range r.State.Players {
		if _, bound := r.Providers[p.ID]; !bound {
			t.Fatalf("bot seat %s unbound", p.ID)
		}
	}
}

func TestStartGuards(t *testing.T) {
	m, _, _ := newTestManager()

	if err := m.Start("NOPE"); err == nil {
		t.Fatal("start accepted for a missing room")
	}

	r, _ := m.CreateRoom("test", "instant", 0)
	if err := m.Start(r.Code); err == nil {
		t.Fatal("start accepted with no players")
	}

	if _, err := m.JoinRoom(r.Code, "Solo"); err != nil {
		t.Fatal(err)
	}
	if err := m.Start(r.Code); err == nil {
		t.Fatal("start accepted with a single player")
	}
}

func TestStartRunsMatchToCompletion(t *testing.T) {
	m, _, hub := newTestManager()
	r, _ := m.CreateRoom("test", "instant", 2)
	if err := m.AddBots(r.Code, 2); err != nil {
		t.Fatal(err)
	}

	if err := m.Start(r.Code); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := m.Start(r.Code); err == nil {
		t.Fatal("second start accepted")
	}

	// The relay appends every event in order; the log is the safe window
	// into a running match
	deadline := time.Now().Add(10 * time.Second)
	var events []game.Event
	for {
		events = r.Events(0)
		if len(events) > 0 && events[len(events)-1].Type == "game:finished" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("match did not finish, %d events so far", len(events))
		}
		time.Sleep(10 * time.Millisecond)
	}
	for i, ev := range events {
		if ev.Sequence != i {
			t.Fatalf("event %d has sequence %d", i, ev.Sequence)
		}
	}

	found := false
	for _, a := range hub.actions() {
		if a == "room:turn_order" {
			found = true
		}
	}
	if !found {
		t.Fatal("turn order never broadcast")
	}
}

func TestPauseResumeRequireLiveEngine(t *testing.T) {
	m, _, _ := newTestManager()
	r, _ := m.CreateRoom("test", "instant", 0)

	if err := m.Pause(r.Code); err == nil {
		t.Fatal("pause accepted before start")
	}
	if err := m.Resume(r.Code); err == nil {
		t.Fatal("resume accepted before start")
	}
	if err := m.SetSpeed(r.Code, "fast"); err == nil {
		t.Fatal("speed change accepted before start")
	}
}

func TestDeleteRoomDropsSessions(t *testing.T) {
	m, st, _ := newTestManager()
	r, _ := m.CreateRoom("test", "instant", 0)
	res, _ := m.JoinRoom(r.Code, "Agent")

	m.DeleteRoom(r.Code)

	if _, ok := st.GetRoom(r.Code); ok {
		t.Fatal("room survived deletion")
	}
	if _, ok := m.SessionByToken(res.AgentToken); ok {
		t.Fatal("session survived room deletion")
	}
}

// slowHub drags each broadcast out so the relay is still draining when the
// turn loop itself has finished.
type slowHub struct {
	fakeHub
}

func (h *slowHub) Broadcast(roomCode, action string, data interface{}) {
	time.Sleep(time.Millisecond)
	h.fakeHub.Broadcast(roomCode, action, data)
}

type captureArchive struct {
	mu     sync.Mutex
	events []game.Event
	done   chan struct{}
}

func (a *captureArchive) SaveMatch(st *game.State, events []game.Event, standings []game.Standing) error {
	a.mu.Lock()
	a.events = append([]game.Event(nil), events...)
	a.mu.Unlock()
	close(a.done)
	return nil
}

func TestArchiveReceivesFullEventLog(t *testing.T) {
	st := newFakeStore()
	hub := &slowHub{}
	archive := &captureArchive{done: make(chan struct{})}
	m := NewManager(st, testConfig(), hub, archive, nil)

	r, _ := m.CreateRoom("test", "instant", 2)
	if err := m.AddBots(r.Code, 2); err != nil {
		t.Fatal(err)
	}
	if err := m.Start(r.Code); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	select {
	case <-archive.done:
	case <-time.After(10 * time.Second):
		t.Fatal("archive never written")
	}

	archive.mu.Lock()
	archived := archive.events
	archive.mu.Unlock()

	if len(archived) == 0 {
		t.Fatal("archive saved an empty event log")
	}
	if got := archived[len(archived)-1].Type; got != "game:finished" {
		t.Fatalf("last archived event = %q, want game:finished", got)
	}
	for i, ev := range archived {
		if ev.Sequence != i {
			t.Fatalf("archived event %d has sequence %d", i, ev.Sequence)
		}
	}
	if logged := r.Events(0); len(archived) != len(logged) {
		t.Fatalf("archived %d events, room log has %d", len(archived), len(logged))
	}
}

func TestRoomCodesNeverCollide(t *testing.T) {
	m, _, _ := newTestManager()

	seen := make(map[string]bool)
	for i := 0; i < 40; i++ {
		r, err := m.CreateRoom("test", "instant", 0)
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		if seen[r.Code] {
			t.Fatalf("code %q issued twice", r.Code)
		}
		seen[r.Code] = true
	}
}

func TestStateViewIsDetachedFromLiveState(t *testing.T) {
	m, _, _ := newTestManager()
	r, _ := m.CreateRoom("test", "instant", 0)
	res, _ := m.JoinRoom(r.Code, "Crabby")

	view := r.StateView()
	if view == r.State {
		t.Fatal("view aliases the live state")
	}

	live := r.State.FindPlayer(res.PlayerID)
	live.Money = 1
	live.Position = 7
	r.State.Board[3].Owner = "someone"

	vp := view.FindPlayer(res.PlayerID)
	if vp == nil {
		t.Fatal("player missing from view")
	}
	if vp.Money != 1500 || vp.Position != game.StartSquare {
		t.Fatalf("view tracked live mutation: money=%d pos=%d", vp.Money, vp.Position)
	}
	if view.Board[3].Owner != "" {
		t.Fatalf("view board tracked live mutation: owner=%q", view.Board[3].Owner)
	}
}

func TestEventQueuePreservesOrder(t *testing.T) {
	q := newEventQueue()
	const n = 100

	go func() {
		for i := 0; i < n; i++ {
			q.push(game.Event{Sequence: i})
		}
		q.close()
	}()

	for i := 0; i < n; i++ {
		ev, ok := q.pop()
		if !ok {
			t.Fatalf("queue closed early at %d", i)
		}
		if ev.Sequence != i {
			t.Fatalf("popped sequence %d, want %d", ev.Sequence, i)
		}
	}
	if _, ok := q.pop(); ok {
		t.Fatal("pop succeeded on a drained closed queue")
	}
}
