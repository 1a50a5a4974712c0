package room

import (
	"sync"
	"time"

	"reefopoly/internal/game"
)

// Room is one match: its state, its engine once started, and the decision
// provider bound to each seat.
type Room struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	MaxPlayers int       `json:"maxPlayers"`

	State     *game.State                      `json:"state"`
	Engine    *game.Engine                     `json:"-"`
	Providers map[string]game.DecisionProvider `json:"-"`

	mu       sync.Mutex
	events   []game.Event
	snapshot *game.State
}

// View is the read-only shape handed to API consumers. Its state is a
// snapshot, never the live aggregate the engine mutates.
type View struct {
	ID         string      `json:"id"`
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	CreatedAt  time.Time   `json:"createdAt"`
	MaxPlayers int         `json:"maxPlayers"`
	State      *game.State `json:"state"`
}

func (r *Room) View() View {
	return View{
		ID:         r.ID,
		Code:       r.Code,
		Name:       r.Name,
		CreatedAt:  r.CreatedAt,
		MaxPlayers: r.MaxPlayers,
		State:      r.StateView(),
	}
}

// SetSnapshot publishes a fresh state copy for readers. The manager calls it
// after every lobby mutation; the engine's event sink calls it per event.
func (r *Room) SetSnapshot(st *game.State) {
	r.mu.Lock()
	r.snapshot = st
	r.mu.Unlock()
}

// StateView returns the latest published snapshot.
func (r *Room) StateView() *game.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot == nil {
		return r.State.Snapshot()
	}
	return r.snapshot
}

// AppendEvent records an event in the room's ordered log.
func (r *Room) AppendEvent(ev game.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the event log from the given sequence number on.
func (r *Room) Events(since int) []game.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if since < 0 {
		since = 0
	}
	if since >= len(r.events) {
		return nil
	}
	return append([]game.Event(nil), r.events[since:]...)
}

// Store is the repository the manager keeps rooms in.
type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	ListRooms() []*Room
	DeleteRoom(code string)
}

// Broadcaster fans an event out to a room's spectators.
type Broadcaster interface {
	Broadcast(roomCode string, action string, data interface{})
}

// eventQueue is an unbounded FIFO between the engine goroutine and the
// relay goroutine: pushes never block the engine and pops preserve order.
type eventQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []game.Event
	closed bool
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *eventQueue) push(ev game.Event) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()
	q.cond.Signal()
}

func (q *eventQueue) pop() (game.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return game.Event{}, false
	}
	ev := q.items[0]
	q.items = q.items[1:]
	return ev, true
}

func (q *eventQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
