package store

import (
	"sync"

	"reefopoly/internal/room"
)

// MemoryStore keeps live rooms in process memory; the engine is the source
// of truth while a match runs, so nothing here needs to be durable.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: map[string]*room.Room{}}
}

func (m *MemoryStore) GetRoom(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *room.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code] = r
}

func (m *MemoryStore) ListRooms() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

// MemoryStats is the fallback stats recorder when no redis is configured.
type MemoryStats struct {
	mu      sync.Mutex
	results map[string]*AgentRecord
}

type AgentRecord struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

func NewMemoryStats() *MemoryStats {
	return &MemoryStats{results: map[string]*AgentRecord{}}
}

func (m *MemoryStats) RecordResult(playerName string, won bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.results[playerName]
	if !ok {
		rec = &AgentRecord{}
		m.results[playerName] = rec
	}
	rec.Games++
	if won {
		rec.Wins++
	}
	return nil
}

func (m *MemoryStats) Record(playerName string) (AgentRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.results[playerName]
	if !ok {
		return AgentRecord{}, false
	}
	return *rec, true
}
