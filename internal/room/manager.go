package room

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"reefopoly/internal/config"
	"reefopoly/internal/game"

	"github.com/google/uuid"
)

var tokenColors = map[string]string{
	"lobster":  "#e74c3c",
	"crab":     "#e67e22",
	"octopus":  "#9b59b6",
	"seahorse": "#2ecc71",
	"dolphin":  "#3498db",
	"shark":    "#95a5a6",
}

var allTokens = []string{"lobster", "crab", "octopus", "seahorse", "dolphin", "shark"}

// Archive persists finished matches and their event logs.
type Archive interface {
	SaveMatch(st *game.State, events []game.Event, standings []game.Standing) error
}

// Stats records per-agent results across matches.
type Stats interface {
	RecordResult(playerName string, won bool) error
}

// AgentSession ties an agent token to its seat and remote provider. Sessions
// are created on join and removed when the room is deleted.
type AgentSession struct {
	Token    string
	PlayerID string
	RoomCode string
	Provider *game.RemoteProvider

	notify chan struct{}
}

// Wait blocks until a decision becomes pending or d elapses.
func (s *AgentSession) Wait(d time.Duration) {
	select {
	case <-s.notify:
	case <-time.After(d):
	}
}

type Manager struct {
	store   Store
	cfg     *config.Config
	hub     Broadcaster
	archive Archive
	stats   Stats

	mu       sync.RWMutex
	sessions map[string]*AgentSession
}

func NewManager(s Store, cfg *config.Config, hub Broadcaster, archive Archive, stats Stats) *Manager {
	return &Manager{
		store:    s,
		cfg:      cfg,
		hub:      hub,
		archive:  archive,
		stats:    stats,
		sessions: make(map[string]*AgentSession),
	}
}

func (m *Manager) CreateRoom(name, speed string, turnLimit int) (*Room, error) {
	if name == "" {
		name = "Reef Match"
	}
	if speed == "" {
		speed = "normal"
	}
	if _, ok := config.SpeedDelays[speed]; !ok {
		return nil, fmt.Errorf("unknown speed %q", speed)
	}
	if turnLimit <= 0 {
		turnLimit = m.cfg.TurnLimit
	}

	roller := game.NewTimeRoller()
	code, err := m.uniqueCode()
	if err != nil {
		return nil, err
	}
	r := &Room{
		ID:         uuid.NewString(),
		Code:       code,
		Name:       name,
		CreatedAt:  time.Now(),
		MaxPlayers: m.cfg.MaxPlayers,
		Providers:  map[string]game.DecisionProvider{},
		State: &game.State{
			RoomCode:   code,
			RoomName:   name,
			Board:      game.NewBoard(),
			TideCards:  game.NewTideDeck(roller.Rand()),
			ChestCards: game.NewChestDeck(roller.Rand()),
			Phase:      game.PhaseWaiting,
			Speed:      speed,
			TurnLimit:  turnLimit,
		},
	}
	r.State.RoomID = r.ID
	r.SetSnapshot(r.State.Snapshot())
	m.store.SaveRoom(r)
	return r, nil
}

// uniqueCode mints a room code not already in the store.
func (m *Manager) uniqueCode() (string, error) {
	for attempts := 0; attempts < 100; attempts++ {
		code := randCode(6)
		if _, taken := m.store.GetRoom(code); !taken {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a room code")
}

func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.GetRoom(code)
}

func (m *Manager) List() []*Room {
	return m.store.ListRooms()
}

type JoinResult struct {
	PlayerID   string `json:"playerId"`
	AgentToken string `json:"agentToken"`
	Token      string `json:"token"`
	Color      string `json:"color"`
}

// JoinRoom seats a remote agent: it creates the player, binds a remote
// provider to the seat and hands back the token the agent authenticates with.
func (m *Manager) JoinRoom(code, playerName string) (*JoinResult, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, errors.New("room not found")
	}
	if r.State.Phase != game.PhaseWaiting {
		return nil, errors.New("game already started")
	}
	if len(r.State.Players) >= r.MaxPlayers {
		return nil, errors.New("room is full")
	}

	player, err := m.addPlayer(r, playerName)
	if err != nil {
		return nil, err
	}

	provider := game.NewRemoteProvider(m.cfg.AgentTimeout)
	r.Providers[player.ID] = provider

	sess := &AgentSession{
		Token:    uuid.NewString(),
		PlayerID: player.ID,
		RoomCode: r.Code,
		Provider: provider,
		notify:   make(chan struct{}, 1),
	}
	provider.SetNotify(func(game.DecisionKind, map[string]interface{}) {
		select {
		case sess.notify <- struct{}{}:
		default:
		}
	})

	m.mu.Lock()
	m.sessions[sess.Token] = sess
	m.mu.Unlock()

	r.SetSnapshot(r.State.Snapshot())
	m.store.SaveRoom(r)
	return &JoinResult{
		PlayerID:   player.ID,
		AgentToken: sess.Token,
		Token:      player.Token,
		Color:      player.Color,
	}, nil
}

// AddBots fills n seats with instant heuristic opponents.
func (m *Manager) AddBots(code string, n int) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return errors.New("room not found")
	}
	if r.State.Phase != game.PhaseWaiting {
		return errors.New("game already started")
	}

	for i := 0; i < n; i++ {
		if len(r.State.Players) >= r.MaxPlayers {
			break
		}
		player, err := m.addPlayer(r, fmt.Sprintf("Bot %d", len(r.State.Players)+1))
		if err != nil {
			return err
		}
		r.Providers[player.ID] = game.NewHeuristicProvider(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	r.SetSnapshot(r.State.Snapshot())
	m.store.SaveRoom(r)
	return nil
}

func (m *Manager) addPlayer(r *Room, name string) (*game.Player, error) {
	if name == "" {
		name = "Player"
	}
	used := map[string]bool{}
	for _, p := range r.State.Players {
		used[p.Token] = true
	}
	var token string
	for _, t := range allTokens {
		if !used[t] {
			token = t
			break
		}
	}
	if token == "" {
		return nil, errors.New("no tokens available")
	}

	player := &game.Player{
		ID:         uuid.NewString(),
		Name:       name,
		Token:      token,
		Color:      tokenColors[token],
		Money:      m.cfg.StartMoney,
		Position:   game.StartSquare,
		Properties: []int{},
		Connected:  true,
	}
	r.State.Players = append(r.State.Players, player)
	return player, nil
}

// Start resolves the turn order and launches the match loop detached from
// the caller. Every seat must be bound to a provider.
func (m *Manager) Start(code string) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return errors.New("room not found")
	}
	if r.State.Phase != game.PhaseWaiting {
		return errors.New("game not in waiting phase")
	}
	if len(r.State.Players) < 2 {
		return errors.New("need at least 2 players")
	}
	for _, p := range r.State.Players {
		if _, bound := r.Providers[p.ID]; !bound {
			return fmt.Errorf("seat %s has no decision provider", p.ID)
		}
	}

	roller := game.NewTimeRoller()

	r.State.Phase = game.PhaseRollOrder
	ids := make([]string, len(r.State.Players))
	for i, p := range r.State.Players {
		ids[i] = p.ID
	}
	order, rolls := game.DetermineTurnOrder(ids, roller)

	byID := make(map[string]*game.Player, len(r.State.Players))
	for _, p := range r.State.Players {
		byID[p.ID] = p
	}
	for i, id := range order {
		r.State.Players[i] = byID[id]
	}
	m.hub.Broadcast(r.Code, "room:turn_order", map[string]interface{}{
		"order": order,
		"rolls": rolls,
	})

	engine := game.NewEngine(r.State, r.Providers, roller, game.EngineConfig{
		PassStartBonus: m.cfg.PassStartBonus,
		EscapeFee:      m.cfg.EscapeFee,
		SpeedDelays:    config.SpeedDelays,
	})
	r.Engine = engine

	// Ordered hand-off between the engine and slow consumers: pushes never
	// block the turn loop, the relay drains in emission order.
	queue := newEventQueue()
	engine.OnEvent(queue.push)
	// Sinks run on the engine goroutine, so this is the one safe place to
	// copy state out for readers
	engine.OnEvent(func(game.Event) {
		r.SetSnapshot(engine.State().Snapshot())
	})

	r.SetSnapshot(r.State.Snapshot())

	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		m.relayEvents(r, queue)
	}()

	go m.runMatch(r, engine, queue, relayDone)

	m.store.SaveRoom(r)
	return nil
}

// runMatch supervises one match loop. A panic is logged with the room id and
// leaves the match where it stopped; it never reaches the caller.
func (m *Manager) runMatch(r *Room, engine *game.Engine, queue *eventQueue, relayDone <-chan struct{}) {
	defer queue.close()
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("room %s: match loop failed: %v", r.ID, rec)
		}
	}()

	engine.Run()
	r.SetSnapshot(engine.State().Snapshot())

	// Every event must land in the room log before the archive reads it
	queue.close()
	<-relayDone

	if m.archive != nil {
		if err := m.archive.SaveMatch(r.State, r.Events(0), engine.Standings()); err != nil {
			log.Printf("room %s: archive failed: %v", r.ID, err)
		}
	}
	if m.stats != nil {
		winner := r.State.Winner
		for _, p := range r.State.Players {
			if err := m.stats.RecordResult(p.Name, winner != nil && p.ID == winner.ID); err != nil {
				log.Printf("room %s: stats update failed: %v", r.ID, err)
			}
		}
	}
	m.store.SaveRoom(r)
}

// relayEvents drains the queue into the room log and out to spectators. A
// panic here must not take the process down with it.
func (m *Manager) relayEvents(r *Room, queue *eventQueue) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("room %s: event relay failed: %v", r.ID, rec)
		}
	}()

	for {
		ev, ok := queue.pop()
		if !ok {
			return
		}
		r.AppendEvent(ev)
		m.hub.Broadcast(r.Code, ev.Type, ev)
	}
}

// --- Lifecycle controls ---

func (m *Manager) Pause(code string) error {
	engine, err := m.liveEngine(code)
	if err != nil {
		return err
	}
	engine.Pause()
	m.hub.Broadcast(code, "room:paused", nil)
	return nil
}

func (m *Manager) Resume(code string) error {
	engine, err := m.liveEngine(code)
	if err != nil {
		return err
	}
	engine.Resume()
	m.hub.Broadcast(code, "room:resumed", nil)
	return nil
}

func (m *Manager) SetSpeed(code, speed string) error {
	engine, err := m.liveEngine(code)
	if err != nil {
		return err
	}
	if err := engine.SetSpeed(speed); err != nil {
		return err
	}
	m.hub.Broadcast(code, "room:speed", map[string]interface{}{"speed": speed})
	return nil
}

// Standings returns the current net-worth ranking for a started match.
func (m *Manager) Standings(code string) ([]game.Standing, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, errors.New("room not found")
	}
	if r.Engine == nil {
		return nil, errors.New("game not started")
	}
	return game.ComputeStandings(r.StateView()), nil
}

func (m *Manager) liveEngine(code string) (*game.Engine, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, errors.New("room not found")
	}
	if r.Engine == nil {
		return nil, errors.New("game not started")
	}
	return r.Engine, nil
}

// RoomEvents returns the ordered event log of a room from the given
// sequence number on.
func (m *Manager) RoomEvents(code string, since int) ([]game.Event, bool) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, false
	}
	return r.Events(since), true
}

// SessionByToken resolves an agent token to its session.
func (m *Manager) SessionByToken(token string) (*AgentSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

// DeleteRoom tears a room down and drops its agent sessions.
func (m *Manager) DeleteRoom(code string) {
	m.mu.Lock()
	for token, s := range m.sessions {
		if s.RoomCode == code {
			delete(m.sessions, token)
		}
	}
	m.mu.Unlock()
	m.store.DeleteRoom(code)
}

const codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// One shared source: per-call UnixNano seeding hands identical codes to
// rooms created within the same clock tick.
var (
	codeRandMu sync.Mutex
	codeRand   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func randCode(n int) string {
	codeRandMu.Lock()
	defer codeRandMu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = codeLetters[codeRand.Intn(len(codeLetters))]
	}
	return string(b)
}
