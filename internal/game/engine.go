package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EngineConfig carries the economic constants and pacing table for a match.
type EngineConfig struct {
	PassStartBonus int
	EscapeFee      int
	SpeedDelays    map[string]time.Duration
}

// Engine drives one match from start to finish on a single goroutine. All
// state mutation happens on that goroutine; concurrency only enters through
// decision providers (which block the turn until answered or timed out) and
// the pause/resume/speed controls.
type Engine struct {
	st        *State
	providers map[string]DecisionProvider
	roller    *Roller
	cfg       EngineConfig

	sinks []func(Event)
	seq   int

	consecutiveDoubles int
	lastRoll           DiceRoll

	mu     sync.Mutex
	cond   *sync.Cond
	paused bool
}

func NewEngine(st *State, providers map[string]DecisionProvider, roller *Roller, cfg EngineConfig) *Engine {
	e := &Engine{
		st:        st,
		providers: providers,
		roller:    roller,
		cfg:       cfg,
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// OnEvent registers an ordered event sink. Sinks run on the engine goroutine
// in emission order and must not block.
func (e *Engine) OnEvent(fn func(Event)) {
	e.sinks = append(e.sinks, fn)
}

// State exposes the match state for read-only snapshots.
func (e *Engine) State() *State {
	return e.st
}

// Pause suspends the engine at its next inter-event delay.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.paused = true
	e.st.Phase = PhasePaused
	e.mu.Unlock()
}

// Resume releases a paused engine exactly where it stopped.
func (e *Engine) Resume() {
	e.mu.Lock()
	e.paused = false
	if e.st.Phase == PhasePaused {
		e.st.Phase = PhasePlaying
	}
	e.mu.Unlock()
	e.cond.Broadcast()
}

func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// SetSpeed changes the inter-event delay for all subsequent events.
func (e *Engine) SetSpeed(speed string) error {
	if _, ok := e.cfg.SpeedDelays[speed]; !ok {
		return fmt.Errorf("unknown speed %q", speed)
	}
	e.mu.Lock()
	e.st.Speed = speed
	e.mu.Unlock()
	return nil
}

// Run plays the match to completion. It is the only goroutine that mutates
// the match state.
func (e *Engine) Run() {
	e.mu.Lock()
	e.st.Phase = PhasePlaying
	e.mu.Unlock()

	// The payload outlives this goroutine once relayed, so it carries a
	// snapshot rather than the live roster and board
	snap := e.st.Snapshot()
	e.emit("game:started", "", map[string]interface{}{
		"players":            snap.Players,
		"board":              snap.Board,
		"currentPlayerIndex": snap.CurrentPlayerIndex,
		"turnNumber":         snap.TurnNumber,
	})

	for !e.finished() {
		e.executeTurn()
		if e.checkGameEnd() {
			break
		}
		e.advanceToNextPlayer()
	}
}

func (e *Engine) finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Phase == PhaseFinished
}

// --- Events ---

func (e *Engine) emit(eventType, playerID string, data map[string]interface{}) {
	ev := Event{
		ID:         uuid.NewString(),
		RoomID:     e.st.RoomID,
		Sequence:   e.seq,
		TurnNumber: e.st.TurnNumber,
		Type:       eventType,
		PlayerID:   playerID,
		Data:       data,
		Timestamp:  time.Now(),
	}
	e.seq++
	for _, sink := range e.sinks {
		sink(ev)
	}
	e.delay()
}

// delay paces spectation. A paused engine waits here until resumed, then
// serves the configured delay in full.
func (e *Engine) delay() {
	e.mu.Lock()
	for e.paused {
		e.cond.Wait()
	}
	d := e.cfg.SpeedDelays[e.st.Speed]
	e.mu.Unlock()

	if d > 0 {
		time.Sleep(d)
	}
}

// --- Turn execution ---

func (e *Engine) executeTurn() {
	player := e.st.CurrentPlayer()
	if player.Bankrupt {
		return
	}

	e.emit("game:turn_start", player.ID, map[string]interface{}{
		"playerName": player.Name,
		"turnNumber": e.st.TurnNumber,
		"inPot":      player.InPot,
	})

	if player.InPot {
		e.potTurn(player)
	} else {
		e.normalTurn(player)
	}

	e.emit("game:turn_end", player.ID, map[string]interface{}{"playerName": player.Name})
}

func (e *Engine) normalTurn(player *Player) {
	e.consecutiveDoubles = 0

	keepRolling := true
	for keepRolling && !player.Bankrupt {
		roll := e.rollDice(player)

		if roll.Doubles {
			e.consecutiveDoubles++
		} else {
			e.consecutiveDoubles = 0
		}

		// Third consecutive double: straight to the pot, no movement
		if e.consecutiveDoubles >= 3 {
			e.sendToPot(player, "triple_doubles")
			break
		}

		e.moveAndAct(player, roll)

		keepRolling = roll.Doubles && !player.InPot && !player.Bankrupt
	}
}

// potTurn runs the escape sub-protocol. A double frees the player but does
// not chain into an extra roll the way doubles normally do.
func (e *Engine) potTurn(player *Player) {
	choice := e.provider(player.ID).DecidePotEscape(player, e.st)

	if choice == PotUseCard && player.EscapeCards > 0 {
		player.EscapeCards--
		e.freeFromPot(player, "card")
		e.rollMoveAndAct(player)
		return
	}

	if choice == PotPay && player.Money >= e.cfg.EscapeFee {
		player.Money -= e.cfg.EscapeFee
		e.emit("game:tax_paid", player.ID, map[string]interface{}{
			"amount": e.cfg.EscapeFee,
			"reason": "pot_fee",
		})
		e.freeFromPot(player, "pay")
		e.rollMoveAndAct(player)
		return
	}

	// Roll for escape
	roll := e.rollDice(player)

	if roll.Doubles {
		e.freeFromPot(player, "doubles")
		e.moveAndAct(player, roll)
		return
	}

	player.PotTurns++
	if player.PotTurns >= 3 {
		// Third failed attempt: pay up and move by this same roll
		e.chargePlayer(player, e.cfg.EscapeFee, "")
		e.freeFromPot(player, "forced_pay")
		e.moveAndAct(player, roll)
	}
}

func (e *Engine) rollMoveAndAct(player *Player) {
	roll := e.rollDice(player)
	e.moveAndAct(player, roll)
}

// moveAndAct advances the player by the roll, pays the pass-start bonus when
// the position wraps past (or onto) the start square, runs the landed
// square's effect and, if still solvent and free, offers the building phase.
func (e *Engine) moveAndAct(player *Player, roll DiceRoll) {
	oldPos := player.Position
	newPos := (player.Position + roll.Total) % BoardSize
	player.Position = newPos

	e.emit("game:player_moved", player.ID, map[string]interface{}{
		"from":       oldPos,
		"to":         newPos,
		"squareName": e.st.Board[newPos].Name,
	})

	if newPos < oldPos {
		e.payPassStartBonus(player)
	}

	e.squareAction(player, e.st.Board[newPos], roll)

	if !player.Bankrupt && !player.InPot {
		e.buildingPhase(player)
	}
}

func (e *Engine) rollDice(player *Player) DiceRoll {
	roll := e.roller.Roll()
	e.lastRoll = roll
	e.emit("game:dice_rolled", player.ID, map[string]interface{}{
		"dice":    roll.Dice,
		"total":   roll.Total,
		"doubles": roll.Doubles,
	})
	return roll
}

// --- Square effects ---

func (e *Engine) squareAction(player *Player, sq *Square, roll DiceRoll) {
	switch sq.Type {
	case SquareProperty, SquareCurrent:
		e.ownableLanding(player, sq, roll.Total, 1)
	case SquareUtility:
		e.utilityLanding(player, sq, roll.Total, 0)
	case SquareTax:
		e.taxSquare(player, sq)
	case SquareTideCard, SquareTreasureChest:
		e.cardSquare(player, sq)
	case SquareSpecial:
		e.specialSquare(player, sq)
	}
}

func (e *Engine) ownableLanding(player *Player, sq *Square, diceTotal, rentMultiplier int) {
	if sq.Owner == "" {
		e.offerBuy(player, sq)
		return
	}
	if sq.Owner == player.ID || sq.Mortgaged {
		return
	}
	rent := CalculateRent(sq, e.st.Board, diceTotal) * rentMultiplier
	owner := e.st.FindPlayer(sq.Owner)
	if owner == nil || rent <= 0 {
		return
	}
	e.emit("game:rent_paid", player.ID, map[string]interface{}{
		"squareName": sq.Name,
		"amount":     rent,
		"toPlayer":   owner.Name,
	})
	e.chargePlayer(player, rent, owner.ID)
}

// utilityLanding charges utility rent. A card-forced landing supplies its own
// dice total and multiplier; everything else uses the live roll.
func (e *Engine) utilityLanding(player *Player, sq *Square, diceTotal, forcedMultiplier int) {
	if sq.Owner == "" {
		e.offerBuy(player, sq)
		return
	}
	if sq.Owner == player.ID || sq.Mortgaged {
		return
	}

	var rent int
	if forcedMultiplier > 0 {
		rent = diceTotal * forcedMultiplier
	} else {
		rent = CalculateRent(sq, e.st.Board, diceTotal)
	}
	owner := e.st.FindPlayer(sq.Owner)
	if owner == nil || rent <= 0 {
		return
	}
	e.emit("game:rent_paid", player.ID, map[string]interface{}{
		"squareName": sq.Name,
		"amount":     rent,
		"toPlayer":   owner.Name,
	})
	e.chargePlayer(player, rent, owner.ID)
}

func (e *Engine) taxSquare(player *Player, sq *Square) {
	amount := PearlTaxAmt
	if sq.Index == FishingTaxSq {
		amount = FishingTaxAmt
	}
	e.emit("game:tax_paid", player.ID, map[string]interface{}{
		"squareName": sq.Name,
		"amount":     amount,
	})
	e.chargePlayer(player, amount, "")
}

func (e *Engine) cardSquare(player *Player, sq *Square) {
	deck := e.st.ChestCards
	if sq.Type == SquareTideCard {
		deck = e.st.TideCards
	}
	if len(deck) == 0 {
		return
	}

	card := deck[0]
	copy(deck, deck[1:])
	deck[len(deck)-1] = card // drawn card goes to the bottom

	e.emit("game:card_drawn", player.ID, map[string]interface{}{
		"cardDeck":   card.Deck,
		"cardText":   card.Text,
		"cardAction": card.Action,
	})

	e.applyCardResult(player, ExecuteCard(card, player, e.st, e.roller))
}

func (e *Engine) applyCardResult(player *Player, res CardResult) {
	if res.EscapeCard {
		player.EscapeCards++
		return
	}
	if res.GotoPot {
		e.sendToPot(player, "card")
		return
	}

	if res.MovedTo >= 0 {
		oldPos := player.Position
		player.Position = res.MovedTo

		e.emit("game:player_moved", player.ID, map[string]interface{}{
			"from":       oldPos,
			"to":         res.MovedTo,
			"squareName": e.st.Board[res.MovedTo].Name,
			"reason":     "card",
		})

		if res.PassedStart {
			e.payPassStartBonus(player)
		}

		// Landing on another card square after a card move draws nothing
		landed := e.st.Board[res.MovedTo]
		switch landed.Type {
		case SquareProperty, SquareCurrent:
			e.ownableLanding(player, landed, e.lastRoll.Total, res.RentMultiplier)
		case SquareUtility:
			if res.ForcedDiceTotal > 0 {
				e.utilityLanding(player, landed, res.ForcedDiceTotal, res.RentMultiplier)
			} else {
				e.utilityLanding(player, landed, e.lastRoll.Total, 0)
			}
		case SquareTax:
			e.taxSquare(player, landed)
		case SquareSpecial:
			e.specialSquare(player, landed)
		}
		return
	}

	if res.MoneyDelta > 0 {
		player.Money += res.MoneyDelta
	} else if res.MoneyDelta < 0 {
		e.chargePlayer(player, -res.MoneyDelta, "")
	}

	if res.CollectFromEach > 0 {
		amount := res.CollectFromEach
		for _, other := range e.st.ActivePlayers() {
			if other.ID == player.ID {
				continue
			}
			if other.Money >= amount {
				other.Money -= amount
				player.Money += amount
				continue
			}
			// Pay what they can; the rest may bankrupt them with the
			// card's invoker as creditor
			shortfall := amount - other.Money
			player.Money += other.Money
			other.Money = 0
			if ResolveBankruptcy(other, shortfall, player.ID, e.st) {
				e.emit("game:bankrupt", other.ID, map[string]interface{}{
					"creditorId": player.ID,
				})
			}
		}
	}

	if res.PayEach > 0 {
		for _, other := range e.st.ActivePlayers() {
			if other.ID == player.ID {
				continue
			}
			e.chargePlayer(player, res.PayEach, other.ID)
			if player.Bankrupt {
				break
			}
		}
	}
}

func (e *Engine) specialSquare(player *Player, sq *Square) {
	if sq.Index == CaughtSquare {
		e.sendToPot(player, "square")
	}
	// Set Sail, Just Visiting, Anchor Bay: nothing happens
}

// --- Pot ---

func (e *Engine) sendToPot(player *Player, reason string) {
	player.Position = PotSquare
	player.InPot = true
	player.PotTurns = 0
	e.emit("game:pot_in", player.ID, map[string]interface{}{"reason": reason})
}

func (e *Engine) freeFromPot(player *Player, method string) {
	player.InPot = false
	player.PotTurns = 0
	e.emit("game:pot_out", player.ID, map[string]interface{}{"method": method})
}

// --- Building phase ---

func (e *Engine) buildingPhase(player *Player) {
	provider := e.provider(player.ID)

	for attempts := 0; attempts < 50; attempts++ {
		buildable := affordable(BuildableSquares(e.st.Board, player.ID), e.st.Board, player, false)
		upgradeable := affordable(UpgradeableSquares(e.st.Board, player.ID), e.st.Board, player, true)
		if len(buildable) == 0 && len(upgradeable) == 0 {
			return
		}

		decision := provider.DecideBuild(player, buildable, upgradeable, e.st)
		if decision == nil {
			return
		}

		switch {
		case decision.Action == ActionUpgrade && contains(upgradeable, decision.SquareIndex):
			Upgrade(decision.SquareIndex, e.st.Board, player)
			e.emit("game:fortress_built", player.ID, map[string]interface{}{
				"squareIndex": decision.SquareIndex,
				"squareName":  e.st.Board[decision.SquareIndex].Name,
				"cost":        e.st.Board[decision.SquareIndex].FortressCost,
			})
		case decision.Action == ActionBuild && contains(buildable, decision.SquareIndex):
			Build(decision.SquareIndex, e.st.Board, player)
			e.emit("game:outpost_built", player.ID, map[string]interface{}{
				"squareIndex": decision.SquareIndex,
				"squareName":  e.st.Board[decision.SquareIndex].Name,
				"outposts":    e.st.Board[decision.SquareIndex].Outposts,
				"cost":        e.st.Board[decision.SquareIndex].OutpostCost,
			})
		default:
			// Invalid answer ends the phase
			return
		}
	}
}

func affordable(indices []int, board []*Square, p *Player, upgrade bool) []int {
	var out []int
	for _, idx := range indices {
		cost := board[idx].OutpostCost
		if upgrade {
			cost = board[idx].FortressCost
		}
		if p.Money >= cost {
			out = append(out, idx)
		}
	}
	return out
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// --- Payment ---

func (e *Engine) offerBuy(player *Player, sq *Square) {
	if sq.Price == 0 || player.Money < sq.Price {
		return
	}

	wants := e.provider(player.ID).DecideBuy(player, sq, e.st)

	if wants && player.Money >= sq.Price {
		player.Money -= sq.Price
		sq.Owner = player.ID
		player.Properties = append(player.Properties, sq.Index)
		e.emit("game:property_bought", player.ID, map[string]interface{}{
			"squareIndex": sq.Index,
			"squareName":  sq.Name,
			"price":       sq.Price,
		})
		return
	}
	e.emit("game:property_passed", player.ID, map[string]interface{}{
		"squareIndex": sq.Index,
		"squareName":  sq.Name,
	})
}

// chargePlayer debits the payer, crediting creditorID when set (empty means
// the bank). An insolvent payer goes through bankruptcy resolution first; if
// that fails the debt is abandoned.
func (e *Engine) chargePlayer(payer *Player, amount int, creditorID string) {
	if payer.Money < amount {
		if ResolveBankruptcy(payer, amount, creditorID, e.st) {
			e.emit("game:bankrupt", payer.ID, map[string]interface{}{
				"debtAmount": amount,
				"creditorId": creditorID,
			})
			return
		}
	}

	payer.Money -= amount
	if creditorID != "" {
		if creditor := e.st.FindPlayer(creditorID); creditor != nil {
			creditor.Money += amount
		}
	}
}

func (e *Engine) payPassStartBonus(player *Player) {
	player.Money += e.cfg.PassStartBonus
	e.emit("game:pass_start_bonus", player.ID, map[string]interface{}{
		"amount":     e.cfg.PassStartBonus,
		"newBalance": player.Money,
	})
}

// --- Game end ---

func (e *Engine) checkGameEnd() bool {
	active := e.st.ActivePlayers()

	if len(active) <= 1 {
		winner := e.st.Players[0]
		if len(active) == 1 {
			winner = active[0]
		}
		e.finishGame(winner)
		return true
	}

	if e.st.TurnLimit > 0 && e.st.TurnNumber >= e.st.TurnLimit {
		e.finishGame(e.wealthiestPlayer())
		return true
	}
	return false
}

func (e *Engine) wealthiestPlayer() *Player {
	active := e.st.ActivePlayers()
	richest := active[0]
	maxWealth := 0
	for _, p := range active {
		if wealth := NetWorth(p, e.st.Board); wealth > maxWealth {
			maxWealth = wealth
			richest = p
		}
	}
	return richest
}

// Standing is one row of the end-of-match ranking.
type Standing struct {
	Name     string `json:"name"`
	Token    string `json:"token"`
	Money    int    `json:"money"`
	NetWorth int    `json:"netWorth"`
	Bankrupt bool   `json:"bankrupt"`
}

// Standings ranks all players, bankrupt ones included, by net worth.
func (e *Engine) Standings() []Standing {
	return ComputeStandings(e.st)
}

// ComputeStandings ranks a state's players by net worth, descending. Works
// on snapshots as well as live state.
func ComputeStandings(st *State) []Standing {
	rows := make([]Standing, 0, len(st.Players))
	for _, p := range st.Players {
		rows = append(rows, Standing{
			Name:     p.Name,
			Token:    p.Token,
			Money:    p.Money,
			NetWorth: NetWorth(p, st.Board),
			Bankrupt: p.Bankrupt,
		})
	}
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].NetWorth > rows[i].NetWorth {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	return rows
}

func (e *Engine) finishGame(winner *Player) {
	e.mu.Lock()
	e.st.Phase = PhaseFinished
	e.st.Winner = winner
	e.mu.Unlock()

	e.emit("game:finished", winner.ID, map[string]interface{}{
		"winnerName": winner.Name,
		"totalTurns": e.st.TurnNumber,
		"standings":  e.Standings(),
	})
}

// --- Turn advancement ---

// advanceToNextPlayer moves to the next solvent seat, bumping the turn
// counter each time the seat index wraps. The scan is bounded so a roster of
// mostly bankrupt seats cannot loop forever.
func (e *Engine) advanceToNextPlayer() {
	count := len(e.st.Players)
	next := (e.st.CurrentPlayerIndex + 1) % count
	if next == 0 {
		e.st.TurnNumber++
	}

	for safety := 0; e.st.Players[next].Bankrupt && safety < count; safety++ {
		next = (next + 1) % count
		if next == 0 {
			e.st.TurnNumber++
		}
	}

	e.st.CurrentPlayerIndex = next
}

func (e *Engine) provider(playerID string) DecisionProvider {
	if p, ok := e.providers[playerID]; ok {
		return p
	}
	// Unbound seats are rejected before start; this is a programming error
	panic(fmt.Sprintf("no decision provider bound for player %s", playerID))
}
