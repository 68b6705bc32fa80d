package model

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/checkers"
	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrNotYourTurn         = errors.New("not your turn")
	ErrGameOver            = errors.New("game is over")
	ErrGameFull            = errors.New("game already has a player")
	ErrNotInGame           = errors.New("player not in game")
	ErrStaleTurn           = errors.New("position changed while the computer was thinking")
	ErrNoComputerMove      = errors.New("computer found no move in an ongoing game")
	ErrDuplicateConnection = errors.New("player already has a connection to this game")
)

// Conn is the write side of an observer's websocket.
type Conn interface {
	WriteJSON(v any) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex

	// pending holds state snapshots not yet written, oldest first. Only one
	// drain goroutine runs at a time, so observers see states in order.
	queueMu  sync.Mutex
	pending  []GameState
	draining bool
}

// Game is one human-versus-computer session. The human plays the Player side
// and always moves first.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	connections *GameConnections
	depth       int
	search      func(board checkers.Board, depth int, side checkers.Side) engine.Result
	// version changes on every ply and reset so a search started on an old
	// position can be discarded.
	version       uint64
	humanClock    *Clock
	computerClock *Clock
}

type GameState struct {
	Board          checkers.Board     `json:"board"`
	ToMove         checkers.Side      `json:"toMove"`
	Status         checkers.Status    `json:"status"`
	MoveHistory    []Ply              `json:"moveHistory"`
	CapturedPieces CapturedPieces     `json:"capturedPieces"`
	Record         Record             `json:"record"`
	SelectedSquare *checkers.Position `json:"selectedSquare"` // Made nullable
	LegalMoves     []checkers.Move    `json:"legalMoves"`
	LastMove       *checkers.Move     `json:"lastMove"` // Made nullable
	AIThinking     bool               `json:"aiThinking"`
	SearchDepth    int                `json:"searchDepth"`
	Players        Players            `json:"players"`
}

func NewGame(id string, depth int) *Game {
	if depth <= 0 {
		depth = engine.DefaultDepth
	}
	return &Game{
		ID:            id,
		state:         newGameState(depth, Record{}),
		connections:   NewGameConnections(),
		depth:         depth,
		search:        engine.Search,
		humanClock:    NewClock(),
		computerClock: NewClock(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func newGameState(depth int, record Record) GameState {
	return GameState{
		Board:       checkers.NewBoard(),
		ToMove:      checkers.SidePlayer,
		Status:      checkers.StatusOngoing,
		MoveHistory: make([]Ply, 0),
		Record:      record,
		LegalMoves:  make([]checkers.Move, 0),
		SearchDepth: depth,
		Players:     newPlayers(),
	}
}

func (g *Game) AddPlayer(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state.Players.Human.ID {
	case "":
		g.state.Players.Human.ID = playerID
		g.humanClock.Start()
		log.Infow("player joined", "game", g.ID, "player", playerID)
		return nil
	case playerID:
		return nil
	}
	return ErrGameFull
}

// GetState returns a copy that is safe to use after the lock is released.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	s := g.state
	s.MoveHistory = append([]Ply(nil), g.state.MoveHistory...)
	s.LegalMoves = append([]checkers.Move(nil), g.state.LegalMoves...)
	s.Players.Human.ThinkingMs = g.humanClock.Used().Milliseconds()
	s.Players.Computer.ThinkingMs = g.computerClock.Used().Milliseconds()
	return s
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return g.state.Players.Human.ID != "" && g.state.Players.Human.ID == playerID
}

// NeedsComputerMove reports whether the computer side is due to move.
func (g *Game) NeedsComputerMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Status == checkers.StatusOngoing && g.state.ToMove == checkers.SideOpponent
}

func (g *Game) checkHumanTurn(playerID string) error {
	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	if g.state.Status.IsOver() {
		return ErrGameOver
	}
	if g.state.ToMove != checkers.SidePlayer {
		return ErrNotYourTurn
	}
	return nil
}

// Select marks one of the human's pieces and lists where it can go.
func (g *Game) Select(playerID string, square checkers.Position) ([]checkers.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkHumanTurn(playerID); err != nil {
		return nil, err
	}
	if err := checkers.ValidateOrigin(&g.state.Board, checkers.SidePlayer, square); err != nil {
		g.clearSelection()
		return nil, err
	}

	moves := checkers.MovesForPiece(&g.state.Board, square)
	if moves == nil {
		moves = make([]checkers.Move, 0)
	}
	g.state.SelectedSquare = &square
	g.state.LegalMoves = moves
	g.broadcast()
	return append([]checkers.Move(nil), moves...), nil
}

// LegalMoves lists every move the human side can make right now.
func (g *Game) LegalMoves() []checkers.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	moves := checkers.MovesForSide(&g.state.Board, checkers.SidePlayer)
	if moves == nil {
		moves = make([]checkers.Move, 0)
	}
	return moves
}

// MakeMove applies the human's move. A rejected move leaves the game as it was.
func (g *Game) MakeMove(playerID string, req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkHumanTurn(playerID); err != nil {
		return err
	}
	move, err := checkers.ValidateMove(&g.state.Board, checkers.SidePlayer, req.From, req.To)
	if err != nil {
		return err
	}

	elapsed := g.humanClock.Stop()
	ply, captured := makePly(&g.state.Board, checkers.SidePlayer, move)
	ply.ElapsedMs = elapsed.Milliseconds()
	if captured {
		g.state.CapturedPieces.Human++
	}
	g.finishPly(ply, move)
	log.Infow("human move", "game", g.ID, "move", ply.Notation, "status", g.state.Status.String())
	return nil
}

// PlayAITurn searches for and applies the computer's move. The search runs
// without holding the game lock; if the position changes meanwhile (a reset)
// the result is dropped with ErrStaleTurn.
func (g *Game) PlayAITurn() (checkers.Move, bool, error) {
	g.mu.Lock()
	if g.state.Status.IsOver() {
		g.mu.Unlock()
		return checkers.Move{}, false, ErrGameOver
	}
	if g.state.ToMove != checkers.SideOpponent {
		g.mu.Unlock()
		return checkers.Move{}, false, ErrNotYourTurn
	}
	board := g.state.Board
	version := g.version
	depth := g.depth
	g.state.AIThinking = true
	g.computerClock.Start()
	g.broadcast()
	g.mu.Unlock()

	start := time.Now()
	res := g.search(board, depth, checkers.SideOpponent)
	log.Debugw("search finished", "game", g.ID, "depth", depth, "score", res.Score,
		"nodes", res.Stats.Nodes, "cutoffs", res.Stats.Cutoffs, "elapsed", time.Since(start).String())

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.version != version {
		return checkers.Move{}, false, ErrStaleTurn
	}
	elapsed := g.computerClock.Stop()
	g.state.AIThinking = false

	if !res.Found {
		status := checkers.Classify(&g.state.Board)
		if !status.IsOver() {
			log.Errorw("search returned no move", "game", g.ID, "depth", depth, "nodes", res.Stats.Nodes)
			g.broadcast()
			return checkers.Move{}, false, ErrNoComputerMove
		}
		g.state.Status = status
		g.finishGame()
		g.broadcast()
		return checkers.Move{}, false, nil
	}

	ply, captured := makePly(&g.state.Board, checkers.SideOpponent, res.Move)
	ply.IsAI = true
	ply.ElapsedMs = elapsed.Milliseconds()
	if captured {
		g.state.CapturedPieces.Computer++
	}
	g.finishPly(ply, res.Move)
	log.Infow("computer move", "game", g.ID, "move", ply.Notation, "score", res.Score, "status", g.state.Status.String())
	return res.Move, true, nil
}

// finishPly records an applied move, passes the turn and checks for the end
// of the game.
func (g *Game) finishPly(ply Ply, move checkers.Move) {
	g.version++
	g.state.MoveHistory = append(g.state.MoveHistory, ply)
	g.state.LastMove = &move
	g.clearSelection()
	g.state.ToMove = ply.Side.Other()
	g.state.Status = checkers.Classify(&g.state.Board)
	if g.state.Status.IsOver() {
		g.finishGame()
	} else if g.state.ToMove == checkers.SidePlayer {
		g.humanClock.Start()
	}
	g.broadcast()
}

func (g *Game) finishGame() {
	g.state.Record.add(g.state.Status)
	g.humanClock.Stop()
	g.computerClock.Stop()
	log.Infow("game over", "game", g.ID, "status", g.state.Status.String(),
		"wins", g.state.Record.Wins, "losses", g.state.Record.Losses, "draws", g.state.Record.Draws)
}

func (g *Game) clearSelection() {
	g.state.SelectedSquare = nil
	g.state.LegalMoves = make([]checkers.Move, 0)
}

// Reset starts a fresh board with the same player. The win/loss/draw record
// is kept.
func (g *Game) Reset(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	players := g.state.Players
	g.state = newGameState(g.depth, g.state.Record)
	g.state.Players.Human.ID = players.Human.ID
	g.version++
	g.humanClock.Reset()
	g.computerClock.Reset()
	g.humanClock.Start()
	log.Infow("game reset", "game", g.ID, "player", playerID)
	g.broadcast()
	return nil
}

// RegisterConnection adds conn as the player's observer. A player keeps the
// first connection; a second one gets ErrDuplicateConnection and is left for
// the caller to close.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrDuplicateConnection
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infow("connection registered", "game", g.ID, "player", playerID, "conn", fmt.Sprintf("%p", conn))

	g.broadcast()
	return nil
}

// UnregisterConnection removes conn if it is still the player's registered
// connection.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Infow("connection unregistered", "game", g.ID, "player", playerID)
	}
}

// broadcast queues the current state for every observer. Callers hold g.mu,
// so snapshots are queued in the order the state changed.
func (g *Game) broadcast() {
	c := g.connections
	c.mu.RLock()
	observed := len(c.connections) > 0
	c.mu.RUnlock()
	if !observed {
		return
	}

	state := g.snapshot()
	c.queueMu.Lock()
	c.pending = append(c.pending, state)
	if !c.draining {
		c.draining = true
		go g.drainBroadcasts()
	}
	c.queueMu.Unlock()
}

func (g *Game) drainBroadcasts() {
	c := g.connections
	for {
		c.queueMu.Lock()
		if len(c.pending) == 0 {
			c.draining = false
			c.queueMu.Unlock()
			return
		}
		state := c.pending[0]
		c.pending[0] = GameState{}
		c.pending = c.pending[1:]
		c.queueMu.Unlock()

		g.broadcastState(state)
	}
}

func (g *Game) broadcastState(state GameState) {
	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	if len(activeConnections) == 0 {
		return
	}

	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("failed to marshal state for game %s: %v", g.ID, err)
		return
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state to player %s: %v", playerID, err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}

// WriteError sends an error message on conn, serialised with the state
// broadcasts of this game.
func (g *Game) WriteError(conn Conn, msg string) error {
	frame, err := ws.NewMessage(ws.MessageTypeError, msg)
	if err != nil {
		return err
	}
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(frame)
}
