// service/game_manager.go
package service

import (
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type GameManager struct {
	games    map[string]*model.Game
	aiQueue  *model.Queue
	depth    int
	interval time.Duration
	notify   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
}

func NewGameManager(depth int, interval time.Duration) *GameManager {
	gm := &GameManager{
		games:    make(map[string]*model.Game),
		aiQueue:  model.NewQueue(),
		depth:    depth,
		interval: interval,
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	// Start the computer-move worker
	go gm.processAITurns()

	return gm
}

// Stop ends the worker goroutine. Queued turns are abandoned.
func (gm *GameManager) Stop() {
	gm.stopOnce.Do(func() { close(gm.done) })
}

// processAITurns plays queued computer turns one at a time. The ticker picks
// up anything a missed notification left behind.
func (gm *GameManager) processAITurns() {
	ticker := time.NewTicker(gm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.done:
			return
		case <-gm.notify:
		case <-ticker.C:
		}

		for {
			turn, ok := gm.aiQueue.Next()
			if !ok {
				break
			}
			gm.playTurn(turn)
		}
	}
}

func (gm *GameManager) playTurn(turn model.QueuedTurn) {
	game, err := gm.GetGame(turn.GameID)
	if err != nil {
		log.Warnf("dropping computer turn for game %s: %v", turn.GameID, err)
		return
	}
	move, found, err := game.PlayAITurn()
	if err != nil {
		log.Warnw("computer turn skipped", "game", turn.GameID, "error", err.Error())
		return
	}
	log.Debugw("computer turn played", "game", turn.GameID, "found", found, "move", move.String(),
		"waited", time.Since(turn.QueuedAt).String())
}

// ScheduleAITurn queues the game for a computer move if one is due.
func (gm *GameManager) ScheduleAITurn(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if !game.NeedsComputerMove() {
		return nil
	}
	if err := gm.aiQueue.Add(gameID); err != nil {
		if errors.Is(err, model.ErrAlreadyQueued) {
			return nil
		}
		return err
	}
	select {
	case gm.notify <- struct{}{}:
	default:
	}
	return nil
}

func (gm *GameManager) CreateGame(playerID string) (string, error) {
	gameID := uuid.New().String()
	game := model.NewGame(gameID, gm.depth)
	if err := game.AddPlayer(playerID); err != nil {
		return "", err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if _, exists := gm.games[gameID]; exists {
		return "", errors.New("game already exists")
	}
	gm.games[gameID] = game
	log.Infow("game created", "game", gameID, "player", playerID, "depth", gm.depth)
	return gameID, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(playerID, move); err != nil {
		return err
	}
	return gm.ScheduleAITurn(gameID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
