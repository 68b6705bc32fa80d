package service

import (
	"fmt"

	"github.com/benbeisheim/checkers-backend/internal/checkers"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(playerID string) (string, error) {
	gameID, err := gs.gameManager.CreateGame(playerID)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) error {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// LegalMoves lists the human's moves, for one piece when square is set or
// for the whole side otherwise.
func (gs *GameService) LegalMoves(gameID string, playerID string, square *checkers.Position) ([]checkers.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if square != nil {
		return game.Select(playerID, *square)
	}
	if !game.IsPlayerInGame(playerID) {
		return nil, model.ErrNotInGame
	}
	return game.LegalMoves(), nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.MoveRequest) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		return err
	}

	return nil
}

func (gs *GameService) ResetGame(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Reset(playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// WriteError sends an error frame on conn using the game's write lock, or
// directly when the game is unknown.
func (gs *GameService) WriteError(gameID string, conn *websocket.Conn, msg string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		frame, err := ws.NewMessage(ws.MessageTypeError, msg)
		if err != nil {
			return err
		}
		return conn.WriteJSON(frame)
	}
	return game.WriteError(conn, msg)
}
