package model

import (
	"errors"
	"testing"

	"github.com/benbeisheim/checkers-backend/internal/checkers"
)

func sq(row, col int) checkers.Position {
	return checkers.Position{Row: row, Col: col}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("test-game", 1)
	if err := g.AddPlayer("alice"); err != nil {
		t.Fatalf("expected player to join, got %v", err)
	}
	return g
}

func TestAddPlayerSingleSeat(t *testing.T) {
	g := newTestGame(t)
	if err := g.AddPlayer("alice"); err != nil {
		t.Fatalf("expected rejoin to succeed, got %v", err)
	}
	if err := g.AddPlayer("bob"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}
	if !g.IsPlayerInGame("alice") || g.IsPlayerInGame("bob") {
		t.Fatalf("unexpected membership")
	}
}

func TestMakeMovePassesTurn(t *testing.T) {
	g := newTestGame(t)
	if err := g.MakeMove("alice", MoveRequest{From: sq(5, 0), To: sq(4, 1)}); err != nil {
		t.Fatalf("expected legal move, got %v", err)
	}
	state := g.GetState()
	if state.ToMove != checkers.SideOpponent {
		t.Fatalf("expected computer to move next, got %v", state.ToMove)
	}
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].Notation != "21-17" {
		t.Fatalf("expected one ply 21-17, got %+v", state.MoveHistory)
	}
	if state.Board.At(sq(4, 1)) != checkers.PlayerMan {
		t.Fatalf("expected man on (4,1)")
	}
	if !g.NeedsComputerMove() {
		t.Fatalf("expected computer move to be due")
	}
	if err := g.MakeMove("alice", MoveRequest{From: sq(5, 2), To: sq(4, 3)}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestMakeMoveRejectsWithoutMutation(t *testing.T) {
	g := newTestGame(t)
	before := g.GetState()

	cases := []struct {
		player string
		req    MoveRequest
		want   error
	}{
		{"bob", MoveRequest{From: sq(5, 0), To: sq(4, 1)}, ErrNotInGame},
		{"alice", MoveRequest{From: sq(5, 0), To: sq(3, 2)}, checkers.ErrIllegalMove},
		{"alice", MoveRequest{From: sq(4, 1), To: sq(3, 2)}, checkers.ErrEmptyOrigin},
		{"alice", MoveRequest{From: sq(2, 1), To: sq(3, 2)}, checkers.ErrWrongSideOrigin},
		{"alice", MoveRequest{From: sq(9, 0), To: sq(8, 1)}, checkers.ErrOutOfBounds},
	}
	for _, tc := range cases {
		if err := g.MakeMove(tc.player, tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v for %+v, got %v", tc.want, tc.req, err)
		}
	}

	after := g.GetState()
	if after.Board != before.Board || after.ToMove != before.ToMove || len(after.MoveHistory) != 0 {
		t.Fatalf("expected rejected moves to leave the game untouched")
	}
}

func TestPlayAITurn(t *testing.T) {
	g := newTestGame(t)
	if _, _, err := g.PlayAITurn(); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn before the human moved, got %v", err)
	}
	if err := g.MakeMove("alice", MoveRequest{From: sq(5, 2), To: sq(4, 3)}); err != nil {
		t.Fatalf("expected legal move, got %v", err)
	}

	move, found, err := g.PlayAITurn()
	if err != nil || !found {
		t.Fatalf("expected a computer move, got found=%v err=%v", found, err)
	}
	state := g.GetState()
	if state.ToMove != checkers.SidePlayer {
		t.Fatalf("expected human to move next, got %v", state.ToMove)
	}
	if state.AIThinking {
		t.Fatalf("expected thinking flag cleared")
	}
	if len(state.MoveHistory) != 2 || !state.MoveHistory[1].IsAI {
		t.Fatalf("expected a second, computer ply, got %+v", state.MoveHistory)
	}
	if state.LastMove == nil || *state.LastMove != move {
		t.Fatalf("expected last move %v, got %v", move, state.LastMove)
	}
	if state.Board.At(move.To) == checkers.Empty {
		t.Fatalf("expected computer piece on %v", move.To)
	}
}

func TestHumanCaptureWinsGame(t *testing.T) {
	g := newTestGame(t)
	var b checkers.Board
	b.Set(sq(5, 2), checkers.PlayerMan)
	b.Set(sq(4, 3), checkers.OpponentMan)
	g.state.Board = b

	if err := g.MakeMove("alice", MoveRequest{From: sq(5, 2), To: sq(3, 4)}); err != nil {
		t.Fatalf("expected capture to be legal, got %v", err)
	}
	state := g.GetState()
	if state.Status != checkers.StatusPlayerWins {
		t.Fatalf("expected playerWins, got %v", state.Status)
	}
	if state.CapturedPieces.Human != 1 || state.Record.Wins != 1 {
		t.Fatalf("expected capture tally 1 and one win, got %+v %+v", state.CapturedPieces, state.Record)
	}
	ply := state.MoveHistory[0]
	if ply.Captured == nil || *ply.Captured != sq(4, 3) || ply.Notation != "22x15" {
		t.Fatalf("unexpected ply %+v", ply)
	}
	if g.NeedsComputerMove() {
		t.Fatalf("expected no computer move after the game ended")
	}
	if err := g.MakeMove("alice", MoveRequest{From: sq(3, 4), To: sq(2, 3)}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if _, _, err := g.PlayAITurn(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver from computer turn, got %v", err)
	}
}

func TestComputerCaptureRecordsLoss(t *testing.T) {
	g := newTestGame(t)
	var b checkers.Board
	b.Set(sq(2, 1), checkers.OpponentMan)
	b.Set(sq(3, 2), checkers.PlayerMan)
	g.state.Board = b
	g.state.ToMove = checkers.SideOpponent

	move, found, err := g.PlayAITurn()
	if err != nil || !found {
		t.Fatalf("expected a computer move, got found=%v err=%v", found, err)
	}
	if !move.Capture {
		t.Fatalf("expected the computer to capture, got %v", move)
	}
	state := g.GetState()
	if state.Status != checkers.StatusOpponentWins || state.Record.Losses != 1 {
		t.Fatalf("expected opponentWins recorded as a loss, got %v %+v", state.Status, state.Record)
	}
	if state.CapturedPieces.Computer != 1 {
		t.Fatalf("expected computer capture tally 1, got %d", state.CapturedPieces.Computer)
	}
}

func TestPromotionIsRecorded(t *testing.T) {
	g := newTestGame(t)
	var b checkers.Board
	b.Set(sq(1, 2), checkers.PlayerMan)
	b.Set(sq(3, 6), checkers.OpponentMan)
	g.state.Board = b

	if err := g.MakeMove("alice", MoveRequest{From: sq(1, 2), To: sq(0, 1)}); err != nil {
		t.Fatalf("expected legal move, got %v", err)
	}
	state := g.GetState()
	if state.Board.At(sq(0, 1)) != checkers.PlayerKing || !state.MoveHistory[0].Promoted {
		t.Fatalf("expected promotion to king, got %v %+v", state.Board.At(sq(0, 1)), state.MoveHistory[0])
	}
}

func TestResetKeepsRecord(t *testing.T) {
	g := newTestGame(t)
	var b checkers.Board
	b.Set(sq(5, 2), checkers.PlayerMan)
	b.Set(sq(4, 3), checkers.OpponentMan)
	g.state.Board = b
	if err := g.MakeMove("alice", MoveRequest{From: sq(5, 2), To: sq(3, 4)}); err != nil {
		t.Fatalf("expected capture to be legal, got %v", err)
	}

	if err := g.Reset("bob"); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("expected ErrNotInGame, got %v", err)
	}
	if err := g.Reset("alice"); err != nil {
		t.Fatalf("expected reset to succeed, got %v", err)
	}
	state := g.GetState()
	if state.Board != checkers.NewBoard() || state.Status != checkers.StatusOngoing || state.ToMove != checkers.SidePlayer {
		t.Fatalf("expected a fresh game after reset")
	}
	if state.Record.Wins != 1 {
		t.Fatalf("expected record to survive reset, got %+v", state.Record)
	}
	if state.CapturedPieces != (CapturedPieces{}) || len(state.MoveHistory) != 0 {
		t.Fatalf("expected tallies and history cleared, got %+v %d", state.CapturedPieces, len(state.MoveHistory))
	}
	if state.Players.Human.ID != "alice" {
		t.Fatalf("expected player kept, got %q", state.Players.Human.ID)
	}
}

func TestSelect(t *testing.T) {
	g := newTestGame(t)
	moves, err := g.Select("alice", sq(5, 0))
	if err != nil {
		t.Fatalf("expected selection to succeed, got %v", err)
	}
	if len(moves) != 1 || moves[0].To != sq(4, 1) {
		t.Fatalf("expected single move to (4,1), got %v", moves)
	}
	state := g.GetState()
	if state.SelectedSquare == nil || *state.SelectedSquare != sq(5, 0) || len(state.LegalMoves) != 1 {
		t.Fatalf("expected selection recorded, got %+v", state.SelectedSquare)
	}

	if _, err := g.Select("alice", sq(4, 1)); !errors.Is(err, checkers.ErrEmptyOrigin) {
		t.Fatalf("expected ErrEmptyOrigin, got %v", err)
	}
	if g.GetState().SelectedSquare != nil {
		t.Fatalf("expected failed selection to clear the previous one")
	}
	if _, err := g.Select("alice", sq(2, 1)); !errors.Is(err, checkers.ErrWrongSideOrigin) {
		t.Fatalf("expected ErrWrongSideOrigin, got %v", err)
	}
	if got := len(g.LegalMoves()); got != 7 {
		t.Fatalf("expected 7 opening moves, got %d", got)
	}
}
