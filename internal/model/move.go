package model

import "github.com/benbeisheim/checkers-backend/internal/checkers"

// MoveRequest is what a client sends: the origin and destination squares.
// The captured square is derived from the generated move.
type MoveRequest struct {
	From checkers.Position `json:"from"`
	To   checkers.Position `json:"to"`
}

type SelectRequest struct {
	Square checkers.Position `json:"square"`
}

type Ply struct {
	Side      checkers.Side      `json:"side"`
	From      checkers.Position  `json:"from"`
	To        checkers.Position  `json:"to"`
	Captured  *checkers.Position `json:"captured"`
	Promoted  bool               `json:"promoted"`
	Notation  string             `json:"notation"`
	IsAI      bool               `json:"isAi"`
	ElapsedMs int64              `json:"elapsedMs"`
}

// CapturedPieces counts the enemy pieces each side has taken.
type CapturedPieces struct {
	Human    int `json:"human"`
	Computer int `json:"computer"`
}

// Record tallies finished games from the human's point of view. It survives
// Reset.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (r *Record) add(status checkers.Status) {
	switch status {
	case checkers.StatusPlayerWins:
		r.Wins++
	case checkers.StatusOpponentWins:
		r.Losses++
	case checkers.StatusDraw:
		r.Draws++
	}
}

// makePly applies m to b and describes it for the move history.
func makePly(b *checkers.Board, side checkers.Side, m checkers.Move) (Ply, bool) {
	wasMan := b.At(m.From) == side.Man()
	captured := checkers.ApplyMove(b, m)
	ply := Ply{
		Side:     side,
		From:     m.From,
		To:       m.To,
		Promoted: wasMan && b.At(m.To) == side.King(),
		Notation: checkers.Notation(m),
	}
	if captured {
		jumped := m.Jumped
		ply.Captured = &jumped
	}
	return ply, captured
}
