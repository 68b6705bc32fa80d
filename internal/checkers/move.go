package checkers

import "fmt"

// Move is a single diagonal step, or a single jump over an adjacent enemy
// piece when Capture is set. Jumped is only meaningful for captures.
type Move struct {
	From    Position `json:"from"`
	To      Position `json:"to"`
	Capture bool     `json:"capture"`
	Jumped  Position `json:"jumped"`
}

func (m Move) String() string {
	if m.Capture {
		return fmt.Sprintf("%vx%v", m.From, m.To)
	}
	return fmt.Sprintf("%v-%v", m.From, m.To)
}

type direction struct {
	dRow, dCol int
}

// directionsFor lists the diagonals a piece may move along. Men get their two
// forward diagonals; kings add the mirrored pair after them.
func directionsFor(p Piece) []direction {
	side, ok := p.Owner()
	if !ok {
		return nil
	}
	fwd := side.Forward()
	dirs := []direction{{fwd, -1}, {fwd, 1}}
	if p.IsKing() {
		dirs = append(dirs, direction{-fwd, 1}, direction{-fwd, -1})
	}
	return dirs
}

// MovesForPiece returns the legal moves of the piece standing on pos. If the
// piece has any capture, only its captures are returned.
func MovesForPiece(b *Board, pos Position) []Move {
	if !pos.InBounds() {
		return nil
	}
	piece := b.At(pos)
	side, ok := piece.Owner()
	if !ok {
		return nil
	}

	var steps, captures []Move
	for _, dir := range directionsFor(piece) {
		next := pos.step(dir, 1)
		if !next.InBounds() {
			continue
		}
		target := b.At(next)
		if target == Empty {
			steps = append(steps, Move{From: pos, To: next})
			continue
		}
		if !side.Other().Owns(target) {
			continue
		}
		landing := pos.step(dir, 2)
		if landing.InBounds() && b.At(landing) == Empty {
			captures = append(captures, Move{From: pos, To: landing, Capture: true, Jumped: next})
		}
	}

	if len(captures) > 0 {
		return captures
	}
	return steps
}

// MovesForSide collects MovesForPiece for every piece of side, scanning rows
// then columns. Capture priority applies per piece only: one piece's capture
// does not suppress another piece's simple moves.
func MovesForSide(b *Board, side Side) []Move {
	var moves []Move
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if !side.Owns(b[row][col]) {
				continue
			}
			moves = append(moves, MovesForPiece(b, Position{Row: row, Col: col})...)
		}
	}
	return moves
}

// HasMoves reports whether side has at least one legal move. It stops at the
// first piece that can move.
func HasMoves(b *Board, side Side) bool {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if !side.Owns(b[row][col]) {
				continue
			}
			if len(MovesForPiece(b, Position{Row: row, Col: col})) > 0 {
				return true
			}
		}
	}
	return false
}
