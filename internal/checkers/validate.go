package checkers

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("square out of bounds")
	ErrEmptyOrigin     = errors.New("no piece on origin square")
	ErrWrongSideOrigin = errors.New("piece belongs to the other side")
	ErrIllegalMove     = errors.New("move is not legal")
)

// ValidateOrigin checks that pos is on the board and holds a piece of side.
func ValidateOrigin(b *Board, side Side, pos Position) error {
	if !pos.InBounds() {
		return fmt.Errorf("origin %v: %w", pos, ErrOutOfBounds)
	}
	owner, ok := b.At(pos).Owner()
	if !ok {
		return fmt.Errorf("origin %v: %w", pos, ErrEmptyOrigin)
	}
	if owner != side {
		return fmt.Errorf("origin %v: %w", pos, ErrWrongSideOrigin)
	}
	return nil
}

// ValidateMove resolves a caller-supplied (from, to) pair for side into the
// generated move with that destination. The board is never modified.
func ValidateMove(b *Board, side Side, from, to Position) (Move, error) {
	if err := ValidateOrigin(b, side, from); err != nil {
		return Move{}, err
	}
	if !to.InBounds() {
		return Move{}, fmt.Errorf("destination %v: %w", to, ErrOutOfBounds)
	}
	for _, m := range MovesForPiece(b, from) {
		if m.To == to {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%v to %v: %w", from, to, ErrIllegalMove)
}
