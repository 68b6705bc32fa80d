package checkers

import "fmt"

// SquareNumber maps a dark square to its draughts number, 1 to 32, counted
// from row 0 left to right. Light squares return 0.
func SquareNumber(pos Position) int {
	if !pos.InBounds() || (pos.Row+pos.Col)%2 != 1 {
		return 0
	}
	return pos.Row*(Cols/2) + pos.Col/2 + 1
}

// Notation renders a move as "11-15" or "22x15".
func Notation(m Move) string {
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	return fmt.Sprintf("%d%s%d", SquareNumber(m.From), sep, SquareNumber(m.To))
}
