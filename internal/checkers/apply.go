package checkers

// ApplyMove moves the piece on m.From to m.To, removes the jumped piece for a
// capture and promotes a man that lands on its promotion row. It mutates b in
// place and reports whether a piece was captured. The move is not validated;
// use ValidateMove for caller-supplied input.
func ApplyMove(b *Board, m Move) bool {
	piece := b.At(m.From)
	b.Clear(m.From)
	b.Set(m.To, piece)

	captured := false
	if m.Capture {
		b.Clear(m.Jumped)
		captured = true
	}

	if side, ok := piece.Owner(); ok && piece == side.Man() && m.To.Row == side.PromotionRow() {
		b.Set(m.To, side.King())
	}
	return captured
}

// Evaluate is the material balance of the board: men count 1 and kings 2,
// positive for the Player and negative for the Opponent.
func Evaluate(b *Board) int {
	score := 0
	for row := range b {
		for _, p := range b[row] {
			switch p {
			case PlayerMan:
				score++
			case PlayerKing:
				score += 2
			case OpponentMan:
				score--
			case OpponentKing:
				score -= 2
			}
		}
	}
	return score
}
