package checkers

import "fmt"

const (
	Rows = 8
	Cols = 8
)

type Piece int

const (
	Empty Piece = iota
	PlayerMan
	PlayerKing
	OpponentMan
	OpponentKing
)

func (p Piece) String() string {
	switch p {
	case PlayerMan:
		return "playerMan"
	case PlayerKing:
		return "playerKing"
	case OpponentMan:
		return "opponentMan"
	case OpponentKing:
		return "opponentKing"
	default:
		return "empty"
	}
}

func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Piece) UnmarshalText(text []byte) error {
	for candidate := Empty; candidate <= OpponentKing; candidate++ {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown piece %q", text)
}

func (p Piece) IsKing() bool {
	return p == PlayerKing || p == OpponentKing
}

// Owner reports the side a piece belongs to. Empty squares have no owner.
func (p Piece) Owner() (Side, bool) {
	switch p {
	case PlayerMan, PlayerKing:
		return SidePlayer, true
	case OpponentMan, OpponentKing:
		return SideOpponent, true
	}
	return SidePlayer, false
}

// Side is one of the two players. The Player advances toward row 0 and the
// Opponent toward row 7.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	if s == SideOpponent {
		return "opponent"
	}
	return "player"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player":
		*s = SidePlayer
	case "opponent":
		*s = SideOpponent
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

func (s Side) Man() Piece {
	if s == SidePlayer {
		return PlayerMan
	}
	return OpponentMan
}

func (s Side) King() Piece {
	if s == SidePlayer {
		return PlayerKing
	}
	return OpponentKing
}

// Forward is the row delta of a man's move.
func (s Side) Forward() int {
	if s == SidePlayer {
		return -1
	}
	return 1
}

func (s Side) PromotionRow() int {
	if s == SidePlayer {
		return 0
	}
	return Rows - 1
}

func (s Side) Owns(p Piece) bool {
	return p == s.Man() || p == s.King()
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

func (p Position) step(dir direction, n int) Position {
	return Position{Row: p.Row + dir.dRow*n, Col: p.Col + dir.dCol*n}
}

// Board is a value type: assigning it copies every square, which is how the
// search keeps sibling branches isolated.
type Board [Rows][Cols]Piece

// NewBoard returns the standard opening layout: Opponent men on the dark
// squares of rows 0-2, Player men on the dark squares of rows 5-7.
func NewBoard() Board {
	var b Board
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if (row+col)%2 != 1 {
				continue
			}
			switch {
			case row < 3:
				b[row][col] = OpponentMan
			case row > 4:
				b[row][col] = PlayerMan
			}
		}
	}
	return b
}

func (b *Board) At(pos Position) Piece {
	return b[pos.Row][pos.Col]
}

func (b *Board) Set(pos Position, p Piece) {
	b[pos.Row][pos.Col] = p
}

func (b *Board) Clear(pos Position) {
	b[pos.Row][pos.Col] = Empty
}

// Count returns how many squares hold the given piece.
func (b *Board) Count(p Piece) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == p {
				n++
			}
		}
	}
	return n
}
