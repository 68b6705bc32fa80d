package checkers

import "fmt"

type Status int

const (
	StatusOngoing Status = iota
	StatusPlayerWins
	StatusOpponentWins
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusPlayerWins:
		return "playerWins"
	case StatusOpponentWins:
		return "opponentWins"
	case StatusDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for candidate := StatusOngoing; candidate <= StatusDraw; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

func (s Status) IsOver() bool {
	return s != StatusOngoing
}

// Classify decides the game from mobility alone. A side without a legal move
// loses; when neither side can move the game is drawn. It does not depend on
// whose turn it is.
func Classify(b *Board) Status {
	playerCanMove := HasMoves(b, SidePlayer)
	opponentCanMove := HasMoves(b, SideOpponent)
	switch {
	case !playerCanMove && !opponentCanMove:
		return StatusDraw
	case !playerCanMove:
		return StatusOpponentWins
	case !opponentCanMove:
		return StatusPlayerWins
	}
	return StatusOngoing
}
