package model

import "github.com/benbeisheim/checkers-backend/internal/checkers"

// ComputerID names the engine-controlled seat in client payloads.
const ComputerID = "computer"

type ClientPlayer struct {
	ID         string        `json:"name"`
	Side       checkers.Side `json:"side"`
	IsAI       bool          `json:"isAi"`
	ThinkingMs int64         `json:"thinkingMs"`
}

type Players struct {
	Human    ClientPlayer `json:"human"`
	Computer ClientPlayer `json:"computer"`
}

func newPlayers() Players {
	return Players{
		Human:    ClientPlayer{Side: checkers.SidePlayer},
		Computer: ClientPlayer{ID: ComputerID, Side: checkers.SideOpponent, IsAI: true},
	}
}
