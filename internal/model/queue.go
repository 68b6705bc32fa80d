package model

import (
	"errors"
	"sync"
	"time"
)

var ErrAlreadyQueued = errors.New("game already waiting for a computer move")

type QueuedTurn struct {
	GameID   string
	QueuedAt time.Time
}

// Queue holds games whose computer side is due to move, oldest first.
type Queue struct {
	turns []QueuedTurn
	mu    sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		turns: []QueuedTurn{},
	}
}

func (q *Queue) Add(gameID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.turns {
		if t.GameID == gameID {
			return ErrAlreadyQueued
		}
	}

	q.turns = append(q.turns, QueuedTurn{
		GameID:   gameID,
		QueuedAt: time.Now(),
	})
	return nil
}

// Next pops the game that has been waiting longest.
func (q *Queue) Next() (QueuedTurn, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.turns) == 0 {
		return QueuedTurn{}, false
	}
	turn := q.turns[0]
	q.turns = q.turns[1:]
	return turn, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.turns)
}
