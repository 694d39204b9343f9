package domain

import "time"

// GameRecord is the stored form of a finished session.
type GameRecord struct {
	ID         string              `json:"id"`
	Transport  string              `json:"transport"`
	RemoteAddr string              `json:"remote_addr"`
	Status     GameStatus          `json:"status"`
	Winner     Side                `json:"winner"`
	Reason     string              `json:"reason,omitempty"`
	Moves      []Move              `json:"moves"`
	Board      [Rows][Columns]Side `json:"board_state"`
	CreatedAt  time.Time           `json:"created_at"`
	FinishedAt time.Time           `json:"finished_at"`
}
