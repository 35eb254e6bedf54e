package model

import "time"

// GameID identifies a mini-game variant
type GameID string

const (
	GameSnake  GameID = "snake"
	GameTyping GameID = "typing"
	GameAim    GameID = "aim"
	GameMemory GameID = "memory"
)

// GameResult is produced once per mini-game run and consumed exactly once
// by the progression engine's reward hand-off.
type GameResult struct {
	RunID      string // unique per run
	GameID     GameID
	Score      int
	ScoreLabel string // "SCORE", "WPM", "HITS"
	FinishedAt time.Time
}
