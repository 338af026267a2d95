// Package history хранит завершённые сессии в SQLite.
package history

import "time"

// Meta описывает сессию при сохранении.
type Meta struct {
	Name      string // имя набора фраз
	StartedAt time.Time
	EndedAt   time.Time
	ModelID   string
	Voice     string
	OutputDir string
}

// Session - сохранённая сессия.
type Session struct {
	ID        string
	Name      string
	StartedAt time.Time
	EndedAt   time.Time
	Score     float64
	Phonetic  float64
	Attempts  int
	ModelID   string
	Voice     string
	OutputDir string
}

// Attempt - сохранённая фраза сессии.
type Attempt struct {
	Index      int
	Reference  string
	Transcript string
	Status     string
	Similarity float64
	Phonetic   float64
	Duration   time.Duration
}
