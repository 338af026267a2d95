package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"listen-repeat/internal/report"
)

const schema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		startedAt REAL NOT NULL,
		endedAt REAL NOT NULL,
		score REAL NOT NULL,
		phonetic REAL NOT NULL,
		attempts INTEGER NOT NULL,
		modelId TEXT NOT NULL DEFAULT '',
		voice TEXT NOT NULL DEFAULT '',
		outputDir TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS attempts (
		sessionId TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		reference TEXT NOT NULL,
		transcript TEXT NOT NULL,
		status TEXT NOT NULL,
		similarity REAL NOT NULL,
		phonetic REAL NOT NULL,
		durationMs INTEGER NOT NULL,
		PRIMARY KEY (sessionId, idx)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(startedAt);
`

// Store - база истории сессий.
type Store struct {
	db *sql.DB
}

// Open открывает (и при необходимости создаёт) базу по пути path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close закрывает базу.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport сохраняет итог сессии и возвращает её ID.
func (s *Store) SaveReport(ctx context.Context, meta Meta, r report.Report) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, name, startedAt, endedAt, score, phonetic, attempts, modelId, voice, outputDir)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, meta.Name, unixFromTime(meta.StartedAt), unixFromTime(meta.EndedAt),
		r.Score, r.PhoneticScore(), len(r.Attempts), meta.ModelID, meta.Voice, meta.OutputDir); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	for _, a := range r.Attempts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO attempts (sessionId, idx, reference, transcript, status, similarity, phonetic, durationMs)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, a.Prompt.Index, a.Prompt.Text, a.Transcript, a.Status.String(),
			a.Similarity(), a.Phonetic, a.Duration.Milliseconds()); err != nil {
			return "", fmt.Errorf("insert attempt %d: %w", a.Prompt.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Recent возвращает последние limit сессий, новые первыми.
func (s *Store) Recent(ctx context.Context, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, startedAt, endedAt, score, phonetic, attempts, modelId, voice, outputDir
		FROM sessions
		ORDER BY startedAt DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var startedAt, endedAt float64
		if err := rows.Scan(&sess.ID, &sess.Name, &startedAt, &endedAt, &sess.Score, &sess.Phonetic,
			&sess.Attempts, &sess.ModelID, &sess.Voice, &sess.OutputDir); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.StartedAt = timeFromUnix(startedAt)
		sess.EndedAt = timeFromUnix(endedAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Attempts возвращает фразы сессии по порядку.
func (s *Store) Attempts(ctx context.Context, sessionID string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, reference, transcript, status, similarity, phonetic, durationMs
		FROM attempts
		WHERE sessionId = ?
		ORDER BY idx ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var durationMs int64
		if err := rows.Scan(&a.Index, &a.Reference, &a.Transcript, &a.Status,
			&a.Similarity, &a.Phonetic, &durationMs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Duration = time.Duration(durationMs) * time.Millisecond
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
