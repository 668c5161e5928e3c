package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// Contact form submission
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Privacy-conscious visitor record
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	TotalMessages    int64           `json:"total_messages"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TopPaths         []PathStat      `json:"top_paths"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// Store keeps visitor metrics and contact messages in SQLite.
type Store struct {
	db *sql.DB
}

func openStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer; an in-memory database also lives on
	// exactly one connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,  -- Store hashed IP instead of raw IP
			user_agent TEXT,
			path TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT,
			body TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) RecordVisit(hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, at.UTC())
	return err
}

// CleanupVisitors removes visitor records older than the retention window
// and returns how many were deleted.
func (s *Store) CleanupVisitors(retention time.Duration, now time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, now.Add(-retention).UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) RecentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := s.db.Query(`
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			log.Printf("Error scanning visitor row: %v", err)
			continue
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (s *Store) SaveMessage(m *Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	result, err := s.db.Exec(`
		INSERT INTO messages (name, email, subject, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.Name, m.Email, m.Subject, m.Body, m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	m.ID, err = result.LastInsertId()
	return err
}

func (s *Store) Messages() ([]Message, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, COALESCE(subject, ''), body, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			log.Printf("Error scanning message row: %v", err)
			continue
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteMessage reports whether a message with id existed.
func (s *Store) DeleteMessage(id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// Stats gathers the admin dashboard numbers as of now.
func (s *Store) Stats(now time.Time) (*AdminStats, error) {
	stats := &AdminStats{}
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM messages`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{midnight}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	if stats.TopPaths, err = s.topPaths(10); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats.RecentVisitors, err = s.RecentVisitors(50)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

func (s *Store) topPaths(limit int) ([]PathStat, error) {
	rows, err := s.db.Query(`
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []PathStat
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			continue
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
