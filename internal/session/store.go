package session

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/mTW/pkg/core/apperror"
)

// Session represents one editing session bound to a table file
type Session struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents one chat turn within a session
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionRecord represents one executed command within a session
type ActionRecord struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Action     string    `json:"action"`
	Parameters string    `json:"parameters,omitempty"` // JSON-encoded command parameters
	Reasoning  string    `json:"reasoning,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store defines the interface for session persistence
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, file string) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, limit int) ([]*Session, error)

	// Chat history
	AppendMessage(ctx context.Context, sessionID, role, content, status string) error
	Messages(ctx context.Context, sessionID string) ([]*Message, error)

	// Executed commands
	AppendAction(ctx context.Context, sessionID, action, params, reasoning, status string) error
	Actions(ctx context.Context, sessionID string) ([]*ActionRecord, error)

	// Utility
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/sessions.db",
	}
}

// NewSQLiteStore creates a new SQLite-based session store
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperror.Wrap(err, "failed to create directory").
			WithCode(apperror.CodeStoreError).
			WithDetail("path", cfg.Path)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, apperror.Wrap(err, "failed to open database").
			WithCode(apperror.CodeStoreError).
			WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, apperror.Wrap(err, "failed to initialize schema").
			WithCode(apperror.CodeStoreError)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Sessions table
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		file TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Chat messages table
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	-- Executed actions table
	CREATE TABLE IF NOT EXISTS actions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		parameters TEXT,
		reasoning TEXT,
		status TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	-- Indices
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	CREATE INDEX IF NOT EXISTS idx_actions_session ON actions(session_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateSession creates a new session for the given file
func (s *SQLiteStore) CreateSession(ctx context.Context, file string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		File:      file,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, file, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, sess.ID, sess.File, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to create session").
			WithCode(apperror.CodeStoreError)
	}

	return sess, nil
}

// GetSession retrieves a session by ID, returning (nil, nil) when not found
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, file, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)

	var sess Session
	err := row.Scan(&sess.ID, &sess.File, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperror.Wrap(err, "failed to get session").
			WithCode(apperror.CodeStoreError)
	}

	return &sess, nil
}

// ListSessions returns sessions ordered by last update
func (s *SQLiteStore) ListSessions(ctx context.Context, limit int) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file, created_at, updated_at
		FROM sessions
		ORDER BY updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to list sessions").
			WithCode(apperror.CodeStoreError)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.File, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, apperror.Wrap(err, "failed to scan session").
				WithCode(apperror.CodeStoreError)
		}
		sessions = append(sessions, &sess)
	}

	return sessions, nil
}

// AppendMessage records a chat turn and bumps the session timestamp
func (s *SQLiteStore) AppendMessage(ctx context.Context, sessionID, role, content, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		return apperror.New("session ID is required").WithCode(apperror.CodeStoreError)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, "failed to begin transaction").
			WithCode(apperror.CodeStoreError)
	}
	defer tx.Rollback()

	// Bump the session timestamp first so a missing session fails early
	res, err := tx.ExecContext(ctx, `
		UPDATE sessions SET updated_at = ? WHERE id = ?
	`, time.Now(), sessionID)
	if err != nil {
		return apperror.Wrap(err, "failed to update session timestamp").
			WithCode(apperror.CodeStoreError)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.Newf("session not found: %s", sessionID).
			WithCode(apperror.CodeStoreError)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO messages (session_id, role, content, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, role, content, status, time.Now())
	if err != nil {
		return apperror.Wrap(err, "failed to append message").
			WithCode(apperror.CodeStoreError)
	}

	return tx.Commit()
}

// Messages retrieves all chat turns for a session in insertion order
func (s *SQLiteStore) Messages(ctx context.Context, sessionID string) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, status, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to get messages").
			WithCode(apperror.CodeStoreError)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.Status, &msg.CreatedAt); err != nil {
			return nil, apperror.Wrap(err, "failed to scan message").
				WithCode(apperror.CodeStoreError)
		}
		messages = append(messages, &msg)
	}

	return messages, nil
}

// AppendAction records an executed command and bumps the session timestamp
func (s *SQLiteStore) AppendAction(ctx context.Context, sessionID, action, params, reasoning, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		return apperror.New("session ID is required").WithCode(apperror.CodeStoreError)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, "failed to begin transaction").
			WithCode(apperror.CodeStoreError)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE sessions SET updated_at = ? WHERE id = ?
	`, time.Now(), sessionID)
	if err != nil {
		return apperror.Wrap(err, "failed to update session timestamp").
			WithCode(apperror.CodeStoreError)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.Newf("session not found: %s", sessionID).
			WithCode(apperror.CodeStoreError)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO actions (session_id, action, parameters, reasoning, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, action, params, reasoning, status, time.Now())
	if err != nil {
		return apperror.Wrap(err, "failed to append action").
			WithCode(apperror.CodeStoreError)
	}

	return tx.Commit()
}

// Actions retrieves all executed commands for a session in insertion order
func (s *SQLiteStore) Actions(ctx context.Context, sessionID string) ([]*ActionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, action, parameters, reasoning, status, created_at
		FROM actions
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to get actions").
			WithCode(apperror.CodeStoreError)
	}
	defer rows.Close()

	var actions []*ActionRecord
	for rows.Next() {
		var rec ActionRecord
		var params, reasoning sql.NullString
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Action, &params, &reasoning, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, apperror.Wrap(err, "failed to scan action").
				WithCode(apperror.CodeStoreError)
		}
		rec.Parameters = params.String
		rec.Reasoning = reasoning.String
		actions = append(actions, &rec)
	}

	return actions, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory implementation for disabled persistence and tests
type MemoryStore struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	messages      map[string][]*Message
	actions       map[string][]*ActionRecord
	nextMessageID int64
	nextActionID  int64
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		messages: make(map[string][]*Message),
		actions:  make(map[string][]*ActionRecord),
	}
}

// CreateSession creates a new session for the given file
func (s *MemoryStore) CreateSession(ctx context.Context, file string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		File:      file,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.sessions[sess.ID] = sess
	s.messages[sess.ID] = []*Message{}
	s.actions[sess.ID] = []*ActionRecord{}
	return sess, nil
}

// GetSession retrieves a session by ID, returning (nil, nil) when not found
func (s *MemoryStore) GetSession(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return sess, nil
}

// ListSessions returns sessions ordered by last update
func (s *MemoryStore) ListSessions(ctx context.Context, limit int) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var all []*Session
	for _, sess := range s.sessions {
		all = append(all, sess)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// AppendMessage records a chat turn and bumps the session timestamp
func (s *MemoryStore) AppendMessage(ctx context.Context, sessionID, role, content, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return apperror.Newf("session not found: %s", sessionID).
			WithCode(apperror.CodeStoreError)
	}

	s.nextMessageID++
	s.messages[sessionID] = append(s.messages[sessionID], &Message{
		ID:        s.nextMessageID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Status:    status,
		CreatedAt: time.Now(),
	})
	sess.UpdatedAt = time.Now()
	return nil
}

// Messages retrieves all chat turns for a session in insertion order
func (s *MemoryStore) Messages(ctx context.Context, sessionID string) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.messages[sessionID], nil
}

// AppendAction records an executed command and bumps the session timestamp
func (s *MemoryStore) AppendAction(ctx context.Context, sessionID, action, params, reasoning, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return apperror.Newf("session not found: %s", sessionID).
			WithCode(apperror.CodeStoreError)
	}

	s.nextActionID++
	s.actions[sessionID] = append(s.actions[sessionID], &ActionRecord{
		ID:         s.nextActionID,
		SessionID:  sessionID,
		Action:     action,
		Parameters: params,
		Reasoning:  reasoning,
		Status:     status,
		CreatedAt:  time.Now(),
	})
	sess.UpdatedAt = time.Now()
	return nil
}

// Actions retrieves all executed commands for a session in insertion order
func (s *MemoryStore) Actions(ctx context.Context, sessionID string) ([]*ActionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.actions[sessionID], nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
