package session

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "sessions.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Path != "./data/sessions.db" {
		t.Errorf("Path = %v, want ./data/sessions.db", cfg.Path)
	}
}

func TestSQLiteStore_CreateAndGetSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "umsatz.csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if sess.ID == "" {
		t.Error("CreateSession() should assign an ID")
	}
	if sess.File != "umsatz.csv" {
		t.Errorf("File = %v, want umsatz.csv", sess.File)
	}
	if sess.CreatedAt.IsZero() || sess.UpdatedAt.IsZero() {
		t.Error("CreateSession() should set timestamps")
	}

	got, err := store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetSession() returned nil for existing session")
	}
	if got.ID != sess.ID || got.File != sess.File {
		t.Errorf("GetSession() = %+v, want %+v", got, sess)
	}
}

func TestSQLiteStore_GetSessionNotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetSession(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetSession() = %+v, want nil for unknown ID", got)
	}
}

func TestSQLiteStore_ListSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateSession(ctx, "a.csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := store.CreateSession(ctx, "b.csv"); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := store.CreateSession(ctx, "c.csv"); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	// Appending to the oldest session moves it to the front
	time.Sleep(10 * time.Millisecond)
	if err := store.AppendMessage(ctx, first.ID, "user", "lösche Zeile 3", ""); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}

	sessions, err := store.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("ListSessions() returned %d sessions, want 3", len(sessions))
	}
	if sessions[0].File != "a.csv" {
		t.Errorf("sessions[0].File = %v, want a.csv (most recently updated)", sessions[0].File)
	}
	if sessions[1].File != "c.csv" || sessions[2].File != "b.csv" {
		t.Errorf("order = [%s %s %s], want [a.csv c.csv b.csv]",
			sessions[0].File, sessions[1].File, sessions[2].File)
	}

	limited, err := store.ListSessions(ctx, 2)
	if err != nil {
		t.Fatalf("ListSessions(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListSessions(2) returned %d sessions, want 2", len(limited))
	}
}

func TestSQLiteStore_Messages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "umsatz.csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	turns := []struct {
		role, content, status string
	}{
		{"user", "lösche Zeile 3", ""},
		{"assistant", "Row 3 deleted", "success"},
		{"user", "mache das rückgängig", ""},
	}
	for _, turn := range turns {
		if err := store.AppendMessage(ctx, sess.ID, turn.role, turn.content, turn.status); err != nil {
			t.Fatalf("AppendMessage() error = %v", err)
		}
	}

	msgs, err := store.Messages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("Messages() returned %d messages, want 3", len(msgs))
	}
	for i, turn := range turns {
		if msgs[i].Role != turn.role || msgs[i].Content != turn.content || msgs[i].Status != turn.status {
			t.Errorf("msgs[%d] = %+v, want %+v", i, msgs[i], turn)
		}
		if msgs[i].SessionID != sess.ID {
			t.Errorf("msgs[%d].SessionID = %v, want %v", i, msgs[i].SessionID, sess.ID)
		}
	}
	if msgs[0].ID >= msgs[1].ID || msgs[1].ID >= msgs[2].ID {
		t.Errorf("message IDs not ascending: %d, %d, %d", msgs[0].ID, msgs[1].ID, msgs[2].ID)
	}
}

func TestSQLiteStore_AppendMessageBumpsTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "umsatz.csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := store.AppendMessage(ctx, sess.ID, "user", "hallo", ""); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}

	got, err := store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if !got.UpdatedAt.After(sess.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", got.UpdatedAt, sess.UpdatedAt)
	}
}

func TestSQLiteStore_AppendMessageUnknownSession(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendMessage(context.Background(), "does-not-exist", "user", "hallo", "")
	if err == nil {
		t.Fatal("AppendMessage() expected error for unknown session")
	}
	if !strings.Contains(err.Error(), "session not found") {
		t.Errorf("error = %v, want session not found", err)
	}
}

func TestSQLiteStore_Actions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "umsatz.csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := store.AppendAction(ctx, sess.ID, "delete_row", `{"row_index": 3}`, "user asked to remove row 3", "success"); err != nil {
		t.Fatalf("AppendAction() error = %v", err)
	}
	if err := store.AppendAction(ctx, sess.ID, "undo_last", "", "", "success"); err != nil {
		t.Fatalf("AppendAction() error = %v", err)
	}

	actions, err := store.Actions(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Actions() error = %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("Actions() returned %d actions, want 2", len(actions))
	}
	if actions[0].Action != "delete_row" {
		t.Errorf("actions[0].Action = %v, want delete_row", actions[0].Action)
	}
	if actions[0].Parameters != `{"row_index": 3}` {
		t.Errorf("actions[0].Parameters = %v", actions[0].Parameters)
	}
	if actions[0].Reasoning != "user asked to remove row 3" {
		t.Errorf("actions[0].Reasoning = %v", actions[0].Reasoning)
	}
	if actions[1].Action != "undo_last" || actions[1].Parameters != "" || actions[1].Reasoning != "" {
		t.Errorf("actions[1] = %+v, want undo_last with empty params", actions[1])
	}
	if actions[0].ID >= actions[1].ID {
		t.Errorf("action IDs not ascending: %d, %d", actions[0].ID, actions[1].ID)
	}
}

func TestSQLiteStore_ReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(Config{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	sess, err := store.CreateSession(ctx, "umsatz.csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if err := store.AppendMessage(ctx, sess.ID, "user", "hallo", ""); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStore(Config{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got == nil || got.File != "umsatz.csv" {
		t.Errorf("GetSession() after reopen = %+v", got)
	}

	msgs, err := reopened.Messages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hallo" {
		t.Errorf("Messages() after reopen = %+v", msgs)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "umsatz.csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if sess.ID == "" {
		t.Error("CreateSession() should assign an ID")
	}

	got, err := store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got == nil || got.File != "umsatz.csv" {
		t.Errorf("GetSession() = %+v", got)
	}

	missing, err := store.GetSession(ctx, "does-not-exist")
	if err != nil || missing != nil {
		t.Errorf("GetSession(unknown) = %+v, %v, want nil, nil", missing, err)
	}

	if err := store.AppendMessage(ctx, sess.ID, "user", "lösche Zeile 3", ""); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	if err := store.AppendMessage(ctx, sess.ID, "assistant", "Row 3 deleted", "success"); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	msgs, err := store.Messages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) != 2 || msgs[0].Content != "lösche Zeile 3" || msgs[1].Role != "assistant" {
		t.Errorf("Messages() = %+v", msgs)
	}
	if msgs[0].ID >= msgs[1].ID {
		t.Errorf("message IDs not ascending: %d, %d", msgs[0].ID, msgs[1].ID)
	}

	if err := store.AppendAction(ctx, sess.ID, "delete_row", `{"row_index": 3}`, "", "success"); err != nil {
		t.Fatalf("AppendAction() error = %v", err)
	}
	actions, err := store.Actions(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Actions() error = %v", err)
	}
	if len(actions) != 1 || actions[0].Action != "delete_row" {
		t.Errorf("Actions() = %+v", actions)
	}
}

func TestMemoryStore_AppendUnknownSession(t *testing.T) {
	store := NewMemoryStore()

	if err := store.AppendMessage(context.Background(), "nope", "user", "hallo", ""); err == nil {
		t.Error("AppendMessage() expected error for unknown session")
	}
	if err := store.AppendAction(context.Background(), "nope", "delete_row", "", "", ""); err == nil {
		t.Error("AppendAction() expected error for unknown session")
	}
}

func TestMemoryStore_ListSessions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.CreateSession(ctx, "a.csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := store.CreateSession(ctx, "b.csv"); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if err := store.AppendMessage(ctx, first.ID, "user", "hallo", ""); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}

	sessions, err := store.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("ListSessions() returned %d sessions, want 2", len(sessions))
	}
	if sessions[0].File != "a.csv" {
		t.Errorf("sessions[0].File = %v, want a.csv (bumped by append)", sessions[0].File)
	}

	limited, err := store.ListSessions(ctx, 1)
	if err != nil {
		t.Fatalf("ListSessions(1) error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("ListSessions(1) returned %d sessions, want 1", len(limited))
	}
}

// Both implementations satisfy the Store interface
var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
