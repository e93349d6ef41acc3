package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Tachoss/doodlechemy-playground/game/config"
	"github.com/Tachoss/doodlechemy-playground/game/engine"
	"github.com/Tachoss/doodlechemy-playground/game/service"
)

func newSQLitePersistence(t *testing.T) *SQLitePersistence {
	t.Helper()
	catalogs, err := config.NewManager("")
	if err != nil {
		t.Fatalf("config.NewManager failed: %v", err)
	}
	sp, err := NewSQLitePersistence(filepath.Join(t.TempDir(), "sessions.db"), catalogs)
	if err != nil {
		t.Fatalf("NewSQLitePersistence failed: %v", err)
	}
	t.Cleanup(func() { sp.Close() })
	return sp
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	sp := newSQLitePersistence(t)
	sess := playedSession(t, "db01")

	if err := sp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !sp.Exists("db01") {
		t.Fatal("saved session should exist")
	}

	loaded, err := sp.Load("db01")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s := loaded.Engine.Progress().GameState
	if s.Score != 10 || len(s.Discoveries) != 1 {
		t.Errorf("restored score=%d discoveries=%d", s.Score, len(s.Discoveries))
	}
	if loaded.CreatedAt.IsZero() || loaded.LastAccessedAt.IsZero() {
		t.Error("timestamps lost in round trip")
	}
}

func TestSQLiteSaveIsUpsert(t *testing.T) {
	sp := newSQLitePersistence(t)
	sess := playedSession(t, "db02")
	if err := sp.Save(sess); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	sess.Engine.Stage("earth")
	sess.Engine.Stage("fire")
	sess.Engine.Combine() // lava
	sess.LastAccessedAt = time.Now()
	if err := sp.Save(sess); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := sp.Load("db02")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(loaded.Engine.Progress().GameState.Discoveries); got != 2 {
		t.Errorf("discoveries = %d, want 2 after upsert", got)
	}

	ids, err := sp.ListAll()
	if err != nil || len(ids) != 1 {
		t.Errorf("ListAll = %v, %v; want a single id", ids, err)
	}
}

func TestSQLiteDeleteAndMissing(t *testing.T) {
	sp := newSQLitePersistence(t)
	sp.Save(playedSession(t, "db03"))

	if err := sp.Delete("db03"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if sp.Exists("db03") {
		t.Error("deleted session still exists")
	}
	if err := sp.Delete("db03"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := sp.Load("db03"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerWithSQLitePersistence(t *testing.T) {
	sp := newSQLitePersistence(t)
	m := NewManagerWithPersistence(sp)

	sess, err := m.Create("db04", engine.DefaultCatalog(), "classic")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	sess.Engine.Stage("water")
	sess.Engine.Stage("fire")
	sess.Engine.Combine()
	if err := m.Save("db04"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A second manager over the same store finds the session.
	m2 := NewManagerWithPersistence(sp)
	restored, err := m2.Get("db04")
	if err != nil {
		t.Fatalf("Get from persistence failed: %v", err)
	}
	if restored.Engine.Progress().GameState.Score != 10 {
		t.Errorf("restored score = %d, want 10", restored.Engine.Progress().GameState.Score)
	}

	var _ service.SessionManager = m2
}
