package session

import (
	"testing"
	"time"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
)

func TestCreateGeneratesShortID(t *testing.T) {
	m := NewManager()
	sess, err := m.Create("", engine.DefaultCatalog(), "classic")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(sess.ID) != 4 {
		t.Errorf("generated id %q, want 4 characters", sess.ID)
	}
	if sess.Engine == nil {
		t.Fatal("session has no engine")
	}
	if m.Count() != 1 {
		t.Errorf("count = %d, want 1", m.Count())
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	m := NewManager()
	if _, err := m.Create("AbCd", engine.DefaultCatalog(), "classic"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, id := range []string{"abcd", "ABCD", "AbCd"} {
		if _, err := m.Get(id); err != nil {
			t.Errorf("Get(%q) failed: %v", id, err)
		}
	}
	if _, err := m.Get("zzzz"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCreateDuplicateFails(t *testing.T) {
	m := NewManager()
	if _, err := m.Create("dupe", engine.DefaultCatalog(), "classic"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("DUPE", engine.DefaultCatalog(), "classic"); err != ErrSessionAlreadyExists {
		t.Errorf("expected ErrSessionAlreadyExists, got %v", err)
	}
}

func TestCreateRejectsBadCatalog(t *testing.T) {
	m := NewManager()
	if _, err := m.Create("", &engine.Catalog{}, "broken"); err == nil {
		t.Error("expected an error for an invalid catalog")
	}
}

func TestDelete(t *testing.T) {
	m := NewManager()
	m.Create("gone", engine.DefaultCatalog(), "classic")

	if err := m.Delete("GONE"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get("gone"); err != ErrSessionNotFound {
		t.Errorf("deleted session still resolves: %v", err)
	}
	if err := m.Delete("gone"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	m := NewManager()
	old, _ := m.Create("old1", engine.DefaultCatalog(), "classic")
	m.Create("new1", engine.DefaultCatalog(), "classic")

	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := m.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("removed %d sessions, want 1", removed)
	}
	if _, err := m.Get("old1"); err != ErrSessionNotFound {
		t.Error("expired session should be gone")
	}
	if _, err := m.Get("new1"); err != nil {
		t.Errorf("fresh session should survive: %v", err)
	}
}

func TestUpdateLastAccessed(t *testing.T) {
	m := NewManager()
	sess, _ := m.Create("tick", engine.DefaultCatalog(), "classic")
	before := sess.LastAccessedAt

	time.Sleep(time.Millisecond)
	if err := m.UpdateLastAccessed("TICK"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !sess.LastAccessedAt.After(before) {
		t.Error("access time not refreshed")
	}
}

func TestSaveWithoutPersistenceIsNoop(t *testing.T) {
	m := NewManager()
	m.Create("nosave", engine.DefaultCatalog(), "classic")
	if err := m.Save("nosave"); err != nil {
		t.Errorf("Save without persistence should be a no-op, got %v", err)
	}
}

func TestLoadPersistedSessions(t *testing.T) {
	fp := newFilePersistence(t)
	if err := fp.Save(playedSession(t, "aa01")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := fp.Save(playedSession(t, "aa02")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	m := NewManagerWithPersistence(fp)
	if err := m.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("count = %d, want 2", m.Count())
	}
	if len(m.List()) != 2 {
		t.Errorf("List() = %d sessions, want 2", len(m.List()))
	}
}

func TestLoadPersistedSessionsKeepsInMemoryCopy(t *testing.T) {
	fp := newFilePersistence(t)
	m := NewManagerWithPersistence(fp)

	sess, err := m.Create("bb01", engine.DefaultCatalog(), "classic")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := m.Save("bb01"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := m.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}

	got, err := m.Get("bb01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != sess {
		t.Error("reload replaced the in-memory session")
	}
}

func TestLoadPersistedSessionsWithoutPersistence(t *testing.T) {
	m := NewManager()
	if err := m.LoadPersistedSessions(); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestDeleteFromMemoryKeepsFile(t *testing.T) {
	fp := newFilePersistence(t)
	m := NewManagerWithPersistence(fp)

	m.Create("cc01", engine.DefaultCatalog(), "classic")
	if err := m.Save("cc01"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := m.DeleteFromMemory("CC01"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("count = %d, want 0", m.Count())
	}
	if !fp.Exists("cc01") {
		t.Error("persisted copy should survive DeleteFromMemory")
	}

	// Lazy reload brings it back
	if _, err := m.Get("cc01"); err != nil {
		t.Errorf("Get after DeleteFromMemory failed: %v", err)
	}

	if err := m.DeleteFromMemory("zzzz"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSaveAllSessions(t *testing.T) {
	fp := newFilePersistence(t)
	m := NewManagerWithPersistence(fp)

	m.Create("dd01", engine.DefaultCatalog(), "classic")
	m.Create("dd02", engine.DefaultCatalog(), "classic")

	if err := m.SaveAllSessions(); err != nil {
		t.Fatalf("SaveAllSessions failed: %v", err)
	}
	if !fp.Exists("dd01") || !fp.Exists("dd02") {
		t.Error("expected both sessions on disk")
	}

	empty := NewManager()
	if err := empty.SaveAllSessions(); err != nil {
		t.Errorf("expected no-op without persistence, got %v", err)
	}
}
