package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Tachoss/doodlechemy-playground/game/service"
)

// SQLitePersistence implements SessionPersistence on a SQLite database.
// It is the backend of choice when many sessions accumulate and one file
// per session becomes unwieldy.
type SQLitePersistence struct {
	db             *sql.DB
	catalogManager service.CatalogManager
}

// NewSQLitePersistence opens (and migrates) a SQLite session store at
// path. Use ":memory:" for an ephemeral store.
func NewSQLitePersistence(path string, catalogManager service.CatalogManager) (*SQLitePersistence, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// The driver serializes writes; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	schema := `CREATE TABLE IF NOT EXISTS sessions (
		id               TEXT PRIMARY KEY COLLATE NOCASE,
		catalog_name     TEXT NOT NULL,
		created_at       TEXT NOT NULL,
		last_accessed_at TEXT NOT NULL,
		progress         BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}

	return &SQLitePersistence{
		db:             db,
		catalogManager: catalogManager,
	}, nil
}

// Close releases the underlying database handle
func (sp *SQLitePersistence) Close() error {
	return sp.db.Close()
}

// Save upserts a session row
func (sp *SQLitePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	progress, err := json.Marshal(session.Engine.Progress())
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	_, err = sp.db.Exec(`
		INSERT INTO sessions (id, catalog_name, created_at, last_accessed_at, progress)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			catalog_name = excluded.catalog_name,
			last_accessed_at = excluded.last_accessed_at,
			progress = excluded.progress`,
		session.ID,
		session.CatalogName,
		session.CreatedAt.Format(time.RFC3339Nano),
		session.LastAccessedAt.Format(time.RFC3339Nano),
		progress,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load retrieves a session row and rebuilds the engine. Like the file
// backend, a corrupt progress blob falls back to a fresh game.
func (sp *SQLitePersistence) Load(id string) (*service.Session, error) {
	row := sp.db.QueryRow(
		`SELECT id, catalog_name, created_at, last_accessed_at, progress FROM sessions WHERE id = ?`, id)

	var data PersistedSessionData
	var createdAt, lastAccessedAt string
	var progress []byte
	err := row.Scan(&data.ID, &data.CatalogName, &createdAt, &lastAccessedAt, &progress)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	data.Progress = progress
	if data.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if data.LastAccessedAt, err = time.Parse(time.RFC3339Nano, lastAccessedAt); err != nil {
		return nil, fmt.Errorf("failed to parse last_accessed_at: %w", err)
	}

	return restoreSession(&data, sp.catalogManager)
}

// Delete removes a session row
func (sp *SQLitePersistence) Delete(id string) error {
	result, err := sp.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all persisted session IDs
func (sp *SQLitePersistence) ListAll() ([]string, error) {
	rows, err := sp.db.Query(`SELECT id FROM sessions ORDER BY last_accessed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Exists checks if a session row exists
func (sp *SQLitePersistence) Exists(id string) bool {
	var one int
	err := sp.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	return err == nil
}
