package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
	"github.com/Tachoss/doodlechemy-playground/game/service"
)

// FilePersistence implements SessionPersistence using one JSON file per
// session.
type FilePersistence struct {
	sessionsDir    string
	catalogManager service.CatalogManager
}

// NewFilePersistence creates a file-based session persistence layer
func NewFilePersistence(sessionsDir string, catalogManager service.CatalogManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:    sessionsDir,
		catalogManager: catalogManager,
	}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	progress, err := json.Marshal(session.Engine.Progress())
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		CatalogName:    session.CatalogName,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Progress:       progress,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.getFilePath(session.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves a session from a JSON file. A corrupt progress blob is
// replaced with a fresh game rather than failing the load; only an
// unreadable file or unknown catalog is an error.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return restoreSession(&data, fp.catalogManager)
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}
	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}
	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

// restoreSession rebuilds an in-memory session from persisted data. Used
// by every persistence backend.
func restoreSession(data *PersistedSessionData, catalogs service.CatalogManager) (*service.Session, error) {
	catalog, err := catalogs.LoadCatalog(data.CatalogName)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog '%s': %w", data.CatalogName, err)
	}

	gameEngine, err := engine.NewEngine(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	if validProgressBlob(data.Progress) {
		var progress engine.GameProgress
		if err := json.Unmarshal(data.Progress, &progress); err != nil {
			log.Printf("[SESSION] Warning: session %s has an unreadable progress blob, starting fresh: %v", data.ID, err)
		} else {
			gameEngine.SetProgress(&progress)
		}
	} else {
		log.Printf("[SESSION] Warning: session %s has a corrupt progress blob, starting fresh", data.ID)
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         gameEngine,
		CatalogName:    data.CatalogName,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}
