package session

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/Tachoss/doodlechemy-playground/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the serialized session layout shared by every
// persistence backend. Progress is kept raw so a corrupt blob can be
// detected and replaced without failing the whole load.
type PersistedSessionData struct {
	ID             string          `json:"id"`
	CatalogName    string          `json:"catalog_name"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Progress       json.RawMessage `json:"progress"`
}

// progressProbe mirrors just enough of the progress layout to validate a
// persisted blob: the game state and its two core arrays must exist and
// be array-typed. Anything else is treated as corruption.
type progressProbe struct {
	GameState *struct {
		Elements    json.RawMessage `json:"elements"`
		Discoveries json.RawMessage `json:"discoveries"`
	} `json:"game_state"`
}

// validProgressBlob reports whether raw looks like a usable progress blob
func validProgressBlob(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var probe progressProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	if probe.GameState == nil {
		return false
	}
	return isJSONArray(probe.GameState.Elements) && isJSONArray(probe.GameState.Discoveries)
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
