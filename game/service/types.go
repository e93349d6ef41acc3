package service

import (
	"time"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string               `json:"id"`
	CatalogName    string               `json:"catalog_name"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	Progress       *engine.GameProgress `json:"progress"`
	Stats          engine.GameStats     `json:"stats"`
}

// CombineOutcome is the result of a combination attempt
type CombineOutcome struct {
	Success      bool                 `json:"success"`
	Progress     *engine.GameProgress `json:"progress"`
	Message      string               `json:"message"`
	Element      *engine.Element      `json:"element,omitempty"`
	Discovery    *engine.Discovery    `json:"discovery,omitempty"`
	PointsGained int                  `json:"points_gained"`
	PowerGained  int                  `json:"power_gained"`
	Events       []GameEvent          `json:"events,omitempty"`
}

// PowerUpOutcome is the result of a power-up activation attempt
type PowerUpOutcome struct {
	Activated bool                 `json:"activated"`
	Reason    string               `json:"reason,omitempty"`
	Progress  *engine.GameProgress `json:"progress"`
	Events    []GameEvent          `json:"events,omitempty"`
}

// GameEvent is a notification lifted into the service layer with identity
// and timing, ready for transports (REST responses, WebSocket pushes).
type GameEvent struct {
	ID        string                  `json:"id"`
	SessionID string                  `json:"session_id"`
	Type      engine.NotificationKind `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Icon      string                  `json:"icon,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
}

// AchievementsView bundles the achievement list with a progress summary
type AchievementsView struct {
	Achievements []engine.Achievement       `json:"achievements"`
	LastUnlocked string                     `json:"last_unlocked,omitempty"`
	Progress     engine.AchievementProgress `json:"progress"`
}

// HistoryOptions configures discovery history retrieval
type HistoryOptions struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DiscoveryHistory contains paginated discoveries, most recent first
type DiscoveryHistory struct {
	Discoveries []engine.Discovery `json:"discoveries"`
	Total       int                `json:"total"`
	Page        int                `json:"page"`
	PageSize    int                `json:"page_size"`
	TotalPages  int                `json:"total_pages"`
	HasNext     bool               `json:"has_next"`
	HasPrevious bool               `json:"has_previous"`
}

// CatalogInfo provides information about a catalog pack
type CatalogInfo struct {
	Filename     string `json:"filename,omitempty"`
	CatalogID    string `json:"catalog_id"` // The identifier to use for session creation
	Name         string `json:"name"`
	Description  string `json:"description"`
	Elements     int    `json:"elements"`
	Combinations int    `json:"combinations"`
}
