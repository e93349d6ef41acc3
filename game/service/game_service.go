package service

import (
	"context"
	"sync"
	"time"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, catalogName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Stage(ctx context.Context, sessionID, elementID string) (*engine.GameProgress, error)
	Unstage(ctx context.Context, sessionID, elementID string) (*engine.GameProgress, error)
	Combine(ctx context.Context, sessionID string) (*CombineOutcome, error)
	ToggleFavorite(ctx context.Context, sessionID, elementID string) (*engine.GameProgress, error)
	ViewDetails(ctx context.Context, sessionID, elementID string) (*engine.GameProgress, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameProgress, error)

	// Power-Ups
	ListPowerUps(ctx context.Context, sessionID string) ([]engine.PowerUpStatus, error)
	ActivatePowerUp(ctx context.Context, sessionID, powerUpID string) (*PowerUpOutcome, error)

	// Derived Views
	GetProgress(ctx context.Context, sessionID string) (*engine.GameProgress, error)
	GetStats(ctx context.Context, sessionID string) (*engine.GameStats, error)
	GetHint(ctx context.Context, sessionID string) (*engine.Hint, error)
	GetAssistant(ctx context.Context, sessionID string) (string, error)
	GetAchievements(ctx context.Context, sessionID string) (*AchievementsView, error)
	GetDiscoveries(ctx context.Context, sessionID string, opts HistoryOptions) (*DiscoveryHistory, error)

	// Catalogs
	ListCatalogs(ctx context.Context) ([]*CatalogInfo, error)
	GetCatalog(ctx context.Context, catalogName string) (*engine.Catalog, error)
	SaveCatalog(ctx context.Context, catalogName string, catalog *engine.Catalog) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, catalog *engine.Catalog, catalogName string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// CatalogManager handles catalog pack loading
type CatalogManager interface {
	LoadCatalog(name string) (*engine.Catalog, error)
	ListCatalogs() ([]*CatalogInfo, error)
	GetDefault() *engine.Catalog
	SaveCatalog(name string, catalog *engine.Catalog) error
}

// Session represents an active game session. The embedded mutex serializes
// mutations: the engine assumes at most one in-flight write per game, so
// every transport goes through Session-level locking in the service layer.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	CatalogName    string
	CreatedAt      time.Time
	LastAccessedAt time.Time

	Mu sync.Mutex
}
