package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	catalogs CatalogManager
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, catalogs CatalogManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		catalogs: catalogs,
	}
}

// CreateSession creates a new game session against the named catalog pack
func (s *gameServiceImpl) CreateSession(ctx context.Context, catalogName string) (*SessionInfo, error) {
	var catalog *engine.Catalog
	var err error
	if catalogName != "" {
		catalog, err = s.catalogs.LoadCatalog(catalogName)
		if err != nil {
			if strings.Contains(err.Error(), "catalog not found") {
				available, listErr := s.catalogs.ListCatalogs()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, c := range available {
						ids = append(ids, c.CatalogID)
					}
					return nil, fmt.Errorf("catalog '%s' not found. Available catalogs: %v", catalogName, ids)
				}
				return nil, fmt.Errorf("catalog '%s' not found. Use /api/catalogs to list available catalogs", catalogName)
			}
			return nil, fmt.Errorf("failed to load catalog %s: %w", catalogName, err)
		}
	} else {
		catalogName = "classic"
		catalog = s.catalogs.GetDefault()
	}

	// Let the session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", catalog, catalogName)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Stage places an element into a free staging slot
func (s *gameServiceImpl) Stage(ctx context.Context, sessionID, elementID string) (*engine.GameProgress, error) {
	return s.mutate(sessionID, func(sess *Session) *engine.GameProgress {
		return sess.Engine.Stage(elementID)
	})
}

// Unstage removes an element from its staging slot
func (s *gameServiceImpl) Unstage(ctx context.Context, sessionID, elementID string) (*engine.GameProgress, error) {
	return s.mutate(sessionID, func(sess *Session) *engine.GameProgress {
		return sess.Engine.Unstage(elementID)
	})
}

// Combine attempts to combine the two staged elements
func (s *gameServiceImpl) Combine(ctx context.Context, sessionID string) (*CombineOutcome, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Mu.Lock()
	result := sess.Engine.Combine()
	sess.Mu.Unlock()

	s.afterMutation(sessionID)

	outcome := &CombineOutcome{
		Success:      result.Success,
		Progress:     result.Progress,
		Element:      result.Element,
		Discovery:    result.NewDiscovery,
		PointsGained: result.PointsGained,
		PowerGained:  result.PowerGained,
		Events:       s.liftNotifications(sessionID, result.Notifications),
	}
	switch {
	case result.NewDiscovery != nil:
		outcome.Message = fmt.Sprintf("You discovered %s!", result.Element.Name)
	case result.Success:
		outcome.Message = fmt.Sprintf("Created %s again.", result.Element.Name)
	default:
		outcome.Message = "No reaction."
	}
	return outcome, nil
}

// ToggleFavorite flips an element's favorite status
func (s *gameServiceImpl) ToggleFavorite(ctx context.Context, sessionID, elementID string) (*engine.GameProgress, error) {
	return s.mutate(sessionID, func(sess *Session) *engine.GameProgress {
		return sess.Engine.ToggleFavorite(elementID)
	})
}

// ViewDetails selects (or, with an empty id, clears) the element detail view
func (s *gameServiceImpl) ViewDetails(ctx context.Context, sessionID, elementID string) (*engine.GameProgress, error) {
	return s.mutate(sessionID, func(sess *Session) *engine.GameProgress {
		return sess.Engine.ViewDetails(elementID)
	})
}

// Reset restarts a session's game from scratch
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameProgress, error) {
	return s.mutate(sessionID, func(sess *Session) *engine.GameProgress {
		return sess.Engine.Reset()
	})
}

// ListPowerUps returns the power-up catalog with availability for a session
func (s *gameServiceImpl) ListPowerUps(ctx context.Context, sessionID string) ([]engine.PowerUpStatus, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	return sess.Engine.PowerUps(), nil
}

// ActivatePowerUp fires a power-up for a session
func (s *gameServiceImpl) ActivatePowerUp(ctx context.Context, sessionID, powerUpID string) (*PowerUpOutcome, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Mu.Lock()
	activation := sess.Engine.ActivatePowerUp(powerUpID)
	progress := sess.Engine.Progress()
	sess.Mu.Unlock()

	if activation.Activated {
		s.afterMutation(sessionID)
	}

	return &PowerUpOutcome{
		Activated: activation.Activated,
		Reason:    activation.Reason,
		Progress:  progress,
		Events:    s.liftNotifications(sessionID, activation.Notifications),
	}, nil
}

// GetProgress returns a session's current progress snapshot
func (s *gameServiceImpl) GetProgress(ctx context.Context, sessionID string) (*engine.GameProgress, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	return sess.Engine.Progress(), nil
}

// GetStats returns derived discovery statistics
func (s *gameServiceImpl) GetStats(ctx context.Context, sessionID string) (*engine.GameStats, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	sess.Mu.Lock()
	stats := sess.Engine.Stats()
	sess.Mu.Unlock()
	return &stats, nil
}

// GetHint suggests a combination the player can complete
func (s *gameServiceImpl) GetHint(ctx context.Context, sessionID string) (*engine.Hint, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	sess.Mu.Lock()
	hint := sess.Engine.Hint()
	sess.Mu.Unlock()
	return &hint, nil
}

// GetAssistant returns the lab assistant's narrative message
func (s *gameServiceImpl) GetAssistant(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("session not found: %w", err)
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	return sess.Engine.Assistant(), nil
}

// GetAchievements returns the achievement list and progress summary
func (s *gameServiceImpl) GetAchievements(ctx context.Context, sessionID string) (*AchievementsView, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()

	state := sess.Engine.Achievements()
	return &AchievementsView{
		Achievements: state.Achievements,
		LastUnlocked: state.LastUnlocked,
		Progress:     engine.AchievementsProgress(state),
	}, nil
}

// GetDiscoveries returns paginated discovery history, most recent first
func (s *gameServiceImpl) GetDiscoveries(ctx context.Context, sessionID string, opts HistoryOptions) (*DiscoveryHistory, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Mu.Lock()
	all := sess.Engine.Progress().GameState.Discoveries
	sess.Mu.Unlock()

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}

	total := len(all)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &DiscoveryHistory{
		Discoveries: all[start:end],
		Total:       total,
		Page:        page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// ListCatalogs returns information about all available catalog packs
func (s *gameServiceImpl) ListCatalogs(ctx context.Context) ([]*CatalogInfo, error) {
	return s.catalogs.ListCatalogs()
}

// GetCatalog loads a catalog pack by name
func (s *gameServiceImpl) GetCatalog(ctx context.Context, catalogName string) (*engine.Catalog, error) {
	return s.catalogs.LoadCatalog(catalogName)
}

// SaveCatalog validates and stores a catalog pack
func (s *gameServiceImpl) SaveCatalog(ctx context.Context, catalogName string, catalog *engine.Catalog) error {
	if catalog == nil {
		return errors.New("catalog cannot be nil")
	}
	return s.catalogs.SaveCatalog(catalogName, catalog)
}

// mutate runs a state-changing engine call under the session lock and
// triggers the save-on-mutation hook.
func (s *gameServiceImpl) mutate(sessionID string, fn func(*Session) *engine.GameProgress) (*engine.GameProgress, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Mu.Lock()
	progress := fn(sess)
	sess.Mu.Unlock()

	s.afterMutation(sessionID)
	return progress, nil
}

// afterMutation persists the session and refreshes its access time. A
// persistence failure is non-fatal: the in-memory snapshot stays the
// source of truth and the manager logs the problem.
func (s *gameServiceImpl) afterMutation(sessionID string) {
	s.sessions.UpdateLastAccessed(sessionID)
	s.sessions.Save(sessionID)
}

// liftNotifications wraps engine notifications as identified, timestamped
// game events.
func (s *gameServiceImpl) liftNotifications(sessionID string, notifications []engine.Notification) []GameEvent {
	if len(notifications) == 0 {
		return nil
	}
	events := make([]GameEvent, 0, len(notifications))
	for _, n := range notifications {
		events = append(events, GameEvent{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Type:      n.Kind,
			Title:     n.Title,
			Message:   n.Message,
			Icon:      n.Icon,
			Timestamp: time.Now(),
		})
	}
	return events
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	return &SessionInfo{
		ID:             sess.ID,
		CatalogName:    sess.CatalogName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Progress:       sess.Engine.Progress(),
		Stats:          sess.Engine.Stats(),
	}
}
