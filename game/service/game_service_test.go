package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
	"github.com/Tachoss/doodlechemy-playground/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{sessions: make(map[string]*service.Session)}
}

func (m *MockSessionManager) Create(id string, catalog *engine.Catalog, catalogName string) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}
	eng, err := engine.NewEngine(catalog)
	if err != nil {
		return nil, err
	}
	session := &service.Session{
		ID:             id,
		Engine:         eng,
		CatalogName:    catalogName,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	out := make([]*service.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if s, exists := m.sessions[id]; exists {
		s.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	m.saves++
	return nil
}

// MockCatalogManager implements service.CatalogManager for testing
type MockCatalogManager struct {
	def *engine.Catalog
}

func NewMockCatalogManager() *MockCatalogManager {
	return &MockCatalogManager{def: engine.DefaultCatalog()}
}

func (m *MockCatalogManager) LoadCatalog(name string) (*engine.Catalog, error) {
	if name == "" || name == "classic" {
		return m.def, nil
	}
	return nil, errors.New("catalog not found")
}

func (m *MockCatalogManager) ListCatalogs() ([]*service.CatalogInfo, error) {
	return []*service.CatalogInfo{{
		CatalogID:    "classic",
		Name:         m.def.Name,
		Elements:     len(m.def.Elements),
		Combinations: len(m.def.Combinations),
	}}, nil
}

func (m *MockCatalogManager) GetDefault() *engine.Catalog { return m.def }

func (m *MockCatalogManager) SaveCatalog(name string, catalog *engine.Catalog) error {
	return engine.ValidateCatalog(catalog)
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager) {
	t.Helper()
	sessions := NewMockSessionManager()
	return service.NewGameService(sessions, NewMockCatalogManager()), sessions
}

func TestCreateAndGetSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if info.CatalogName != "classic" {
		t.Errorf("catalog name = %q, want classic", info.CatalogName)
	}
	if info.Stats.DiscoveredElements != 4 {
		t.Errorf("fresh session should start with 4 discovered, got %d", info.Stats.DiscoveredElements)
	}

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.ID != info.ID {
		t.Errorf("got session %q, want %q", got.ID, info.ID)
	}

	if _, err := svc.CreateSession(ctx, "nope"); err == nil {
		t.Error("expected an error for an unknown catalog")
	}
}

func TestStageCombineFlow(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := svc.Stage(ctx, info.ID, "water"); err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if _, err := svc.Stage(ctx, info.ID, "fire"); err != nil {
		t.Fatalf("Stage failed: %v", err)
	}

	outcome, err := svc.Combine(ctx, info.ID)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if !outcome.Success {
		t.Fatal("water+fire should succeed")
	}
	if outcome.Element == nil || outcome.Element.ID != "steam" {
		t.Fatalf("element = %+v, want steam", outcome.Element)
	}
	if outcome.Discovery == nil {
		t.Error("expected a discovery")
	}
	if len(outcome.Events) == 0 {
		t.Fatal("expected lifted events")
	}
	for _, ev := range outcome.Events {
		if ev.ID == "" || ev.SessionID != info.ID || ev.Timestamp.IsZero() {
			t.Errorf("event missing identity: %+v", ev)
		}
	}

	if sessions.saves == 0 {
		t.Error("mutations should trigger a save")
	}
}

func TestCombineNoReaction(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	svc.Stage(ctx, info.ID, "air")
	svc.Stage(ctx, info.ID, "air")
	outcome, err := svc.Combine(ctx, info.ID)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if outcome.Success {
		t.Error("air+air should not react")
	}
	if outcome.Message != "No reaction." {
		t.Errorf("message = %q", outcome.Message)
	}
}

func TestPowerUpRejectionOutcome(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	outcome, err := svc.ActivatePowerUp(ctx, info.ID, "smart_hint")
	if err != nil {
		t.Fatalf("ActivatePowerUp failed: %v", err)
	}
	if outcome.Activated {
		t.Error("no power accumulated, activation should be rejected")
	}
	if outcome.Reason == "" {
		t.Error("rejection should carry a reason")
	}

	statuses, err := svc.ListPowerUps(ctx, info.ID)
	if err != nil {
		t.Fatalf("ListPowerUps failed: %v", err)
	}
	if len(statuses) != 4 {
		t.Errorf("power-ups = %d, want 4", len(statuses))
	}
}

func TestDerivedViews(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	stats, err := svc.GetStats(ctx, info.ID)
	if err != nil || stats.TotalElements == 0 {
		t.Fatalf("GetStats = %+v, %v", stats, err)
	}
	hint, err := svc.GetHint(ctx, info.ID)
	if err != nil || hint.Text == "" {
		t.Fatalf("GetHint = %+v, %v", hint, err)
	}
	msg, err := svc.GetAssistant(ctx, info.ID)
	if err != nil || msg == "" {
		t.Fatalf("GetAssistant = %q, %v", msg, err)
	}
	ach, err := svc.GetAchievements(ctx, info.ID)
	if err != nil || ach.Progress.Total == 0 {
		t.Fatalf("GetAchievements = %+v, %v", ach, err)
	}
}

func TestDiscoveriesPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	combos := [][2]string{
		{"water", "fire"},
		{"earth", "fire"},
		{"earth", "water"},
	}
	for _, pair := range combos {
		svc.Stage(ctx, info.ID, pair[0])
		svc.Stage(ctx, info.ID, pair[1])
		if outcome, _ := svc.Combine(ctx, info.ID); !outcome.Success {
			t.Fatalf("setup combination %v failed", pair)
		}
	}

	page, err := svc.GetDiscoveries(ctx, info.ID, service.HistoryOptions{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("GetDiscoveries failed: %v", err)
	}
	if page.Total != 3 || len(page.Discoveries) != 2 {
		t.Fatalf("page = %+v", page)
	}
	if !page.HasNext || page.HasPrevious {
		t.Errorf("pagination flags wrong: %+v", page)
	}
	// Most recent first: the last combination leads.
	if page.Discoveries[0].Result != "mud" {
		t.Errorf("first entry = %s, want mud", page.Discoveries[0].Result)
	}

	last, _ := svc.GetDiscoveries(ctx, info.ID, service.HistoryOptions{Page: 2, Limit: 2})
	if len(last.Discoveries) != 1 || last.Discoveries[0].Result != "steam" {
		t.Errorf("last page = %+v", last)
	}
}

func TestResetAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	svc.Stage(ctx, info.ID, "water")
	svc.Stage(ctx, info.ID, "fire")
	svc.Combine(ctx, info.ID)

	progress, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if progress.GameState.Score != 0 || len(progress.GameState.Discoveries) != 0 {
		t.Errorf("reset left score=%d discoveries=%d", progress.GameState.Score, len(progress.GameState.Discoveries))
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("deleted session should not resolve")
	}
}

func TestListCatalogs(t *testing.T) {
	svc, _ := newTestService(t)
	infos, err := svc.ListCatalogs(context.Background())
	if err != nil || len(infos) != 1 {
		t.Fatalf("ListCatalogs = %+v, %v", infos, err)
	}
	if infos[0].CatalogID != "classic" {
		t.Errorf("catalog id = %q", infos[0].CatalogID)
	}
}
