package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
	"github.com/Tachoss/doodlechemy-playground/game/service"
)

var (
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)

// Manager handles catalog pack loading and caching. Catalog packs are JSON
// files in a directory, one element-and-recipe set per file; the built-in
// catalog serves as the fallback when no pack directory is configured.
type Manager struct {
	catalogDir     string
	defaultCatalog *engine.Catalog
	catalogs       map[string]*engine.Catalog
	mu             sync.RWMutex
}

// NewManager creates a catalog manager over a pack directory. An empty
// catalogDir is allowed and serves only the built-in catalog.
func NewManager(catalogDir string) (*Manager, error) {
	if catalogDir != "" {
		if _, err := os.Stat(catalogDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog directory does not exist: %s", catalogDir)
		}
	}

	m := &Manager{
		catalogDir: catalogDir,
		catalogs:   make(map[string]*engine.Catalog),
	}
	m.loadDefaultCatalog()
	return m, nil
}

// LoadCatalog loads a catalog pack by name. "classic" (or an empty name)
// always resolves to the default catalog.
func (m *Manager) LoadCatalog(name string) (*engine.Catalog, error) {
	if name == "" || name == "classic" {
		return m.GetDefault(), nil
	}

	m.mu.RLock()
	if catalog, exists := m.catalogs[name]; exists {
		m.mu.RUnlock()
		return catalog, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if catalog, exists := m.catalogs[name]; exists {
		return catalog, nil
	}

	if m.catalogDir == "" {
		return nil, ErrCatalogNotFound
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.catalogDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog engine.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := engine.ValidateCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	m.catalogs[name] = &catalog
	return &catalog, nil
}

// ListCatalogs returns information about every available catalog,
// including the built-in one. Unparsable pack files are skipped.
func (m *Manager) ListCatalogs() ([]*service.CatalogInfo, error) {
	def := m.GetDefault()
	catalogs := []*service.CatalogInfo{{
		CatalogID:    "classic",
		Name:         def.Name,
		Description:  def.Description,
		Elements:     len(def.Elements),
		Combinations: len(def.Combinations),
	}}

	if m.catalogDir == "" {
		return catalogs, nil
	}

	entries, err := os.ReadDir(m.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		if name == "classic" {
			continue
		}

		catalog, err := m.LoadCatalog(name)
		if err != nil {
			// Skip invalid packs
			continue
		}

		catalogs = append(catalogs, &service.CatalogInfo{
			Filename:     entry.Name(),
			CatalogID:    name,
			Name:         catalog.Name,
			Description:  catalog.Description,
			Elements:     len(catalog.Elements),
			Combinations: len(catalog.Combinations),
		})
	}

	return catalogs, nil
}

// GetDefault returns the default catalog
func (m *Manager) GetDefault() *engine.Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultCatalog
}

// SetDefault sets the default catalog by pack name
func (m *Manager) SetDefault(name string) error {
	catalog, err := m.LoadCatalog(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultCatalog = catalog
	return nil
}

// RefreshCache drops all cached packs so the next load rereads disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogs = make(map[string]*engine.Catalog)
	m.loadDefaultCatalogLocked()
}

// SaveCatalog validates and writes a catalog pack to disk
func (m *Manager) SaveCatalog(name string, catalog *engine.Catalog) error {
	if err := engine.ValidateCatalog(catalog); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if m.catalogDir == "" {
		return errors.New("no catalog directory configured")
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.catalogDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	m.mu.Lock()
	m.catalogs[name] = catalog
	m.mu.Unlock()

	return nil
}

func (m *Manager) loadDefaultCatalog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadDefaultCatalogLocked()
}

func (m *Manager) loadDefaultCatalogLocked() {
	m.defaultCatalog = engine.DefaultCatalog()
}
