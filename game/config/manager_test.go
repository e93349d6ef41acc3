package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
)

func TestManagerWithoutDirectory(t *testing.T) {
	m, err := NewManager("")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	def := m.GetDefault()
	if def == nil || def.Name != "classic" {
		t.Fatalf("default catalog = %+v", def)
	}

	c, err := m.LoadCatalog("classic")
	if err != nil {
		t.Fatalf("LoadCatalog(classic) failed: %v", err)
	}
	if c != def {
		t.Error("classic should resolve to the default catalog")
	}

	if _, err := m.LoadCatalog("custom"); err != ErrCatalogNotFound {
		t.Errorf("expected ErrCatalogNotFound, got %v", err)
	}

	infos, err := m.ListCatalogs()
	if err != nil {
		t.Fatalf("ListCatalogs failed: %v", err)
	}
	if len(infos) != 1 || infos[0].CatalogID != "classic" {
		t.Errorf("infos = %+v, want only classic", infos)
	}
}

func TestManagerMissingDirectory(t *testing.T) {
	if _, err := NewManager(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestLoadAndListCustomCatalog(t *testing.T) {
	dir := t.TempDir()

	custom := engine.DefaultCatalog()
	custom.Name = "custom"
	custom.Description = "a test pack"
	writeCatalog(t, dir, "custom.json", custom)

	// Invalid JSON and invalid catalogs are skipped by listing.
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	writeCatalog(t, dir, "empty.json", &engine.Catalog{Name: "empty"})

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	c, err := m.LoadCatalog("custom")
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Name != "custom" {
		t.Errorf("catalog name = %q", c.Name)
	}

	// Cached: the same pointer comes back.
	again, _ := m.LoadCatalog("custom")
	if again != c {
		t.Error("expected the cached catalog")
	}

	infos, err := m.ListCatalogs()
	if err != nil {
		t.Fatalf("ListCatalogs failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("infos = %d entries, want classic + custom", len(infos))
	}

	if _, err := m.LoadCatalog("broken"); err == nil {
		t.Error("expected an error for malformed JSON")
	}
	if _, err := m.LoadCatalog("empty"); err == nil {
		t.Error("expected a validation error for an empty catalog")
	}
}

func TestSaveCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	c := engine.DefaultCatalog()
	c.Name = "saved"
	if err := m.SaveCatalog("saved", c); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	m.RefreshCache()
	loaded, err := m.LoadCatalog("saved")
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if loaded.Name != "saved" || len(loaded.Elements) != len(c.Elements) {
		t.Errorf("round trip lost data: %q with %d elements", loaded.Name, len(loaded.Elements))
	}

	if err := m.SaveCatalog("bad", &engine.Catalog{}); err == nil {
		t.Error("expected a validation error saving an empty catalog")
	}
}

func TestSetDefault(t *testing.T) {
	dir := t.TempDir()
	custom := engine.DefaultCatalog()
	custom.Name = "variant"
	writeCatalog(t, dir, "variant.json", custom)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m.SetDefault("variant"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if m.GetDefault().Name != "variant" {
		t.Errorf("default = %q, want variant", m.GetDefault().Name)
	}
	if err := m.SetDefault("missing"); err == nil {
		t.Error("expected an error for an unknown pack")
	}
}

func writeCatalog(t *testing.T, dir, filename string, c *engine.Catalog) {
	t.Helper()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatal(err)
	}
}
