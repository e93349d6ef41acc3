package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Doodlechemy Playground Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}

	if *host == "" {
		t.Error("Host should have a default value")
	}

	if *catalogDir == "" {
		t.Error("Catalog directory should have a default value")
	}

	if *storage != "file" {
		t.Errorf("Expected default storage backend 'file', got %q", *storage)
	}
}

func TestGetCatalogDirDefault(t *testing.T) {
	original, had := os.LookupEnv("CATALOG_DIR")
	defer func() {
		if had {
			os.Setenv("CATALOG_DIR", original)
		} else {
			os.Unsetenv("CATALOG_DIR")
		}
	}()

	os.Unsetenv("CATALOG_DIR")
	if got := getCatalogDirDefault(); got != "catalogs" {
		t.Errorf("Expected default 'catalogs', got %q", got)
	}

	os.Setenv("CATALOG_DIR", "/tmp/my-catalogs")
	if got := getCatalogDirDefault(); got != "/tmp/my-catalogs" {
		t.Errorf("Expected env override '/tmp/my-catalogs', got %q", got)
	}
}

func TestInitializeServices_FileStorage(t *testing.T) {
	tmp := t.TempDir()

	originalCatalogDir := *catalogDir
	originalSessionsDir := *sessionsDir
	originalStorage := *storage
	*catalogDir = ""
	*sessionsDir = filepath.Join(tmp, "sessions")
	*storage = "file"
	defer func() {
		*catalogDir = originalCatalogDir
		*sessionsDir = originalSessionsDir
		*storage = originalStorage
	}()

	gameService, cleanup, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer cleanup()

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}

	sessions, err := gameService.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Expected no sessions in a fresh install, got %d", len(sessions))
	}
}

func TestInitializeServices_SQLiteStorage(t *testing.T) {
	tmp := t.TempDir()

	originalCatalogDir := *catalogDir
	originalSQLitePath := *sqlitePath
	originalStorage := *storage
	*catalogDir = ""
	*sqlitePath = filepath.Join(tmp, "sessions.db")
	*storage = "sqlite"
	defer func() {
		*catalogDir = originalCatalogDir
		*sqlitePath = originalSQLitePath
		*storage = originalStorage
	}()

	gameService, cleanup, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services with sqlite: %v", err)
	}
	defer cleanup()

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
}

func TestInitializeServices_UnknownStorage(t *testing.T) {
	originalCatalogDir := *catalogDir
	originalStorage := *storage
	*catalogDir = ""
	*storage = "redis"
	defer func() {
		*catalogDir = originalCatalogDir
		*storage = originalStorage
	}()

	_, _, err := initializeServices()
	if err == nil {
		t.Error("Expected error for unknown storage backend")
	}
}

// Note: main(), runHTTPServer(), and runStdioMCPWithInternalServer() start servers
// and block, so they are exercised by integration tests against a running process
// rather than unit tests here.
