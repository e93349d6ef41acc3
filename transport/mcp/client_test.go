package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
	"github.com/Tachoss/doodlechemy-playground/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "test-session",
		"score": float64(25),
		"level": float64(2),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found: zzzz"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/zzzz", nil, nil)
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "session not found: zzzz" {
		t.Errorf("Expected server error message to pass through, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:          "a1b2",
			CatalogName: "classic",
			Progress:    engine.NewGameProgress(engine.DefaultCatalog()),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "a1b2") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Water") {
		t.Errorf("Expected starting elements in result, got: %s", resultStr.Text)
	}
}

func TestClient_combine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/a1b2/combine" {
			t.Errorf("Expected POST /api/sessions/a1b2/combine, got %s %s", r.Method, r.URL.Path)
		}

		progress := engine.NewGameProgress(engine.DefaultCatalog())
		progress.GameState.Score = 10
		resp := service.CombineOutcome{
			Success:      true,
			Progress:     progress,
			Message:      "You discovered Steam!",
			Element:      &engine.Element{ID: "steam", Name: "Steam", Symbol: "💨"},
			PointsGained: 10,
			PowerGained:  1,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "combine",
			Arguments: map[string]interface{}{"session_id": "a1b2"},
		},
	}

	result, err := client.handleCombine(context.Background(), request)
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}

	resultStr := result.Content[0].(mcp.TextContent)
	for _, want := range []string{"You discovered Steam!", "Steam", "Points: +10", "Power: +1"} {
		if !strings.Contains(resultStr.Text, want) {
			t.Errorf("Expected %q in result, got: %s", want, resultStr.Text)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	progress := engine.NewGameProgress(engine.DefaultCatalog())
	progress.GameState.Score = 35
	progress.GameState.Level = 2
	progress.GameState.ComboMultiplier = 1.3
	progress.GameState.SuccessfulCombosInARow = 3

	result := formatProgress(progress)

	expectedFields := []string{
		"Level 2",
		"Score: 35",
		"Multiplier: 1.3x",
		"Streak: 3",
		"Slots: [(empty)] + [(empty)]",
		"Water",
		"Fire",
		"Earth",
		"Air",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field %q in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatProgress_Nil(t *testing.T) {
	if got := formatProgress(nil); got != "No progress available" {
		t.Errorf("Unexpected nil formatting: %s", got)
	}
}

func TestFormatSlots(t *testing.T) {
	state := engine.NewGameState(engine.DefaultCatalog())
	state.CombiningElements[0] = "water"

	result := formatSlots(state)
	if !strings.Contains(result, "[water] + [(empty)]") {
		t.Errorf("Unexpected slot formatting: %s", result)
	}
}

func TestFormatCombineOutcome_Failure(t *testing.T) {
	outcome := &service.CombineOutcome{
		Success:  false,
		Message:  "No reaction.",
		Progress: engine.NewGameProgress(engine.DefaultCatalog()),
	}

	result := formatCombineOutcome(outcome)
	if !strings.Contains(result, "✗ No reaction.") {
		t.Errorf("Expected failure marker, got: %s", result)
	}
}

func TestFormatDiscoveryHistory(t *testing.T) {
	history := &service.DiscoveryHistory{
		Discoveries: []engine.Discovery{
			{Result: "steam", Elements: [2]string{"fire", "water"}, Timestamp: 1700000000000},
			{Result: "gold", Elements: [2]string{"", ""}, Timestamp: 1700000001000},
		},
		Total:      2,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}

	result := formatDiscoveryHistory(history)
	if !strings.Contains(result, "steam = fire + water") {
		t.Errorf("Expected recipe line, got: %s", result)
	}
	if !strings.Contains(result, "gold (revealed)") {
		t.Errorf("Expected revealed marker for synthetic discovery, got: %s", result)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"GAME OBJECTIVE:",
		"GAME MECHANICS:",
		"POWER-UPS:",
		"ACHIEVEMENTS:",
		"STRATEGY FOR AI AGENTS:",
		"SESSION MANAGEMENT:",
		"multiplier_boost",
		"element_revealer",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected %q in instructions", content)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
