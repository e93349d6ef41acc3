package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
	"github.com/Tachoss/doodlechemy-playground/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Doodlechemy Playground",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Doodlechemy Playground - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Discover every element by combining pairs of elements you already know.
You start with four basics: water, fire, earth, and air.

AVAILABLE TOOLS:
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- game_progress: Full progress snapshot (elements, score, level, combos)
- stage_element / unstage_element: Manage the two combining slots
- combine: Attempt the staged combination
- toggle_favorite: Mark or unmark an element as favorite
- reset_game: Reset to initial state
- discoveries: Paginated discovery history, most recent first
- stats: Aggregate progress statistics
- hint: Get a combination hint
- assistant: Get an assistant message for your progress level
- achievements: List achievements with unlock state
- power_ups / activate_power_up: Inspect and spend power on boosts
- list_catalogs: List available element catalogs
- game_instructions: Get comprehensive game instructions and rules

TIP: Combining the same element with itself is valid and sometimes the
only path to a discovery. Failed attempts reset your combo streak but
never your score or discoveries.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	sessionProp := map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
	elementProp := map[string]interface{}{
		"type":        "string",
		"description": "Element ID (e.g. \"water\")",
	}

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional catalog selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"catalog_id": map[string]interface{}{
					"type":        "string",
					"description": "Catalog to play (optional, defaults to classic)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_progress",
		Description: "Get the full game progress: discovered elements, score, level, combo state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameProgress)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "stage_element",
		Description: "Place a discovered element into the first free combining slot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"element_id": elementProp,
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of what you hope to create (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "element_id"},
		},
	}, c.handleStage)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "unstage_element",
		Description: "Remove an element from the combining slots",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"element_id": elementProp,
			},
			Required: []string{"session_id", "element_id"},
		},
	}, c.handleUnstage)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "combine",
		Description: "Attempt to combine the two staged elements",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the expected result (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCombine)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_favorite",
		Description: "Toggle the favorite marker on an element",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"element_id": elementProp,
			},
			Required: []string{"session_id", "element_id"},
		},
	}, c.handleToggleFavorite)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "discoveries",
		Description: "Get discovery history for a session, most recent first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDiscoveries)

	// Derived views
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "stats",
		Description: "Get aggregate progress statistics for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleStats)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Get a hint toward an undiscovered combination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleHint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "assistant",
		Description: "Get an encouraging assistant message for the current progress level",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleAssistant)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "achievements",
		Description: "List achievements with unlock state and overall progress",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleAchievements)

	// Power-ups
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "power_ups",
		Description: "List power-ups with availability, cost, and cooldown state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handlePowerUps)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "activate_power_up",
		Description: "Activate a power-up, spending accumulated power",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"power_up_id": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"multiplier_boost", "element_revealer", "power_surge", "smart_hint"},
					"description": "Power-up to activate",
				},
			},
			Required: []string{"session_id", "power_up_id"},
		},
	}, c.handleActivatePowerUp)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_catalogs",
		Description: "List available element catalogs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListCatalogs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	catalogID, _ := args["catalog_id"].(string)

	body := map[string]string{}
	if catalogID != "" {
		body["catalog_id"] = catalogID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nCatalog: %s\n\n%s",
		session.ID, session.CatalogName, formatProgress(session.Progress))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Catalog: %s, Discovered: %d/%d, Created: %s)\n",
			s.ID, s.CatalogName, s.Stats.DiscoveredElements, s.Stats.TotalElements,
			s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nCatalog: %s\nCreated: %s\n\n%s",
		session.ID, session.CatalogName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatProgress(session.Progress))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var progress engine.GameProgress
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/progress", sessionID), nil, &progress)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatProgress(&progress)), nil
}

func (c *Client) handleStage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	elementID, _ := args["element_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	var progress engine.GameProgress
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/stage", sessionID),
		map[string]string{"element_id": elementID}, &progress)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Staged %s\n%s", elementID, formatSlots(progress.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleUnstage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	elementID, _ := args["element_id"].(string)

	var progress engine.GameProgress
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/unstage", sessionID),
		map[string]string{"element_id": elementID}, &progress)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Unstaged %s\n%s", elementID, formatSlots(progress.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCombine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)
	_ = intent

	var outcome service.CombineOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/combine", sessionID), nil, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCombineOutcome(&outcome)), nil
}

func (c *Client) handleToggleFavorite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	elementID, _ := args["element_id"].(string)

	var progress engine.GameProgress
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/favorite", sessionID),
		map[string]string{"element_id": elementID}, &progress)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	marked := false
	if progress.GameState != nil {
		for _, id := range progress.GameState.Favorites {
			if id == elementID {
				marked = true
				break
			}
		}
	}
	verb := "removed from"
	if marked {
		verb = "added to"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s %s favorites", elementID, verb)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message  string               `json:"message"`
		Progress *engine.GameProgress `json:"progress"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatProgress(response.Progress))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDiscoveries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.DiscoveryHistory
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/discoveries%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatDiscoveryHistory(&history)), nil
}

func (c *Client) handleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var stats engine.GameStats
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/stats", sessionID), nil, &stats)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf(`Progress: %d/%d elements (%d%%)

By category:
- Basic: %d
- Compound: %d
- Advanced: %d
- Rare: %d
- Scientific: %d`,
		stats.DiscoveredElements, stats.TotalElements, stats.PercentComplete,
		stats.BasicElements, stats.CompoundElements, stats.AdvancedElements,
		stats.RareElements, stats.ScientificElements)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var hint engine.Hint
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/hint", sessionID), nil, &hint)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(hint.Text), nil
}

func (c *Client) handleAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string `json:"message"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/assistant", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleAchievements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var view service.AchievementsView
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/achievements", sessionID), nil, &view)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Achievements: %d/%d unlocked (%d%%)\n\n",
		view.Progress.Unlocked, view.Progress.Total, view.Progress.Percentage))
	for _, a := range view.Achievements {
		status := " "
		if a.Unlocked {
			status = "✓"
		}
		b.WriteString(fmt.Sprintf("[%s] %s %s - %s\n", status, a.Icon, a.Name, a.Description))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handlePowerUps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		PowerUps []engine.PowerUpStatus `json:"power_ups"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/powerups", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Power-Ups:\n\n")
	for _, p := range response.PowerUps {
		state := "available"
		if !p.Available {
			state = p.Reason
		}
		b.WriteString(fmt.Sprintf("• %s %s (cost %d) - %s\n  %s\n",
			p.Icon, p.Name, p.Cost, state, p.Description))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleActivatePowerUp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	powerUpID, _ := args["power_up_id"].(string)

	var outcome service.PowerUpOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/powerups/%s/activate", sessionID, powerUpID), nil, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !outcome.Activated {
		return mcp.NewToolResultText(fmt.Sprintf("Not activated: %s", outcome.Reason)), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Activated %s\n", powerUpID))
	for _, e := range outcome.Events {
		b.WriteString(fmt.Sprintf("- %s: %s\n", e.Title, e.Message))
	}
	if outcome.Progress != nil && outcome.Progress.GameState != nil {
		b.WriteString(fmt.Sprintf("\nTotal power: %d | Multiplier: %.1fx\n",
			outcome.Progress.GameState.TotalPowerGained,
			outcome.Progress.GameState.ComboMultiplier))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListCatalogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var catalogs []service.CatalogInfo
	err := c.apiCall("GET", "/api/catalogs", nil, &catalogs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Catalogs:\n\n"
	for _, cat := range catalogs {
		result += fmt.Sprintf("• %s\n  %s\n  Elements: %d, Combinations: %d\n\n",
			cat.CatalogID, cat.Description, cat.Elements, cat.Combinations)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🧪 Doodlechemy Playground - Complete Instructions

GAME OBJECTIVE:
Discover every element in the catalog by combining pairs of elements you
have already found. You start with water, fire, earth, and air.

GAME MECHANICS:
• Staging: Two combining slots hold the elements for the next attempt.
  The same element may occupy both slots (water + water is a real recipe
  in some catalogs).
• Combining: If a recipe matches the staged pair (order does not matter),
  the result element is discovered. Either way, both slots are cleared.
• Scoring: Points scale with recipe difficulty (easy 10, medium 25,
  hard 50, very hard 100), multiplied by your combo multiplier.
• Combos: Each success raises the multiplier by 0.1 (max 3.0) and extends
  your streak. A failed attempt resets the streak and freezes the
  multiplier, but never lowers your score.
• Power: Every success grants element power. Spend accumulated power on
  power-ups.
• Levels: You gain a level for every 5 discoveries.

POWER-UPS:
• multiplier_boost (50 power): Doubles your combo multiplier, capped at 3.0
• element_revealer (100 power): Reveals a random undiscovered element
• power_surge (75 power): Grants bonus power to every discovered element
• smart_hint (30 power): A targeted hint naming a workable combination
Each has a cooldown; activation fails cleanly if you lack power or the
cooldown has not elapsed.

ACHIEVEMENTS:
18 achievements unlock automatically as you play: milestones for
discovery counts, completing categories, combo streaks, and finding
specific or rare elements. Some grant rewards, including free elements.

STRATEGY FOR AI AGENTS:
1. Check game_progress first to see what you already have.
2. Combine systematically: try each new discovery against everything
   discovered so far, including itself.
3. Failed attempts cost nothing but your streak. When your streak is
   long, prefer combinations you are confident about to protect the
   multiplier.
4. Save power for element_revealer when you are stuck near the end.
5. Use hint and the smart_hint power-up when progress stalls.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and catalog
- Progress persists across server restarts

Good luck, alchemist! 🧪✨`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatProgress(progress *engine.GameProgress) string {
	if progress == nil || progress.GameState == nil {
		return "No progress available"
	}
	state := progress.GameState

	var b strings.Builder

	discovered := 0
	for _, e := range state.Elements {
		if e.Discovered {
			discovered++
		}
	}
	b.WriteString(fmt.Sprintf("Level %d | Score: %d | Discovered: %d/%d | Multiplier: %.1fx | Streak: %d\n",
		state.Level, state.Score, discovered, len(state.Elements),
		state.ComboMultiplier, state.SuccessfulCombosInARow))
	b.WriteString(fmt.Sprintf("Power: %d | Chain: %d (max %d)\n\n",
		state.TotalPowerGained, state.CurrentComboChain, state.MaxComboChain))

	b.WriteString(formatSlots(state))

	b.WriteString("\nDiscovered elements:\n")
	for _, e := range state.Elements {
		if !e.Discovered {
			continue
		}
		fav := ""
		for _, id := range state.Favorites {
			if id == e.ID {
				fav = " ★"
				break
			}
		}
		b.WriteString(fmt.Sprintf("- %s %s (%s)%s\n", e.Symbol, e.Name, e.ID, fav))
	}

	if len(state.Discoveries) > 0 {
		d := state.Discoveries[0]
		b.WriteString(fmt.Sprintf("\nLatest discovery: %s (%s + %s)\n",
			d.Result, d.Elements[0], d.Elements[1]))
	}

	if progress.AchievementState != nil && progress.AchievementState.LastUnlocked != "" {
		b.WriteString(fmt.Sprintf("Last achievement: %s\n", progress.AchievementState.LastUnlocked))
	}

	return b.String()
}

func formatSlots(state *engine.GameState) string {
	if state == nil {
		return ""
	}
	slot := func(id string) string {
		if id == "" {
			return "(empty)"
		}
		return id
	}
	return fmt.Sprintf("Slots: [%s] + [%s]\n",
		slot(state.CombiningElements[0]), slot(state.CombiningElements[1]))
}

func formatCombineOutcome(outcome *service.CombineOutcome) string {
	var b strings.Builder

	if outcome.Success {
		b.WriteString(fmt.Sprintf("✓ %s\n", outcome.Message))
		if outcome.Element != nil {
			b.WriteString(fmt.Sprintf("Result: %s %s (%s)\n",
				outcome.Element.Symbol, outcome.Element.Name, outcome.Element.ID))
		}
		b.WriteString(fmt.Sprintf("Points: +%d | Power: +%d\n", outcome.PointsGained, outcome.PowerGained))
	} else {
		b.WriteString(fmt.Sprintf("✗ %s\n", outcome.Message))
	}

	if len(outcome.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, e := range outcome.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", e.Title, e.Message))
		}
	}

	if outcome.Progress != nil && outcome.Progress.GameState != nil {
		s := outcome.Progress.GameState
		b.WriteString(fmt.Sprintf("\nScore: %d | Level: %d | Multiplier: %.1fx | Streak: %d\n",
			s.Score, s.Level, s.ComboMultiplier, s.SuccessfulCombosInARow))
	}

	return b.String()
}

func formatDiscoveryHistory(history *service.DiscoveryHistory) string {
	result := fmt.Sprintf("Discoveries (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.Total)

	for i, d := range history.Discoveries {
		num := (history.Page-1)*history.PageSize + i + 1
		when := time.UnixMilli(d.Timestamp).Format("2006-01-02 15:04:05")
		if d.Elements[0] == "" && d.Elements[1] == "" {
			result += fmt.Sprintf("%d. %s (revealed) [%s]\n", num, d.Result, when)
		} else {
			result += fmt.Sprintf("%d. %s = %s + %s [%s]\n",
				num, d.Result, d.Elements[0], d.Elements[1], when)
		}
	}

	return result
}
