// Package mcp provides Model Context Protocol server implementation for the alchemy game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Thin proxying to the REST API server
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_progress: Full progress snapshot with discovered elements
//   - stage_element / unstage_element: Manage the combining slots
//   - combine: Attempt the staged combination
//   - toggle_favorite: Mark an element as favorite
//   - reset_game: Reset game to initial state
//   - discoveries: Retrieve discovery history with pagination
//   - stats / hint / assistant / achievements: Derived game views
//   - power_ups / activate_power_up: Power-up inspection and activation
//   - create_session: Create new game session with catalog selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_catalogs: List available element catalogs
//   - game_instructions: Comprehensive rules for the agent
//
// Architecture:
//
// The Client does not hold game state. Every tool handler issues an HTTP
// call against the running REST server and formats the JSON response as
// human-readable text, so MCP agents and browser clients always observe
// the same session state.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously explore the combination space
//   - Track score, combos, and achievements
//   - Spend power on power-ups strategically
//   - Manage multiple game sessions
package mcp
