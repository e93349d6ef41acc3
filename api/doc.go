// Package api provides HTTP REST API handlers for the alchemy game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Catalog listing, retrieval, and upload
//   - Power-up listing and activation
//   - WebSocket upgrade handling
//   - Prometheus metrics exposure
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional catalog_id in body)
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/progress - Full game progress snapshot
//   - POST /api/sessions/{id}/stage - Place an element in a combining slot
//   - POST /api/sessions/{id}/unstage - Remove an element from a slot
//   - POST /api/sessions/{id}/combine - Attempt the staged combination
//   - POST /api/sessions/{id}/favorite - Toggle favorite marker
//   - POST /api/sessions/{id}/details - Select element detail view (empty id clears)
//   - POST /api/sessions/{id}/reset - Reset the game to a fresh state
//
// Power-Ups:
//   - GET /api/sessions/{id}/powerups - Status of every power-up
//   - POST /api/sessions/{id}/powerups/{powerUpId}/activate - Activate
//
// Derived Views:
//   - GET /api/sessions/{id}/stats - Aggregate statistics
//   - GET /api/sessions/{id}/hint - Combination hint
//   - GET /api/sessions/{id}/assistant - Assistant message for progress band
//   - GET /api/sessions/{id}/achievements - Achievements with unlock state
//   - GET /api/sessions/{id}/discoveries?page=&limit= - Paginated history
//
// Catalogs:
//   - GET /api/catalogs - List available catalog packs
//   - GET /api/catalogs/{name} - Get a specific catalog
//   - POST /api/catalogs - Save a new catalog pack
//
// Element-taking operations accept a JSON body:
//
//	{
//	  "element_id": "water"
//	}
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// The /ws route upgrades to WebSocket for a session given by the
// "session" query parameter; mutating endpoints broadcast the updated
// progress and any game events to connected clients. The /metrics route
// serves the Prometheus registry.
package api
