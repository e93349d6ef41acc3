// Package service provides the business logic layer for the element
// alchemy game.
//
// The service layer sits between the transports (HTTP, WebSocket, MCP)
// and the game engine. It owns session isolation: each session has its
// own engine instance and a per-session mutex, so concurrent requests
// against one game are serialized while different games proceed in
// parallel. Every mutation triggers save-on-mutation through the session
// manager; persistence failures are logged and never fail the request.
//
// Core interfaces:
//
//   - GameService: the high-level operations exposed to transports.
//   - SessionManager: session creation, retrieval and lifecycle.
//   - CatalogManager: catalog pack loading and validation.
//
// Engine notifications are lifted into GameEvent values (uuid identity,
// session id, timestamp) so transports can deliver them as toasts or
// WebSocket pushes.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	catalogMgr, _ := config.NewManager("catalogs")
//	svc := service.NewGameService(sessionMgr, catalogMgr)
//
//	info, err := svc.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc.Stage(ctx, info.ID, "water")
//	svc.Stage(ctx, info.ID, "fire")
//	outcome, err := svc.Combine(ctx, info.ID)
package service
