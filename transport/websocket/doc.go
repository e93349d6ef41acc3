// Package websocket provides real-time push transport for the element
// alchemy game.
//
// The package uses a hub-and-spoke model: a central Hub tracks clients
// per session and fans out two kinds of messages, full progress snapshots
// ("progress_update") and lifted notification events ("game_events":
// discoveries, achievements, level-ups, power-up activations). Clients
// never send game commands over the socket; mutations go through the
// REST API and the resulting changes are pushed here.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?sessionId=ab12)
// when establishing the connection; pushes are delivered only to clients
// of the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a successful combination:
//	hub.BroadcastProgress(sessionID, outcome.Progress)
//	hub.BroadcastEvents(sessionID, outcome.Events)
//
// Each client connection runs a read pump (keepalive and close detection)
// and a write pump (pushes plus pings). A client whose send buffer stays
// full is dropped rather than blocking the hub.
package websocket
