// Package session manages game session lifecycle and storage.
//
// The Manager keeps active sessions in memory behind short 4-character
// ids matched case-insensitively, and optionally mirrors them into a
// SessionPersistence backend. Two backends are provided: FilePersistence
// (one JSON file per session) and SQLitePersistence (a single database).
//
// Loading is defensive: a persisted session whose progress blob is
// corrupt or structurally invalid is restored as a fresh game on its
// catalog instead of failing, so a bad save can never brick a session.
// Persistence write failures are logged and never fail gameplay; the
// in-memory state remains the source of truth.
package session
