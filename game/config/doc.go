// Package config manages catalog packs for the alchemy game.
//
// A catalog pack is a JSON file describing a full element set and recipe
// list (engine.Catalog). The Manager loads packs from a directory, caches
// them, and always serves the built-in "classic" catalog as the default,
// so the game runs fine with no pack directory at all.
//
// Packs are validated with engine.ValidateCatalog at load and save time;
// a malformed pack is rejected at the boundary instead of surfacing as a
// broken game later.
package config
