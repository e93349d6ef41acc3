// Package engine implements the element alchemy game rules as a pure
// state machine.
//
// The package has two layers. The lower layer is a set of pure transition
// functions (StageElement, AttemptCombination, ToggleFavorite,
// ActivatePowerUp, ...) that take a progress snapshot and return a fresh
// one without touching the input. The upper layer is the Engine interface
// and its GameEngine implementation, which hold the current snapshot and
// delegate every operation to the pure layer.
//
// Data is split between the immutable Catalog (element definitions and
// combination recipes, loaded once) and the per-session GameProgress
// aggregate (GameState, AchievementState, PowerUpState), which is the unit
// of save and load. Discovered and unlocked flags live only in session
// state, never in the catalog.
//
// Core rules:
//
//   - Combining two staged elements looks up a recipe by unordered pair,
//     first catalog match wins. A miss clears the slots, resets the
//     success streak and reports "no reaction".
//   - A hit awards points by difficulty tier (full rate on first
//     discovery, a trickle on repeats), grows the combo multiplier by 0.1
//     up to 3.0, and grants power to both inputs scaled by the current
//     multiplier. Level is derived from the discovered count.
//   - Achievements are evaluated after every successful combination.
//     Conditions and rewards are data (tagged variants) interpreted by
//     the evaluator, so the catalog stays serializable.
//   - Power-ups spend accumulated power and are gated by per-power-up
//     cooldowns. Effects are tagged variants as well.
//
// Time and randomness are injected (GameEngine.SetClock, SetRandom) so
// cooldown boundaries and hint selection can be pinned in tests.
package engine
