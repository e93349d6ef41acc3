package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine is the behavior contract for a single game. Implementations hold
// the current progress snapshot; every mutating call computes a fresh
// snapshot via the pure transition functions and swaps it in. The engine
// itself is not safe for concurrent use; callers that serve one game to
// multiple goroutines must serialize access per session.
type Engine interface {
	// Progress returns the current snapshot. Callers must treat it as
	// read-only.
	Progress() *GameProgress

	// Catalog returns the immutable catalog the game is played against.
	Catalog() *Catalog

	// Stage places an element in the first free staging slot.
	Stage(elementID string) *GameProgress

	// Unstage removes an element from its staging slot.
	Unstage(elementID string) *GameProgress

	// Combine attempts to combine the two staged elements.
	Combine() *CombineResult

	// ToggleFavorite flips an element's membership in the favorites list.
	ToggleFavorite(elementID string) *GameProgress

	// ViewDetails selects an element's detail view; an empty id deselects.
	ViewDetails(elementID string) *GameProgress

	// Stats derives discovery totals from the current snapshot.
	Stats() GameStats

	// Hint suggests a completable combination, or a canned message when
	// none exists.
	Hint() Hint

	// Assistant builds the lab assistant's progress narrative.
	Assistant() string

	// Achievements returns the current achievement state.
	Achievements() *AchievementState

	// PowerUps lists the power-up catalog with per-entry availability.
	PowerUps() []PowerUpStatus

	// ActivatePowerUp fires a power-up by id, gated on cost and cooldown.
	ActivatePowerUp(powerUpID string) *PowerUpActivation

	// Reset discards all progress and starts a fresh game.
	Reset() *GameProgress
}

// GameEngine is the standard Engine implementation. The clock and random
// source are injectable so tests can pin cooldown boundaries and hint
// selection.
type GameEngine struct {
	catalog  *Catalog
	progress *GameProgress
	rng      *rand.Rand
	now      func() time.Time
}

// NewEngine creates an engine for the given catalog with fresh progress.
// The catalog is validated once here; a malformed catalog is a data
// authoring bug and fails fast instead of surfacing mid-game.
func NewEngine(catalog *Catalog) (*GameEngine, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &GameEngine{
		catalog:  catalog,
		progress: NewGameProgress(catalog),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}, nil
}

// NewEngineWithDefaults creates an engine on the built-in catalog
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultCatalog())
	if err != nil {
		// The built-in catalog is covered by tests; this cannot happen
		// outside a broken build.
		panic(err)
	}
	return e
}

// SetClock replaces the engine's time source. Intended for tests.
func (e *GameEngine) SetClock(now func() time.Time) {
	e.now = now
}

// SetRandom replaces the engine's random source. Intended for tests.
func (e *GameEngine) SetRandom(rng *rand.Rand) {
	e.rng = rng
}

// SetProgress installs a loaded progress snapshot, repairing any missing
// maps or stale achievement definitions from older saves.
func (e *GameEngine) SetProgress(p *GameProgress) {
	e.progress = normalizeProgress(p, e.catalog)
}

func (e *GameEngine) Progress() *GameProgress { return e.progress }
func (e *GameEngine) Catalog() *Catalog       { return e.catalog }

func (e *GameEngine) Stage(elementID string) *GameProgress {
	e.progress = StageElement(e.progress, elementID)
	return e.progress
}

func (e *GameEngine) Unstage(elementID string) *GameProgress {
	e.progress = UnstageElement(e.progress, elementID)
	return e.progress
}

func (e *GameEngine) Combine() *CombineResult {
	result := AttemptCombination(e.progress, e.catalog, e.now())
	e.progress = result.Progress
	return result
}

func (e *GameEngine) ToggleFavorite(elementID string) *GameProgress {
	e.progress = ToggleFavorite(e.progress, elementID)
	return e.progress
}

func (e *GameEngine) ViewDetails(elementID string) *GameProgress {
	e.progress = ViewElementDetails(e.progress, elementID)
	return e.progress
}

func (e *GameEngine) Stats() GameStats {
	return ComputeStats(e.progress.GameState)
}

func (e *GameEngine) Hint() Hint {
	return RandomHint(e.catalog, e.progress.GameState, e.rng)
}

func (e *GameEngine) Assistant() string {
	return AssistantMessage(e.catalog, e.progress.GameState, e.rng)
}

func (e *GameEngine) Achievements() *AchievementState {
	return e.progress.AchievementState
}

func (e *GameEngine) PowerUps() []PowerUpStatus {
	return PowerUpStatuses(e.progress.GameState, e.progress.PowerUpState, e.now())
}

func (e *GameEngine) ActivatePowerUp(powerUpID string) *PowerUpActivation {
	activation := ActivatePowerUp(e.progress, e.catalog, powerUpID, e.rng, e.now())
	if activation.Activated {
		e.progress = &GameProgress{
			GameState:        activation.GameState,
			AchievementState: e.progress.AchievementState,
			PowerUpState:     activation.PowerUpState,
		}
	}
	return activation
}

func (e *GameEngine) Reset() *GameProgress {
	e.progress = NewGameProgress(e.catalog)
	return e.progress
}
