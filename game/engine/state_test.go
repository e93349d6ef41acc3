package engine

import (
	"testing"
)

func TestNewGameProgressDefaults(t *testing.T) {
	p := NewGameProgress(DefaultCatalog())
	s := p.GameState

	if s.Level != 1 {
		t.Errorf("level = %d, want 1", s.Level)
	}
	if s.ComboMultiplier != MinMultiplier {
		t.Errorf("multiplier = %v, want %v", s.ComboMultiplier, MinMultiplier)
	}
	if s.LastCombinationSuccess != nil {
		t.Error("lastCombinationSuccess should start nil")
	}
	if len(s.Discoveries) != 0 {
		t.Errorf("discoveries = %d, want 0", len(s.Discoveries))
	}
	if p.AchievementState == nil || len(p.AchievementState.Achievements) != 18 {
		t.Fatalf("achievement state = %+v", p.AchievementState)
	}
	if p.PowerUpState == nil || p.PowerUpState.LastUsed == nil {
		t.Fatalf("power-up state = %+v", p.PowerUpState)
	}
}

func TestCloneProgressIsDeep(t *testing.T) {
	p := NewGameProgress(DefaultCatalog())
	p.GameState.Favorites = []string{"water"}
	p.GameState.ElementPowers["fire"] = 5
	p.PowerUpState.LastUsed["smart_hint"] = 123

	c := cloneProgress(p)
	c.GameState.Elements[0].Discovered = false
	c.GameState.Favorites[0] = "fire"
	c.GameState.ElementPowers["fire"] = 99
	c.PowerUpState.LastUsed["smart_hint"] = 456
	c.AchievementState.Achievements[0].Unlocked = true

	if !p.GameState.Elements[0].Discovered {
		t.Error("clone shares element slice with original")
	}
	if p.GameState.Favorites[0] != "water" {
		t.Error("clone shares favorites slice with original")
	}
	if p.GameState.ElementPowers["fire"] != 5 {
		t.Error("clone shares power map with original")
	}
	if p.PowerUpState.LastUsed["smart_hint"] != 123 {
		t.Error("clone shares lastUsed map with original")
	}
	if p.AchievementState.Achievements[0].Unlocked {
		t.Error("clone shares achievement slice with original")
	}
}

func TestNormalizeProgressRepairsMissingFields(t *testing.T) {
	catalog := DefaultCatalog()

	// Nil and stateless blobs fall back to a fresh game.
	for _, p := range []*GameProgress{nil, {}} {
		fixed := normalizeProgress(p, catalog)
		if fixed == nil || fixed.GameState == nil || len(fixed.GameState.Elements) == 0 {
			t.Fatalf("fallback progress incomplete: %+v", fixed)
		}
	}

	// A save missing maps gets them rebuilt and keeps its data.
	p := &GameProgress{GameState: &GameState{Score: 50}}
	fixed := normalizeProgress(p, catalog)
	s := fixed.GameState
	if s.Score != 50 {
		t.Errorf("score lost during repair: %d", s.Score)
	}
	if s.ElementPowers == nil || s.CombinationCounts == nil {
		t.Error("maps not rebuilt")
	}
	if s.ComboMultiplier != MinMultiplier {
		t.Errorf("zero multiplier should be clamped to %v, got %v", MinMultiplier, s.ComboMultiplier)
	}
	if s.Level != 1 {
		t.Errorf("zero level should be clamped to 1, got %d", s.Level)
	}
	if len(s.Elements) != len(catalog.Elements) {
		t.Errorf("element list not restored from catalog")
	}
	if fixed.AchievementState == nil || fixed.PowerUpState == nil {
		t.Error("sibling states not rebuilt")
	}
}

func TestNormalizeProgressKeepsUnlockedFlags(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewGameProgress(catalog)
	p.AchievementState.Achievements[0].Unlocked = true
	unlockedID := p.AchievementState.Achievements[0].ID

	// Simulate an old save with sparse achievement entries.
	p.AchievementState = &AchievementState{
		Achievements: []Achievement{{ID: unlockedID, Unlocked: true}},
		LastUnlocked: unlockedID,
	}
	fixed := normalizeProgress(p, catalog)

	if len(fixed.AchievementState.Achievements) != 18 {
		t.Fatalf("definitions not re-seeded, got %d", len(fixed.AchievementState.Achievements))
	}
	for _, a := range fixed.AchievementState.Achievements {
		if a.ID == unlockedID {
			if !a.Unlocked {
				t.Error("saved unlocked flag lost")
			}
			if a.Name == "" {
				t.Error("definition fields not restored")
			}
		}
	}
	if fixed.AchievementState.LastUnlocked != unlockedID {
		t.Errorf("lastUnlocked = %q, want %q", fixed.AchievementState.LastUnlocked, unlockedID)
	}
}
