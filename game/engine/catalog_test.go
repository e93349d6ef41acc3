package engine

import (
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	if err := ValidateCatalog(DefaultCatalog()); err != nil {
		t.Fatalf("built-in catalog failed validation: %v", err)
	}
}

func TestDefaultCatalogHasNoDuplicatePairs(t *testing.T) {
	if dups := DuplicatePairs(DefaultCatalog()); len(dups) != 0 {
		t.Errorf("built-in catalog has duplicate recipe pairs: %v", dups)
	}
}

func TestDefaultCatalogBasicsStartDiscovered(t *testing.T) {
	c := DefaultCatalog()
	for _, id := range []string{"air", "water", "fire", "earth"} {
		el := c.ElementDef(id)
		if el == nil {
			t.Fatalf("missing basic element %s", id)
		}
		if !el.Discovered {
			t.Errorf("%s should start discovered", id)
		}
		if el.Category != CategoryBasic {
			t.Errorf("%s category = %s, want basic", id, el.Category)
		}
	}

	discovered := 0
	for _, el := range c.Elements {
		if el.Discovered {
			discovered++
		}
	}
	if discovered != 4 {
		t.Errorf("%d elements start discovered, want 4", discovered)
	}
}

func TestEveryElementIsReachable(t *testing.T) {
	c := DefaultCatalog()

	reachable := map[string]bool{}
	for _, el := range c.Elements {
		if el.Discovered {
			reachable[el.ID] = true
		}
	}
	// Achievement rewards can force-discover elements too.
	rewarded := map[string]bool{}
	for _, a := range defaultAchievements {
		if a.Reward != nil && a.Reward.Kind == RewardElement {
			rewarded[a.Reward.Value] = true
		}
	}

	// Fixed-point pass over the recipe list.
	for changed := true; changed; {
		changed = false
		for _, combo := range c.Combinations {
			if reachable[combo.Result] {
				continue
			}
			if reachable[combo.Elements[0]] && reachable[combo.Elements[1]] {
				reachable[combo.Result] = true
				changed = true
			}
		}
	}

	for _, el := range c.Elements {
		if !reachable[el.ID] && !rewarded[el.ID] {
			t.Errorf("element %s cannot be discovered through any recipe path", el.ID)
		}
	}
}

func TestValidateCatalogRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
	}{
		{"nil catalog", nil},
		{"empty name", func(c *Catalog) { c.Name = "" }},
		{"no elements", func(c *Catalog) { c.Elements = nil }},
		{"duplicate element id", func(c *Catalog) { c.Elements = append(c.Elements, c.Elements[0]) }},
		{"empty element id", func(c *Catalog) { c.Elements[0].ID = "" }},
		{"bad category", func(c *Catalog) { c.Elements[0].Category = "mystic" }},
		{"unknown recipe input", func(c *Catalog) { c.Combinations[0].Elements[0] = "ghost" }},
		{"unknown recipe result", func(c *Catalog) { c.Combinations[0].Result = "ghost" }},
		{"bad difficulty", func(c *Catalog) { c.Combinations[0].Difficulty = "impossible" }},
		{"nothing discovered", func(c *Catalog) {
			for i := range c.Elements {
				c.Elements[i].Discovered = false
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c *Catalog
			if tt.mutate != nil {
				c = DefaultCatalog()
				tt.mutate(c)
			}
			if err := ValidateCatalog(c); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestElementByIDNilSafety(t *testing.T) {
	if ElementByID(nil, "water") != nil {
		t.Error("nil state should return nil")
	}
	if ElementByID(&GameState{}, "water") != nil {
		t.Error("empty state should return nil")
	}
	e := newTestEngine(t)
	if ElementByID(e.Progress().GameState, "water") == nil {
		t.Error("water should resolve")
	}
	if ElementByID(e.Progress().GameState, "unknown") != nil {
		t.Error("unknown id should return nil")
	}
}

func TestDuplicatePairsDetection(t *testing.T) {
	c := DefaultCatalog()
	c.Combinations = append(c.Combinations, Combination{
		Elements: [2]string{"fire", "water"}, Result: "mud", Difficulty: DifficultyEasy,
	})
	dups := DuplicatePairs(c)
	if len(dups) != 1 || dups[0] != "fire+water" {
		t.Errorf("dups = %v, want [fire+water]", dups)
	}
}
