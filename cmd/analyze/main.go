// Command analyze prints quick, human-readable heuristics about element
// catalogs. It summarizes element counts per category, recipe difficulty
// distribution, total attainable base points, discovery tiers (how many
// combination waves each element is away from the starting set), and
// dead-end elements that never feed another recipe.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
)

func main() {
	if len(os.Args) > 1 {
		for _, path := range os.Args[1:] {
			fmt.Printf("\n=== Analyzing %s ===\n", path)
			catalog, err := loadCatalog(path)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			analyzeCatalog(catalog)
		}
		return
	}

	fmt.Println("\n=== Analyzing built-in catalog ===")
	analyzeCatalog(engine.DefaultCatalog())
}

func loadCatalog(path string) (*engine.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog engine.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func analyzeCatalog(catalog *engine.Catalog) {
	fmt.Printf("Name: %s\n", catalog.Name)
	fmt.Printf("Elements: %d\n", len(catalog.Elements))
	fmt.Printf("Recipes: %d\n", len(catalog.Combinations))

	byCategory := map[engine.Category]int{}
	starting := 0
	for _, e := range catalog.Elements {
		byCategory[e.Category]++
		if e.Discovered {
			starting++
		}
	}
	fmt.Printf("Starting elements: %d\n", starting)
	fmt.Println("\nBy category:")
	for _, cat := range engine.AllCategories() {
		fmt.Printf("  %-12s %d\n", cat, byCategory[cat])
	}

	byDifficulty := map[engine.Difficulty]int{}
	totalPoints := 0
	for _, c := range catalog.Combinations {
		byDifficulty[c.Difficulty]++
		totalPoints += basePoints(c.Difficulty)
	}
	fmt.Println("\nBy difficulty:")
	for _, d := range []engine.Difficulty{
		engine.DifficultyEasy, engine.DifficultyMedium,
		engine.DifficultyHard, engine.DifficultyVeryHard,
	} {
		fmt.Printf("  %-12s %d\n", d, byDifficulty[d])
	}
	fmt.Printf("Total attainable base points (no multiplier): %d\n", totalPoints)

	tiers := discoveryTiers(catalog)
	maxTier := 0
	histogram := map[int]int{}
	var unreachable []string
	for _, e := range catalog.Elements {
		tier, ok := tiers[e.ID]
		if !ok {
			unreachable = append(unreachable, e.ID)
			continue
		}
		histogram[tier]++
		if tier > maxTier {
			maxTier = tier
		}
	}

	fmt.Println("\nDiscovery tiers (waves from the starting set):")
	for tier := 0; tier <= maxTier; tier++ {
		fmt.Printf("  tier %d: %d elements\n", tier, histogram[tier])
	}
	if len(unreachable) > 0 {
		fmt.Printf("⚠️  WARNING: %d elements unreachable by recipes alone: %v\n", len(unreachable), unreachable)
		fmt.Println("   (achievement rewards may still grant them; run the validate tool for the full check)")
	} else {
		fmt.Println("✅ Every element is reachable by recipes from the starting set")
	}

	if dups := engine.DuplicatePairs(catalog); len(dups) > 0 {
		fmt.Printf("⚠️  WARNING: duplicate recipe pairs (only the first wins): %v\n", dups)
	}

	deadEnds := deadEndElements(catalog)
	fmt.Printf("\nDead-end elements (never an ingredient): %d\n", len(deadEnds))
	for _, id := range deadEnds {
		fmt.Printf("  %s\n", id)
	}
}

// discoveryTiers assigns each element the combination wave in which it first
// becomes discoverable: starting elements are tier 0, anything producible
// from tier<=n inputs is tier n+1. Elements unreachable by recipes are
// absent from the map.
func discoveryTiers(catalog *engine.Catalog) map[string]int {
	tiers := map[string]int{}
	for _, e := range catalog.Elements {
		if e.Discovered {
			tiers[e.ID] = 0
		}
	}

	for wave := 1; ; wave++ {
		changed := false
		for _, c := range catalog.Combinations {
			if _, done := tiers[c.Result]; done {
				continue
			}
			t0, ok0 := tiers[c.Elements[0]]
			t1, ok1 := tiers[c.Elements[1]]
			if ok0 && ok1 && t0 < wave && t1 < wave {
				tiers[c.Result] = wave
				changed = true
			}
		}
		if !changed {
			return tiers
		}
	}
}

// deadEndElements returns ids that appear in no recipe as an ingredient,
// sorted. The final-tier elements of a catalog usually land here; an
// unexpected entry in an early tier suggests a missing recipe.
func deadEndElements(catalog *engine.Catalog) []string {
	used := map[string]bool{}
	for _, c := range catalog.Combinations {
		used[c.Elements[0]] = true
		used[c.Elements[1]] = true
	}

	var dead []string
	for _, e := range catalog.Elements {
		if !used[e.ID] {
			dead = append(dead, e.ID)
		}
	}
	sort.Strings(dead)
	return dead
}

func basePoints(d engine.Difficulty) int {
	switch d {
	case engine.DifficultyEasy:
		return 10
	case engine.DifficultyMedium:
		return 25
	case engine.DifficultyHard:
		return 50
	case engine.DifficultyVeryHard:
		return 100
	default:
		return 15
	}
}
