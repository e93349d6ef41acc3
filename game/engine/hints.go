package engine

import (
	"fmt"
	"math/rand"
)

// PossibleCombinations returns the recipes the player could complete right
// now: both inputs discovered, result still unknown. Order follows the
// catalog.
func PossibleCombinations(catalog *Catalog, s *GameState) []Combination {
	if catalog == nil || s == nil {
		return nil
	}
	var out []Combination
	for _, combo := range catalog.Combinations {
		a := ElementByID(s, combo.Elements[0])
		b := ElementByID(s, combo.Elements[1])
		result := ElementByID(s, combo.Result)
		if a == nil || b == nil || result == nil {
			continue
		}
		if a.Discovered && b.Discovered && !result.Discovered {
			out = append(out, combo)
		}
	}
	return out
}

// hintTemplates phrase a hint around two element names without giving the
// result away.
var hintTemplates = []string{
	"Have you tried combining %s with %s?",
	"Something interesting happens when %s meets %s...",
	"The ancients whispered of mixing %s and %s.",
	"%s and %s might have chemistry together.",
	"What would happen if %s touched %s?",
}

// RandomHint picks a completable recipe at random and phrases a hint
// around its inputs. When nothing is completable it falls back to a
// canned message picked by overall progress: near-complete games get an
// encouragement, brand-new games get pointed at the basics.
func RandomHint(catalog *Catalog, s *GameState, rng *rand.Rand) Hint {
	possible := PossibleCombinations(catalog, s)
	if len(possible) == 0 {
		stats := ComputeStats(s)
		switch {
		case stats.PercentComplete >= 80:
			return Hint{Text: "You've discovered almost everything! The last secrets are the hardest to find."}
		case stats.DiscoveredElements <= 6:
			return Hint{Text: "Start with the basics: try combining the four classical elements with each other."}
		default:
			return Hint{Text: "Keep experimenting! Some discoveries need elements you haven't found yet."}
		}
	}

	combo := possible[rng.Intn(len(possible))]
	a := ElementByID(s, combo.Elements[0])
	b := ElementByID(s, combo.Elements[1])
	template := hintTemplates[rng.Intn(len(hintTemplates))]

	return Hint{
		Text:     fmt.Sprintf(template, a.Name, b.Name),
		Elements: combo.Elements,
		HasPair:  true,
	}
}

// AssistantMessage builds the lab assistant's narrative line, banded by
// completion percentage and usually embedding a hint.
func AssistantMessage(catalog *Catalog, s *GameState, rng *rand.Rand) string {
	stats := ComputeStats(s)
	hint := RandomHint(catalog, s, rng)

	switch {
	case stats.PercentComplete < 10:
		return fmt.Sprintf("Welcome to the lab! You've found %d elements so far. %s", stats.DiscoveredElements, hint.Text)
	case stats.PercentComplete < 25:
		return fmt.Sprintf("You're getting the hang of this! %d%% of the elements are yours. %s", stats.PercentComplete, hint.Text)
	case stats.PercentComplete < 50:
		return fmt.Sprintf("Solid progress, alchemist: %d of %d elements discovered. %s", stats.DiscoveredElements, stats.TotalElements, hint.Text)
	case stats.PercentComplete < 75:
		return fmt.Sprintf("Impressive! You're past the halfway mark at %d%%. %s", stats.PercentComplete, hint.Text)
	default:
		return fmt.Sprintf("Masterful work, %d%% complete. Only the deepest mysteries remain. %s", stats.PercentComplete, hint.Text)
	}
}
