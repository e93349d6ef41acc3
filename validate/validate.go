// Command validate provides a small CLI that validates element catalog JSON
// files in the ../catalogs directory. It checks:
//   - JSON structure and required fields
//   - Element and recipe referential integrity
//   - Category and difficulty values
//   - Duplicate unordered recipe pairs (warning: only the first match wins)
//   - Reachability: every element can be discovered from the starting set
//     via recipes or achievement rewards
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tachoss/doodlechemy-playground/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found. Warnings never flip
// Valid on their own.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

// validateCatalog loads and validates a single catalog JSON file. It performs
// structural checks, duplicate-pair detection, and reachability analysis.
func validateCatalog(filePath string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var catalog engine.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateCatalog(&catalog); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Duplicate unordered pairs are legal but suspicious: lookup takes the
	// first match, so later recipes for the same pair can never fire.
	for _, pair := range engine.DuplicatePairs(&catalog) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Duplicate recipe pair: %s (only the first recipe wins)", pair))
	}

	unreachable := unreachableElements(&catalog)
	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Reachability failure: %d/%d elements cannot be discovered", len(unreachable), len(catalog.Elements)))
		for _, id := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", id))
		}
	}

	if result.Valid {
		discovered := 0
		for _, e := range catalog.Elements {
			if e.Discovered {
				discovered++
			}
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", catalog.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Elements: %d (%d starting)", len(catalog.Elements), discovered))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Recipes: %d", len(catalog.Combinations)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Reachability: all %d elements discoverable", len(catalog.Elements)))
	}

	return result
}

// unreachableElements runs a fixed-point computation over the recipe graph:
// starting from the initially discovered set, an element becomes reachable
// when both ingredients of one of its recipes are reachable, or when an
// achievement reward grants it. Returns the ids left over, in catalog order.
func unreachableElements(catalog *engine.Catalog) []string {
	reachable := make(map[string]bool)
	for _, e := range catalog.Elements {
		if e.Discovered {
			reachable[e.ID] = true
		}
	}

	// Achievement rewards can force-discover elements independent of recipes.
	for _, a := range engine.NewAchievementState().Achievements {
		if a.Reward != nil && a.Reward.Kind == engine.RewardElement {
			reachable[a.Reward.Value] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for _, c := range catalog.Combinations {
			if reachable[c.Result] {
				continue
			}
			if reachable[c.Elements[0]] && reachable[c.Elements[1]] {
				reachable[c.Result] = true
				changed = true
			}
		}
	}

	var unreachable []string
	for _, e := range catalog.Elements {
		if !reachable[e.ID] {
			unreachable = append(unreachable, e.ID)
		}
	}
	return unreachable
}

// main scans ../catalogs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	catalogDir := "../catalogs"
	if len(os.Args) > 1 {
		catalogDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(catalogDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding catalog files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("No catalog files found in %s\n", catalogDir)
		return
	}

	allValid := true
	for _, file := range files {
		result := validateCatalog(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}

		for _, warn := range result.Warnings {
			fmt.Println("  ⚠️  " + warn)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All catalogs are valid!")
	} else {
		fmt.Println("❌ Some catalogs have errors")
		os.Exit(1)
	}
}
