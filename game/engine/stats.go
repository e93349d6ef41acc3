package engine

import (
	"math"
	"sort"
)

// ComputeStats derives discovery totals and per-category counts from a
// state snapshot. A nil or empty state yields all-zero stats.
func ComputeStats(s *GameState) GameStats {
	if s == nil || len(s.Elements) == 0 {
		return GameStats{}
	}

	stats := GameStats{TotalElements: len(s.Elements)}
	for i := range s.Elements {
		el := &s.Elements[i]
		if !el.Discovered {
			continue
		}
		stats.DiscoveredElements++
		switch el.Category {
		case CategoryBasic:
			stats.BasicElements++
		case CategoryCompound:
			stats.CompoundElements++
		case CategoryAdvanced:
			stats.AdvancedElements++
		case CategoryRare:
			stats.RareElements++
		case CategoryScientific:
			stats.ScientificElements++
		}
	}
	stats.PercentComplete = int(math.Round(float64(stats.DiscoveredElements) / float64(stats.TotalElements) * 100))
	return stats
}

// DiscoveredElements returns the discovered subset of the element list,
// in catalog order.
func DiscoveredElements(s *GameState) []Element {
	if s == nil {
		return nil
	}
	var out []Element
	for i := range s.Elements {
		if s.Elements[i].Discovered {
			out = append(out, s.Elements[i])
		}
	}
	return out
}

// ElementsByCategory groups the element list by category. Categories
// appear in a stable sorted order inside each group (catalog order is
// already stable, so only the map keys need care on the caller side).
func ElementsByCategory(s *GameState) map[Category][]Element {
	if s == nil {
		return nil
	}
	out := map[Category][]Element{}
	for i := range s.Elements {
		out[s.Elements[i].Category] = append(out[s.Elements[i].Category], s.Elements[i])
	}
	return out
}

// Categories lists the category keys present in a state, sorted, for
// deterministic iteration over ElementsByCategory.
func Categories(s *GameState) []Category {
	if s == nil {
		return nil
	}
	seen := map[Category]bool{}
	for i := range s.Elements {
		seen[s.Elements[i].Category] = true
	}
	out := make([]Category, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
