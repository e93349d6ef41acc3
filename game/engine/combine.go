package engine

import (
	"fmt"
	"log"
	"math"
	"time"
)

// Points awarded per difficulty tier. New discoveries pay the full rate,
// repeats pay a trickle so grinding known recipes stays marginally useful.
func pointsFor(difficulty Difficulty, newDiscovery bool) int {
	type payout struct{ discovery, repeat int }
	p := payout{15, 2}
	switch difficulty {
	case DifficultyEasy:
		p = payout{10, 1}
	case DifficultyMedium:
		p = payout{25, 3}
	case DifficultyHard:
		p = payout{50, 5}
	case DifficultyVeryHard:
		p = payout{100, 10}
	}
	if newDiscovery {
		return p.discovery
	}
	return p.repeat
}

// basePowerFor returns the raw power value for a difficulty tier, before
// the combo multiplier is applied.
func basePowerFor(difficulty Difficulty) int {
	switch difficulty {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 4
	case DifficultyVeryHard:
		return 8
	default:
		return 1
	}
}

// levelFor derives the player level from the discovered-element count
func levelFor(discoveredCount int) int {
	return discoveredCount/DiscoveriesPerLevel + 1
}

func discoveredCount(s *GameState) int {
	n := 0
	for i := range s.Elements {
		if s.Elements[i].Discovered {
			n++
		}
	}
	return n
}

// StageElement places elementID into the first empty staging slot. Both
// slots full is a silent no-op: the input snapshot is returned unchanged.
// The same element may occupy both slots, which is how self-combination
// recipes (e.g. energy+energy) are played.
func StageElement(progress *GameProgress, elementID string) *GameProgress {
	if progress == nil || progress.GameState == nil {
		return progress
	}
	if ElementByID(progress.GameState, elementID) == nil {
		return progress
	}

	s := progress.GameState
	slot := -1
	for i, id := range s.CombiningElements {
		if id == "" {
			slot = i
			break
		}
	}
	if slot == -1 {
		return progress
	}

	out := cloneProgress(progress)
	out.GameState.CombiningElements[slot] = elementID
	return out
}

// UnstageElement removes elementID from whichever slot holds it; a no-op
// when the element is not staged. If both slots hold the same id only the
// first occurrence is removed.
func UnstageElement(progress *GameProgress, elementID string) *GameProgress {
	if progress == nil || progress.GameState == nil {
		return progress
	}
	for i, id := range progress.GameState.CombiningElements {
		if id == elementID {
			out := cloneProgress(progress)
			out.GameState.CombiningElements[i] = ""
			return out
		}
	}
	return progress
}

// AttemptCombination resolves the two staged elements against the catalog.
// It is the central transition: on a recipe hit it applies the full score,
// level, streak, chain, power and multiplier arithmetic, marks a new
// discovery if the result was unknown, and runs achievement evaluation on
// the updated state. On a miss it clears the slots and resets the streak.
// Either way the staging slots are empty afterwards and the input snapshot
// is untouched.
func AttemptCombination(progress *GameProgress, catalog *Catalog, now time.Time) *CombineResult {
	noop := &CombineResult{Progress: progress}
	if progress == nil || progress.GameState == nil || catalog == nil {
		return noop
	}
	a, b := progress.GameState.CombiningElements[0], progress.GameState.CombiningElements[1]
	if a == "" || b == "" {
		return noop
	}

	out := cloneProgress(progress)
	s := out.GameState
	s.CombiningElements = [2]string{"", ""}

	fail := func(title, message string) *CombineResult {
		s.SuccessfulCombosInARow = 0
		v := false
		s.LastCombinationSuccess = &v
		return &CombineResult{
			Progress: out,
			Notifications: []Notification{{
				Kind:    NotifyNoReaction,
				Title:   title,
				Message: message,
				Icon:    "💨",
			}},
		}
	}

	combo := catalog.FindCombination(a, b)
	if combo == nil {
		return fail("No Reaction", "These elements don't seem to react with each other.")
	}

	result := ElementByID(s, combo.Result)
	if result == nil {
		// Recipe points at an element missing from the session's list.
		// A data bug, but the player just sees a failed reaction.
		log.Printf("[ENGINE] Warning: recipe %s+%s references unknown result %q", a, b, combo.Result)
		return fail("No Reaction", "These elements don't seem to react with each other.")
	}

	isNew := !result.Discovered
	result.Discovered = true

	var notifications []Notification
	var discovery *Discovery

	if isNew {
		pair := normalizePair(a, b)
		d := Discovery{
			ID:          fmt.Sprintf("%s-%d", combo.Result, now.UnixMilli()),
			Result:      combo.Result,
			Timestamp:   now.UnixMilli(),
			Elements:    pair,
			Description: combo.Description,
		}
		s.Discoveries = append([]Discovery{d}, s.Discoveries...)
		discovery = &d

		notifications = append(notifications, Notification{
			Kind:    NotifyDiscovery,
			Title:   "New Discovery!",
			Message: fmt.Sprintf("You discovered %s! %s", result.Name, combo.Description),
			Icon:    result.Symbol,
		})
	}

	points := pointsFor(combo.Difficulty, isNew)
	s.Score += points

	prevLevel := s.Level
	s.Level = levelFor(discoveredCount(s))
	if s.Level > prevLevel {
		notifications = append(notifications, Notification{
			Kind:    NotifyLevelUp,
			Title:   "Level Up!",
			Message: fmt.Sprintf("You reached level %d!", s.Level),
			Icon:    "🎉",
		})
	}

	s.SuccessfulCombosInARow++
	v := true
	s.LastCombinationSuccess = &v

	for _, id := range [2]string{a, b} {
		s.CombinationCounts[id]++
	}

	s.CurrentComboChain++
	if s.CurrentComboChain > s.MaxComboChain {
		s.MaxComboChain = s.CurrentComboChain
	}

	// Power gain applies on every successful combination, new or repeat.
	powerGain := int(math.Round(float64(basePowerFor(combo.Difficulty)) * s.ComboMultiplier))
	for _, id := range [2]string{a, b} {
		s.ElementPowers[id] += powerGain
	}
	s.TotalPowerGained += powerGain

	s.ComboMultiplier += MultiplierStep
	if s.ComboMultiplier > MaxMultiplier {
		s.ComboMultiplier = MaxMultiplier
	}

	achNotifications := ProcessAchievements(out)
	notifications = append(notifications, achNotifications...)

	// An achievement reward may have force-discovered elements.
	s.Level = levelFor(discoveredCount(s))

	return &CombineResult{
		Progress:      out,
		Success:       true,
		NewDiscovery:  discovery,
		Element:       result,
		PointsGained:  points,
		PowerGained:   powerGain,
		Notifications: notifications,
	}
}

// ToggleFavorite adds elementID to the favorites list, or removes it when
// already present. Unknown ids are tolerated and simply toggle like any
// other value.
func ToggleFavorite(progress *GameProgress, elementID string) *GameProgress {
	if progress == nil || progress.GameState == nil || elementID == "" {
		return progress
	}
	out := cloneProgress(progress)
	s := out.GameState
	for i, id := range s.Favorites {
		if id == elementID {
			s.Favorites = append(s.Favorites[:i], s.Favorites[i+1:]...)
			return out
		}
	}
	s.Favorites = append(s.Favorites, elementID)
	return out
}

// ViewElementDetails selects elementID's detail view, replacing any previous
// selection. An empty id clears the selection.
func ViewElementDetails(progress *GameProgress, elementID string) *GameProgress {
	if progress == nil || progress.GameState == nil {
		return progress
	}
	out := cloneProgress(progress)
	out.GameState.ViewedElementDetails = elementID
	return out
}
