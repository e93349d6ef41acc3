package engine

import (
	"fmt"
	"math"
)

// defaultAchievements is the fixed achievement catalog. Conditions are
// data, not code; conditionMet interprets them against a state snapshot.
var defaultAchievements = []Achievement{
	{ID: "first_discovery", Name: "First Discovery", Description: "Discover your first new element", Icon: "🔍",
		Condition: Condition{Kind: CondAnyDiscovery}},
	{ID: "novice_alchemist", Name: "Novice Alchemist", Description: "Discover 10 elements", Icon: "⚗️",
		Condition: Condition{Kind: CondDiscoveredCount, Count: 10}},
	{ID: "skilled_alchemist", Name: "Skilled Alchemist", Description: "Discover 15 elements", Icon: "🧪",
		Condition: Condition{Kind: CondDiscoveredCount, Count: 15}},
	{ID: "expert_alchemist", Name: "Expert Alchemist", Description: "Discover 25 elements", Icon: "🔬",
		Condition: Condition{Kind: CondDiscoveredCount, Count: 25}},
	{ID: "master_alchemist", Name: "Master Alchemist", Description: "Discover every element", Icon: "👑",
		Condition: Condition{Kind: CondDiscoveredCount, Count: 35}},

	{ID: "basic_mastery", Name: "Back to Basics", Description: "Discover all basic elements", Icon: "🌍",
		Condition: Condition{Kind: CondCategoryComplete, Category: CategoryBasic}},
	{ID: "compound_mastery", Name: "Compound Interest", Description: "Discover all compound elements", Icon: "⚙️",
		Condition: Condition{Kind: CondCategoryComplete, Category: CategoryCompound}},
	{ID: "advanced_mastery", Name: "Advanced Studies", Description: "Discover all advanced elements", Icon: "🎓",
		Condition: Condition{Kind: CondCategoryComplete, Category: CategoryAdvanced}},
	{ID: "scientific_mastery", Name: "Periodic Perfection", Description: "Discover all scientific elements", Icon: "🧬",
		Condition: Condition{Kind: CondCategoryComplete, Category: CategoryScientific},
		Reward:    &Reward{Kind: RewardHint, Value: "rare elements hide behind knowledge"}},

	{ID: "rare_hunter", Name: "Rare Hunter", Description: "Discover a rare-category element", Icon: "💎",
		Condition: Condition{Kind: CondCategoryAny, Category: CategoryRare}},
	{ID: "legendary_find", Name: "Legendary Find", Description: "Discover a legendary element", Icon: "🌟",
		Condition: Condition{Kind: CondRarityAny, Rarity: RarityLegendary}},
	{ID: "explorer", Name: "Explorer", Description: "Discover at least one element in every category", Icon: "🗺️",
		Condition: Condition{Kind: CondAllCategories},
		Reward:    &Reward{Kind: RewardCategory, Value: string(CategoryRare)}},

	{ID: "combo_starter", Name: "Combo Starter", Description: "Make 3 successful combinations in a row", Icon: "🔥",
		Condition: Condition{Kind: CondComboStreak, Count: 3}},
	{ID: "combo_master", Name: "Combo Master", Description: "Make 5 successful combinations in a row", Icon: "⚡",
		Condition: Condition{Kind: CondComboStreak, Count: 5}},
	{ID: "combo_legend", Name: "Combo Legend", Description: "Make 10 successful combinations in a row", Icon: "💫",
		Condition: Condition{Kind: CondComboStreak, Count: 10}},

	{ID: "life_creator", Name: "Spark of Life", Description: "Discover the Life element", Icon: "🌱",
		Condition: Condition{Kind: CondElementDiscovered, ElementID: "life"},
		Reward:    &Reward{Kind: RewardElement, Value: "bacteria"}},
	{ID: "time_bender", Name: "Time Bender", Description: "Discover the Time element", Icon: "⏳",
		Condition: Condition{Kind: CondElementDiscovered, ElementID: "time"}},
	{ID: "web_weaver", Name: "Web Weaver", Description: "Discover the Internet element", Icon: "🌐",
		Condition: Condition{Kind: CondElementDiscovered, ElementID: "internet"}},
}

// NewAchievementState returns a fresh copy of the achievement catalog with
// everything locked.
func NewAchievementState() *AchievementState {
	out := &AchievementState{
		Achievements: make([]Achievement, len(defaultAchievements)),
	}
	copy(out.Achievements, defaultAchievements)
	return out
}

// conditionMet interprets an achievement condition against a state
// snapshot. Unknown kinds evaluate false so a bad save can never unlock
// anything by accident.
func conditionMet(cond Condition, s *GameState) bool {
	if s == nil {
		return false
	}
	switch cond.Kind {
	case CondAnyDiscovery:
		return len(s.Discoveries) > 0
	case CondDiscoveredCount:
		return discoveredCount(s) >= cond.Count
	case CondCategoryComplete:
		total, found := 0, 0
		for i := range s.Elements {
			if s.Elements[i].Category == cond.Category {
				total++
				if s.Elements[i].Discovered {
					found++
				}
			}
		}
		return total > 0 && found == total
	case CondCategoryAny:
		for i := range s.Elements {
			if s.Elements[i].Category == cond.Category && s.Elements[i].Discovered {
				return true
			}
		}
		return false
	case CondRarityAny:
		for i := range s.Elements {
			if s.Elements[i].Rarity == cond.Rarity && s.Elements[i].Discovered {
				return true
			}
		}
		return false
	case CondElementDiscovered:
		el := ElementByID(s, cond.ElementID)
		return el != nil && el.Discovered
	case CondComboStreak:
		return s.SuccessfulCombosInARow >= cond.Count
	case CondAllCategories:
		found := map[Category]bool{}
		for i := range s.Elements {
			if s.Elements[i].Discovered {
				found[s.Elements[i].Category] = true
			}
		}
		for _, c := range AllCategories() {
			if !found[c] {
				return false
			}
		}
		return true
	}
	return false
}

// CheckAchievements is the pure classifier: it evaluates every locked
// achievement against the state snapshot and returns the updated list plus
// the freshly unlocked entries, in evaluation order. It never applies
// rewards; that is the caller's job.
func CheckAchievements(s *GameState, achievements []Achievement) ([]Achievement, []Achievement) {
	updated := make([]Achievement, len(achievements))
	copy(updated, achievements)

	var unlocked []Achievement
	for i := range updated {
		if updated[i].Unlocked {
			continue
		}
		if conditionMet(updated[i].Condition, s) {
			updated[i].Unlocked = true
			unlocked = append(unlocked, updated[i])
		}
	}
	return updated, unlocked
}

// ProcessAchievements runs the evaluator against progress and applies the
// results in place: unlocked flags, lastUnlocked, and element rewards
// (force-discovered). Hint and category rewards only notify. The caller
// must pass a snapshot it owns; AttemptCombination hands it the clone it
// is already building.
func ProcessAchievements(progress *GameProgress) []Notification {
	if progress == nil || progress.GameState == nil || progress.AchievementState == nil {
		return nil
	}

	updated, unlocked := CheckAchievements(progress.GameState, progress.AchievementState.Achievements)
	if len(unlocked) == 0 {
		return nil
	}
	progress.AchievementState.Achievements = updated
	progress.AchievementState.LastUnlocked = unlocked[len(unlocked)-1].ID

	var notifications []Notification
	for _, a := range unlocked {
		notifications = append(notifications, Notification{
			Kind:    NotifyAchievement,
			Title:   "Achievement Unlocked!",
			Message: fmt.Sprintf("%s: %s", a.Name, a.Description),
			Icon:    a.Icon,
		})
		if a.Reward == nil {
			continue
		}
		switch a.Reward.Kind {
		case RewardElement:
			el := ElementByID(progress.GameState, a.Reward.Value)
			if el != nil && !el.Discovered {
				el.Discovered = true
				notifications = append(notifications, Notification{
					Kind:    NotifyReward,
					Title:   "Reward!",
					Message: fmt.Sprintf("You received the %s element!", el.Name),
					Icon:    el.Symbol,
				})
			}
		case RewardHint:
			notifications = append(notifications, Notification{
				Kind:    NotifyReward,
				Title:   "Reward Hint",
				Message: a.Reward.Value,
				Icon:    "💡",
			})
		case RewardCategory:
			notifications = append(notifications, Notification{
				Kind:    NotifyReward,
				Title:   "Category Unlocked",
				Message: fmt.Sprintf("New horizons: explore the %s category!", a.Reward.Value),
				Icon:    "🔓",
			})
		}
	}
	return notifications
}

// AchievementsProgress summarizes unlock progress for the UI header
func AchievementsProgress(a *AchievementState) AchievementProgress {
	if a == nil || len(a.Achievements) == 0 {
		return AchievementProgress{}
	}
	unlocked := 0
	for i := range a.Achievements {
		if a.Achievements[i].Unlocked {
			unlocked++
		}
	}
	return AchievementProgress{
		Total:      len(a.Achievements),
		Unlocked:   unlocked,
		Percentage: int(math.Round(float64(unlocked) / float64(len(a.Achievements)) * 100)),
	}
}
