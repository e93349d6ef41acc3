package engine

// Category groups elements by their place in the discovery tree
type Category string

const (
	CategoryBasic      Category = "basic"
	CategoryCompound   Category = "compound"
	CategoryAdvanced   Category = "advanced"
	CategoryRare       Category = "rare"
	CategoryScientific Category = "scientific"
)

// AllCategories returns every element category in display order
func AllCategories() []Category {
	return []Category{CategoryBasic, CategoryCompound, CategoryAdvanced, CategoryRare, CategoryScientific}
}

// Rarity is the cosmetic rarity tier of an element
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Difficulty is the tier of a combination recipe, driving score and power gain
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyVeryHard Difficulty = "very-hard"

	// Validation constants
	MinMultiplier       = 1.0
	MaxMultiplier       = 3.0
	MultiplierStep      = 0.1
	DiscoveriesPerLevel = 5
	WebSocketBufferSize = 256
)

// Element is a single discoverable element. Identity fields are fixed at
// catalog load; Discovered is the only field that mutates, and only from
// false to true.
type Element struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	Color        string   `json:"color"`
	Category     Category `json:"category"`
	Discovered   bool     `json:"discovered"`
	Description  string   `json:"description,omitempty"`
	AtomicNumber int      `json:"atomic_number,omitempty"`
	Rarity       Rarity   `json:"rarity,omitempty"`
	Group        string   `json:"group,omitempty"`
}

// Combination is an immutable recipe: an unordered pair of element ids
// producing a result element. The catalog should hold at most one recipe per
// unordered pair; lookup takes the first match in catalog order.
type Combination struct {
	Elements    [2]string  `json:"elements"`
	Result      string     `json:"result"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Discovery records the first time a result element was produced. Records are
// appended most-recent-first and never mutated or removed.
type Discovery struct {
	ID          string    `json:"id"`
	Result      string    `json:"result"`
	Timestamp   int64     `json:"timestamp"`
	Elements    [2]string `json:"elements"`
	Description string    `json:"description"`
}

// GameState is the per-session mutable aggregate. Transition functions never
// mutate a GameState in place; they return a fresh copy.
//
// CombiningElements holds up to two staged element ids; an empty string marks
// an empty slot. LastCombinationSuccess is tri-state: nil before the first
// attempt, then the outcome of the most recent one. ViewedElementDetails is
// the currently selected detail view; empty means nothing is selected.
type GameState struct {
	Elements               []Element      `json:"elements"`
	Discoveries            []Discovery    `json:"discoveries"`
	CombiningElements      [2]string      `json:"combining_elements"`
	Level                  int            `json:"level"`
	Score                  int            `json:"score"`
	SuccessfulCombosInARow int            `json:"successful_combos_in_a_row"`
	LastCombinationSuccess *bool          `json:"last_combination_success"`
	ViewedElementDetails   string         `json:"viewed_element_details"`
	CombinationCounts      map[string]int `json:"combination_counts"`
	Favorites              []string       `json:"favorites"`
	CurrentComboChain      int            `json:"current_combo_chain"`
	MaxComboChain          int            `json:"max_combo_chain"`
	ElementPowers          map[string]int `json:"element_powers"`
	ComboMultiplier        float64        `json:"combo_multiplier"`
	TotalPowerGained       int            `json:"total_power_gained"`
}

// ConditionKind tags an achievement unlock condition. Conditions are data,
// not callbacks, and are interpreted by a single evaluator.
type ConditionKind string

const (
	CondAnyDiscovery      ConditionKind = "any_discovery"
	CondDiscoveredCount   ConditionKind = "discovered_count"
	CondCategoryComplete  ConditionKind = "category_complete"
	CondCategoryAny       ConditionKind = "category_any"
	CondRarityAny         ConditionKind = "rarity_any"
	CondElementDiscovered ConditionKind = "element_discovered"
	CondComboStreak       ConditionKind = "combo_streak"
	CondAllCategories     ConditionKind = "all_categories"
)

// Condition is the unlock predicate of an achievement, evaluated against a
// GameState snapshot. Only the fields relevant to Kind are set.
type Condition struct {
	Kind      ConditionKind `json:"kind"`
	Count     int           `json:"count,omitempty"`
	Category  Category      `json:"category,omitempty"`
	Rarity    Rarity        `json:"rarity,omitempty"`
	ElementID string        `json:"element_id,omitempty"`
}

// RewardKind tags an achievement reward
type RewardKind string

const (
	RewardElement  RewardKind = "element"
	RewardHint     RewardKind = "hint"
	RewardCategory RewardKind = "category"
)

// Reward is granted when an achievement unlocks. Element rewards
// force-discover the named element; hint and category rewards are
// notify-only.
type Reward struct {
	Kind  RewardKind `json:"kind"`
	Value string     `json:"value"`
}

// Achievement pairs a fixed definition with the per-session unlocked flag.
// Unlocked is monotonic: it flips false to true exactly once.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Unlocked    bool      `json:"unlocked"`
	Condition   Condition `json:"condition"`
	Reward      *Reward   `json:"reward,omitempty"`
}

// AchievementState holds the session's achievements alongside the id of the
// most recently unlocked one.
type AchievementState struct {
	Achievements []Achievement `json:"achievements"`
	LastUnlocked string        `json:"last_unlocked,omitempty"`
}

// AchievementProgress summarizes how many achievements are unlocked
type AchievementProgress struct {
	Total      int `json:"total"`
	Unlocked   int `json:"unlocked"`
	Percentage int `json:"percentage"`
}

// EffectKind tags a power-up effect, dispatched by a single interpreter
type EffectKind string

const (
	EffectMultiplierBoost EffectKind = "multiplier_boost"
	EffectRevealElement   EffectKind = "reveal_element"
	EffectPowerSurge      EffectKind = "power_surge"
	EffectSmartHint       EffectKind = "smart_hint"
)

// PowerUp is an immutable power-up definition. Cooldown is in seconds. The
// mutable activation bits live in PowerUpState, not here.
type PowerUp struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Cost        int        `json:"cost"`
	Cooldown    int        `json:"cooldown"`
	Effect      EffectKind `json:"effect"`
}

// PowerUpState is the session-owned mutable side of the power-up catalog:
// last-used timestamps (unix seconds) and the activation log.
type PowerUpState struct {
	LastUsed map[string]int64 `json:"last_used"`
	Active   []string         `json:"active"`
}

// PowerUpStatus is a power-up definition joined with its session availability
type PowerUpStatus struct {
	PowerUp
	LastUsed  int64  `json:"last_used,omitempty"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Availability reports whether a power-up can be activated right now, and if
// not, a user-facing reason ("Cooldown: Ns remaining", "Need N more power").
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// GameProgress is the top-level persisted aggregate and the unit of
// save/load. PowerUpState may be absent in older snapshots; loaders fall
// back to a fresh one.
type GameProgress struct {
	GameState        *GameState        `json:"game_state"`
	AchievementState *AchievementState `json:"achievement_state"`
	PowerUpState     *PowerUpState     `json:"power_up_state,omitempty"`
}

// NotificationKind classifies a user-facing notification event
type NotificationKind string

const (
	NotifyNoReaction  NotificationKind = "no_reaction"
	NotifyDiscovery   NotificationKind = "discovery"
	NotifyLevelUp     NotificationKind = "level_up"
	NotifyAchievement NotificationKind = "achievement"
	NotifyReward      NotificationKind = "reward"
	NotifyPowerUp     NotificationKind = "power_up"
	NotifyHint        NotificationKind = "hint"
	NotifyError       NotificationKind = "error"
)

// Notification is a side-effect report for the caller to surface (toast,
// banner, log line). The engine only emits these; delivery is external.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Icon    string           `json:"icon,omitempty"`
}

// CombineResult is the outcome of a combination attempt
type CombineResult struct {
	Progress      *GameProgress  `json:"progress"`
	Success       bool           `json:"success"`
	NewDiscovery  *Discovery     `json:"new_discovery,omitempty"`
	Element       *Element       `json:"element,omitempty"`
	PointsGained  int            `json:"points_gained"`
	PowerGained   int            `json:"power_gained"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// PowerUpActivation is the outcome of a power-up activation attempt
type PowerUpActivation struct {
	GameState     *GameState     `json:"game_state"`
	PowerUpState  *PowerUpState  `json:"power_up_state"`
	Activated     bool           `json:"activated"`
	Reason        string         `json:"reason,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// Hint is a suggestion for the player, optionally naming the pair of element
// ids it refers to so the UI can highlight them.
type Hint struct {
	Text     string    `json:"text"`
	Elements [2]string `json:"elements,omitempty"`
	HasPair  bool      `json:"has_pair"`
}

// GameStats derives progress counts from a state snapshot
type GameStats struct {
	TotalElements      int `json:"total_elements"`
	DiscoveredElements int `json:"discovered_elements"`
	PercentComplete    int `json:"percent_complete"`
	BasicElements      int `json:"basic_elements"`
	CompoundElements   int `json:"compound_elements"`
	AdvancedElements   int `json:"advanced_elements"`
	RareElements       int `json:"rare_elements"`
	ScientificElements int `json:"scientific_elements"`
}
