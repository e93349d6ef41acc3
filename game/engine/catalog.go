package engine

import (
	"fmt"
	"sort"
)

// Catalog is the immutable element and recipe data a game is played against.
// It is loaded once (built-in default or a JSON catalog pack) and never
// mutated; all discovered/unlocked flags live in session state.
type Catalog struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Elements     []Element     `json:"elements"`
	Combinations []Combination `json:"combinations"`
}

// defaultElements is the built-in element set. The four basics start
// discovered; everything else is found through play.
var defaultElements = []Element{
	{ID: "air", Name: "Air", Symbol: "💨", Color: "#A6E1FA", Category: CategoryBasic, Discovered: true, Rarity: RarityCommon, Description: "The atmosphere around us"},
	{ID: "water", Name: "Water", Symbol: "💧", Color: "#0CA5E9", Category: CategoryBasic, Discovered: true, Rarity: RarityCommon, Description: "The essence of life, H₂O"},
	{ID: "fire", Name: "Fire", Symbol: "🔥", Color: "#F97316", Category: CategoryBasic, Discovered: true, Rarity: RarityCommon, Description: "Heat and flame"},
	{ID: "earth", Name: "Earth", Symbol: "🌍", Color: "#A16207", Category: CategoryBasic, Discovered: true, Rarity: RarityCommon, Description: "Solid ground and soil"},

	{ID: "steam", Name: "Steam", Symbol: "♨️", Color: "#94A3B8", Category: CategoryCompound, Rarity: RarityCommon, Description: "Water in gaseous form"},
	{ID: "lava", Name: "Lava", Symbol: "🌋", Color: "#EF4444", Category: CategoryCompound, Rarity: RarityUncommon, Description: "Molten rock from Earth's core"},
	{ID: "mud", Name: "Mud", Symbol: "💩", Color: "#78350F", Category: CategoryCompound, Rarity: RarityCommon, Description: "A mixture of earth and water"},
	{ID: "energy", Name: "Energy", Symbol: "⚡", Color: "#8B5CF6", Category: CategoryCompound, Rarity: RarityUncommon, Description: "The power to do work"},
	{ID: "smoke", Name: "Smoke", Symbol: "🌫️", Color: "#64748B", Category: CategoryCompound, Rarity: RarityCommon, Description: "Airborne particles from combustion"},
	{ID: "dust", Name: "Dust", Symbol: "🌫️", Color: "#D1D5DB", Category: CategoryCompound, Rarity: RarityCommon, Description: "Tiny particles of solid matter"},

	{ID: "metal", Name: "Metal", Symbol: "⚙️", Color: "#71717A", Category: CategoryCompound, Rarity: RarityUncommon, Description: "Strong, conductive material"},
	{ID: "wood", Name: "Wood", Symbol: "🌲", Color: "#84CC16", Category: CategoryCompound, Rarity: RarityCommon, Description: "Material from trees"},
	{ID: "stone", Name: "Stone", Symbol: "🪨", Color: "#6B7280", Category: CategoryCompound, Rarity: RarityCommon, Description: "Hard mineral matter"},
	{ID: "salt", Name: "Salt", Symbol: "🧂", Color: "#E2E8F0", Category: CategoryCompound, Rarity: RarityCommon, Description: "Crystal mineral, NaCl"},
	{ID: "alcohol", Name: "Alcohol", Symbol: "🍸", Color: "#CBD5E1", Category: CategoryCompound, Rarity: RarityUncommon, Description: "Organic compound with OH group"},

	{ID: "life", Name: "Life", Symbol: "🌱", Color: "#10B981", Category: CategoryAdvanced, Rarity: RarityRare, Description: "Animated, self-sustaining existence"},
	{ID: "bacteria", Name: "Bacteria", Symbol: "🦠", Color: "#14B8A6", Category: CategoryAdvanced, Rarity: RarityUncommon, Description: "Microscopic single-celled organisms"},
	{ID: "plant", Name: "Plant", Symbol: "🌿", Color: "#22C55E", Category: CategoryAdvanced, Rarity: RarityUncommon, Description: "Photosynthesizing organism"},
	{ID: "human", Name: "Human", Symbol: "👤", Color: "#EC4899", Category: CategoryAdvanced, Rarity: RarityRare, Description: "Homo sapiens, advanced life form"},
	{ID: "time", Name: "Time", Symbol: "⏳", Color: "#8B5CF6", Category: CategoryAdvanced, Rarity: RarityLegendary, Description: "The fourth dimension, ever-flowing"},

	{ID: "hydrogen", Name: "Hydrogen", Symbol: "H", Color: "#22D3EE", Category: CategoryScientific, AtomicNumber: 1, Rarity: RarityUncommon, Description: "Lightest element, makes stars shine"},
	{ID: "helium", Name: "Helium", Symbol: "He", Color: "#FB923C", Category: CategoryScientific, AtomicNumber: 2, Rarity: RarityUncommon, Description: "Noble gas, makes balloons float"},
	{ID: "carbon", Name: "Carbon", Symbol: "C", Color: "#4B5563", Category: CategoryScientific, AtomicNumber: 6, Rarity: RarityUncommon, Description: "Foundation of organic chemistry"},
	{ID: "oxygen", Name: "Oxygen", Symbol: "O", Color: "#60A5FA", Category: CategoryScientific, AtomicNumber: 8, Rarity: RarityUncommon, Description: "Essential for breathing"},
	{ID: "gold", Name: "Gold", Symbol: "Au", Color: "#F59E0B", Category: CategoryScientific, AtomicNumber: 79, Rarity: RarityRare, Description: "Precious metal, never tarnishes"},

	{ID: "plastic", Name: "Plastic", Symbol: "🧪", Color: "#9CA3AF", Category: CategoryAdvanced, Rarity: RarityUncommon, Description: "Synthetic polymer material"},
	{ID: "glass", Name: "Glass", Symbol: "🪟", Color: "#A1A1AA", Category: CategoryCompound, Rarity: RarityCommon, Description: "Transparent solid material"},
	{ID: "electricity", Name: "Electricity", Symbol: "⚡", Color: "#FACC15", Category: CategoryAdvanced, Rarity: RarityRare, Description: "Flow of electric charge"},
	{ID: "computer", Name: "Computer", Symbol: "💻", Color: "#3B82F6", Category: CategoryAdvanced, Rarity: RarityRare, Description: "Processing machine"},
	{ID: "internet", Name: "Internet", Symbol: "🌐", Color: "#2563EB", Category: CategoryAdvanced, Rarity: RarityLegendary, Description: "Global information network"},

	{ID: "magic", Name: "Magic", Symbol: "✨", Color: "#C084FC", Category: CategoryRare, Rarity: RarityLegendary, Description: "Mystical supernatural energy"},
	{ID: "dragon", Name: "Dragon", Symbol: "🐉", Color: "#EF4444", Category: CategoryRare, Rarity: RarityLegendary, Description: "Mythical fire-breathing creature"},
	{ID: "love", Name: "Love", Symbol: "❤️", Color: "#FB7185", Category: CategoryRare, Rarity: RarityRare, Description: "Deep affection and attachment"},
	{ID: "knowledge", Name: "Knowledge", Symbol: "📚", Color: "#A78BFA", Category: CategoryRare, Rarity: RarityRare, Description: "Information and understanding"},
	{ID: "universe", Name: "Universe", Symbol: "🌌", Color: "#2DD4BF", Category: CategoryRare, Rarity: RarityLegendary, Description: "All of space, time, matter and energy"},
}

// defaultCombinations is the built-in recipe list. Lookup is
// first-match-wins in this order.
var defaultCombinations = []Combination{
	{Elements: [2]string{"water", "fire"}, Result: "steam", Description: "Water evaporates when heated by fire", Difficulty: DifficultyEasy},
	{Elements: [2]string{"earth", "fire"}, Result: "lava", Description: "Earth melts under extreme heat", Difficulty: DifficultyEasy},
	{Elements: [2]string{"earth", "water"}, Result: "mud", Description: "Earth becomes mud when mixed with water", Difficulty: DifficultyEasy},
	{Elements: [2]string{"fire", "air"}, Result: "energy", Description: "Fire fed by air creates energy", Difficulty: DifficultyEasy},
	{Elements: [2]string{"air", "earth"}, Result: "dust", Description: "Air carrying tiny earth particles", Difficulty: DifficultyEasy},

	{Elements: [2]string{"fire", "stone"}, Result: "metal", Description: "Stone refined by fire yields metal", Difficulty: DifficultyMedium},
	{Elements: [2]string{"earth", "life"}, Result: "wood", Description: "Life growing from earth forms wood", Difficulty: DifficultyMedium},
	{Elements: [2]string{"earth", "energy"}, Result: "stone", Description: "Earth compressed by energy creates stone", Difficulty: DifficultyMedium},
	{Elements: [2]string{"water", "energy"}, Result: "salt", Description: "Water evaporated by energy leaves salt", Difficulty: DifficultyMedium},
	{Elements: [2]string{"water", "plant"}, Result: "alcohol", Description: "Plant matter fermented in water", Difficulty: DifficultyMedium},

	{Elements: [2]string{"energy", "steam"}, Result: "life", Description: "Energy animates water vapor into the first life", Difficulty: DifficultyHard},
	{Elements: [2]string{"life", "water"}, Result: "bacteria", Description: "Simple life forms in water", Difficulty: DifficultyHard},
	{Elements: [2]string{"life", "dust"}, Result: "plant", Description: "Life taking root in fertile dust", Difficulty: DifficultyHard},
	{Elements: [2]string{"life", "energy"}, Result: "human", Description: "Advanced life form with consciousness", Difficulty: DifficultyHard},
	{Elements: [2]string{"energy", "energy"}, Result: "time", Description: "Energy concentrated creates the fabric of time", Difficulty: DifficultyHard},

	{Elements: [2]string{"steam", "earth"}, Result: "mud", Description: "Steam condensing onto earth", Difficulty: DifficultyMedium},
	{Elements: [2]string{"lava", "water"}, Result: "stone", Description: "Lava cooled by water hardens into stone", Difficulty: DifficultyMedium},
	{Elements: [2]string{"life", "mud"}, Result: "bacteria", Description: "Life emerging from primordial mud", Difficulty: DifficultyMedium},

	{Elements: [2]string{"energy", "air"}, Result: "hydrogen", Description: "Energy splits air to release hydrogen", Difficulty: DifficultyHard},
	{Elements: [2]string{"energy", "hydrogen"}, Result: "helium", Description: "Hydrogen fusion creates helium", Difficulty: DifficultyHard},
	{Elements: [2]string{"hydrogen", "oxygen"}, Result: "water", Description: "H₂O is the chemical formula for water", Difficulty: DifficultyMedium},
	{Elements: [2]string{"plant", "energy"}, Result: "oxygen", Description: "Energized plants release breathable oxygen", Difficulty: DifficultyMedium},
	{Elements: [2]string{"smoke", "energy"}, Result: "carbon", Description: "Combustion residue condensed to pure carbon", Difficulty: DifficultyHard},
	{Elements: [2]string{"lava", "metal"}, Result: "gold", Description: "Molten rock refines metal into gold", Difficulty: DifficultyVeryHard},

	{Elements: [2]string{"wood", "fire"}, Result: "smoke", Description: "Burning wood fills the air with smoke", Difficulty: DifficultyMedium},
	{Elements: [2]string{"dust", "fire"}, Result: "glass", Description: "Silica dust melted by fire forms glass", Difficulty: DifficultyMedium},
	{Elements: [2]string{"alcohol", "energy"}, Result: "plastic", Description: "Organic compounds refined with energy create plastic", Difficulty: DifficultyHard},
	{Elements: [2]string{"metal", "energy"}, Result: "electricity", Description: "Energy flowing through metal creates electricity", Difficulty: DifficultyHard},
	{Elements: [2]string{"electricity", "metal"}, Result: "computer", Description: "Electricity controlling metal circuits", Difficulty: DifficultyVeryHard},
	{Elements: [2]string{"computer", "computer"}, Result: "internet", Description: "Networked computers share information", Difficulty: DifficultyVeryHard},

	{Elements: [2]string{"fire", "knowledge"}, Result: "dragon", Description: "Knowledge of fire manifests as a dragon", Difficulty: DifficultyVeryHard},
	{Elements: [2]string{"energy", "knowledge"}, Result: "magic", Description: "Knowledge directing energy creates magic", Difficulty: DifficultyVeryHard},
	{Elements: [2]string{"human", "human"}, Result: "love", Description: "The connection between humans", Difficulty: DifficultyVeryHard},
	{Elements: [2]string{"human", "alcohol"}, Result: "knowledge", Description: "Spirited debate distills into knowledge", Difficulty: DifficultyHard},
	{Elements: [2]string{"time", "magic"}, Result: "universe", Description: "Time woven with magic forms the fabric of the universe", Difficulty: DifficultyVeryHard},
}

// DefaultCatalog returns a fresh copy of the built-in catalog. Callers own
// the copy; the package-level data is never exposed directly.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		Name:         "classic",
		Description:  "The classic element alchemy catalog",
		Elements:     make([]Element, len(defaultElements)),
		Combinations: make([]Combination, len(defaultCombinations)),
	}
	copy(c.Elements, defaultElements)
	copy(c.Combinations, defaultCombinations)
	return c
}

// normalizePair sorts a pair of ids so unordered pairs compare equal
func normalizePair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// FindCombination returns the first recipe matching the unordered pair
// (a, b), or nil when no recipe exists. Lookup is order-independent:
// FindCombination(a, b) == FindCombination(b, a).
func (c *Catalog) FindCombination(a, b string) *Combination {
	if c == nil {
		return nil
	}
	want := normalizePair(a, b)
	for i := range c.Combinations {
		combo := &c.Combinations[i]
		if normalizePair(combo.Elements[0], combo.Elements[1]) == want {
			return combo
		}
	}
	return nil
}

// ElementDef returns the catalog definition for id, or nil if unknown
func (c *Catalog) ElementDef(id string) *Element {
	if c == nil {
		return nil
	}
	for i := range c.Elements {
		if c.Elements[i].ID == id {
			return &c.Elements[i]
		}
	}
	return nil
}

// ElementByID looks up an element in a state snapshot by id. It is nil-safe
// on every level: a nil state, nil element list, or unknown id all return
// nil rather than panicking, so callers holding partially initialized state
// stay safe.
func ElementByID(state *GameState, id string) *Element {
	if state == nil || state.Elements == nil {
		return nil
	}
	for i := range state.Elements {
		if state.Elements[i].ID == id {
			return &state.Elements[i]
		}
	}
	return nil
}

// ValidateCatalog checks a catalog for structural integrity: required
// fields, unique element ids, recipes referencing known elements, and
// difficulty values from the closed set. Violations indicate a data
// authoring bug and should fail at load time, not mid-game.
func ValidateCatalog(c *Catalog) error {
	if c == nil {
		return fmt.Errorf("catalog validation: catalog is nil")
	}
	if c.Name == "" {
		return fmt.Errorf("catalog validation: name is required")
	}
	if len(c.Elements) == 0 {
		return fmt.Errorf("catalog validation: at least one element is required")
	}

	validCategories := map[Category]bool{
		CategoryBasic: true, CategoryCompound: true, CategoryAdvanced: true,
		CategoryRare: true, CategoryScientific: true,
	}
	validDifficulties := map[Difficulty]bool{
		DifficultyEasy: true, DifficultyMedium: true,
		DifficultyHard: true, DifficultyVeryHard: true,
	}

	ids := make(map[string]bool, len(c.Elements))
	hasDiscovered := false
	for i, el := range c.Elements {
		if el.ID == "" {
			return fmt.Errorf("catalog validation: element %d has an empty id", i)
		}
		if ids[el.ID] {
			return fmt.Errorf("catalog validation: duplicate element id %q", el.ID)
		}
		ids[el.ID] = true
		if el.Name == "" {
			return fmt.Errorf("catalog validation: element %q has an empty name", el.ID)
		}
		if !validCategories[el.Category] {
			return fmt.Errorf("catalog validation: element %q has unknown category %q", el.ID, el.Category)
		}
		if el.Discovered {
			hasDiscovered = true
		}
	}
	if !hasDiscovered {
		return fmt.Errorf("catalog validation: at least one element must start discovered")
	}

	for i, combo := range c.Combinations {
		for _, id := range combo.Elements {
			if !ids[id] {
				return fmt.Errorf("catalog validation: recipe %d references unknown input %q", i, id)
			}
		}
		if !ids[combo.Result] {
			return fmt.Errorf("catalog validation: recipe %d references unknown result %q", i, combo.Result)
		}
		if combo.Difficulty != "" && !validDifficulties[combo.Difficulty] {
			return fmt.Errorf("catalog validation: recipe %d has unknown difficulty %q", i, combo.Difficulty)
		}
	}

	return nil
}

// DuplicatePairs reports unordered input pairs that appear in more than one
// recipe. They are tolerated at runtime (first match in catalog order wins)
// but usually indicate an authoring mistake, so the validation tooling
// surfaces them as warnings.
func DuplicatePairs(c *Catalog) []string {
	if c == nil {
		return nil
	}
	seen := make(map[[2]string]int)
	var dups []string
	for _, combo := range c.Combinations {
		pair := normalizePair(combo.Elements[0], combo.Elements[1])
		seen[pair]++
		if seen[pair] == 2 {
			dups = append(dups, fmt.Sprintf("%s+%s", pair[0], pair[1]))
		}
	}
	sort.Strings(dups)
	return dups
}
