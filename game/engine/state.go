package engine

// NewGameState builds a fresh session state from a catalog. The catalog's
// elements are copied so each session owns its discovered flags.
func NewGameState(catalog *Catalog) *GameState {
	elements := make([]Element, len(catalog.Elements))
	copy(elements, catalog.Elements)

	return &GameState{
		Elements:          elements,
		Discoveries:       []Discovery{},
		CombiningElements: [2]string{"", ""},
		Level:             1,
		Score:             0,
		CombinationCounts: map[string]int{},
		Favorites:         []string{},
		ElementPowers:     map[string]int{},
		ComboMultiplier:   MinMultiplier,
	}
}

// NewGameProgress builds a fresh progress blob: a new game state plus the
// full achievement list (all locked) and empty power-up state.
func NewGameProgress(catalog *Catalog) *GameProgress {
	return &GameProgress{
		GameState:        NewGameState(catalog),
		AchievementState: NewAchievementState(),
		PowerUpState:     NewPowerUpState(),
	}
}

// cloneState returns a deep copy of a state snapshot. Transitions never
// mutate their input; they clone, modify the clone, and return it.
func cloneState(s *GameState) *GameState {
	if s == nil {
		return nil
	}
	out := *s

	out.Elements = make([]Element, len(s.Elements))
	copy(out.Elements, s.Elements)

	out.Discoveries = make([]Discovery, len(s.Discoveries))
	copy(out.Discoveries, s.Discoveries)

	out.CombinationCounts = make(map[string]int, len(s.CombinationCounts))
	for k, v := range s.CombinationCounts {
		out.CombinationCounts[k] = v
	}

	out.Favorites = make([]string, len(s.Favorites))
	copy(out.Favorites, s.Favorites)

	out.ElementPowers = make(map[string]int, len(s.ElementPowers))
	for k, v := range s.ElementPowers {
		out.ElementPowers[k] = v
	}

	if s.LastCombinationSuccess != nil {
		v := *s.LastCombinationSuccess
		out.LastCombinationSuccess = &v
	}

	return &out
}

// cloneAchievementState deep-copies achievement state
func cloneAchievementState(a *AchievementState) *AchievementState {
	if a == nil {
		return nil
	}
	out := &AchievementState{
		Achievements: make([]Achievement, len(a.Achievements)),
		LastUnlocked: a.LastUnlocked,
	}
	copy(out.Achievements, a.Achievements)
	return out
}

// clonePowerUpState deep-copies power-up state
func clonePowerUpState(p *PowerUpState) *PowerUpState {
	if p == nil {
		return nil
	}
	out := &PowerUpState{
		LastUsed: make(map[string]int64, len(p.LastUsed)),
		Active:   make([]string, len(p.Active)),
	}
	for k, v := range p.LastUsed {
		out.LastUsed[k] = v
	}
	copy(out.Active, p.Active)
	return out
}

// cloneProgress deep-copies a full progress blob
func cloneProgress(p *GameProgress) *GameProgress {
	if p == nil {
		return nil
	}
	return &GameProgress{
		GameState:        cloneState(p.GameState),
		AchievementState: cloneAchievementState(p.AchievementState),
		PowerUpState:     clonePowerUpState(p.PowerUpState),
	}
}

// normalizeProgress repairs a loaded progress blob so downstream code can
// rely on non-nil maps and slices. Old saves may predate some fields; maps
// that unmarshal as nil get fresh instances and missing achievement or
// power-up state is rebuilt from defaults (unlocked flags from the save are
// kept where ids still match).
func normalizeProgress(p *GameProgress, catalog *Catalog) *GameProgress {
	if p == nil || p.GameState == nil {
		return NewGameProgress(catalog)
	}

	s := p.GameState
	if s.Elements == nil {
		s.Elements = make([]Element, len(catalog.Elements))
		copy(s.Elements, catalog.Elements)
	}
	if s.Discoveries == nil {
		s.Discoveries = []Discovery{}
	}
	if s.CombinationCounts == nil {
		s.CombinationCounts = map[string]int{}
	}
	if s.Favorites == nil {
		s.Favorites = []string{}
	}
	if s.ElementPowers == nil {
		s.ElementPowers = map[string]int{}
	}
	if s.ComboMultiplier < MinMultiplier {
		s.ComboMultiplier = MinMultiplier
	}
	if s.Level < 1 {
		s.Level = 1
	}

	if p.AchievementState == nil || len(p.AchievementState.Achievements) == 0 {
		p.AchievementState = NewAchievementState()
	} else {
		// Re-seed definitions from defaults, keeping saved unlocked flags.
		// Saves carry only the flags that matter; names, icons and
		// conditions always come from the current definitions.
		unlocked := make(map[string]bool, len(p.AchievementState.Achievements))
		for _, a := range p.AchievementState.Achievements {
			if a.Unlocked {
				unlocked[a.ID] = true
			}
		}
		fresh := NewAchievementState()
		for i := range fresh.Achievements {
			if unlocked[fresh.Achievements[i].ID] {
				fresh.Achievements[i].Unlocked = true
			}
		}
		fresh.LastUnlocked = p.AchievementState.LastUnlocked
		p.AchievementState = fresh
	}

	if p.PowerUpState == nil {
		p.PowerUpState = NewPowerUpState()
	}
	if p.PowerUpState.LastUsed == nil {
		p.PowerUpState.LastUsed = map[string]int64{}
	}
	if p.PowerUpState.Active == nil {
		p.PowerUpState.Active = []string{}
	}

	return p
}
