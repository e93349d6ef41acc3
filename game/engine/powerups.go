package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// defaultPowerUps is the fixed power-up catalog. Cost is paid from
// totalPowerGained, cooldown is in seconds, and the effect is interpreted
// by applyPowerUpEffect.
var defaultPowerUps = []PowerUp{
	{ID: "multiplier_boost", Name: "Multiplier Boost", Description: "Double your combo multiplier", Icon: "✨",
		Cost: 50, Cooldown: 60, Effect: EffectMultiplierBoost},
	{ID: "element_revealer", Name: "Element Revealer", Description: "Instantly discover a random element", Icon: "🔮",
		Cost: 100, Cooldown: 180, Effect: EffectRevealElement},
	{ID: "power_surge", Name: "Power Surge", Description: "Charge all discovered elements with bonus power", Icon: "⚡",
		Cost: 75, Cooldown: 120, Effect: EffectPowerSurge},
	{ID: "smart_hint", Name: "Smart Hint", Description: "Get a hint for your next discovery", Icon: "💡",
		Cost: 30, Cooldown: 90, Effect: EffectSmartHint},
}

// DefaultPowerUps returns a copy of the power-up catalog
func DefaultPowerUps() []PowerUp {
	out := make([]PowerUp, len(defaultPowerUps))
	copy(out, defaultPowerUps)
	return out
}

// NewPowerUpState returns empty usage state: nothing on cooldown, nothing
// in the activation log.
func NewPowerUpState() *PowerUpState {
	return &PowerUpState{
		LastUsed: map[string]int64{},
		Active:   []string{},
	}
}

func powerUpByID(id string) *PowerUp {
	for i := range defaultPowerUps {
		if defaultPowerUps[i].ID == id {
			return &defaultPowerUps[i]
		}
	}
	return nil
}

// IsPowerUpAvailable gates an activation: still cooling down or short on
// power means unavailable, with a player-facing reason. These are normal
// gameplay outcomes, not errors.
func IsPowerUpAvailable(p *PowerUp, s *GameState, ps *PowerUpState, now time.Time) Availability {
	if p == nil || s == nil {
		return Availability{Available: false, Reason: "Power-up not found"}
	}
	if ps != nil {
		if last, ok := ps.LastUsed[p.ID]; ok && last > 0 {
			elapsed := now.UnixMilli() - last
			cooldownMillis := int64(p.Cooldown) * 1000
			if elapsed < cooldownMillis {
				remaining := (cooldownMillis - elapsed + 999) / 1000
				return Availability{Available: false, Reason: fmt.Sprintf("Cooldown: %ds remaining", remaining)}
			}
		}
	}
	if s.TotalPowerGained < p.Cost {
		return Availability{Available: false, Reason: fmt.Sprintf("Need %d more power", p.Cost-s.TotalPowerGained)}
	}
	return Availability{Available: true}
}

// PowerUpStatuses returns the full catalog annotated with per-entry
// availability, for listing in the UI.
func PowerUpStatuses(s *GameState, ps *PowerUpState, now time.Time) []PowerUpStatus {
	out := make([]PowerUpStatus, 0, len(defaultPowerUps))
	for i := range defaultPowerUps {
		p := defaultPowerUps[i]
		avail := IsPowerUpAvailable(&p, s, ps, now)
		var lastUsed int64
		if ps != nil {
			lastUsed = ps.LastUsed[p.ID]
		}
		out = append(out, PowerUpStatus{
			PowerUp:   p,
			LastUsed:  lastUsed,
			Available: avail.Available,
			Reason:    avail.Reason,
		})
	}
	return out
}

// ActivatePowerUp spends power to fire a power-up's effect. Unknown ids
// and failed availability checks are no-ops that return the input progress
// with an explanatory notification; a successful activation pays the cost,
// stamps the cooldown, logs the activation and applies the effect.
func ActivatePowerUp(progress *GameProgress, catalog *Catalog, powerUpID string, rng *rand.Rand, now time.Time) *PowerUpActivation {
	if progress == nil || progress.GameState == nil {
		return &PowerUpActivation{}
	}

	reject := func(kind NotificationKind, title, reason string) *PowerUpActivation {
		return &PowerUpActivation{
			GameState:    progress.GameState,
			PowerUpState: progress.PowerUpState,
			Reason:       reason,
			Notifications: []Notification{{
				Kind:    kind,
				Title:   title,
				Message: reason,
				Icon:    "🚫",
			}},
		}
	}

	p := powerUpByID(powerUpID)
	if p == nil {
		return reject(NotifyError, "Unknown Power-Up", fmt.Sprintf("No power-up with id %q", powerUpID))
	}

	avail := IsPowerUpAvailable(p, progress.GameState, progress.PowerUpState, now)
	if !avail.Available {
		return reject(NotifyError, "Not Available", avail.Reason)
	}

	out := cloneProgress(progress)
	s := out.GameState
	ps := out.PowerUpState
	if ps == nil {
		ps = NewPowerUpState()
		out.PowerUpState = ps
	}

	notifications := applyPowerUpEffect(p, catalog, s, rng, now)

	s.TotalPowerGained -= p.Cost
	ps.LastUsed[p.ID] = now.UnixMilli()
	ps.Active = append(ps.Active, p.ID)

	notifications = append(notifications, Notification{
		Kind:    NotifyPowerUp,
		Title:   p.Name,
		Message: fmt.Sprintf("%s activated!", p.Name),
		Icon:    p.Icon,
	})

	return &PowerUpActivation{
		GameState:     s,
		PowerUpState:  ps,
		Activated:     true,
		Notifications: notifications,
	}
}

// applyPowerUpEffect interprets an effect kind against the state. s is a
// clone owned by the caller and is mutated directly.
func applyPowerUpEffect(p *PowerUp, catalog *Catalog, s *GameState, rng *rand.Rand, now time.Time) []Notification {
	switch p.Effect {
	case EffectMultiplierBoost:
		s.ComboMultiplier *= 2
		if s.ComboMultiplier > MaxMultiplier {
			s.ComboMultiplier = MaxMultiplier
		}
		return nil

	case EffectRevealElement:
		var hidden []*Element
		for i := range s.Elements {
			if !s.Elements[i].Discovered {
				hidden = append(hidden, &s.Elements[i])
			}
		}
		if len(hidden) == 0 {
			return []Notification{{
				Kind:    NotifyPowerUp,
				Title:   p.Name,
				Message: "Every element is already discovered!",
				Icon:    p.Icon,
			}}
		}
		el := hidden[rng.Intn(len(hidden))]
		el.Discovered = true
		s.Discoveries = append([]Discovery{{
			ID:          fmt.Sprintf("%s-%d", el.ID, now.UnixMilli()),
			Result:      el.ID,
			Timestamp:   now.UnixMilli(),
			Elements:    [2]string{"", ""},
			Description: fmt.Sprintf("Revealed by the %s power-up", p.Name),
		}}, s.Discoveries...)
		s.Level = levelFor(discoveredCount(s))
		return []Notification{{
			Kind:    NotifyDiscovery,
			Title:   "Element Revealed!",
			Message: fmt.Sprintf("The orb reveals: %s!", el.Name),
			Icon:    el.Symbol,
		}}

	case EffectPowerSurge:
		bonus := s.Level * 5
		boosted := 0
		for i := range s.Elements {
			if s.Elements[i].Discovered {
				s.ElementPowers[s.Elements[i].ID] += bonus
				boosted++
			}
		}
		// Total gain counts every boosted element, not the bonus once.
		s.TotalPowerGained += bonus * boosted
		return []Notification{{
			Kind:    NotifyPowerUp,
			Title:   "Power Surge",
			Message: fmt.Sprintf("All discovered elements gained %d power!", bonus),
			Icon:    p.Icon,
		}}

	case EffectSmartHint:
		hint := RandomHint(catalog, s, rng)
		return []Notification{{
			Kind:    NotifyHint,
			Title:   "Smart Hint",
			Message: hint.Text,
			Icon:    p.Icon,
		}}
	}
	return nil
}
