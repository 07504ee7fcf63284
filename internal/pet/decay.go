package pet

import "time"

// Decay rates in points lost per second of real time. Hunger is satiety:
// decay moves the pet toward hungrier.
const (
	HungerDecayRate  = 0.012
	EnergyDecayRate  = 0.009
	HygieneDecayRate = 0.01
	FunDecayRate     = 0.011
)

// ApplyDecay advances the four stats by the time elapsed since
// LastUpdated. It reports whether anything changed; when now is not after
// LastUpdated the profile is left untouched, so calling it twice with the
// same now is a no-op the second time.
func ApplyDecay(p *Profile, now time.Time) bool {
	elapsed := now.Sub(p.LastUpdated).Seconds()
	if elapsed <= 0 {
		return false
	}

	p.Hunger = Clamp(p.Hunger - elapsed*HungerDecayRate)
	p.Energy = Clamp(p.Energy - elapsed*EnergyDecayRate)
	p.Hygiene = Clamp(p.Hygiene - elapsed*HygieneDecayRate)
	p.Fun = Clamp(p.Fun - elapsed*FunDecayRate)
	p.Mood = ComputeMood(p)
	p.LastUpdated = now.UTC()
	return true
}
