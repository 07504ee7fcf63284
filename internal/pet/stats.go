package pet

import (
	"math"
	"strconv"
)

// Stat bounds.
const (
	MinStat = 0.0
	MaxStat = 100.0
)

// xpPerLevel is how much xp separates two levels.
const xpPerLevel = 100

// Clamp clips v into [MinStat, MaxStat].
func Clamp(v float64) float64 {
	return math.Max(MinStat, math.Min(MaxStat, v))
}

// ComputeMood is the mean of hunger, energy, hygiene and fun, rounded to
// one decimal place. Exact ties such as 79.25 round to the even digit.
func ComputeMood(p *Profile) float64 {
	mean := (p.Hunger + p.Energy + p.Hygiene + p.Fun) / 4
	return roundTenths(mean)
}

// roundTenths rounds the exact binary value of v to one decimal, half to
// even.
func roundTenths(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}

// LevelForXP derives the level from accumulated xp.
func LevelForXP(xp int) int {
	return 1 + xp/xpPerLevel
}

// grant adds coins and xp and refreshes the derived fields.
func (p *Profile) grant(coins, xp int) {
	p.Coins += coins
	p.XP += xp
	p.refresh()
}
