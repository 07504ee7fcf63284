package pet

// Minigame reward constants.
const (
	minigameMinBase     = 5
	minigameFastBonus   = 5
	minigameFastUnderMS = 25000
	minigameMaxReward   = 120
	minigameMinXP       = 8
)

// MinigameReward returns the coins and xp earned for a round. A nil or
// zero duration earns no speed bonus.
func MinigameReward(score int, durationMS *int) (coins, xp int) {
	score = max(0, score)
	base := max(minigameMinBase, score/3)
	bonus := 0
	if durationMS != nil && *durationMS > 0 && *durationMS < minigameFastUnderMS {
		bonus = minigameFastBonus
	}
	return min(minigameMaxReward, base+bonus), max(minigameMinXP, score/5)
}

// ApplyMinigame grants the reward for a finished round. Negative scores
// count as zero.
func ApplyMinigame(p *Profile, score int, durationMS *int) {
	coins, xp := MinigameReward(score, durationMS)
	p.grant(coins, xp)
}
