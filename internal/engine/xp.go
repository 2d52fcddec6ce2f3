package engine

import "math"

// XPPerLevel is the flat step of the leveling curve.
const XPPerLevel = 100

// LevelForTotalXP returns floor(xp/100)+1. Negative XP counts as zero.
func LevelForTotalXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// XPRequiredForLevel returns the total XP threshold for the given level.
// Level 1 (and anything below) requires 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * XPPerLevel
}

// LevelProgress reports how far totalXP is into its current level.
func LevelProgress(totalXP int) (into int, span int) {
	lvl := LevelForTotalXP(totalXP)
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP - XPRequiredForLevel(lvl), XPPerLevel
}

// AddXP returns xp+amount clamped to [0, math.MaxInt].
func AddXP(xp, amount int) int {
	switch {
	case amount > 0 && xp > math.MaxInt-amount:
		return math.MaxInt
	case xp+amount < 0:
		return 0
	}
	return xp + amount
}
