package engine

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

var rewardDigits = regexp.MustCompile(`\d+`)

// RewardXP is the XP a mission pays out: the first run of decimal digits in
// its reward text, or the difficulty fallback when the text has no digits.
// Runs too large for an int pay math.MaxInt.
func RewardXP(m Mission) int {
	run := rewardDigits.FindString(m.Reward)
	if run == "" {
		return m.Difficulty.FallbackXP()
	}
	n, err := strconv.Atoi(run)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	return n
}
