package engine

import (
	"fmt"
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// FallbackXP is awarded when a reward carries no number.
func (d Difficulty) FallbackXP() int {
	switch d {
	case DifficultyEasy:
		return 50
	case DifficultyMedium:
		return 150
	default:
		return 300
	}
}

// ParseDifficulty accepts any casing and the first letter.
func ParseDifficulty(input string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "easy", "e":
		return DifficultyEasy, nil
	case "medium", "m", "":
		return DifficultyMedium, nil
	case "hard", "h":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty %q (want Easy, Medium or Hard)", input)
	}
}

type Mission struct {
	ID          int
	Title       string
	Description string
	Difficulty  Difficulty
	Reward      string
	CreatedAt   time.Time
	Joined      bool
	JoinedAt    *time.Time
}

// MissionDraft is what a user supplies when adding a mission.
type MissionDraft struct {
	Title       string
	Description string
	Difficulty  Difficulty
	Reward      string
}

const day = 24 * time.Hour

// SeedMissions returns the starter board relative to now.
func SeedMissions(now time.Time) []Mission {
	return []Mission{
		{
			ID:          1,
			Title:       "The First Awakening",
			Description: "Begin your journey and prove your worth in the arena. Every hero starts somewhere.",
			Difficulty:  DifficultyEasy,
			Reward:      "100 XP",
			CreatedAt:   now.Add(-7 * day),
		},
		{
			ID:          2,
			Title:       "Shadow Protocol: Alpha",
			Description: "Navigate through darkness and uncover hidden secrets of the digital realm.",
			Difficulty:  DifficultyMedium,
			Reward:      "250 XP",
			CreatedAt:   now.Add(-3 * day),
		},
		{
			ID:          3,
			Title:       "The Great Convergence",
			Description: "Face the ultimate challenge and unite with allies to defeat the ancient corruption.",
			Difficulty:  DifficultyHard,
			Reward:      "500 XP",
			CreatedAt:   now.Add(-1 * day),
		},
		{
			ID:          4,
			Title:       "Pixel Harvest",
			Description: "Collect 50 glowing pixels from the enchanted forest. Watch out for slimes!",
			Difficulty:  DifficultyEasy,
			Reward:      "75 XP",
			CreatedAt:   now.Add(-2 * day),
		},
	}
}
