package engine

import (
	"errors"
	"fmt"
)

// ErrSessionRequired is returned for mission actions that need a signed-in player.
var ErrSessionRequired = errors.New("sign in to take on missions")

// DraftError names the first missing or invalid field of a MissionDraft.
type DraftError struct {
	Field string
}

func (e DraftError) Error() string {
	return fmt.Sprintf("mission %s is required", e.Field)
}
