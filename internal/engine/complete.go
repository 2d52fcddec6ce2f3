package engine

import (
	"context"
	"fmt"
)

type CompleteResult struct {
	MissionID   int
	Title       string
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// CompleteMission pays out a mission to the signed-in player. The mission is
// gone afterwards even if crediting the XP fails.
func (s *Service) CompleteMission(ctx context.Context, id int) (*CompleteResult, error) {
	_, levelBefore, ok := s.account.Progress()
	if !ok {
		return nil, ErrSessionRequired
	}

	m, _ := s.missions.Get(id)
	xp := s.missions.Complete(id)
	res := &CompleteResult{
		MissionID:   id,
		Title:       m.Title,
		XPAwarded:   xp,
		LevelBefore: levelBefore,
		LevelAfter:  levelBefore,
	}
	if xp <= 0 {
		return res, nil
	}

	if err := s.account.AddXP(ctx, xp); err != nil {
		return res, fmt.Errorf("credit %d XP: %w", xp, err)
	}
	if _, after, ok := s.account.Progress(); ok {
		res.LevelAfter = after
	}
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res, nil
}
