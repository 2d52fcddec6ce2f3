package engine

import (
	"context"
	"strings"
)

// Account is the slice of the player session the mission board needs.
type Account interface {
	// Progress reports the current XP and level, ok=false when signed out.
	Progress() (xp int, level int, ok bool)
	AddXP(ctx context.Context, amount int) error
}

type Service struct {
	missions *Registry
	account  Account
}

func NewService(missions *Registry, account Account) *Service {
	return &Service{missions: missions, account: account}
}

func (s *Service) Missions() []Mission { return s.missions.List() }

func (s *Service) signedIn() bool {
	_, _, ok := s.account.Progress()
	return ok
}

func normalizeDraft(d MissionDraft) (MissionDraft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Reward = strings.TrimSpace(d.Reward)
	switch {
	case d.Title == "":
		return d, DraftError{Field: "title"}
	case d.Description == "":
		return d, DraftError{Field: "description"}
	case d.Reward == "":
		return d, DraftError{Field: "reward"}
	case !d.Difficulty.IsValid():
		return d, DraftError{Field: "difficulty"}
	}
	return d, nil
}

func (s *Service) AddMission(d MissionDraft) (Mission, error) {
	d, err := normalizeDraft(d)
	if err != nil {
		return Mission{}, err
	}
	return s.missions.Add(d), nil
}

func (s *Service) JoinMission(id int) error {
	if !s.signedIn() {
		return ErrSessionRequired
	}
	s.missions.Join(id)
	return nil
}

func (s *Service) LeaveMission(id int) {
	s.missions.Leave(id)
}

func (s *Service) DeleteMission(id int) {
	s.missions.Delete(id)
}
