package engine

import (
	"slices"
	"sync"
	"time"
)

// Registry is the in-memory, ordered mission board. Nothing is persisted.
type Registry struct {
	mu       sync.Mutex
	missions []Mission
	now      func() time.Time
}

func NewRegistry(missions ...Mission) *Registry {
	return &Registry{missions: slices.Clone(missions), now: time.Now}
}

func NewSeededRegistry(now time.Time) *Registry {
	return NewRegistry(SeedMissions(now)...)
}

// List returns a copy of the board in insertion order.
func (r *Registry) List() []Mission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Mission, len(r.missions))
	for i, m := range r.missions {
		out[i] = cloneMission(m)
	}
	return out
}

func (r *Registry) Get(id int) (Mission, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return Mission{}, false
	}
	return cloneMission(r.missions[i]), true
}

// Add assigns the next id (max existing id + 1, or 1 on an empty board).
func (r *Registry) Add(d MissionDraft) Mission {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 0
	for _, m := range r.missions {
		next = max(next, m.ID)
	}
	m := Mission{
		ID:          next + 1,
		Title:       d.Title,
		Description: d.Description,
		Difficulty:  d.Difficulty,
		Reward:      d.Reward,
		CreatedAt:   r.now(),
	}
	r.missions = append(r.missions, m)
	return cloneMission(m)
}

func (r *Registry) Join(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		at := r.now()
		r.missions[i].Joined = true
		r.missions[i].JoinedAt = &at
	}
}

func (r *Registry) Leave(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		r.missions[i].Joined = false
		r.missions[i].JoinedAt = nil
	}
}

func (r *Registry) Delete(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		r.missions = slices.Delete(r.missions, i, i+1)
	}
}

// Complete removes the mission, joined or not, and returns its XP.
// An unknown id returns 0 and changes nothing.
func (r *Registry) Complete(id int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return 0
	}
	xp := RewardXP(r.missions[i])
	r.missions = slices.Delete(r.missions, i, i+1)
	return xp
}

func (r *Registry) indexOf(id int) int {
	return slices.IndexFunc(r.missions, func(m Mission) bool { return m.ID == id })
}

func cloneMission(m Mission) Mission {
	if m.JoinedAt != nil {
		at := *m.JoinedAt
		m.JoinedAt = &at
	}
	return m
}
