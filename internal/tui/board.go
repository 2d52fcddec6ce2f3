package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"missionboard/internal/engine"
	"missionboard/internal/nav"
	"missionboard/internal/passport"
)

// Recorder receives board events for metrics.
type Recorder interface {
	MissionCompleted()
}

type nopRecorder struct{}

func (nopRecorder) MissionCompleted() {}

type Deps struct {
	Store    *passport.Store
	Missions *engine.Service
	Nav      *nav.Navigator
	Recorder Recorder
	Log      zerolog.Logger
}

func RunBoard(ctx context.Context, deps Deps, out io.Writer) error {
	if deps.Recorder == nil {
		deps.Recorder = nopRecorder{}
	}
	m := newBoardModel(ctx, deps)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
