package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"missionboard/internal/engine"
)

// Mission board theme (CLI + TUI).

const (
	IconMission = "🗡️"
	IconJoined  = "🛡️"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconUser    = "👤"
	IconKey     = "🔑"
	IconImage   = "🖼️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
	Navbar      = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("236"))
	Alert       = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(cBad).Foreground(cBad).Padding(0, 1)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func DifficultyText(d engine.Difficulty) string {
	switch d {
	case engine.DifficultyEasy:
		return Good.Render(string(d))
	case engine.DifficultyMedium:
		return Warn.Render(string(d))
	case engine.DifficultyHard:
		return Bad.Render(string(d))
	default:
		return Muted.Render(string(d))
	}
}

func MissionIcon(m engine.Mission) string {
	if m.Joined {
		return IconJoined
	}
	return IconMission
}

// Ago renders a timestamp relative to now, e.g. "3 days ago".
func Ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// LevelBar draws progress through the current level.
func LevelBar(xp int, width int) string {
	if width < 4 {
		width = 4
	}
	into, span := engine.LevelProgress(xp)
	filled := 0
	if span > 0 {
		filled = into * width / span
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s", Gold.Render(bar), Muted.Render(fmt.Sprintf("%d/%d", into, span)))
}

// PlayerLine is the navbar summary for a player.
func PlayerLine(name string, xp, level int) string {
	if strings.TrimSpace(name) == "" {
		name = "Adventurer"
	}
	return fmt.Sprintf("%s %s  %s  %s",
		IconUser, H2.Render(name),
		Gold.Render(fmt.Sprintf("Lv %d", level)),
		LevelBar(xp, 12),
	)
}

func ErrorLine(msg string) string {
	return Bad.Render(IconError + " " + msg)
}
