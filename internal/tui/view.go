package tui

import (
	"fmt"
	"strings"
	"time"

	"missionboard/internal/engine"
	"missionboard/internal/nav"
	"missionboard/internal/passport"
	"missionboard/internal/ui"
)

var now = time.Now

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderNavbar())
	b.WriteString("\n\n")
	if m.alert != "" {
		b.WriteString(ui.Alert.Render(ui.IconWarn + " " + m.alert + "   (any key to dismiss)"))
		b.WriteString("\n\n")
	}

	var body []string
	switch {
	case m.form != nil:
		body = m.form.render()
	case m.confirmLogout:
		body = []string{"Sign out of Missionboard?", "", "y: sign out   n: stay"}
	default:
		body = m.renderScreen()
	}
	b.WriteString(strings.Join(body, "\n"))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderNavbar() string {
	links := []struct {
		key, path, label string
	}{
		{"1", nav.Home, "Home"},
		{"2", nav.Mission, "Missions"},
		{"3", nav.Profile, "Profile"},
	}
	cur := m.deps.Nav.Current()
	var parts []string
	for _, l := range links {
		label := l.key + " " + l.label
		if l.path == cur {
			label = ui.Gold.Render(label)
		}
		parts = append(parts, label)
	}

	right := ui.Muted.Render("l: sign in  g: register")
	if p, ok := m.deps.Store.Current(); ok {
		right = ui.PlayerLine(p.DisplayName, p.XP, p.Level) + "  " + ui.Muted.Render("o: sign out")
	}
	return ui.Navbar.Render(ui.Title.Render("Missionboard") + "  " + strings.Join(parts, " | ") + "   " + right)
}

func (m boardModel) renderScreen() []string {
	switch m.deps.Nav.Current() {
	case nav.Mission:
		return m.renderMissions()
	case nav.Profile:
		return m.renderProfile()
	case nav.ServerError:
		return []string{
			ui.Heading(ui.IconError, "Server error"),
			"",
			"The server could not handle the request. Try again later.",
			"",
			"enter: back home",
		}
	default:
		return m.renderHome()
	}
}

func (m boardModel) renderHome() []string {
	lines := []string{ui.Heading(ui.IconTrophy, "Welcome to Missionboard"), ""}
	p, ok := m.deps.Store.Current()
	if !ok {
		return append(lines,
			"Take on missions, earn XP and level up.",
			"",
			"l: sign in   g: create an account",
		)
	}
	return append(lines,
		fmt.Sprintf("Good to see you, %s.", displayName(p)),
		ui.LabelValue("Level", p.Level)+"   "+ui.LabelValue("XP", p.XP),
		"",
		"2: browse missions   3: your profile",
	)
}

func (m boardModel) renderMissions() []string {
	lines := []string{ui.Heading(ui.IconMission, "Missions"), ""}
	missions := m.deps.Missions.Missions()
	if len(missions) == 0 {
		lines = append(lines, ui.Muted.Render("(no missions; press a to add one)"))
	}
	for i, ms := range missions {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		row := fmt.Sprintf("%s%s #%d %s  [%s]  %s  %s",
			cursor, ui.MissionIcon(ms), ms.ID, ms.Title,
			ui.DifficultyText(ms.Difficulty),
			ui.Gold.Render(ms.Reward),
			ui.Muted.Render(ui.Ago(ms.CreatedAt)),
		)
		if i == m.selected {
			row = ui.SelectedRow.Render(row)
		}
		lines = append(lines, row)
	}

	if ms, ok := m.selectedMission(); ok {
		lines = append(lines, "", ui.PanelTitle.Render(ms.Title), ms.Description)
		status := "not joined"
		if ms.Joined && ms.JoinedAt != nil {
			status = "joined " + ui.Ago(*ms.JoinedAt)
		}
		lines = append(lines, ui.LabelValue("Status", status)+"   "+ui.LabelValue("Pays", fmt.Sprintf("%d XP", engine.RewardXP(ms))))
	}
	if m.levelUp {
		lines = append(lines, "", ui.BadgeLevelUp)
	}
	lines = append(lines, "", ui.Muted.Render("↑/↓: move  enter: join/leave  c: complete  d: delete  a: add"))
	return lines
}

func (m boardModel) renderProfile() []string {
	lines := []string{ui.Heading(ui.IconUser, "Profile"), ""}
	p, ok := m.deps.Store.Current()
	if !ok {
		return append(lines, "Signed out.")
	}
	avatar := p.AvatarURL
	if avatar == "" {
		avatar = ui.Muted.Render("(none)")
	}
	lines = append(lines,
		ui.LabelValue("Display name", displayName(p)),
		ui.LabelValue("Avatar", avatar),
		ui.LabelValue("Level", p.Level),
		ui.LabelValue("XP", p.XP)+"  "+ui.LevelBar(p.XP, 20),
	)
	if info, ok := passport.InspectToken(p.AccessToken, now()); ok {
		exp := "never"
		if !info.ExpiresAt.IsZero() {
			exp = ui.Ago(info.ExpiresAt)
		}
		if info.Expired {
			exp = ui.Warn.Render("expired " + exp)
		}
		lines = append(lines, ui.LabelValue("Session", exp))
	}

	upload := "u: upload avatar"
	if m.uploading {
		upload = ui.Muted.Render("uploading avatar…")
	}
	lines = append(lines, "", ui.Muted.Render("n: edit name  ")+upload)
	return lines
}

func (m boardModel) renderFooter() string {
	status := m.lastLog
	if m.busy || m.uploading {
		status = ui.Warn.Render("⏳ ") + status
	}
	return "\n" + status + "\n" + ui.Muted.Render("b: back  q: quit")
}
