package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"missionboard/internal/backend"
	"missionboard/internal/engine"
	"missionboard/internal/form"
	"missionboard/internal/nav"
	"missionboard/internal/passport"
)

type boardModel struct {
	ctx  context.Context
	deps Deps

	width  int
	height int

	selected      int
	form          *formState
	confirmLogout bool

	alert     string
	busy      bool
	uploading bool
	levelUp   bool
	lastLog   string
}

type authDoneMsg struct {
	op  string
	err error
}

type profileDoneMsg struct {
	err error
}

type avatarDoneMsg struct {
	name string
	err  error
}

type completedMsg struct {
	id  int
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, deps Deps) boardModel {
	m := boardModel{ctx: ctx, deps: deps, lastLog: "Ready."}
	deps.Nav.OnChange(func(from, to string) {
		deps.Log.Debug().Str("from", from).Str("to", to).Msg("route changed")
	})
	if _, ok := deps.Store.Current(); ok {
		m.navigate(nav.Mission)
	}
	return m
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) loginCmd(c passport.Credentials) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{op: "login", err: m.deps.Store.Login(m.ctx, c)}
	}
}

func (m boardModel) registerCmd(r passport.Registration) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{op: "register", err: m.deps.Store.Register(m.ctx, r)}
	}
}

func (m boardModel) profileCmd(name string) tea.Cmd {
	return func() tea.Msg {
		return profileDoneMsg{err: m.deps.Store.UpdateProfile(m.ctx, name)}
	}
}

func (m boardModel) avatarCmd(path string) tea.Cmd {
	return func() tea.Msg {
		a, err := passport.LoadAvatar(path)
		if err != nil {
			return avatarDoneMsg{name: path, err: &passport.ValidationError{Message: "Please select a valid image file"}}
		}
		return avatarDoneMsg{name: a.Name, err: m.deps.Store.UploadAvatar(m.ctx, a)}
	}
}

func (m boardModel) completeCmd(id int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.deps.Missions.CompleteMission(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

// navigate moves through the navigator so guards always apply.
func (m *boardModel) navigate(path string) {
	to, ok := m.deps.Nav.Navigate(m.ctx, path)
	if !ok && path != nav.Logout {
		m.lastLog = "Sign in first."
	}
	if to != nav.Mission {
		m.selected = 0
	}
}

// back walks the route history. The sign-in screens reopen their form, or
// fall through to home when a session already exists.
func (m *boardModel) back() {
	to := m.deps.Nav.Back(m.ctx)
	if to == nav.Login || to == nav.Register {
		if _, ok := m.deps.Store.Current(); ok {
			m.navigate(nav.Home)
			return
		}
		kind := formLogin
		if to == nav.Register {
			kind = formRegister
		}
		m.form = newForm(kind)
	}
	if to != nav.Mission {
		m.selected = 0
	}
}

func errorText(err error) string {
	if errors.Is(err, engine.ErrSessionRequired) {
		return "Please sign in to take on missions"
	}
	return passport.DisplayMessage(err)
}

func (m *boardModel) fail(op string, err error) {
	m.alert = errorText(err)
	m.deps.Log.Warn().Err(err).Str("op", op).Msg("board action failed")
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError {
		m.navigate(nav.ServerError)
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.op, msg.err)
			return m, nil
		}
		m.form = nil
		p, _ := m.deps.Store.Current()
		m.lastLog = fmt.Sprintf("Welcome, %s.", displayName(p))
		m.navigate(nav.Mission)
		return m, nil
	case profileDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.fail("update profile", msg.err)
			return m, nil
		}
		m.form = nil
		m.lastLog = "Display name updated."
		return m, nil
	case avatarDoneMsg:
		m.uploading = false
		if msg.err != nil {
			m.fail("upload avatar", msg.err)
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Avatar updated from %s.", msg.name)
		return m, nil
	case completedMsg:
		m.busy = false
		if msg.err != nil {
			m.fail("complete mission", msg.err)
			return m, nil
		}
		if msg.res.Title == "" {
			m.lastLog = "Mission not found."
			return m, nil
		}
		m.deps.Recorder.MissionCompleted()
		m.levelUp = msg.res.LevelUp
		m.lastLog = fmt.Sprintf("Completed %q: +%d XP (level %d → %d)", msg.res.Title, msg.res.XPAwarded, msg.res.LevelBefore, msg.res.LevelAfter)
		m.clampSelection()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.confirmLogout {
		switch msg.String() {
		case "y", "enter":
			m.confirmLogout = false
			m.levelUp = false
			m.navigate(nav.Logout)
			m.lastLog = "Signed out."
		case "n", "esc":
			m.confirmLogout = false
		}
		return m, nil
	}

	_, signedIn := m.deps.Store.Current()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1", "h":
		m.navigate(nav.Home)
		return m, nil
	case "2", "m":
		m.navigate(nav.Mission)
		return m, nil
	case "3", "p":
		m.navigate(nav.Profile)
		return m, nil
	case "esc", "backspace", "b":
		m.back()
		return m, nil
	case "l":
		if !signedIn {
			m.navigate(nav.Login)
			m.form = newForm(formLogin)
		}
		return m, nil
	case "g":
		if !signedIn {
			m.navigate(nav.Register)
			m.form = newForm(formRegister)
		}
		return m, nil
	case "o":
		if signedIn {
			m.confirmLogout = true
		}
		return m, nil
	}

	switch m.deps.Nav.Current() {
	case nav.Mission:
		return m.handleMissionKey(msg)
	case nav.Profile:
		return m.handleProfileKey(msg)
	case nav.ServerError:
		if msg.String() == "enter" {
			m.navigate(nav.Home)
		}
	}
	return m, nil
}

func (m *boardModel) clampSelection() {
	n := len(m.deps.Missions.Missions())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) selectedMission() (engine.Mission, bool) {
	missions := m.deps.Missions.Missions()
	if m.selected < 0 || m.selected >= len(missions) {
		return engine.Mission{}, false
	}
	return missions[m.selected], true
}

func (m boardModel) handleMissionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.deps.Missions.Missions())-1 {
			m.selected++
		}
	case "a":
		m.form = newForm(formMission)
	case "enter", " ":
		ms, ok := m.selectedMission()
		if !ok {
			return m, nil
		}
		if ms.Joined {
			m.deps.Missions.LeaveMission(ms.ID)
			m.lastLog = fmt.Sprintf("Left %q.", ms.Title)
			return m, nil
		}
		if err := m.deps.Missions.JoinMission(ms.ID); err != nil {
			m.fail("join mission", err)
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Joined %q.", ms.Title)
	case "c":
		ms, ok := m.selectedMission()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		m.levelUp = false
		m.lastLog = fmt.Sprintf("Completing %q…", ms.Title)
		return m, m.completeCmd(ms.ID)
	case "d":
		ms, ok := m.selectedMission()
		if !ok {
			return m, nil
		}
		m.deps.Missions.DeleteMission(ms.ID)
		m.lastLog = fmt.Sprintf("Deleted %q.", ms.Title)
		m.clampSelection()
	}
	return m, nil
}

func (m boardModel) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		f := newForm(formProfile)
		p, _ := m.deps.Store.Current()
		f.set("display_name", p.DisplayName)
		m.form = f
	case "u":
		if m.uploading {
			m.lastLog = "Upload already in progress."
			return m, nil
		}
		m.form = newForm(formAvatar)
	}
	return m, nil
}

func (m boardModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
		if cur := m.deps.Nav.Current(); cur == nav.Login || cur == nav.Register {
			m.navigate(nav.Home)
		}
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		f.next()
	case tea.KeyShiftTab, tea.KeyUp:
		f.prev()
	case tea.KeyBackspace:
		f.backspace()
	case tea.KeySpace:
		f.typeRunes([]rune{' '})
	case tea.KeyRunes:
		f.typeRunes(msg.Runes)
	case tea.KeyEnter:
		if !f.lastField() {
			f.next()
			return m, nil
		}
		return m.submit()
	}
	return m, nil
}

func (m boardModel) submit() (tea.Model, tea.Cmd) {
	f := m.form
	if m.busy {
		return m, nil
	}
	switch f.kind {
	case formLogin:
		lf := f.loginForm()
		if f.errs = form.Validate(lf); f.errs != nil {
			return m, nil
		}
		m.busy = true
		m.lastLog = "Signing in…"
		return m, m.loginCmd(lf.Credentials())
	case formRegister:
		rf := f.registerForm()
		if f.errs = form.Validate(rf); f.errs != nil {
			return m, nil
		}
		m.busy = true
		m.lastLog = "Creating account…"
		return m, m.registerCmd(rf.Registration())
	case formMission:
		mf := f.missionForm()
		if d, err := engine.ParseDifficulty(mf.Difficulty); err == nil {
			mf.Difficulty = string(d)
		}
		if f.errs = form.Validate(mf); f.errs != nil {
			return m, nil
		}
		ms, err := m.deps.Missions.AddMission(mf.Draft())
		if err != nil {
			m.fail("add mission", err)
			return m, nil
		}
		m.form = nil
		m.lastLog = fmt.Sprintf("Added mission #%d %q.", ms.ID, ms.Title)
	case formProfile:
		pf := form.ProfileForm{DisplayName: f.value("display_name")}
		if f.errs = form.Validate(pf); f.errs != nil {
			return m, nil
		}
		m.busy = true
		m.lastLog = "Saving profile…"
		return m, m.profileCmd(pf.DisplayName)
	case formAvatar:
		path := f.value("path")
		if path == "" {
			f.errs = form.Errors{"path": "Required"}
			return m, nil
		}
		m.form = nil
		m.uploading = true
		m.lastLog = "Uploading avatar…"
		return m, m.avatarCmd(path)
	}
	return m, nil
}

func displayName(p passport.Passport) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return "Adventurer"
}
