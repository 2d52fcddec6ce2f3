package tui

import (
	"strings"

	"missionboard/internal/form"
)

type formKind int

const (
	formNone formKind = iota
	formLogin
	formRegister
	formMission
	formProfile
	formAvatar
)

type field struct {
	key    string
	label  string
	value  string
	secret bool
}

type formState struct {
	kind   formKind
	title  string
	fields []field
	focus  int
	errs   form.Errors
}

func newForm(kind formKind) *formState {
	switch kind {
	case formLogin:
		return &formState{kind: kind, title: "Sign in", fields: []field{
			{key: "username", label: "Username"},
			{key: "password", label: "Password", secret: true},
		}}
	case formRegister:
		return &formState{kind: kind, title: "Create account", fields: []field{
			{key: "username", label: "Username"},
			{key: "password", label: "Password", secret: true},
			{key: "cf_password", label: "Confirm password", secret: true},
			{key: "display_name", label: "Display name"},
		}}
	case formMission:
		return &formState{kind: kind, title: "New mission", fields: []field{
			{key: "title", label: "Title"},
			{key: "description", label: "Description"},
			{key: "difficulty", label: "Difficulty (Easy/Medium/Hard)", value: "Medium"},
			{key: "reward", label: "Reward"},
		}}
	case formProfile:
		return &formState{kind: kind, title: "Edit display name", fields: []field{
			{key: "display_name", label: "Display name"},
		}}
	case formAvatar:
		return &formState{kind: kind, title: "Upload avatar", fields: []field{
			{key: "path", label: "Image file"},
		}}
	default:
		return nil
	}
}

func (f *formState) value(key string) string {
	for _, fl := range f.fields {
		if fl.key == key {
			return fl.value
		}
	}
	return ""
}

func (f *formState) set(key, v string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].value = v
		}
	}
}

func (f *formState) next() { f.focus = (f.focus + 1) % len(f.fields) }

func (f *formState) prev() { f.focus = (f.focus + len(f.fields) - 1) % len(f.fields) }

func (f *formState) typeRunes(rs []rune) {
	f.fields[f.focus].value += string(rs)
}

func (f *formState) backspace() {
	v := []rune(f.fields[f.focus].value)
	if len(v) > 0 {
		f.fields[f.focus].value = string(v[:len(v)-1])
	}
}

// lastField reports whether enter should submit rather than advance.
func (f *formState) lastField() bool { return f.focus == len(f.fields)-1 }

func (f *formState) loginForm() form.LoginForm {
	return form.LoginForm{Username: f.value("username"), Password: f.value("password")}
}

func (f *formState) registerForm() form.RegisterForm {
	return form.RegisterForm{
		Username:        f.value("username"),
		Password:        f.value("password"),
		ConfirmPassword: f.value("cf_password"),
		DisplayName:     f.value("display_name"),
	}
}

func (f *formState) missionForm() form.MissionForm {
	return form.MissionForm{
		Title:       f.value("title"),
		Description: f.value("description"),
		Difficulty:  f.value("difficulty"),
		Reward:      f.value("reward"),
	}
}

func (f *formState) render() []string {
	lines := []string{f.title, ""}
	for i, fl := range f.fields {
		cursor := "  "
		if i == f.focus {
			cursor = "> "
		}
		v := fl.value
		if fl.secret {
			v = strings.Repeat("•", len([]rune(v)))
		}
		if i == f.focus {
			v += "▏"
		}
		lines = append(lines, cursor+fl.label+": "+v)
		if msg, ok := f.errs[fl.key]; ok {
			lines = append(lines, "    ! "+msg)
		}
	}
	lines = append(lines, "", "tab/↑/↓: move  enter: next/submit  esc: cancel")
	return lines
}
