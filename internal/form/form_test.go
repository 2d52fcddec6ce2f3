package form

import (
	"strings"
	"testing"

	"missionboard/internal/engine"
)

func TestLoginFormRequired(t *testing.T) {
	errs := Validate(LoginForm{Username: "  ", Password: ""})
	if errs["username"] != "Required" || errs["password"] != "Required" {
		t.Fatalf("errs=%v", errs)
	}
	if errs := Validate(LoginForm{Username: "nova", Password: "x"}); errs != nil {
		t.Fatalf("valid login rejected: %v", errs)
	}
}

func TestRegisterFormRules(t *testing.T) {
	errs := Validate(RegisterForm{Username: "nova", Password: "abc", ConfirmPassword: "abd", DisplayName: "Nova"})
	if errs["password"] != "Min 6 characters" {
		t.Fatalf("password err=%q", errs["password"])
	}
	if errs["cf_password"] != "Passwords do not match" {
		t.Fatalf("cf_password err=%q", errs["cf_password"])
	}

	errs = Validate(RegisterForm{Username: "nova", Password: "secret1", ConfirmPassword: "secret1"})
	if len(errs) != 1 || errs["display_name"] != "Required" {
		t.Fatalf("errs=%v, want only display_name", errs)
	}
	if !strings.Contains(errs.Error(), "display_name: Required") {
		t.Fatalf("Error()=%q", errs.Error())
	}

	ok := RegisterForm{Username: " nova ", Password: "secret1", ConfirmPassword: "secret1", DisplayName: "Nova"}
	if errs := Validate(ok); errs != nil {
		t.Fatalf("valid registration rejected: %v", errs)
	}
	if r := ok.Registration(); r.Username != "nova" || r.ConfirmPassword != "secret1" {
		t.Fatalf("Registration=%+v", r)
	}
}

func TestMissionFormDraft(t *testing.T) {
	errs := Validate(MissionForm{Title: "Night Watch", Description: "Guard", Reward: "40 XP", Difficulty: "Epic"})
	if !strings.HasPrefix(errs["difficulty"], "Must be one of") {
		t.Fatalf("difficulty err=%q", errs["difficulty"])
	}

	f := MissionForm{Title: " Night Watch ", Description: "Guard", Reward: "40 XP", Difficulty: "Hard"}
	if errs := Validate(f); errs != nil {
		t.Fatalf("valid mission rejected: %v", errs)
	}
	d := f.Draft()
	if d.Title != "Night Watch" || d.Difficulty != engine.DifficultyHard {
		t.Fatalf("draft=%+v", d)
	}
}

func TestProfileFormMax(t *testing.T) {
	errs := Validate(ProfileForm{DisplayName: strings.Repeat("n", 33)})
	if errs["display_name"] != "Max 32 characters" {
		t.Fatalf("errs=%v", errs)
	}
}
