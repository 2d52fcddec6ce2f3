package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"missionboard/internal/engine"
	"missionboard/internal/passport"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form label instead of the Go field name.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

type LoginForm struct {
	Username string `form:"username" validate:"notblank"`
	Password string `form:"password" validate:"notblank"`
}

type RegisterForm struct {
	Username        string `form:"username" validate:"notblank"`
	Password        string `form:"password" validate:"notblank,min=6"`
	ConfirmPassword string `form:"cf_password" validate:"notblank,eqfield=Password"`
	DisplayName     string `form:"display_name" validate:"notblank"`
}

// ProfileForm edits the display name.
type ProfileForm struct {
	DisplayName string `form:"display_name" validate:"notblank,max=32"`
}

// MissionForm is the add-mission form.
type MissionForm struct {
	Title       string `form:"title" validate:"notblank,max=80"`
	Description string `form:"description" validate:"notblank"`
	Difficulty  string `form:"difficulty" validate:"oneof=Easy Medium Hard"`
	Reward      string `form:"reward" validate:"notblank"`
}

// Errors maps a form field to the message shown under it.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Validate checks a form struct. It returns nil when the form is valid.
func Validate(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"form": err.Error()}
	}
	out := Errors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "Required"
	case "min":
		return fmt.Sprintf("Min %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Max %s characters", fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "Invalid value"
	}
}

func (f LoginForm) Credentials() passport.Credentials {
	return passport.Credentials{Username: strings.TrimSpace(f.Username), Password: f.Password}
}

func (f RegisterForm) Registration() passport.Registration {
	return passport.Registration{
		Username:        strings.TrimSpace(f.Username),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		DisplayName:     strings.TrimSpace(f.DisplayName),
	}
}

// Draft converts a validated mission form.
func (f MissionForm) Draft() engine.MissionDraft {
	d, err := engine.ParseDifficulty(f.Difficulty)
	if err != nil {
		d = engine.DifficultyMedium
	}
	return engine.MissionDraft{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Difficulty:  d,
		Reward:      strings.TrimSpace(f.Reward),
	}
}
