package passport

import "missionboard/internal/engine"

// Passport is the signed-in player: session token plus gamification state.
type Passport struct {
	AccessToken string `json:"access_token,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
}

// Record is a passport as it arrives over the wire or from the slot, with
// pointer fields so absent keys can be told apart from zero values.
type Record struct {
	AccessToken *string `json:"access_token"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	XP          *int    `json:"xp"`
	Level       *int    `json:"level"`
}

// Normalize fills every missing field. XP defaults to 0; a supplied level is
// kept, otherwise it is derived from XP.
func (r Record) Normalize() Passport {
	var p Passport
	if r.AccessToken != nil {
		p.AccessToken = *r.AccessToken
	}
	if r.DisplayName != nil {
		p.DisplayName = *r.DisplayName
	}
	if r.AvatarURL != nil {
		p.AvatarURL = *r.AvatarURL
	}
	if r.XP != nil && *r.XP > 0 {
		p.XP = *r.XP
	}
	if r.Level != nil && *r.Level >= 1 {
		p.Level = *r.Level
	} else {
		p.Level = engine.LevelForTotalXP(p.XP)
	}
	return p
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"cf_password"`
	DisplayName     string `json:"display_name"`
}
