package passport

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenInfo is what the client can read from an access token. The signature
// is not checked; only the backend can do that.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

// InspectToken decodes the claims of a JWT access token. ok is false for
// tokens that are not JWTs.
func InspectToken(raw string, now time.Time) (TokenInfo, bool) {
	if raw == "" {
		return TokenInfo{}, false
	}
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return TokenInfo{}, false
	}

	info := TokenInfo{Subject: claims.Subject}
	if info.Subject == "" {
		info.Subject = claims.UserID
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.Expired = !now.Before(info.ExpiresAt)
	}
	return info, true
}
