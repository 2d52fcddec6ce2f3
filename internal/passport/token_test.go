package passport

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestInspectToken(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	claims := tokenClaims{
		UserID: "u-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	info, ok := InspectToken(raw, now)
	if !ok {
		t.Fatalf("InspectToken rejected a JWT")
	}
	if info.Subject != "u-42" || info.Expired {
		t.Fatalf("info=%+v", info)
	}
	if info, _ := InspectToken(raw, now.Add(2*time.Hour)); !info.Expired {
		t.Fatalf("token should be expired two hours later")
	}
}

func TestInspectTokenOpaque(t *testing.T) {
	for _, raw := range []string{"", "opaque-session-token", "a.b.c"} {
		if _, ok := InspectToken(raw, time.Now()); ok {
			t.Fatalf("InspectToken(%q) ok, want false", raw)
		}
	}
}

func TestAvatarMIMEAndDataURL(t *testing.T) {
	a := Avatar{Name: "nova.png", Data: pngBytes(t)}
	if a.MIME() != "image/png" {
		t.Fatalf("MIME=%q", a.MIME())
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := a.DataURL(); len(got) < 22 || got[:22] != "data:image/png;base64," {
		t.Fatalf("DataURL prefix=%q", got)
	}
	if (Avatar{}).Validate() == nil {
		t.Fatalf("empty avatar should be invalid")
	}
}
