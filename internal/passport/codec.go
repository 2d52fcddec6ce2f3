package passport

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

var jsonAPI = sonic.Config{
	EscapeHTML:       false,
	SortMapKeys:      false,
	CompactMarshaler: true,
	ValidateString:   true,
}.Froze()

// Encode serializes a passport for the durable slot.
func Encode(p Passport) (string, error) {
	b, err := jsonAPI.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode passport: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored passport, defaulting missing xp and level.
func Decode(raw string) (Passport, error) {
	if strings.TrimSpace(raw) == "null" {
		return Passport{}, fmt.Errorf("decode passport: null record")
	}
	var r Record
	if err := jsonAPI.UnmarshalFromString(raw, &r); err != nil {
		return Passport{}, fmt.Errorf("decode passport: %w", err)
	}
	return r.Normalize(), nil
}
