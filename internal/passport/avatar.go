package passport

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// MaxAvatarBytes is the largest avatar the backend accepts.
const MaxAvatarBytes = 5 << 20

type Avatar struct {
	Name string
	Data []byte
}

// LoadAvatar reads an image file from disk. It does not validate it.
func LoadAvatar(path string) (Avatar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Avatar{}, fmt.Errorf("read avatar: %w", err)
	}
	return Avatar{Name: filepath.Base(path), Data: data}, nil
}

// MIME is the sniffed content type, without parameters.
func (a Avatar) MIME() string {
	m := mimetype.Detect(a.Data).String()
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return m
}

func (a Avatar) Size() string {
	return humanize.IBytes(uint64(len(a.Data)))
}

// Validate checks type first, then size.
func (a Avatar) Validate() error {
	if len(a.Data) == 0 || !strings.HasPrefix(a.MIME(), "image/") {
		return &ValidationError{Message: msgInvalidImage}
	}
	if len(a.Data) > MaxAvatarBytes {
		return &ValidationError{Message: msgImageTooLarge}
	}
	return nil
}

// DataURL renders the image as a base64 data URL.
func (a Avatar) DataURL() string {
	return "data:" + a.MIME() + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}
