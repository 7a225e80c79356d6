package lang

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PreferenceKey names the single persisted language flag.
const PreferenceKey = "diary-language"

// Store persists the language preference flag.
type Store interface {
	Load() (Language, bool)
	Save(Language) error
}

// FileStore keeps the flag in a small text file.
type FileStore struct {
	Path string
}

// DefaultFileStore stores the flag under the user config directory.
func DefaultFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return &FileStore{Path: filepath.Join(dir, "diary", PreferenceKey)}, nil
}

func (f *FileStore) Load() (Language, bool) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return "", false
	}
	l, err := Parse(strings.TrimSpace(string(raw)))
	if err != nil {
		return "", false
	}
	return l, true
}

func (f *FileStore) Save(l Language) error {
	if f.Path == "" {
		return errors.New("lang: empty store path")
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte(l.String()+"\n"), 0o644)
}
