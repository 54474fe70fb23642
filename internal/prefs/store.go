package prefs

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Theme is the dashboard color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a raw theme value.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(raw) {
	case ThemeLight, ThemeDark:
		return Theme(raw), nil
	default:
		return "", fmt.Errorf("unknown theme %q", raw)
	}
}

// Store persists the single theme preference: read at startup, written on
// toggle.
type Store interface {
	Theme() (Theme, error)
	SetTheme(Theme) error
}

// FileStore keeps the preference as the raw value in one local file. A
// missing file yields the configured default.
type FileStore struct {
	mu       sync.Mutex
	path     string
	fallback Theme
}

// NewFileStore builds a store at path with fallback as the value reported
// before anything was ever saved.
func NewFileStore(path string, fallback Theme) *FileStore {
	if fallback == "" {
		fallback = ThemeLight
	}
	return &FileStore{path: path, fallback: fallback}
}

func (s *FileStore) Theme() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.fallback, nil
	}
	if err != nil {
		return s.fallback, err
	}

	theme, err := ParseTheme(strings.TrimSpace(string(data)))
	if err != nil {
		return s.fallback, nil
	}
	return theme, nil
}

func (s *FileStore) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(theme), 0o644)
}
