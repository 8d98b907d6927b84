// Package settings holds the client settings record and its on-disk store.
package settings

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultMaxSections = 5
	DefaultMaxDocs     = 8
	DefaultTheme       = "dark"

	MinMaxSections = 1
	MaxMaxSections = 10
	MinMaxDocs     = 1
	MaxMaxDocs     = 20
)

// Settings is the persisted client record. The whole record is rewritten on
// every save.
type Settings struct {
	MaxSections int    `toml:"max_sections"`
	MaxDocs     int    `toml:"max_docs"`
	APIKey      string `toml:"api_key"`
	DebugMode   bool   `toml:"debug_mode"`
	Theme       string `toml:"theme"`
}

// Defaults returns the record a fresh install starts with.
func Defaults() Settings {
	return Settings{
		MaxSections: DefaultMaxSections,
		MaxDocs:     DefaultMaxDocs,
		Theme:       DefaultTheme,
	}
}

// Clamp pulls the numeric fields back into the ranges the settings form allows.
func (s Settings) Clamp() Settings {
	s.MaxSections = clamp(s.MaxSections, MinMaxSections, MaxMaxSections)
	s.MaxDocs = clamp(s.MaxDocs, MinMaxDocs, MaxMaxDocs)
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Store reads and writes Settings as TOML at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

// Load returns the saved record, or Defaults when nothing has been saved yet.
// Fields missing from the file keep their default values.
func (s *Store) Load() (Settings, error) {
	out := Defaults()
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return out, errors.Wrap(err, "read settings")
	}
	if _, err := toml.Decode(string(data), &out); err != nil {
		return Defaults(), errors.Wrapf(err, "decode settings %s", s.path)
	}
	return out.Clamp(), nil
}

// Save overwrites the file with st. The write goes through a temp file and a
// rename so a crash never leaves a half-written record behind.
func (s *Store) Save(st Settings) error {
	st = st.Clamp()
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return errors.Wrap(err, "encode settings")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "create settings dir")
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return errors.Wrap(err, "create temp settings")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write settings")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod settings")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close settings")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replace settings")
}
