// Package settings manages the single global settings file at
// ~/.moves/settings.toml: a flat {model, key} mapping read and rewritten
// through github.com/BurntSushi/toml.
package settings

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"moves/internal/datahandler"
)

const fileName = "settings.toml"

// Settings is the flat mapping persisted to settings.toml.
type Settings struct {
	Model string `toml:"model"`
	Key   string `toml:"key"`
}

// knownKeys are the only settable keys; Set/Unset reject anything else,
// mirroring the original template-defaults gate.
var knownKeys = map[string]bool{
	"model": true,
	"key":   true,
}

// Load reads settings.toml, returning a zero-valued Settings if the file
// does not yet exist, matching the original's "missing file -> empty
// data" fallback.
func Load() (Settings, error) {
	data, err := datahandler.Read(fileName)
	if err != nil {
		return Settings{}, nil
	}

	var s Settings
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Settings{}, fmt.Errorf("settings: decode %s: %w", fileName, err)
	}
	return s, nil
}

func save(s Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := datahandler.Write(fileName, buf.Bytes()); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// Set writes key=value and persists. It rejects unknown keys.
func Set(key, value string) error {
	if !knownKeys[key] {
		return fmt.Errorf("settings: unknown key %q", key)
	}
	s, err := Load()
	if err != nil {
		return err
	}
	switch key {
	case "model":
		s.Model = value
	case "key":
		s.Key = value
	}
	return save(s)
}

// Unset resets key to its zero value and persists. It rejects unknown
// keys.
func Unset(key string) error {
	if !knownKeys[key] {
		return fmt.Errorf("settings: unknown key %q", key)
	}
	s, err := Load()
	if err != nil {
		return err
	}
	switch key {
	case "model":
		s.Model = ""
	case "key":
		s.Key = ""
	}
	return save(s)
}

// Path returns the absolute path to settings.toml under the data root,
// for diagnostic messages.
func Path() (string, error) {
	root, err := datahandler.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, fileName), nil
}
