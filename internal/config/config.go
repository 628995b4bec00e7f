package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/plus3/prepositions/internal/logger"
)

type Settings struct {
	Sketch      string  `json:"sketch"`
	Variant     string  `json:"variant"`
	Scale       float64 `json:"scale"`
	TPS         int     `json:"tps"`
	LogLevel    string  `json:"log_level"`
	ShowOverlay bool    `json:"show_overlay"`
	PresetDir   string  `json:"preset_dir,omitempty"`
	PathScript  string  `json:"path_script,omitempty"`
}

const (
	minScale = 0.5
	maxScale = 4
	minTPS   = 10
	maxTPS   = 240
)

func Defaults() Settings {
	return Settings{
		Sketch:   "between",
		Scale:    2,
		TPS:      60,
		LogLevel: "info",
	}
}

// GetSettingsPath returns settings.json under $XDG_CONFIG_HOME/prepositions,
// or ~/.config/prepositions when XDG_CONFIG_HOME is unset.
func GetSettingsPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(base, "prepositions", "settings.json"), nil
}

// LoadSettings reads the settings at path. A missing file is created with the
// defaults. A file that does not parse falls back to the defaults, and values
// outside their range fall back individually; each case is logged as a warning.
func LoadSettings(path string, log *logger.Logger) (*Settings, error) {
	defaultSettings := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("creating default settings file at %s", path)
			if err := createDefaultSettings(path, &defaultSettings); err != nil {
				log.Warn("failed to create default settings file: %v", err)
			}
			return &defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]any
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Warn("invalid settings file, using defaults: %v", err)
		return &defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Warn("unrecognised setting key '%s' in settings file", key)
		}
	}

	settings := defaultSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Warn("invalid settings file, using defaults: %v", err)
		return &defaultSettings, nil
	}

	settings.Validate(log)
	return &settings, nil
}

// Validate resets every out-of-range value to its default, logging a warning
// for each.
func (s *Settings) Validate(log *logger.Logger) {
	defaults := Defaults()
	if s.Scale < minScale || s.Scale > maxScale {
		log.Warn("invalid scale value %.2f, must be between %.1f and %.1f, using default %.1f",
			s.Scale, minScale, float64(maxScale), defaults.Scale)
		s.Scale = defaults.Scale
	}
	if s.TPS < minTPS || s.TPS > maxTPS {
		log.Warn("invalid tps value %d, must be between %d and %d, using default %d",
			s.TPS, minTPS, maxTPS, defaults.TPS)
		s.TPS = defaults.TPS
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		log.Warn("invalid log_level: %v, using default %q", err, defaults.LogLevel)
		s.LogLevel = defaults.LogLevel
	}
}

func createDefaultSettings(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
