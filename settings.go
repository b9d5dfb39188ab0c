package tally

import (
	"encoding/json"
	"fmt"
	"sync"
)

// settingsKey is the store key for the persisted settings blob.
const settingsKey = "settings"

// The setting keys understood by the engine and its collaborators.
const (
	SettingSound     = "sound"
	SettingVibration = "vibration"
	SettingHistory   = "history"
	SettingTheme     = "theme"
)

// defaultSettings returns the documented defaults: every toggle on.
func defaultSettings() map[string]bool {
	return map[string]bool{
		SettingSound:     true,
		SettingVibration: true,
		SettingHistory:   true,
		SettingTheme:     true,
	}
}

// Settings holds the boolean feature toggles, persisted through a Store
// after every mutation.
type Settings struct {
	mu     sync.Mutex
	store  Store
	values map[string]bool
}

// OpenSettings loads the settings persisted in the store, merging the stored
// object over the defaults so keys introduced later always have a defined
// value. Missing or malformed data yields the defaults, never an error.
func OpenSettings(store Store) *Settings {
	s := &Settings{store: store, values: defaultSettings()}

	data, err := store.Get(settingsKey)
	if err != nil {
		return s
	}

	var persisted map[string]bool
	if err := json.Unmarshal(data, &persisted); err != nil {
		return s
	}
	for key, value := range persisted {
		if _, ok := s.values[key]; ok {
			s.values[key] = value
		}
	}
	return s
}

// Toggle flips one setting and persists the full settings object.
func (s *Settings) Toggle(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	s.values[key] = !s.values[key]
	return s.save()
}

// On reports whether a setting is enabled. Unknown keys report false.
func (s *Settings) On(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.values[key]
}

// All returns a copy of the settings map.
func (s *Settings) All() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make(map[string]bool, len(s.values))
	for key, value := range s.values {
		values[key] = value
	}
	return values
}

// save writes the current settings to the store. Callers hold the mutex.
func (s *Settings) save() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.store.Set(settingsKey, data); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}
