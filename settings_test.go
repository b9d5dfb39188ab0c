package tally

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSettingsDefaults(t *testing.T) {
	settings := OpenSettings(newMemStore(t))

	want := map[string]bool{
		SettingSound:     true,
		SettingVibration: true,
		SettingHistory:   true,
		SettingTheme:     true,
	}
	if diff := cmp.Diff(want, settings.All()); diff != "" {
		t.Fatalf("default settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsToggleRoundTrip(t *testing.T) {
	store := newMemStore(t)

	settings := OpenSettings(store)
	if err := settings.Toggle(SettingSound); err != nil {
		t.Fatalf("failed to toggle sound: %v", err)
	}

	reloaded := OpenSettings(store)
	want := map[string]bool{
		SettingSound:     false,
		SettingVibration: true,
		SettingHistory:   true,
		SettingTheme:     true,
	}
	if diff := cmp.Diff(want, reloaded.All()); diff != "" {
		t.Fatalf("reloaded settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsToggleTwiceRestores(t *testing.T) {
	settings := OpenSettings(newMemStore(t))

	if err := settings.Toggle(SettingTheme); err != nil {
		t.Fatalf("failed to toggle theme: %v", err)
	}
	if err := settings.Toggle(SettingTheme); err != nil {
		t.Fatalf("failed to toggle theme back: %v", err)
	}
	if !settings.On(SettingTheme) {
		t.Fatal("theme should be back on after two toggles")
	}
}

func TestSettingsPartialDataMergesOverDefaults(t *testing.T) {
	store := newMemStore(t)
	if err := store.Set(settingsKey, []byte(`{"sound": false}`)); err != nil {
		t.Fatalf("failed to seed partial blob: %v", err)
	}

	settings := OpenSettings(store)
	if settings.On(SettingSound) {
		t.Fatal("persisted sound=false should survive the merge")
	}
	for _, key := range []string{SettingVibration, SettingHistory, SettingTheme} {
		if !settings.On(key) {
			t.Fatalf("missing key %q should keep its default true", key)
		}
	}
}

func TestSettingsMalformedDataYieldsDefaults(t *testing.T) {
	store := newMemStore(t)
	if err := store.Set(settingsKey, []byte("not json at all")); err != nil {
		t.Fatalf("failed to seed malformed blob: %v", err)
	}

	settings := OpenSettings(store)
	for key := range defaultSettings() {
		if !settings.On(key) {
			t.Fatalf("setting %q should default to true", key)
		}
	}
}

func TestSettingsUnknownKey(t *testing.T) {
	settings := OpenSettings(newMemStore(t))

	err := settings.Toggle("volume")
	if !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("Toggle(volume) error = %v, want ErrUnknownSetting", err)
	}
}

func TestSettingsUnknownKeyReportsOff(t *testing.T) {
	settings := OpenSettings(newMemStore(t))

	if settings.On("volume") {
		t.Fatal("unknown setting should report false")
	}
}
