package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg StoryConfig
	if err := yaml.Unmarshal(DefaultStoryYAML(), &cfg); err != nil {
		t.Fatalf("embedded story.yaml does not parse: %v", err)
	}

	if cfg != DefaultStoryConfig() {
		t.Errorf("embedded defaults diverge from DefaultStoryConfig():\n got %+v\nwant %+v", cfg, DefaultStoryConfig())
	}
}

func TestDefaultStoryConfigValid(t *testing.T) {
	if err := DefaultStoryConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadStoryCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.yaml")

	data := []byte(`
fear:
  enter: 20
rolls:
  death: 1.0
  secret: 0.5
thresholds:
  death: 70
  good_ending: 40
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadStory(path)
	if err != nil {
		t.Fatalf("LoadStory() failed: %v", err)
	}
	if cfg.Fear.Enter != 20 {
		t.Errorf("Fear.Enter = %d, expected 20", cfg.Fear.Enter)
	}
	if cfg.Rolls.Death != 1.0 || cfg.Rolls.Secret != 0.5 {
		t.Errorf("Rolls = %+v, expected death 1.0 and secret 0.5", cfg.Rolls)
	}
	if cfg.Thresholds.Death != 70 || cfg.Thresholds.GoodEnding != 40 {
		t.Errorf("Thresholds = %+v, expected 70/40", cfg.Thresholds)
	}
}

func TestLoadStoryMissingCustomPath(t *testing.T) {
	_, err := LoadStory(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadStoryRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.yaml")
	if err := os.WriteFile(path, []byte("rolls:\n  doll: 1.5\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadStory(path)
	if err == nil {
		t.Fatal("expected validation error for probability above 1")
	}
	if !strings.Contains(err.Error(), "rolls.doll") {
		t.Errorf("error should name the bad field, got %v", err)
	}
}

func TestValidateThresholds(t *testing.T) {
	cfg := DefaultStoryConfig()
	cfg.Thresholds.Death = 101
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for death threshold above 100")
	}

	cfg = DefaultStoryConfig()
	cfg.Thresholds.GoodEnding = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative good ending threshold")
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"normal", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	normal := DefaultStoryConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultStoryConfig() {
		t.Error("normal preset should not change the config")
	}

	easy := DefaultStoryConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Rolls.Death >= normal.Rolls.Death {
		t.Errorf("easy death chance %v should be below normal %v", easy.Rolls.Death, normal.Rolls.Death)
	}
	if easy.Thresholds.Death <= normal.Thresholds.Death {
		t.Errorf("easy death threshold %d should be above normal %d", easy.Thresholds.Death, normal.Thresholds.Death)
	}

	hard := DefaultStoryConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Rolls.Death <= normal.Rolls.Death {
		t.Errorf("hard death chance %v should be above normal %v", hard.Rolls.Death, normal.Rolls.Death)
	}
	if hard.Thresholds.GoodEnding >= normal.Thresholds.GoodEnding {
		t.Errorf("hard good ending limit %d should be below normal %d", hard.Thresholds.GoodEnding, normal.Thresholds.GoodEnding)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset should stay valid: %v", err)
	}
}

func TestParseEnvDefaults(t *testing.T) {
	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() failed: %v", err)
	}
	if cfg.Lang != "en" {
		t.Errorf("Lang = %q, expected en", cfg.Lang)
	}
	if cfg.SSHAddr != ":23235" {
		t.Errorf("SSHAddr = %q, expected :23235", cfg.SSHAddr)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 30m", cfg.IdleTimeout)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("WHISPERS_DB", "/tmp/w.db")
	t.Setenv("WHISPERS_LANG", "ko")
	t.Setenv("WHISPERS_IDLE_TIMEOUT", "5m")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() failed: %v", err)
	}
	if cfg.DBPath != "/tmp/w.db" {
		t.Errorf("DBPath = %q, expected /tmp/w.db", cfg.DBPath)
	}
	if cfg.Lang != "ko" {
		t.Errorf("Lang = %q, expected ko", cfg.Lang)
	}
	if cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 5m", cfg.IdleTimeout)
	}
}

func TestParseEnvInvalidDuration(t *testing.T) {
	t.Setenv("WHISPERS_IDLE_TIMEOUT", "soon")
	if _, err := ParseEnv(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
