// Package config provides YAML-based story tuning, difficulty presets and
// environment-based application settings.
package config

import "fmt"

// StoryConfig contains every tunable number of the narrative engine.
type StoryConfig struct {
	Fear       FearConfig      `yaml:"fear"`
	Rolls      RollConfig      `yaml:"rolls"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
}

// FearConfig defines how much fear each event adds.
type FearConfig struct {
	Enter           int `yaml:"enter"`
	Retreat         int `yaml:"retreat"`
	Upstairs        int `yaml:"upstairs"`
	Basement        int `yaml:"basement"`
	DiaryFound      int `yaml:"diary_found"`
	EmptyRoom       int `yaml:"empty_room"`
	ShadowWithTorch int `yaml:"shadow_with_torch"`
	DarkEncounter   int `yaml:"dark_encounter"`
	NoteFound       int `yaml:"note_found"`
	DollReaches     int `yaml:"doll_reaches"`
	OldToy          int `yaml:"old_toy"`
	Lunge           int `yaml:"lunge"`
	Flee            int `yaml:"flee"`
}

// RollConfig defines the success probability of every roll (0.0 to 1.0).
type RollConfig struct {
	Diary        float64 `yaml:"diary"`         // Left room upstairs holds the diary
	BasementNote float64 `yaml:"basement_note"` // Note found on entering the basement
	Doll         float64 `yaml:"doll"`          // Doll animates in the deep room
	Death        float64 `yaml:"death"`         // Fear overwhelms the player
	Secret       float64 `yaml:"secret"`        // Hidden door reveals itself
}

// ThresholdConfig defines fear levels that gate outcomes.
type ThresholdConfig struct {
	Death      int `yaml:"death"`       // Death check runs at fear >= this
	GoodEnding int `yaml:"good_ending"` // Hidden door leads out at fear < this
}

// Validate reports the first out-of-range value in the config.
func (c StoryConfig) Validate() error {
	probs := []struct {
		name string
		p    float64
	}{
		{"rolls.diary", c.Rolls.Diary},
		{"rolls.basement_note", c.Rolls.BasementNote},
		{"rolls.doll", c.Rolls.Doll},
		{"rolls.death", c.Rolls.Death},
		{"rolls.secret", c.Rolls.Secret},
	}
	for _, p := range probs {
		if p.p < 0 || p.p > 1 {
			return fmt.Errorf("config: %s must be within [0, 1], got %v", p.name, p.p)
		}
	}

	if c.Thresholds.Death < 0 || c.Thresholds.Death > 100 {
		return fmt.Errorf("config: thresholds.death must be within [0, 100], got %d", c.Thresholds.Death)
	}
	if c.Thresholds.GoodEnding < 0 || c.Thresholds.GoodEnding > 100 {
		return fmt.Errorf("config: thresholds.good_ending must be within [0, 100], got %d", c.Thresholds.GoodEnding)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *StoryConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rolls.Death = 0.40
		cfg.Thresholds.Death = 90
	case DifficultyHard:
		cfg.Rolls.Death = 0.80
		cfg.Thresholds.GoodEnding = 50
	}
}
