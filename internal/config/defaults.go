package config

import (
	_ "embed"
)

//go:embed defaults/story.yaml
var defaultStoryYAML []byte

// DefaultStoryConfig returns the default story tuning.
func DefaultStoryConfig() StoryConfig {
	return StoryConfig{
		Fear: FearConfig{
			Enter:           10,
			Retreat:         5,
			Upstairs:        8,
			Basement:        12,
			DiaryFound:      6,
			EmptyRoom:       4,
			ShadowWithTorch: 8,
			DarkEncounter:   15,
			NoteFound:       10,
			DollReaches:     25,
			OldToy:          10,
			Lunge:           40,
			Flee:            5,
		},
		Rolls: RollConfig{
			Diary:        0.40,
			BasementNote: 0.30,
			Doll:         0.35,
			Death:        0.60,
			Secret:       0.25,
		},
		Thresholds: ThresholdConfig{
			Death:      80,
			GoodEnding: 60,
		},
	}
}

// DefaultStoryYAML returns the embedded default story YAML.
func DefaultStoryYAML() []byte {
	return defaultStoryYAML
}
