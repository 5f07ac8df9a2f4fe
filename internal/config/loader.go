package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadStory loads the story tuning.
// Search order: customPath -> ~/.whispers/configs/story.yaml -> ./configs/story.yaml -> embedded default
func LoadStory(customPath string) (StoryConfig, error) {
	var cfg StoryConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("story.yaml"); userCfgPath != "" {
		if loaded, ok := readStory(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := readStory(filepath.Join("configs", "story.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultStoryYAML, &cfg); err != nil {
		return DefaultStoryConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readStory reads an optional config file, ignoring missing or broken files.
func readStory(path string) (StoryConfig, bool) {
	var cfg StoryConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".whispers", "configs", filename)
}
