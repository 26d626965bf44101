package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDir overrides ./configs as the local content directory when set.
var ConfigDir = "configs"

// LoadTowers loads the tower defense tables.
// Search order: customPath -> ~/.arcade/configs/towers.yaml -> ./configs/towers.yaml -> embedded default
func LoadTowers(customPath string) (TowersContent, error) {
	var c TowersContent
	if err := load("towers.yaml", customPath, defaultTowersYAML, &c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// LoadRituals loads the ritual tables.
// Search order: customPath -> ~/.arcade/configs/rituals.yaml -> ./configs/rituals.yaml -> embedded default
func LoadRituals(customPath string) (RitualsContent, error) {
	var c RitualsContent
	if err := load("rituals.yaml", customPath, defaultRitualsYAML, &c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// DefaultTowers returns the embedded tower defense tables.
func DefaultTowers() TowersContent {
	var c TowersContent
	if err := yaml.Unmarshal(defaultTowersYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded towers.yaml: %v", err))
	}
	return c
}

// DefaultRituals returns the embedded ritual tables.
func DefaultRituals() RitualsContent {
	var c RitualsContent
	if err := yaml.Unmarshal(defaultRitualsYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded rituals.yaml: %v", err))
	}
	return c
}

// load decodes the first readable candidate into out. Only an explicit
// customPath is allowed to fail loudly; the other locations are optional.
func load(filename, customPath string, embedded []byte, out any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join(ConfigDir, filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, out); err != nil {
		return fmt.Errorf("failed to parse embedded %s: %w", filename, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
