package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fruitLinkFile = "fruitlink.yaml"

// SourceDefault names the built-in configuration in Locate results.
const SourceDefault = "built-in defaults"

// LoadFruitLink loads the game configuration. See Locate for the search order.
func LoadFruitLink(customPath string) (FruitLinkConfig, error) {
	cfg, _, err := Locate(customPath)
	return cfg, err
}

// Locate loads the game configuration and reports where it came from.
// customPath must exist and parse when given. Otherwise the first readable,
// valid file of ~/.fruitlink/configs and ./configs wins, falling back to
// the embedded defaults.
func Locate(customPath string) (FruitLinkConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FruitLinkConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseFruitLink(data)
		if err != nil {
			return FruitLinkConfig{}, "", fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPath() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseFruitLink(data); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := parseFruitLink(defaultFruitLinkYAML)
	if err != nil {
		cfg = DefaultFruitLinkConfig()
	}
	return cfg, SourceDefault, nil
}

// searchPath lists the optional config files, user directory first.
func searchPath() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".fruitlink", "configs", fruitLinkFile))
	}
	return append(paths, filepath.Join("configs", fruitLinkFile))
}

// parseFruitLink decodes YAML over the hardcoded defaults and validates the result.
// Keys missing from data keep their default values. A list given in data
// replaces the default list.
func parseFruitLink(data []byte) (FruitLinkConfig, error) {
	cfg := DefaultFruitLinkConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg FruitLinkConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
