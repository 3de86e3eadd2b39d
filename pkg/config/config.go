package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config controls an analysis run. Values omitted from a config file
// keep their defaults; command-line flags override both.
type Config struct {
	ExcludePatterns []string `json:"exclude_patterns"`
	ShowSnippets    bool     `json:"show_snippets"`
	Workers         int      `json:"workers"`
}

// DefaultExcludePatterns are path substrings skipped during directory
// traversal.
func DefaultExcludePatterns() []string {
	return []string{"__pycache__", ".git", ".venv", "node_modules", "temp_ask_claude"}
}

func Default() *Config {
	return &Config{
		ExcludePatterns: DefaultExcludePatterns(),
		ShowSnippets:    true,
		Workers:         0,
	}
}

// LoadConfig reads a JSON config file on top of the defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
