package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ByteMirror/growlens/assessment"
	"github.com/ByteMirror/growlens/log"
	"github.com/ByteMirror/growlens/recraft"
)

const (
	ConfigFileName = "config.json"
	// ConfigDirEnv overrides the configuration directory. Used by tests and
	// for running several profiles side by side.
	ConfigDirEnv = "GROWLENS_CONFIG_DIR"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".growlens"), nil
}

// Config represents the application configuration
type Config struct {
	// APIBaseURL is the scheme and host of the image transformation API.
	APIBaseURL string `json:"api_base_url"`
	// DefaultPrompt pre-fills the assessment prompt when no override is passed in.
	DefaultPrompt string `json:"default_prompt"`
	// Strength is how far the model may move away from the source photo (0..1).
	Strength float64 `json:"strength"`
	// Style is the rendering style tag sent with every request.
	Style string `json:"style"`
	// ResultCount is the number of images requested.
	ResultCount int `json:"result_count"`
	// ResponseFormat selects between url and b64_json results.
	ResponseFormat string `json:"response_format"`
	// ImageDir is where the photo picker starts browsing. Empty means the home directory.
	ImageDir string `json:"image_dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     recraft.DefaultBaseURL,
		DefaultPrompt:  assessment.DefaultPrompt,
		Strength:       0.7,
		Style:          "realistic_image",
		ResultCount:    1,
		ResponseFormat: "url",
	}
}

// LoadConfig loads the configuration from disk. If it cannot be done, we return the default configuration.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	// Start from the defaults so fields missing from older files keep sane values.
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	return config
}

// SaveConfig writes the configuration to disk atomically.
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomicWriteFile(filepath.Join(configDir, ConfigFileName), data, 0644)
}

// PickerDir returns the directory the photo picker should open in.
func (c *Config) PickerDir() string {
	if c.ImageDir != "" {
		return c.ImageDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ClientConfig builds the API client settings for token from c.
func (c *Config) ClientConfig(token string) recraft.ClientConfig {
	return recraft.ClientConfig{
		BaseURL: c.APIBaseURL,
		Token:   token,
		Options: recraft.Options{
			Strength:       c.Strength,
			Style:          c.Style,
			N:              c.ResultCount,
			ResponseFormat: c.ResponseFormat,
		},
	}
}
