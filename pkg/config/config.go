/*
Package config manages TOML config for the tilespeak engine.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tilespeak/tilespeak/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// EngineConfig has suggestion engine options.
type EngineConfig struct {
	MaxSuggestions  int     `toml:"max_suggestions"`
	MinConfidence   float64 `toml:"min_confidence"`
	DedupDistance   int     `toml:"dedup_distance"`
	FrequencyWeight float64 `toml:"frequency_weight"`
}

// StoreConfig holds durable pattern store options.
type StoreConfig struct {
	Path          string `toml:"path"`
	Scope         string `toml:"scope"`
	RetentionDays int    `toml:"retention_days"`
	Disabled      bool   `toml:"disabled"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit        int `toml:"max_limit"`
	MaxUtteranceLen int `toml:"max_utterance_len"`
	ReloadInterval  int `toml:"reload_interval"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/tilespeak
// 2. ~/Library/Application Support/tilespeak (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "tilespeak")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "tilespeak")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// DefaultStorePath returns the default sqlite database location, next to the
// config file so one directory holds all per-user state.
func DefaultStorePath() string {
	configDir, err := GetConfigDir()
	if err != nil {
		return "tilespeak.db"
	}
	return filepath.Join(configDir, "tilespeak.db")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/tilespeak/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxSuggestions:  8,
			MinConfidence:   0.1,
			DedupDistance:   2,
			FrequencyWeight: 0.02,
		},
		Store: StoreConfig{
			Path:          "",
			Scope:         "default",
			RetentionDays: 180,
			Disabled:      false,
		},
		Server: ServerConfig{
			MaxLimit:        32,
			MaxUtteranceLen: 240,
			ReloadInterval:  100,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages valid sections from a partially broken TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if storeSection, ok := utils.ExtractSection(tempConfig, "store"); ok {
		extractStoreConfig(storeSection, &config.Store)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		engine.MaxSuggestions = val
	}
	if val, ok := utils.ExtractFloat64(data, "min_confidence"); ok {
		engine.MinConfidence = val
	}
	if val, ok := utils.ExtractInt64(data, "dedup_distance"); ok {
		engine.DedupDistance = val
	}
	if val, ok := utils.ExtractFloat64(data, "frequency_weight"); ok {
		engine.FrequencyWeight = val
	}
}

// extractStoreConfig extracts store configuration from a map
func extractStoreConfig(data map[string]any, store *StoreConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		store.Path = val
	}
	if val, ok := utils.ExtractString(data, "scope"); ok {
		store.Scope = val
	}
	if val, ok := utils.ExtractInt64(data, "retention_days"); ok {
		store.RetentionDays = val
	}
	if val, ok := utils.ExtractBool(data, "disabled"); ok {
		store.Disabled = val
	}
}

// extractServerConfig extracts server config from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_utterance_len"); ok {
		server.MaxUtteranceLen = val
	}
	if val, ok := utils.ExtractInt64(data, "reload_interval"); ok {
		server.ReloadInterval = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes engine limits and saves to file
func (c *Config) Update(configPath string, maxSuggestions *int, minConfidence *float64) error {
	if maxSuggestions != nil {
		c.Engine.MaxSuggestions = *maxSuggestions
	}
	if minConfidence != nil {
		c.Engine.MinConfidence = *minConfidence
	}
	return SaveConfig(c, configPath)
}
