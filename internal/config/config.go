package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"filebrowser/internal/constants"
	apperrors "filebrowser/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Window WindowConfig      `yaml:"window"`
	Picker PickerConfig      `yaml:"picker"`
	Macros map[string]string `yaml:"macros"`
	Recent RecentConfig      `yaml:"recent"`
}

// WindowConfig represents window-related settings
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PickerConfig represents picker behaviour shared by every descriptor
type PickerConfig struct {
	ShowHiddenFiles *bool    `yaml:"showHiddenFiles"` // nil when the file leaves it unset
	ImagePatterns   []string `yaml:"imagePatterns"` // doublestar globs on the lower-cased base name
	CustomFilter    string   `yaml:"customFilter"`  // expr boolean over name, path, ext, isDir
	ResourceGlobs   []string `yaml:"resourceGlobs"` // module-relative candidate resource folders
	MaxRecent       int      `yaml:"maxRecent"`
}

// ShowHidden reports the effective hidden-files setting.
func (p PickerConfig) ShowHidden() bool {
	if p.ShowHiddenFiles == nil {
		return constants.DefaultShowHiddenFiles
	}
	return *p.ShowHiddenFiles
}

// RecentConfig remembers directories the user picked from
type RecentConfig struct {
	Entries  []string             `yaml:"entries"`  // newest first
	LastUsed map[string]time.Time `yaml:"lastUsed"` // LRU management
}

// Manager provides configuration management functionality
type Manager struct {
	configPath string
}

// NewManager creates a configuration manager. An empty path selects the
// OS-specific default location.
func NewManager(path string) *Manager {
	if path == "" {
		path = getConfigPath()
	}
	return &Manager{configPath: path}
}

// Path returns the file the manager reads and writes.
func (m *Manager) Path() string {
	return m.configPath
}

// Load loads configuration from file and merges with defaults
func (m *Manager) Load() (*Config, error) {
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		log.Debug().Err(err).Str("path", m.configPath).Msg("config file not found, using defaults")
		return config, nil
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return nil, apperrors.NewConfigError("load", "error parsing config file", err)
	}

	mergeConfigs(config, &fileConfig)
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return apperrors.NewConfigError("save", "error marshaling config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  constants.DefaultWindowWidth,
			Height: constants.DefaultWindowHeight,
		},
		Picker: PickerConfig{
			ShowHiddenFiles: boolPtr(constants.DefaultShowHiddenFiles),
			ImagePatterns:   append([]string(nil), constants.DefaultImagePatterns...),
			ResourceGlobs:   append([]string(nil), constants.DefaultResourceGlobs...),
			MaxRecent:       constants.DefaultMaxRecent,
		},
		Macros: make(map[string]string),
		Recent: RecentConfig{
			Entries:  make([]string, 0),
			LastUsed: make(map[string]time.Time),
		},
	}
}

// getConfigPath returns the path to the configuration file following OS conventions
func getConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// %APPDATA%\filebrowser\config.yml
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, constants.ApplicationName)

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return constants.ConfigFileName
		}
		configDir = filepath.Join(home, "Library", "Application Support", constants.ApplicationName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, constants.ApplicationName)
	}

	return filepath.Join(configDir, constants.ConfigFileName)
}

// mergeConfigs merges file config values into default config
func mergeConfigs(defaultConfig *Config, fileConfig *Config) {
	if fileConfig.Window.Width != 0 {
		defaultConfig.Window.Width = fileConfig.Window.Width
	}
	if fileConfig.Window.Height != 0 {
		defaultConfig.Window.Height = fileConfig.Window.Height
	}

	if fileConfig.Picker.ShowHiddenFiles != nil {
		defaultConfig.Picker.ShowHiddenFiles = boolPtr(*fileConfig.Picker.ShowHiddenFiles)
	}
	if fileConfig.Picker.ImagePatterns != nil {
		defaultConfig.Picker.ImagePatterns = fileConfig.Picker.ImagePatterns
	}
	if fileConfig.Picker.CustomFilter != "" {
		defaultConfig.Picker.CustomFilter = fileConfig.Picker.CustomFilter
	}
	if fileConfig.Picker.ResourceGlobs != nil {
		defaultConfig.Picker.ResourceGlobs = fileConfig.Picker.ResourceGlobs
	}
	if fileConfig.Picker.MaxRecent != 0 {
		defaultConfig.Picker.MaxRecent = fileConfig.Picker.MaxRecent
	}

	for name, value := range fileConfig.Macros {
		defaultConfig.Macros[name] = value
	}

	if fileConfig.Recent.Entries != nil {
		defaultConfig.Recent.Entries = fileConfig.Recent.Entries
	}
	if fileConfig.Recent.LastUsed != nil {
		defaultConfig.Recent.LastUsed = fileConfig.Recent.LastUsed
	}
}

// AddRecent moves path to the front of the recent directories and drops the
// oldest entry beyond Picker.MaxRecent.
func (c *Config) AddRecent(path string) {
	if path == "" {
		return
	}
	if c.Recent.LastUsed == nil {
		c.Recent.LastUsed = make(map[string]time.Time)
	}

	for i, entry := range c.Recent.Entries {
		if entry == path {
			c.Recent.Entries = append(c.Recent.Entries[:i], c.Recent.Entries[i+1:]...)
			break
		}
	}
	c.Recent.Entries = append([]string{path}, c.Recent.Entries...)
	c.Recent.LastUsed[path] = time.Now()

	limit := c.Picker.MaxRecent
	if limit <= 0 {
		limit = constants.DefaultMaxRecent
	}
	for len(c.Recent.Entries) > limit {
		oldest := c.Recent.Entries[len(c.Recent.Entries)-1]
		c.Recent.Entries = c.Recent.Entries[:len(c.Recent.Entries)-1]
		delete(c.Recent.LastUsed, oldest)
	}
}

// GetRecent returns the recent directories, newest first.
func (c *Config) GetRecent() []string {
	out := make([]string, len(c.Recent.Entries))
	copy(out, c.Recent.Entries)
	return out
}

func boolPtr(v bool) *bool {
	return &v
}
