package ticket

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tailscale/hujson"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ID schemes.
const (
	IDSchemeUUID     = "uuid"
	IDSchemeSequence = "sequence"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	validFormats   = []string{FormatText, FormatJSON, FormatYAML}
	validColors    = []string{ColorAuto, ColorAlways, ColorNever}
	validIDSchemes = []string{IDSchemeUUID, IDSchemeSequence}
	validLogLevels = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Format      string `json:"format"`
	Color       string `json:"color"`
	LogLevel    string `json:"log_level"`
	HistoryFile string `json:"history_file,omitempty"`
	Prompt      string `json:"prompt"`
	IDScheme    string `json:"id_scheme"`

	// Resolved (computed, not serialized)
	EffectiveCwd string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Format:   FormatText,
		Color:    ColorAuto,
		LogLevel: "warn",
		Prompt:   "jira> ",
		IDScheme: IDSchemeUUID,
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".jira.json"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/jira/config.json if set, otherwise ~/.config/jira/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "jira", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "jira", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Config            // non-empty fields win over every file
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/jira/config.json or $XDG_CONFIG_HOME/jira/config.json)
// 3. Project config file at default location (.jira.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty), replacing 3
// 5. CLI overrides.
//
// A relative history_file is resolved against the effective working directory.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	cfg = mergeConfig(cfg, input.Overrides)

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir

	if cfg.HistoryFile != "" && !filepath.IsAbs(cfg.HistoryFile) {
		cfg.HistoryFile = filepath.Join(workDir, cfg.HistoryFile)
	}

	return cfg, nil
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.jira.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, whether the file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// An explicit "" would silently fall back to the default; reject it instead.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	for _, key := range []string{"format", "color", "log_level", "prompt", "id_scheme"} {
		if val, exists := raw[key]; exists {
			if str, ok := val.(string); ok && str == "" {
				return Config{}, fmt.Errorf("%s cannot be empty", key)
			}
		}
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Format != "" {
		base.Format = overlay.Format
	}

	if overlay.Color != "" {
		base.Color = overlay.Color
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.HistoryFile != "" {
		base.HistoryFile = overlay.HistoryFile
	}

	if overlay.Prompt != "" {
		base.Prompt = overlay.Prompt
	}

	if overlay.IDScheme != "" {
		base.IDScheme = overlay.IDScheme
	}

	return base
}

func validateConfig(cfg Config) error {
	if !slices.Contains(validFormats, cfg.Format) {
		return fmt.Errorf("%w: format %q (valid: text|json|yaml)", ErrConfigInvalid, cfg.Format)
	}

	if !slices.Contains(validColors, cfg.Color) {
		return fmt.Errorf("%w: color %q (valid: auto|always|never)", ErrConfigInvalid, cfg.Color)
	}

	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return fmt.Errorf("%w: log_level %q", ErrConfigInvalid, cfg.LogLevel)
	}

	if !slices.Contains(validIDSchemes, cfg.IDScheme) {
		return fmt.Errorf("%w: id_scheme %q (valid: uuid|sequence)", ErrConfigInvalid, cfg.IDScheme)
	}

	return nil
}
