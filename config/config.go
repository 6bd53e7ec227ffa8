package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ajkula/moni/domain/model"
)

// DefaultFile is looked up in the working directory when no -config is given
const DefaultFile = "moni.json"

// Config holds the watch configuration. The top-level snake_case keys are
// the historical moni.json format; nested sections use camelCase.
type Config struct {
	// Workspace is the root directory to watch
	Workspace string `yaml:"workspace" json:"workspace"`

	// TargetExtensions restricts reported files; empty accepts everything
	TargetExtensions []string `yaml:"target_extensions" json:"target_extensions"`

	// IgnoreFilenames are base names skipped while scanning
	IgnoreFilenames []string `yaml:"ignore_filenames" json:"ignore_filenames"`

	// IgnoreExtensions are extensions skipped while scanning
	IgnoreExtensions []string `yaml:"ignore_extensions" json:"ignore_extensions"`

	// IgnorePathWords are regular expressions searched in base names
	IgnorePathWords []string `yaml:"ignore_path_words" json:"ignore_path_words"`

	// IgnoreGlobs are glob patterns matched against base names
	IgnoreGlobs []string `yaml:"ignore_globs" json:"ignore_globs"`

	// ExecuteCommand is the shell command template, see model.PlaceholderToken
	ExecuteCommand string `yaml:"execute_command" json:"execute_command"`

	// DebugMessage overrides the console printer lines
	DebugMessage *DebugMessage `yaml:"debug_message,omitempty" json:"debug_message,omitempty"`

	// Watch loop configuration
	Watch struct {
		// Interval is the pause between two scans
		Interval time.Duration `yaml:"interval" json:"interval"`

		// DetectBy is "size" or "mtime"
		DetectBy string `yaml:"detectBy" json:"detectBy"`

		// PruneMissing forgets files that disappeared from the tree
		PruneMissing bool `yaml:"pruneMissing" json:"pruneMissing"`

		// Shell overrides the platform shell used for commands
		Shell string `yaml:"shell" json:"shell"`
	} `yaml:"watch" json:"watch"`

	// Console printer configuration
	Console struct {
		// Enabled prints the action banners on stdout
		Enabled bool `yaml:"enabled" json:"enabled"`

		// Plain disables colors
		Plain bool `yaml:"plain" json:"plain"`
	} `yaml:"console" json:"console"`

	// Monitor HTTP server configuration
	Monitor struct {
		// Enabled starts the status API and the event websocket
		Enabled bool `yaml:"enabled" json:"enabled"`

		// Address to bind the monitor server
		Address string `yaml:"address" json:"address"`

		// Port to bind the monitor server
		Port int `yaml:"port" json:"port"`
	} `yaml:"monitor" json:"monitor"`

	Logging struct {
		Level       string `yaml:"level" json:"level"` // "error", "warn", "info", "debug"
		ChannelSize int    `yaml:"channelSize" json:"channelSize"`
		Format      string `yaml:"format" json:"format"` // "text", "json"
		Output      string `yaml:"output" json:"output"` // "stdout", "stderr", "file"
		FilePath    string `yaml:"filePath" json:"filePath"`
	} `yaml:"logging" json:"logging"`
}

// DebugMessage holds the console printer lines. Empty fields keep the
// defaults; Execute may contain the MONI_EXE marker.
type DebugMessage struct {
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	Success string `yaml:"success,omitempty" json:"success,omitempty"`
	Error   string `yaml:"error,omitempty" json:"error,omitempty"`
	Line    string `yaml:"line,omitempty" json:"line,omitempty"`
	Execute string `yaml:"execute,omitempty" json:"execute,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	c := &Config{}

	c.Workspace = "./"
	c.TargetExtensions = []string{}
	c.IgnoreFilenames = []string{}
	c.IgnoreExtensions = []string{}
	c.IgnorePathWords = []string{}
	c.IgnoreGlobs = []string{}

	// watch loop
	c.Watch.Interval = 100 * time.Millisecond
	c.Watch.DetectBy = string(model.DetectBySize)
	c.Watch.PruneMissing = false
	c.Watch.Shell = ""

	c.Console.Enabled = true
	c.Console.Plain = false

	// monitor server
	c.Monitor.Enabled = false
	c.Monitor.Address = "127.0.0.1"
	c.Monitor.Port = 7357

	// Logging configuration defaults
	c.Logging.Level = "warn"
	c.Logging.ChannelSize = 1000
	c.Logging.Format = "text"
	c.Logging.Output = "stderr"
	c.Logging.FilePath = ""

	return c
}

// LoadConfig reads a YAML or JSON (by extension) file over the defaults.
// Validation is left to the caller so command-line overrides apply first.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	if isJSON(path) {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(config, "", "  ")
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks everything the watch engine refuses to start without.
func (c *Config) Validate() error {
	logLevel := strings.ToLower(c.Logging.Level)
	if logLevel != "debug" && logLevel != "info" && logLevel != "warn" && logLevel != "error" {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "stderr":
	case "file":
		if c.Logging.FilePath == "" {
			return fmt.Errorf("log output is file but no filePath given")
		}
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if c.ExecuteCommand == "" {
		return model.ErrNoAction
	}

	if c.Watch.Interval <= 0 {
		return fmt.Errorf("%w: %s", model.ErrInvalidInterval, c.Watch.Interval)
	}

	switch model.DetectMode(c.Watch.DetectBy) {
	case model.DetectBySize, model.DetectByModTime:
	default:
		return fmt.Errorf("invalid detectBy: %s", c.Watch.DetectBy)
	}

	if _, err := model.ParseExtensions(c.TargetExtensions); err != nil {
		return fmt.Errorf("target_extensions: %w", err)
	}
	if _, err := model.ParseExtensions(c.IgnoreExtensions); err != nil {
		return fmt.Errorf("ignore_extensions: %w", err)
	}

	info, err := os.Stat(c.Workspace)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", model.ErrMissingRoot, c.Workspace)
	}

	if c.Monitor.Enabled && (c.Monitor.Port < 1 || c.Monitor.Port > 65535) {
		return fmt.Errorf("invalid monitor port: %d", c.Monitor.Port)
	}

	return nil
}

// FilterConfig converts the scan rules for the path filter.
func (c *Config) FilterConfig() model.PathFilterConfig {
	return model.PathFilterConfig{
		Root:             c.Workspace,
		IgnoreFilenames:  c.IgnoreFilenames,
		IgnorePatterns:   c.IgnorePathWords,
		IgnoreGlobs:      c.IgnoreGlobs,
		IgnoreExtensions: c.IgnoreExtensions,
		TargetExtensions: c.TargetExtensions,
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
