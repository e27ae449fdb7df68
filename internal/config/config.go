// Package config holds the canvasbee configuration: Canvas API access plus
// the file names of the mapping table and students file a course directory
// works with.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file canvasbee looks for in the
// course directory.
const DefaultFilename = "canvasbee.yaml"

// Config holds all canvasbee configuration.
type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Roster RosterConfig `yaml:"roster"`
}

// CanvasConfig configures access to the Canvas API.
type CanvasConfig struct {
	// BaseURL is the API root, e.g. https://canvas.example.edu/api/v1.
	BaseURL string `yaml:"base_url"`

	AccessToken string `yaml:"access_token"`
	CourseID    int64  `yaml:"course_id"`
	Timeout     string `yaml:"timeout"`
}

// RosterConfig configures the roster artifacts of a course directory.
type RosterConfig struct {
	GitMapFile   string `yaml:"git_map_file"`
	StudentsFile string `yaml:"students_file"`

	// StartMessage is posted to every submission by prepare-assignment to
	// initialize group submissions.
	StartMessage string `yaml:"start_message"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Timeout: "30s",
		},
		Roster: RosterConfig{
			GitMapFile:   "canvas-git-map.csv",
			StudentsFile: "students.lst",
			StartMessage: "This assignment is managed by canvasbee.",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error; defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides lets the environment win over file values, so tokens
// do not have to live on disk.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CANVAS_BASE_URL"); v != "" {
		c.Canvas.BaseURL = v
	}
	if v := os.Getenv("CANVAS_ACCESS_TOKEN"); v != "" {
		c.Canvas.AccessToken = v
	}
	if v := os.Getenv("CANVAS_COURSE_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Canvas.CourseID = id
		}
	}
}

// Validate checks that the configuration can reach the Canvas API.
func (c *Config) Validate() error {
	if c.Canvas.BaseURL == "" {
		return fmt.Errorf("canvas base URL not configured (set canvas.base_url or CANVAS_BASE_URL)")
	}
	if c.Canvas.AccessToken == "" {
		return fmt.Errorf("canvas access token not configured (set canvas.access_token or CANVAS_ACCESS_TOKEN)")
	}
	if c.Canvas.CourseID == 0 {
		return fmt.Errorf("canvas course id not configured (set canvas.course_id or CANVAS_COURSE_ID)")
	}
	if _, err := time.ParseDuration(c.Canvas.Timeout); c.Canvas.Timeout != "" && err != nil {
		return fmt.Errorf("invalid canvas timeout %q: %w", c.Canvas.Timeout, err)
	}
	return nil
}

// APITimeout returns the configured API timeout.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.Canvas.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
