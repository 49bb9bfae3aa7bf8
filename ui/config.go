package ui

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the user settings of a session.
type Config struct {
	// LogFile receives the debug log when set.
	LogFile string `yaml:"log_file"`
	// PollInterval caps how long the loop waits for input.
	PollInterval time.Duration `yaml:"poll_interval"`
	// Cols and Rows are the screen size used when the output is not a
	// terminal.
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
	// Theme is "dark", "light" or empty to ask the terminal.
	Theme string `yaml:"theme"`
	// Palette overrides entries of the theme palette.
	Palette Palette `yaml:"palette"`
}

func DefaultConfig() Config {
	return Config{
		PollInterval: 100 * time.Millisecond,
		Cols:         80,
		Rows:         24,
	}
}

// LoadConfig reads a YAML config file. Missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Theme {
	case "", "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval)
	}
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Cols, c.Rows)
	}
	return nil
}

// ResolvePalette returns the theme palette with the configured entries
// merged over it.
func (c Config) ResolvePalette() Palette {
	light := c.Theme == "light" || (c.Theme == "" && detectLightTerminal())
	p := DefaultPalette(light)
	for a, st := range c.Palette {
		p[a] = p[a].Merge(st)
	}
	return p
}
