package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// Config is the optional on-disk configuration. Every field has a default;
// a missing file is not an error.
type Config struct {
	Bell   bool         `toml:"bell"`
	Colors ColorsConfig `toml:"colors"`
}

// ColorsConfig holds ANSI color values (0-255 or hex) for the UI elements.
type ColorsConfig struct {
	Gutter   string `toml:"gutter"`
	Filler   string `toml:"filler"`
	StatusFg string `toml:"status_fg"`
	StatusBg string `toml:"status_bg"`
	Welcome  string `toml:"welcome"`
}

func defaultConfig() Config {
	return Config{
		Bell: true,
		Colors: ColorsConfig{
			Gutter:   "3",
			Filler:   "8",
			StatusFg: "0",
			StatusBg: "7",
			Welcome:  "4",
		},
	}
}

// loadConfig reads the TOML config at path, or at the default location when
// path is empty. A missing file yields defaults; a file that exists but does
// not parse is an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return defaultConfig(), nil
		}
	}
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return defaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "specto", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "specto", "config.toml")
}

// Theme is the set of styles the renderer draws with.
type Theme struct {
	Gutter  lipgloss.Style
	Filler  lipgloss.Style
	Status  lipgloss.Style
	Welcome lipgloss.Style
}

func (c Config) theme() Theme {
	return Theme{
		Gutter:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors.Gutter)),
		Filler:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors.Filler)).Faint(true),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors.StatusFg)).Background(lipgloss.Color(c.Colors.StatusBg)),
		Welcome: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors.Welcome)),
	}
}
