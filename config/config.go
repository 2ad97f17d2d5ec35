// Package config loads and validates the agent's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"clipdeck/keys"
)

type Config struct {
	Hotkey    HotkeyConfig      `toml:"hotkey"`
	Clipboard ClipboardConfig   `toml:"clipboard"`
	Commands  map[string]string `toml:"commands"`
	Web       WebConfig         `toml:"web"`
	Tray      TrayConfig        `toml:"tray"`
}

type HotkeyConfig struct {
	// Modifier is the named key that must lead a combination for
	// trigger matching ("alt_left" by default).
	Modifier string `toml:"modifier"`
	// Cancel aborts an active command and, when idle, stops the agent.
	Cancel string `toml:"cancel"`
}

type ClipboardConfig struct {
	MaxSlots int `toml:"max_slots"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type TrayConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Hotkey: HotkeyConfig{
			Modifier: string(keys.AltLeft),
			Cancel:   string(keys.Esc),
		},
		Clipboard: ClipboardConfig{
			MaxSlots: 5,
		},
		// Command triggers default to the built-in table; entries here
		// override individual commands, e.g. copy = "y".
		Commands: map[string]string{},
		Web: WebConfig{
			Enabled: true,
			Port:    8721,
		},
		Tray: TrayConfig{
			Enabled: true,
		},
	}
}

// Dir returns the application data directory, creating it if needed.
func Dir() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}

	dir := filepath.Join(appData, "clipdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// ConfigPath returns the path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file.
// If the file doesn't exist, it creates it with default values.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot start with. Trigger
// key overrides are validated separately when the binding table is built.
func (c *Config) Validate() error {
	if c.Clipboard.MaxSlots < 1 {
		return fmt.Errorf("clipboard.max_slots must be positive, got %d", c.Clipboard.MaxSlots)
	}
	if c.Hotkey.Modifier != "" && keys.Key(c.Hotkey.Modifier).Kind() != keys.KindControl {
		return fmt.Errorf("hotkey.modifier %q is not a named control key", c.Hotkey.Modifier)
	}
	if c.Hotkey.Cancel != "" && keys.Key(c.Hotkey.Cancel).Kind() != keys.KindControl {
		return fmt.Errorf("hotkey.cancel %q is not a named control key", c.Hotkey.Cancel)
	}
	if c.Web.Enabled && (c.Web.Port < 1 || c.Web.Port > 65535) {
		return fmt.Errorf("web.port %d out of range", c.Web.Port)
	}
	return nil
}

// save writes the configuration to the TOML file.
func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
