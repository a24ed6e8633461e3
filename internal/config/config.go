package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"planner/internal/view"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "planner.db"
	DefaultDataFileName   = "planner.yaml"

	BackendSQLite = "sqlite"
	BackendYAML   = "yaml"

	envConfigPath = "PLANNER_CONFIG"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	PrevDay  string `toml:"prev_day"`
	NextDay  string `toml:"next_day"`
	Today    string `toml:"today"`
	Toggle   string `toml:"toggle"`
	Delete   string `toml:"delete"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Field    string `toml:"field"`
	Category string `toml:"category"`
	Reload   string `toml:"reload"`
	Priority string `toml:"priority"`
}

type Config struct {
	Backend     string `toml:"backend"`
	DBPath      string `toml:"db_path"`
	DataFile    string `toml:"data_file"`
	DateField   string `toml:"date_field"`
	LogPath     string `toml:"log_path"`
	Development bool   `toml:"development"`
	Keys        Keymap `toml:"keys"`
}

// ResolveConfigPath returns $PLANNER_CONFIG when set, otherwise
// config.toml under the user config directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "planner", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing defaults there first if it
// does not exist. Relative data paths are resolved against the config's
// directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFileName
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendYAML:
	default:
		return fmt.Errorf("invalid backend %q (valid: %s, %s)", c.Backend, BackendSQLite, BackendYAML)
	}
	if _, err := view.ParseDateField(c.DateField); err != nil {
		return err
	}
	return nil
}

// Field returns the configured initial date filter field.
func (c Config) Field() view.DateField {
	f, _ := view.ParseDateField(c.DateField)
	return f
}

func (c Config) resolve(dir string) Config {
	c.DBPath = resolvePath(dir, c.DBPath)
	c.DataFile = resolvePath(dir, c.DataFile)
	if c.LogPath != "" {
		c.LogPath = resolvePath(dir, c.LogPath)
	}
	return c
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Backend:   BackendSQLite,
		DBPath:    DefaultDBName,
		DataFile:  DefaultDataFileName,
		DateField: "due",
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			PrevDay:  "h",
			NextDay:  "l",
			Today:    "t",
			Toggle:   " ",
			Delete:   "d",
			Confirm:  "enter",
			Cancel:   "esc",
			Field:    "f",
			Category: "c",
			Reload:   "r",
			Priority: "tab",
		},
	}
}
