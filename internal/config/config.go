// Package config loads qotd settings.
//
// Precedence, lowest first: built-in defaults, the YAML config file
// (~/.config/qotd/config.yaml or --config), QOTD_* environment variables
// (a .env file in the working directory is honoured), command-line flags.
//
// Paths follow the XDG Base Directory specification:
//   - Config: ~/.config/qotd/config.yaml
//   - Data:   ~/.local/share/qotd/ (questions.db, questions.json)
//   - State:  ~/.local/state/qotd/ (state.yaml, qotd.log)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idilsaglam/qotd/internal/logging"
)

const appName = "qotd"

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
	DriverMemory = "memory"
)

// Config is the top-level configuration.
type Config struct {
	Store  StoreConfig    `mapstructure:"store"`
	State  StateConfig    `mapstructure:"state"`
	Data   DataConfig     `mapstructure:"data"`
	UI     UIConfig       `mapstructure:"ui"`
	Logger logging.Config `mapstructure:"logger"`
}

// StoreConfig selects where question records live.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, json, memory
	Path   string `mapstructure:"path"`   // empty picks a file in DataDir
}

// StateConfig locates the position file used by the json driver.
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// DataConfig locates the seed deck.
type DataConfig struct {
	Path string `mapstructure:"path"` // empty means the embedded deck
}

// UIConfig holds viewer preferences.
type UIConfig struct {
	Theme       string `mapstructure:"theme"` // classic, neon, mono
	Markdown    bool   `mapstructure:"markdown"`
	HideAnswers bool   `mapstructure:"hide_answers"`
}

// ConfigDir returns the XDG config directory for qotd.
func ConfigDir() string { return xdgDir("XDG_CONFIG_HOME", ".config") }

// DataDir returns the XDG data directory for qotd.
func DataDir() string { return xdgDir("XDG_DATA_HOME", ".local", "share") }

// StateDir returns the XDG state directory for qotd.
func StateDir() string { return xdgDir("XDG_STATE_HOME", ".local", "state") }

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...)
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.path", "")
	v.SetDefault("state.path", filepath.Join(StateDir(), "state.yaml"))
	v.SetDefault("data.path", "")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.markdown", true)
	v.SetDefault("ui.hide_answers", false)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.filename", filepath.Join(StateDir(), "qotd.log"))
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"store": "store.driver",
	"db":    "store.path",
	"data":  "data.path",
	"theme": "ui.theme",
}

// Load reads configuration. path may be empty to use ConfigPath; a
// missing default file is not an error, a missing explicit one is.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("QOTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = ConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.State.Path = expandHome(cfg.State.Path)
	cfg.Data.Path = expandHome(cfg.Data.Path)
	cfg.Logger.Filename = expandHome(cfg.Logger.Filename)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverJSON, DriverMemory:
	default:
		return fmt.Errorf("store.driver must be sqlite, json or memory, got %q", c.Store.Driver)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme must be classic, neon or mono, got %q", c.UI.Theme)
	}
	return nil
}

// StorePath returns the configured store path or the driver's default file.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	switch c.Store.Driver {
	case DriverJSON:
		return filepath.Join(DataDir(), "questions.json")
	default:
		return filepath.Join(DataDir(), "questions.db")
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
