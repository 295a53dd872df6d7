package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Driver selects the backend store used by `taskflow serve`.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

type Config struct {
	Client   ClientConfig   `toml:"client"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	UI       UIConfig       `toml:"ui"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ClientConfig struct {
	APIURL string `toml:"api_url"`
	// Timeout is a Go duration string; "0s" disables the per-request timeout.
	Timeout string `toml:"timeout"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
}

type DatabaseConfig struct {
	Driver Driver `toml:"driver"`
	Path   string `toml:"path"`
	DSN    string `toml:"dsn"`
}

type UIConfig struct {
	Theme         string `toml:"theme"`
	Celebrations  bool   `toml:"celebrations"`
	Notifications bool   `toml:"notifications"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Paths holds resolved per-user locations.
type Paths struct {
	ConfigPath string
	DataDir    string
	DBPath     string
}

// DefaultPaths resolves config and data locations from XDG variables with
// home-directory fallbacks.
func DefaultPaths() Paths {
	return PathsFor(os.Getenv, os.UserHomeDir)
}

// PathsFor resolves paths using the supplied environment and home lookups.
func PathsFor(getenv func(string) string, home func() (string, error)) Paths {
	homeDir, err := home()
	if err != nil || homeDir == "" {
		homeDir = "."
	}
	configBase := getenv("XDG_CONFIG_HOME")
	if configBase == "" {
		configBase = filepath.Join(homeDir, ".config")
	}
	dataBase := getenv("XDG_DATA_HOME")
	if dataBase == "" {
		dataBase = filepath.Join(homeDir, ".local", "share")
	}
	dataDir := filepath.Join(dataBase, "taskflow")
	return Paths{
		ConfigPath: filepath.Join(configBase, "taskflow", "config.toml"),
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "taskflow.db"),
	}
}

func Default(paths Paths) Config {
	return Config{
		Client: ClientConfig{
			APIURL:  "http://127.0.0.1:8000/api",
			Timeout: "0s",
		},
		Server: ServerConfig{
			Bind: "127.0.0.1:8000",
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   paths.DBPath,
		},
		UI: UIConfig{
			Theme:         "taskflow",
			Celebrations:  true,
			Notifications: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, cfg.Validate()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, cfg.Validate()
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides selected values from TASKFLOW_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("TASKFLOW_API_URL")); v != "" {
		c.Client.APIURL = v
	}
	if v := strings.TrimSpace(getenv("TASKFLOW_DB_PATH")); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(getenv("TASKFLOW_DB_DSN")); v != "" {
		c.Database.DSN = v
	}
	if v := strings.TrimSpace(getenv("TASKFLOW_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Client.APIURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("client.api_url %q must be an absolute http(s) URL", c.Client.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("client.api_url scheme %q is not supported", u.Scheme)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Server.Bind) == "" {
		return errors.New("server.bind is required")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return errors.New("database.dsn is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver %q must be sqlite, postgres or memory", c.Database.Driver)
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn or error", c.Logging.Level)
	}
	return nil
}

// RequestTimeout parses client.timeout. Zero means no timeout.
func (c Config) RequestTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Client.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("client.timeout %q: %w", c.Client.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("client.timeout %q must not be negative", c.Client.Timeout)
	}
	return d, nil
}
