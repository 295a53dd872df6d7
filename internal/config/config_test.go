package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testPaths(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	return Paths{
		ConfigPath: filepath.Join(dir, "config.toml"),
		DataDir:    dir,
		DBPath:     filepath.Join(dir, "taskflow.db"),
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	paths := testPaths(t)
	cfg, err := Load(paths.ConfigPath, Default(paths))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != paths.DBPath {
		t.Fatalf("database.path = %q, want %q", cfg.Database.Path, paths.DBPath)
	}
	if cfg.Client.APIURL != "http://127.0.0.1:8000/api" {
		t.Fatalf("client.api_url = %q", cfg.Client.APIURL)
	}
	if d, _ := cfg.RequestTimeout(); d != 0 {
		t.Fatalf("timeout = %v, want 0", d)
	}
}

func TestLoadOverridesFromTOML(t *testing.T) {
	paths := testPaths(t)
	content := `
[client]
api_url = "https://tasks.example.com/api"
timeout = "3s"

[database]
driver = "memory"

[ui]
theme = "nord"
celebrations = false

[logging]
level = "debug"
`
	if err := os.WriteFile(paths.ConfigPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(paths.ConfigPath, Default(paths))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Client.APIURL != "https://tasks.example.com/api" {
		t.Fatalf("client.api_url = %q", cfg.Client.APIURL)
	}
	if d, _ := cfg.RequestTimeout(); d != 3*time.Second {
		t.Fatalf("timeout = %v, want 3s", d)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Fatalf("database.driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.UI.Theme != "nord" || cfg.UI.Celebrations {
		t.Fatalf("ui = %+v, want theme nord and celebrations off", cfg.UI)
	}
	if cfg.Server.Bind != "127.0.0.1:8000" {
		t.Fatalf("server.bind = %q, want default kept", cfg.Server.Bind)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad url":     "[client]\napi_url = \"tasks\"\n",
		"bad timeout": "[client]\ntimeout = \"soon\"\n",
		"bad driver":  "[database]\ndriver = \"mongo\"\n",
		"pg no dsn":   "[database]\ndriver = \"postgres\"\n",
		"bad level":   "[logging]\nlevel = \"loud\"\n",
		"bad toml":    "[client\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			paths := testPaths(t)
			if err := os.WriteFile(paths.ConfigPath, []byte(content), 0o644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := Load(paths.ConfigPath, Default(paths)); err == nil {
				t.Fatal("Load() error = nil, want error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default(testPaths(t))
	env := map[string]string{
		"TASKFLOW_API_URL":   "http://10.0.0.2:9000/api",
		"TASKFLOW_DB_PATH":   "/tmp/other.db",
		"TASKFLOW_LOG_LEVEL": "warn",
	}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Client.APIURL != env["TASKFLOW_API_URL"] {
		t.Fatalf("api_url = %q", cfg.Client.APIURL)
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Fatalf("db path = %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestPathsForUsesXDG(t *testing.T) {
	env := map[string]string{"XDG_CONFIG_HOME": "/cfg", "XDG_DATA_HOME": "/data"}
	paths := PathsFor(func(k string) string { return env[k] }, func() (string, error) { return "/home/u", nil })
	if paths.ConfigPath != filepath.Join("/cfg", "taskflow", "config.toml") {
		t.Fatalf("config path = %q", paths.ConfigPath)
	}
	if paths.DBPath != filepath.Join("/data", "taskflow", "taskflow.db") {
		t.Fatalf("db path = %q", paths.DBPath)
	}

	fallback := PathsFor(func(string) string { return "" }, func() (string, error) { return "/home/u", nil })
	if !strings.HasPrefix(fallback.DataDir, filepath.Join("/home/u", ".local", "share")) {
		t.Fatalf("data dir = %q, want under ~/.local/share", fallback.DataDir)
	}
}
