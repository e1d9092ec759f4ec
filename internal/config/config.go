// Package config loads orgdir settings from an optional YAML file and ORGDIR_* environment
// variables.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"orgdir/internal/logging"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "ORGDIR_"
	configFileName    = "config.yaml"
	maxConfigFileSize = 1024 * 1024

	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Store     StoreConfig     `koanf:"store"`
	Corpus    CorpusConfig    `koanf:"corpus"`
	Directory DirectoryConfig `koanf:"directory"`
	UI        UIConfig        `koanf:"ui"`
	Log       logging.Config  `koanf:"log"`
}

type StoreConfig struct {
	Dir string `koanf:"dir"`
	// Backend is one of file|sqlite|memory.
	Backend string `koanf:"backend"`
	// Debounce delays change broadcasts after a write.
	Debounce time.Duration `koanf:"debounce"`
	// Watch republishes changes made by other processes (file backend only).
	Watch bool `koanf:"watch"`
}

type CorpusConfig struct {
	// Path to a JSONL file of analyzed mail records.
	Path string `koanf:"path"`
}

type DirectoryConfig struct {
	// Self is the organization value that stands for the owner and is never suggested.
	Self string `koanf:"self"`
}

type UIConfig struct {
	// Grace is how long a blurred field waits before creating an unmatched entity.
	Grace time.Duration `koanf:"grace"`
	// Settle suppresses blur handling right after a selection.
	Settle time.Duration `koanf:"settle"`
}

// Dir is the orgdir home. ORGDIR_CONFIG_DIR overrides it (keeps tests away from ~/.orgdir).
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("ORGDIR_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".orgdir"), nil
}

// Default returns the configuration used when nothing is set.
func Default() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	applyDefaults(cfg, dir)
	return cfg, nil
}

// Load reads path (or <Dir>/config.yaml when empty), then applies ORGDIR_* overrides.
//
// Environment variables map to keys by splitting on the first underscore after the prefix:
//
//	ORGDIR_STORE_BACKEND -> store.backend
//	ORGDIR_UI_GRACE      -> ui.grace
//	ORGDIR_DIRECTORY_SELF -> directory.self
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		path = filepath.Join(dir, configFileName)
	}

	k := koanf.New(".")

	if content, err := readConfigFile(path); err != nil {
		return nil, err
	} else if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg, dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// readConfigFile returns nil content when the file does not exist.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path is a directory: %s", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes", info.Size())
	}
	return io.ReadAll(f)
}

func applyDefaults(cfg *Config, dir string) {
	if strings.TrimSpace(cfg.Store.Dir) == "" {
		cfg.Store.Dir = filepath.Join(dir, "store")
	}
	if strings.TrimSpace(cfg.Store.Backend) == "" {
		cfg.Store.Backend = BackendFile
	}
	if cfg.Store.Debounce == 0 {
		cfg.Store.Debounce = 100 * time.Millisecond
	}
	if strings.TrimSpace(cfg.Corpus.Path) == "" {
		cfg.Corpus.Path = filepath.Join(dir, "mail.jsonl")
	}
	if strings.TrimSpace(cfg.Directory.Self) == "" {
		cfg.Directory.Self = "self"
	}
	if cfg.UI.Grace == 0 {
		cfg.UI.Grace = 150 * time.Millisecond
	}
	if cfg.UI.Settle == 0 {
		cfg.UI.Settle = 50 * time.Millisecond
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "warn"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "console"
	}
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("store.backend must be one of file|sqlite|memory, got %q", c.Store.Backend)
	}
	if c.Store.Debounce < 0 {
		return fmt.Errorf("store.debounce must not be negative")
	}
	if c.UI.Grace < 0 || c.UI.Settle < 0 {
		return fmt.Errorf("ui delays must not be negative")
	}
	if c.Store.Watch && c.Store.Backend != BackendFile {
		return fmt.Errorf("store.watch requires the file backend")
	}
	return c.Log.Validate()
}
