// Package config loads bionet configuration from the XDG config directory.
//
// Configuration lives at ~/.config/bionet/config.toml. Every field has a
// default so a missing or partial file is never an error; the file only
// overrides what it names.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/session"
	"github.com/lbartels/bionet/pkg/sim"
	"github.com/lbartels/bionet/pkg/store"
)

// Config holds bionet configuration.
type Config struct {
	Canvas     CanvasConfig        `toml:"canvas"`
	Forces     ForcesConfig        `toml:"forces"`
	Thresholds bionet.Thresholds   `toml:"thresholds"`
	Server     ServerConfig        `toml:"server"`
	Cache      CacheConfig         `toml:"cache"`
	Redis      session.RedisConfig `toml:"redis"`
	Mongo      store.MongoConfig   `toml:"mongo"`
}

// CanvasConfig controls layout dimensions.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// ForcesConfig overrides force simulation constants. Zero values fall back
// to the simulation defaults.
type ForcesConfig struct {
	ChargeStrength    float64 `toml:"charge_strength"`
	CenterStrength    float64 `toml:"center_strength"`
	CollisionStrength float64 `toml:"collision_strength"`
	VelocityDecay     float64 `toml:"velocity_decay"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	SessionStore string `toml:"session_store"` // "memory", "file", "redis"
}

// CacheConfig controls stage caching.
type CacheConfig struct {
	Dir     string `toml:"dir"`     // empty means XDG cache dir
	Backend string `toml:"backend"` // "file", "memory", "none"
}

// Default returns the default configuration.
func Default() *Config {
	simCfg := sim.DefaultConfig()
	return &Config{
		Canvas: CanvasConfig{Width: simCfg.Width, Height: simCfg.Height},
		Thresholds: bionet.Thresholds{
			Weight: 0.0007,
			Degree: 0,
		},
		Server: ServerConfig{Addr: ":8080", SessionStore: "memory"},
		Cache:  CacheConfig{Backend: "file"},
		Redis:  session.RedisConfig{Addr: "localhost:6379"},
		Mongo:  store.MongoConfig{URI: "mongodb://localhost:27017", Database: "bionet", Collection: "graphs"},
	}
}

// ConfigDir returns the bionet config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "bionet")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist.
func Load() *Config {
	return LoadFrom(configPath())
}

// LoadFrom reads configuration from an explicit path. Missing files and
// parse failures yield the defaults.
func LoadFrom(path string) *Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// SimConfig merges the canvas and force overrides onto the simulation
// defaults.
func (c *Config) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	if c.Canvas.Width > 0 {
		cfg.Width = c.Canvas.Width
	}
	if c.Canvas.Height > 0 {
		cfg.Height = c.Canvas.Height
	}
	if c.Forces.ChargeStrength > 0 {
		cfg.ChargeStrength = c.Forces.ChargeStrength
	}
	if c.Forces.CenterStrength > 0 {
		cfg.CenterStrength = c.Forces.CenterStrength
	}
	if c.Forces.CollisionStrength > 0 {
		cfg.CollisionStrength = c.Forces.CollisionStrength
	}
	if c.Forces.VelocityDecay > 0 {
		cfg.VelocityDecay = c.Forces.VelocityDecay
	}
	return cfg
}
