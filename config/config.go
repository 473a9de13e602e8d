// Package config loads runtime configuration with viper. Precedence, most
// specific first: CLI flags, environment (SPARKFIELD_*), config file,
// built-in defaults. The simulation core applies its own defaults on top,
// so everything here may stay zero.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/finbright/sparkfield/logging"
	"github.com/finbright/sparkfield/sim"
	"github.com/finbright/sparkfield/websocket"
)

type Config struct {
	Sim    SimConfig      `mapstructure:"sim"`
	Server ServerConfig   `mapstructure:"server"`
	Log    logging.Config `mapstructure:"log"`
}

type SimConfig struct {
	MaxParticles int      `mapstructure:"max_particles"`
	Colors       []string `mapstructure:"colors"`
	CursorRadius float64  `mapstructure:"cursor_radius"`
	CursorForce  float64  `mapstructure:"cursor_force"`
	Gravity      float64  `mapstructure:"gravity"`
	Friction     float64  `mapstructure:"friction"`
	Bounciness   float64  `mapstructure:"bounciness"`
	MinSize      float64  `mapstructure:"min_size"`
	MaxSize      float64  `mapstructure:"max_size"`
	BurstCount   int      `mapstructure:"burst_count"`
	TrailSpacing float64  `mapstructure:"trail_spacing"`
	Seed         int64    `mapstructure:"seed"`
}

// Options maps the file/env view onto the engine's option struct.
func (s SimConfig) Options() sim.Options {
	return sim.Options{
		MaxParticles: s.MaxParticles,
		Colors:       s.Colors,
		CursorRadius: s.CursorRadius,
		CursorForce:  s.CursorForce,
		Gravity:      s.Gravity,
		Friction:     s.Friction,
		Bounciness:   s.Bounciness,
		MinSize:      s.MinSize,
		MaxSize:      s.MaxSize,
		BurstCount:   s.BurstCount,
		TrailSpacing: s.TrailSpacing,
		Seed:         s.Seed,
	}
}

type ServerConfig struct {
	Addr       string  `mapstructure:"addr"`
	Prefix     string  `mapstructure:"prefix"`
	Root       string  `mapstructure:"root"`
	EventRate  float64 `mapstructure:"event_rate"`
	EventBurst int     `mapstructure:"event_burst"`
}

func (s ServerConfig) Bridge() websocket.Config {
	return websocket.Config{
		Addr:       s.Addr,
		Prefix:     s.Prefix,
		Root:       s.Root,
		EventRate:  s.EventRate,
		EventBurst: s.EventBurst,
	}
}

// Load reads the config file (explicit path, or sparkfield.yaml in the
// working directory) and the environment. A missing file is not an error.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("sparkfield")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/sparkfield")
	}

	v.SetEnvPrefix("SPARKFIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so every
	// key must be bound for SPARKFIELD_* overrides to reach Unmarshal.
	for _, key := range []string{
		"sim.max_particles", "sim.colors", "sim.cursor_radius",
		"sim.cursor_force", "sim.gravity", "sim.friction", "sim.bounciness",
		"sim.min_size", "sim.max_size", "sim.burst_count",
		"sim.trail_spacing", "sim.seed",
		"server.addr", "server.prefix", "server.root",
		"server.event_rate", "server.event_burst",
		"log.level", "log.format", "log.file",
		"log.max_size_mb", "log.max_backups",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	v.SetDefault("server.addr", "localhost:5000")
	v.SetDefault("server.prefix", "/")
	v.SetDefault("server.root", "web")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
