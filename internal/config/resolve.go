// resolve.go
package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/xtding233/party-lottery/internal/amida"
	"github.com/xtding233/party-lottery/internal/bingo"
	"github.com/xtding233/party-lottery/internal/rng"
)

var ErrInvalidConfig = errors.New("config validation failed")

// Built-in defaults, applied under every YAML layer.
const (
	DefaultHTTPAddr      = ":3000"
	DefaultGRPCAddr      = ":3001"
	DefaultSeedFile      = "seeds.txt"
	DefaultWatchInterval = 2 * time.Second
	DefaultConfigDir     = "config"
)

// Load reads the YAML layers selected by env and resolves them.
func Load(env Env) (Settings, error) {
	return LoadWith(NewLoaderFor(env), env)
}

// NewLoaderFor builds a Loader rooted at the config dir env selects.
func NewLoaderFor(env Env) *Loader {
	return NewLoader(env.Get(EnvConfigDir, DefaultConfigDir))
}

// LoadWith resolves through an existing Loader, so a long-running process
// can keep one Loader and Invalidate it when the YAML files change.
func LoadWith(l *Loader, env Env) (Settings, error) {
	raw, err := l.LoadMerged(env[EnvProfile])
	if err != nil {
		return Settings{}, err
	}
	return Resolve(raw, env)
}

// Resolve merges defaults → raw → env and normalizes the result.
func Resolve(raw RawConfig, env Env) (Settings, error) {
	overlay, err := env.overlay()
	if err != nil {
		return Settings{}, err
	}
	merged := mergeRaw(raw, overlay)
	if err := ValidateRaw(merged); err != nil {
		return Settings{}, err
	}

	s := Settings{
		HTTPAddr:         DefaultHTTPAddr,
		GRPCAddr:         DefaultGRPCAddr,
		AllowedOrigins:   []string{"*"},
		Algorithm:        rng.AlgXorShift,
		SeedFile:         DefaultSeedFile,
		BingoSize:        bingo.DefaultSize,
		AmidaSlots:       amida.DefaultSlots,
		WatchInterval:    DefaultWatchInterval,
		LogLevel:         slog.LevelInfo,
		LogFormat:        "text",
		ParticipantsFile: merged.Amida.ParticipantsFile,
		Version:          merged.Version,
	}

	if merged.Server.HTTPAddr != "" {
		s.HTTPAddr = merged.Server.HTTPAddr
	}
	if merged.Server.GRPCAddr != "" {
		s.GRPCAddr = merged.Server.GRPCAddr
	}
	if len(merged.Server.AllowedOrigins) > 0 {
		s.AllowedOrigins = merged.Server.AllowedOrigins
	}
	if merged.RNG.Algorithm != "" {
		// already validated
		s.Algorithm, _ = rng.ParseAlgorithm(merged.RNG.Algorithm)
	}
	if merged.Seed.File != "" {
		s.SeedFile = merged.Seed.File
	}
	s.SeedValue = merged.Seed.Value
	if merged.Bingo.DomainSize != nil {
		s.BingoSize = *merged.Bingo.DomainSize
	}
	if merged.Amida.Slots != nil {
		s.AmidaSlots = *merged.Amida.Slots
	}
	if merged.Watch.Interval != "" {
		s.WatchInterval, _ = time.ParseDuration(merged.Watch.Interval)
	}
	if merged.Log.Level != "" {
		s.LogLevel, _ = parseLevel(merged.Log.Level)
	}
	if merged.Log.Format != "" {
		s.LogFormat = strings.ToLower(merged.Log.Format)
	}
	return s, nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
