package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., ./config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths exposes the file layout, e.g. for the watcher.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads default.yaml and overlays profiles/<profile>.yaml when
// profile is non-empty. Both files are optional; a missing default yields
// an empty config and every value falls back to built-in defaults.
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %q: %w", profile, err)
		}
		merged = mergeRaw(merged, profCfg)
	}

	l.mu.Lock()
	l.cache[profile] = merged
	l.mu.Unlock()

	return merged, nil
}

// Files lists the YAML layers LoadMerged reads for profile, default first.
func (l *Loader) Files(profile string) []string {
	files := []string{l.paths.DefaultPath()}
	if profile != "" {
		files = append(files, l.paths.ProfilePath(profile))
	}
	return files
}

// Invalidate clears the cache so the next LoadMerged rereads the files.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays b on a: every field set in b wins.
// Slices (AllowedOrigins) are replaced, not appended.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}

	// server
	if b.Server.HTTPAddr != "" {
		out.Server.HTTPAddr = b.Server.HTTPAddr
	}
	if b.Server.GRPCAddr != "" {
		out.Server.GRPCAddr = b.Server.GRPCAddr
	}
	if len(b.Server.AllowedOrigins) > 0 {
		out.Server.AllowedOrigins = append([]string(nil), b.Server.AllowedOrigins...)
	}

	// rng / seed
	if b.RNG.Algorithm != "" {
		out.RNG.Algorithm = b.RNG.Algorithm
	}
	if b.Seed.File != "" {
		out.Seed.File = b.Seed.File
	}
	if b.Seed.Value != nil {
		v := *b.Seed.Value
		out.Seed.Value = &v
	}

	// games
	if b.Bingo.DomainSize != nil {
		v := *b.Bingo.DomainSize
		out.Bingo.DomainSize = &v
	}
	if b.Amida.Slots != nil {
		v := *b.Amida.Slots
		out.Amida.Slots = &v
	}
	if b.Amida.ParticipantsFile != "" {
		out.Amida.ParticipantsFile = b.Amida.ParticipantsFile
	}

	// ambient
	if b.Watch.Interval != "" {
		out.Watch.Interval = b.Watch.Interval
	}
	if b.Log.Level != "" {
		out.Log.Level = b.Log.Level
	}
	if b.Log.Format != "" {
		out.Log.Format = b.Log.Format
	}

	return out
}
