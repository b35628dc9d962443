package main

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/xtding233/party-lottery/internal/config"
	"github.com/xtding233/party-lottery/internal/party"
	"github.com/xtding233/party-lottery/internal/seed"
)

// reloader reacts to file changes while the server runs. YAML edits are
// re-resolved through the one long-lived Loader; the log level and the
// participants file apply immediately, everything else waits for a restart.
type reloader struct {
	loader *config.Loader
	env    config.Env
	hall   *party.Hall
	log    *slog.Logger
	level  *slog.LevelVar

	watcher *config.FileWatcher

	mu       sync.Mutex
	settings config.Settings
}

func newReloader(loader *config.Loader, env config.Env, cfg config.Settings, hall *party.Hall, log *slog.Logger, level *slog.LevelVar) *reloader {
	r := &reloader{
		loader:   loader,
		env:      env,
		hall:     hall,
		log:      log,
		level:    level,
		settings: cfg,
	}
	r.watcher = config.NewFileWatcher(r.watchPaths(cfg), cfg.WatchInterval, r.handle)
	return r
}

func (r *reloader) configFiles() []string {
	return r.loader.Files(r.env[config.EnvProfile])
}

func (r *reloader) watchPaths(cfg config.Settings) []string {
	paths := r.configFiles()
	if cfg.ParticipantsFile != "" {
		paths = append(paths, cfg.ParticipantsFile)
	}
	return paths
}

func (r *reloader) current() config.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// handle is the FileWatcher callback.
func (r *reloader) handle(path string) {
	if slices.Contains(r.configFiles(), path) {
		r.reload()
		return
	}
	if path == r.current().ParticipantsFile {
		applyParticipants(r.log, r.hall, path)
	}
}

// reload rereads the YAML layers. An invalid edit is logged and the running
// settings stay as they are.
func (r *reloader) reload() {
	r.loader.Invalidate()
	next, err := config.LoadWith(r.loader, r.env)
	if err != nil {
		r.log.Error("config reload rejected, keeping current settings", "err", err)
		return
	}

	r.mu.Lock()
	prev := r.settings
	r.settings = next
	r.mu.Unlock()

	if next.LogLevel != prev.LogLevel {
		r.level.Set(next.LogLevel)
		r.log.Info("log level changed", "from", prev.LogLevel, "to", next.LogLevel)
	}
	if next.ParticipantsFile != prev.ParticipantsFile {
		r.watcher.SetPaths(r.watchPaths(next))
		r.log.Info("participants file changed", "from", prev.ParticipantsFile, "to", next.ParticipantsFile)
		if next.ParticipantsFile != "" {
			applyParticipants(r.log, r.hall, next.ParticipantsFile)
		}
	}
	if fields := restartOnly(prev, next); len(fields) > 0 {
		r.log.Warn("config change takes effect after restart", "fields", fields)
	}
	r.log.Info("config reloaded", "version", next.Version)
}

// restartOnly names the changed settings that cannot be applied live.
func restartOnly(prev, next config.Settings) []string {
	var out []string
	add := func(changed bool, name string) {
		if changed {
			out = append(out, name)
		}
	}
	add(prev.HTTPAddr != next.HTTPAddr, "server.http_addr")
	add(prev.GRPCAddr != next.GRPCAddr, "server.grpc_addr")
	add(!slices.Equal(prev.AllowedOrigins, next.AllowedOrigins), "server.allowed_origins")
	add(prev.Algorithm != next.Algorithm, "rng.algorithm")
	add(prev.SeedFile != next.SeedFile, "seed.file")
	add(!sameSeed(prev.SeedValue, next.SeedValue), "seed.value")
	add(prev.BingoSize != next.BingoSize, "bingo.domain_size")
	add(prev.AmidaSlots != next.AmidaSlots, "amida.slots")
	add(prev.WatchInterval != next.WatchInterval, "watch.interval")
	add(prev.LogFormat != next.LogFormat, "log.format")
	return out
}

func sameSeed(a, b *uint32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// loadSeed prefers an explicit seed value over the seed file.
func loadSeed(cfg config.Settings) (seed.Source, error) {
	if cfg.SeedValue != nil {
		return seed.Explicit(*cfg.SeedValue), nil
	}
	return seed.FromFile(cfg.SeedFile)
}

// applyParticipants replaces the Amida list from path. A missing or
// unreadable file leaves the current list alone.
func applyParticipants(log *slog.Logger, hall *party.Hall, path string) {
	names, ok, err := party.ReadParticipants(path)
	if err != nil {
		log.Error("participants file unreadable", "path", path, "err", err)
		return
	}
	if !ok {
		log.Warn("participants file missing", "path", path)
		return
	}
	hall.SetParticipants(names)
}
