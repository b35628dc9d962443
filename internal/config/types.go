// types.go
package config

import (
	"log/slog"
	"time"

	"github.com/xtding233/party-lottery/internal/rng"
)

// Raw config loaded from YAML. Pointers distinguish "unset" from zero so
// layers can be merged.
type RawConfig struct {
	Version string       `yaml:"version"`
	Server  ServerConfig `yaml:"server"`
	RNG     RNGConfig    `yaml:"rng"`
	Seed    SeedConfig   `yaml:"seed"`
	Bingo   BingoConfig  `yaml:"bingo"`
	Amida   AmidaConfig  `yaml:"amida"`
	Watch   WatchConfig  `yaml:"watch"`
	Log     LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	HTTPAddr       string   `yaml:"http_addr"`
	GRPCAddr       string   `yaml:"grpc_addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

type RNGConfig struct {
	Algorithm string `yaml:"algorithm"` // "xorshift" | "mt19937"
}

type SeedConfig struct {
	File  string  `yaml:"file"`
	Value *uint32 `yaml:"value,omitempty"` // wins over file when set
}

type BingoConfig struct {
	DomainSize *int `yaml:"domain_size"`
}

type AmidaConfig struct {
	Slots            *int   `yaml:"slots"`
	ParticipantsFile string `yaml:"participants_file,omitempty"`
}

type WatchConfig struct {
	Interval string `yaml:"interval,omitempty"` // time.ParseDuration format
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Settings is the normalized configuration the server runs with.
type Settings struct {
	HTTPAddr         string
	GRPCAddr         string
	AllowedOrigins   []string
	Algorithm        rng.Algorithm
	SeedFile         string
	SeedValue        *uint32
	BingoSize        int
	AmidaSlots       int
	ParticipantsFile string
	WatchInterval    time.Duration
	LogLevel         slog.Level
	LogFormat        string
	Version          string // effective config version for tracing
}
