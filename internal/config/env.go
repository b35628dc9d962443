package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by the server. They override YAML values.
const (
	EnvConfigDir        = "PARTY_CONFIG_DIR"
	EnvProfile          = "PARTY_PROFILE"
	EnvHTTPAddr         = "PARTY_HTTP_ADDR"
	EnvGRPCAddr         = "PARTY_GRPC_ADDR"
	EnvSeedFile         = "PARTY_SEED_FILE"
	EnvSeed             = "PARTY_SEED"
	EnvRNG              = "PARTY_RNG"
	EnvBingoSize        = "PARTY_BINGO_SIZE"
	EnvAmidaSlots       = "PARTY_AMIDA_SLOTS"
	EnvParticipantsFile = "PARTY_PARTICIPANTS_FILE"
	EnvWatchInterval    = "PARTY_WATCH_INTERVAL"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
)

var knownKeys = []string{
	EnvConfigDir, EnvProfile, EnvHTTPAddr, EnvGRPCAddr, EnvSeedFile, EnvSeed,
	EnvRNG, EnvBingoSize, EnvAmidaSlots, EnvParticipantsFile, EnvWatchInterval,
	EnvLogLevel, EnvLogFormat,
}

// Env holds the variables above. Values from the process environment win
// over values from the dotenv file.
type Env map[string]string

// LoadEnv reads dotenv (if it exists) and then the process environment.
func LoadEnv(dotenv string) (Env, error) {
	env := Env{}
	if dotenv != "" {
		m, err := godotenv.Read(dotenv)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", dotenv, err)
		}
		for _, k := range knownKeys {
			if v, ok := m[k]; ok {
				env[k] = v
			}
		}
	}
	for _, k := range knownKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// Get returns the value for key or def when unset or empty.
func (e Env) Get(key, def string) string {
	if v := e[key]; v != "" {
		return v
	}
	return def
}

// overlay turns env values into a RawConfig layer for mergeRaw.
func (e Env) overlay() (RawConfig, error) {
	var out RawConfig
	var errs []error

	out.Server.HTTPAddr = e[EnvHTTPAddr]
	out.Server.GRPCAddr = e[EnvGRPCAddr]
	out.RNG.Algorithm = e[EnvRNG]
	out.Seed.File = e[EnvSeedFile]
	out.Amida.ParticipantsFile = e[EnvParticipantsFile]
	out.Watch.Interval = e[EnvWatchInterval]
	out.Log.Level = e[EnvLogLevel]
	out.Log.Format = e[EnvLogFormat]

	if v := e[EnvSeed]; v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			s := uint32(n)
			out.Seed.Value = &s
		}
	}
	if v := e[EnvBingoSize]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvBingoSize, err))
		} else {
			out.Bingo.DomainSize = &n
		}
	}
	if v := e[EnvAmidaSlots]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAmidaSlots, err))
		} else {
			out.Amida.Slots = &n
		}
	}

	if len(errs) > 0 {
		return RawConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return out, nil
}
