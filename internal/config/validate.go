package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/xtding233/party-lottery/internal/rng"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// rng.algorithm
	if cfg.RNG.Algorithm != "" {
		if _, err := rng.ParseAlgorithm(cfg.RNG.Algorithm); err != nil {
			errs = append(errs, "rng.algorithm must be one of: xorshift, mt19937")
		}
	}

	// games
	if cfg.Bingo.DomainSize != nil && *cfg.Bingo.DomainSize < 1 {
		errs = append(errs, "bingo.domain_size must be >= 1")
	}
	if cfg.Amida.Slots != nil && *cfg.Amida.Slots < 1 {
		errs = append(errs, "amida.slots must be >= 1")
	}

	// watch.interval
	if cfg.Watch.Interval != "" {
		d, err := time.ParseDuration(cfg.Watch.Interval)
		if err != nil {
			errs = append(errs, fmt.Sprintf("watch.interval %q is not a duration", cfg.Watch.Interval))
		} else if d <= 0 {
			errs = append(errs, "watch.interval must be > 0")
		}
	}

	// log
	if cfg.Log.Level != "" {
		if _, ok := parseLevel(cfg.Log.Level); !ok {
			errs = append(errs, "log.level must be one of: debug, info, warn, error")
		}
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, "log.format must be one of: text, json")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
