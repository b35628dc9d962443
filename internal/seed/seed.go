// Package seed turns an externally supplied list of integers into the root
// seed and hands out decorrelated generators for each game.
package seed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xtding233/party-lottery/internal/rng"
)

// initialAccumulator starts the multiplicative fold. Starting from 0 would
// pin every fold to 0.
const initialAccumulator uint32 = 1

// Source describes where the root seed came from, for startup logging and
// for reporting to clients.
type Source struct {
	Path     string
	Seed     uint32
	Values   int  // well-formed values folded
	Skipped  int  // malformed lines ignored
	Fallback bool // true when DefaultSeed was substituted
}

// Fold multiplies values together with 32-bit wraparound. An empty input or
// a zero product yields rng.DefaultSeed.
func Fold(values []uint32) uint32 {
	acc := product(values)
	if len(values) == 0 || acc == 0 {
		return rng.DefaultSeed
	}
	return acc
}

// Parse reads one unsigned 32-bit integer per line. Blank lines are ignored;
// anything else that does not parse is counted in skipped and folding goes
// on with the rest.
func Parse(r io.Reader) (values []uint32, skipped int, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, perr := strconv.ParseUint(line, 10, 32)
		if perr != nil {
			skipped++
			continue
		}
		values = append(values, uint32(v))
	}
	if err := sc.Err(); err != nil {
		return values, skipped, fmt.Errorf("scan seed lines: %w", err)
	}
	return values, skipped, nil
}

// FromReader parses and folds in one step.
func FromReader(r io.Reader) (Source, error) {
	values, skipped, err := Parse(r)
	if err != nil {
		return Source{}, err
	}
	return Source{
		Seed:     Fold(values),
		Values:   len(values),
		Skipped:  skipped,
		Fallback: len(values) == 0 || product(values) == 0,
	}, nil
}

// FromFile folds the integers found at path. A missing file is not an error:
// the default seed is used and Fallback is set.
func FromFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Source{Path: path, Seed: rng.DefaultSeed, Fallback: true}, nil
		}
		return Source{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	src, err := FromReader(f)
	if err != nil {
		return Source{}, fmt.Errorf("read seed file %s: %w", path, err)
	}
	src.Path = path
	return src, nil
}

// Explicit wraps a configured seed value.
func Explicit(v uint32) Source {
	if v == 0 {
		return Source{Seed: rng.DefaultSeed, Fallback: true}
	}
	return Source{Seed: v, Values: 1}
}

func product(values []uint32) uint32 {
	acc := initialAccumulator
	for _, v := range values {
		acc *= v
	}
	return acc
}
