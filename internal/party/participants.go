package party

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseParticipants reads one name per line. Names are trimmed, blank lines
// and lines starting with '#' are dropped.
func ParseParticipants(r io.Reader) ([]string, error) {
	names := []string{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan participants: %w", err)
	}
	return names, nil
}

// ReadParticipants loads a participants file. A missing file yields
// (nil, false, nil) so callers can leave the current list alone.
func ReadParticipants(path string) ([]string, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open participants %s: %w", path, err)
	}
	defer f.Close()

	names, err := ParseParticipants(f)
	if err != nil {
		return nil, false, fmt.Errorf("read participants %s: %w", path, err)
	}
	return names, true, nil
}
