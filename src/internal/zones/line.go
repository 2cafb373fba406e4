package zones

import (
	"strings"

	"github.com/StephenPCG/xrouter/src/internal/cidr"
)

// ParseLine extracts the canonical network from one zone file line.
// It returns false for blank, comment-only and malformed lines.
func ParseLine(line string) (string, bool) {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	return cidr.Normalize(fields[0])
}

// filterLines feeds every parsable line to fn and returns how many
// non-blank lines were dropped as malformed.
func filterLines(next func() (string, bool), fn func(string) error) (int, error) {
	dropped := 0
	for {
		line, ok := next()
		if !ok {
			return dropped, nil
		}
		network, ok := ParseLine(line)
		if !ok {
			if isContentLine(line) {
				dropped++
			}
			continue
		}
		if err := fn(network); err != nil {
			return dropped, err
		}
	}
}

func isContentLine(line string) bool {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line) != ""
}
