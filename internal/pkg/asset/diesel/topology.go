package diesel

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTopologySyntax is returned for a string not of the form NxM or NxM+K.
	ErrInvalidTopologySyntax = errors.New("invalid topology syntax")
	// ErrTopologyCoverageMismatch is returned when N*M+K is not 100.
	ErrTopologyCoverageMismatch = errors.New("topology does not cover 100% of peak")
)

var topologyPattern = regexp.MustCompile(`^(\d+)x(\d+)(?:\+(\d+))?$`)

// Topology describes a fleet as Count units each covering Percent of the
// peak, plus one unit covering Reserve percent.
type Topology struct {
	Count   int
	Percent int
	Reserve int
}

// ParseTopology reads and validates a topology such as "2x50" or "3x30+10".
func ParseTopology(spec string) (Topology, error) {
	t, err := parseTopology(spec)
	if err != nil {
		return Topology{}, err
	}
	if sum := t.Coverage(); sum != 100 {
		return Topology{}, fmt.Errorf("%w: %q sums to %d%%", ErrTopologyCoverageMismatch, spec, sum)
	}
	return t, nil
}

func parseTopology(spec string) (Topology, error) {
	match := topologyPattern.FindStringSubmatch(strings.TrimSpace(spec))
	if match == nil {
		return Topology{}, fmt.Errorf("%w: %q", ErrInvalidTopologySyntax, spec)
	}

	var fields [3]int
	for i, s := range match[1:] {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return Topology{}, fmt.Errorf("%w: %q: %v", ErrInvalidTopologySyntax, spec, err)
		}
		if n > 100 {
			return Topology{}, fmt.Errorf("%w: %q: %d exceeds 100%%", ErrTopologyCoverageMismatch, spec, n)
		}
		fields[i] = n
	}
	return Topology{Count: fields[0], Percent: fields[1], Reserve: fields[2]}, nil
}

// Coverage is the share of peak the topology provides, in percent.
func (t Topology) Coverage() int {
	return t.Count*t.Percent + t.Reserve
}

func (t Topology) String() string {
	if t.Reserve > 0 {
		return fmt.Sprintf("%dx%d+%d", t.Count, t.Percent, t.Reserve)
	}
	return fmt.Sprintf("%dx%d", t.Count, t.Percent)
}
