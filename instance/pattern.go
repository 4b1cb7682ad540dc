// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package instance

import (
	"fmt"

	"github.com/Ksenia-C/dataset-generation/taskdag"
)

// Pattern selects which instances of a parent task feed which instances of a
// child task.
type Pattern int

const (
	// PatternRandom gives every child instance one random parent instance,
	// then gives every parent instance left without a consumer one random
	// child instance.
	PatternRandom Pattern = iota
	// PatternAll connects every parent instance to every child instance.
	PatternAll
	// PatternMatched splits the larger instance set into contiguous blocks,
	// one per instance of the smaller set.
	PatternMatched
)

var patternNames = [...]string{
	PatternRandom:  "random",
	PatternAll:     "all",
	PatternMatched: "matched",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternNames[p]
}

// ParsePattern returns the pattern named s.
func ParsePattern(s string) (Pattern, error) {
	for i, name := range patternNames {
		if name == s {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

func (p Pattern) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(patternNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPattern, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Pattern) UnmarshalText(text []byte) error {
	v, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

type edge struct {
	from, to int
}

// connect returns the edges between parent instances [0, parents) and child
// instances [0, children).
func (p Pattern) connect(rng taskdag.Rand, parents, children int) ([]edge, error) {
	var edges []edge
	switch p {
	case PatternAll:
		edges = make([]edge, 0, parents*children)
		for from := range parents {
			for to := range children {
				edges = append(edges, edge{from, to})
			}
		}
	case PatternMatched:
		if parents >= children {
			for from := range parents {
				edges = append(edges, edge{from, from * children / parents})
			}
		} else {
			for to := range children {
				edges = append(edges, edge{to * parents / children, to})
			}
		}
	case PatternRandom:
		consumed := make([]bool, parents)
		for to := range children {
			from := rng.IntN(parents)
			consumed[from] = true
			edges = append(edges, edge{from, to})
		}
		for from, ok := range consumed {
			if !ok {
				edges = append(edges, edge{from, rng.IntN(children)})
			}
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownPattern, p)
	}
	return edges, nil
}
