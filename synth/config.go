// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package synth

import (
	"fmt"

	"go.uber.org/zap"
)

// Strategy selects how the tasks outside the seed chain are wired.
type Strategy int

const (
	StrategyLevel Strategy = iota
	StrategyForward
	StrategyBackward
)

var strategyNames = [...]string{
	StrategyLevel:    "other",
	StrategyForward:  "incr",
	StrategyBackward: "decr",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy returns the strategy named s: "incr", "decr" or "other".
func ParseStrategy(s string) (Strategy, error) {
	for i, name := range strategyNames {
		if name == s {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Config controls graph synthesis.
type Config struct {
	// Critical paths are drawn uniformly from [MinCP, MaxCP). If MaxCP is
	// not above MinCP every graph has critical path MinCP.
	MinCP int
	MaxCP int

	// MaxInstances caps the instance count of every task.
	MaxInstances uint64

	Strategy Strategy

	// ConnectOrphans makes StrategyLevel give a parent to every task on an
	// intermediate level that was left without one. Tasks on the last level
	// always get one.
	ConnectOrphans bool

	Logger *zap.Logger
}

var DefaultConfig = Config{
	MinCP:        5,
	MaxCP:        7,
	MaxInstances: 100,
	Strategy:     StrategyLevel,
}
