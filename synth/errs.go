// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package synth

import "github.com/Ksenia-C/dataset-generation/internal/cerr"

const (
	ErrUnknownStrategy = cerr.Error("unknown edge strategy")
	ErrInvalidShape    = cerr.Error("node count must be at least the critical path length")
)
